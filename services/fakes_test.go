package services

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"

	"github.com/Dosada05/sports-day-system/models"
	"github.com/Dosada05/sports-day-system/repositories"
)

// In-memory fakes over the repository interfaces, shared by the service tests.

type fakeTx struct {
	committed  bool
	rolledBack bool
}

func (t *fakeTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int
	users  map[int]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[int]*models.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repositories.ErrUserEmailConflict
		}
	}
	user.ID = r.nextID
	r.nextID++
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

type fakeHouseRepo struct {
	houses     map[int]*models.House
	pointCalls []pointCall
}

type pointCall struct {
	houseID int
	delta   int
}

func newFakeHouseRepo(houses ...*models.House) *fakeHouseRepo {
	repo := &fakeHouseRepo{houses: make(map[int]*models.House)}
	for _, house := range houses {
		repo.houses[house.ID] = house
	}
	return repo
}

func (r *fakeHouseRepo) Create(ctx context.Context, house *models.House) error {
	r.houses[house.ID] = house
	return nil
}

func (r *fakeHouseRepo) GetByID(ctx context.Context, id int) (*models.House, error) {
	house, ok := r.houses[id]
	if !ok {
		return nil, repositories.ErrHouseNotFound
	}
	copied := *house
	return &copied, nil
}

func (r *fakeHouseRepo) GetAll(ctx context.Context, orderByPoints bool) ([]models.House, error) {
	all := make([]models.House, 0, len(r.houses))
	for _, house := range r.houses {
		all = append(all, *house)
	}
	if orderByPoints {
		sort.Slice(all, func(i, j int) bool {
			if all[i].TotalPoints != all[j].TotalPoints {
				return all[i].TotalPoints > all[j].TotalPoints
			}
			return all[i].Name < all[j].Name
		})
	} else {
		sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	}
	return all, nil
}

func (r *fakeHouseRepo) Update(ctx context.Context, house *models.House) error {
	if _, ok := r.houses[house.ID]; !ok {
		return repositories.ErrHouseNotFound
	}
	r.houses[house.ID] = house
	return nil
}

func (r *fakeHouseRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.houses[id]; !ok {
		return repositories.ErrHouseNotFound
	}
	delete(r.houses, id)
	return nil
}

func (r *fakeHouseRepo) UpdateLogoKey(ctx context.Context, id int, logoKey *string) error {
	house, ok := r.houses[id]
	if !ok {
		return repositories.ErrHouseNotFound
	}
	house.LogoKey = logoKey
	return nil
}

func (r *fakeHouseRepo) Count(ctx context.Context) (int, error) {
	return len(r.houses), nil
}

func (r *fakeHouseRepo) AddPoints(ctx context.Context, exec repositories.SQLExecutor, houseID int, delta int) error {
	house, ok := r.houses[houseID]
	if !ok {
		return repositories.ErrHouseNotFound
	}
	house.TotalPoints += delta
	r.pointCalls = append(r.pointCalls, pointCall{houseID: houseID, delta: delta})
	return nil
}

type fakeSportRepo struct {
	sports map[int]*models.Sport
}

func newFakeSportRepo(sports ...*models.Sport) *fakeSportRepo {
	repo := &fakeSportRepo{sports: make(map[int]*models.Sport)}
	for _, sport := range sports {
		repo.sports[sport.ID] = sport
	}
	return repo
}

func (r *fakeSportRepo) Create(ctx context.Context, sport *models.Sport) error {
	r.sports[sport.ID] = sport
	return nil
}

func (r *fakeSportRepo) GetByID(ctx context.Context, id int) (*models.Sport, error) {
	sport, ok := r.sports[id]
	if !ok {
		return nil, repositories.ErrSportNotFound
	}
	copied := *sport
	return &copied, nil
}

func (r *fakeSportRepo) GetAll(ctx context.Context, category *string) ([]models.Sport, error) {
	all := make([]models.Sport, 0, len(r.sports))
	for _, sport := range r.sports {
		if category != nil && sport.Category != *category {
			continue
		}
		all = append(all, *sport)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}

func (r *fakeSportRepo) Update(ctx context.Context, sport *models.Sport) error {
	if _, ok := r.sports[sport.ID]; !ok {
		return repositories.ErrSportNotFound
	}
	r.sports[sport.ID] = sport
	return nil
}

func (r *fakeSportRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.sports[id]; !ok {
		return repositories.ErrSportNotFound
	}
	delete(r.sports, id)
	return nil
}

type fakeEventRepo struct {
	events        map[int]*models.Event
	statusChanges []models.EventStatus
}

func newFakeEventRepo(events ...*models.Event) *fakeEventRepo {
	repo := &fakeEventRepo{events: make(map[int]*models.Event)}
	for _, event := range events {
		repo.events[event.ID] = event
	}
	return repo
}

func (r *fakeEventRepo) Create(ctx context.Context, event *models.Event) error {
	r.events[event.ID] = event
	return nil
}

func (r *fakeEventRepo) GetByID(ctx context.Context, id int) (*models.Event, error) {
	event, ok := r.events[id]
	if !ok {
		return nil, repositories.ErrEventNotFound
	}
	copied := *event
	return &copied, nil
}

func (r *fakeEventRepo) List(ctx context.Context, filter repositories.EventFilter) ([]models.Event, error) {
	all := make([]models.Event, 0, len(r.events))
	for _, event := range r.events {
		if filter.Status != nil && event.Status != *filter.Status {
			continue
		}
		if filter.SportID != nil && event.SportID != *filter.SportID {
			continue
		}
		all = append(all, *event)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

func (r *fakeEventRepo) Update(ctx context.Context, event *models.Event) error {
	if _, ok := r.events[event.ID]; !ok {
		return repositories.ErrEventNotFound
	}
	r.events[event.ID] = event
	return nil
}

func (r *fakeEventRepo) UpdateStatus(ctx context.Context, exec repositories.SQLExecutor, id int, status models.EventStatus) error {
	event, ok := r.events[id]
	if !ok {
		return repositories.ErrEventNotFound
	}
	event.Status = status
	r.statusChanges = append(r.statusChanges, status)
	return nil
}

func (r *fakeEventRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.events[id]; !ok {
		return repositories.ErrEventNotFound
	}
	delete(r.events, id)
	return nil
}

func (r *fakeEventRepo) CountByStatus(ctx context.Context, status models.EventStatus) (int, error) {
	count := 0
	for _, event := range r.events {
		if event.Status == status {
			count++
		}
	}
	return count, nil
}

type fakeParticipantRepo struct {
	participants map[int]*models.Participant
}

func newFakeParticipantRepo(participants ...*models.Participant) *fakeParticipantRepo {
	repo := &fakeParticipantRepo{participants: make(map[int]*models.Participant)}
	for _, participant := range participants {
		repo.participants[participant.ID] = participant
	}
	return repo
}

func (r *fakeParticipantRepo) Create(ctx context.Context, participant *models.Participant) error {
	r.participants[participant.ID] = participant
	return nil
}

func (r *fakeParticipantRepo) GetByID(ctx context.Context, id int) (*models.Participant, error) {
	participant, ok := r.participants[id]
	if !ok {
		return nil, repositories.ErrParticipantNotFound
	}
	copied := *participant
	return &copied, nil
}

func (r *fakeParticipantRepo) List(ctx context.Context, filter repositories.ParticipantFilter) ([]models.Participant, error) {
	all := make([]models.Participant, 0, len(r.participants))
	for _, participant := range r.participants {
		if filter.HouseID != nil && participant.HouseID != *filter.HouseID {
			continue
		}
		if filter.GuardianID != nil {
			if participant.GuardianID == nil || *participant.GuardianID != *filter.GuardianID {
				continue
			}
		}
		if filter.OnlyActive && !participant.IsActive {
			continue
		}
		if filter.NameQuery != "" &&
			!strings.Contains(strings.ToLower(participant.FullName), strings.ToLower(filter.NameQuery)) {
			continue
		}
		all = append(all, *participant)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

func (r *fakeParticipantRepo) Update(ctx context.Context, participant *models.Participant) error {
	if _, ok := r.participants[participant.ID]; !ok {
		return repositories.ErrParticipantNotFound
	}
	r.participants[participant.ID] = participant
	return nil
}

func (r *fakeParticipantRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.participants[id]; !ok {
		return repositories.ErrParticipantNotFound
	}
	delete(r.participants, id)
	return nil
}

func (r *fakeParticipantRepo) SetActive(ctx context.Context, id int, active bool) error {
	participant, ok := r.participants[id]
	if !ok {
		return repositories.ErrParticipantNotFound
	}
	participant.IsActive = active
	return nil
}

func (r *fakeParticipantRepo) CountActive(ctx context.Context) (int, error) {
	count := 0
	for _, participant := range r.participants {
		if participant.IsActive {
			count++
		}
	}
	return count, nil
}

type fakeEnrollmentRepo struct {
	rosters map[int][]models.Enrollment
	events  map[int][]models.Event
}

func newFakeEnrollmentRepo() *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{
		rosters: make(map[int][]models.Enrollment),
		events:  make(map[int][]models.Event),
	}
}

func (r *fakeEnrollmentRepo) enroll(eventID int, participants ...*models.Participant) {
	for _, participant := range participants {
		r.rosters[eventID] = append(r.rosters[eventID], models.Enrollment{
			EventID:       eventID,
			ParticipantID: participant.ID,
			Participant:   participant,
		})
	}
}

func (r *fakeEnrollmentRepo) ListByEvent(ctx context.Context, eventID int) ([]models.Enrollment, error) {
	return r.rosters[eventID], nil
}

func (r *fakeEnrollmentRepo) ListEventsByParticipant(ctx context.Context, participantID int) ([]models.Event, error) {
	return r.events[participantID], nil
}

func (r *fakeEnrollmentRepo) ReplaceForEvent(ctx context.Context, eventID int, participantIDs []int) error {
	roster := make([]models.Enrollment, 0, len(participantIDs))
	for _, participantID := range participantIDs {
		roster = append(roster, models.Enrollment{EventID: eventID, ParticipantID: participantID})
	}
	r.rosters[eventID] = roster
	return nil
}

type fakeResultRepo struct {
	nextID  int
	byEvent map[int][]models.Result
}

func newFakeResultRepo() *fakeResultRepo {
	return &fakeResultRepo{nextID: 1, byEvent: make(map[int][]models.Result)}
}

func (r *fakeResultRepo) ListByEvent(ctx context.Context, exec repositories.SQLExecutor, eventID int) ([]models.Result, error) {
	stored := r.byEvent[eventID]
	out := make([]models.Result, len(stored))
	copy(out, stored)
	return out, nil
}

func (r *fakeResultRepo) DeleteByEvent(ctx context.Context, exec repositories.SQLExecutor, eventID int) error {
	delete(r.byEvent, eventID)
	return nil
}

func (r *fakeResultRepo) BatchCreate(ctx context.Context, exec repositories.SQLExecutor, results []*models.Result) error {
	for _, result := range results {
		result.ID = r.nextID
		r.nextID++
		r.byEvent[result.EventID] = append(r.byEvent[result.EventID], *result)
	}
	return nil
}

func (r *fakeResultRepo) ListByParticipant(ctx context.Context, participantID int) ([]models.Result, error) {
	var out []models.Result
	for _, results := range r.byEvent {
		for _, result := range results {
			if result.ParticipantID == participantID {
				out = append(out, result)
			}
		}
	}
	return out, nil
}

func (r *fakeResultRepo) ListRecent(ctx context.Context, limit int) ([]models.Result, error) {
	var out []models.Result
	for _, results := range r.byEvent {
		out = append(out, results...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeResultRepo) ListTopByPoints(ctx context.Context, limit int) ([]models.Result, error) {
	var out []models.Result
	for _, results := range r.byEvent {
		out = append(out, results...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PointsAwarded > out[j].PointsAwarded })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeResultRepo) Count(ctx context.Context) (int, error) {
	count := 0
	for _, results := range r.byEvent {
		count += len(results)
	}
	return count, nil
}

type broadcastCall struct {
	room    string
	message interface{}
}

type fakeBroadcaster struct {
	mu    sync.Mutex
	calls []broadcastCall
}

func (b *fakeBroadcaster) BroadcastToRoom(roomID string, message interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, broadcastCall{room: roomID, message: message})
}

func (b *fakeBroadcaster) rooms() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	rooms := make([]string, len(b.calls))
	for i, call := range b.calls {
		rooms[i] = call.room
	}
	return rooms
}
