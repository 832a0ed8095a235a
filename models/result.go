package models

import "time"

// Result is the recorded outcome for one participant in one event.
// HouseID is denormalized from the participant at write time so that later
// house reassignments do not retroactively change history.
type Result struct {
	ID            int       `json:"id" db:"id"`
	EventID       int       `json:"event_id" db:"event_id"`
	ParticipantID int       `json:"participant_id" db:"participant_id"`
	HouseID       int       `json:"house_id" db:"house_id"`
	Position      int       `json:"position" db:"position"`
	PointsAwarded int       `json:"points_awarded" db:"points_awarded"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`

	Participant *Participant `json:"participant,omitempty" db:"-"`
	House       *House       `json:"house,omitempty" db:"-"`
	Event       *Event       `json:"event,omitempty" db:"-"`
}
