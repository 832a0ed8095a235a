package models

import "time"

// EventStatus represents event statuses matching the ENUM in the database.
type EventStatus string

const (
	EventStatusScheduled  EventStatus = "scheduled"
	EventStatusInProgress EventStatus = "in_progress"
	EventStatusCompleted  EventStatus = "completed"
	EventStatusCancelled  EventStatus = "cancelled"
)

// Valid reports whether s is one of the known event statuses.
func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusScheduled, EventStatusInProgress, EventStatusCompleted, EventStatusCancelled:
		return true
	}
	return false
}

// Event is a single scheduled competition instance of a sport.
type Event struct {
	ID            int         `json:"id" db:"id"`
	Name          string      `json:"name" db:"name"`
	SportID       int         `json:"sport_id" db:"sport_id"`
	ScheduledTime time.Time   `json:"scheduled_time" db:"scheduled_time"`
	Location      *string     `json:"location,omitempty" db:"location"`
	Status        EventStatus `json:"status" db:"status"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`

	// Optional linked entities, populated by services.
	Sport        *Sport        `json:"sport,omitempty" db:"-"`
	Participants []Participant `json:"participants,omitempty" db:"-"`
	Results      []Result      `json:"results,omitempty" db:"-"`
}
