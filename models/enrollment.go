package models

import "time"

// Enrollment is the roster row registering a participant into an event.
// It carries no ordering: positions exist only on Result rows once the
// event has been scored.
type Enrollment struct {
	EventID       int       `json:"event_id" db:"event_id"`
	ParticipantID int       `json:"participant_id" db:"participant_id"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`

	Participant *Participant `json:"participant,omitempty" db:"-"`
}
