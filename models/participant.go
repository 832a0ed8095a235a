package models

import "time"

type Participant struct {
	ID            int       `json:"id" db:"id"`
	FullName      string    `json:"full_name" db:"full_name"`
	Age           int       `json:"age" db:"age"`
	HouseID       int       `json:"house_id" db:"house_id"`
	GuardianID    *int      `json:"guardian_id,omitempty" db:"guardian_id"`
	GuardianEmail *string   `json:"guardian_email,omitempty" db:"guardian_email"`
	IsActive      bool      `json:"is_active" db:"is_active"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`

	House *House `json:"house,omitempty" db:"-"`
}
