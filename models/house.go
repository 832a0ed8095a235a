package models

import "time"

// House represents a team that accumulates points across events.
// TotalPoints is derived state: it is mutated only by the scoring workflow,
// never set directly through the API.
type House struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Color       string    `json:"color" db:"color"`
	TotalPoints int       `json:"total_points" db:"total_points"`
	CaptainID   *int      `json:"captain_id,omitempty" db:"captain_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	Captain *User `json:"captain,omitempty" db:"-"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo_url,omitempty" db:"-"`
}
