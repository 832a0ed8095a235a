package models

import "time"

// Sport defines the point table (1st/2nd/3rd place awards) shared by its events.
// By convention PointsFirst >= PointsSecond >= PointsThird, but only
// non-negativity is enforced.
type Sport struct {
	ID                      int       `json:"id" db:"id"`
	Name                    string    `json:"name" db:"name"`
	Category                string    `json:"category" db:"category"`
	MaxParticipantsPerHouse int       `json:"max_participants_per_house" db:"max_participants_per_house"`
	PointsFirst             int       `json:"points_first" db:"points_first"`
	PointsSecond            int       `json:"points_second" db:"points_second"`
	PointsThird             int       `json:"points_third" db:"points_third"`
	CreatedAt               time.Time `json:"created_at" db:"created_at"`
}

// PointsForPosition maps a finishing position to the award from the point
// table. Positions below third earn nothing.
func (s Sport) PointsForPosition(position int) int {
	switch position {
	case 1:
		return s.PointsFirst
	case 2:
		return s.PointsSecond
	case 3:
		return s.PointsThird
	default:
		return 0
	}
}
