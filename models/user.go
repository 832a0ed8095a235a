package models

import "time"

type UserRole string

const (
	RoleAdmin        UserRole = "admin"
	RoleParent       UserRole = "parent"
	RoleHouseCaptain UserRole = "house_captain"
)

type User struct {
	ID           int       `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Role         UserRole  `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
