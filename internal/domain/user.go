package domain

import "time"

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	Role         Role
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

func IsValidStatus(s string) bool {
	return s == string(StatusActive) || s == string(StatusSuspended)
}
