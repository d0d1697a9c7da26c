package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Password  string
	IsAdmin   bool
	CreatedAt time.Time
}

type UpdateProfileParams struct {
	UserID   uuid.UUID
	Name     *string
	Email    *string
	Password *string
}
