package domain

import (
	"time"

	"github.com/google/uuid"
)

const PasswordResetTTL = 15 * time.Minute

type PasswordResetToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Token     string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

func (t *PasswordResetToken) Valid(now time.Time) bool {
	return !t.Used && t.ExpiresAt.After(now)
}
