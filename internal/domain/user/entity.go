package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is an account. Email is stored normalized and unique; PasswordHash is
// a bcrypt hash and never leaves the auth usecase.
type User struct {
	ID           uuid.UUID
	Email        string
	FullName     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeEmail is the form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// LocalPart returns the part of email before '@', or email itself when it
// has no local part.
func LocalPart(email string) string {
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return email
}
