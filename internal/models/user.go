package models

import (
	"time"
)

// Project is a portfolio entry owned by a user. The auth flow never touches
// these; they are persisted and returned on the profile endpoint.
type Project struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UserID      uint   `gorm:"index" json:"-"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"not null" json:"description"`
	Link        string `json:"link"`
}

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name        string `gorm:"not null" json:"name"`
	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	Password    string `json:"-"`
	PhoneNumber string `gorm:"uniqueIndex;not null" json:"phone_number"`
	Verified    bool   `gorm:"default:false" json:"verified"`

	// The pending challenge: at most one per user, shared between email
	// verification and login. OTPCode and OTPExpiresAt are always written
	// together through SetChallenge/ClearChallenge.
	OTPCode      *string    `json:"-"`
	OTPExpiresAt *time.Time `json:"-"`

	Heading  string    `json:"heading"`
	Bio      string    `json:"bio"`
	Projects []Project `json:"projects"`
}

// SetChallenge replaces any pending challenge with a fresh code.
func (u *User) SetChallenge(code string, expiresAt time.Time) {
	u.OTPCode = &code
	u.OTPExpiresAt = &expiresAt
}

// ClearChallenge removes the pending challenge. Both fields go together.
func (u *User) ClearChallenge() {
	u.OTPCode = nil
	u.OTPExpiresAt = nil
}

// ChallengeMatches reports whether code equals the pending challenge and the
// challenge has not expired at instant now. Expiry is strict: a code submitted
// exactly at its expiry timestamp is rejected.
func (u *User) ChallengeMatches(code string, now time.Time) bool {
	if u.OTPCode == nil || u.OTPExpiresAt == nil {
		return false
	}
	return *u.OTPCode == code && now.Before(*u.OTPExpiresAt)
}
