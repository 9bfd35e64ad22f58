package user

import (
	"time"
)

// ID is an opaque user identifier. It is the sole authorization key for
// task ownership, so equality goes through Is rather than ad-hoc string
// comparison scattered across callers.
type ID string

// Is reports whether two identifiers name the same user.
func (id ID) Is(other ID) bool {
	return id != "" && id == other
}

// String returns the raw identifier.
func (id ID) String() string {
	return string(id)
}

// User represents a user entity in the system.
type User struct {
	ID           string `gorm:"primaryKey;type:text"`
	Name         string `gorm:"not null;type:text"`
	Email        string `gorm:"uniqueIndex;not null;type:text"`
	PasswordHash string `gorm:"not null;type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for the User entity.
func (User) TableName() string {
	return "users"
}

// TokenPair represents access and refresh tokens.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// Claims represents JWT claims.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}
