package user

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. Accounts start unconfirmed and cannot
// sign in until their confirmation token is redeemed
type User struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`

	Email        string     `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"`
	ConfirmedAt  *time.Time `json:"confirmed_at,omitempty"`
	ConfirmToken string     `json:"-" gorm:"size:36;index"`
}

// TableName specifies the database table name for GORM
func (*User) TableName() string {
	return "users"
}

// Confirmed reports whether the account has completed email confirmation
func (u *User) Confirmed() bool {
	return u.ConfirmedAt != nil
}

// Token is a bearer session token. The token value itself is the
// primary key
type Token struct {
	ID        uuid.UUID `json:"token" gorm:"type:char(36);primaryKey;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`

	UserID    uuid.UUID `json:"user_id" gorm:"type:char(36);not null;index"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index;not null"`
}

// TableName specifies the database table name for GORM
func (*Token) TableName() string {
	return "auth_tokens"
}

// Expired reports whether the token is past its expiry
func (t *Token) Expired() bool {
	return time.Now().UTC().After(t.ExpiresAt)
}
