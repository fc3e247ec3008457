package domain

import (
	"errors"
	"time"
)

var ErrTokenNotFound = errors.New("token does not exist or already used")
var ErrTokenExpired = errors.New("token expired")

// RegistrationToken is the single-use credential mailed out at sign-up.
// It is deleted when redeemed; an expired token is rejected at redemption
// but never swept.
type RegistrationToken struct {
	Value     string    `json:"token"`
	AccountID string    `json:"account_id"`
	CreatedAt time.Time `json:"created_at"`
}

// IsExpired reports whether the token is older than ttl at the given instant.
func (t RegistrationToken) IsExpired(now time.Time, ttl time.Duration) bool {
	return now.Sub(t.CreatedAt) > ttl
}

// SessionToken is the opaque bearer credential issued on login or activation.
// One per account, reused across logins, valid until the account is deleted.
type SessionToken struct {
	Key       string    `json:"key"`
	AccountID string    `json:"account_id"`
	CreatedAt time.Time `json:"created_at"`
}
