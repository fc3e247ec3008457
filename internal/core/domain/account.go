package domain

import (
	"errors"
	"time"
)

var ErrAccountExists = errors.New("account already exists")
var ErrAccountNotFound = errors.New("account not found")
var ErrAccountInUse = errors.New("account has orders and cannot be deleted")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidPassword = errors.New("invalid password for your account")
var ErrPasswordMismatch = errors.New("passwords do not match")
var ErrForbidden = errors.New("cannot edit other users data")

// Account models a registered user. Accounts are created inactive and become
// active exactly once, when a registration token is redeemed.
type Account struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	IsStaff      bool      `json:"is_staff"`
	IsSuperuser  bool      `json:"is_superuser"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
