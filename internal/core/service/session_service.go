package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/cinema-app/shop-api/internal/core/domain"
	"github.com/cinema-app/shop-api/internal/core/ports"
)

// SessionService exchanges credentials for the account's opaque session key.
// Keys are get-or-create: one live key per account, reused across logins.
type SessionService struct {
	accounts ports.AccountRepository
	sessions ports.SessionTokenRepository
	logger   zerolog.Logger
}

func NewSessionService(accounts ports.AccountRepository, sessions ports.SessionTokenRepository, logger zerolog.Logger) *SessionService {
	return &SessionService{accounts: accounts, sessions: sessions, logger: logger}
}

// IssueByPassword authenticates with username and password. Unknown username
// and wrong password collapse into the same error so callers cannot probe
// which usernames exist. Active status is deliberately not checked here.
func (s *SessionService) IssueByPassword(ctx context.Context, username, password string) (*ports.Session, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	account, err := s.accounts.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.IssueForAccount(ctx, account)
}

// IssueByToken validates an existing session key and echoes the account
// metadata, for session resumption.
func (s *SessionService) IssueByToken(ctx context.Context, key string) (*ports.Session, error) {
	account, err := s.Resolve(ctx, key)
	if err != nil {
		return nil, err
	}
	return &ports.Session{
		Token:     key,
		AccountID: account.ID,
		Username:  account.Username,
		IsAdmin:   account.IsSuperuser,
		IsStaff:   account.IsStaff,
	}, nil
}

// IssueForAccount fetches or mints the account's session token. The store's
// unique constraint on the account reference keeps concurrent logins from
// creating two keys.
func (s *SessionService) IssueForAccount(ctx context.Context, account *domain.Account) (*ports.Session, error) {
	token, err := s.sessions.GetOrCreate(ctx, account.ID, newSessionKey())
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Str("account_id", account.ID).Msg("session token issued")
	return &ports.Session{
		Token:     token.Key,
		AccountID: account.ID,
		Username:  account.Username,
		IsAdmin:   account.IsSuperuser,
		IsStaff:   account.IsStaff,
	}, nil
}

// Resolve maps a bearer key to its owning account.
func (s *SessionService) Resolve(ctx context.Context, key string) (*domain.Account, error) {
	if key == "" {
		return nil, domain.ErrInvalidCredentials
	}
	token, err := s.sessions.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	account, err := s.accounts.FindByID(ctx, token.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	return account, nil
}

// newSessionKey returns a 40-character hex key from 20 random bytes.
func newSessionKey() string {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		panic("session key entropy unavailable: " + err.Error())
	}
	return hex.EncodeToString(b)
}
