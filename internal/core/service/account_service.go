package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/cinema-app/shop-api/internal/core/domain"
	"github.com/cinema-app/shop-api/internal/core/ports"
)

// AccountService implements the account lifecycle: registration with a
// mailed activation token, single-use activation, profile updates, deletion.
type AccountService struct {
	accounts  ports.AccountRepository
	regTokens ports.RegistrationTokenRepository
	sessions  ports.SessionTokenRepository
	orders    ports.OrderRepository
	mail      ports.MailQueue
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAccountService(
	accounts ports.AccountRepository,
	regTokens ports.RegistrationTokenRepository,
	sessions ports.SessionTokenRepository,
	orders ports.OrderRepository,
	mail ports.MailQueue,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) *AccountService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AccountService{
		accounts:  accounts,
		regTokens: regTokens,
		sessions:  sessions,
		orders:    orders,
		mail:      mail,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// Register creates an inactive account, binds exactly one registration token
// to it, and queues the activation email. The password pair is checked before
// anything touches the store.
func (s *AccountService) Register(ctx context.Context, input ports.RegisterInput) (*domain.Account, error) {
	if input.Password != input.PasswordConfirm {
		return nil, domain.ErrPasswordMismatch
	}
	if input.Username == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		IsActive:     false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.accounts.Create(ctx, account)
	if err != nil {
		return nil, err
	}

	token := &domain.RegistrationToken{
		Value:     uuid.NewString(),
		AccountID: created.ID,
		CreatedAt: now,
	}
	if err := s.regTokens.Create(ctx, token); err != nil {
		// No orphaned account without a way to activate it.
		if delErr := s.accounts.Delete(ctx, created.ID); delErr != nil {
			s.logger.Error().Err(delErr).Str("account_id", created.ID).Msg("rollback of account failed")
		}
		return nil, fmt.Errorf("create registration token: %w", err)
	}

	s.mail.Enqueue(ports.ActivationEmail{
		To:       created.Email,
		Username: created.Username,
		Token:    token.Value,
	})

	s.logger.Info().Str("account_id", created.ID).Str("username", created.Username).Msg("account registered")
	return created, nil
}

// Activate redeems a registration token. On success the account is active and
// the token is gone; a second call with the same value fails with
// domain.ErrTokenNotFound. Expired tokens are rejected but left in place.
func (s *AccountService) Activate(ctx context.Context, tokenValue string) (*domain.Account, error) {
	token, err := s.regTokens.FindByValue(ctx, tokenValue)
	if err != nil {
		return nil, err
	}
	if token.IsExpired(time.Now().UTC(), s.tokenTTL) {
		return nil, domain.ErrTokenExpired
	}

	account, err := s.accounts.FindByID(ctx, token.AccountID)
	if err != nil {
		return nil, err
	}

	account.IsActive = true
	account.UpdatedAt = time.Now().UTC()
	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("activate account: %w", err)
	}

	// The delete is the single-use guard: when two redemptions race, only
	// the one that removes the row wins.
	if err := s.regTokens.Delete(ctx, tokenValue); err != nil {
		return nil, err
	}

	s.logger.Info().Str("account_id", account.ID).Str("username", account.Username).Msg("account activated")
	return account, nil
}

func (s *AccountService) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return s.accounts.FindByID(ctx, id)
}

// UpdateAccount applies a self-service profile change. The caller's current
// password is re-verified first, whether or not the password is what changes.
func (s *AccountService) UpdateAccount(ctx context.Context, input ports.UpdateAccountInput) (*domain.Account, error) {
	account, err := s.accounts.FindByID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(input.Password)) != nil {
		return nil, domain.ErrInvalidPassword
	}
	if input.NewPassword != input.NewPasswordConfirm {
		return nil, domain.ErrPasswordMismatch
	}

	if input.Email != "" {
		account.Email = input.Email
	}
	if input.NewPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		account.PasswordHash = string(hash)
	}

	account.UpdatedAt = time.Now().UTC()
	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("update account: %w", err)
	}
	return account, nil
}

// DeleteAccount removes the account and cascades to its tokens. Orders
// protect the account: any reference, soft-deleted or not, blocks deletion.
func (s *AccountService) DeleteAccount(ctx context.Context, id string) error {
	if _, err := s.accounts.FindByID(ctx, id); err != nil {
		return err
	}

	n, err := s.orders.CountByAccount(ctx, id)
	if err != nil {
		return fmt.Errorf("count orders: %w", err)
	}
	if n > 0 {
		return domain.ErrAccountInUse
	}

	if err := s.regTokens.DeleteByAccount(ctx, id); err != nil && !errors.Is(err, domain.ErrTokenNotFound) {
		return fmt.Errorf("delete registration tokens: %w", err)
	}
	if err := s.sessions.DeleteByAccount(ctx, id); err != nil {
		return fmt.Errorf("delete session token: %w", err)
	}
	if err := s.accounts.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("account_id", id).Msg("account deleted")
	return nil
}
