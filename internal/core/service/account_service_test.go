package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/cinema-app/shop-api/internal/core/domain"
	"github.com/cinema-app/shop-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubAccountRepo struct {
	byID       map[string]*domain.Account
	byUsername map[string]*domain.Account
	nextID     int
	createErr  error
	updateErr  error
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{
		byID:       make(map[string]*domain.Account),
		byUsername: make(map[string]*domain.Account),
	}
}

func (r *stubAccountRepo) Create(_ context.Context, a *domain.Account) (*domain.Account, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	if _, ok := r.byUsername[a.Username]; ok {
		return nil, domain.ErrAccountExists
	}
	r.nextID++
	clone := *a
	clone.ID = fmt.Sprintf("acc-%d", r.nextID)
	r.byID[clone.ID] = &clone
	r.byUsername[clone.Username] = &clone
	out := clone
	return &out, nil
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubAccountRepo) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	a, ok := r.byUsername[username]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubAccountRepo) Update(_ context.Context, a *domain.Account) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	stored, ok := r.byID[a.ID]
	if !ok {
		return domain.ErrAccountNotFound
	}
	clone := *a
	r.byID[a.ID] = &clone
	r.byUsername[stored.Username] = &clone
	return nil
}

func (r *stubAccountRepo) Delete(_ context.Context, id string) error {
	a, ok := r.byID[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	delete(r.byUsername, a.Username)
	delete(r.byID, id)
	return nil
}

type stubRegTokenRepo struct {
	byValue   map[string]*domain.RegistrationToken
	createErr error
}

func newStubRegTokenRepo() *stubRegTokenRepo {
	return &stubRegTokenRepo{byValue: make(map[string]*domain.RegistrationToken)}
}

func (r *stubRegTokenRepo) Create(_ context.Context, t *domain.RegistrationToken) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *t
	r.byValue[t.Value] = &clone
	return nil
}

func (r *stubRegTokenRepo) FindByValue(_ context.Context, value string) (*domain.RegistrationToken, error) {
	t, ok := r.byValue[value]
	if !ok {
		return nil, domain.ErrTokenNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubRegTokenRepo) Delete(_ context.Context, value string) error {
	if _, ok := r.byValue[value]; !ok {
		return domain.ErrTokenNotFound
	}
	delete(r.byValue, value)
	return nil
}

func (r *stubRegTokenRepo) DeleteByAccount(_ context.Context, accountID string) error {
	for v, t := range r.byValue {
		if t.AccountID == accountID {
			delete(r.byValue, v)
		}
	}
	return nil
}

type stubSessionTokenRepo struct {
	byAccount map[string]*domain.SessionToken
	byKey     map[string]*domain.SessionToken
}

func newStubSessionTokenRepo() *stubSessionTokenRepo {
	return &stubSessionTokenRepo{
		byAccount: make(map[string]*domain.SessionToken),
		byKey:     make(map[string]*domain.SessionToken),
	}
}

func (r *stubSessionTokenRepo) GetOrCreate(_ context.Context, accountID, candidateKey string) (*domain.SessionToken, error) {
	if existing, ok := r.byAccount[accountID]; ok {
		clone := *existing
		return &clone, nil
	}
	t := &domain.SessionToken{Key: candidateKey, AccountID: accountID, CreatedAt: time.Now().UTC()}
	r.byAccount[accountID] = t
	r.byKey[candidateKey] = t
	clone := *t
	return &clone, nil
}

func (r *stubSessionTokenRepo) FindByKey(_ context.Context, key string) (*domain.SessionToken, error) {
	t, ok := r.byKey[key]
	if !ok {
		return nil, domain.ErrTokenNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubSessionTokenRepo) DeleteByAccount(_ context.Context, accountID string) error {
	if t, ok := r.byAccount[accountID]; ok {
		delete(r.byKey, t.Key)
		delete(r.byAccount, accountID)
	}
	return nil
}

type stubOrderCounter struct {
	countByAccount map[string]int64
}

func (r *stubOrderCounter) Create(_ context.Context, o *domain.Order) (*domain.Order, error) {
	return o, nil
}

func (r *stubOrderCounter) FindByID(_ context.Context, _ string, _ ports.DeletedFilter) (*domain.Order, error) {
	return nil, domain.ErrOrderNotFound
}

func (r *stubOrderCounter) List(_ context.Context, _ ports.DeletedFilter) ([]*domain.Order, error) {
	return nil, nil
}

func (r *stubOrderCounter) Update(_ context.Context, _ *domain.Order) error { return nil }

func (r *stubOrderCounter) SoftDelete(_ context.Context, _ string) error { return nil }

func (r *stubOrderCounter) CountByAccount(_ context.Context, accountID string) (int64, error) {
	return r.countByAccount[accountID], nil
}

type recordingMailQueue struct {
	sent []ports.ActivationEmail
}

func (q *recordingMailQueue) Enqueue(email ports.ActivationEmail) {
	q.sent = append(q.sent, email)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

type accountFixture struct {
	accounts *stubAccountRepo
	tokens   *stubRegTokenRepo
	sessions *stubSessionTokenRepo
	orders   *stubOrderCounter
	mail     *recordingMailQueue
	svc      *AccountService
}

func newAccountFixture() *accountFixture {
	f := &accountFixture{
		accounts: newStubAccountRepo(),
		tokens:   newStubRegTokenRepo(),
		sessions: newStubSessionTokenRepo(),
		orders:   &stubOrderCounter{countByAccount: make(map[string]int64)},
		mail:     &recordingMailQueue{},
	}
	f.svc = NewAccountService(f.accounts, f.tokens, f.sessions, f.orders, f.mail, time.Hour, discardLogger)
	return f
}

func registerInput(username string) ports.RegisterInput {
	return ports.RegisterInput{
		Username:        username,
		Email:           username + "@example.com",
		Password:        "s3cret-pass",
		PasswordConfirm: "s3cret-pass",
	}
}

// ---------------------------------------------------------------------------
// Register tests
// ---------------------------------------------------------------------------

func TestAccountService_Register_CreatesInactiveAccount(t *testing.T) {
	f := newAccountFixture()

	account, err := f.svc.Register(context.Background(), registerInput("pedro"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if account.ID == "" {
		t.Error("expected assigned account id")
	}
	if account.IsActive {
		t.Error("freshly registered account must be inactive")
	}
	stored := f.accounts.byID[account.ID]
	if stored == nil {
		t.Fatal("account not persisted")
	}
	if stored.PasswordHash == "s3cret-pass" {
		t.Error("password must be stored hashed")
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-pass")) != nil {
		t.Error("stored hash does not verify against the original password")
	}
}

func TestAccountService_Register_BindsExactlyOneToken(t *testing.T) {
	f := newAccountFixture()

	account, err := f.svc.Register(context.Background(), registerInput("pedro"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.tokens.byValue) != 1 {
		t.Fatalf("expected 1 registration token, got %d", len(f.tokens.byValue))
	}
	for _, token := range f.tokens.byValue {
		if token.AccountID != account.ID {
			t.Errorf("token bound to %q, want %q", token.AccountID, account.ID)
		}
		if token.CreatedAt.IsZero() {
			t.Error("token CreatedAt must be set")
		}
	}
}

func TestAccountService_Register_EnqueuesActivationEmail(t *testing.T) {
	f := newAccountFixture()

	_, err := f.svc.Register(context.Background(), registerInput("pedro"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.mail.sent) != 1 {
		t.Fatalf("expected 1 queued email, got %d", len(f.mail.sent))
	}
	sent := f.mail.sent[0]
	if sent.To != "pedro@example.com" {
		t.Errorf("email recipient: want %q, got %q", "pedro@example.com", sent.To)
	}
	if _, ok := f.tokens.byValue[sent.Token]; !ok {
		t.Errorf("mailed token %q is not the persisted one", sent.Token)
	}
}

func TestAccountService_Register_PasswordMismatch(t *testing.T) {
	f := newAccountFixture()

	in := registerInput("pedro")
	in.PasswordConfirm = "different"

	_, err := f.svc.Register(context.Background(), in)
	if !errors.Is(err, domain.ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
	if len(f.accounts.byID) != 0 {
		t.Error("mismatched passwords must not create an account")
	}
	if len(f.tokens.byValue) != 0 {
		t.Error("mismatched passwords must not create a token")
	}
	if len(f.mail.sent) != 0 {
		t.Error("mismatched passwords must not queue mail")
	}
}

func TestAccountService_Register_DuplicateUsername(t *testing.T) {
	f := newAccountFixture()

	if _, err := f.svc.Register(context.Background(), registerInput("pedro")); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, err := f.svc.Register(context.Background(), registerInput("pedro"))
	if !errors.Is(err, domain.ErrAccountExists) {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}
	if len(f.tokens.byValue) != 1 {
		t.Errorf("duplicate register must not add a token, got %d", len(f.tokens.byValue))
	}
}

func TestAccountService_Register_TokenFailureRollsBackAccount(t *testing.T) {
	f := newAccountFixture()
	f.tokens.createErr = errors.New("db unavailable")

	_, err := f.svc.Register(context.Background(), registerInput("pedro"))
	if err == nil {
		t.Fatal("expected error when token insert fails")
	}
	if len(f.accounts.byID) != 0 {
		t.Error("account must be rolled back when no token could be bound")
	}
	if len(f.mail.sent) != 0 {
		t.Error("no mail may be queued on failure")
	}
}

// ---------------------------------------------------------------------------
// Activate tests
// ---------------------------------------------------------------------------

func registerAndToken(t *testing.T, f *accountFixture, username string) (*domain.Account, string) {
	t.Helper()
	account, err := f.svc.Register(context.Background(), registerInput(username))
	if err != nil {
		t.Fatalf("seed register: %v", err)
	}
	if len(f.mail.sent) == 0 {
		t.Fatal("seed register queued no mail")
	}
	return account, f.mail.sent[len(f.mail.sent)-1].Token
}

func TestAccountService_Activate_Success(t *testing.T) {
	f := newAccountFixture()
	account, token := registerAndToken(t, f, "pedro")

	activated, err := f.svc.Activate(context.Background(), token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if activated.ID != account.ID {
		t.Errorf("activated wrong account: %q", activated.ID)
	}
	if !activated.IsActive {
		t.Error("account must be active after redemption")
	}
	if !f.accounts.byID[account.ID].IsActive {
		t.Error("active flag must be persisted")
	}
	if len(f.tokens.byValue) != 0 {
		t.Error("token must be consumed on success")
	}
}

func TestAccountService_Activate_SecondCallFails(t *testing.T) {
	f := newAccountFixture()
	_, token := registerAndToken(t, f, "pedro")

	if _, err := f.svc.Activate(context.Background(), token); err != nil {
		t.Fatalf("first activation failed: %v", err)
	}
	_, err := f.svc.Activate(context.Background(), token)
	if !errors.Is(err, domain.ErrTokenNotFound) {
		t.Fatalf("second redemption must fail with ErrTokenNotFound, got %v", err)
	}
}

func TestAccountService_Activate_UnknownToken(t *testing.T) {
	f := newAccountFixture()

	_, err := f.svc.Activate(context.Background(), "no-such-token")
	if !errors.Is(err, domain.ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound, got %v", err)
	}
}

func TestAccountService_Activate_ExpiredToken(t *testing.T) {
	f := newAccountFixture()
	account, token := registerAndToken(t, f, "pedro")

	// Age the token past the one-hour fixture TTL.
	f.tokens.byValue[token].CreatedAt = time.Now().UTC().Add(-61 * time.Minute)

	_, err := f.svc.Activate(context.Background(), token)
	if !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
	if f.accounts.byID[account.ID].IsActive {
		t.Error("expired redemption must not activate the account")
	}
	if _, ok := f.tokens.byValue[token]; !ok {
		t.Error("expired token must be left in place")
	}
}

func TestAccountService_Activate_JustInsideTTL(t *testing.T) {
	f := newAccountFixture()
	_, token := registerAndToken(t, f, "pedro")

	f.tokens.byValue[token].CreatedAt = time.Now().UTC().Add(-59 * time.Minute)

	if _, err := f.svc.Activate(context.Background(), token); err != nil {
		t.Fatalf("token inside its TTL must redeem, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// UpdateAccount tests
// ---------------------------------------------------------------------------

func activatedAccount(t *testing.T, f *accountFixture, username string) *domain.Account {
	t.Helper()
	_, token := registerAndToken(t, f, username)
	account, err := f.svc.Activate(context.Background(), token)
	if err != nil {
		t.Fatalf("seed activate: %v", err)
	}
	return account
}

func TestAccountService_Update_ChangesEmail(t *testing.T) {
	f := newAccountFixture()
	account := activatedAccount(t, f, "pedro")

	updated, err := f.svc.UpdateAccount(context.Background(), ports.UpdateAccountInput{
		AccountID: account.ID,
		Email:     "new@example.com",
		Password:  "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Email != "new@example.com" {
		t.Errorf("email not updated: %q", updated.Email)
	}
	if f.accounts.byID[account.ID].Email != "new@example.com" {
		t.Error("email change must be persisted")
	}
}

func TestAccountService_Update_ChangesPassword(t *testing.T) {
	f := newAccountFixture()
	account := activatedAccount(t, f, "pedro")

	_, err := f.svc.UpdateAccount(context.Background(), ports.UpdateAccountInput{
		AccountID:          account.ID,
		Password:           "s3cret-pass",
		NewPassword:        "brand-new-pass",
		NewPasswordConfirm: "brand-new-pass",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored := f.accounts.byID[account.ID]
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("brand-new-pass")) != nil {
		t.Error("new password does not verify")
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-pass")) == nil {
		t.Error("old password still verifies")
	}
}

func TestAccountService_Update_WrongCurrentPassword(t *testing.T) {
	f := newAccountFixture()
	account := activatedAccount(t, f, "pedro")

	_, err := f.svc.UpdateAccount(context.Background(), ports.UpdateAccountInput{
		AccountID: account.ID,
		Email:     "new@example.com",
		Password:  "wrong",
	})
	if !errors.Is(err, domain.ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
	if f.accounts.byID[account.ID].Email == "new@example.com" {
		t.Error("wrong password must not apply changes")
	}
}

func TestAccountService_Update_NewPasswordMismatch(t *testing.T) {
	f := newAccountFixture()
	account := activatedAccount(t, f, "pedro")

	_, err := f.svc.UpdateAccount(context.Background(), ports.UpdateAccountInput{
		AccountID:          account.ID,
		Password:           "s3cret-pass",
		NewPassword:        "one",
		NewPasswordConfirm: "two",
	})
	if !errors.Is(err, domain.ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// DeleteAccount tests
// ---------------------------------------------------------------------------

func TestAccountService_Delete_CascadesTokens(t *testing.T) {
	f := newAccountFixture()
	account := activatedAccount(t, f, "pedro")

	sessionSvc := NewSessionService(f.accounts, f.sessions, discardLogger)
	if _, err := sessionSvc.IssueForAccount(context.Background(), account); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	if err := f.svc.DeleteAccount(context.Background(), account.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := f.accounts.byID[account.ID]; ok {
		t.Error("account row must be gone")
	}
	if len(f.sessions.byAccount) != 0 {
		t.Error("session token must be cascaded")
	}
	if len(f.tokens.byValue) != 0 {
		t.Error("registration tokens must be cascaded")
	}
}

func TestAccountService_Delete_BlockedByOrders(t *testing.T) {
	f := newAccountFixture()
	account := activatedAccount(t, f, "pedro")
	f.orders.countByAccount[account.ID] = 2

	err := f.svc.DeleteAccount(context.Background(), account.ID)
	if !errors.Is(err, domain.ErrAccountInUse) {
		t.Fatalf("expected ErrAccountInUse, got %v", err)
	}
	if _, ok := f.accounts.byID[account.ID]; !ok {
		t.Error("blocked delete must leave the account in place")
	}
}

func TestAccountService_Delete_UnknownAccount(t *testing.T) {
	f := newAccountFixture()

	err := f.svc.DeleteAccount(context.Background(), "acc-missing")
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}
