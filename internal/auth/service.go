// Package auth implements the mocked admin login: account lookup, argon2id
// password verification, lockout accounting and session scopes.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gamingclub/internal/common"
	"github.com/dmitrijs2005/gamingclub/internal/kv"
	"github.com/dmitrijs2005/gamingclub/internal/logging"
	"github.com/dmitrijs2005/gamingclub/internal/models"
	"github.com/dmitrijs2005/gamingclub/internal/timex"
)

const (
	ShortSessionTTL    = 24 * time.Hour
	RememberSessionTTL = 30 * 24 * time.Hour

	SeedAdminUsername = "admin"
	SeedAdminPassword = "admin123"
	SeedAdminEmail    = "admin@gamingclub.com"
)

// Surface is a page that runs the session check on load.
type Surface int

const (
	SurfaceLogin Surface = iota
	SurfaceAdmin
)

// Decision tells the caller where the user belongs.
type Decision int

const (
	Stay Decision = iota
	RedirectToLogin
	RedirectToAdmin
)

// LoginInput is the login form. ClientID is optional; when empty the
// persisted client identifier is used for lockout accounting.
type LoginInput struct {
	Username   string
	Password   []byte
	RememberMe bool
	ClientID   string
}

// Service handles logins and session checks.
//
// The long repository holds accounts, failed attempts, the client id and the
// remembered session. The short repository holds the per-process session.
type Service struct {
	long     kv.Repository
	short    kv.Repository
	hasher   Hasher
	tokens   *TokenIssuer
	attempts *attemptLog
	now      func() time.Time
	logger   logging.Logger
}

type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithHasher replaces the default argon2id hasher.
func WithHasher(h Hasher) Option {
	return func(s *Service) { s.hasher = h }
}

func NewService(long, short kv.Repository, secret []byte, logger logging.Logger, opts ...Option) *Service {
	s := &Service{
		long:   long,
		short:  short,
		hasher: NewArgon2(),
		now:    time.Now,
		logger: logger.With("component", "auth"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.tokens = NewTokenIssuer(secret, s.now)
	s.attempts = &attemptLog{repo: long, now: s.now, logger: s.logger}
	return s
}

// Login runs one attempt: lockout check, account lookup, password check,
// then session creation. Unknown users and wrong passwords fail with the same
// common.ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, in LoginInput) (models.AccountView, error) {
	fields := make(map[string]string)
	if in.Username == "" {
		fields["username"] = "username is required"
	}
	if len(in.Password) == 0 {
		fields["password"] = "password is required"
	}
	if len(fields) > 0 {
		return models.AccountView{}, common.NewValidationError(fields)
	}

	clientID := in.ClientID
	if clientID == "" {
		id, err := StableClientID(ctx, s.long)
		if err != nil {
			return models.AccountView{}, fmt.Errorf("login error: %w", err)
		}
		clientID = id
	}

	locked, err := s.attempts.IsLocked(ctx, clientID)
	if err != nil {
		return models.AccountView{}, fmt.Errorf("login error: %w", err)
	}
	if locked {
		s.logger.Warn(ctx, "login rejected, client locked out", "client_id", clientID)
		return models.AccountView{}, common.ErrLockedOut
	}

	accounts, err := s.Accounts(ctx)
	if err != nil {
		return models.AccountView{}, fmt.Errorf("login error: %w", err)
	}

	idx := -1
	for i, a := range accounts {
		if a.Username == in.Username {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.AccountView{}, s.fail(ctx, clientID)
	}

	ok, err := s.hasher.Verify(in.Password, accounts[idx].PasswordHash)
	if err != nil {
		s.logger.Error(ctx, "stored password hash is unusable", "user_id", accounts[idx].ID, "error", err)
	}
	if !ok {
		return models.AccountView{}, s.fail(ctx, clientID)
	}

	if err := s.attempts.Reset(ctx, clientID); err != nil {
		return models.AccountView{}, fmt.Errorf("login error: %w", err)
	}

	now := s.now()
	accounts[idx].LastLogin = &now
	if err := s.saveAccounts(ctx, accounts); err != nil {
		return models.AccountView{}, fmt.Errorf("login error: %w", err)
	}

	if err := s.startSession(ctx, accounts[idx].ID, in.RememberMe); err != nil {
		return models.AccountView{}, fmt.Errorf("login error: %w", err)
	}

	s.logger.Info(ctx, "login succeeded", "user_id", accounts[idx].ID, "remember", in.RememberMe)
	return accounts[idx].View(), nil
}

func (s *Service) fail(ctx context.Context, clientID string) error {
	n, err := s.attempts.RecordFailure(ctx, clientID)
	if err != nil {
		return fmt.Errorf("login error: %w", err)
	}
	s.logger.Warn(ctx, "login failed", "client_id", clientID, "attempts", n)
	return common.ErrInvalidCredentials
}

// startSession stores the session in the scope picked by remember and drops
// any session left in the other scope.
func (s *Service) startSession(ctx context.Context, userID int, remember bool) error {
	target, other, ttl := s.short, s.long, ShortSessionTTL
	if remember {
		target, other, ttl = s.long, s.short, RememberSessionTTL
	}

	expiresAt := s.now().Add(ttl)
	token, err := s.tokens.Mint(userID, expiresAt)
	if err != nil {
		return err
	}

	sess := models.Session{UserID: userID, Token: token, ExpiresAt: timex.FromTime(expiresAt)}
	if err := kv.SaveJSON(ctx, target, common.KeySession, sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if err := other.Delete(ctx, common.KeySession); err != nil {
		return fmt.Errorf("drop stale session: %w", err)
	}
	return nil
}

// Logout clears both session scopes.
func (s *Service) Logout(ctx context.Context) error {
	for _, r := range []kv.Repository{s.short, s.long} {
		if err := r.Delete(ctx, common.KeySession); err != nil {
			return fmt.Errorf("logout error: %w", err)
		}
	}
	s.logger.Info(ctx, "logged out")
	return nil
}

// Current runs the session check. It returns nil when nobody is logged in.
// An expired session clears both scopes.
func (s *Service) Current(ctx context.Context) (*models.AccountView, error) {
	sess, err := s.readSession(ctx, s.short)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		if sess, err = s.readSession(ctx, s.long); err != nil {
			return nil, err
		}
	}
	if sess == nil {
		return nil, nil
	}

	if !s.now().Before(sess.ExpiresAt.Time) {
		s.logger.Info(ctx, "session expired", "user_id", sess.UserID)
		return nil, s.Logout(ctx)
	}

	uid, err := s.tokens.UserID(sess.Token)
	if err != nil || uid != sess.UserID {
		s.logger.Warn(ctx, "session token rejected", "user_id", sess.UserID, "error", err)
		return nil, nil
	}

	accounts, err := s.Accounts(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		if a.ID == sess.UserID {
			v := a.View()
			return &v, nil
		}
	}
	return nil, nil
}

// Guard decides what a surface should do on load. The admin surface needs a
// valid admin session; the login surface forwards admins to the panel.
func (s *Service) Guard(ctx context.Context, surface Surface) (Decision, *models.AccountView, error) {
	who, err := s.Current(ctx)
	if err != nil {
		return Stay, nil, err
	}
	isAdmin := who != nil && who.IsAdmin()

	switch surface {
	case SurfaceAdmin:
		if !isAdmin {
			return RedirectToLogin, who, nil
		}
	case SurfaceLogin:
		if isAdmin {
			return RedirectToAdmin, who, nil
		}
	}
	return Stay, who, nil
}

func (s *Service) readSession(ctx context.Context, r kv.Repository) (*models.Session, error) {
	var sess models.Session
	found, err := kv.LoadJSON(ctx, r, common.KeySession, &sess)
	if errors.Is(err, kv.ErrMalformed) {
		s.logger.Warn(ctx, "session document is malformed, ignoring", "error", err)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &sess, nil
}

// Accounts returns the account collection, creating the seed admin when
// the collection is missing, malformed or empty.
func (s *Service) Accounts(ctx context.Context) ([]models.Account, error) {
	var accounts []models.Account
	_, err := kv.LoadJSON(ctx, s.long, common.KeyAccounts, &accounts)
	if errors.Is(err, kv.ErrMalformed) {
		s.logger.Warn(ctx, "accounts document is malformed, reseeding", "error", err)
		accounts = nil
	} else if err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	if len(accounts) > 0 {
		return accounts, nil
	}

	hash, err := s.hasher.Hash([]byte(SeedAdminPassword))
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}
	accounts = []models.Account{{
		ID:           1,
		Username:     SeedAdminUsername,
		PasswordHash: hash,
		Email:        SeedAdminEmail,
		Role:         models.RoleAdmin,
		CreatedAt:    s.now(),
	}}
	if err := s.saveAccounts(ctx, accounts); err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "seeded admin account")
	return accounts, nil
}

func (s *Service) saveAccounts(ctx context.Context, accounts []models.Account) error {
	if err := kv.SaveJSON(ctx, s.long, common.KeyAccounts, accounts); err != nil {
		return fmt.Errorf("save accounts: %w", err)
	}
	return nil
}
