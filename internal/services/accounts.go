// Package services contains the application services behind the CLI.
// This file defines the account service: registration, login, logout,
// profile updates and restoring the persisted session at start-up.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/ecovate/internal/auth"
	"github.com/dmitrijs2005/ecovate/internal/common"
	"github.com/dmitrijs2005/ecovate/internal/cryptox"
	"github.com/dmitrijs2005/ecovate/internal/logging"
	"github.com/dmitrijs2005/ecovate/internal/models"
	"github.com/dmitrijs2005/ecovate/internal/store"
)

// SessionListener is notified after every change of the active session.
// account is nil when no account is active.
type SessionListener interface {
	SessionChanged(ctx context.Context, account *models.Account) error
}

// AccountService defines account operations for the CLI.
//
// Contract:
//   - Register: create an account and make it the active session.
//     Duplicate emails (case-insensitive) fail with common.ErrAlreadyExists.
//   - Login: check email and secret; failures return common.ErrInvalidCredentials.
//   - Logout: clear the active session; always succeeds unless storage fails.
//   - UpdateProfile: change the display name and image; no-op without a session.
//   - RestoreSession: reload a persisted session, reporting whether one is active.
//   - Current: the active account without its credential.
type AccountService interface {
	Register(ctx context.Context, email string, secret []byte, displayName, profileImage string) (models.Account, error)
	Login(ctx context.Context, email string, secret []byte) (models.Account, error)
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, displayName, profileImage string) error
	RestoreSession(ctx context.Context) (bool, error)
	Current() (models.Account, bool)
}

// AccountOptions tunes the account service.
type AccountOptions struct {
	SessionSecret          []byte
	SessionTTL             time.Duration
	LoginAttemptsPerMinute int
	HashParams             cryptox.Params
}

type accountService struct {
	store    *store.Store
	opts     AccountOptions
	listener SessionListener
	throttle *loginThrottle
	logger   logging.Logger

	mu      sync.Mutex
	current *models.Account
}

// NewAccountService constructs an AccountService persisting to st.
// listener may be nil.
func NewAccountService(st *store.Store, opts AccountOptions, listener SessionListener, logger logging.Logger) AccountService {
	if opts.HashParams == (cryptox.Params{}) {
		opts.HashParams = cryptox.DefaultParams
	}
	return &accountService{
		store:    st,
		opts:     opts,
		listener: listener,
		throttle: newLoginThrottle(opts.LoginAttemptsPerMinute),
		logger:   logger.With("component", "accounts"),
	}
}

func (s *accountService) loadBook(ctx context.Context, st *store.Store) (models.AccountBook, error) {
	var book models.AccountBook
	found, err := st.Load(ctx, store.KeyAccounts, &book)
	if err != nil {
		return nil, fmt.Errorf("failed to get record[%s]: %w", store.KeyAccounts, err)
	}
	// a dropped corrupt record may have been partially decoded into book
	if !found || book == nil {
		book = models.AccountBook{}
	}
	return book, nil
}

func (s *accountService) newSession(acc models.Account) (models.Session, error) {
	token, err := auth.GenerateToken(acc.ID, s.opts.SessionSecret, s.opts.SessionTTL)
	if err != nil {
		return models.Session{}, err
	}
	return models.Session{Account: acc, Token: token, IssuedAt: time.Now().UTC()}, nil
}

// Register validates the input, hashes the secret, stores the account and
// the new session in one transaction, then activates the session.
func (s *accountService) Register(ctx context.Context, email string, secret []byte, displayName, profileImage string) (models.Account, error) {
	key := models.NormalizeEmail(email)
	displayName = strings.TrimSpace(displayName)

	if err := models.ValidateEmail(key); err != nil {
		return models.Account{}, fmt.Errorf("%w: email %q is not valid", common.ErrInvalidAccount, email)
	}
	if displayName == "" {
		return models.Account{}, fmt.Errorf("%w: display name is required", common.ErrInvalidAccount)
	}
	if len(secret) == 0 {
		return models.Account{}, fmt.Errorf("%w: password is required", common.ErrInvalidAccount)
	}

	hash, err := cryptox.HashSecret(secret, s.opts.HashParams)
	if err != nil {
		return models.Account{}, fmt.Errorf("hash secret: %w", err)
	}

	acc := models.Account{
		ID:           uuid.NewString(),
		Email:        key,
		DisplayName:  displayName,
		ProfileImage: strings.TrimSpace(profileImage),
	}

	err = s.store.WithTx(ctx, func(ctx context.Context, tx *store.Store) error {
		book, err := s.loadBook(ctx, tx)
		if err != nil {
			return err
		}
		if _, exists := book[key]; exists {
			return common.ErrAlreadyExists
		}
		book[key] = models.AccountRecord{Account: acc, SecretHash: hash}
		if err := tx.Save(ctx, store.KeyAccounts, book); err != nil {
			return err
		}
		sess, err := s.newSession(acc)
		if err != nil {
			return err
		}
		return tx.Save(ctx, store.KeySession, sess)
	})
	if err != nil {
		return models.Account{}, err
	}

	s.logger.Info(ctx, "account registered", "account_id", acc.ID)
	s.activate(ctx, &acc)
	return acc, nil
}

// Login checks the credential against the stored hash and persists a new
// session on success.
func (s *accountService) Login(ctx context.Context, email string, secret []byte) (models.Account, error) {
	key := models.NormalizeEmail(email)
	if !s.throttle.allow(key) {
		s.logger.Warn(ctx, "login throttled", "email", key)
		return models.Account{}, common.ErrTooManyAttempts
	}

	book, err := s.loadBook(ctx, s.store)
	if err != nil {
		return models.Account{}, err
	}
	rec, ok := book[key]
	if !ok {
		return models.Account{}, common.ErrInvalidCredentials
	}
	if err := cryptox.VerifySecret(secret, rec.SecretHash); err != nil {
		if !errors.Is(err, cryptox.ErrMismatch) {
			s.logger.Warn(ctx, "stored credential unreadable", "account_id", rec.ID, "error", err)
		}
		return models.Account{}, common.ErrInvalidCredentials
	}

	acc := rec.Account
	sess, err := s.newSession(acc)
	if err != nil {
		return models.Account{}, err
	}
	if err := s.store.Save(ctx, store.KeySession, sess); err != nil {
		return models.Account{}, fmt.Errorf("failed to save session: %w", err)
	}

	s.throttle.reset(key)
	s.logger.Info(ctx, "logged in", "account_id", acc.ID)
	s.activate(ctx, &acc)
	return acc, nil
}

// Logout removes the persisted session and deactivates the current account.
func (s *accountService) Logout(ctx context.Context) error {
	if err := s.store.Remove(ctx, store.KeySession); err != nil {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	s.activate(ctx, nil)
	return nil
}

// UpdateProfile writes the new profile to both the accounts mapping and
// the session snapshot.
func (s *accountService) UpdateProfile(ctx context.Context, displayName, profileImage string) error {
	cur, ok := s.Current()
	if !ok {
		return nil
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return fmt.Errorf("%w: display name is required", common.ErrInvalidAccount)
	}

	cur.DisplayName = displayName
	cur.ProfileImage = strings.TrimSpace(profileImage)

	err := s.store.WithTx(ctx, func(ctx context.Context, tx *store.Store) error {
		book, err := s.loadBook(ctx, tx)
		if err != nil {
			return err
		}
		key := models.NormalizeEmail(cur.Email)
		rec, ok := book[key]
		if !ok || rec.ID != cur.ID {
			return common.ErrNoActiveAccount
		}
		rec.Account = cur
		book[key] = rec
		if err := tx.Save(ctx, store.KeyAccounts, book); err != nil {
			return err
		}

		var sess models.Session
		found, err := tx.Load(ctx, store.KeySession, &sess)
		if err != nil {
			return err
		}
		if !found {
			if sess, err = s.newSession(cur); err != nil {
				return err
			}
		}
		sess.Account = cur
		return tx.Save(ctx, store.KeySession, sess)
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.current = &cur
	s.mu.Unlock()
	return nil
}

// RestoreSession accepts the persisted session only when its token verifies,
// names the snapshot account and that account still exists. A rejected
// session is removed.
func (s *accountService) RestoreSession(ctx context.Context) (bool, error) {
	var sess models.Session
	found, err := s.store.Load(ctx, store.KeySession, &sess)
	if err != nil {
		return false, fmt.Errorf("failed to get record[%s]: %w", store.KeySession, err)
	}
	if !found {
		s.activate(ctx, nil)
		return false, nil
	}

	reject := func(reason string, args ...any) (bool, error) {
		s.logger.Warn(ctx, "discarding persisted session", append([]any{"reason", reason}, args...)...)
		if err := s.store.Remove(ctx, store.KeySession); err != nil {
			return false, fmt.Errorf("failed to remove session: %w", err)
		}
		s.activate(ctx, nil)
		return false, nil
	}

	id, err := auth.GetAccountIDFromToken(sess.Token, s.opts.SessionSecret)
	if err != nil {
		return reject("token", "error", err)
	}
	if id != sess.Account.ID {
		return reject("subject mismatch")
	}

	book, err := s.loadBook(ctx, s.store)
	if err != nil {
		return false, err
	}
	rec, ok := book.FindByID(id)
	if !ok {
		return reject("account missing", "account_id", id)
	}

	acc := rec.Account
	s.activate(ctx, &acc)
	return true, nil
}

func (s *accountService) Current() (models.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return models.Account{}, false
	}
	return *s.current, true
}

func (s *accountService) activate(ctx context.Context, acc *models.Account) {
	s.mu.Lock()
	s.current = acc
	s.mu.Unlock()

	if s.listener == nil {
		return
	}
	if err := s.listener.SessionChanged(ctx, acc); err != nil {
		s.logger.Error(ctx, "session listener failed", "error", err)
	}
}
