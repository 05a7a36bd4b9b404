// Package services contains the application services of the Vinobook client:
// the session store, the record list cache, the draft form controller, the
// photo uploader, and the orchestrator tying them together.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/zhenyuanliu98-svg/Vinobook/internal/client/api"
	sessionrepo "github.com/zhenyuanliu98-svg/Vinobook/internal/client/repositories/session"
	"github.com/zhenyuanliu98-svg/Vinobook/internal/dbx"
	"github.com/zhenyuanliu98-svg/Vinobook/internal/logging"
)

// Session owns the auth token and the signed-in identity. It is the single
// gate for authenticated operations: other services take a token snapshot
// from it before each call and report 401 responses back via Invalidate.
//
// The epoch increases on every login, logout, and invalidation; responses
// that started under an older epoch are discarded by their callers instead
// of being applied to the new session.
type Session struct {
	client api.Client
	db     *sql.DB
	log    logging.Logger

	mu         sync.Mutex
	token      string
	user       api.User
	epoch      uint64
	resetHooks []func()
}

// NewSession constructs a session store persisting into db.
func NewSession(client api.Client, db *sql.DB, log logging.Logger) *Session {
	return &Session{client: client, db: db, log: log}
}

// OnReset registers fn to run whenever the session ends, by logout or by the
// server rejecting the token. The record cache registers its clear here so
// no stale records are observable without a session.
func (s *Session) OnReset(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetHooks = append(s.resetHooks, fn)
}

// Login performs a demo login and persists the resulting session. A
// persistence failure is logged but does not fail the login; only the
// reload-survival is lost.
func (s *Session) Login(ctx context.Context, email string) error {
	auth, err := s.client.DemoLogin(ctx, email)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	s.mu.Lock()
	s.token = auth.AccessToken
	s.user = auth.User
	s.epoch++
	s.mu.Unlock()

	if err := s.save(ctx, auth); err != nil {
		s.log.Warn(ctx, "persisting session failed", "error", err)
	}

	s.log.Info(ctx, "logged in", "user", auth.User.Email)
	return nil
}

func (s *Session) save(ctx context.Context, auth api.Auth) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := sessionrepo.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, sessionrepo.KeyToken, []byte(auth.AccessToken)); err != nil {
			return err
		}
		if err := repo.Set(ctx, sessionrepo.KeyUserEmail, []byte(auth.User.Email)); err != nil {
			return err
		}
		return repo.Set(ctx, sessionrepo.KeyUserID, []byte(strconv.FormatInt(auth.User.ID, 10)))
	})
}

// Logout ends the session: token and identity are dropped, reset hooks run,
// and the persisted state is wiped. No partial logout state is observable.
func (s *Session) Logout(ctx context.Context) error {
	s.reset()

	repo := sessionrepo.NewSQLiteRepository(s.db)
	if err := repo.Clear(ctx); err != nil {
		return fmt.Errorf("clearing persisted session: %w", err)
	}

	s.log.Info(ctx, "logged out")
	return nil
}

// Invalidate is the 401 path: the server no longer accepts the token, so the
// session ends the same way a logout would. Persistence errors are only
// logged here; the in-memory session is gone regardless.
func (s *Session) Invalidate(ctx context.Context) {
	s.log.Warn(ctx, "session rejected by server, logging out")
	s.reset()

	repo := sessionrepo.NewSQLiteRepository(s.db)
	if err := repo.Clear(ctx); err != nil {
		s.log.Error(ctx, "clearing persisted session failed", "error", err)
	}
}

func (s *Session) reset() {
	s.mu.Lock()
	s.token = ""
	s.user = api.User{}
	s.epoch++
	hooks := make([]func(), len(s.resetHooks))
	copy(hooks, s.resetHooks)
	s.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}

// Restore loads the persisted session, if any. The token is a server-issued
// JWT; it is parsed WITHOUT signature verification (the client does not hold
// the server secret) solely to recover the identity claims and to drop a
// token that is already expired instead of showing records until the first
// 401 bounces the user out.
func (s *Session) Restore(ctx context.Context) error {
	repo := sessionrepo.NewSQLiteRepository(s.db)

	tok, err := repo.Get(ctx, sessionrepo.KeyToken)
	if err != nil {
		return fmt.Errorf("reading persisted session: %w", err)
	}
	if len(tok) == 0 {
		return nil
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(string(tok), claims); err != nil {
		s.log.Warn(ctx, "discarding unreadable persisted token", "error", err)
		return repo.Clear(ctx)
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil && exp.Before(time.Now()) {
		s.log.Info(ctx, "persisted token expired, staying logged out")
		return repo.Clear(ctx)
	}

	email, _ := claims["email"].(string)
	if email == "" {
		if b, err := repo.Get(ctx, sessionrepo.KeyUserEmail); err == nil {
			email = string(b)
		}
	}
	var userID int64
	if v, ok := claims["user_id"].(float64); ok {
		userID = int64(v)
	}

	s.mu.Lock()
	s.token = string(tok)
	s.user = api.User{ID: userID, Email: email}
	s.epoch++
	s.mu.Unlock()

	s.log.Info(ctx, "session restored", "user", email)
	return nil
}

// Snapshot returns the current token together with the epoch it belongs to.
// An empty token means unauthenticated; no request may be issued.
func (s *Session) Snapshot() (token string, epoch uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.epoch
}

// EpochIs reports whether the session is still the one epoch was taken from.
func (s *Session) EpochIs(epoch uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch == epoch
}

// LoggedIn reports whether a token is present.
func (s *Session) LoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

// User returns the signed-in identity, zero when logged out.
func (s *Session) User() api.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}
