// Package session owns the local login state: the bearer token, its expiry
// and a cached copy of the logged-in user. All three live in the metadata
// table so a session survives restarts.
//
// A session is authenticated while a token is stored and its expiry is
// strictly in the future. Expiry is checked lazily on every query; there is
// no background timer.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/blogclient/internal/client/api"
	"github.com/dmitrijs2005/blogclient/internal/client/models"
	"github.com/dmitrijs2005/blogclient/internal/client/notify"
	"github.com/dmitrijs2005/blogclient/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/blogclient/internal/dbx"
	"github.com/dmitrijs2005/blogclient/internal/logging"
)

// Metadata keys.
const (
	KeyToken       = "token"
	KeyTokenExp    = "tokenExp"
	KeyCurrentUser = "currentUser"
)

const LoggedOutMessage = "You have been logged out"

var (
	ErrNoSession     = errors.New("no active session")
	ErrEmptyToken    = errors.New("empty token")
	ErrInvalidExpiry = errors.New("invalid token expiry")
)

type Store struct {
	db     *sql.DB
	client api.Client
	flash  notify.Flasher
	now    func() time.Time
	log    logging.Logger
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.log = l }
}

func NewStore(db *sql.DB, client api.Client, flash notify.Flasher, opts ...Option) *Store {
	s := &Store{
		db:     db,
		client: client,
		flash:  flash,
		now:    time.Now,
		log:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) getMetadataRepo() metadata.Repository {
	return metadata.NewSQLiteRepository(s.db)
}

// IsAuthenticated reports whether a token is stored and has not expired.
// Storage errors and an unreadable expiry count as not authenticated.
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	if _, err := s.Token(ctx); err != nil {
		return false
	}

	exp, err := s.Expiry(ctx)
	if err != nil {
		s.log.Debug(ctx, "session expiry unreadable", "error", err)
		return false
	}
	return exp.After(s.now())
}

// Token returns the stored bearer token or ErrNoSession.
func (s *Store) Token(ctx context.Context) (string, error) {
	raw, err := s.getMetadataRepo().Get(ctx, KeyToken)
	if errors.Is(err, metadata.ErrNotFound) || (err == nil && len(raw) == 0) {
		return "", ErrNoSession
	}
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// Expiry returns the stored token expiry.
func (s *Store) Expiry(ctx context.Context) (time.Time, error) {
	raw, err := s.getMetadataRepo().Get(ctx, KeyTokenExp)
	if errors.Is(err, metadata.ErrNotFound) {
		return time.Time{}, ErrNoSession
	}
	if err != nil {
		return time.Time{}, err
	}

	exp, err := time.Parse(time.RFC3339Nano, string(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidExpiry, err)
	}
	return exp, nil
}

// CachedUser returns the user snapshot from the last successful refresh, or
// nil when there is none. It never touches the network.
func (s *Store) CachedUser(ctx context.Context) (*models.User, error) {
	raw, err := s.getMetadataRepo().Get(ctx, KeyCurrentUser)
	if errors.Is(err, metadata.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("decode cached user: %w", err)
	}
	return &u, nil
}

// LogIn stores a freshly issued token. Any user cached from a previous
// session is dropped; call RefreshCurrentUser to load the new one.
func (s *Store) LogIn(ctx context.Context, token string, expiry time.Time) error {
	if token == "" {
		return ErrEmptyToken
	}
	if expiry.IsZero() {
		return ErrInvalidExpiry
	}

	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, KeyToken, []byte(token)); err != nil {
			return err
		}
		if err := repo.Set(ctx, KeyTokenExp, []byte(expiry.UTC().Format(time.RFC3339Nano))); err != nil {
			return err
		}
		return repo.Delete(ctx, KeyCurrentUser)
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	s.log.Info(ctx, "session started", "expires", expiry)
	return nil
}

// LogOut clears the session and announces it.
func (s *Store) LogOut(ctx context.Context) error {
	if err := s.clear(ctx); err != nil {
		return err
	}
	s.flash.Flash(LoggedOutMessage, notify.Dark)
	s.log.Info(ctx, "session ended")
	return nil
}

// RefreshCurrentUser fetches the user behind the stored token and caches it.
// Any failure, including a network error, ends the session without a
// notification and returns the cause; API failures come back as *api.Error.
func (s *Store) RefreshCurrentUser(ctx context.Context) (models.User, error) {
	token, err := s.Token(ctx)
	if err != nil {
		s.invalidate(ctx)
		return models.User{}, err
	}

	res := s.client.GetCurrentUser(ctx, token)
	if !res.OK() {
		s.invalidate(ctx)
		return models.User{}, res.Err
	}

	raw, err := json.Marshal(res.Data)
	if err != nil {
		return models.User{}, fmt.Errorf("encode current user: %w", err)
	}
	if err := s.getMetadataRepo().Set(ctx, KeyCurrentUser, raw); err != nil {
		return models.User{}, fmt.Errorf("cache current user: %w", err)
	}
	return res.Data, nil
}

func (s *Store) invalidate(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	if err := s.clear(ctx); err != nil {
		s.log.Error(ctx, "failed to invalidate session", "error", err)
		return
	}
	s.log.Info(ctx, "session invalidated")
}

func (s *Store) clear(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Delete(ctx, KeyToken, KeyTokenExp, KeyCurrentUser)
	})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
