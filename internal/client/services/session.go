package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/blogclient/internal/client/forms"
	"github.com/dmitrijs2005/blogclient/internal/client/models"
	"github.com/dmitrijs2005/blogclient/internal/client/notify"
)

// Session is the part of session.Store the services depend on.
type Session interface {
	IsAuthenticated(ctx context.Context) bool
	Token(ctx context.Context) (string, error)
	LogIn(ctx context.Context, token string, expiry time.Time) error
	LogOut(ctx context.Context) error
	RefreshCurrentUser(ctx context.Context) (models.User, error)
}

// requireToken returns the session token, or flashes and fails with
// ErrNotAuthenticated when there is no live session.
func requireToken(ctx context.Context, s Session, f notify.Flasher) (string, error) {
	if !s.IsAuthenticated(ctx) {
		f.Flash(MsgMustLogIn, notify.Warning)
		return "", ErrNotAuthenticated
	}
	token, err := s.Token(ctx)
	if err != nil {
		f.Flash(MsgMustLogIn, notify.Warning)
		return "", fmt.Errorf("%w: %w", ErrNotAuthenticated, err)
	}
	return token, nil
}

// validateForm flashes validation problems as a warning. Only sign-up is
// gated this way; every other form goes straight to the server.
func validateForm(f notify.Flasher, form any) error {
	if err := forms.Validate(form); err != nil {
		f.Flash(err.Error(), notify.Warning)
		return fmt.Errorf("%w: %w", ErrInvalidForm, err)
	}
	return nil
}
