package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/blogclient/internal/client/api"
	"github.com/dmitrijs2005/blogclient/internal/client/models"
	"github.com/dmitrijs2005/blogclient/internal/client/notify"
	"github.com/dmitrijs2005/blogclient/internal/logging"
)

// UserService backs the profile editor. Users can only edit themselves.
type UserService struct {
	client  api.Client
	session Session
	flash   notify.Flasher
	log     logging.Logger
}

func NewUserService(client api.Client, session Session, flash notify.Flasher, log logging.Logger) *UserService {
	return &UserService{client: client, session: session, flash: flash, log: log}
}

// Me returns the logged-in user, fetched fresh.
func (s *UserService) Me(ctx context.Context) (models.User, error) {
	if _, err := requireToken(ctx, s.session, s.flash); err != nil {
		return models.User{}, err
	}

	user, err := s.session.RefreshCurrentUser(ctx)
	if err != nil {
		flashError(s.flash, err)
		return models.User{}, err
	}
	return user, nil
}

// LoadForEdit returns the user with id for the editor, which must be the
// logged-in user.
func (s *UserService) LoadForEdit(ctx context.Context, id int) (models.User, error) {
	user, err := s.Me(ctx)
	if err != nil {
		return models.User{}, err
	}
	if user.ID != id {
		s.flash.Flash(MsgForbiddenEditUser, notify.Danger)
		return models.User{}, ErrForbidden
	}
	return user, nil
}

// Update saves the profile of the logged-in user and refreshes the cached
// copy. Empty fields, the password included, are left to the server.
func (s *UserService) Update(ctx context.Context, form models.UserForm) (models.User, error) {
	user, err := s.Me(ctx)
	if err != nil {
		return models.User{}, err
	}
	token, err := requireToken(ctx, s.session, s.flash)
	if err != nil {
		return models.User{}, err
	}

	res := s.client.EditUser(ctx, user.ID, token, form)
	if !res.OK() {
		flashAPIError(s.flash, res.Err)
		return models.User{}, res.Err
	}

	updated, err := s.session.RefreshCurrentUser(ctx)
	if err != nil {
		flashError(s.flash, err)
		return models.User{}, fmt.Errorf("refresh after update: %w", err)
	}

	s.log.Info(ctx, "user updated", "user_id", updated.ID)
	s.flash.Flash(MsgUserUpdated, notify.Success)
	return updated, nil
}

// Delete removes the logged-in account and ends the session. The
// notification is the server's confirmation, not the logout message.
func (s *UserService) Delete(ctx context.Context) (string, error) {
	user, err := s.Me(ctx)
	if err != nil {
		return "", err
	}
	token, err := requireToken(ctx, s.session, s.flash)
	if err != nil {
		return "", err
	}

	res := s.client.DeleteUser(ctx, user.ID, token)
	if !res.OK() {
		flashAPIError(s.flash, res.Err)
		return "", res.Err
	}

	if err := s.session.LogOut(ctx); err != nil {
		s.log.Error(ctx, "failed to clear session after account deletion", "error", err)
	}

	s.log.Info(ctx, "user deleted", "user_id", user.ID)
	s.flash.Flash(res.Data, notify.Primary)
	return res.Data, nil
}
