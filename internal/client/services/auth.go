// Package services implements the flows behind each screen of the client:
// sign-up, login and logout, the post listing and editor, and the profile
// editor. Every flow reports its outcome through exactly one notification
// and returns a non-nil error on failure, which callers treat as "go back
// to the home screen".
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/blogclient/internal/client/api"
	"github.com/dmitrijs2005/blogclient/internal/client/models"
	"github.com/dmitrijs2005/blogclient/internal/client/notify"
	"github.com/dmitrijs2005/blogclient/internal/logging"
)

// AuthService covers account creation and the session lifecycle.
type AuthService struct {
	client  api.Client
	session Session
	flash   notify.Flasher
	log     logging.Logger
}

func NewAuthService(client api.Client, session Session, flash notify.Flasher, log logging.Logger) *AuthService {
	return &AuthService{client: client, session: session, flash: flash, log: log}
}

// SignUp registers a new account. It does not log the user in.
func (a *AuthService) SignUp(ctx context.Context, form models.UserForm) (models.User, error) {
	if err := validateForm(a.flash, form); err != nil {
		return models.User{}, err
	}

	res := a.client.Register(ctx, form)
	if !res.OK() {
		a.flash.Flash(res.Err.Message, notify.Danger)
		return models.User{}, res.Err
	}

	a.log.Info(ctx, "user registered", "user_id", res.Data.ID)
	a.flash.Flash(fmt.Sprintf("Congrats %s %s has been created!", res.Data.FirstName, res.Data.LastName), notify.Success)
	return res.Data, nil
}

// LogIn obtains a token, starts a session and loads the current user.
func (a *AuthService) LogIn(ctx context.Context, form models.LoginForm) (models.User, error) {
	res := a.client.Login(ctx, form.Username, form.Password)
	if !res.OK() {
		a.flash.Flash(res.Err.Message, notify.Danger)
		return models.User{}, res.Err
	}

	expiry, err := res.Data.Expiry()
	if err != nil {
		a.flash.Flash(api.GenericErrorMessage, notify.Warning)
		return models.User{}, fmt.Errorf("token expiry: %w", err)
	}

	if err := a.session.LogIn(ctx, res.Data.Token, expiry); err != nil {
		a.flash.Flash(api.GenericErrorMessage, notify.Warning)
		return models.User{}, err
	}

	user, err := a.session.RefreshCurrentUser(ctx)
	if err != nil {
		flashError(a.flash, err)
		return models.User{}, err
	}

	a.log.Info(ctx, "logged in", "user_id", user.ID)
	a.flash.Flash(MsgLoggedIn, notify.Success)
	return user, nil
}

// LogOut ends the session; the session store announces it.
func (a *AuthService) LogOut(ctx context.Context) error {
	return a.session.LogOut(ctx)
}
