package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/blogclient/internal/client/forms"
	"github.com/dmitrijs2005/blogclient/internal/client/models"
)

// signUpAttempts bounds how often the password pair is asked for again
// before the draft is handed to the service as is.
const signUpAttempts = 3

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
	confirm       = Confirm
)

// SignUp collects a new account's details and registers it. The outcome is
// reported through the notification channel.
func (a *App) SignUp(ctx context.Context) error {
	var form models.UserForm
	var err error

	prompts := []struct {
		label string
		dst   *string
	}{
		{"First name", &form.FirstName},
		{"Last name", &form.LastName},
		{"Username", &form.Username},
		{"Email", &form.Email},
	}
	for _, p := range prompts {
		if *p.dst, err = getSimpleText(a.reader, p.label, a.out); err != nil {
			return err
		}
	}

	for attempt := 1; ; attempt++ {
		if form.Password, err = getPassword(a.out, "Password"); err != nil {
			return err
		}
		if form.ConfirmPassword, err = getPassword(a.out, "Confirm password"); err != nil {
			return err
		}
		if forms.CanSubmit(form) || attempt == signUpAttempts {
			break
		}
		fmt.Fprintf(a.out, "Password must be at least %d characters and typed the same twice.\n", forms.MinPasswordLength)
	}

	_, err = a.auth.SignUp(ctx, form)
	return err
}

// Login prompts for credentials and starts a session.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Password")
	if err != nil {
		return err
	}

	_, err = a.auth.LogIn(ctx, models.LoginForm{Username: username, Password: password})
	return err
}

// Logout ends the session.
func (a *App) Logout(ctx context.Context) error {
	return a.auth.LogOut(ctx)
}
