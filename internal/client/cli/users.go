package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/blogclient/internal/client/models"
	"github.com/dmitrijs2005/blogclient/internal/timex"
)

// Me prints the logged-in user's profile.
func (a *App) Me(ctx context.Context) error {
	u, err := a.users.Me(ctx)
	if err != nil {
		return err
	}
	a.renderUser(u)
	return nil
}

func (a *App) renderUser(u models.User) {
	fmt.Fprintf(a.out, "ID:       %d\n", u.ID)
	fmt.Fprintf(a.out, "Name:     %s\n", u.FullName())
	fmt.Fprintf(a.out, "Username: %s\n", u.Username)
	fmt.Fprintf(a.out, "Email:    %s\n", u.Email)
	if u.DateCreated != "" {
		joined, _ := timex.ParseTimestamp(u.DateCreated)
		fmt.Fprintf(a.out, "Joined:   %s\n", formatDate(joined, u.DateCreated))
	}
}

// EditUser edits the profile of the logged-in user. With an id argument the
// id must be the user's own. Empty input keeps the current value,
// including the password.
func (a *App) EditUser(ctx context.Context, args []string) error {
	var (
		u   models.User
		err error
	)
	if len(args) > 0 {
		id, perr := parseID(args, "edituser")
		if perr != nil {
			return perr
		}
		u, err = a.users.LoadForEdit(ctx, id)
	} else {
		u, err = a.users.Me(ctx)
	}
	if err != nil {
		return err
	}

	form := models.UserForm{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		Email:     u.Email,
	}
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
		v, err := getSimpleText(a.reader, fmt.Sprintf("%s [%s]", p.label, *p.dst), a.out)
		if err != nil {
			return err
		}
		if v != "" {
			*p.dst = v
		}
	}

	if form.Password, err = getPassword(a.out, "New password (empty to keep)"); err != nil {
		return err
	}
	if form.Password != "" {
		if form.ConfirmPassword, err = getPassword(a.out, "Confirm password"); err != nil {
			return err
		}
	}

	_, err = a.users.Update(ctx, form)
	return err
}

// DeleteUser asks for confirmation and deletes the logged-in account.
func (a *App) DeleteUser(ctx context.Context) error {
	if err := a.requireLogin(ctx); err != nil {
		return err
	}

	ok, err := confirm(a.reader, "Are you sure you want to delete your account? This action cannot be undone.", a.out)
	if err != nil || !ok {
		return err
	}

	_, err = a.users.Delete(ctx)
	return err
}
