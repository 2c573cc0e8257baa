package services

import (
	"errors"

	"github.com/dmitrijs2005/blogclient/internal/client/api"
	"github.com/dmitrijs2005/blogclient/internal/client/notify"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidForm      = errors.New("invalid form")
)

// User-facing messages.
const (
	MsgMustLogIn         = "You must be logged in"
	MsgLoggedIn          = "You have been logged in"
	MsgUserUpdated       = "Successfully updated"
	MsgForbiddenEditPost = "You do not have permission to edit this post"
	MsgForbiddenEditUser = "You do not have permission to edit this user"
)

// flashAPIError surfaces an API failure. Failures without a server supplied
// explanation are shown as a warning.
func flashAPIError(f notify.Flasher, err *api.Error) {
	sev := notify.Danger
	if err.Kind == api.KindUnexpected {
		sev = notify.Warning
	}
	f.Flash(err.Message, sev)
}

// flashError surfaces any error from a session or API step.
func flashError(f notify.Flasher, err error) {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		flashAPIError(f, apiErr)
		return
	}
	f.Flash(api.GenericErrorMessage, notify.Warning)
}
