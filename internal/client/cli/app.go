package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/blogclient/internal/client/api"
	"github.com/dmitrijs2005/blogclient/internal/client/config"
	"github.com/dmitrijs2005/blogclient/internal/client/models"
	"github.com/dmitrijs2005/blogclient/internal/client/notify"
	"github.com/dmitrijs2005/blogclient/internal/client/services"
	"github.com/dmitrijs2005/blogclient/internal/client/session"
	"github.com/dmitrijs2005/blogclient/internal/client/storage"
	"github.com/dmitrijs2005/blogclient/internal/logging"
)

type authService interface {
	SignUp(ctx context.Context, form models.UserForm) (models.User, error)
	LogIn(ctx context.Context, form models.LoginForm) (models.User, error)
	LogOut(ctx context.Context) error
}

type postService interface {
	Home(ctx context.Context, key services.SortKey, search string) ([]models.Post, error)
	Create(ctx context.Context, form models.PostForm) (models.Post, error)
	LoadForEdit(ctx context.Context, id int) (models.Post, error)
	Update(ctx context.Context, id int, form models.PostForm) (models.Post, error)
	Delete(ctx context.Context, id int) (string, error)
}

type userService interface {
	Me(ctx context.Context) (models.User, error)
	LoadForEdit(ctx context.Context, id int) (models.User, error)
	Update(ctx context.Context, form models.UserForm) (models.User, error)
	Delete(ctx context.Context) (string, error)
}

// sessionView is the read-only part of the session the views need.
type sessionView interface {
	IsAuthenticated(ctx context.Context) bool
	CachedUser(ctx context.Context) (*models.User, error)
}

type notifier interface {
	notify.Flasher
	Current() (notify.Notification, bool)
	Clear()
}

type App struct {
	config  *config.Config
	log     logging.Logger
	db      *sql.DB
	auth    authService
	posts   postService
	users   userService
	session sessionView
	notes   notifier
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp opens the session database and wires the API client, session
// store and services.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := storage.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	client := api.NewHTTPClient(c.APIBaseURL,
		api.WithTimeout(c.RequestTimeout),
		api.WithLogger(log.With("component", "api")),
	)
	notes := notify.NewChannel()
	store := session.NewStore(db, client, notes, session.WithLogger(log.With("component", "session")))

	return &App{
		config:  c,
		log:     log,
		db:      db,
		auth:    services.NewAuthService(client, store, notes, log),
		posts:   services.NewPostService(client, store, notes, log),
		users:   services.NewUserService(client, store, notes, log),
		session: store,
		notes:   notes,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// Run shows the home screen and then serves commands until exit.
func (a *App) Run(ctx context.Context) {
	if a.db != nil {
		defer a.db.Close()
	}

	fmt.Fprintln(a.out, "Welcome to the blog CLI (type 'help' for commands)")
	_ = a.Home(ctx, nil)
	a.Flush()

	runREPL(ctx, a, func() string { return a.status(ctx) }, a.reader)
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.session.IsAuthenticated(ctx)
}

// status is the prompt decoration: the cached username while logged in.
func (a *App) status(ctx context.Context) string {
	if !a.isLoggedIn(ctx) {
		return ""
	}
	u, err := a.session.CachedUser(ctx)
	if err != nil || u == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", u.Username)
}

// requireLogin fails early, before any prompting, when there is no session.
func (a *App) requireLogin(ctx context.Context) error {
	if a.isLoggedIn(ctx) {
		return nil
	}
	a.notes.Flash(services.MsgMustLogIn, notify.Warning)
	return services.ErrNotAuthenticated
}

// Flush prints the pending notification. The slot is left as is.
func (a *App) Flush() {
	n, ok := a.notes.Current()
	if !ok {
		return
	}
	if err := notify.Render(a.out, n); err != nil {
		a.log.Warn(context.Background(), "failed to render notification", "error", err)
	}
}

// Dismiss closes the pending notification.
func (a *App) Dismiss() {
	a.notes.Clear()
}
