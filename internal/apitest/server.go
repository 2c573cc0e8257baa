// Package apitest runs an in-memory implementation of the blog REST API on an
// httptest server. Client, session and view tests talk to it over real HTTP.
//
// Behaviour follows the production contract: Basic auth on /token, Bearer
// tokens (HS256 JWT) elsewhere, author-scoped post mutation, owner-scoped
// user mutation, and {"error": "..."} bodies for rejected requests. Requests
// for missing users or posts get a bare 404 so clients exercise their
// not-found fallback.
package apitest

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/blogclient/internal/client/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/bcrypt"
)

type userRecord struct {
	user         models.User
	passwordHash []byte
}

// Server is the fake API. Use URL as the client's base URL.
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	users      map[int]*userRecord
	posts      map[int]*models.Post
	nextUserID int
	nextPostID int
	calls      int

	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

type Option func(*Server)

// WithTokenTTL sets how long issued tokens stay valid. Default one hour.
func WithTokenTTL(d time.Duration) Option {
	return func(s *Server) { s.tokenTTL = d }
}

// WithClock replaces time.Now for token issuing and validation.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// NewServer starts a server. Call Close when done.
func NewServer(opts ...Option) *Server {
	s := &Server{
		users:      make(map[int]*userRecord),
		posts:      make(map[int]*models.Post),
		nextUserID: 1,
		nextPostID: 1,
		secret:     []byte("apitest-secret"),
		tokenTTL:   time.Hour,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Server = httptest.NewServer(s.routes())
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.countCalls)

	r.Get("/token", s.handleToken)

	r.Route("/users", func(r chi.Router) {
		r.Post("/", s.handleCreateUser)
		r.Get("/me", s.handleMe)
		r.Put("/{id}", s.handleEditUser)
		r.Delete("/{id}", s.handleDeleteUser)
	})

	r.Route("/posts", func(r chi.Router) {
		r.Get("/", s.handleListPosts)
		r.Post("/", s.handleCreatePost)
		r.Get("/{id}", s.handleGetPost)
		r.Put("/{id}", s.handleEditPost)
		r.Delete("/{id}", s.handleDeletePost)
	})
	return r
}

func (s *Server) countCalls(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls++
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

// Calls returns the number of requests served so far.
func (s *Server) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// SeedUser registers a user directly, bypassing HTTP.
func (s *Server) SeedUser(form models.UserForm) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, err := s.createUserLocked(form)
	if err != nil {
		panic(err)
	}
	return u
}

// SeedPost stores a post written by authorID. A zero createdAt means now.
func (s *Server) SeedPost(authorID int, title, body string, createdAt time.Time) models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.users[authorID]
	if !ok {
		panic("apitest: unknown author")
	}
	if createdAt.IsZero() {
		createdAt = s.now()
	}
	p := &models.Post{
		ID:          s.nextPostID,
		Title:       title,
		Body:        body,
		DateCreated: httpDate(createdAt),
		Author:      rec.user,
	}
	s.nextPostID++
	s.posts[p.ID] = p
	return *p
}

// IssueToken mints a bearer token for userID.
func (s *Server) IssueToken(userID int) string {
	tok, err := generateToken(userID, s.secret, s.now().Add(s.tokenTTL))
	if err != nil {
		panic(err)
	}
	return tok
}

// Post returns the stored post with id.
func (s *Server) Post(id int) (models.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return models.Post{}, false
	}
	return *p, true
}

// User returns the stored user with id.
func (s *Server) User(id int) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[id]
	if !ok {
		return models.User{}, false
	}
	return rec.user, true
}

func (s *Server) createUserLocked(form models.UserForm) (models.User, error) {
	for _, rec := range s.users {
		if rec.user.Username == form.Username || rec.user.Email == form.Email {
			return models.User{}, errTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.MinCost)
	if err != nil {
		return models.User{}, err
	}

	u := models.User{
		ID:          s.nextUserID,
		FirstName:   form.FirstName,
		LastName:    form.LastName,
		Username:    form.Username,
		Email:       form.Email,
		DateCreated: httpDate(s.now()),
	}
	s.nextUserID++
	s.users[u.ID] = &userRecord{user: u, passwordHash: hash}
	return u, nil
}

func (s *Server) sortedPostsLocked() []models.Post {
	out := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func httpDate(t time.Time) string {
	return t.UTC().Format(http.TimeFormat)
}
