package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/blogclient/internal/apitest"
	"github.com/dmitrijs2005/blogclient/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alice = models.UserForm{
	FirstName: "Alice", LastName: "Liddell", Username: "alice",
	Email: "alice@example.com", Password: "pw", ConfirmPassword: "pw",
}

func newTestClient(t *testing.T) (*HTTPClient, *apitest.Server) {
	t.Helper()
	srv := apitest.NewServer()
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL + "/"), srv
}

func TestLogin_ReturnsToken(t *testing.T) {
	c, srv := newTestClient(t)
	srv.SeedUser(alice)

	res := c.Login(context.Background(), "alice", "pw")
	require.True(t, res.OK(), "login failed: %v", res.Err)
	assert.NotEmpty(t, res.Data.Token)

	exp, err := res.Data.Expiry()
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))
}

func TestLogin_BadPassword_ServerMessage(t *testing.T) {
	c, srv := newTestClient(t)
	srv.SeedUser(alice)

	res := c.Login(context.Background(), "alice", "nope")
	require.False(t, res.OK())
	assert.Equal(t, KindServer, res.Err.Kind)
	assert.Equal(t, http.StatusUnauthorized, res.Err.Status)
	assert.Equal(t, "Incorrect username and/or password", res.Err.Message)
}

func TestRegister_ThenDuplicate(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	res := c.Register(ctx, alice)
	require.True(t, res.OK())
	assert.Equal(t, "alice", res.Data.Username)
	assert.Equal(t, "Alice", res.Data.FirstName)
	assert.NotZero(t, res.Data.ID)

	dup := c.Register(ctx, alice)
	require.False(t, dup.OK())
	assert.Equal(t, KindServer, dup.Err.Kind)
	assert.Equal(t, "Username and/or email already taken", dup.Err.Message)
}

func TestGetCurrentUser(t *testing.T) {
	c, srv := newTestClient(t)
	u := srv.SeedUser(alice)
	ctx := context.Background()

	res := c.GetCurrentUser(ctx, srv.IssueToken(u.ID))
	require.True(t, res.OK())
	assert.Equal(t, u, res.Data)

	bad := c.GetCurrentUser(ctx, "garbage")
	require.False(t, bad.OK())
	assert.Equal(t, KindServer, bad.Err.Kind)
	assert.Equal(t, http.StatusUnauthorized, bad.Err.Status)
}

func TestGetPost_Missing_FallbackMessage(t *testing.T) {
	c, _ := newTestClient(t)

	res := c.GetPost(context.Background(), 999)
	require.False(t, res.OK())
	assert.Equal(t, KindNotFound, res.Err.Kind)
	assert.Equal(t, http.StatusNotFound, res.Err.Status)
	assert.Equal(t, "Post with ID 999 does not exist", res.Err.Message)
	assert.Equal(t, "Post with ID 999 does not exist", res.Err.Error())
}

func TestPosts_CreateGetEditDelete(t *testing.T) {
	c, srv := newTestClient(t)
	u := srv.SeedUser(alice)
	tok := srv.IssueToken(u.ID)
	ctx := context.Background()

	created := c.CreatePost(ctx, tok, models.PostForm{Title: "Hi", Body: "World"})
	require.True(t, created.OK())
	assert.Equal(t, "Hi", created.Data.Title)
	assert.Equal(t, u.ID, created.Data.Author.ID)

	got := c.GetPost(ctx, created.Data.ID)
	require.True(t, got.OK())
	assert.Equal(t, created.Data, got.Data)

	edited := c.EditPost(ctx, created.Data.ID, tok, models.PostForm{Title: "Hello", Body: "World"})
	require.True(t, edited.OK())
	assert.Equal(t, "Hello", edited.Data.Title)

	list := c.ListPosts(ctx)
	require.True(t, list.OK())
	require.Len(t, list.Data, 1)

	del := c.DeletePost(ctx, created.Data.ID, tok)
	require.True(t, del.OK())
	assert.Equal(t, "Hello has been deleted", del.Data)

	gone := c.DeletePost(ctx, created.Data.ID, tok)
	require.False(t, gone.OK())
	assert.Equal(t, KindNotFound, gone.Err.Kind)
}

func TestEditPost_NotAuthor_ServerMessage(t *testing.T) {
	c, srv := newTestClient(t)
	owner := srv.SeedUser(alice)
	other := srv.SeedUser(models.UserForm{Username: "bob", Email: "bob@example.com", Password: "secret"})
	p := srv.SeedPost(owner.ID, "mine", "body", time.Time{})

	res := c.EditPost(context.Background(), p.ID, srv.IssueToken(other.ID), models.PostForm{Title: "x", Body: "y"})
	require.False(t, res.OK())
	assert.Equal(t, KindServer, res.Err.Kind)
	assert.Equal(t, http.StatusForbidden, res.Err.Status)
	assert.Equal(t, "You do not have permission to edit this post", res.Err.Message)
}

func TestUsers_EditAndDelete(t *testing.T) {
	c, srv := newTestClient(t)
	u := srv.SeedUser(alice)
	tok := srv.IssueToken(u.ID)
	ctx := context.Background()

	edited := c.EditUser(ctx, u.ID, tok, models.UserForm{FirstName: "Alicia"})
	require.True(t, edited.OK())
	assert.Equal(t, "Alicia", edited.Data.FirstName)
	assert.Equal(t, "alice", edited.Data.Username)

	missing := c.EditUser(ctx, 42, tok, models.UserForm{FirstName: "x"})
	require.False(t, missing.OK())
	assert.Equal(t, KindNotFound, missing.Err.Kind)
	assert.Equal(t, "User with ID 42 does not exist", missing.Err.Message)

	del := c.DeleteUser(ctx, u.ID, tok)
	require.True(t, del.OK())
	assert.Equal(t, "alice has been deleted", del.Data)

	_, exists := srv.User(u.ID)
	assert.False(t, exists)
}

func TestFailure_NoStructuredBody_NonResourceCall_IsUnexpected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<html>oops</html>"))
	}))
	defer srv.Close()

	res := NewHTTPClient(srv.URL).ListPosts(context.Background())
	require.False(t, res.OK())
	assert.Equal(t, KindUnexpected, res.Err.Kind)
	assert.Equal(t, GenericErrorMessage, res.Err.Message)
	assert.Equal(t, http.StatusInternalServerError, res.Err.Status)
}

func TestSuccess_MalformedBody_IsUnexpected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	res := NewHTTPClient(srv.URL).GetPost(context.Background(), 1)
	require.False(t, res.OK())
	assert.Equal(t, KindUnexpected, res.Err.Kind)
	assert.Equal(t, GenericErrorMessage, res.Err.Message)
	require.Error(t, res.Err.Cause)
}

func TestTransportFailure_IsUnexpected(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	res := NewHTTPClient(url, WithTimeout(time.Second)).GetPost(context.Background(), 7)
	require.False(t, res.OK())
	assert.Equal(t, KindUnexpected, res.Err.Kind)
	assert.Equal(t, GenericErrorMessage, res.Err.Message)
}

func TestCancelledContext_IsUnexpected(t *testing.T) {
	c, _ := newTestClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := c.ListPosts(ctx)
	require.False(t, res.OK())
	assert.Equal(t, KindUnexpected, res.Err.Kind)
	assert.True(t, errors.Is(res.Err, context.Canceled))
}

func TestRequestHeaders(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []http.Header
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r.Header.Clone())
		mu.Unlock()
		_, _ = w.Write([]byte(`{"success":"gone"}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	ctx := context.Background()

	require.True(t, c.DeletePost(ctx, 1, "tok").OK())
	require.True(t, c.Login(ctx, "alice", "pw").OK())
	require.True(t, c.DeletePost(ctx, 2, "tok").OK())

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, 3)

	assert.Equal(t, "Bearer tok", seen[0].Get("Authorization"))
	assert.NotEmpty(t, seen[0].Get(RequestIDHeader))
	assert.NotEqual(t, seen[0].Get(RequestIDHeader), seen[2].Get(RequestIDHeader))

	basic := &http.Request{Header: seen[1]}
	user, pass, hasBasic := basic.BasicAuth()
	require.True(t, hasBasic)
	assert.Equal(t, "alice", user)
	assert.Equal(t, "pw", pass)
}

func TestResultKinds(t *testing.T) {
	assert.True(t, ok(3).OK())

	res := fail[int](unexpected(errors.New("boom")))
	require.False(t, res.OK())
	var err error = res.Err
	assert.True(t, IsKind(err, KindUnexpected))
	assert.False(t, IsKind(err, KindServer))
	assert.EqualError(t, err, GenericErrorMessage)
}
