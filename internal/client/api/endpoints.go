package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/blogclient/internal/client/models"
)

// Register creates an account.
func (c *HTTPClient) Register(ctx context.Context, form models.UserForm) Result[models.User] {
	return do[models.User](ctx, c, call{
		method: http.MethodPost,
		path:   "/users",
		auth:   noAuth{},
		body:   form,
	})
}

// Login exchanges credentials for a bearer token.
func (c *HTTPClient) Login(ctx context.Context, username, password string) Result[models.Token] {
	return do[models.Token](ctx, c, call{
		method: http.MethodGet,
		path:   "/token",
		auth:   basicAuth{username: username, password: password},
	})
}

func (c *HTTPClient) GetCurrentUser(ctx context.Context, token string) Result[models.User] {
	return do[models.User](ctx, c, call{
		method: http.MethodGet,
		path:   "/users/me",
		auth:   bearerAuth{token: token},
	})
}

func (c *HTTPClient) EditUser(ctx context.Context, userID int, token string, form models.UserForm) Result[models.User] {
	return do[models.User](ctx, c, call{
		method:   http.MethodPut,
		path:     fmt.Sprintf("/users/%d", userID),
		auth:     bearerAuth{token: token},
		body:     form,
		notFound: userNotFound(userID),
	})
}

// DeleteUser returns the server's confirmation text.
func (c *HTTPClient) DeleteUser(ctx context.Context, userID int, token string) Result[string] {
	return unwrapSuccess(do[successBody](ctx, c, call{
		method:   http.MethodDelete,
		path:     fmt.Sprintf("/users/%d", userID),
		auth:     bearerAuth{token: token},
		notFound: userNotFound(userID),
	}))
}

func (c *HTTPClient) ListPosts(ctx context.Context) Result[[]models.Post] {
	return do[[]models.Post](ctx, c, call{
		method: http.MethodGet,
		path:   "/posts",
		auth:   noAuth{},
	})
}

func (c *HTTPClient) CreatePost(ctx context.Context, token string, form models.PostForm) Result[models.Post] {
	return do[models.Post](ctx, c, call{
		method: http.MethodPost,
		path:   "/posts",
		auth:   bearerAuth{token: token},
		body:   form,
	})
}

func (c *HTTPClient) GetPost(ctx context.Context, id int) Result[models.Post] {
	return do[models.Post](ctx, c, call{
		method:   http.MethodGet,
		path:     fmt.Sprintf("/posts/%d", id),
		auth:     noAuth{},
		notFound: postNotFound(id),
	})
}

func (c *HTTPClient) EditPost(ctx context.Context, id int, token string, form models.PostForm) Result[models.Post] {
	return do[models.Post](ctx, c, call{
		method:   http.MethodPut,
		path:     fmt.Sprintf("/posts/%d", id),
		auth:     bearerAuth{token: token},
		body:     form,
		notFound: postNotFound(id),
	})
}

// DeletePost returns the server's confirmation text.
func (c *HTTPClient) DeletePost(ctx context.Context, id int, token string) Result[string] {
	return unwrapSuccess(do[successBody](ctx, c, call{
		method:   http.MethodDelete,
		path:     fmt.Sprintf("/posts/%d", id),
		auth:     bearerAuth{token: token},
		notFound: postNotFound(id),
	}))
}
