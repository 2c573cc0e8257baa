package api

import (
	"context"

	"github.com/dmitrijs2005/blogclient/internal/client/models"
)

// DefaultBaseURL is the production API.
const DefaultBaseURL = "https://blissfulbalanceapiredo.onrender.com"

type Client interface {
	Register(ctx context.Context, form models.UserForm) Result[models.User]
	Login(ctx context.Context, username, password string) Result[models.Token]
	GetCurrentUser(ctx context.Context, token string) Result[models.User]
	EditUser(ctx context.Context, userID int, token string, form models.UserForm) Result[models.User]
	DeleteUser(ctx context.Context, userID int, token string) Result[string]

	ListPosts(ctx context.Context) Result[[]models.Post]
	CreatePost(ctx context.Context, token string, form models.PostForm) Result[models.Post]
	GetPost(ctx context.Context, id int) Result[models.Post]
	EditPost(ctx context.Context, id int, token string, form models.PostForm) Result[models.Post]
	DeletePost(ctx context.Context, id int, token string) Result[string]
}
