// Package models defines the resources exchanged with the blog API and the
// form payloads the views submit.
package models

import (
	"time"

	"github.com/dmitrijs2005/blogclient/internal/timex"
)

// User is a registered account. Only the owner can change it.
type User struct {
	ID          int    `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	DateCreated string `json:"dateCreated"`
}

// FullName joins first and last name.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// Post is a blog post. Title and Body may only be changed by Author.
type Post struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	DateCreated string `json:"dateCreated"`
	Author      User   `json:"author"`
}

// CreatedAt parses DateCreated. Unparseable dates yield the zero time.
func (p Post) CreatedAt() time.Time {
	t, err := timex.ParseTimestamp(p.DateCreated)
	if err != nil {
		return time.Time{}
	}
	return t
}

// IsAuthoredBy reports whether u wrote the post.
func (p Post) IsAuthoredBy(u User) bool {
	return p.Author.ID == u.ID
}

// Token is the bearer credential issued by GET /token.
type Token struct {
	Token           string `json:"token"`
	TokenExpiration string `json:"tokenExpiration"`
}

// Expiry parses TokenExpiration.
func (t Token) Expiry() (time.Time, error) {
	return timex.ParseTimestamp(t.TokenExpiration)
}

// UserForm is the payload for registration and profile edits. The tags
// describe the sign-up gate only; profile edits are sent as typed.
type UserForm struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password" validate:"min=5"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=Password"`
}

// LoginForm holds the credentials typed on the login screen.
type LoginForm struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// PostForm is the payload for creating and editing posts.
type PostForm struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}
