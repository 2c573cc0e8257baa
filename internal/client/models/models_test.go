package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPost_DecodesAPIShape(t *testing.T) {
	raw := `{
		"id": 7,
		"title": "Hi",
		"body": "World",
		"dateCreated": "Tue, 05 Mar 2024 14:30:00 GMT",
		"author": {"id": 2, "firstName": "Alice", "lastName": "Liddell", "username": "alice",
		           "email": "alice@example.org", "dateCreated": "Mon, 04 Mar 2024 09:00:00 GMT"}
	}`

	var p Post
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.Equal(t, 7, p.ID)
	assert.Equal(t, "alice", p.Author.Username)
	assert.True(t, p.CreatedAt().Equal(time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)))
	assert.True(t, p.IsAuthoredBy(User{ID: 2}))
	assert.False(t, p.IsAuthoredBy(User{ID: 3}))
}

func TestPost_CreatedAtUnparseable(t *testing.T) {
	assert.True(t, Post{DateCreated: "soon"}.CreatedAt().IsZero())
}

func TestUser_FullName(t *testing.T) {
	assert.Equal(t, "Alice Liddell", User{FirstName: "Alice", LastName: "Liddell"}.FullName())
	assert.Equal(t, "Alice", User{FirstName: "Alice"}.FullName())
	assert.Equal(t, "Liddell", User{LastName: "Liddell"}.FullName())
}

func TestToken_Expiry(t *testing.T) {
	tok := Token{Token: "t", TokenExpiration: "2030-01-01T00:00:00Z"}
	exp, err := tok.Expiry()
	require.NoError(t, err)
	assert.Equal(t, 2030, exp.Year())

	_, err = Token{TokenExpiration: ""}.Expiry()
	assert.Error(t, err)
}

func TestUserForm_EncodesCamelCase(t *testing.T) {
	b, err := json.Marshal(UserForm{FirstName: "A", ConfirmPassword: "x"})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"firstName":"A"`)
	assert.Contains(t, string(b), `"confirmPassword":"x"`)
}
