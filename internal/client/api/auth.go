package api

import "net/http"

// authorizer sets credentials on an outgoing request.
type authorizer interface {
	authorize(req *http.Request)
}

type noAuth struct{}

func (noAuth) authorize(*http.Request) {}

type basicAuth struct {
	username string
	password string
}

func (a basicAuth) authorize(req *http.Request) {
	req.SetBasicAuth(a.username, a.password)
}

type bearerAuth struct {
	token string
}

func (a bearerAuth) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+a.token)
}
