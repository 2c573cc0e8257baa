package apitest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/blogclient/internal/client/models"
	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
)

var errTaken = errors.New("Username and/or email already taken")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// authenticate resolves the bearer token to a user. It writes the 401 itself
// and returns false when the caller should stop.
func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) (*userRecord, bool) {
	raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || raw == "" {
		writeError(w, http.StatusUnauthorized, "Missing bearer token")
		return nil, false
	}

	uid, err := userIDFromToken(raw, s.secret, s.now())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid or expired token")
		return nil, false
	}

	rec, exists := s.users[uid]
	if !exists {
		writeError(w, http.StatusUnauthorized, "Invalid or expired token")
		return nil, false
	}
	return rec, true
}

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	return id, err == nil
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	username, password, ok := r.BasicAuth()
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing credentials")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.users {
		if rec.user.Username != username {
			continue
		}
		if bcrypt.CompareHashAndPassword(rec.passwordHash, []byte(password)) != nil {
			break
		}
		expires := s.now().Add(s.tokenTTL)
		tok, err := generateToken(rec.user.ID, s.secret, expires)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, models.Token{Token: tok, TokenExpiration: httpDate(expires)})
		return
	}
	writeError(w, http.StatusUnauthorized, "Incorrect username and/or password")
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var form models.UserForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "Request body must be JSON")
		return
	}

	var missing []string
	for field, v := range map[string]string{"firstName": form.FirstName, "lastName": form.LastName,
		"username": form.Username, "email": form.Email, "password": form.Password} {
		if v == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("%d required field(s) missing", len(missing)))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.createUserLocked(form)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rec.user)
}

func (s *Server) handleEditUser(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	caller, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r)
	target, exists := s.users[id]
	if !ok || !exists {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if target != caller {
		writeError(w, http.StatusForbidden, "You can only edit your own account")
		return
	}

	var form models.UserForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "Request body must be JSON")
		return
	}

	for _, rec := range s.users {
		if rec != target && form.Username != "" && rec.user.Username == form.Username {
			writeError(w, http.StatusBadRequest, errTaken.Error())
			return
		}
	}

	setIfNotEmpty(&target.user.FirstName, form.FirstName)
	setIfNotEmpty(&target.user.LastName, form.LastName)
	setIfNotEmpty(&target.user.Username, form.Username)
	setIfNotEmpty(&target.user.Email, form.Email)
	if form.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.MinCost)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		target.passwordHash = hash
	}

	for _, p := range s.posts {
		if p.Author.ID == target.user.ID {
			p.Author = target.user
		}
	}
	writeJSON(w, http.StatusOK, target.user)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	caller, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r)
	target, exists := s.users[id]
	if !ok || !exists {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if target != caller {
		writeError(w, http.StatusForbidden, "You can only delete your own account")
		return
	}

	for pid, p := range s.posts {
		if p.Author.ID == id {
			delete(s.posts, pid)
		}
	}
	delete(s.users, id)
	writeJSON(w, http.StatusOK, map[string]string{"success": fmt.Sprintf("%s has been deleted", target.user.Username)})
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.sortedPostsLocked())
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	caller, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	var form models.PostForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "Request body must be JSON")
		return
	}
	if form.Title == "" || form.Body == "" {
		writeError(w, http.StatusBadRequest, "Title and body are required")
		return
	}

	p := &models.Post{
		ID:          s.nextPostID,
		Title:       form.Title,
		Body:        form.Body,
		DateCreated: httpDate(s.now()),
		Author:      caller.user,
	}
	s.nextPostID++
	s.posts[p.ID] = p
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := pathID(r)
	p, exists := s.posts[id]
	if !ok || !exists {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// ownedPost loads the post in the path and checks the caller wrote it.
func (s *Server) ownedPost(w http.ResponseWriter, r *http.Request, verb string) (*models.Post, bool) {
	caller, ok := s.authenticate(w, r)
	if !ok {
		return nil, false
	}
	id, ok := pathID(r)
	p, exists := s.posts[id]
	if !ok || !exists {
		w.WriteHeader(http.StatusNotFound)
		return nil, false
	}
	if p.Author.ID != caller.user.ID {
		writeError(w, http.StatusForbidden, fmt.Sprintf("You do not have permission to %s this post", verb))
		return nil, false
	}
	return p, true
}

func (s *Server) handleEditPost(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.ownedPost(w, r, "edit")
	if !ok {
		return
	}

	var form models.PostForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "Request body must be JSON")
		return
	}
	setIfNotEmpty(&p.Title, form.Title)
	setIfNotEmpty(&p.Body, form.Body)
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.ownedPost(w, r, "delete")
	if !ok {
		return
	}
	delete(s.posts, p.ID)
	writeJSON(w, http.StatusOK, map[string]string{"success": fmt.Sprintf("%s has been deleted", p.Title)})
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
