package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/blogclient/internal/client/api"
	"github.com/dmitrijs2005/blogclient/internal/client/models"
	"github.com/dmitrijs2005/blogclient/internal/client/notify"
	"github.com/dmitrijs2005/blogclient/internal/logging"
)

// PostService backs the home listing and the post editor.
type PostService struct {
	client  api.Client
	session Session
	flash   notify.Flasher
	log     logging.Logger
}

func NewPostService(client api.Client, session Session, flash notify.Flasher, log logging.Logger) *PostService {
	return &PostService{client: client, session: session, flash: flash, log: log}
}

// Home lists posts in the requested order, keeping titles that contain
// search.
func (s *PostService) Home(ctx context.Context, key SortKey, search string) ([]models.Post, error) {
	res := s.client.ListPosts(ctx)
	if !res.OK() {
		flashAPIError(s.flash, res.Err)
		return nil, res.Err
	}
	return FilterPosts(SortPosts(res.Data, key), search), nil
}

// Create publishes a post as the logged-in user.
func (s *PostService) Create(ctx context.Context, form models.PostForm) (models.Post, error) {
	token, err := requireToken(ctx, s.session, s.flash)
	if err != nil {
		return models.Post{}, err
	}

	res := s.client.CreatePost(ctx, token, form)
	if !res.OK() {
		flashAPIError(s.flash, res.Err)
		return models.Post{}, res.Err
	}

	s.log.Info(ctx, "post created", "post_id", res.Data.ID)
	s.flash.Flash(fmt.Sprintf("%s has been created", res.Data.Title), notify.Success)
	return res.Data, nil
}

// LoadForEdit fetches a post for the editor. Only its author may edit it;
// anyone else gets ErrForbidden.
func (s *PostService) LoadForEdit(ctx context.Context, id int) (models.Post, error) {
	if _, err := requireToken(ctx, s.session, s.flash); err != nil {
		return models.Post{}, err
	}
	return s.ownedPost(ctx, id)
}

// Update saves the edited post after re-checking ownership.
func (s *PostService) Update(ctx context.Context, id int, form models.PostForm) (models.Post, error) {
	token, err := requireToken(ctx, s.session, s.flash)
	if err != nil {
		return models.Post{}, err
	}
	if _, err := s.ownedPost(ctx, id); err != nil {
		return models.Post{}, err
	}

	res := s.client.EditPost(ctx, id, token, form)
	if !res.OK() {
		flashAPIError(s.flash, res.Err)
		return models.Post{}, res.Err
	}

	s.log.Info(ctx, "post updated", "post_id", id)
	s.flash.Flash(fmt.Sprintf("%s has been updated", res.Data.Title), notify.Success)
	return res.Data, nil
}

// Delete removes the post after re-checking ownership and returns the
// server's confirmation.
func (s *PostService) Delete(ctx context.Context, id int) (string, error) {
	token, err := requireToken(ctx, s.session, s.flash)
	if err != nil {
		return "", err
	}
	if _, err := s.ownedPost(ctx, id); err != nil {
		return "", err
	}

	res := s.client.DeletePost(ctx, id, token)
	if !res.OK() {
		flashAPIError(s.flash, res.Err)
		return "", res.Err
	}

	s.log.Info(ctx, "post deleted", "post_id", id)
	s.flash.Flash(res.Data, notify.Primary)
	return res.Data, nil
}

// ownedPost loads the post and the current user fresh from the API and
// checks authorship.
func (s *PostService) ownedPost(ctx context.Context, id int) (models.Post, error) {
	res := s.client.GetPost(ctx, id)
	if !res.OK() {
		flashAPIError(s.flash, res.Err)
		return models.Post{}, res.Err
	}

	user, err := s.session.RefreshCurrentUser(ctx)
	if err != nil {
		flashError(s.flash, err)
		return models.Post{}, err
	}

	if !res.Data.IsAuthoredBy(user) {
		s.flash.Flash(MsgForbiddenEditPost, notify.Danger)
		return models.Post{}, ErrForbidden
	}
	return res.Data, nil
}
