package service

import (
	"context"

	"devconnector/internal/auth"
	"devconnector/internal/models"
	"devconnector/internal/repository"
	"devconnector/internal/validation"
)

const (
	fieldNoPost        = "nopostfound"
	msgNoPost          = "No post found"
	msgNoPostForID     = "No post found for the id"
	fieldNotAuthorized = "notauthorized"
	msgNotAuthorized   = "User not authorized for this action"
)

type PostService struct {
	postRepo repository.PostRepository
}

// PostInput is the body of a post or a comment. Name and avatar sent by
// the client are ignored in favour of the actor's.
type PostInput struct {
	Text   string `json:"text"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// NotFound is the error reported for a malformed post id.
func (s *PostService) NotFound() error {
	return models.NewNotFoundError(fieldNoPost, msgNoPost)
}

func (s *PostService) List(ctx context.Context) ([]*models.Post, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, wrapInternal("list posts", err)
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	return posts, nil
}

func (s *PostService) Get(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr("get post", err, fieldNoPost, msgNoPostForID)
	}
	return post, nil
}

func (s *PostService) find(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr("get post", err, fieldNoPost, msgNoPost)
	}
	return post, nil
}

func (s *PostService) Create(ctx context.Context, actor *auth.Actor, in PostInput) (*models.Post, error) {
	if res := validation.ValidatePost(validation.PostData{Text: in.Text}); !res.IsValid() {
		return nil, invalid(res)
	}

	post := &models.Post{
		UserID: actor.ID,
		Text:   in.Text,
		Name:   actor.Name,
		Avatar: actor.Avatar,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, wrapInternal("create post", err)
	}
	return post, nil
}

// Delete removes a post. Only its author may do so.
func (s *PostService) Delete(ctx context.Context, actor *auth.Actor, id uint) error {
	post, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if post.UserID != actor.ID {
		return models.NewUnauthorizedError(fieldNotAuthorized, msgNotAuthorized)
	}
	if err := s.postRepo.Delete(ctx, id); err != nil {
		return wrapInternal("delete post", err)
	}
	return nil
}

func (s *PostService) Like(ctx context.Context, actor *auth.Actor, id uint) (*models.Post, error) {
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}
	added, err := s.postRepo.Like(ctx, id, actor.ID)
	if err != nil {
		return nil, wrapInternal("like post", err)
	}
	if !added {
		return nil, models.NewValidationError("alreadyliked", "User already liked this post")
	}
	return s.find(ctx, id)
}

func (s *PostService) Unlike(ctx context.Context, actor *auth.Actor, id uint) (*models.Post, error) {
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}
	removed, err := s.postRepo.Unlike(ctx, id, actor.ID)
	if err != nil {
		return nil, wrapInternal("unlike post", err)
	}
	if !removed {
		return nil, models.NewValidationError("notliked", "User has not yet liked this post")
	}
	return s.find(ctx, id)
}

func (s *PostService) AddComment(ctx context.Context, actor *auth.Actor, id uint, in PostInput) (*models.Post, error) {
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}
	if res := validation.ValidatePost(validation.PostData{Text: in.Text}); !res.IsValid() {
		return nil, invalid(res)
	}

	comment := &models.Comment{
		PostID: id,
		UserID: actor.ID,
		Text:   in.Text,
		Name:   actor.Name,
		Avatar: actor.Avatar,
	}
	if err := s.postRepo.AddComment(ctx, comment); err != nil {
		return nil, wrapInternal("add comment", err)
	}
	return s.find(ctx, id)
}

// RemoveComment deletes a comment from a post. Any user may remove any
// comment on any post.
func (s *PostService) RemoveComment(ctx context.Context, id, commentID uint) (*models.Post, error) {
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}
	removed, err := s.postRepo.RemoveComment(ctx, id, commentID)
	if err != nil {
		return nil, wrapInternal("remove comment", err)
	}
	if !removed {
		return nil, models.NewNotFoundError("commentnotfound", "Comment does not exist")
	}
	return s.find(ctx, id)
}
