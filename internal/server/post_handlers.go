package server

import (
	"devconnector/internal/models"
	"devconnector/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts
// @Summary List posts, newest first
// @Tags posts
// @Produce json
// @Success 200 {array} models.Post
// @Router /posts [get]
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postService.List(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id
// @Summary Get post
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} map[string]string
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return models.RespondWithError(c, s.postService.NotFound())
	}
	post, err := s.postService.Get(c.UserContext(), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(post)
}

// CreatePost handles POST /api/posts
// @Summary Create post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.PostInput true "Post body"
// @Success 200 {object} models.Post
// @Failure 400 {object} map[string]string
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req service.PostInput
	if err := parseBody(c, &req); err != nil {
		return models.RespondWithError(c, err)
	}

	post, err := s.postService.Create(c.UserContext(), currentActor(c), req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
// @Summary Delete post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} map[string]bool
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return models.RespondWithError(c, s.postService.NotFound())
	}
	if err := s.postService.Delete(c.UserContext(), currentActor(c), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// LikePost handles POST /api/posts/like/:id
// @Summary Like post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} models.Post
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /posts/like/{id} [post]
func (s *Server) LikePost(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return models.RespondWithError(c, s.postService.NotFound())
	}
	post, err := s.postService.Like(c.UserContext(), currentActor(c), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(post)
}

// UnlikePost handles POST /api/posts/unlike/:id
// @Summary Unlike post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} models.Post
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /posts/unlike/{id} [post]
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return models.RespondWithError(c, s.postService.NotFound())
	}
	post, err := s.postService.Unlike(c.UserContext(), currentActor(c), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(post)
}

// AddComment handles POST /api/posts/comment/:id
// @Summary Comment on post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body service.PostInput true "Comment body"
// @Success 200 {object} models.Post
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /posts/comment/{id} [post]
func (s *Server) AddComment(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return models.RespondWithError(c, s.postService.NotFound())
	}
	var req service.PostInput
	if err := parseBody(c, &req); err != nil {
		return models.RespondWithError(c, err)
	}

	post, err := s.postService.AddComment(c.UserContext(), currentActor(c), id, req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(post)
}

// RemoveComment handles DELETE /api/posts/comment/:id/:comment_id
// @Summary Remove comment
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param comment_id path int true "Comment ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} map[string]string
// @Router /posts/comment/{id}/{comment_id} [delete]
func (s *Server) RemoveComment(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return models.RespondWithError(c, s.postService.NotFound())
	}
	commentID, ok := parseID(c, "comment_id")
	if !ok {
		return models.RespondWithError(c, models.NewNotFoundError("commentnotfound", "Comment does not exist"))
	}

	post, err := s.postService.RemoveComment(c.UserContext(), id, commentID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(post)
}
