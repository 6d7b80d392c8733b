package server

import (
	"devconnector/internal/models"
	"devconnector/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Register handles POST /api/users/register
// @Summary Register user
// @Description Create an account. The avatar is derived from the email's gravatar.
// @Tags users
// @Accept json
// @Produce json
// @Param request body service.RegisterInput true "Registration form"
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]string
// @Router /users/register [post]
func (s *Server) Register(c *fiber.Ctx) error {
	var req service.RegisterInput
	if err := parseBody(c, &req); err != nil {
		return models.RespondWithError(c, err)
	}

	user, err := s.userService.Register(c.UserContext(), req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(user)
}

// Login handles POST /api/users/login
// @Summary User login
// @Description Authenticate user and return a bearer token
// @Tags users
// @Accept json
// @Produce json
// @Param request body service.LoginInput true "Login credentials"
// @Success 200 {object} service.LoginResult
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /users/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req service.LoginInput
	if err := parseBody(c, &req); err != nil {
		return models.RespondWithError(c, err)
	}

	res, err := s.userService.Login(c.UserContext(), req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(res)
}

// CurrentUser handles POST /api/users/current
// @Summary Current user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.CurrentUser
// @Failure 401 {object} map[string]string
// @Router /users/current [post]
func (s *Server) CurrentUser(c *fiber.Ctx) error {
	return c.JSON(s.userService.Current(currentActor(c)))
}

// Logout handles POST /api/users/logout
// @Summary Revoke the presented token
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]bool
// @Failure 401 {object} map[string]string
// @Router /users/logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	if err := s.userService.Logout(c.UserContext(), currentActor(c)); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
