package server

import (
	"net/url"

	"devconnector/internal/models"
	"devconnector/internal/service"

	"github.com/gofiber/fiber/v2"
)

func noProfile() error {
	return models.NewNotFoundError("noprofile", "There is no profile for this user")
}

// GetCurrentProfile handles GET /api/profile
// @Summary Current user's profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Profile
// @Failure 404 {object} map[string]string
// @Router /profile [get]
func (s *Server) GetCurrentProfile(c *fiber.Ctx) error {
	profile, err := s.profileService.Current(c.UserContext(), currentActor(c).ID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(profile)
}

// GetAllProfiles handles GET /api/profile/all
// @Summary List profiles
// @Tags profile
// @Produce json
// @Success 200 {array} models.Profile
// @Failure 404 {object} map[string]string
// @Router /profile/all [get]
func (s *Server) GetAllProfiles(c *fiber.Ctx) error {
	profiles, err := s.profileService.All(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(profiles)
}

// GetProfileByHandle handles GET /api/profile/handle/:handle
// @Summary Profile by handle
// @Tags profile
// @Produce json
// @Param handle path string true "Profile handle"
// @Success 200 {object} models.Profile
// @Failure 404 {object} map[string]string
// @Router /profile/handle/{handle} [get]
func (s *Server) GetProfileByHandle(c *fiber.Ctx) error {
	handle := c.Params("handle")
	if decoded, err := url.PathUnescape(handle); err == nil {
		handle = decoded
	}
	profile, err := s.profileService.ByHandle(c.UserContext(), handle)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(profile)
}

// GetProfileByUser handles GET /api/profile/user/:user_id
// @Summary Profile by user id
// @Tags profile
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} models.Profile
// @Failure 404 {object} map[string]string
// @Router /profile/user/{user_id} [get]
func (s *Server) GetProfileByUser(c *fiber.Ctx) error {
	userID, ok := parseID(c, "user_id")
	if !ok {
		return models.RespondWithError(c, noProfile())
	}
	profile, err := s.profileService.ByUser(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(profile)
}

// UpsertProfile handles POST /api/profile
// @Summary Create or update the current user's profile
// @Description Only the optional fields present in the body are written.
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.ProfileInput true "Profile fields"
// @Success 200 {object} models.Profile
// @Failure 400 {object} map[string]string
// @Router /profile [post]
func (s *Server) UpsertProfile(c *fiber.Ctx) error {
	var req service.ProfileInput
	if err := parseBody(c, &req); err != nil {
		return models.RespondWithError(c, err)
	}

	profile, err := s.profileService.Upsert(c.UserContext(), currentActor(c).ID, req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(profile)
}

// AddExperience handles POST /api/profile/experience
// @Summary Add experience
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.ExperienceInput true "Experience entry"
// @Success 200 {object} models.Profile
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /profile/experience [post]
func (s *Server) AddExperience(c *fiber.Ctx) error {
	var req service.ExperienceInput
	if err := parseBody(c, &req); err != nil {
		return models.RespondWithError(c, err)
	}

	profile, err := s.profileService.AddExperience(c.UserContext(), currentActor(c).ID, req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(profile)
}

// RemoveExperience handles DELETE /api/profile/experience/:exp_id
// @Summary Remove experience
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param exp_id path int true "Experience ID"
// @Success 200 {object} models.Profile
// @Router /profile/experience/{exp_id} [delete]
func (s *Server) RemoveExperience(c *fiber.Ctx) error {
	// A malformed id matches no entry, which is a no-op.
	expID, _ := parseID(c, "exp_id")
	profile, err := s.profileService.RemoveExperience(c.UserContext(), currentActor(c).ID, expID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(profile)
}

// AddEducation handles POST /api/profile/education
// @Summary Add education
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.EducationInput true "Education entry"
// @Success 200 {object} models.Profile
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /profile/education [post]
func (s *Server) AddEducation(c *fiber.Ctx) error {
	var req service.EducationInput
	if err := parseBody(c, &req); err != nil {
		return models.RespondWithError(c, err)
	}

	profile, err := s.profileService.AddEducation(c.UserContext(), currentActor(c).ID, req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(profile)
}

// RemoveEducation handles DELETE /api/profile/education/:edu_id
// @Summary Remove education
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param edu_id path int true "Education ID"
// @Success 200 {object} models.Profile
// @Router /profile/education/{edu_id} [delete]
func (s *Server) RemoveEducation(c *fiber.Ctx) error {
	eduID, _ := parseID(c, "edu_id")
	profile, err := s.profileService.RemoveEducation(c.UserContext(), currentActor(c).ID, eduID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(profile)
}

// DeleteAccount handles DELETE /api/profile
// @Summary Delete profile and account
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]bool
// @Router /profile [delete]
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	if err := s.profileService.DeleteAccount(c.UserContext(), currentActor(c).ID); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
