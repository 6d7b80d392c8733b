package server

import (
	"strconv"

	"devconnector/internal/auth"
	"devconnector/internal/middleware"
	"devconnector/internal/models"

	"github.com/gofiber/fiber/v2"
)

// parseID extracts a route parameter as a positive id. Malformed ids name
// no stored record, so callers report them with the resource's not-found
// error.
func parseID(c *fiber.Ctx, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(param), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// parseBody decodes the request body into v. An empty body leaves v at
// its zero value so validation reports the missing fields.
func parseBody(c *fiber.Ctx, v any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(v); err != nil {
		return models.NewValidationError("error", "Invalid request body")
	}
	return nil
}

// currentActor returns the actor set by the auth guard. Routes without the
// guard never call it.
func currentActor(c *fiber.Ctx) *auth.Actor {
	actor, _ := middleware.ActorFrom(c)
	return actor
}
