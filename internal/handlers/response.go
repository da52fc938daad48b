package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"journal/internal/repositories"
	"journal/internal/validation"
)

const (
	userNotFound = "User not found"
	noteNotFound = "Note not found"
)

func detail(c *fiber.Ctx, status int, v interface{}) error {
	return c.Status(status).JSON(fiber.Map{"detail": v})
}

// parseID reads the :id path parameter.
func parseID(c *fiber.Ctx) (uint, error) {
	raw := c.Params("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, validation.Path("id", raw)
	}
	return uint(id), nil
}

// bind decodes the JSON body into out and validates it.
func bind(c *fiber.Ctx, v *validation.Validator, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return validation.Body(err)
	}
	return v.Struct(out)
}

// respondError turns the errors handlers know about into responses and
// hands everything else to the app's error handler.
func respondError(c *fiber.Ctx, err error) error {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return detail(c, fiber.StatusUnprocessableEntity, verrs)
	}

	var conflict *repositories.ConflictError
	if errors.As(err, &conflict) {
		zerolog.Ctx(c.UserContext()).Info().Str("username", conflict.Username).Msg("username already taken")
		return detail(c, fiber.StatusBadRequest, conflict.Error())
	}

	if errors.Is(err, repositories.ErrUnknownUser) {
		return detail(c, fiber.StatusNotFound, userNotFound)
	}
	return err
}
