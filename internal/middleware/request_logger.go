package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// RequestLogger puts a logger tagged with the request id into the request's
// user context, where zerolog.Ctx picks it up. It must run after the
// requestid middleware.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.GetRespHeader(fiber.HeaderXRequestID)
		if requestID == "" {
			return c.Next()
		}

		logger := log.With().Str("request_id", requestID).Logger()
		c.SetUserContext(logger.WithContext(c.UserContext()))
		return c.Next()
	}
}
