package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"blogcms/internal/services"
)

// respond writes a service envelope as a JSON response, placing the
// payload under the operation's payload key. The HTTP status for a
// failure is derived from the envelope: field errors map to 400,
// not-found messages to 404, conflicts to 409 and everything else to 500.
func respond[T any](c *fiber.Ctx, res services.Envelope[T], payloadKey string, successStatus int) error {
	body := fiber.Map{
		"ok":       res.OK,
		payloadKey: res.Payload,
		"message":  res.Message,
	}
	if res.OK {
		return c.Status(successStatus).JSON(body)
	}

	status := fiber.StatusInternalServerError
	switch {
	case res.Errors != nil:
		status = fiber.StatusBadRequest
		body["errors"] = res.Errors
	case strings.Contains(res.Message, "not found"):
		status = fiber.StatusNotFound
	case strings.Contains(res.Message, "already"), strings.Contains(res.Message, "cannot be changed"):
		status = fiber.StatusConflict
	}
	return c.Status(status).JSON(body)
}
