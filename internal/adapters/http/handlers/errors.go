package handlers

import (
	"context"
	"errors"
	"log"
	"strings"

	"procurehub/internal/core/domain"
	"procurehub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// handleError maps a service error onto the response envelope.
// fallback is the message used for unexpected errors.
func handleError(c *fiber.Ctx, err error, fallback string) error {
	msg := errorMessage(err)
	switch {
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return response.UnsupportedMediaType(c, msg)
	case errors.Is(err, domain.ErrFileTooLarge):
		return response.PayloadTooLarge(c, msg)
	case errors.Is(err, domain.ErrValidation):
		return response.UnprocessableEntity(c, msg)
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, msg)
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrInvalidTransition):
		return response.Conflict(c, msg)
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, "You don't have permission to access this resource")
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrInvalidCredentials):
		return response.Unauthorized(c, msg)
	case errors.Is(err, domain.ErrStorageUnavailable):
		return response.ServiceUnavailable(c, msg)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return response.ServiceUnavailable(c, "Request cancelled")
	}
	log.Printf("❌ %s: %v", fallback, err)
	return response.InternalServerError(c, fallback)
}

// errorMessage capitalizes the error text for the envelope
func errorMessage(err error) string {
	msg := err.Error()
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

// currentUser returns the identity set by the auth middleware
func currentUser(c *fiber.Ctx) (string, domain.Role, bool) {
	userID, ok := c.Locals("userID").(string)
	if !ok || userID == "" {
		return "", "", false
	}
	role, _ := c.Locals("role").(string)
	return userID, domain.Role(role), true
}

// splitQuery turns "a,b" into ["a", "b"], dropping blanks
func splitQuery(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func statusesOf[S ~string](raw string) []S {
	parts := splitQuery(raw)
	out := make([]S, 0, len(parts))
	for _, p := range parts {
		out = append(out, S(p))
	}
	return out
}
