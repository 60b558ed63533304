package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"seguimiento-noticias/internal/domain"
	"seguimiento-noticias/internal/pkg/i18n"
	"seguimiento-noticias/internal/pkg/logger"
)

// Response is the envelope returned by every endpoint.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
}

func Locale(c *fiber.Ctx) string {
	return i18n.LocaleFromHeader(c.Get(fiber.HeaderAcceptLanguage))
}

// NewErrorHandler renders rule errors as a 200 with success=false, fiber
// errors with their own status and everything else as a 500. The detail of
// unexpected errors is only exposed outside production.
func NewErrorHandler(production bool) fiber.ErrorHandler {
	log := logger.WithComponent("http")

	return func(c *fiber.Ctx, err error) error {
		locale := Locale(c)

		var ruleErr *domain.RuleError
		if errors.As(err, &ruleErr) {
			return c.Status(fiber.StatusOK).JSON(Response{
				Success: false,
				Message: i18n.Translatef(locale, ruleErr.Key, ruleErr.Args...),
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			key := fiberErr.Message
			switch fiberErr.Code {
			case fiber.StatusNotFound:
				if !isKey(key) {
					key = "server.not_found"
				}
			case fiber.StatusMethodNotAllowed:
				key = "server.method_not_allowed"
			}
			return c.Status(fiberErr.Code).JSON(Response{
				Success: false,
				Message: i18n.Translate(locale, key),
			})
		}

		traceID := uuid.New().String()[:8]
		log.WithError(err).WithFields(logrus.Fields{
			"trace_id": traceID,
			"method":   c.Method(),
			"path":     c.Path(),
		}).Error("request failed")

		resp := Response{
			Success: false,
			Message: i18n.Translate(locale, "server.internal"),
			TraceID: traceID,
		}
		if !production {
			resp.Error = err.Error()
		}
		return c.Status(fiber.StatusInternalServerError).JSON(resp)
	}
}

// isKey reports whether a fiber error message looks like a translation key
// rather than one of fiber's own sentences.
func isKey(message string) bool {
	return message != "" && !strings.ContainsRune(message, ' ')
}

func BadRequest(key string) *fiber.Error {
	return fiber.NewError(fiber.StatusBadRequest, key)
}

func Unauthorized(key string) *fiber.Error {
	return fiber.NewError(fiber.StatusUnauthorized, key)
}

func Forbidden(key string) *fiber.Error {
	return fiber.NewError(fiber.StatusForbidden, key)
}

func NotFound(key string) *fiber.Error {
	return fiber.NewError(fiber.StatusNotFound, key)
}
