package middleware

import (
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"

	"seguimiento-noticias/internal/pkg/logger"
)

// RequestLogger writes the access log through logrus so it shares the
// process formatter and rotation.
func RequestLogger() fiber.Handler {
	return fiberlogger.New(fiberlogger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
		Format:     "${locals:requestid} ${status} ${method} ${path} ${latency}\n",
		TimeFormat: "2006-01-02 15:04:05",
		Output:     logger.Get().WriterLevel(logrus.InfoLevel),
	})
}
