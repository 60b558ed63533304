package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"seguimiento-noticias/internal/middleware"
	"seguimiento-noticias/internal/pkg/i18n"
)

// ok writes a success envelope. key is a translation key and may be empty.
func ok(c *fiber.Ctx, key string, data interface{}, args ...interface{}) error {
	resp := middleware.Response{Success: true, Data: data}
	if key != "" {
		resp.Message = i18n.Translatef(middleware.Locale(c), key, args...)
	}
	return c.JSON(resp)
}

func created(c *fiber.Ctx, key string, data interface{}) error {
	c.Status(fiber.StatusCreated)
	return ok(c, key, data)
}

func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, middleware.BadRequest("validation.body")
	}
	return id, nil
}

// parseBody accepts JSON, urlencoded and multipart bodies. An empty body
// leaves input untouched.
func parseBody(c *fiber.Ctx, input interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(input); err != nil {
		return middleware.BadRequest("validation.body")
	}
	return nil
}
