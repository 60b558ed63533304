package middleware

import (
	"github.com/gofiber/fiber/v2"

	"seguimiento-noticias/internal/domain"
)

func RequireRole(roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := ActorFromContext(c)
		if !ok {
			return Unauthorized("auth.session_required")
		}

		for _, role := range roles {
			if actor.Role == role {
				return c.Next()
			}
		}
		return Forbidden("auth.forbidden")
	}
}

func RequireAdmin() fiber.Handler {
	return RequireRole(domain.RoleAdmin)
}
