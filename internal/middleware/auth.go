package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"seguimiento-noticias/internal/domain"
	"seguimiento-noticias/internal/service/auth"
)

const (
	ActorContextKey = "actor"
	TokenQueryKey   = "ws_token"
)

// AuthRequired resolves the session token from the Authorization header or
// the ws_token query/form field and stores the actor in locals.
func AuthRequired(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := tokenFromRequest(c)
		if token == "" {
			return Unauthorized("auth.session_required")
		}

		actor, err := authService.Authenticate(c.UserContext(), token)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidSession) {
				return Unauthorized("auth.session_invalid")
			}
			return err
		}

		c.Locals(ActorContextKey, *actor)
		return c.Next()
	}
}

func tokenFromRequest(c *fiber.Ctx) string {
	if header := c.Get(fiber.HeaderAuthorization); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if token := c.Query(TokenQueryKey); token != "" {
		return token
	}
	return strings.TrimSpace(c.FormValue(TokenQueryKey))
}

func ActorFromContext(c *fiber.Ctx) (domain.Actor, bool) {
	actor, ok := c.Locals(ActorContextKey).(domain.Actor)
	return actor, ok
}

// CurrentActor returns the authenticated actor. Routes behind AuthRequired
// always have one.
func CurrentActor(c *fiber.Ctx) domain.Actor {
	actor, _ := ActorFromContext(c)
	return actor
}
