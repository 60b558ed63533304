package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"seguimiento-noticias/internal/domain"
	"seguimiento-noticias/internal/middleware"
	"seguimiento-noticias/internal/pkg/logger"
	"seguimiento-noticias/internal/service/auth"
	"seguimiento-noticias/internal/service/reportero"
)

type AuthHandler struct {
	authService      auth.Service
	reporteroService reportero.Service
	log              *logrus.Entry
}

func NewAuthHandler(authService auth.Service, reporteroService reportero.Service) *AuthHandler {
	return &AuthHandler{
		authService:      authService,
		reporteroService: reporteroService,
		log:              logger.WithComponent("auth_handler"),
	}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input domain.LoginInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	session, err := h.authService.Login(c.UserContext(), input)
	if err != nil {
		return err
	}

	// A device token sent with the login is registered on a best effort
	// basis; the session is valid either way.
	if input.FCMToken != "" {
		_, err := h.reporteroService.RegisterDevice(c.UserContext(), session.Reportero.Actor(), domain.RegisterDeviceInput{Token: input.FCMToken})
		if err != nil {
			h.log.WithError(err).WithField("reportero_id", session.Reportero.ID).Warn("device registration on login failed")
		}
	}

	return ok(c, "auth.login_ok", fiber.Map{
		"ws_token":     session.Token,
		"ws_token_exp": session.ExpiresAt,
		"reportero":    session.Reportero,
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authService.Logout(c.UserContext(), middleware.CurrentActor(c)); err != nil {
		return err
	}
	return ok(c, "auth.logged_out", nil)
}
