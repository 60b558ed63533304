package handler

import (
	"github.com/gofiber/fiber/v2"

	"seguimiento-noticias/internal/domain"
	"seguimiento-noticias/internal/service/aviso"
)

type AvisoHandler struct {
	avisoService aviso.Service
}

func NewAvisoHandler(avisoService aviso.Service) *AvisoHandler {
	return &AvisoHandler{avisoService: avisoService}
}

func (h *AvisoHandler) List(c *fiber.Ctx) error {
	avisos, err := h.avisoService.ListActive(c.UserContext())
	if err != nil {
		return err
	}
	if avisos == nil {
		avisos = []domain.Aviso{}
	}
	return ok(c, "", avisos)
}

func (h *AvisoHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateAvisoInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	nuevo, err := h.avisoService.Create(c.UserContext(), input)
	if err != nil {
		return err
	}
	return created(c, "aviso.created", nuevo)
}
