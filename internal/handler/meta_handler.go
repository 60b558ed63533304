package handler

import (
	"github.com/gofiber/fiber/v2"

	"seguimiento-noticias/internal/domain"
	"seguimiento-noticias/internal/middleware"
	"seguimiento-noticias/internal/service/meta"
)

type MetaHandler struct {
	metaService meta.Service
}

func NewMetaHandler(metaService meta.Service) *MetaHandler {
	return &MetaHandler{metaService: metaService}
}

func (h *MetaHandler) EmpleadoDestacado(c *fiber.Ctx) error {
	report, err := h.metaService.EmpleadoDestacado(c.UserContext(), c.QueryInt("anio"), c.QueryInt("mes"))
	if err != nil {
		return err
	}
	return ok(c, "", report)
}

func (h *MetaHandler) SetMinimo(c *fiber.Ctx) error {
	var input domain.SetMinimoInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	updated, err := h.metaService.SetMinimo(c.UserContext(), middleware.CurrentActor(c), input)
	if err != nil {
		return err
	}
	return ok(c, "meta.minimo_updated", updated)
}

func (h *MetaHandler) Export(c *fiber.Ctx) error {
	export, err := h.metaService.Export(c.UserContext(), c.QueryInt("anio"), c.QueryInt("mes"))
	if err != nil {
		return err
	}
	return ok(c, "meta.export_ready", export)
}
