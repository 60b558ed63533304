package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"seguimiento-noticias/internal/domain"
	"seguimiento-noticias/internal/middleware"
	"seguimiento-noticias/internal/service/noticia"
)

type NoticiaHandler struct {
	noticiaService noticia.Service
}

func NewNoticiaHandler(noticiaService noticia.Service) *NoticiaHandler {
	return &NoticiaHandler{noticiaService: noticiaService}
}

func emptyIfNil(noticias []domain.Noticia) []domain.Noticia {
	if noticias == nil {
		return []domain.Noticia{}
	}
	return noticias
}

func (h *NoticiaHandler) List(c *fiber.Ctx) error {
	params := domain.PaginationParams{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
	}

	var filter domain.NoticiaFilter
	if raw := c.Query("pendiente"); raw != "" {
		pendiente, err := strconv.ParseBool(raw)
		if err != nil {
			return domain.NewRuleError("validation.invalid", "pendiente")
		}
		filter.Pendiente = &pendiente
	}

	result, err := h.noticiaService.List(c.UserContext(), filter, params)
	if err != nil {
		return err
	}
	return ok(c, "", result)
}

func (h *NoticiaHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateNoticiaInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	nueva, err := h.noticiaService.Create(c.UserContext(), middleware.CurrentActor(c), input)
	if err != nil {
		return err
	}
	return created(c, "noticia.created", nueva)
}

func (h *NoticiaHandler) Disponibles(c *fiber.Ctx) error {
	noticias, err := h.noticiaService.ListDisponibles(c.UserContext())
	if err != nil {
		return err
	}
	return ok(c, "", emptyIfNil(noticias))
}

func (h *NoticiaHandler) Mias(c *fiber.Ctx) error {
	actor := middleware.CurrentActor(c)
	noticias, err := h.noticiaService.ListByReportero(c.UserContext(), actor, actor.ID)
	if err != nil {
		return err
	}
	return ok(c, "", emptyIfNil(noticias))
}

func (h *NoticiaHandler) ByReportero(c *fiber.Ctx) error {
	reporteroID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	noticias, err := h.noticiaService.ListByReportero(c.UserContext(), middleware.CurrentActor(c), reporteroID)
	if err != nil {
		return err
	}
	return ok(c, "", emptyIfNil(noticias))
}

func (h *NoticiaHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	found, err := h.noticiaService.Get(c.UserContext(), middleware.CurrentActor(c), id)
	if err != nil {
		return err
	}
	return ok(c, "", found)
}

func (h *NoticiaHandler) Edit(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var input domain.UpdateNoticiaInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	result, err := h.noticiaService.Edit(c.UserContext(), middleware.CurrentActor(c), id, input)
	if err != nil {
		return err
	}
	return h.editResponse(c, result, noticia.MessageUpdated)
}

func (h *NoticiaHandler) Claim(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var input domain.ClaimInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	claimed, err := h.noticiaService.Claim(c.UserContext(), middleware.CurrentActor(c), id, input)
	if err != nil {
		return err
	}
	return ok(c, "noticia.claimed", claimed)
}

func (h *NoticiaHandler) StartRoute(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	result, err := h.noticiaService.StartRoute(c.UserContext(), middleware.CurrentActor(c), id)
	if err != nil {
		return err
	}
	return h.editResponse(c, result, noticia.MessageRouteStarted)
}

func (h *NoticiaHandler) editResponse(c *fiber.Ctx, result *domain.EditResult, fallback string) error {
	message := result.Message
	if message == "" {
		message = fallback
	}
	return ok(c, message, result.Noticia)
}

func (h *NoticiaHandler) RecordArrival(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var input domain.ArrivalInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	updated, err := h.noticiaService.RecordArrival(c.UserContext(), middleware.CurrentActor(c), id, input)
	if err != nil {
		return err
	}
	return ok(c, "noticia.arrival_recorded", updated)
}

func (h *NoticiaHandler) UpdateLocation(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var input domain.LocationInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	updated, err := h.noticiaService.UpdateLocation(c.UserContext(), middleware.CurrentActor(c), id, input)
	if err != nil {
		return err
	}
	return ok(c, "noticia.location_updated", updated)
}

func (h *NoticiaHandler) Close(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	closed, err := h.noticiaService.Close(c.UserContext(), middleware.CurrentActor(c), id)
	if err != nil {
		return err
	}
	return ok(c, "noticia.closed", closed)
}

func (h *NoticiaHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.noticiaService.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return ok(c, "noticia.deleted", fiber.Map{"id": id})
}

func (h *NoticiaHandler) Reassign(c *fiber.Ctx) error {
	var input domain.ReassignInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	updated, err := h.noticiaService.Reassign(c.UserContext(), input)
	if err != nil {
		return err
	}
	return ok(c, "noticia.reassigned", fiber.Map{"updated": updated}, updated)
}
