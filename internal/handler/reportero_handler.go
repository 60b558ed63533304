package handler

import (
	"github.com/gofiber/fiber/v2"

	"seguimiento-noticias/internal/domain"
	"seguimiento-noticias/internal/middleware"
	"seguimiento-noticias/internal/service/reportero"
)

type ReporteroHandler struct {
	reporteroService reportero.Service
}

func NewReporteroHandler(reporteroService reportero.Service) *ReporteroHandler {
	return &ReporteroHandler{reporteroService: reporteroService}
}

func (h *ReporteroHandler) Search(c *fiber.Ctx) error {
	reporteros, err := h.reporteroService.Search(c.UserContext(), c.Query("q"))
	if err != nil {
		return err
	}
	if reporteros == nil {
		reporteros = []domain.ReporteroSummary{}
	}
	return ok(c, "", reporteros)
}

func (h *ReporteroHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateReporteroInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	nuevo, err := h.reporteroService.Create(c.UserContext(), input)
	if err != nil {
		return err
	}
	return created(c, "reportero.created", nuevo)
}

func (h *ReporteroHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.reporteroService.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return ok(c, "reportero.deleted", fiber.Map{"id": id})
}

func (h *ReporteroHandler) GetPerfil(c *fiber.Ctx) error {
	perfil, err := h.reporteroService.GetPerfil(c.UserContext(), middleware.CurrentActor(c))
	if err != nil {
		return err
	}
	return ok(c, "", perfil)
}

func (h *ReporteroHandler) UpdatePerfil(c *fiber.Ctx) error {
	var input domain.UpdatePerfilInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	perfil, err := h.reporteroService.UpdatePerfil(c.UserContext(), middleware.CurrentActor(c), input)
	if err != nil {
		return err
	}
	return ok(c, "reportero.perfil_updated", perfil)
}

func (h *ReporteroHandler) RegisterDevice(c *fiber.Ctx) error {
	var input domain.RegisterDeviceInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	topics, err := h.reporteroService.RegisterDevice(c.UserContext(), middleware.CurrentActor(c), input)
	if err != nil {
		return err
	}
	return ok(c, "reportero.device_registered", fiber.Map{"topics": topics})
}
