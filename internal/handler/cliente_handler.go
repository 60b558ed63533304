package handler

import (
	"github.com/gofiber/fiber/v2"

	"seguimiento-noticias/internal/domain"
	"seguimiento-noticias/internal/service/cliente"
	"seguimiento-noticias/internal/service/noticia"
)

type ClienteHandler struct {
	clienteService cliente.Service
	noticiaService noticia.Service
}

func NewClienteHandler(clienteService cliente.Service, noticiaService noticia.Service) *ClienteHandler {
	return &ClienteHandler{
		clienteService: clienteService,
		noticiaService: noticiaService,
	}
}

func (h *ClienteHandler) Search(c *fiber.Ctx) error {
	clientes, err := h.clienteService.Search(c.UserContext(), c.Query("q"))
	if err != nil {
		return err
	}
	if clientes == nil {
		clientes = []domain.Cliente{}
	}
	return ok(c, "", clientes)
}

func (h *ClienteHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateClienteInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	nuevo, err := h.clienteService.Create(c.UserContext(), input)
	if err != nil {
		return err
	}
	return created(c, "cliente.created", nuevo)
}

func (h *ClienteHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	found, err := h.clienteService.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return ok(c, "", found)
}

func (h *ClienteHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var input domain.UpdateClienteInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	updated, err := h.clienteService.Update(c.UserContext(), id, input)
	if err != nil {
		return err
	}
	return ok(c, "cliente.updated", updated)
}

func (h *ClienteHandler) Noticias(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	noticias, err := h.noticiaService.ListByCliente(c.UserContext(), id)
	if err != nil {
		return err
	}
	return ok(c, "", emptyIfNil(noticias))
}
