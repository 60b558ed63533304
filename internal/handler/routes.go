package handler

import (
	"github.com/gofiber/fiber/v2"

	"seguimiento-noticias/internal/middleware"
	"seguimiento-noticias/internal/service/auth"
)

// SetupRoutes registers the API. loginLimiter may be nil.
func SetupRoutes(app *fiber.App, h *Handlers, authService auth.Service, loginLimiter fiber.Handler) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	if loginLimiter != nil {
		v1.Post("/auth/login", loginLimiter, h.Auth.Login)
	} else {
		v1.Post("/auth/login", h.Auth.Login)
	}

	protected := v1.Group("", middleware.AuthRequired(authService))
	admin := middleware.RequireAdmin()

	protected.Post("/auth/logout", h.Auth.Logout)

	protected.Get("/perfil", h.Reportero.GetPerfil)
	protected.Put("/perfil", h.Reportero.UpdatePerfil)
	protected.Post("/perfil/dispositivo", h.Reportero.RegisterDevice)

	noticias := protected.Group("/noticias")
	noticias.Get("/", admin, h.Noticia.List)
	noticias.Post("/", h.Noticia.Create)
	noticias.Get("/disponibles", h.Noticia.Disponibles)
	noticias.Get("/mias", h.Noticia.Mias)
	noticias.Post("/reasignar", admin, h.Noticia.Reassign)
	noticias.Get("/reportero/:id", h.Noticia.ByReportero)
	noticias.Get("/:id", h.Noticia.Get)
	noticias.Patch("/:id", h.Noticia.Edit)
	noticias.Post("/:id", h.Noticia.Edit)
	noticias.Delete("/:id", admin, h.Noticia.Delete)
	noticias.Post("/:id/tomar", h.Noticia.Claim)
	noticias.Post("/:id/trayecto", h.Noticia.StartRoute)
	noticias.Post("/:id/llegada", h.Noticia.RecordArrival)
	noticias.Post("/:id/ubicacion", h.Noticia.UpdateLocation)
	noticias.Post("/:id/cerrar", h.Noticia.Close)

	clientes := protected.Group("/clientes")
	clientes.Get("/", h.Cliente.Search)
	clientes.Post("/", h.Cliente.Create)
	clientes.Get("/:id", h.Cliente.Get)
	clientes.Put("/:id", h.Cliente.Update)
	clientes.Get("/:id/noticias", h.Cliente.Noticias)

	reporteros := protected.Group("/reporteros")
	reporteros.Get("/", h.Reportero.Search)
	reporteros.Post("/", admin, h.Reportero.Create)
	reporteros.Delete("/:id", admin, h.Reportero.Delete)

	avisos := protected.Group("/avisos")
	avisos.Get("/", h.Aviso.List)
	avisos.Post("/", admin, h.Aviso.Create)

	metas := protected.Group("/metas")
	metas.Get("/empleado-destacado", h.Meta.EmpleadoDestacado)
	metas.Put("/minimo", admin, h.Meta.SetMinimo)
	metas.Post("/empleado-destacado/export", admin, h.Meta.Export)
}
