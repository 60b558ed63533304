package handler

import "seguimiento-noticias/internal/service"

type Handlers struct {
	Auth      *AuthHandler
	Noticia   *NoticiaHandler
	Reportero *ReporteroHandler
	Cliente   *ClienteHandler
	Aviso     *AvisoHandler
	Meta      *MetaHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:      NewAuthHandler(services.Auth, services.Reportero),
		Noticia:   NewNoticiaHandler(services.Noticia),
		Reportero: NewReporteroHandler(services.Reportero),
		Cliente:   NewClienteHandler(services.Cliente, services.Noticia),
		Aviso:     NewAvisoHandler(services.Aviso),
		Meta:      NewMetaHandler(services.Meta),
	}
}
