package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v3"

	"seguimiento-noticias/internal/config"
	"seguimiento-noticias/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

type Service interface {
	// SendAviso mirrors an announcement to the configured recipients. It is a
	// no-op when email is not configured.
	SendAviso(ctx context.Context, aviso *domain.Aviso) error
}

type service struct {
	client     *resend.Client
	config     *config.Config
	recipients []string
}

func NewService(cfg *config.Config) Service {
	var client *resend.Client
	if cfg.ResendAPIKey != "" {
		client = resend.NewClient(cfg.ResendAPIKey)
	}
	return &service{
		client:     client,
		config:     cfg,
		recipients: cfg.AvisoEmailRecipients,
	}
}

func render(templateName string, data interface{}) (string, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+templateName)
	if err != nil {
		return "", fmt.Errorf("failed to parse email templates: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.ExecuteTemplate(&body, "layout", data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

func (s *service) sendEmail(to []string, subject, templateName string, data interface{}) error {
	html, err := render(templateName, data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Seguimiento de Noticias <%s>", s.config.FromEmail),
		To:      to,
		Html:    html,
		Subject: subject,
	}

	_, err = s.client.Emails.Send(params)
	return err
}

func (s *service) SendAviso(ctx context.Context, aviso *domain.Aviso) error {
	if s.client == nil || len(s.recipients) == 0 {
		return nil
	}

	data := struct {
		Title       string
		Descripcion string
		Vigencia    string
	}{
		Title:       aviso.Titulo,
		Descripcion: aviso.Descripcion,
		Vigencia:    aviso.Vigencia.Format("02/01/2006"),
	}
	return s.sendEmail(s.recipients, "Nuevo aviso: "+aviso.Titulo, "aviso.html", data)
}
