package noticia

import (
	"context"
	"strings"
	"time"

	"seguimiento-noticias/internal/domain"
	"seguimiento-noticias/internal/pkg/validation"
	"seguimiento-noticias/internal/repository"
	"seguimiento-noticias/internal/service/notification"
)

var (
	ErrNotFound            = domain.NewRuleError("noticia.not_found")
	ErrAlreadyClaimed      = domain.NewRuleError("noticia.already_claimed")
	ErrNothingToSave       = domain.NewRuleError("noticia.nothing_to_save")
	ErrConcurrentChange    = domain.NewRuleError("noticia.concurrent_change")
	ErrAppointmentLimit    = domain.NewRuleError("noticia.appointment_limit")
	ErrAppointmentInvalid  = domain.NewRuleError("noticia.appointment_invalid")
	ErrAppointmentRequired = domain.NewRuleError("noticia.appointment_required")
	ErrTitleForbidden      = domain.NewRuleError("noticia.title_forbidden")
	ErrDescriptionLocked   = domain.NewRuleError("noticia.description_locked")
	ErrDescriptionRequired = domain.NewRuleError("noticia.description_required")
	ErrTipoInvalid         = domain.NewRuleError("noticia.tipo_invalid")
	ErrLimiteOutOfRange    = domain.NewRuleError("noticia.limite_out_of_range")
	ErrTimeInvalid         = domain.NewRuleError("noticia.time_invalid")
	ErrTimeMismatch        = domain.NewRuleError("noticia.time_mismatch")
	ErrTimeRequiresArrival = domain.NewRuleError("noticia.time_requires_arrival")
	ErrUltimaModInvalid    = domain.NewRuleError("noticia.ultima_mod_invalid")
	ErrArrivalRecorded     = domain.NewRuleError("noticia.arrival_already_recorded")
	ErrArrivalInvalidTime  = domain.NewRuleError("noticia.arrival_invalid_time")
	ErrAlreadyClosed       = domain.NewRuleError("noticia.already_closed")
	ErrDeleteAssigned      = domain.NewRuleError("noticia.delete_assigned")
	ErrReassignTarget      = domain.NewRuleError("noticia.reassign_target_invalid")
	ErrCreateForbidden     = domain.NewRuleError("noticia.create_forbidden")
	ErrNotOwner            = domain.NewRuleError("noticia.not_owner")
	ErrClienteNotFound     = domain.NewRuleError("noticia.cliente_not_found")
	ErrReporteroNotFound   = domain.NewRuleError("noticia.reportero_not_found")
)

const (
	MessageUpdated             = "noticia.updated"
	MessageRouteStarted        = "noticia.route_started"
	MessageRouteAlreadyStarted = "noticia.route_already_started"
	MessageTimeAlreadyRecorded = "noticia.time_already_recorded"
)

func fieldForbidden(field string) error {
	return domain.NewRuleError("noticia.field_forbidden", field)
}

type Service interface {
	Create(ctx context.Context, actor domain.Actor, input domain.CreateNoticiaInput) (*domain.Noticia, error)
	Get(ctx context.Context, actor domain.Actor, id int64) (*domain.Noticia, error)
	List(ctx context.Context, filter domain.NoticiaFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Noticia], error)
	ListByReportero(ctx context.Context, actor domain.Actor, reporteroID int64) ([]domain.Noticia, error)
	ListDisponibles(ctx context.Context) ([]domain.Noticia, error)
	ListByCliente(ctx context.Context, clienteID int64) ([]domain.Noticia, error)
	Claim(ctx context.Context, actor domain.Actor, id int64, input domain.ClaimInput) (*domain.Noticia, error)
	Edit(ctx context.Context, actor domain.Actor, id int64, input domain.UpdateNoticiaInput) (*domain.EditResult, error)
	StartRoute(ctx context.Context, actor domain.Actor, id int64) (*domain.EditResult, error)
	RecordArrival(ctx context.Context, actor domain.Actor, id int64, input domain.ArrivalInput) (*domain.Noticia, error)
	UpdateLocation(ctx context.Context, actor domain.Actor, id int64, input domain.LocationInput) (*domain.Noticia, error)
	Close(ctx context.Context, actor domain.Actor, id int64) (*domain.Noticia, error)
	Delete(ctx context.Context, id int64) error
	Reassign(ctx context.Context, input domain.ReassignInput) (int64, error)
}

type service struct {
	noticiaRepo   repository.NoticiaRepository
	reporteroRepo repository.ReporteroRepository
	clienteRepo   repository.ClienteRepository
	notifier      notification.Service
	loc           *time.Location
	now           func() time.Time
}

func NewService(
	noticiaRepo repository.NoticiaRepository,
	reporteroRepo repository.ReporteroRepository,
	clienteRepo repository.ClienteRepository,
	notifier notification.Service,
	loc *time.Location,
) Service {
	if loc == nil {
		loc = time.Local
	}
	return &service{
		noticiaRepo:   noticiaRepo,
		reporteroRepo: reporteroRepo,
		clienteRepo:   clienteRepo,
		notifier:      notifier,
		loc:           loc,
		now:           time.Now,
	}
}

func (s *service) Create(ctx context.Context, actor domain.Actor, input domain.CreateNoticiaInput) (*domain.Noticia, error) {
	if !actor.CanCreateNoticias() {
		return nil, ErrCreateForbidden
	}

	input.Titulo = strings.TrimSpace(input.Titulo)
	input.TipoDeNota = strings.TrimSpace(input.TipoDeNota)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	n := &domain.Noticia{
		Titulo:              input.Titulo,
		TipoDeNota:          input.TipoDeNota,
		Descripcion:         domain.NullableString(input.Descripcion),
		Domicilio:           domain.NullableString(input.Domicilio),
		Latitud:             input.Latitud,
		Longitud:            input.Longitud,
		LimiteTiempoMinutos: input.LimiteTiempoMinutos,
	}
	if n.TipoDeNota == "" {
		n.TipoDeNota = domain.TipoNota
	}

	if raw := strings.TrimSpace(input.FechaCita); raw != "" {
		fecha, err := domain.ParseDateTime(raw, s.loc)
		if err != nil {
			return nil, ErrAppointmentInvalid
		}
		n.FechaCita = &fecha
	}

	if input.ReporteroID != nil && *input.ReporteroID > 0 {
		reportero, err := s.reporteroRepo.GetByID(ctx, *input.ReporteroID)
		if err != nil {
			return nil, err
		}
		if reportero == nil {
			return nil, ErrReporteroNotFound
		}
		n.ReporteroID = &reportero.ID
	}

	if input.ClienteID != nil && *input.ClienteID > 0 {
		if err := s.ensureCliente(ctx, *input.ClienteID); err != nil {
			return nil, err
		}
		n.ClienteID = input.ClienteID
	}

	if err := s.noticiaRepo.Create(ctx, n); err != nil {
		return nil, err
	}

	s.notifier.NoticiaCreated(ctx, n)
	return n, nil
}

func (s *service) ensureCliente(ctx context.Context, id int64) error {
	cliente, err := s.clienteRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if cliente == nil {
		return ErrClienteNotFound
	}
	return nil
}

func (s *service) Get(ctx context.Context, actor domain.Actor, id int64) (*domain.Noticia, error) {
	n, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && n.IsAssigned() && *n.ReporteroID != actor.ID {
		return nil, ErrNotOwner
	}
	return n, nil
}

func (s *service) List(ctx context.Context, filter domain.NoticiaFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Noticia], error) {
	params.Validate()
	noticias, total, err := s.noticiaRepo.List(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Noticia]{}, err
	}
	return domain.NewPaginatedResponse(noticias, params.Page, params.PageSize, total), nil
}

func (s *service) ListByReportero(ctx context.Context, actor domain.Actor, reporteroID int64) ([]domain.Noticia, error) {
	if !actor.IsAdmin() && reporteroID != actor.ID {
		return nil, ErrNotOwner
	}
	return s.noticiaRepo.ListByReportero(ctx, reporteroID)
}

func (s *service) ListDisponibles(ctx context.Context) ([]domain.Noticia, error) {
	return s.noticiaRepo.ListDisponibles(ctx)
}

func (s *service) ListByCliente(ctx context.Context, clienteID int64) ([]domain.Noticia, error) {
	return s.noticiaRepo.ListByCliente(ctx, clienteID)
}

// Claim assigns an unassigned noticia with a single conditional write. An
// admin may claim on behalf of another reportero.
func (s *service) Claim(ctx context.Context, actor domain.Actor, id int64, input domain.ClaimInput) (*domain.Noticia, error) {
	reporteroID := actor.ID
	if actor.IsAdmin() && input.ReporteroID != nil && *input.ReporteroID > 0 && *input.ReporteroID != actor.ID {
		reportero, err := s.reporteroRepo.GetByID(ctx, *input.ReporteroID)
		if err != nil {
			return nil, err
		}
		if reportero == nil {
			return nil, ErrReporteroNotFound
		}
		reporteroID = reportero.ID
	}

	claimed, err := s.noticiaRepo.Claim(ctx, id, reporteroID)
	if err != nil {
		return nil, err
	}
	if !claimed {
		if _, err := s.load(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrAlreadyClaimed
	}

	return s.load(ctx, id)
}

func (s *service) Edit(ctx context.Context, actor domain.Actor, id int64, input domain.UpdateNoticiaInput) (*domain.EditResult, error) {
	cur, err := s.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	changes, notes, err := planEdit(cur, input, policyFor(actor.Role), s.now(), s.loc)
	if err != nil {
		return nil, err
	}

	if changes.IsEmpty() {
		switch {
		case notes.routeAlreadyStarted:
			return &domain.EditResult{Noticia: cur, Message: MessageRouteAlreadyStarted}, nil
		case notes.timeAlreadyRecorded:
			return &domain.EditResult{Noticia: cur, Message: MessageTimeAlreadyRecorded}, nil
		default:
			return nil, ErrNothingToSave
		}
	}

	if changes.ClienteID != nil && *changes.ClienteID != nil {
		if err := s.ensureCliente(ctx, **changes.ClienteID); err != nil {
			return nil, err
		}
	}

	applied, err := s.noticiaRepo.ApplyChanges(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	if !applied {
		latest, err := s.load(ctx, id)
		if err != nil {
			return nil, err
		}
		if changes.IniciarRuta && latest.RutaIniciada && routeStartOnly(changes) {
			return &domain.EditResult{Noticia: latest, Message: MessageRouteAlreadyStarted}, nil
		}
		return nil, ErrConcurrentChange
	}

	updated, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	message := MessageUpdated
	if changes.IniciarRuta {
		message = MessageRouteStarted
		s.notifier.RouteStarted(ctx, updated, reporteroName(updated, actor))
	}

	return &domain.EditResult{Noticia: updated, Message: message, Changed: true}, nil
}

func (s *service) StartRoute(ctx context.Context, actor domain.Actor, id int64) (*domain.EditResult, error) {
	started := 1
	return s.Edit(ctx, actor, id, domain.UpdateNoticiaInput{RutaIniciada: &started})
}

func (s *service) RecordArrival(ctx context.Context, actor domain.Actor, id int64, input domain.ArrivalInput) (*domain.Noticia, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	at := s.now()
	if raw := strings.TrimSpace(input.HoraLlegada); raw != "" {
		parsed, err := domain.ParseDateTime(raw, s.loc)
		if err != nil {
			return nil, ErrArrivalInvalidTime
		}
		at = parsed
	}

	cur, err := s.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if cur.HoraLlegada != nil {
		return nil, ErrArrivalRecorded
	}

	recorded, err := s.noticiaRepo.RecordArrival(ctx, id, at, *input.Latitud, *input.Longitud)
	if err != nil {
		return nil, err
	}
	if !recorded {
		if _, err := s.load(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrArrivalRecorded
	}

	updated, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	s.notifier.Arrived(ctx, updated, reporteroName(updated, actor))
	return updated, nil
}

func (s *service) UpdateLocation(ctx context.Context, actor domain.Actor, id int64, input domain.LocationInput) (*domain.Noticia, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if _, err := s.loadOwned(ctx, actor, id); err != nil {
		return nil, err
	}

	updated, err := s.noticiaRepo.UpdateLocation(ctx, id, *input.Latitud, *input.Longitud, domain.NullableString(input.Domicilio))
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrNotFound
	}
	return s.load(ctx, id)
}

func (s *service) Close(ctx context.Context, actor domain.Actor, id int64) (*domain.Noticia, error) {
	if _, err := s.loadOwned(ctx, actor, id); err != nil {
		return nil, err
	}

	closed, err := s.noticiaRepo.Close(ctx, id)
	if err != nil {
		return nil, err
	}
	if !closed {
		if _, err := s.load(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrAlreadyClosed
	}
	return s.load(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	deleted, err := s.noticiaRepo.DeleteUnassigned(ctx, id)
	if err != nil {
		return err
	}
	if deleted {
		return nil
	}
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	return ErrDeleteAssigned
}

func (s *service) Reassign(ctx context.Context, input domain.ReassignInput) (int64, error) {
	if err := validation.Struct(input); err != nil {
		return 0, err
	}

	ids := make([]int64, 0, len(input.NoticiaIDs))
	for _, id := range input.NoticiaIDs {
		if id > 0 {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return 0, domain.NewRuleError("validation.required", "noticia_ids")
	}

	var target *int64
	if input.NuevoReporteroID != nil && *input.NuevoReporteroID > 0 {
		reportero, err := s.reporteroRepo.GetByID(ctx, *input.NuevoReporteroID)
		if err != nil {
			return 0, err
		}
		if reportero == nil || reportero.Role != domain.RoleReportero {
			return 0, ErrReassignTarget
		}
		target = &reportero.ID
	}

	return s.noticiaRepo.Reassign(ctx, ids, target)
}

func (s *service) load(ctx context.Context, id int64) (*domain.Noticia, error) {
	n, err := s.noticiaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, ErrNotFound
	}
	return n, nil
}

// loadOwned returns the noticia when the actor may act on it: admins always,
// reporteros only on their own assignments.
func (s *service) loadOwned(ctx context.Context, actor domain.Actor, id int64) (*domain.Noticia, error) {
	n, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.IsAdmin() {
		return n, nil
	}
	if !n.IsAssigned() || *n.ReporteroID != actor.ID {
		return nil, ErrNotOwner
	}
	return n, nil
}

// routeStartOnly reports whether starting the route is the only change.
func routeStartOnly(c domain.NoticiaChanges) bool {
	c.IniciarRuta = false
	return c.IsEmpty()
}

func reporteroName(n *domain.Noticia, actor domain.Actor) string {
	if n.ReporteroNombre != nil && strings.TrimSpace(*n.ReporteroNombre) != "" {
		return strings.TrimSpace(*n.ReporteroNombre)
	}
	return actor.Nombre
}
