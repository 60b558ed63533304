package noticia

import (
	"context"
	"sync"
	"time"

	"seguimiento-noticias/internal/domain"
)

// fakeNoticiaRepository enforces the same conditional-write guards as the SQL
// repository so the service can be exercised end to end in memory.
type fakeNoticiaRepository struct {
	mu          sync.Mutex
	rows        map[int64]*domain.Noticia
	nextID      int64
	beforeApply func(n *domain.Noticia)
}

func newFakeRepo(rows ...*domain.Noticia) *fakeNoticiaRepository {
	r := &fakeNoticiaRepository{rows: make(map[int64]*domain.Noticia), nextID: 100}
	for _, n := range rows {
		r.rows[n.ID] = n
	}
	return r
}

func clone(n *domain.Noticia) *domain.Noticia {
	c := *n
	return &c
}

func (r *fakeNoticiaRepository) row(id int64) *domain.Noticia {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n, ok := r.rows[id]; ok {
		return clone(n)
	}
	return nil
}

func (r *fakeNoticiaRepository) Create(_ context.Context, n *domain.Noticia) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	n.ID = r.nextID
	n.Pendiente = true
	n.CreatedAt = time.Now()
	r.rows[n.ID] = clone(n)
	return nil
}

func (r *fakeNoticiaRepository) GetByID(_ context.Context, id int64) (*domain.Noticia, error) {
	return r.row(id), nil
}

func (r *fakeNoticiaRepository) List(context.Context, domain.NoticiaFilter, domain.PaginationParams) ([]domain.Noticia, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Noticia
	for _, n := range r.rows {
		out = append(out, *n)
	}
	return out, int64(len(out)), nil
}

func (r *fakeNoticiaRepository) ListByReportero(_ context.Context, reporteroID int64) ([]domain.Noticia, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Noticia
	for _, n := range r.rows {
		if n.ReporteroID != nil && *n.ReporteroID == reporteroID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r *fakeNoticiaRepository) ListDisponibles(context.Context) ([]domain.Noticia, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Noticia
	for _, n := range r.rows {
		if n.ReporteroID == nil && n.Pendiente {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r *fakeNoticiaRepository) ListByCliente(context.Context, int64) ([]domain.Noticia, error) {
	return nil, nil
}

func (r *fakeNoticiaRepository) Claim(_ context.Context, id, reporteroID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.rows[id]
	if !ok || n.ReporteroID != nil {
		return false, nil
	}
	n.ReporteroID = &reporteroID
	return true, nil
}

func (r *fakeNoticiaRepository) ApplyChanges(_ context.Context, id int64, c domain.NoticiaChanges) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.rows[id]
	if !ok {
		return false, nil
	}
	if r.beforeApply != nil {
		r.beforeApply(n)
	}

	if c.RequireEmptyDescripcion && n.HasDescripcion() {
		return false, nil
	}
	if c.IncrementCitaCambios && c.MaxCitaCambios > 0 && n.FechaCitaCambios >= c.MaxCitaCambios {
		return false, nil
	}
	if c.TiempoEnNota != nil && n.TiempoEnNota != nil {
		return false, nil
	}
	if c.RequireLlegada && n.HoraLlegada == nil {
		return false, nil
	}
	if c.IniciarRuta && n.RutaIniciada {
		return false, nil
	}

	if c.Titulo != nil {
		n.Titulo = *c.Titulo
	}
	if c.Descripcion != nil {
		n.Descripcion = *c.Descripcion
	}
	if c.TipoDeNota != nil {
		n.TipoDeNota = *c.TipoDeNota
	}
	if c.ClienteID != nil {
		n.ClienteID = *c.ClienteID
	}
	if c.Domicilio != nil {
		n.Domicilio = *c.Domicilio
	}
	if c.FechaCita != nil {
		n.FechaCita = *c.FechaCita
	}
	if c.FechaCitaAnterior != nil {
		n.FechaCitaAnterior = c.FechaCitaAnterior
	}
	if c.IncrementCitaCambios {
		n.FechaCitaCambios++
	}
	if c.ResetRecordatorio {
		n.RecordatorioEnviado = false
		n.RecordatorioAt = nil
	}
	if c.IniciarRuta {
		n.RutaIniciada = true
		if n.RutaIniciadaAt == nil {
			now := time.Now()
			n.RutaIniciadaAt = &now
		}
	}
	if c.TiempoEnNota != nil {
		n.TiempoEnNota = c.TiempoEnNota
	}
	if c.LimiteTiempoMinutos != nil {
		n.LimiteTiempoMinutos = c.LimiteTiempoMinutos
	}
	mod := c.UltimaMod
	n.UltimaMod = &mod
	return true, nil
}

func (r *fakeNoticiaRepository) RecordArrival(_ context.Context, id int64, at time.Time, lat, lng float64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.rows[id]
	if !ok || n.HoraLlegada != nil {
		return false, nil
	}
	n.HoraLlegada = &at
	n.LlegadaLatitud = &lat
	n.LlegadaLongitud = &lng
	return true, nil
}

func (r *fakeNoticiaRepository) UpdateLocation(_ context.Context, id int64, lat, lng float64, domicilio *string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.rows[id]
	if !ok {
		return false, nil
	}
	n.Latitud = &lat
	n.Longitud = &lng
	if domicilio != nil {
		n.Domicilio = domicilio
	}
	return true, nil
}

func (r *fakeNoticiaRepository) Close(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.rows[id]
	if !ok || !n.Pendiente {
		return false, nil
	}
	n.Pendiente = false
	return true, nil
}

func (r *fakeNoticiaRepository) DeleteUnassigned(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.rows[id]
	if !ok || n.ReporteroID != nil {
		return false, nil
	}
	delete(r.rows, id)
	return true, nil
}

func (r *fakeNoticiaRepository) Reassign(_ context.Context, ids []int64, reporteroID *int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, id := range ids {
		if n, ok := r.rows[id]; ok {
			n.ReporteroID = reporteroID
			count++
		}
	}
	return count, nil
}

func (r *fakeNoticiaRepository) ListDueReminders(context.Context, time.Time, time.Time, int) ([]domain.ReminderCandidate, error) {
	return nil, nil
}

func (r *fakeNoticiaRepository) MarkReminderSent(context.Context, int64, time.Time) (bool, error) {
	return false, nil
}
