package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"seguimiento-noticias/internal/domain"
)

const noticiaSelect = `
	SELECT n.*, r.nombre AS reportero, c.nombre AS cliente, c.whatsapp AS cliente_whatsapp
	FROM noticias n
	LEFT JOIN reporteros r ON r.id = n.reportero_id
	LEFT JOIN clientes c ON c.id = n.cliente_id`

type NoticiaRepository interface {
	Create(ctx context.Context, noticia *domain.Noticia) error
	GetByID(ctx context.Context, id int64) (*domain.Noticia, error)
	List(ctx context.Context, filter domain.NoticiaFilter, params domain.PaginationParams) ([]domain.Noticia, int64, error)
	ListByReportero(ctx context.Context, reporteroID int64) ([]domain.Noticia, error)
	ListDisponibles(ctx context.Context) ([]domain.Noticia, error)
	ListByCliente(ctx context.Context, clienteID int64) ([]domain.Noticia, error)
	Claim(ctx context.Context, id, reporteroID int64) (bool, error)
	ApplyChanges(ctx context.Context, id int64, changes domain.NoticiaChanges) (bool, error)
	RecordArrival(ctx context.Context, id int64, at time.Time, lat, lng float64) (bool, error)
	UpdateLocation(ctx context.Context, id int64, lat, lng float64, domicilio *string) (bool, error)
	Close(ctx context.Context, id int64) (bool, error)
	DeleteUnassigned(ctx context.Context, id int64) (bool, error)
	Reassign(ctx context.Context, ids []int64, reporteroID *int64) (int64, error)
	ListDueReminders(ctx context.Context, from, to time.Time, limit int) ([]domain.ReminderCandidate, error)
	MarkReminderSent(ctx context.Context, id int64, at time.Time) (bool, error)
}

type noticiaRepository struct {
	db *sqlx.DB
}

func NewNoticiaRepository(db *sqlx.DB) NoticiaRepository {
	return &noticiaRepository{db: db}
}

func (r *noticiaRepository) Create(ctx context.Context, n *domain.Noticia) error {
	query := `
		INSERT INTO noticias (noticia, tipo_de_nota, descripcion, cliente_id, domicilio,
			latitud, longitud, reportero_id, fecha_cita, limite_tiempo_minutos, pendiente, ultima_mod)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, TRUE, NOW())
		RETURNING id, pendiente, fecha_cita_cambios, ultima_mod, created_at`

	return r.db.QueryRowxContext(ctx, query,
		n.Titulo, n.TipoDeNota, n.Descripcion, n.ClienteID, n.Domicilio,
		n.Latitud, n.Longitud, n.ReporteroID, n.FechaCita, n.LimiteTiempoMinutos,
	).Scan(&n.ID, &n.Pendiente, &n.FechaCitaCambios, &n.UltimaMod, &n.CreatedAt)
}

func (r *noticiaRepository) GetByID(ctx context.Context, id int64) (*domain.Noticia, error) {
	var noticia domain.Noticia
	query := noticiaSelect + ` WHERE n.id = $1`

	err := r.db.GetContext(ctx, &noticia, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &noticia, nil
}

func (r *noticiaRepository) List(ctx context.Context, filter domain.NoticiaFilter, params domain.PaginationParams) ([]domain.Noticia, int64, error) {
	params.Validate()

	where := ` WHERE ($1::boolean IS NULL OR n.pendiente = $1) AND ($2::bigint IS NULL OR n.reportero_id = $2)`

	var total int64
	countQuery := `SELECT COUNT(*) FROM noticias n` + where
	if err := r.db.GetContext(ctx, &total, countQuery, filter.Pendiente, filter.ReporteroID); err != nil {
		return nil, 0, err
	}

	query := noticiaSelect + where + `
		ORDER BY n.fecha_cita DESC NULLS LAST, n.id DESC
		LIMIT $3 OFFSET $4`

	var noticias []domain.Noticia
	err := r.db.SelectContext(ctx, &noticias, query, filter.Pendiente, filter.ReporteroID, params.PageSize, params.Offset())
	return noticias, total, err
}

func (r *noticiaRepository) ListByReportero(ctx context.Context, reporteroID int64) ([]domain.Noticia, error) {
	query := noticiaSelect + `
		WHERE n.reportero_id = $1
		ORDER BY n.pendiente DESC, n.fecha_cita DESC NULLS LAST, n.id DESC`

	var noticias []domain.Noticia
	err := r.db.SelectContext(ctx, &noticias, query, reporteroID)
	return noticias, err
}

func (r *noticiaRepository) ListDisponibles(ctx context.Context) ([]domain.Noticia, error) {
	query := noticiaSelect + `
		WHERE n.reportero_id IS NULL AND n.pendiente = TRUE
		ORDER BY n.fecha_cita ASC NULLS LAST, n.id DESC`

	var noticias []domain.Noticia
	err := r.db.SelectContext(ctx, &noticias, query)
	return noticias, err
}

func (r *noticiaRepository) ListByCliente(ctx context.Context, clienteID int64) ([]domain.Noticia, error) {
	query := noticiaSelect + `
		WHERE n.cliente_id = $1
		ORDER BY n.fecha_cita DESC NULLS LAST, n.id DESC`

	var noticias []domain.Noticia
	err := r.db.SelectContext(ctx, &noticias, query, clienteID)
	return noticias, err
}

func (r *noticiaRepository) Claim(ctx context.Context, id, reporteroID int64) (bool, error) {
	query := `UPDATE noticias SET reportero_id = $1, ultima_mod = NOW() WHERE id = $2 AND reportero_id IS NULL`
	return r.execOne(ctx, query, reporteroID, id)
}

// BuildNoticiaUpdate renders a validated change set into a guarded UPDATE.
func BuildNoticiaUpdate(id int64, c domain.NoticiaChanges) *UpdateSet {
	u := NewUpdateSet()

	if c.Titulo != nil {
		u.Set("noticia", *c.Titulo)
	}
	if c.Descripcion != nil {
		u.Set("descripcion", *c.Descripcion)
	}
	if c.TipoDeNota != nil {
		u.Set("tipo_de_nota", *c.TipoDeNota)
	}
	if c.ClienteID != nil {
		u.Set("cliente_id", *c.ClienteID)
	}
	if c.Domicilio != nil {
		u.Set("domicilio", *c.Domicilio)
	}
	if c.FechaCita != nil {
		u.Set("fecha_cita", *c.FechaCita)
	}
	if c.FechaCitaAnterior != nil {
		u.Set("fecha_cita_anterior", *c.FechaCitaAnterior)
	}
	if c.IncrementCitaCambios {
		u.SetExpr("fecha_cita_cambios", "COALESCE(fecha_cita_cambios, 0) + 1")
	}
	if c.ResetRecordatorio {
		u.SetExpr("notificacion_cita_30m_enviada", "FALSE")
		u.SetExpr("notificacion_cita_30m_at", "NULL")
	}
	if c.IniciarRuta {
		u.SetExpr("ruta_iniciada", "TRUE")
		u.SetExpr("ruta_iniciada_at", "COALESCE(ruta_iniciada_at, NOW())")
	}
	if c.TiempoEnNota != nil {
		u.Set("tiempo_en_nota", *c.TiempoEnNota)
	}
	if c.LimiteTiempoMinutos != nil {
		u.Set("limite_tiempo_minutos", *c.LimiteTiempoMinutos)
	}
	u.Set("ultima_mod", c.UltimaMod)

	u.Where("id = ?", id)
	if c.RequireEmptyDescripcion {
		u.Where("(descripcion IS NULL OR TRIM(descripcion) = '')")
	}
	if c.IncrementCitaCambios && c.MaxCitaCambios > 0 {
		u.Where("COALESCE(fecha_cita_cambios, 0) < ?", c.MaxCitaCambios)
	}
	if c.TiempoEnNota != nil {
		u.Where("tiempo_en_nota IS NULL")
	}
	if c.RequireLlegada {
		u.Where("hora_llegada IS NOT NULL")
	}
	if c.IniciarRuta {
		u.Where("ruta_iniciada = FALSE")
	}
	return u
}

// ApplyChanges reports false when no row matched, either because the record
// is gone or because one of the guards no longer holds.
func (r *noticiaRepository) ApplyChanges(ctx context.Context, id int64, changes domain.NoticiaChanges) (bool, error) {
	query, args, err := BuildNoticiaUpdate(id, changes).Build("noticias")
	if err != nil {
		return false, err
	}
	return r.execOne(ctx, query, args...)
}

func (r *noticiaRepository) RecordArrival(ctx context.Context, id int64, at time.Time, lat, lng float64) (bool, error) {
	query := `
		UPDATE noticias
		SET hora_llegada = $1, llegada_latitud = $2, llegada_longitud = $3, ultima_mod = NOW()
		WHERE id = $4 AND hora_llegada IS NULL`
	return r.execOne(ctx, query, at, lat, lng, id)
}

func (r *noticiaRepository) UpdateLocation(ctx context.Context, id int64, lat, lng float64, domicilio *string) (bool, error) {
	query := `
		UPDATE noticias
		SET latitud = $1, longitud = $2, domicilio = COALESCE($3, domicilio), ultima_mod = NOW()
		WHERE id = $4`
	return r.execOne(ctx, query, lat, lng, domicilio, id)
}

func (r *noticiaRepository) Close(ctx context.Context, id int64) (bool, error) {
	query := `UPDATE noticias SET pendiente = FALSE, ultima_mod = NOW() WHERE id = $1 AND pendiente = TRUE`
	return r.execOne(ctx, query, id)
}

func (r *noticiaRepository) DeleteUnassigned(ctx context.Context, id int64) (bool, error) {
	query := `DELETE FROM noticias WHERE id = $1 AND reportero_id IS NULL`
	return r.execOne(ctx, query, id)
}

func (r *noticiaRepository) Reassign(ctx context.Context, ids []int64, reporteroID *int64) (int64, error) {
	query := `UPDATE noticias SET reportero_id = $1, ultima_mod = NOW() WHERE id = ANY($2)`
	result, err := r.db.ExecContext(ctx, query, reporteroID, pq.Array(ids))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *noticiaRepository) ListDueReminders(ctx context.Context, from, to time.Time, limit int) ([]domain.ReminderCandidate, error) {
	query := `
		SELECT id, noticia, reportero_id, fecha_cita
		FROM noticias
		WHERE pendiente = TRUE
			AND hora_llegada IS NULL
			AND fecha_cita IS NOT NULL
			AND fecha_cita >= $1 AND fecha_cita < $2
			AND notificacion_cita_30m_enviada = FALSE
		ORDER BY fecha_cita ASC
		LIMIT $3`

	var candidates []domain.ReminderCandidate
	err := r.db.SelectContext(ctx, &candidates, query, from, to, limit)
	return candidates, err
}

func (r *noticiaRepository) MarkReminderSent(ctx context.Context, id int64, at time.Time) (bool, error) {
	query := `
		UPDATE noticias
		SET notificacion_cita_30m_enviada = TRUE, notificacion_cita_30m_at = $1
		WHERE id = $2 AND notificacion_cita_30m_enviada = FALSE`
	return r.execOne(ctx, query, at, id)
}

func (r *noticiaRepository) execOne(ctx context.Context, query string, args ...interface{}) (bool, error) {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
