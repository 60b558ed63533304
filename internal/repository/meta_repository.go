package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"seguimiento-noticias/internal/domain"
)

type MetaRepository interface {
	GetMinimo(ctx context.Context, anio, mes int) (*domain.MetaMensual, error)
	UpsertMinimo(ctx context.Context, meta *domain.MetaMensual) error
	RankReporteros(ctx context.Context, from, to time.Time) ([]domain.ReporteroTotal, error)
}

type metaRepository struct {
	db *sqlx.DB
}

func NewMetaRepository(db *sqlx.DB) MetaRepository {
	return &metaRepository{db: db}
}

func (r *metaRepository) GetMinimo(ctx context.Context, anio, mes int) (*domain.MetaMensual, error) {
	var meta domain.MetaMensual
	query := `SELECT * FROM metas_noticias_mensuales WHERE anio = $1 AND mes = $2`

	err := r.db.GetContext(ctx, &meta, query, anio, mes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &meta, nil
}

func (r *metaRepository) UpsertMinimo(ctx context.Context, meta *domain.MetaMensual) error {
	query := `
		INSERT INTO metas_noticias_mensuales (anio, mes, minimo, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (anio, mes) DO UPDATE
		SET minimo = EXCLUDED.minimo, updated_by = EXCLUDED.updated_by, updated_at = NOW()
		RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, query,
		meta.Anio, meta.Mes, meta.Minimo, meta.UpdatedBy,
	).Scan(&meta.UpdatedAt)
}

// RankReporteros counts closed noticias whose arrival falls in [from, to).
// Reporteros without any still appear with a zero total.
func (r *metaRepository) RankReporteros(ctx context.Context, from, to time.Time) ([]domain.ReporteroTotal, error) {
	query := `
		SELECT r.id, r.nombre, r.role, COUNT(n.id) AS total
		FROM reporteros r
		LEFT JOIN noticias n
			ON n.reportero_id = r.id
			AND n.pendiente = FALSE
			AND n.hora_llegada IS NOT NULL
			AND n.hora_llegada >= $1 AND n.hora_llegada < $2
		WHERE LOWER(TRIM(r.role)) = 'reportero'
		GROUP BY r.id, r.nombre, r.role
		ORDER BY total DESC, r.nombre ASC`

	var totals []domain.ReporteroTotal
	err := r.db.SelectContext(ctx, &totals, query, from, to)
	return totals, err
}
