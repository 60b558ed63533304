package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"seguimiento-noticias/internal/domain"
)

type AvisoRepository interface {
	Create(ctx context.Context, aviso *domain.Aviso) error
	ListActive(ctx context.Context, now time.Time) ([]domain.Aviso, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type avisoRepository struct {
	db *sqlx.DB
}

func NewAvisoRepository(db *sqlx.DB) AvisoRepository {
	return &avisoRepository{db: db}
}

func (r *avisoRepository) Create(ctx context.Context, aviso *domain.Aviso) error {
	query := `
		INSERT INTO avisos (titulo, descripcion, vigencia)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	return r.db.QueryRowxContext(ctx, query,
		aviso.Titulo, aviso.Descripcion, aviso.Vigencia,
	).Scan(&aviso.ID, &aviso.CreatedAt)
}

func (r *avisoRepository) ListActive(ctx context.Context, now time.Time) ([]domain.Aviso, error) {
	query := `SELECT * FROM avisos WHERE vigencia >= $1 ORDER BY vigencia ASC, id DESC`

	var avisos []domain.Aviso
	err := r.db.SelectContext(ctx, &avisos, query, now)
	return avisos, err
}

func (r *avisoRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM avisos WHERE vigencia < $1`, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
