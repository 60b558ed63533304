package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"seguimiento-noticias/internal/domain"
)

// SessionRepository keeps the single active session of a reportero as the
// hash of its bearer token plus an expiry, stored on the reportero row.
type SessionRepository interface {
	Store(ctx context.Context, reporteroID int64, tokenHash string, expiresAt time.Time) error
	GetByTokenHash(ctx context.Context, tokenHash string, now time.Time) (*domain.Reportero, error)
	Revoke(ctx context.Context, reporteroID int64) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type sessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Store(ctx context.Context, reporteroID int64, tokenHash string, expiresAt time.Time) error {
	query := `UPDATE reporteros SET ws_token = $1, ws_token_exp = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, tokenHash, expiresAt, reporteroID)
	return err
}

func (r *sessionRepository) GetByTokenHash(ctx context.Context, tokenHash string, now time.Time) (*domain.Reportero, error) {
	var reportero domain.Reportero
	query := `SELECT * FROM reporteros WHERE ws_token = $1 AND ws_token_exp > $2`

	err := r.db.GetContext(ctx, &reportero, query, tokenHash, now)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reportero, nil
}

func (r *sessionRepository) Revoke(ctx context.Context, reporteroID int64) error {
	query := `UPDATE reporteros SET ws_token = NULL, ws_token_exp = NULL WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, reporteroID)
	return err
}

func (r *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `UPDATE reporteros SET ws_token = NULL, ws_token_exp = NULL WHERE ws_token_exp IS NOT NULL AND ws_token_exp <= $1`
	result, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
