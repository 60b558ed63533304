package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"seguimiento-noticias/internal/domain"
)

type ReporteroRepository interface {
	Create(ctx context.Context, reportero *domain.Reportero) error
	GetByID(ctx context.Context, id int64) (*domain.Reportero, error)
	GetByNombre(ctx context.Context, nombre string) (*domain.Reportero, error)
	ExistsByNombre(ctx context.Context, nombre string, excludeID int64) (bool, error)
	UpdatePerfil(ctx context.Context, id int64, nombre string, passwordHash *string) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	SetFCMToken(ctx context.Context, id int64, token *string) error
	Delete(ctx context.Context, id int64) (bool, error)
	Search(ctx context.Context, query string, role domain.Role, limit int) ([]domain.ReporteroSummary, error)
}

type reporteroRepository struct {
	db *sqlx.DB
}

func NewReporteroRepository(db *sqlx.DB) ReporteroRepository {
	return &reporteroRepository{db: db}
}

func (r *reporteroRepository) Create(ctx context.Context, reportero *domain.Reportero) error {
	query := `
		INSERT INTO reporteros (nombre, password, role, puede_crear_noticias)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowxContext(ctx, query,
		reportero.Nombre, reportero.PasswordHash, reportero.Role, reportero.PuedeCrearNoticias,
	).Scan(&reportero.ID, &reportero.CreatedAt)
	return uniqueViolation(err)
}

func (r *reporteroRepository) GetByID(ctx context.Context, id int64) (*domain.Reportero, error) {
	var reportero domain.Reportero
	query := `SELECT * FROM reporteros WHERE id = $1`

	err := r.db.GetContext(ctx, &reportero, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reportero, nil
}

func (r *reporteroRepository) GetByNombre(ctx context.Context, nombre string) (*domain.Reportero, error) {
	var reportero domain.Reportero
	query := `SELECT * FROM reporteros WHERE nombre = $1 LIMIT 1`

	err := r.db.GetContext(ctx, &reportero, query, nombre)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reportero, nil
}

func (r *reporteroRepository) ExistsByNombre(ctx context.Context, nombre string, excludeID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM reporteros WHERE nombre = $1 AND id <> $2)`
	err := r.db.GetContext(ctx, &exists, query, nombre, excludeID)
	return exists, err
}

func (r *reporteroRepository) UpdatePerfil(ctx context.Context, id int64, nombre string, passwordHash *string) error {
	query := `UPDATE reporteros SET nombre = $1, password = COALESCE($2, password) WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, nombre, passwordHash, id)
	return uniqueViolation(err)
}

func (r *reporteroRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	query := `UPDATE reporteros SET password = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, passwordHash, id)
	return err
}

func (r *reporteroRepository) SetFCMToken(ctx context.Context, id int64, token *string) error {
	query := `UPDATE reporteros SET fcm_token = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, token, id)
	return err
}

// Delete refuses to remove the last remaining admin inside the same statement.
func (r *reporteroRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query := `
		DELETE FROM reporteros
		WHERE id = $1
			AND (role <> 'admin' OR (SELECT COUNT(*) FROM reporteros WHERE role = 'admin') > 1)`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	return rows > 0, err
}

func (r *reporteroRepository) Search(ctx context.Context, query string, role domain.Role, limit int) ([]domain.ReporteroSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	sqlQuery := `
		SELECT id, nombre, role FROM reporteros
		WHERE role = $1 AND ($2 = '' OR nombre ILIKE '%' || $2 || '%')
		ORDER BY nombre ASC
		LIMIT $3`

	var reporteros []domain.ReporteroSummary
	err := r.db.SelectContext(ctx, &reporteros, sqlQuery, role, query, limit)
	return reporteros, err
}
