package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"seguimiento-noticias/internal/domain"
)

type ClienteRepository interface {
	Create(ctx context.Context, cliente *domain.Cliente) error
	GetByID(ctx context.Context, id int64) (*domain.Cliente, error)
	Update(ctx context.Context, cliente *domain.Cliente) (bool, error)
	Search(ctx context.Context, query string, limit int) ([]domain.Cliente, error)
}

type clienteRepository struct {
	db *sqlx.DB
}

func NewClienteRepository(db *sqlx.DB) ClienteRepository {
	return &clienteRepository{db: db}
}

func (r *clienteRepository) Create(ctx context.Context, cliente *domain.Cliente) error {
	query := `
		INSERT INTO clientes (nombre, whatsapp, domicilio, password)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowxContext(ctx, query,
		cliente.Nombre, cliente.Whatsapp, cliente.Domicilio, cliente.PasswordHash,
	).Scan(&cliente.ID, &cliente.CreatedAt)
	return uniqueViolation(err)
}

func (r *clienteRepository) GetByID(ctx context.Context, id int64) (*domain.Cliente, error) {
	var cliente domain.Cliente
	query := `SELECT * FROM clientes WHERE id = $1`

	err := r.db.GetContext(ctx, &cliente, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cliente, nil
}

func (r *clienteRepository) Update(ctx context.Context, cliente *domain.Cliente) (bool, error) {
	query := `UPDATE clientes SET nombre = $1, whatsapp = $2, domicilio = $3 WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, cliente.Nombre, cliente.Whatsapp, cliente.Domicilio, cliente.ID)
	if err != nil {
		return false, uniqueViolation(err)
	}
	rows, err := result.RowsAffected()
	return rows > 0, err
}

func (r *clienteRepository) Search(ctx context.Context, query string, limit int) ([]domain.Cliente, error) {
	if limit <= 0 || limit > 200 {
		limit = 200
	}

	sqlQuery := `
		SELECT * FROM clientes
		WHERE $1 = '' OR nombre ILIKE '%' || $1 || '%' OR whatsapp ILIKE '%' || $1 || '%'
		ORDER BY nombre ASC
		LIMIT $2`

	var clientes []domain.Cliente
	err := r.db.SelectContext(ctx, &clientes, sqlQuery, query, limit)
	return clientes, err
}
