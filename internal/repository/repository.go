package repository

import (
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// ErrDuplicate is returned when an insert or update violates a unique constraint.
var ErrDuplicate = errors.New("duplicate value")

type Repositories struct {
	Noticia   NoticiaRepository
	Reportero ReporteroRepository
	Session   SessionRepository
	Cliente   ClienteRepository
	Aviso     AvisoRepository
	Meta      MetaRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Noticia:   NewNoticiaRepository(db),
		Reportero: NewReporteroRepository(db),
		Session:   NewSessionRepository(db),
		Cliente:   NewClienteRepository(db),
		Aviso:     NewAvisoRepository(db),
		Meta:      NewMetaRepository(db),
	}
}

func uniqueViolation(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}
