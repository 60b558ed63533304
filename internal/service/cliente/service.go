package cliente

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"seguimiento-noticias/internal/domain"
	"seguimiento-noticias/internal/pkg/validation"
	"seguimiento-noticias/internal/repository"
)

const searchLimit = 200

var (
	ErrNotFound  = domain.NewRuleError("cliente.not_found")
	ErrNameTaken = domain.NewRuleError("cliente.name_taken")
)

type Service interface {
	Create(ctx context.Context, input domain.CreateClienteInput) (*domain.Cliente, error)
	Get(ctx context.Context, id int64) (*domain.Cliente, error)
	Update(ctx context.Context, id int64, input domain.UpdateClienteInput) (*domain.Cliente, error)
	Search(ctx context.Context, query string) ([]domain.Cliente, error)
}

type service struct {
	clienteRepo repository.ClienteRepository
}

func NewService(clienteRepo repository.ClienteRepository) Service {
	return &service{clienteRepo: clienteRepo}
}

func (s *service) Create(ctx context.Context, input domain.CreateClienteInput) (*domain.Cliente, error) {
	input.Nombre = strings.TrimSpace(input.Nombre)
	input.Password = strings.TrimSpace(input.Password)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	cliente := &domain.Cliente{
		Nombre:       input.Nombre,
		Whatsapp:     NormalizeWhatsapp(input.Whatsapp),
		Domicilio:    domain.NullableString(input.Domicilio),
		PasswordHash: string(hashed),
	}
	if err := s.clienteRepo.Create(ctx, cliente); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrNameTaken
		}
		return nil, err
	}
	return cliente, nil
}

func (s *service) Get(ctx context.Context, id int64) (*domain.Cliente, error) {
	cliente, err := s.clienteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, ErrNotFound
	}
	return cliente, nil
}

func (s *service) Update(ctx context.Context, id int64, input domain.UpdateClienteInput) (*domain.Cliente, error) {
	input.Nombre = strings.TrimSpace(input.Nombre)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	cliente := &domain.Cliente{
		ID:        id,
		Nombre:    input.Nombre,
		Whatsapp:  NormalizeWhatsapp(input.Whatsapp),
		Domicilio: domain.NullableString(input.Domicilio),
	}
	found, err := s.clienteRepo.Update(ctx, cliente)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrNameTaken
		}
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return s.Get(ctx, id)
}

func (s *service) Search(ctx context.Context, query string) ([]domain.Cliente, error) {
	return s.clienteRepo.Search(ctx, strings.TrimSpace(query), searchLimit)
}

// NormalizeWhatsapp drops whitespace and every non digit. A leading plus sign
// survives. An empty result is stored as NULL.
func NormalizeWhatsapp(raw string) *string {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	if compact == "" {
		return nil
	}

	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, compact)

	if strings.HasPrefix(compact, "+") {
		normalized := "+" + digits
		return &normalized
	}
	if digits == "" {
		return nil
	}
	return &digits
}
