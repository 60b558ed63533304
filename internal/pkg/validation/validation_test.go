package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seguimiento-noticias/internal/domain"
)

type sample struct {
	Nombre   string `json:"nombre" validate:"required"`
	Password string `form:"password" validate:"omitempty,min=6"`
	Tipo     string `json:"tipo_de_nota" validate:"omitempty,oneof=Nota Entrevista"`
}

func TestStruct(t *testing.T) {
	assert.NoError(t, Struct(sample{Nombre: "Ana", Password: "secreto", Tipo: "Nota"}))

	tests := []struct {
		name  string
		input sample
		key   string
		field string
	}{
		{"missing name", sample{}, "validation.required", "nombre"},
		{"short password", sample{Nombre: "Ana", Password: "123"}, "validation.out_of_range", "password"},
		{"bad category", sample{Nombre: "Ana", Tipo: "Reportaje"}, "validation.invalid", "tipo_de_nota"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.input)
			var ruleErr *domain.RuleError
			require.True(t, errors.As(err, &ruleErr))
			assert.Equal(t, tt.key, ruleErr.Key)
			assert.Equal(t, []interface{}{tt.field}, ruleErr.Args)
		})
	}
}
