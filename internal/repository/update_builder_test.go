package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seguimiento-noticias/internal/domain"
)

func TestUpdateSet_Build(t *testing.T) {
	query, args, err := NewUpdateSet().
		Set("noticia", "Inauguración").
		SetExpr("ruta_iniciada_at", "COALESCE(ruta_iniciada_at, NOW())").
		Set("ultima_mod", "2026-01-01 10:00:00").
		Where("id = ?", int64(7)).
		Where("COALESCE(fecha_cita_cambios, 0) < ?", 2).
		Build("noticias")

	require.NoError(t, err)
	assert.Equal(t,
		"UPDATE noticias SET noticia = $1, ruta_iniciada_at = COALESCE(ruta_iniciada_at, NOW()), ultima_mod = $2 WHERE id = $3 AND COALESCE(fecha_cita_cambios, 0) < $4",
		query)
	assert.Equal(t, []interface{}{"Inauguración", "2026-01-01 10:00:00", int64(7), 2}, args)
}

func TestUpdateSet_EmptyIsError(t *testing.T) {
	_, _, err := NewUpdateSet().Where("id = ?", 1).Build("noticias")
	assert.ErrorIs(t, err, ErrEmptyUpdate)
}

func TestUpdateSet_PlaceholderMismatchPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewUpdateSet().Where("id = ? AND x = ?", 1)
	})
}

func TestBuildNoticiaUpdate_KeepsValuesOutOfSQL(t *testing.T) {
	desc := "'; DROP TABLE noticias; --"
	descPtr := &desc
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cita := now.Add(48 * time.Hour)
	citaPtr := &cita
	prev := now.Add(24 * time.Hour)
	tiempo := 45

	changes := domain.NoticiaChanges{
		Descripcion:             &descPtr,
		FechaCita:               &citaPtr,
		FechaCitaAnterior:       &prev,
		IncrementCitaCambios:    true,
		ResetRecordatorio:       true,
		IniciarRuta:             true,
		TiempoEnNota:            &tiempo,
		UltimaMod:               now,
		RequireEmptyDescripcion: true,
		MaxCitaCambios:          domain.MaxCitaCambios,
		RequireLlegada:          true,
	}

	query, args, err := BuildNoticiaUpdate(9, changes).Build("noticias")
	require.NoError(t, err)

	assert.NotContains(t, query, "DROP TABLE")
	assert.Contains(t, query, "fecha_cita_cambios = COALESCE(fecha_cita_cambios, 0) + 1")
	assert.Contains(t, query, "notificacion_cita_30m_enviada = FALSE")
	assert.Contains(t, query, "ruta_iniciada_at = COALESCE(ruta_iniciada_at, NOW())")
	assert.Contains(t, query, "(descripcion IS NULL OR TRIM(descripcion) = '')")
	assert.Contains(t, query, "tiempo_en_nota IS NULL")
	assert.Contains(t, query, "hora_llegada IS NOT NULL")
	assert.Contains(t, query, "AND ruta_iniciada = FALSE")
	assert.Contains(t, args, descPtr)
	assert.Contains(t, args, int64(9))
	assert.Contains(t, args, domain.MaxCitaCambios)
}

func TestBuildNoticiaUpdate_NullsAndAdminSkipCitaGuard(t *testing.T) {
	var noDesc *string
	var noCita *time.Time
	changes := domain.NoticiaChanges{
		Descripcion:       &noDesc,
		FechaCita:         &noCita,
		ResetRecordatorio: true,
		UltimaMod:         time.Now(),
	}

	query, args, err := BuildNoticiaUpdate(3, changes).Build("noticias")
	require.NoError(t, err)

	assert.Contains(t, query, "descripcion = $1")
	assert.NotContains(t, query, "fecha_cita_cambios")
	assert.Nil(t, args[0].(*string))
}
