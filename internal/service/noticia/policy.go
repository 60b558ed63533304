package noticia

import (
	"strings"
	"time"

	"seguimiento-noticias/internal/domain"
)

type fieldAccess int

const (
	accessDenied fieldAccess = iota
	accessAllowed
	// accessFillOnce allows writing a non-empty value only while the stored
	// value is still empty.
	accessFillOnce
)

// editPolicy is the per-role column of the edit rules table.
type editPolicy struct {
	Titulo      fieldAccess
	Descripcion fieldAccess
	TipoDeNota  fieldAccess
	Cliente     fieldAccess
	Domicilio   fieldAccess
	ClearCita   bool
	// MaxCitaCambios caps appointment changes; zero means unlimited.
	MaxCitaCambios int
}

var editPolicies = map[domain.Role]editPolicy{
	domain.RoleAdmin: {
		Titulo:      accessAllowed,
		Descripcion: accessAllowed,
		TipoDeNota:  accessAllowed,
		Cliente:     accessAllowed,
		Domicilio:   accessAllowed,
		ClearCita:   true,
	},
	domain.RoleReportero: {
		Titulo:         accessDenied,
		Descripcion:    accessFillOnce,
		TipoDeNota:     accessAllowed,
		Cliente:        accessDenied,
		Domicilio:      accessDenied,
		MaxCitaCambios: domain.MaxCitaCambios,
	},
}

// policyFor falls back to the most restrictive policy for unknown roles.
func policyFor(role domain.Role) editPolicy {
	if p, ok := editPolicies[role]; ok {
		return p
	}
	return editPolicies[domain.RoleReportero]
}

type editNotes struct {
	routeAlreadyStarted bool
	timeAlreadyRecorded bool
}

// planEdit validates input against the current record and the role policy
// and returns the resulting change set. It has no side effects.
func planEdit(cur *domain.Noticia, in domain.UpdateNoticiaInput, p editPolicy, now time.Time, loc *time.Location) (domain.NoticiaChanges, editNotes, error) {
	var c domain.NoticiaChanges
	var notes editNotes

	if in.Titulo != nil {
		titulo := strings.TrimSpace(*in.Titulo)
		if titulo != "" {
			if p.Titulo != accessAllowed {
				return c, notes, ErrTitleForbidden
			}
			if titulo != cur.Titulo {
				c.Titulo = &titulo
			}
		}
	}

	if in.Descripcion != nil {
		desc := domain.NullableString(*in.Descripcion)
		switch p.Descripcion {
		case accessAllowed:
			if !equalString(desc, cur.Descripcion) {
				c.Descripcion = &desc
			}
		case accessFillOnce:
			if cur.HasDescripcion() {
				return c, notes, ErrDescriptionLocked
			}
			if desc == nil {
				return c, notes, ErrDescriptionRequired
			}
			c.Descripcion = &desc
			c.RequireEmptyDescripcion = true
		default:
			return c, notes, fieldForbidden("descripcion")
		}
	}

	if in.TipoDeNota != nil {
		tipo := strings.TrimSpace(*in.TipoDeNota)
		if tipo != "" {
			if p.TipoDeNota != accessAllowed {
				return c, notes, fieldForbidden("tipo_de_nota")
			}
			if !validTipo(tipo) {
				return c, notes, ErrTipoInvalid
			}
			if tipo != cur.TipoDeNota {
				c.TipoDeNota = &tipo
			}
		}
	}

	if in.ClienteID != nil {
		if p.Cliente != accessAllowed {
			return c, notes, fieldForbidden("cliente_id")
		}
		var clienteID *int64
		if *in.ClienteID > 0 {
			id := *in.ClienteID
			clienteID = &id
		}
		if !equalInt64(clienteID, cur.ClienteID) {
			c.ClienteID = &clienteID
		}
	}

	if in.Domicilio != nil {
		if p.Domicilio != accessAllowed {
			return c, notes, fieldForbidden("domicilio")
		}
		domicilio := domain.NullableString(*in.Domicilio)
		if !equalString(domicilio, cur.Domicilio) {
			c.Domicilio = &domicilio
		}
	}

	if in.FechaCita != nil {
		var fecha *time.Time
		if raw := strings.TrimSpace(*in.FechaCita); raw != "" {
			t, err := domain.ParseDateTime(raw, loc)
			if err != nil {
				return c, notes, ErrAppointmentInvalid
			}
			fecha = &t
		} else if !p.ClearCita {
			return c, notes, ErrAppointmentRequired
		}

		if !equalTime(fecha, cur.FechaCita) {
			if p.MaxCitaCambios > 0 {
				if cur.FechaCitaCambios >= p.MaxCitaCambios {
					return c, notes, ErrAppointmentLimit
				}
				c.IncrementCitaCambios = true
				c.MaxCitaCambios = p.MaxCitaCambios
			}
			if cur.FechaCita != nil {
				prev := *cur.FechaCita
				c.FechaCitaAnterior = &prev
			}
			c.FechaCita = &fecha
			c.ResetRecordatorio = true
		}
	}

	// Only 1 starts the route; any other value is ignored.
	if in.RutaIniciada != nil && *in.RutaIniciada == 1 {
		if cur.RutaIniciada {
			notes.routeAlreadyStarted = true
		} else {
			c.IniciarRuta = true
		}
	}

	if in.TiempoEnNota != nil {
		minutes := *in.TiempoEnNota
		if minutes < 0 {
			return c, notes, ErrTimeInvalid
		}
		switch {
		case cur.TiempoEnNota != nil && *cur.TiempoEnNota == minutes:
			notes.timeAlreadyRecorded = true
		case cur.TiempoEnNota != nil:
			return c, notes, ErrTimeMismatch
		case cur.HoraLlegada == nil:
			return c, notes, ErrTimeRequiresArrival
		default:
			c.TiempoEnNota = &minutes
			c.RequireLlegada = true
		}
	}

	if in.LimiteTiempoMinutos != nil {
		limite := *in.LimiteTiempoMinutos
		if limite < domain.MinLimiteTiempoMinutos || limite > domain.MaxLimiteTiempoMinutos {
			return c, notes, ErrLimiteOutOfRange
		}
		if cur.LimiteTiempoMinutos == nil || *cur.LimiteTiempoMinutos != limite {
			c.LimiteTiempoMinutos = &limite
		}
	}

	c.UltimaMod = now
	if in.UltimaMod != nil && strings.TrimSpace(*in.UltimaMod) != "" {
		t, err := domain.ParseDateTime(*in.UltimaMod, loc)
		if err != nil {
			return c, notes, ErrUltimaModInvalid
		}
		c.UltimaMod = t
	}

	return c, notes, nil
}

func validTipo(tipo string) bool {
	return tipo == domain.TipoNota || tipo == domain.TipoEntrevista
}

func equalString(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func equalInt64(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func equalTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
