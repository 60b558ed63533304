package domain

import "time"

const (
	TipoNota       = "Nota"
	TipoEntrevista = "Entrevista"

	MaxCitaCambios         = 2
	MinLimiteTiempoMinutos = 60
	MaxLimiteTiempoMinutos = 65535
)

type Noticia struct {
	ID                  int64      `json:"id" db:"id"`
	Titulo              string     `json:"noticia" db:"noticia"`
	TipoDeNota          string     `json:"tipo_de_nota" db:"tipo_de_nota"`
	Descripcion         *string    `json:"descripcion" db:"descripcion"`
	ClienteID           *int64     `json:"cliente_id" db:"cliente_id"`
	Domicilio           *string    `json:"domicilio" db:"domicilio"`
	UbicacionEnMapa     *string    `json:"ubicacion_en_mapa" db:"ubicacion_en_mapa"`
	Latitud             *float64   `json:"latitud" db:"latitud"`
	Longitud            *float64   `json:"longitud" db:"longitud"`
	ReporteroID         *int64     `json:"reportero_id" db:"reportero_id"`
	FechaPago           *time.Time `json:"fecha_pago" db:"fecha_pago"`
	FechaCita           *time.Time `json:"fecha_cita" db:"fecha_cita"`
	FechaCitaAnterior   *time.Time `json:"fecha_cita_anterior" db:"fecha_cita_anterior"`
	FechaCitaCambios    int        `json:"fecha_cita_cambios" db:"fecha_cita_cambios"`
	Pendiente           bool       `json:"pendiente" db:"pendiente"`
	RutaIniciada        bool       `json:"ruta_iniciada" db:"ruta_iniciada"`
	RutaIniciadaAt      *time.Time `json:"ruta_iniciada_at" db:"ruta_iniciada_at"`
	HoraLlegada         *time.Time `json:"hora_llegada" db:"hora_llegada"`
	LlegadaLatitud      *float64   `json:"llegada_latitud" db:"llegada_latitud"`
	LlegadaLongitud     *float64   `json:"llegada_longitud" db:"llegada_longitud"`
	TiempoEnNota        *int       `json:"tiempo_en_nota" db:"tiempo_en_nota"`
	LimiteTiempoMinutos *int       `json:"limite_tiempo_minutos" db:"limite_tiempo_minutos"`
	RecordatorioEnviado bool       `json:"-" db:"notificacion_cita_30m_enviada"`
	RecordatorioAt      *time.Time `json:"-" db:"notificacion_cita_30m_at"`
	UltimaMod           *time.Time `json:"ultima_mod" db:"ultima_mod"`
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`

	ReporteroNombre *string `json:"reportero,omitempty" db:"reportero"`
	ClienteNombre   *string `json:"cliente,omitempty" db:"cliente"`
	ClienteWhatsapp *string `json:"cliente_whatsapp,omitempty" db:"cliente_whatsapp"`
}

func (n *Noticia) IsAssigned() bool {
	return n.ReporteroID != nil
}

func (n *Noticia) HasDescripcion() bool {
	return n.Descripcion != nil && trimmed(*n.Descripcion) != ""
}

type CreateNoticiaInput struct {
	Titulo              string   `json:"noticia" form:"noticia" validate:"required"`
	TipoDeNota          string   `json:"tipo_de_nota" form:"tipo_de_nota" validate:"omitempty,oneof=Nota Entrevista"`
	Descripcion         string   `json:"descripcion" form:"descripcion"`
	Domicilio           string   `json:"domicilio" form:"domicilio"`
	FechaCita           string   `json:"fecha_cita" form:"fecha_cita"`
	ReporteroID         *int64   `json:"reportero_id" form:"reportero_id"`
	ClienteID           *int64   `json:"cliente_id" form:"cliente_id"`
	LimiteTiempoMinutos *int     `json:"limite_tiempo_minutos" form:"limite_tiempo_minutos" validate:"omitempty,min=60,max=65535"`
	Latitud             *float64 `json:"latitud" form:"latitud" validate:"omitempty,latitude"`
	Longitud            *float64 `json:"longitud" form:"longitud" validate:"omitempty,longitude"`
}

// UpdateNoticiaInput carries the optional fields of an edit. A nil pointer
// means the field was not sent. For fecha_cita an empty string clears it.
type UpdateNoticiaInput struct {
	Titulo              *string `json:"noticia" form:"noticia"`
	Descripcion         *string `json:"descripcion" form:"descripcion"`
	TipoDeNota          *string `json:"tipo_de_nota" form:"tipo_de_nota"`
	ClienteID           *int64  `json:"cliente_id" form:"cliente_id"`
	Domicilio           *string `json:"domicilio" form:"domicilio"`
	FechaCita           *string `json:"fecha_cita" form:"fecha_cita"`
	RutaIniciada        *int    `json:"ruta_iniciada" form:"ruta_iniciada"`
	TiempoEnNota        *int    `json:"tiempo_en_nota" form:"tiempo_en_nota"`
	LimiteTiempoMinutos *int    `json:"limite_tiempo_minutos" form:"limite_tiempo_minutos"`
	UltimaMod           *string `json:"ultima_mod" form:"ultima_mod"`
}

type ArrivalInput struct {
	HoraLlegada string   `json:"hora_llegada" form:"hora_llegada"`
	Latitud     *float64 `json:"latitud" form:"latitud" validate:"required,latitude"`
	Longitud    *float64 `json:"longitud" form:"longitud" validate:"required,longitude"`
}

type LocationInput struct {
	Latitud   *float64 `json:"latitud" form:"latitud" validate:"required,latitude"`
	Longitud  *float64 `json:"longitud" form:"longitud" validate:"required,longitude"`
	Domicilio string   `json:"domicilio" form:"domicilio"`
}

type ReassignInput struct {
	NoticiaIDs       []int64 `json:"noticia_ids" validate:"required,min=1"`
	NuevoReporteroID *int64  `json:"nuevo_reportero_id"`
}

type ClaimInput struct {
	ReporteroID *int64 `json:"reportero_id" form:"reportero_id"`
}

type NoticiaFilter struct {
	Pendiente   *bool
	ReporteroID *int64
}

// EditResult reports the record after an edit. Message is set when the edit
// was an idempotent re-assertion of state that was already applied.
type EditResult struct {
	Noticia *Noticia
	Message string
	Changed bool
}

// NoticiaChanges is a validated partial update plus the guards that must
// still hold in the store when it is written. Double pointers distinguish
// "leave as is" (nil) from "set to NULL" (pointer to nil).
type NoticiaChanges struct {
	Titulo               *string
	Descripcion          **string
	TipoDeNota           *string
	ClienteID            **int64
	Domicilio            **string
	FechaCita            **time.Time
	FechaCitaAnterior    *time.Time
	IncrementCitaCambios bool
	ResetRecordatorio    bool
	IniciarRuta          bool
	TiempoEnNota         *int
	LimiteTiempoMinutos  *int
	UltimaMod            time.Time

	RequireEmptyDescripcion bool
	MaxCitaCambios          int
	RequireLlegada          bool
}

func (c NoticiaChanges) IsEmpty() bool {
	return c.Titulo == nil &&
		c.Descripcion == nil &&
		c.TipoDeNota == nil &&
		c.ClienteID == nil &&
		c.Domicilio == nil &&
		c.FechaCita == nil &&
		!c.IncrementCitaCambios &&
		!c.ResetRecordatorio &&
		!c.IniciarRuta &&
		c.TiempoEnNota == nil &&
		c.LimiteTiempoMinutos == nil
}

type ReminderCandidate struct {
	ID          int64     `db:"id"`
	Titulo      string    `db:"noticia"`
	ReporteroID *int64    `db:"reportero_id"`
	FechaCita   time.Time `db:"fecha_cita"`
}
