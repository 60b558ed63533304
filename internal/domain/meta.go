package domain

import "time"

const DefaultMinimoMensual = 10

type MetaMensual struct {
	Anio      int       `json:"anio" db:"anio"`
	Mes       int       `json:"mes" db:"mes"`
	Minimo    int       `json:"minimo" db:"minimo"`
	UpdatedBy *int64    `json:"updated_by" db:"updated_by"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type ReporteroTotal struct {
	ID     int64  `json:"id" db:"id"`
	Nombre string `json:"nombre" db:"nombre"`
	Role   string `json:"role" db:"role"`
	Total  int    `json:"total" db:"total"`
}

type EmpleadoDestacado struct {
	Anio       int              `json:"anio"`
	Mes        int              `json:"mes"`
	Minimo     int              `json:"minimo"`
	Reporteros []ReporteroTotal `json:"reporteros"`
}

type SetMinimoInput struct {
	Anio   int `json:"anio" form:"anio" validate:"min=2000,max=3000"`
	Mes    int `json:"mes" form:"mes" validate:"min=1,max=12"`
	Minimo int `json:"minimo" form:"minimo" validate:"min=0"`
}

type ReportExport struct {
	ObjectKey string    `json:"object_key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
