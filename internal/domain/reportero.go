package domain

import "time"

type Reportero struct {
	ID                 int64      `json:"id" db:"id"`
	Nombre             string     `json:"nombre" db:"nombre"`
	PasswordHash       string     `json:"-" db:"password"`
	Role               Role       `json:"role" db:"role"`
	PuedeCrearNoticias bool       `json:"puede_crear_noticias" db:"puede_crear_noticias"`
	WsTokenHash        *string    `json:"-" db:"ws_token"`
	WsTokenExp         *time.Time `json:"-" db:"ws_token_exp"`
	FCMToken           *string    `json:"-" db:"fcm_token"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
}

func (r *Reportero) Actor() Actor {
	return Actor{
		ID:                 r.ID,
		Nombre:             r.Nombre,
		Role:               r.Role,
		PuedeCrearNoticias: r.PuedeCrearNoticias,
	}
}

type ReporteroSummary struct {
	ID     int64  `json:"id" db:"id"`
	Nombre string `json:"nombre" db:"nombre"`
	Role   Role   `json:"role" db:"role"`
}

type LoginInput struct {
	Nombre   string `json:"nombre" form:"nombre" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
	// FCMToken optionally registers the device in the same call.
	FCMToken string `json:"fcm_token" form:"fcm_token"`
}

type Session struct {
	Token     string     `json:"ws_token"`
	ExpiresAt time.Time  `json:"ws_token_exp"`
	Reportero *Reportero `json:"-"`
}

type CreateReporteroInput struct {
	Nombre             string `json:"nombre" form:"nombre" validate:"required"`
	Password           string `json:"password" form:"password" validate:"required,min=6"`
	PuedeCrearNoticias bool   `json:"puede_crear_noticias" form:"puede_crear_noticias"`
}

type UpdatePerfilInput struct {
	Nombre   *string `json:"nombre" form:"nombre"`
	Password *string `json:"password" form:"password"`
}

type RegisterDeviceInput struct {
	Token string `json:"fcm_token" form:"fcm_token" validate:"required"`
}
