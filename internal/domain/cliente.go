package domain

import "time"

type Cliente struct {
	ID           int64     `json:"id" db:"id"`
	Nombre       string    `json:"nombre" db:"nombre"`
	Whatsapp     *string   `json:"whatsapp" db:"whatsapp"`
	Domicilio    *string   `json:"domicilio" db:"domicilio"`
	PasswordHash string    `json:"-" db:"password"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type CreateClienteInput struct {
	Nombre    string `json:"nombre" form:"nombre" validate:"required"`
	Whatsapp  string `json:"whatsapp" form:"whatsapp"`
	Domicilio string `json:"domicilio" form:"domicilio"`
	Password  string `json:"password" form:"password" validate:"required,min=6"`
}

type UpdateClienteInput struct {
	Nombre    string `json:"nombre" form:"nombre" validate:"required"`
	Whatsapp  string `json:"whatsapp" form:"whatsapp"`
	Domicilio string `json:"domicilio" form:"domicilio"`
}
