package domain

import "time"

type Aviso struct {
	ID          int64     `json:"id" db:"id"`
	Titulo      string    `json:"titulo" db:"titulo"`
	Descripcion string    `json:"descripcion" db:"descripcion"`
	Vigencia    time.Time `json:"vigencia" db:"vigencia"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type CreateAvisoInput struct {
	Titulo      string `json:"titulo" form:"titulo" validate:"required"`
	Descripcion string `json:"descripcion" form:"descripcion" validate:"required"`
	// Vigencia is a calendar date, YYYY-MM-DD.
	Vigencia string `json:"vigencia" form:"vigencia" validate:"required"`
}
