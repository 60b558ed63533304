package domain

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleReportero Role = "reportero"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleReportero:
		return true
	default:
		return false
	}
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID                 int64
	Nombre             string
	Role               Role
	PuedeCrearNoticias bool
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

func (a Actor) CanCreateNoticias() bool {
	return a.IsAdmin() || a.PuedeCrearNoticias
}
