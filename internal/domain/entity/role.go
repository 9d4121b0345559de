package entity

import "strings"

// Role es el nivel de autorización de un usuario. Enumeración cerrada.
type Role string

// Roles válidos para User.
const (
	RoleAdmin Role = "admin" // control total del catálogo
	RoleStaff Role = "staff" // solo ventas
)

// Roles devuelve todos los roles conocidos.
func Roles() []Role {
	return []Role{RoleAdmin, RoleStaff}
}

// Valid indica si r pertenece a la enumeración.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// ParseRole convierte texto en Role; ok=false si no es un rol conocido.
// La comparación ignora mayúsculas y espacios alrededor.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Valid()
}
