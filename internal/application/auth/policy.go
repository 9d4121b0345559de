package auth

import (
	"slices"
	"time"

	"github.com/jhoicas/smart-inventory-api/internal/domain"
	"github.com/jhoicas/smart-inventory-api/internal/domain/entity"
)

// Caller es el contexto de sesión explícito de una petición autenticada.
type Caller struct {
	UserID    string
	Identity  string
	Role      entity.Role
	ExpiresAt time.Time
}

// Authorize exige coincidencia exacta de rol (sin jerarquía).
func Authorize(caller *Caller, required entity.Role) error {
	if caller == nil {
		return domain.ErrUnauthorized
	}
	if caller.Role != required {
		return domain.ErrForbidden
	}
	return nil
}

// Permission identifica una acción protegida; cada ruta declara una.
type Permission string

const (
	PermProductsRead  Permission = "products:read"
	PermProductsWrite Permission = "products:write"
	PermSalesRead     Permission = "sales:read"
	PermSalesRecord   Permission = "sales:record"
	PermSalesDelete   Permission = "sales:delete"
	PermAnalyticsRead Permission = "analytics:read"
	PermReportsRead   Permission = "reports:read"
)

// Rule roles admitidos para un permiso. Public no exige token.
type Rule struct {
	Public bool
	Roles  []entity.Role
}

// Policy tabla de autorización por permiso. Un permiso ausente se deniega.
type Policy map[Permission]Rule

// DefaultPolicy: admin controla el catálogo; cualquier rol autenticado opera ventas.
func DefaultPolicy() Policy {
	both := []entity.Role{entity.RoleAdmin, entity.RoleStaff}
	return Policy{
		PermProductsRead:  {Public: true},
		PermProductsWrite: {Roles: []entity.Role{entity.RoleAdmin}},
		PermSalesRead:     {Roles: both},
		PermSalesRecord:   {Roles: both},
		PermSalesDelete:   {Roles: both},
		PermAnalyticsRead: {Roles: both},
		PermReportsRead:   {Roles: []entity.Role{entity.RoleAdmin}},
	}
}

// IsPublic indica si el permiso no exige autenticación.
func (p Policy) IsPublic(perm Permission) bool {
	return p[perm].Public
}

// Check devuelve ErrUnauthorized si hace falta sesión y no la hay,
// ErrForbidden si el rol no está admitido.
func (p Policy) Check(caller *Caller, perm Permission) error {
	rule, ok := p[perm]
	if !ok {
		return domain.ErrForbidden
	}
	if rule.Public {
		return nil
	}
	if caller == nil {
		return domain.ErrUnauthorized
	}
	if !slices.Contains(rule.Roles, caller.Role) {
		return domain.ErrForbidden
	}
	return nil
}
