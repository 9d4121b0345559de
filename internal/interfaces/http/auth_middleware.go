package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/smart-inventory-api/internal/application/auth"
	"github.com/jhoicas/smart-inventory-api/internal/domain"
)

// LocalCaller key de fiber.Ctx.Locals con el *auth.Caller de la petición.
const LocalCaller = "caller"

// AuthMiddleware valida el Bearer Token JWT y deja el *auth.Caller en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if caller, err := authenticate(c, jwtSecret); caller == nil {
			return err
		}
		return c.Next()
	}
}

// RequirePermission autoriza según la tabla de políticas. Debe ir después de AuthMiddleware
// salvo en permisos públicos.
func RequirePermission(policy auth.Policy, perm auth.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if policy.IsPublic(perm) {
			return c.Next()
		}
		if err := policy.Check(GetCaller(c), perm); err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				return errorJSON(c, fiber.StatusUnauthorized, CodeMissingToken, "Authorization header requerido")
			}
			return errorJSON(c, fiber.StatusForbidden, CodeForbidden, "el rol actual no tiene permiso: "+string(perm))
		}
		return c.Next()
	}
}

// Guard combina AuthMiddleware y RequirePermission; en permisos públicos no exige token.
func Guard(jwtSecret string, policy auth.Policy, perm auth.Permission) fiber.Handler {
	check := RequirePermission(policy, perm)
	return func(c *fiber.Ctx) error {
		if policy.IsPublic(perm) {
			return c.Next()
		}
		if caller, err := authenticate(c, jwtSecret); caller == nil {
			return err
		}
		return check(c)
	}
}

// authenticate deja el llamador en Locals. Si el token falta o no es válido escribe la
// respuesta 401 y devuelve caller nil junto con el resultado de esa escritura.
func authenticate(c *fiber.Ctx, jwtSecret string) (*auth.Caller, error) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return nil, errorJSON(c, fiber.StatusUnauthorized, CodeMissingToken, "Authorization header requerido")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, errorJSON(c, fiber.StatusUnauthorized, CodeInvalidToken, "formato: Bearer <token>")
	}
	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return nil, errorJSON(c, fiber.StatusUnauthorized, CodeMissingToken, "token vacío")
	}
	caller, err := auth.Authenticate(jwtSecret, tokenString)
	if err != nil {
		return nil, errorJSON(c, fiber.StatusUnauthorized, CodeInvalidToken, "token inválido o expirado")
	}
	c.Locals(LocalCaller, caller)
	return caller, nil
}

// GetCaller devuelve el llamador autenticado o nil.
func GetCaller(c *fiber.Ctx) *auth.Caller {
	caller, _ := c.Locals(LocalCaller).(*auth.Caller)
	return caller
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	if caller := GetCaller(c); caller != nil {
		return caller.UserID
	}
	return ""
}

// GetRole devuelve el rol del contexto (después del middleware de auth).
func GetRole(c *fiber.Ctx) string {
	if caller := GetCaller(c); caller != nil {
		return caller.Role.String()
	}
	return ""
}
