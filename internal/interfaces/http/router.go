package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/smart-inventory-api/internal/application/analytics"
	"github.com/jhoicas/smart-inventory-api/internal/application/auth"
	"github.com/jhoicas/smart-inventory-api/internal/application/sales"
	"github.com/jhoicas/smart-inventory-api/internal/application/usecase"
)

func init() {
	// Montos como números JSON, no strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	ProductUC    *usecase.ProductUseCase
	LedgerUC     *sales.LedgerUseCase
	DashboardUC  *analytics.DashboardUseCase
	ReportUC     *analytics.ReportUseCase // nil = sin /sales/report
	Policy       auth.Policy              // nil = auth.DefaultPolicy()
	LoginLimiter *LoginLimiter            // nil = sin límite
	JWTSecret    string
}

// Router registra las rutas de la API. Cada ruta declara el permiso que exige.
func Router(app *fiber.App, deps RouterDeps) {
	policy := deps.Policy
	if policy == nil {
		policy = auth.DefaultPolicy()
	}
	guard := func(perm auth.Permission) fiber.Handler {
		return Guard(deps.JWTSecret, policy, perm)
	}

	// Users
	users := app.Group("/users")
	authHandler := NewAuthHandler(deps.AuthUC)
	users.Post("/register", authHandler.Register)
	users.Post("/login", deps.LoginLimiter.Middleware(), authHandler.Login)
	users.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Products: lectura pública, escritura admin
	products := app.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", guard(auth.PermProductsRead), productHandler.List)
	products.Post("/", guard(auth.PermProductsWrite), productHandler.Create)
	products.Get("/:id", guard(auth.PermProductsRead), productHandler.GetByID)
	products.Put("/:id", guard(auth.PermProductsWrite), productHandler.Update)
	products.Patch("/:id", guard(auth.PermProductsWrite), productHandler.Update)
	products.Delete("/:id", guard(auth.PermProductsWrite), productHandler.Delete)

	// Sales: cualquier rol autenticado. Las rutas fijas van antes de /:id.
	salesGroup := app.Group("/sales")
	analyticsHandler := NewAnalyticsHandler(deps.DashboardUC, deps.ReportUC, nil)
	salesGroup.Get("/analytics", guard(auth.PermAnalyticsRead), analyticsHandler.Summary)
	if deps.ReportUC != nil {
		salesGroup.Get("/report", guard(auth.PermReportsRead), analyticsHandler.Report)
	}

	saleHandler := NewSaleHandler(deps.LedgerUC)
	salesGroup.Get("/", guard(auth.PermSalesRead), saleHandler.List)
	salesGroup.Post("/", guard(auth.PermSalesRecord), saleHandler.Record)
	salesGroup.Get("/:id", guard(auth.PermSalesRead), saleHandler.GetByID)
	salesGroup.Delete("/:id", guard(auth.PermSalesDelete), saleHandler.Delete)
}
