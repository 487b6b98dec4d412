package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/inventory-service/internal/api/http/handlers"
	"github.com/spec-kit/inventory-service/internal/auth"
	"github.com/spec-kit/inventory-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Products       *handlers.ProductsHandler
	Categories     *handlers.CategoriesHandler
	Suppliers      *handlers.SuppliersHandler
	Stock          *handlers.StockHandler
	PurchaseOrders *handlers.PurchaseOrdersHandler
	Evaluator      *auth.Evaluator
}

// RegisterRoutes wires HTTP routes. Each protected route declares its
// authorization requirement here, at registration time; the evaluator reads
// it per request.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	eval := cfg.Evaluator

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)
	authGroup.Post("/logout", eval.Require(auth.RequireAuth()), cfg.Auth.Logout)
	authGroup.Post("/password/change", eval.Require(auth.RequireAuth()), cfg.Auth.ChangePassword)

	api := app.Group("/api")
	api.Get("/profile", eval.Require(auth.RequireAuth()), cfg.Auth.Profile)

	// user administration: ADMIN only
	users := api.Group("/users", eval.Require(auth.RequireMinimumRole(domain.RoleAdmin)))
	users.Get("/", cfg.Users.List)
	users.Post("/", cfg.Users.Create)
	users.Get("/:id", cfg.Users.Get)
	users.Patch("/:id", cfg.Users.Update)
	users.Delete("/:id", cfg.Users.Suspend)
	users.Post("/:id/reinstate", cfg.Users.Reinstate)
	users.Get("/:id/role", cfg.Users.GetRole)
	users.Put("/:id/role", cfg.Users.AssignRole)
	users.Patch("/:id/role", cfg.Users.SetRoleActive)
	users.Delete("/:id/role", cfg.Users.RevokeRole)

	canView := eval.Require(auth.RequireAnyPermission(domain.PermViewInventory, domain.PermManageInventory))
	canManage := eval.Require(auth.RequireAllPermissions(domain.PermManageInventory))

	products := api.Group("/products")
	products.Get("/", canView, cfg.Products.List)
	products.Get("/:id", canView, cfg.Products.Get)
	products.Post("/", canManage, cfg.Products.Create)
	products.Put("/:id", canManage, cfg.Products.Update)
	products.Delete("/:id", canManage, cfg.Products.Delete)

	categories := api.Group("/categories")
	categories.Get("/", canView, cfg.Categories.List)
	categories.Post("/", canManage, cfg.Categories.Create)
	categories.Put("/:id", canManage, cfg.Categories.Update)
	categories.Delete("/:id", canManage, cfg.Categories.Delete)

	suppliers := api.Group("/suppliers")
	suppliers.Get("/", canView, cfg.Suppliers.List)
	suppliers.Get("/:id", canView, cfg.Suppliers.Get)
	suppliers.Post("/", canManage, cfg.Suppliers.Create)
	suppliers.Put("/:id", canManage, cfg.Suppliers.Update)
	suppliers.Delete("/:id", canManage, cfg.Suppliers.Delete)

	stock := api.Group("/stock")
	stock.Get("/", canView, cfg.Stock.Levels)
	stock.Post("/adjustments", canManage, cfg.Stock.Adjust)
	stock.Get("/:productID", canView, cfg.Stock.Level)
	stock.Put("/:productID/reorder-level", canManage, cfg.Stock.SetReorderLevel)
	stock.Get("/:productID/movements", canView, cfg.Stock.Movements)

	api.Get("/reports/stock", eval.Require(auth.RequireAnyPermission(domain.PermViewReports)), cfg.Stock.StockReport)

	orders := api.Group("/purchase-orders")
	managerUp := eval.Require(auth.RequireMinimumRole(domain.RoleManager))
	orders.Get("/", managerUp, cfg.PurchaseOrders.List)
	orders.Get("/:id", managerUp, cfg.PurchaseOrders.Get)
	orders.Post("/", managerUp, cfg.PurchaseOrders.Create)
	orders.Post("/:id/submit", managerUp, cfg.PurchaseOrders.Submit)
	orders.Post("/:id/cancel", managerUp, cfg.PurchaseOrders.Cancel)
	orders.Post("/:id/approve",
		eval.Require(auth.RequireRoles(domain.RoleAdmin, domain.RoleManager)),
		eval.Require(auth.RequireAnyPermission(domain.PermApproveOrders)),
		cfg.PurchaseOrders.Approve)
	orders.Post("/:id/receive",
		eval.Require(auth.RequireAnyPermission(domain.PermManageOrders)),
		cfg.PurchaseOrders.Receive)
}
