package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/analytics"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/application/usecase"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC  *usecase.ProductUseCase
	StockUC    *inventory.StockUseCase
	SaleUC     *inventory.SaleUseCase
	ExpenseUC  *usecase.ExpenseUseCase
	UserUC     *usecase.UserUseCase
	SnapshotUC *analytics.SnapshotUseCase
	Reconciler *inventory.Reconciler
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Todas las rutas de /api requieren Bearer Token
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	anyRole := RequireRole(entity.RoleAdmin, entity.RoleManager, entity.RoleSalesperson)
	managers := RequireRole(entity.RoleAdmin, entity.RoleManager)
	admins := RequireRole(entity.RoleAdmin)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.StockUC)
	products.Get("/", anyRole, productHandler.List)
	products.Get("/:id", anyRole, productHandler.GetByID)
	products.Post("/", managers, productHandler.Create)
	products.Put("/:id", managers, productHandler.Update)
	products.Delete("/:id", admins, productHandler.Delete)
	products.Post("/:id/adjustments", managers, productHandler.Adjust)

	// Sales
	sales := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC, deps.SnapshotUC)
	sales.Get("/", anyRole, saleHandler.List)
	sales.Post("/", anyRole, saleHandler.Create)
	sales.Delete("/:id", managers, saleHandler.Reverse)

	// Expenses
	expenses := api.Group("/expenses", managers)
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	expenses.Get("/", expenseHandler.List)
	expenses.Post("/", expenseHandler.Create)
	expenses.Delete("/:id", expenseHandler.Delete)

	// Dashboard y reportes
	dashboardHandler := NewDashboardHandler(deps.SnapshotUC)
	api.Get("/dashboard", anyRole, dashboardHandler.Dashboard)
	api.Get("/reports", managers, dashboardHandler.Report)

	// Directorio de usuarios
	users := api.Group("/users", admins)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Delete("/:id", userHandler.Delete)

	// Conciliación
	api.Get("/reconciliation", admins, NewReconciliationHandler(deps.Reconciler).Run)
}
