package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stocktrack-api/internal/application/auth"
	"github.com/jhoicas/stocktrack-api/internal/application/inventory"
	"github.com/jhoicas/stocktrack-api/internal/application/usecase"
	"github.com/jhoicas/stocktrack-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ApplyMovement *inventory.ApplyMovementUseCase
	History       *inventory.HistoryUseCase
	Provision     *inventory.ProvisionUseCase
	LowStock      *inventory.LowStockUseCase
	ProductUC     *usecase.ProductUseCase
	LocationUC    *usecase.LocationUseCase
	CategoryUC    *usecase.CategoryUseCase
	SupplierUC    *usecase.SupplierUseCase
	AuthUC        *auth.AuthUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Escrituras de catálogo y aprovisionamiento: solo manager o admin.
	// Los movimientos de stock los registra cualquier usuario autenticado.
	managers := RequireRole(entity.RoleAdmin, entity.RoleManager)

	// Movements (protegido): única vía de mutación de cantidades
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.ApplyMovement, deps.History)
	movements.Post("/", movementHandler.Apply)
	movements.Get("/", movementHandler.List)
	movements.Get("/export", movementHandler.ExportCSV)

	// Inventory (protegido): filas de stock, umbrales y alertas
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Provision, deps.LowStock)
	invGroup.Get("/", inventoryHandler.List)
	invGroup.Get("/low-stock", inventoryHandler.LowStock)
	invGroup.Post("/", managers, inventoryHandler.Create)
	invGroup.Put("/:product_id/:location_id", managers, inventoryHandler.UpdateReorder)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", managers, productHandler.Create)
	products.Put("/:id", managers, productHandler.Update)
	products.Delete("/:id", managers, productHandler.Delete)

	// Locations (protegido)
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Post("/", managers, locationHandler.Create)
	locations.Put("/:id", managers, locationHandler.Update)
	locations.Delete("/:id", managers, locationHandler.Delete)

	// Categories (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", managers, categoryHandler.Create)
	categories.Put("/:id", managers, categoryHandler.Update)
	categories.Delete("/:id", managers, categoryHandler.Delete)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Post("/", managers, supplierHandler.Create)
	suppliers.Put("/:id", managers, supplierHandler.Update)
	suppliers.Delete("/:id", managers, supplierHandler.Delete)
}
