package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/logitrack/logitrack-api/internal/application/audit"
	"github.com/logitrack/logitrack-api/internal/application/auth"
	"github.com/logitrack/logitrack-api/internal/application/inventory"
	"github.com/logitrack/logitrack-api/internal/application/report"
	"github.com/logitrack/logitrack-api/internal/application/usecase"
	"github.com/logitrack/logitrack-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	MovementUC  *inventory.MovementUseCase
	LedgerUC    *inventory.LedgerUseCase
	ProductUC   *usecase.ProductUseCase
	WarehouseUC *usecase.WarehouseUseCase
	ReportUC    *report.ReportUseCase
	AuditUC     *audit.QueryUseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
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
	adminOnly := RequireRole(entity.RoleAdmin)

	// Movements (protegido; eliminar solo admin)
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.MovementUC)
	movements.Post("/", movementHandler.Create)
	movements.Get("/", movementHandler.List)
	movements.Get("/latest", movementHandler.Latest)
	movements.Get("/warehouse/:warehouse_id/inbound", movementHandler.InboundByWarehouse)
	movements.Get("/warehouse/:warehouse_id/outbound", movementHandler.OutboundByWarehouse)
	movements.Get("/transfers-from/:warehouse_id", movementHandler.TransfersFrom)
	movements.Get("/transfers-to/:warehouse_id", movementHandler.TransfersTo)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Delete("/:id", adminOnly, movementHandler.Delete)

	// Inventory ledger (protegido; escritura directa solo admin)
	inv := protected.Group("/inventory")
	ledgerHandler := NewLedgerHandler(deps.LedgerUC)
	inv.Post("/", adminOnly, ledgerHandler.Create)
	inv.Get("/", ledgerHandler.List)
	inv.Get("/low-stock", ledgerHandler.LowStock)
	inv.Get("/total/:product_id", ledgerHandler.TotalStock)
	inv.Get("/:id", ledgerHandler.Get)
	inv.Put("/:id", adminOnly, ledgerHandler.Update)
	inv.Delete("/:id", adminOnly, ledgerHandler.Delete)
	inv.Get("/:warehouse_id/:product_id", ledgerHandler.GetByPair)
	inv.Post("/:warehouse_id/:product_id/adjust", adminOnly, ledgerHandler.AdjustStock)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.Search)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Warehouses (protegido)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", warehouseHandler.Update)
	warehouses.Delete("/:id", adminOnly, warehouseHandler.Delete)

	// Reports (protegido)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/summary", reportHandler.Summary)
	reports.Get("/summary/pdf", reportHandler.SummaryPDF)
	reports.Get("/stock-by-warehouse", reportHandler.StockByWarehouse)
	reports.Get("/top-moved", reportHandler.TopMoved)
	reports.Get("/by-category", reportHandler.ByCategory)

	// Audit (solo admin)
	auditGroup := protected.Group("/audit", adminOnly)
	auditHandler := NewAuditHandler(deps.AuditUC)
	auditGroup.Get("/", auditHandler.List)
}
