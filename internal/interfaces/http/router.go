package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jobberpro/fieldservice-api/internal/application/analytics"
	"github.com/jobberpro/fieldservice-api/internal/application/auth"
	"github.com/jobberpro/fieldservice-api/internal/application/billing"
	"github.com/jobberpro/fieldservice-api/internal/application/inventory"
	"github.com/jobberpro/fieldservice-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC             *auth.AuthUseCase
	ClientUC           *usecase.ClientUseCase
	JobUC              *usecase.JobUseCase
	ItemUC             *inventory.ItemUseCase
	MovementUC         *inventory.MovementUseCase
	AlertUC            *inventory.AlertUseCase
	PartsUC            *inventory.PartsUseCase
	PurchaseUC         *inventory.PurchaseOrderUseCase
	CreateInvoice      *billing.CreateInvoiceUseCase
	InvoicePDF         *billing.PDFUseCase
	DashboardUC        *analytics.DashboardUseCase
	InventoryReportsUC *analytics.InventoryAnalyticsUseCase
	JWTSecret          string
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

	// Clients (protegido)
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)

	// Jobs y consumo de repuestos (protegido)
	jobs := protected.Group("/jobs")
	jobHandler := NewJobHandler(deps.JobUC, deps.PartsUC)
	jobs.Post("/", jobHandler.Create)
	jobs.Get("/", jobHandler.List)
	jobs.Get("/:id", jobHandler.GetByID)
	jobs.Patch("/:id/status", jobHandler.UpdateStatus)
	jobs.Delete("/:id", jobHandler.Delete)
	jobs.Post("/:id/parts", jobHandler.ConsumeParts)
	jobs.Get("/:id/parts", jobHandler.ListParts)

	// Inventory: ítems, movimientos, alertas y reportes (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.ItemUC, deps.MovementUC, deps.AlertUC, deps.InventoryReportsUC)
	invGroup.Post("/items", inventoryHandler.CreateItem)
	invGroup.Get("/items", inventoryHandler.ListItems)
	invGroup.Get("/items/:id", inventoryHandler.GetItem)
	invGroup.Put("/items/:id", inventoryHandler.UpdateItem)
	invGroup.Delete("/items/:id", inventoryHandler.DeleteItem)
	invGroup.Post("/movements", inventoryHandler.CreateMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/alerts", inventoryHandler.ListAlerts)
	invGroup.Post("/alerts/:id/acknowledge", inventoryHandler.AcknowledgeAlert)
	invGroup.Get("/analytics", inventoryHandler.Analytics)

	// Purchase orders (protegido)
	purchases := protected.Group("/purchase-orders")
	purchaseHandler := NewPurchaseOrderHandler(deps.PurchaseUC)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Patch("/:id/status", purchaseHandler.UpdateStatus)
	purchases.Post("/:id/receive", purchaseHandler.Receive)

	// Invoices (protegido)
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.CreateInvoice, deps.InvoicePDF)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)

	// Dashboard (protegido)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Get)
}
