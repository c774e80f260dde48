package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// InventoryTotals agregados del inventario activo de una empresa.
type InventoryTotals struct {
	TotalItems        int
	TotalValue        decimal.Decimal // sum(stock_quantity * unit_cost)
	LowStockItems     int
	OutOfStockItems   int
	CategoryBreakdown map[string]int
}

// TopUsedItem acumulado de consumo de un ítem en trabajos.
type TopUsedItem struct {
	InventoryItemID string
	ItemName        string
	ItemSKU         string
	TotalUsed       int
	TotalCost       decimal.Decimal
}

// AnalyticsRepository consultas read-only de agregación para dashboard y
// reportes de inventario. Solo lecturas; nunca participa en transacciones.
type AnalyticsRepository interface {
	CountJobs(ctx context.Context, companyID string) (int, error)
	CountClients(ctx context.Context, companyID string) (int, error)
	CountJobsScheduledBetween(ctx context.Context, companyID string, from, to time.Time) (int, error)
	// SumCompletedJobRevenue suma coalesce(actual_cost, estimated_cost) de trabajos
	// completados desde la fecha indicada.
	SumCompletedJobRevenue(ctx context.Context, companyID string, since time.Time) (decimal.Decimal, error)
	CompletionRate(ctx context.Context, companyID string) (decimal.Decimal, error)

	InventoryTotals(ctx context.Context, companyID string) (*InventoryTotals, error)
	MovementSummarySince(ctx context.Context, companyID string, since time.Time) (map[string]int, error)
	TopUsedItems(ctx context.Context, companyID string, limit int) ([]TopUsedItem, error)
}
