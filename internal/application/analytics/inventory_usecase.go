package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jobberpro/fieldservice-api/internal/application/dto"
	"github.com/jobberpro/fieldservice-api/internal/domain/entity"
	"github.com/jobberpro/fieldservice-api/internal/domain/repository"
)

const (
	analyticsWindowDays  = 30 // ventana del resumen de movimientos
	analyticsTopItems    = 10
	analyticsRecentMoves = 5
)

// InventoryAnalyticsUseCase agrega la foto del inventario: valor total, ítems en
// stock bajo o agotados, desglose por categoría, resumen de movimientos de los
// últimos 30 días, ítems más consumidos en trabajos y movimientos recientes.
type InventoryAnalyticsUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	movRepo       repository.StockMovementRepository
}

// NewInventoryAnalyticsUseCase construye el caso de uso.
func NewInventoryAnalyticsUseCase(analyticsRepo repository.AnalyticsRepository, movRepo repository.StockMovementRepository) *InventoryAnalyticsUseCase {
	return &InventoryAnalyticsUseCase{analyticsRepo: analyticsRepo, movRepo: movRepo}
}

// GetAnalytics construye el reporte de inventario de la empresa.
func (uc *InventoryAnalyticsUseCase) GetAnalytics(ctx context.Context, companyID string) (*dto.InventoryAnalyticsResponse, error) {
	since := time.Now().AddDate(0, 0, -analyticsWindowDays)

	totals, err := uc.analyticsRepo.InventoryTotals(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("analytics: totales de inventario: %w", err)
	}
	summary, err := uc.analyticsRepo.MovementSummarySince(ctx, companyID, since)
	if err != nil {
		return nil, fmt.Errorf("analytics: resumen de movimientos: %w", err)
	}
	top, err := uc.analyticsRepo.TopUsedItems(ctx, companyID, analyticsTopItems)
	if err != nil {
		return nil, fmt.Errorf("analytics: ítems más usados: %w", err)
	}
	recent, _, err := uc.movRepo.ListByCompany(companyID, repository.MovementFilter{Limit: analyticsRecentMoves})
	if err != nil {
		return nil, fmt.Errorf("analytics: movimientos recientes: %w", err)
	}

	resp := &dto.InventoryAnalyticsResponse{
		TotalItems:        totals.TotalItems,
		TotalValue:        totals.TotalValue.Round(2),
		LowStockItems:     totals.LowStockItems,
		OutOfStockItems:   totals.OutOfStockItems,
		CategoryBreakdown: totals.CategoryBreakdown,
		MovementSummary:   summary,
		TopUsedItems:      make([]dto.TopUsedItemDTO, 0, len(top)),
		RecentMovements:   make([]dto.MovementResponse, 0, len(recent)),
	}
	for _, t := range top {
		resp.TopUsedItems = append(resp.TopUsedItems, dto.TopUsedItemDTO{
			ItemID:    t.InventoryItemID,
			ItemName:  t.ItemName,
			ItemSKU:   t.ItemSKU,
			TotalUsed: t.TotalUsed,
			TotalCost: t.TotalCost.Round(2),
		})
	}
	for _, m := range recent {
		resp.RecentMovements = append(resp.RecentMovements, toMovementResponse(m))
	}
	return resp, nil
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:               m.ID,
		InventoryItemID:  m.InventoryItemID,
		ItemName:         m.ItemName,
		ItemSKU:          m.ItemSKU,
		MovementType:     m.MovementType,
		Quantity:         m.Quantity,
		PreviousQuantity: m.PreviousQuantity,
		NewQuantity:      m.NewQuantity,
		ReferenceID:      m.ReferenceID,
		ReferenceType:    m.ReferenceType,
		UnitCost:         m.UnitCost,
		Notes:            m.Notes,
		CreatedBy:        m.CreatedBy,
		CreatedAt:        m.CreatedAt,
	}
}
