package repository

import "github.com/jobberpro/fieldservice-api/internal/domain/entity"

// MovementFilter filtros para listar movimientos de stock.
type MovementFilter struct {
	InventoryItemID string
	MovementType    string
	Limit           int
	Offset          int
}

// StockMovementRepository define el puerto de persistencia para el ledger de movimientos.
// El ledger es append-only: no existen Update ni Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	// ListByCompany devuelve los movimientos enriquecidos con nombre y SKU del ítem
	// (proyección de lectura via JOIN; nada de eso se guarda en stock_movements).
	ListByCompany(companyID string, filter MovementFilter) ([]*entity.StockMovement, int, error)
	ListByItem(itemID, companyID string, limit int) ([]*entity.StockMovement, error)
}
