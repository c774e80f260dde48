package inventory

import (
	"context"

	"github.com/jobberpro/fieldservice-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza atomicidad para el motor de stock: movimiento del ledger,
// actualización de la caché del ítem y alerta de stock bajo se confirman juntos o no
// se confirman.
type TxRunner interface {
	// Run transacción básica del motor de movimientos.
	Run(ctx context.Context, fn func(
		itemRepo repository.InventoryItemRepository,
		movRepo repository.StockMovementRepository,
		alertRepo repository.LowStockAlertRepository,
	) error) error

	// RunParts igual que Run, más el repositorio de consumos de trabajo
	// (usage + movimiento + decremento de caché en la misma transacción).
	RunParts(ctx context.Context, fn func(
		itemRepo repository.InventoryItemRepository,
		movRepo repository.StockMovementRepository,
		alertRepo repository.LowStockAlertRepository,
		usageRepo repository.JobPartUsageRepository,
	) error) error

	// RunReceiving igual que Run, más el repositorio de órdenes de compra
	// (recepción de líneas + movimientos "in" + estado de la orden en una tx).
	RunReceiving(ctx context.Context, fn func(
		itemRepo repository.InventoryItemRepository,
		movRepo repository.StockMovementRepository,
		alertRepo repository.LowStockAlertRepository,
		poRepo repository.PurchaseOrderRepository,
	) error) error
}
