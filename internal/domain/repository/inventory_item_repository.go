package repository

import "github.com/jobberpro/fieldservice-api/internal/domain/entity"

// ItemFilter filtros para listar ítems de inventario.
type ItemFilter struct {
	Category string
	Search   string // busca en name, sku y description (case-insensitive)
	LowStock bool   // solo ítems con stock_quantity <= min_stock_level
	Limit    int
	Offset   int
}

// InventoryItemRepository define el puerto de persistencia para InventoryItem.
// GetForUpdate bloquea la fila (SELECT FOR UPDATE) y solo tiene sentido dentro
// de una transacción del TxRunner; es la serialización por ítem que mantiene la
// caché stock_quantity consistente con el ledger bajo escritores concurrentes.
type InventoryItemRepository interface {
	Create(item *entity.InventoryItem) error
	GetByID(id, companyID string) (*entity.InventoryItem, error)
	GetForUpdate(id, companyID string) (*entity.InventoryItem, error)
	GetBySKU(companyID, sku string) (*entity.InventoryItem, error)
	// LastSKUForPrefix devuelve el SKU más alto (orden lexicográfico descendente)
	// que empieza por "PREFIX-" en la empresa, o "" si no existe ninguno.
	LastSKUForPrefix(companyID, prefix string) (string, error)
	List(companyID string, filter ItemFilter) ([]*entity.InventoryItem, int, error)
	Update(item *entity.InventoryItem) error
	UpdateStockQuantity(id, companyID string, quantity int) error
	Deactivate(id, companyID string) (bool, error)
}
