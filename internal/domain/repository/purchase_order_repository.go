package repository

import (
	"time"

	"github.com/jobberpro/fieldservice-api/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia para órdenes de compra.
// La cabecera y sus líneas se cargan siempre juntas (raíz de agregado).
type PurchaseOrderRepository interface {
	Create(po *entity.PurchaseOrder) error
	GetByID(id, companyID string) (*entity.PurchaseOrder, error)
	// GetForUpdate bloquea la cabecera para procesar la recepción sin carreras.
	GetForUpdate(id, companyID string) (*entity.PurchaseOrder, error)
	ListByCompany(companyID, status string, limit, offset int) ([]*entity.PurchaseOrder, error)
	UpdateStatus(id, companyID, status string) (bool, error)
	// AddLineReceived acumula cantidad recibida sobre la línea del ítem indicado.
	AddLineReceived(poID, inventoryItemID string, receivedQty int) error
	MarkReceived(id, companyID string, receivedAt time.Time) error
}
