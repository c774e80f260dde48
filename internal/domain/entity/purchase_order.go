package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
const (
	PurchaseOrderPending   = "pending"
	PurchaseOrderOrdered   = "ordered"
	PurchaseOrderReceived  = "received"
	PurchaseOrderCancelled = "cancelled"
)

// ValidPurchaseOrderStatus verifica que el estado sea uno de los permitidos.
func ValidPurchaseOrderStatus(s string) bool {
	switch s {
	case PurchaseOrderPending, PurchaseOrderOrdered, PurchaseOrderReceived, PurchaseOrderCancelled:
		return true
	}
	return false
}

// PurchaseOrder es la raíz de agregado de una orden a proveedor; las líneas
// viven embebidas y se cargan siempre con la cabecera.
type PurchaseOrder struct {
	ID                   string
	CompanyID            string
	PONumber             string // PO-YYYYMMDD-XXXXXXXX
	SupplierName         string
	SupplierContact      string
	Status               string // pending, ordered, received, cancelled
	OrderDate            time.Time
	ExpectedDeliveryDate *time.Time
	ReceivedDate         *time.Time
	TotalAmount          decimal.Decimal // suma de los totales de línea
	Items                []PurchaseOrderItem
	Notes                string
	CreatedBy            string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// PurchaseOrderItem línea de una orden de compra.
// ReceivedQuantity arranca en 0 y se actualiza al procesar la recepción.
type PurchaseOrderItem struct {
	ID               string
	PurchaseOrderID  string
	InventoryItemID  string
	Quantity         int
	UnitCost         decimal.Decimal
	TotalCost        decimal.Decimal // Quantity * UnitCost
	ReceivedQuantity int
	Notes            string
}
