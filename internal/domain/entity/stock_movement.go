package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeIn         = "in"         // entrada: suma al stock
	MovementTypeOut        = "out"        // salida: resta, nunca por debajo de cero
	MovementTypeAdjustment = "adjustment" // ajuste: fija la cantidad absoluta
)

// Tipos de referencia de un movimiento.
const (
	ReferenceTypeJob           = "job"
	ReferenceTypePurchaseOrder = "purchase_order"
	ReferenceTypeInitialStock  = "initial_stock"
	ReferenceTypeAdjustment    = "adjustment"
)

// StockMovement es una entrada inmutable del ledger de stock. Una vez escrita
// nunca se edita; PreviousQuantity y NewQuantity son snapshots al momento del registro.
type StockMovement struct {
	ID               string
	CompanyID        string
	InventoryItemID  string
	MovementType     string // in, out, adjustment
	Quantity         int    // magnitud sin signo; el signo lo implica MovementType
	PreviousQuantity int
	NewQuantity      int
	ReferenceID      string // job_id, purchase_order_id...
	ReferenceType    string // job, purchase_order, initial_stock, adjustment
	UnitCost         *decimal.Decimal
	Notes            string
	CreatedBy        string
	CreatedAt        time.Time

	// Enriquecimiento de lectura (no se persiste en stock_movements)
	ItemName string
	ItemSKU  string
}
