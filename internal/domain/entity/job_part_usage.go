package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// JobPartUsage registra el consumo de un repuesto en un trabajo (insumo facturable).
// Se crea junto con su movimiento "out" en la misma transacción; inmutable.
type JobPartUsage struct {
	ID              string
	CompanyID       string
	JobID           string
	InventoryItemID string
	QuantityUsed    int
	UnitPrice       decimal.Decimal // por defecto, el selling_price del ítem
	TotalCost       decimal.Decimal // UnitPrice * QuantityUsed
	Notes           string
	CreatedAt       time.Time

	// Enriquecimiento de lectura
	ItemName string
	ItemSKU  string
}
