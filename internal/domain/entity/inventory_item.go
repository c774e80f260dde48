package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías sugeridas de ítems (el campo es texto libre; estas son las usadas por el frontend).
const (
	CategoryParts     = "parts"
	CategorySupplies  = "supplies"
	CategoryTools     = "tools"
	CategoryEquipment = "equipment"
)

// InventoryItem representa un artículo almacenable, con scope por empresa.
// StockQuantity es caché denormalizada: debe coincidir siempre con la suma de los
// movimientos del ledger según su semántica de tipo. Se actualiza únicamente
// dentro de la misma transacción que inserta el movimiento.
type InventoryItem struct {
	ID              string
	CompanyID       string
	Name            string
	Description     string
	Category        string
	SKU             string // único por empresa
	SupplierName    string
	SupplierContact string
	UnitCost        decimal.Decimal
	SellingPrice    decimal.Decimal
	StockQuantity   int
	MinStockLevel   int
	MaxStockLevel   *int
	Location        string
	Barcode         string
	IsActive        bool // soft-delete: nunca se elimina físicamente
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsLowStock indica si el ítem está en o por debajo del mínimo configurado.
func (i *InventoryItem) IsLowStock() bool {
	return i.StockQuantity <= i.MinStockLevel
}
