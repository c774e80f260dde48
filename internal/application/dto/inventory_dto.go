package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest alta de ítem de inventario. SKU vacío = se genera automático
// a partir de la categoría. StockQuantity > 0 produce el movimiento inicial "in".
type CreateItemRequest struct {
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
	SKU             string          `json:"sku"`
	SupplierName    string          `json:"supplier_name"`
	SupplierContact string          `json:"supplier_contact"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	SellingPrice    decimal.Decimal `json:"selling_price"`
	StockQuantity   int             `json:"stock_quantity"`
	MinStockLevel   int             `json:"min_stock_level"`
	MaxStockLevel   *int            `json:"max_stock_level"`
	Location        string          `json:"location"`
	Barcode         string          `json:"barcode"`
	Notes           string          `json:"notes"`
}

// UpdateItemRequest actualización parcial: solo los punteros no-nil se aplican.
// StockQuantity no se actualiza por aquí; la cantidad solo cambia vía movimientos.
type UpdateItemRequest struct {
	Name            *string          `json:"name"`
	Description     *string          `json:"description"`
	Category        *string          `json:"category"`
	SupplierName    *string          `json:"supplier_name"`
	SupplierContact *string          `json:"supplier_contact"`
	UnitCost        *decimal.Decimal `json:"unit_cost"`
	SellingPrice    *decimal.Decimal `json:"selling_price"`
	MinStockLevel   *int             `json:"min_stock_level"`
	MaxStockLevel   *int             `json:"max_stock_level"`
	Location        *string          `json:"location"`
	Barcode         *string          `json:"barcode"`
	IsActive        *bool            `json:"is_active"`
	Notes           *string          `json:"notes"`
}

// ItemListRequest filtros del listado de ítems.
type ItemListRequest struct {
	Category string `query:"category"`
	Search   string `query:"search"`
	LowStock bool   `query:"low_stock"`
	PageRequest
}

// ItemResponse ítem de inventario.
type ItemResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	Category        string          `json:"category"`
	SKU             string          `json:"sku"`
	SupplierName    string          `json:"supplier_name,omitempty"`
	SupplierContact string          `json:"supplier_contact,omitempty"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	SellingPrice    decimal.Decimal `json:"selling_price"`
	StockQuantity   int             `json:"stock_quantity"`
	MinStockLevel   int             `json:"min_stock_level"`
	MaxStockLevel   *int            `json:"max_stock_level,omitempty"`
	Location        string          `json:"location,omitempty"`
	Barcode         string          `json:"barcode,omitempty"`
	IsActive        bool            `json:"is_active"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	RecentMovements []MovementResponse `json:"recent_movements,omitempty"`
}

// ItemListResponse página de ítems.
type ItemListResponse struct {
	Items  []ItemResponse `json:"items"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// CreateMovementRequest registro manual de un movimiento de stock.
type CreateMovementRequest struct {
	InventoryItemID string           `json:"inventory_item_id"`
	MovementType    string           `json:"movement_type"` // in, out, adjustment
	Quantity        int              `json:"quantity"`
	ReferenceID     string           `json:"reference_id"`
	ReferenceType   string           `json:"reference_type"`
	UnitCost        *decimal.Decimal `json:"unit_cost"`
	Notes           string           `json:"notes"`
}

// MovementListRequest filtros del listado de movimientos.
type MovementListRequest struct {
	ItemID       string `query:"item_id"`
	MovementType string `query:"movement_type"`
	PageRequest
}

// MovementResponse movimiento del ledger, con enriquecimiento de lectura.
type MovementResponse struct {
	ID               string           `json:"id"`
	InventoryItemID  string           `json:"inventory_item_id"`
	ItemName         string           `json:"item_name,omitempty"`
	ItemSKU          string           `json:"item_sku,omitempty"`
	MovementType     string           `json:"movement_type"`
	Quantity         int              `json:"quantity"`
	PreviousQuantity int              `json:"previous_quantity"`
	NewQuantity      int              `json:"new_quantity"`
	ReferenceID      string           `json:"reference_id,omitempty"`
	ReferenceType    string           `json:"reference_type,omitempty"`
	UnitCost         *decimal.Decimal `json:"unit_cost,omitempty"`
	Notes            string           `json:"notes,omitempty"`
	CreatedBy        string           `json:"created_by"`
	CreatedAt        time.Time        `json:"created_at"`
}

// MovementListResponse página de movimientos.
type MovementListResponse struct {
	Movements []MovementResponse `json:"movements"`
	Total     int                `json:"total"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
}

// ConsumePartsRequest consumo de repuestos en un trabajo.
type ConsumePartsRequest struct {
	JobID           string           `json:"job_id"`
	InventoryItemID string           `json:"inventory_item_id"`
	QuantityUsed    int              `json:"quantity_used"`
	UnitPrice       *decimal.Decimal `json:"unit_price"` // nil = selling_price del ítem
	Notes           string           `json:"notes"`
}

// PartUsageResponse consumo registrado.
type PartUsageResponse struct {
	ID              string          `json:"id"`
	JobID           string          `json:"job_id"`
	InventoryItemID string          `json:"inventory_item_id"`
	ItemName        string          `json:"item_name,omitempty"`
	ItemSKU         string          `json:"item_sku,omitempty"`
	QuantityUsed    int             `json:"quantity_used"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// AlertResponse alerta de stock bajo con enriquecimiento de lectura.
type AlertResponse struct {
	ID              string     `json:"id"`
	InventoryItemID string     `json:"inventory_item_id"`
	ItemName        string     `json:"item_name,omitempty"`
	ItemSKU         string     `json:"item_sku,omitempty"`
	CurrentQuantity int        `json:"current_quantity"`
	MinStockLevel   int        `json:"min_stock_level"`
	AlertDate       time.Time  `json:"alert_date"`
	IsAcknowledged  bool       `json:"is_acknowledged"`
	AcknowledgedBy  string     `json:"acknowledged_by,omitempty"`
	AcknowledgedAt  *time.Time `json:"acknowledged_at,omitempty"`
}

// InventoryAnalyticsResponse agregados de inventario para reportes.
type InventoryAnalyticsResponse struct {
	TotalItems        int                `json:"total_items"`
	TotalValue        decimal.Decimal    `json:"total_value"`
	LowStockItems     int                `json:"low_stock_items"`
	OutOfStockItems   int                `json:"out_of_stock_items"`
	CategoryBreakdown map[string]int     `json:"category_breakdown"`
	MovementSummary   map[string]int     `json:"movement_summary"`
	TopUsedItems      []TopUsedItemDTO   `json:"top_used_items"`
	RecentMovements   []MovementResponse `json:"recent_movements"`
}

// TopUsedItemDTO ítem más consumido en trabajos.
type TopUsedItemDTO struct {
	ItemID    string          `json:"item_id"`
	ItemName  string          `json:"item_name"`
	ItemSKU   string          `json:"item_sku"`
	TotalUsed int             `json:"total_used"`
	TotalCost decimal.Decimal `json:"total_cost"`
}
