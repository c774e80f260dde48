package entity

import "time"

// LowStockAlert notifica que un ítem cayó a o por debajo de su mínimo.
// Invariante: a lo sumo una alerta NO reconocida por (company_id, inventory_item_id);
// la deduplicación se refuerza con un índice único parcial en la base.
type LowStockAlert struct {
	ID              string
	CompanyID       string
	InventoryItemID string
	CurrentQuantity int // snapshot de la cantidad que disparó la alerta
	MinStockLevel   int // snapshot del umbral configurado
	AlertDate       time.Time
	IsAcknowledged  bool
	AcknowledgedBy  string
	AcknowledgedAt  *time.Time

	// Enriquecimiento de lectura
	ItemName     string
	ItemSKU      string
	CurrentStock int // cantidad actual del ítem al momento de la consulta
}
