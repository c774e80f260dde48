package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderItemRequest línea de una orden de compra nueva.
type PurchaseOrderItemRequest struct {
	InventoryItemID string          `json:"inventory_item_id"`
	Quantity        int             `json:"quantity"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	Notes           string          `json:"notes"`
}

// CreatePurchaseOrderRequest alta de orden de compra.
type CreatePurchaseOrderRequest struct {
	SupplierName         string                     `json:"supplier_name"`
	SupplierContact      string                     `json:"supplier_contact"`
	ExpectedDeliveryDate *time.Time                 `json:"expected_delivery_date"`
	Items                []PurchaseOrderItemRequest `json:"items"`
	Notes                string                     `json:"notes"`
}

// ReceiveLineRequest par (ítem, cantidad recibida) al procesar la recepción.
type ReceiveLineRequest struct {
	InventoryItemID  string `json:"inventory_item_id"`
	ReceivedQuantity int    `json:"received_quantity"`
}

// ReceivePurchaseOrderRequest recepción (posiblemente parcial) de una orden.
type ReceivePurchaseOrderRequest struct {
	Items []ReceiveLineRequest `json:"items"`
}

// UpdatePOStatusRequest cambio explícito de estado (ej. ordered, cancelled).
type UpdatePOStatusRequest struct {
	Status string `json:"status"`
}

// PurchaseOrderItemResponse línea con su progreso de recepción.
type PurchaseOrderItemResponse struct {
	ID               string          `json:"id"`
	InventoryItemID  string          `json:"inventory_item_id"`
	Quantity         int             `json:"quantity"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	ReceivedQuantity int             `json:"received_quantity"`
	Notes            string          `json:"notes,omitempty"`
}

// PurchaseOrderResponse orden completa con líneas.
type PurchaseOrderResponse struct {
	ID                   string                      `json:"id"`
	PONumber             string                      `json:"po_number"`
	SupplierName         string                      `json:"supplier_name"`
	SupplierContact      string                      `json:"supplier_contact,omitempty"`
	Status               string                      `json:"status"`
	OrderDate            time.Time                   `json:"order_date"`
	ExpectedDeliveryDate *time.Time                  `json:"expected_delivery_date,omitempty"`
	ReceivedDate         *time.Time                  `json:"received_date,omitempty"`
	TotalAmount          decimal.Decimal             `json:"total_amount"`
	Items                []PurchaseOrderItemResponse `json:"items"`
	Notes                string                      `json:"notes,omitempty"`
	CreatedBy            string                      `json:"created_by"`
	CreatedAt            time.Time                   `json:"created_at"`
}
