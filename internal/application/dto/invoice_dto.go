package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest factura generada desde uno o más trabajos.
type CreateInvoiceRequest struct {
	ClientID       string          `json:"client_id"`
	JobIDs         []string        `json:"job_ids"`
	DueDate        time.Time       `json:"due_date"`
	TaxRate        decimal.Decimal `json:"tax_rate"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Notes          string          `json:"notes"`
}

// InvoiceResponse factura completa.
type InvoiceResponse struct {
	ID             string          `json:"id"`
	InvoiceNumber  string          `json:"invoice_number"`
	ClientID       string          `json:"client_id"`
	JobIDs         []string        `json:"job_ids"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxRate        decimal.Decimal `json:"tax_rate"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	Status         string          `json:"status"`
	DueDate        time.Time       `json:"due_date"`
	PaidDate       *time.Time      `json:"paid_date,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
