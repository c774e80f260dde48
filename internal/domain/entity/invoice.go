package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura.
const (
	InvoiceStatusPending = "pending"
	InvoiceStatusSent    = "sent"
	InvoiceStatusPaid    = "paid"
	InvoiceStatusOverdue = "overdue"
)

// Invoice representa la cabecera de una factura generada desde uno o más trabajos.
type Invoice struct {
	ID             string
	CompanyID      string
	ClientID       string
	InvoiceNumber  string // INV-YYYYMMDD-XXXXXXXX
	JobIDs         []string
	Subtotal       decimal.Decimal
	TaxRate        decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalAmount    decimal.Decimal
	Status         string // pending, sent, paid, overdue
	DueDate        time.Time
	PaidDate       *time.Time
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
