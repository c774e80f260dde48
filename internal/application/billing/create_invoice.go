// Package billing facturación de trabajos: creación de facturas a partir de
// trabajos completados y su representación gráfica en PDF.
package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jobberpro/fieldservice-api/internal/application/dto"
	"github.com/jobberpro/fieldservice-api/internal/domain"
	"github.com/jobberpro/fieldservice-api/internal/domain/entity"
	"github.com/jobberpro/fieldservice-api/internal/domain/repository"
)

// CreateInvoiceUseCase crea facturas desde uno o más trabajos del mismo cliente.
type CreateInvoiceUseCase struct {
	invoiceRepo repository.InvoiceRepository
	clientRepo  repository.ClientRepository
	jobRepo     repository.JobRepository
}

// NewCreateInvoiceUseCase construye el caso de uso.
func NewCreateInvoiceUseCase(invoiceRepo repository.InvoiceRepository, clientRepo repository.ClientRepository, jobRepo repository.JobRepository) *CreateInvoiceUseCase {
	return &CreateInvoiceUseCase{invoiceRepo: invoiceRepo, clientRepo: clientRepo, jobRepo: jobRepo}
}

// CreateInvoice valida cliente y trabajos, calcula los totales y persiste la
// factura en estado pending.
//
//	subtotal     = Σ costo facturable de cada trabajo (actual_cost o estimated_cost)
//	tax_amount   = subtotal * tax_rate / 100
//	total_amount = subtotal + tax_amount - discount_amount
func (uc *CreateInvoiceUseCase) CreateInvoice(ctx context.Context, tc domain.TenantContext, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if !tc.Valid() || in.ClientID == "" || len(in.JobIDs) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.TaxRate.IsNegative() || in.DiscountAmount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	client, err := uc.clientRepo.GetByID(in.ClientID, tc.CompanyID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}

	jobs, err := uc.jobRepo.ListByIDs(in.JobIDs, tc.CompanyID)
	if err != nil {
		return nil, err
	}
	if len(jobs) != len(in.JobIDs) {
		return nil, fmt.Errorf("%w: uno o más trabajos no existen", domain.ErrNotFound)
	}

	subtotal := decimal.Zero
	for _, job := range jobs {
		if job.ClientID != in.ClientID {
			return nil, fmt.Errorf("%w: el trabajo %s no pertenece al cliente", domain.ErrInvalidInput, job.ID)
		}
		subtotal = subtotal.Add(job.BillableCost())
	}

	taxAmount := subtotal.Mul(in.TaxRate).Div(decimal.NewFromInt(100)).Round(2)
	total := subtotal.Add(taxAmount).Sub(in.DiscountAmount).Round(2)

	now := time.Now()
	invoice := &entity.Invoice{
		ID:             uuid.New().String(),
		CompanyID:      tc.CompanyID,
		ClientID:       in.ClientID,
		InvoiceNumber:  generateInvoiceNumber(),
		JobIDs:         in.JobIDs,
		Subtotal:       subtotal.Round(2),
		TaxRate:        in.TaxRate,
		TaxAmount:      taxAmount,
		DiscountAmount: in.DiscountAmount,
		TotalAmount:    total,
		Status:         entity.InvoiceStatusPending,
		DueDate:        in.DueDate,
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.invoiceRepo.Create(invoice); err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice), nil
}

// GetInvoice devuelve una factura de la empresa.
func (uc *CreateInvoiceUseCase) GetInvoice(_ context.Context, companyID, invoiceID string) (*dto.InvoiceResponse, error) {
	invoice, err := uc.invoiceRepo.GetByID(invoiceID, companyID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	return toInvoiceResponse(invoice), nil
}

// ListInvoices lista facturas paginadas.
func (uc *CreateInvoiceUseCase) ListInvoices(_ context.Context, companyID string, page dto.PageRequest) ([]dto.InvoiceResponse, error) {
	page.DefaultPage()
	invoices, err := uc.invoiceRepo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, *toInvoiceResponse(inv))
	}
	return out, nil
}

// generateInvoiceNumber número legible de factura: INV-YYYYMMDD-XXXXXXXX.
func generateInvoiceNumber() string {
	suffix := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("INV-%s-%s", time.Now().Format("20060102"), suffix)
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:             inv.ID,
		InvoiceNumber:  inv.InvoiceNumber,
		ClientID:       inv.ClientID,
		JobIDs:         inv.JobIDs,
		Subtotal:       inv.Subtotal,
		TaxRate:        inv.TaxRate,
		TaxAmount:      inv.TaxAmount,
		DiscountAmount: inv.DiscountAmount,
		TotalAmount:    inv.TotalAmount,
		Status:         inv.Status,
		DueDate:        inv.DueDate,
		PaidDate:       inv.PaidDate,
		Notes:          inv.Notes,
		CreatedAt:      inv.CreatedAt,
		UpdatedAt:      inv.UpdatedAt,
	}
}
