package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jobberpro/fieldservice-api/internal/domain"
	"github.com/jobberpro/fieldservice-api/internal/domain/entity"
	"github.com/jobberpro/fieldservice-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `id, company_id, client_id, invoice_number, job_ids, subtotal, tax_rate,
	tax_amount, discount_amount, total_amount, status, due_date, paid_date, notes, created_at, updated_at`

// InvoiceRepo implementación del puerto InvoiceRepository sobre PostgreSQL.
// job_ids se guarda como text[] (los trabajos facturados no cambian después).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador de facturas. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste una factura. También suma el total a total_revenue del cliente.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.CompanyID, invoice.ClientID, invoice.InvoiceNumber, invoice.JobIDs,
		invoice.Subtotal, invoice.TaxRate, invoice.TaxAmount, invoice.DiscountAmount,
		invoice.TotalAmount, invoice.Status, invoice.DueDate, invoice.PaidDate, invoice.Notes,
		invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	_, err = r.q.Exec(context.Background(),
		`UPDATE clients SET total_revenue = total_revenue + $3, updated_at = now() WHERE id = $1 AND company_id = $2`,
		invoice.ClientID, invoice.CompanyID, invoice.TotalAmount,
	)
	if err != nil {
		return fmt.Errorf("update client total_revenue: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID dentro de la empresa. Nil si no existe.
func (r *InvoiceRepo) GetByID(id, companyID string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1 AND company_id = $2`
	var inv entity.Invoice
	err := r.q.QueryRow(context.Background(), query, id, companyID).Scan(scanInvoiceFields(&inv)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

// ListByCompany lista facturas por empresa con paginación.
func (r *InvoiceRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(scanInvoiceFields(&inv)...); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

func scanInvoiceFields(inv *entity.Invoice) []any {
	return []any{
		&inv.ID, &inv.CompanyID, &inv.ClientID, &inv.InvoiceNumber, &inv.JobIDs,
		&inv.Subtotal, &inv.TaxRate, &inv.TaxAmount, &inv.DiscountAmount,
		&inv.TotalAmount, &inv.Status, &inv.DueDate, &inv.PaidDate, &inv.Notes,
		&inv.CreatedAt, &inv.UpdatedAt,
	}
}
