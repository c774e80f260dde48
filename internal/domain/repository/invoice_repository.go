package repository

import "github.com/jobberpro/fieldservice-api/internal/domain/entity"

// InvoiceRepository define el puerto de persistencia para Invoice.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	GetByID(id, companyID string) (*entity.Invoice, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Invoice, error)
}
