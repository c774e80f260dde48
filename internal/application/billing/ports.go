package billing

import (
	"context"

	"github.com/jobberpro/fieldservice-api/internal/domain/entity"
)

// InvoicePDFGenerator genera la representación gráfica (PDF) de una factura.
// Implementado en infraestructura (maroto); el caso de uso solo conoce el puerto.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(
		ctx context.Context,
		invoice *entity.Invoice,
		company *entity.Company,
		client *entity.Client,
		jobs []*entity.Job,
	) ([]byte, error)
}
