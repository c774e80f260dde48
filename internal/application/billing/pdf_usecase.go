package billing

import (
	"context"
	"fmt"

	"github.com/jobberpro/fieldservice-api/internal/domain"
	"github.com/jobberpro/fieldservice-api/internal/domain/repository"
)

// PDFUseCase genera la representación gráfica (PDF) de una factura.
type PDFUseCase struct {
	invoiceRepo repository.InvoiceRepository
	companyRepo repository.CompanyRepository
	clientRepo  repository.ClientRepository
	jobRepo     repository.JobRepository
	generator   InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	companyRepo repository.CompanyRepository,
	clientRepo repository.ClientRepository,
	jobRepo repository.JobRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo: invoiceRepo,
		companyRepo: companyRepo,
		clientRepo:  clientRepo,
		jobRepo:     jobRepo,
		generator:   generator,
	}
}

// DownloadInvoicePDF carga factura, empresa, cliente y trabajos facturados, y
// genera el PDF. Devuelve (pdfBytes, filename, nil) o domain.ErrNotFound si la
// factura no existe en la empresa.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, companyID, invoiceID string) (pdfBytes []byte, filename string, err error) {
	invoice, err := uc.invoiceRepo.GetByID(invoiceID, companyID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if invoice == nil {
		return nil, "", domain.ErrNotFound
	}

	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener empresa: %w", err)
	}
	if company == nil {
		return nil, "", domain.ErrNotFound
	}

	client, err := uc.clientRepo.GetByID(invoice.ClientID, companyID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
	}
	if client == nil {
		return nil, "", domain.ErrNotFound
	}

	jobs, err := uc.jobRepo.ListByIDs(invoice.JobIDs, companyID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener trabajos: %w", err)
	}

	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, invoice, company, client, jobs)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("factura_%s.pdf", invoice.InvoiceNumber)
	return pdfBytes, filename, nil
}
