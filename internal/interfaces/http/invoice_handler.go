package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jobberpro/fieldservice-api/internal/application/billing"
	"github.com/jobberpro/fieldservice-api/internal/application/dto"
)

// InvoiceHandler maneja facturación: creación, consulta y descarga en PDF.
type InvoiceHandler struct {
	invoices *billing.CreateInvoiceUseCase
	pdf      *billing.PDFUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(invoices *billing.CreateInvoiceUseCase, pdf *billing.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices, pdf: pdf}
}

// Create godoc
// @Summary      Crear factura a partir de trabajos del cliente
// @Description  subtotal = suma del costo facturable de cada trabajo;
// @Description  tax_amount = subtotal * tax_rate / 100; total = subtotal + impuesto - descuento.
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvoiceRequest  true  "Cliente, trabajos, impuestos"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.invoices.CreateInvoice(c.Context(), tenantCtx(c), in)
	if err != nil {
		return mapError(c, err, "cliente o trabajo")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar facturas
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(100)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {array}  dto.InvoiceResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.invoices.ListInvoices(c.Context(), GetCompanyID(c), page)
	if err != nil {
		return mapError(c, err, "facturas")
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener factura por ID
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.invoices.GetInvoice(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return mapError(c, err, "factura")
	}
	return c.JSON(out)
}

// DownloadPDF godoc
// @Summary      Descargar factura en PDF
// @Tags         invoices
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/pdf [get]
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdf.DownloadInvoicePDF(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return mapError(c, err, "factura")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
