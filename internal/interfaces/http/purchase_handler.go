package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jobberpro/fieldservice-api/internal/application/dto"
	"github.com/jobberpro/fieldservice-api/internal/application/inventory"
	"github.com/jobberpro/fieldservice-api/internal/domain/entity"
)

// PurchaseOrderHandler maneja el ciclo de vida de las órdenes de compra.
type PurchaseOrderHandler struct {
	uc *inventory.PurchaseOrderUseCase
}

// NewPurchaseOrderHandler construye el handler.
func NewPurchaseOrderHandler(uc *inventory.PurchaseOrderUseCase) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de compra
// @Description  La orden nace en estado pending con received_quantity = 0 en cada línea.
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseOrderRequest  true  "Proveedor y líneas"
// @Success      201   {object}  dto.PurchaseOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders [post]
func (h *PurchaseOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	po, err := h.uc.CreatePurchaseOrder(c.Context(), tenantCtx(c), in)
	if err != nil {
		return mapError(c, err, "ítem de la orden")
	}
	return c.Status(fiber.StatusCreated).JSON(toPurchaseOrderResponse(po))
}

// List godoc
// @Summary      Listar órdenes de compra
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtro por estado"
// @Param        limit   query  int     false  "Límite"   default(100)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {array}  dto.PurchaseOrderResponse
// @Router       /api/purchase-orders [get]
func (h *PurchaseOrderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	pos, err := h.uc.ListPurchaseOrders(c.Context(), GetCompanyID(c), c.Query("status"), page)
	if err != nil {
		return mapError(c, err, "órdenes")
	}
	out := make([]dto.PurchaseOrderResponse, 0, len(pos))
	for _, po := range pos {
		out = append(out, toPurchaseOrderResponse(po))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden de compra por ID
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id} [get]
func (h *PurchaseOrderHandler) GetByID(c *fiber.Ctx) error {
	po, err := h.uc.GetPurchaseOrder(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return mapError(c, err, "orden")
	}
	return c.JSON(toPurchaseOrderResponse(po))
}

// UpdateStatus godoc
// @Summary      Cambiar estado de una orden de compra
// @Description  Una orden received o cancelled ya no admite cambios (409).
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.UpdatePOStatusRequest  true  "Estado nuevo"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/status [patch]
func (h *PurchaseOrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdatePOStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.UpdateStatus(c.Context(), tenantCtx(c), c.Params("id"), in.Status); err != nil {
		return mapError(c, err, "orden")
	}
	return c.JSON(dto.MessageResponse{Message: "estado actualizado"})
}

// Receive godoc
// @Summary      Recibir una orden de compra
// @Description  Por cada línea recibida acumula la cantidad y registra un movimiento
// @Description  "in" referenciando la orden; al final la orden queda en received.
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.ReceivePurchaseOrderRequest  true  "Líneas recibidas"
// @Success      200   {object}  dto.PurchaseOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/receive [post]
func (h *PurchaseOrderHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceivePurchaseOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	po, err := h.uc.Receive(c.Context(), tenantCtx(c), c.Params("id"), in)
	if err != nil {
		return mapError(c, err, "orden")
	}
	return c.JSON(toPurchaseOrderResponse(po))
}

func toPurchaseOrderResponse(po *entity.PurchaseOrder) dto.PurchaseOrderResponse {
	items := make([]dto.PurchaseOrderItemResponse, 0, len(po.Items))
	for _, it := range po.Items {
		items = append(items, dto.PurchaseOrderItemResponse{
			ID:               it.ID,
			InventoryItemID:  it.InventoryItemID,
			Quantity:         it.Quantity,
			UnitCost:         it.UnitCost,
			TotalCost:        it.TotalCost,
			ReceivedQuantity: it.ReceivedQuantity,
			Notes:            it.Notes,
		})
	}
	return dto.PurchaseOrderResponse{
		ID:                   po.ID,
		PONumber:             po.PONumber,
		SupplierName:         po.SupplierName,
		SupplierContact:      po.SupplierContact,
		Status:               po.Status,
		OrderDate:            po.OrderDate,
		ExpectedDeliveryDate: po.ExpectedDeliveryDate,
		ReceivedDate:         po.ReceivedDate,
		TotalAmount:          po.TotalAmount,
		Items:                items,
		Notes:                po.Notes,
		CreatedBy:            po.CreatedBy,
		CreatedAt:            po.CreatedAt,
	}
}
