package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jobberpro/fieldservice-api/internal/application/analytics"
	"github.com/jobberpro/fieldservice-api/internal/application/dto"
	"github.com/jobberpro/fieldservice-api/internal/application/inventory"
	"github.com/jobberpro/fieldservice-api/internal/domain/entity"
)

// InventoryHandler maneja ítems, movimientos, alertas y reportes de inventario.
type InventoryHandler struct {
	items     *inventory.ItemUseCase
	movements *inventory.MovementUseCase
	alerts    *inventory.AlertUseCase
	reports   *analytics.InventoryAnalyticsUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	items *inventory.ItemUseCase,
	movements *inventory.MovementUseCase,
	alerts *inventory.AlertUseCase,
	reports *analytics.InventoryAnalyticsUseCase,
) *InventoryHandler {
	return &InventoryHandler{items: items, movements: movements, alerts: alerts, reports: reports}
}

// ── Ítems ─────────────────────────────────────────────────────────────────────

// CreateItem godoc
// @Summary      Crear ítem de inventario
// @Description  Sin SKU explícito se genera uno automático a partir de la
// @Description  categoría. Stock inicial > 0 registra el movimiento "in" fundacional.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "Datos del ítem"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/items [post]
func (h *InventoryHandler) CreateItem(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.items.CreateItem(c.Context(), tenantCtx(c), in)
	if err != nil {
		return mapError(c, err, "ítem")
	}
	return c.Status(fiber.StatusCreated).JSON(toItemResponse(item, nil))
}

// ListItems godoc
// @Summary      Listar ítems de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        category   query  string  false  "Filtro por categoría"
// @Param        search     query  string  false  "Busca en nombre, SKU y descripción"
// @Param        low_stock  query  bool    false  "Solo ítems en o bajo el mínimo"
// @Param        limit      query  int     false  "Límite"   default(100)
// @Param        offset     query  int     false  "Offset"   default(0)
// @Success      200        {object}  dto.ItemListResponse
// @Router       /api/inventory/items [get]
func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	var in dto.ItemListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	items, total, err := h.items.ListItems(c.Context(), GetCompanyID(c), in)
	if err != nil {
		return mapError(c, err, "ítems")
	}
	in.DefaultPage()
	out := dto.ItemListResponse{
		Items:  make([]dto.ItemResponse, 0, len(items)),
		Total:  total,
		Limit:  in.Limit,
		Offset: in.Offset,
	}
	for _, it := range items {
		out.Items = append(out.Items, toItemResponse(it, nil))
	}
	return c.JSON(out)
}

// GetItem godoc
// @Summary      Obtener ítem por ID con sus últimos movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ítem"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [get]
func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	item, movements, err := h.items.GetItem(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return mapError(c, err, "ítem")
	}
	return c.JSON(toItemResponse(item, movements))
}

// UpdateItem godoc
// @Summary      Actualizar ítem (campos descriptivos)
// @Description  La cantidad de stock no se actualiza por aquí; solo cambia vía movimientos.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del ítem"
// @Param        body  body  dto.UpdateItemRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [put]
func (h *InventoryHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.items.UpdateItem(c.Context(), tenantCtx(c), c.Params("id"), in)
	if err != nil {
		return mapError(c, err, "ítem")
	}
	return c.JSON(toItemResponse(item, nil))
}

// DeleteItem godoc
// @Summary      Dar de baja un ítem (soft-delete)
// @Description  Marca is_active=false; el ítem y su historial de movimientos se conservan.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ítem"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [delete]
func (h *InventoryHandler) DeleteItem(c *fiber.Ctx) error {
	if err := h.items.DeactivateItem(c.Context(), tenantCtx(c), c.Params("id")); err != nil {
		return mapError(c, err, "ítem")
	}
	return c.JSON(dto.MessageResponse{Message: "ítem dado de baja"})
}

// ── Movimientos ───────────────────────────────────────────────────────────────

// CreateMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  Tipos: in (suma), out (resta, falla con 409 si no alcanza el stock),
// @Description  adjustment (fija la cantidad absoluta).
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) CreateMovement(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	movement, err := h.movements.PostMovement(c.Context(), tenantCtx(c), in)
	if err != nil {
		return mapError(c, err, "ítem")
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(movement))
}

// ListMovements godoc
// @Summary      Listar movimientos de stock
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        item_id        query  string  false  "Filtro por ítem"
// @Param        movement_type  query  string  false  "Filtro por tipo (in, out, adjustment)"
// @Param        limit          query  int     false  "Límite"   default(100)
// @Param        offset         query  int     false  "Offset"   default(0)
// @Success      200            {object}  dto.MovementListResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var in dto.MovementListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	movements, total, err := h.movements.ListMovements(c.Context(), GetCompanyID(c), in)
	if err != nil {
		return mapError(c, err, "movimientos")
	}
	in.DefaultPage()
	out := dto.MovementListResponse{
		Movements: make([]dto.MovementResponse, 0, len(movements)),
		Total:     total,
		Limit:     in.Limit,
		Offset:    in.Offset,
	}
	for _, m := range movements {
		out.Movements = append(out.Movements, toMovementResponse(m))
	}
	return c.JSON(out)
}

// ── Alertas ───────────────────────────────────────────────────────────────────

// ListAlerts godoc
// @Summary      Listar alertas de stock bajo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        acknowledged  query  bool  false  "true = solo reconocidas, false = solo pendientes; omitir = todas"
// @Success      200           {array}  dto.AlertResponse
// @Router       /api/inventory/alerts [get]
func (h *InventoryHandler) ListAlerts(c *fiber.Ctx) error {
	var acknowledged *bool
	if raw := c.Query("acknowledged"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "acknowledged debe ser true o false"})
		}
		acknowledged = &v
	}
	alerts, err := h.alerts.ListAlerts(c.Context(), GetCompanyID(c), acknowledged)
	if err != nil {
		return mapError(c, err, "alertas")
	}
	out := make([]dto.AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, toAlertResponse(a))
	}
	return c.JSON(out)
}

// AcknowledgeAlert godoc
// @Summary      Reconocer alerta de stock bajo
// @Description  Una alerta reconocida habilita que una futura caída por el mínimo
// @Description  abra una alerta nueva para el mismo ítem.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la alerta"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/alerts/{id}/acknowledge [post]
func (h *InventoryHandler) AcknowledgeAlert(c *fiber.Ctx) error {
	if err := h.alerts.Acknowledge(c.Context(), tenantCtx(c), c.Params("id")); err != nil {
		return mapError(c, err, "alerta")
	}
	return c.JSON(dto.MessageResponse{Message: "alerta reconocida"})
}

// ── Reportes ──────────────────────────────────────────────────────────────────

// Analytics godoc
// @Summary      Reporte agregado de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryAnalyticsResponse
// @Router       /api/inventory/analytics [get]
func (h *InventoryHandler) Analytics(c *fiber.Ctx) error {
	out, err := h.reports.GetAnalytics(c.Context(), GetCompanyID(c))
	if err != nil {
		return mapError(c, err, "reporte")
	}
	return c.JSON(out)
}

// ── Mappers ───────────────────────────────────────────────────────────────────

func toItemResponse(i *entity.InventoryItem, movements []*entity.StockMovement) dto.ItemResponse {
	resp := dto.ItemResponse{
		ID:              i.ID,
		Name:            i.Name,
		Description:     i.Description,
		Category:        i.Category,
		SKU:             i.SKU,
		SupplierName:    i.SupplierName,
		SupplierContact: i.SupplierContact,
		UnitCost:        i.UnitCost,
		SellingPrice:    i.SellingPrice,
		StockQuantity:   i.StockQuantity,
		MinStockLevel:   i.MinStockLevel,
		MaxStockLevel:   i.MaxStockLevel,
		Location:        i.Location,
		Barcode:         i.Barcode,
		IsActive:        i.IsActive,
		Notes:           i.Notes,
		CreatedAt:       i.CreatedAt,
		UpdatedAt:       i.UpdatedAt,
	}
	for _, m := range movements {
		resp.RecentMovements = append(resp.RecentMovements, toMovementResponse(m))
	}
	return resp
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:               m.ID,
		InventoryItemID:  m.InventoryItemID,
		ItemName:         m.ItemName,
		ItemSKU:          m.ItemSKU,
		MovementType:     m.MovementType,
		Quantity:         m.Quantity,
		PreviousQuantity: m.PreviousQuantity,
		NewQuantity:      m.NewQuantity,
		ReferenceID:      m.ReferenceID,
		ReferenceType:    m.ReferenceType,
		UnitCost:         m.UnitCost,
		Notes:            m.Notes,
		CreatedBy:        m.CreatedBy,
		CreatedAt:        m.CreatedAt,
	}
}

func toAlertResponse(a *entity.LowStockAlert) dto.AlertResponse {
	return dto.AlertResponse{
		ID:              a.ID,
		InventoryItemID: a.InventoryItemID,
		ItemName:        a.ItemName,
		ItemSKU:         a.ItemSKU,
		CurrentQuantity: a.CurrentQuantity,
		MinStockLevel:   a.MinStockLevel,
		AlertDate:       a.AlertDate,
		IsAcknowledged:  a.IsAcknowledged,
		AcknowledgedBy:  a.AcknowledgedBy,
		AcknowledgedAt:  a.AcknowledgedAt,
	}
}
