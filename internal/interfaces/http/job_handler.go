package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jobberpro/fieldservice-api/internal/application/dto"
	"github.com/jobberpro/fieldservice-api/internal/application/inventory"
	"github.com/jobberpro/fieldservice-api/internal/application/usecase"
	"github.com/jobberpro/fieldservice-api/internal/domain/entity"
)

// JobHandler maneja trabajos de campo y sus consumos de repuestos.
type JobHandler struct {
	jobs  *usecase.JobUseCase
	parts *inventory.PartsUseCase
}

// NewJobHandler construye el handler.
func NewJobHandler(jobs *usecase.JobUseCase, parts *inventory.PartsUseCase) *JobHandler {
	return &JobHandler{jobs: jobs, parts: parts}
}

// Create godoc
// @Summary      Crear trabajo
// @Tags         jobs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateJobRequest  true  "Datos del trabajo"
// @Success      201   {object}  dto.JobResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/jobs [post]
func (h *JobHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateJobRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.jobs.CreateJob(tenantCtx(c), in)
	if err != nil {
		return mapError(c, err, "cliente")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar trabajos
// @Tags         jobs
// @Security     Bearer
// @Produce      json
// @Param        status    query  string  false  "Filtro por estado"
// @Param        priority  query  string  false  "Filtro por prioridad"
// @Param        limit     query  int     false  "Límite"   default(100)
// @Param        offset    query  int     false  "Offset"   default(0)
// @Success      200       {array}  dto.JobResponse
// @Router       /api/jobs [get]
func (h *JobHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.jobs.ListJobs(GetCompanyID(c), c.Query("status"), c.Query("priority"), page)
	if err != nil {
		return mapError(c, err, "trabajos")
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener trabajo por ID
// @Tags         jobs
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del trabajo"
// @Success      200  {object}  dto.JobResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/jobs/{id} [get]
func (h *JobHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.jobs.GetJob(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return mapError(c, err, "trabajo")
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de un trabajo
// @Tags         jobs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del trabajo"
// @Param        body  body  dto.UpdateJobStatusRequest  true  "status + nota opcional"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/jobs/{id}/status [patch]
func (h *JobHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateJobStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.jobs.UpdateStatus(tenantCtx(c), c.Params("id"), in); err != nil {
		return mapError(c, err, "trabajo")
	}
	return c.JSON(dto.MessageResponse{Message: "estado actualizado"})
}

// Delete godoc
// @Summary      Eliminar trabajo
// @Tags         jobs
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del trabajo"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/jobs/{id} [delete]
func (h *JobHandler) Delete(c *fiber.Ctx) error {
	if err := h.jobs.DeleteJob(tenantCtx(c), c.Params("id")); err != nil {
		return mapError(c, err, "trabajo")
	}
	return c.JSON(dto.MessageResponse{Message: "trabajo eliminado"})
}

// ConsumeParts godoc
// @Summary      Registrar consumo de repuestos en un trabajo
// @Description  Descuenta el stock del ítem con un movimiento "out" y registra el
// @Description  consumo facturable. Falla con 409 si el stock es insuficiente.
// @Tags         jobs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del trabajo"
// @Param        body  body  dto.ConsumePartsRequest  true  "item, cantidad, precio opcional"
// @Success      201   {object}  dto.PartUsageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/jobs/{id}/parts [post]
func (h *JobHandler) ConsumeParts(c *fiber.Ctx) error {
	var in dto.ConsumePartsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	in.JobID = c.Params("id")
	usage, err := h.parts.ConsumeParts(c.Context(), tenantCtx(c), in)
	if err != nil {
		return mapError(c, err, "trabajo o ítem")
	}
	return c.Status(fiber.StatusCreated).JSON(toPartUsageResponse(usage))
}

// ListParts godoc
// @Summary      Listar consumos de repuestos de un trabajo
// @Tags         jobs
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del trabajo"
// @Success      200  {array}  dto.PartUsageResponse
// @Router       /api/jobs/{id}/parts [get]
func (h *JobHandler) ListParts(c *fiber.Ctx) error {
	usages, err := h.parts.ListByJob(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return mapError(c, err, "consumos")
	}
	out := make([]dto.PartUsageResponse, 0, len(usages))
	for _, u := range usages {
		out = append(out, toPartUsageResponse(u))
	}
	return c.JSON(out)
}

func toPartUsageResponse(u *entity.JobPartUsage) dto.PartUsageResponse {
	return dto.PartUsageResponse{
		ID:              u.ID,
		JobID:           u.JobID,
		InventoryItemID: u.InventoryItemID,
		ItemName:        u.ItemName,
		ItemSKU:         u.ItemSKU,
		QuantityUsed:    u.QuantityUsed,
		UnitPrice:       u.UnitPrice,
		TotalCost:       u.TotalCost,
		Notes:           u.Notes,
		CreatedAt:       u.CreatedAt,
	}
}
