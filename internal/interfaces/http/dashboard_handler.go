package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jobberpro/fieldservice-api/internal/application/analytics"
)

// DashboardHandler maneja el resumen operativo de la empresa.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Get godoc
// @Summary      Dashboard de la empresa
// @Description  Totales de trabajos y clientes, trabajos agendados hoy, ingresos del
// @Description  mes, tasa de completitud y últimos trabajos con nombre de cliente.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetDashboard(c.Context(), GetCompanyID(c))
	if err != nil {
		return mapError(c, err, "dashboard")
	}
	return c.JSON(out)
}
