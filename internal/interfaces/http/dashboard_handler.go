package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/analytics"
)

// DashboardHandler expone los snapshots de lectura.
type DashboardHandler struct {
	uc *analytics.SnapshotUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.SnapshotUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Dashboard
// @Description  Productos, ventas enriquecidas, gastos y KPIs.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSnapshotDTO
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.GetDashboardSnapshot(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte financiero
// @Description  Ingresos, gastos, utilidad, valor del inventario y salud del stock.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReportSnapshotDTO
// @Router       /api/reports [get]
func (h *DashboardHandler) Report(c *fiber.Ctx) error {
	out, err := h.uc.GetReportSnapshot(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
