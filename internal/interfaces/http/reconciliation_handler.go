package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
)

// ReconciliationHandler ejecuta el conciliador bajo demanda.
type ReconciliationHandler struct {
	reconciler *inventory.Reconciler
}

// NewReconciliationHandler construye el handler.
func NewReconciliationHandler(reconciler *inventory.Reconciler) *ReconciliationHandler {
	return &ReconciliationHandler{reconciler: reconciler}
}

// Run godoc
// @Summary      Conciliar stock contra el diario
// @Description  Solo detecta diferencias; no corrige nada.
// @Tags         reconciliation
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  inventory.ReconcileReport
// @Router       /api/reconciliation [get]
func (h *ReconciliationHandler) Run(c *fiber.Ctx) error {
	report, err := h.reconciler.Run(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(report)
}
