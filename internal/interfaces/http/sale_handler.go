package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/analytics"
	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// SaleHandler maneja el registro, reverso y listado de ventas.
type SaleHandler struct {
	saleUC     *inventory.SaleUseCase
	snapshotUC *analytics.SnapshotUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(saleUC *inventory.SaleUseCase, snapshotUC *analytics.SnapshotUseCase) *SaleHandler {
	return &SaleHandler{saleUC: saleUC, snapshotUC: snapshotUC}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Descuenta el stock y fija el precio unitario vigente. El vendedor es el usuario del token.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordSaleRequest  true  "Venta"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.RecordSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	sale, err := h.saleUC.RecordSale(c.UserContext(), inventory.RecordSaleInput{
		ProductID:     in.ProductID,
		Quantity:      in.Quantity,
		SalesPersonID: GetUserID(c),
		PaymentMode:   in.PaymentMode,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToSaleResponse(sale, "", ""))
}

// Reverse godoc
// @Summary      Reversar venta
// @Description  Elimina la venta y devuelve sus unidades al stock. Un segundo reverso responde 404.
// @Tags         sales
// @Security     Bearer
// @Param        id   path  string  true  "ID de la venta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [delete]
func (h *SaleHandler) Reverse(c *fiber.Ctx) error {
	if err := h.saleUC.ReverseSale(c.UserContext(), c.Params("id"), GetUserID(c)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Listar ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        from        query  string  false  "Desde (RFC3339)"
// @Param        to          query  string  false  "Hasta (RFC3339)"
// @Param        limit       query  int     false  "Límite"
// @Param        offset      query  int     false  "Offset"
// @Success      200  {object}  dto.SalesOverviewDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	from, okFrom := timeQuery(c, "from")
	to, okTo := timeQuery(c, "to")
	if !okFrom || !okTo {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "from/to deben ser RFC3339"})
	}
	page := pageQuery(c)
	out, err := h.snapshotUC.GetSalesOverview(c.UserContext(), repository.SaleFilter{
		ProductID: c.Query("product_id"),
		From:      from,
		To:        to,
		Limit:     page.Limit,
		Offset:    page.Offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
