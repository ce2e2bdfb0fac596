package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
)

type errorMapping struct {
	err     error
	status  int
	code    string
	message string
}

// Tabla de errores de dominio a respuesta HTTP. El orden importa: se usa la primera coincidencia.
var errorMappings = []errorMapping{
	{domain.ErrProductNotFound, fiber.StatusNotFound, "PRODUCT_NOT_FOUND", "producto no encontrado"},
	{domain.ErrSaleNotFound, fiber.StatusNotFound, "SALE_NOT_FOUND", "venta no encontrada"},
	{domain.ErrExpenseNotFound, fiber.StatusNotFound, "EXPENSE_NOT_FOUND", "gasto no encontrado"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND", "usuario no encontrado"},
	{domain.ErrInvalidQuantity, fiber.StatusBadRequest, "INVALID_QUANTITY", "la cantidad debe ser un entero positivo"},
	{domain.ErrInvalidAmount, fiber.StatusBadRequest, "INVALID_AMOUNT", "el monto debe ser mayor que cero"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION", "entrada inválida"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK", "stock insuficiente"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE", "el recurso ya existe"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS", "el email ya está registrado"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN", "rol sin permiso para esta operación"},
}

// writeError traduce un error de dominio al status y código HTTP correspondientes.
// Lo no mapeado responde 500 INTERNAL sin exponer el detalle.
func writeError(c *fiber.Ctx, err error) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: m.message})
		}
	}
	if errors.Is(err, domain.ErrWouldGoNegative) {
		log.Error().Err(err).Str("path", c.Path()).Msg("inconsistencia de stock")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "CONSISTENCY", Message: "inconsistencia de stock"})
	}
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
