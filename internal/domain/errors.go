package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrProductNotFound    = errors.New("producto no encontrado")
	ErrSaleNotFound       = errors.New("venta no encontrada")
	ErrExpenseNotFound    = errors.New("gasto no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidQuantity    = errors.New("la cantidad debe ser un entero positivo")
	ErrInvalidAmount      = errors.New("el monto debe ser mayor que cero")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrForbidden          = errors.New("rol sin permiso para esta operación")
	ErrInsufficientStock  = errors.New("stock insuficiente")

	// ErrWouldGoNegative lo devuelve AdjustQuantity cuando el delta dejaría el stock
	// por debajo de cero. Si InsufficientStock se valida antes, es inalcanzable:
	// su aparición indica un bug de consistencia, no un error del usuario.
	ErrWouldGoNegative = errors.New("el ajuste dejaría el stock en negativo")
)
