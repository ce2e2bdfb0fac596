package entity

import "time"

// Motivos de movimiento en el diario de stock.
const (
	MovementReasonOpening    = "OPENING"    // cantidad inicial al crear el producto
	MovementReasonSale       = "SALE"       // salida por venta
	MovementReasonReversal   = "REVERSAL"   // devolución por reverso de venta
	MovementReasonAdjustment = "ADJUSTMENT" // reposición o merma manual
)

// StockMovement es una fila del diario de stock. Se escribe en la misma transacción que
// cada cambio de Quantity, de modo que Product.Quantity == suma de Delta por producto.
type StockMovement struct {
	ID        string
	ProductID string
	SaleID    string // vacío salvo en SALE y REVERSAL
	Reason    string
	Delta     int // positivo entrada, negativo salida
	Note      string
	CreatedAt time.Time
	CreatedBy string
}
