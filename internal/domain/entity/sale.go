package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Medios de pago aceptados en una venta.
const (
	PaymentModePOS      = "POS"
	PaymentModeTransfer = "transfer"
	PaymentModeCash     = "cash"
)

// IsValidPaymentMode indica si mode es uno de los medios de pago conocidos.
func IsValidPaymentMode(mode string) bool {
	switch mode {
	case PaymentModePOS, PaymentModeTransfer, PaymentModeCash:
		return true
	}
	return false
}

// Sale representa una venta registrada en el libro. Es inmutable: solo se elimina por reverso.
// UnitPriceAtSale es una foto del precio del producto al momento de la venta.
type Sale struct {
	ID              string // UUIDv7, ordenable por tiempo
	ProductID       string // referencia débil a Product
	Quantity        int
	UnitPriceAtSale decimal.Decimal
	Total           decimal.Decimal // Quantity * UnitPriceAtSale
	Timestamp       time.Time
	SalesPersonID   string // referencia débil a User
	PaymentMode     string // POS, transfer, cash
}
