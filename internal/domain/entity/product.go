package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo con su stock actual.
// Quantity solo cambia vía el protocolo de mutación (ventas, reversos y ajustes de stock);
// las ediciones de catálogo nunca la tocan.
type Product struct {
	ID           string
	Name         string
	SKU          string // código único
	Quantity     int    // nunca negativo
	ReorderLevel int    // umbral de reorden (inclusive)
	UnitCost     decimal.Decimal
	UnitPrice    decimal.Decimal
	Category     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsLowStock indica si el producto está en o por debajo de su nivel de reorden.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.ReorderLevel
}
