package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto. Quantity es el stock de apertura.
type CreateProductRequest struct {
	SKU          string          `json:"sku" validate:"required,min=1,max=100"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Quantity     int             `json:"quantity" validate:"min=0"`
	ReorderLevel int             `json:"reorder_level" validate:"min=0"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Category     string          `json:"category"`
}

// UpdateProductRequest entrada para editar un producto (sin Quantity: el stock solo
// cambia por ventas, reversos y ajustes).
type UpdateProductRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	SKU          *string          `json:"sku" validate:"omitempty,min=1,max=100"`
	ReorderLevel *int             `json:"reorder_level"`
	UnitCost     *decimal.Decimal `json:"unit_cost"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	Category     *string          `json:"category"`
}

// AdjustStockRequest entrada de POST /api/products/:id/adjustments.
type AdjustStockRequest struct {
	Delta int    `json:"delta"` // positivo reposición, negativo merma
	Note  string `json:"note"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Quantity     int             `json:"quantity"`
	ReorderLevel int             `json:"reorder_level"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Category     string          `json:"category"`
	LowStock     bool            `json:"low_stock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse lista de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}

// ToProductResponse mapea la entidad a su salida HTTP.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Quantity:     p.Quantity,
		ReorderLevel: p.ReorderLevel,
		UnitCost:     p.UnitCost,
		UnitPrice:    p.UnitPrice,
		Category:     p.Category,
		LowStock:     p.IsLowStock(),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ToProductResponses mapea una lista de entidades.
func ToProductResponses(products []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ToProductResponse(p))
	}
	return out
}
