package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// RecordSaleRequest entrada de POST /api/sales. El vendedor es el usuario del token.
type RecordSaleRequest struct {
	ProductID   string `json:"product_id" validate:"required"`
	Quantity    int    `json:"quantity" validate:"min=1"`
	PaymentMode string `json:"payment_mode" validate:"required,oneof=POS transfer cash"`
}

// SaleResponse salida de una venta, enriquecida con los nombres de producto y vendedor
// ("Unknown" si la referencia ya no existe).
type SaleResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name,omitempty"`
	Quantity        int             `json:"quantity"`
	UnitPriceAtSale decimal.Decimal `json:"unit_price_at_sale"`
	Total           decimal.Decimal `json:"total"`
	Timestamp       time.Time       `json:"timestamp"`
	SalesPersonID   string          `json:"sales_person_id"`
	SalesPersonName string          `json:"sales_person_name,omitempty"`
	PaymentMode     string          `json:"payment_mode"`
}

// SalesOverviewDTO respuesta de GET /api/sales: ventas más sus totales.
type SalesOverviewDTO struct {
	Sales             []SaleResponse  `json:"sales"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalSales        int             `json:"total_sales"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
}

// ToSaleResponse mapea la venta con los nombres ya resueltos.
func ToSaleResponse(s *entity.Sale, productName, salesPersonName string) SaleResponse {
	return SaleResponse{
		ID:              s.ID,
		ProductID:       s.ProductID,
		ProductName:     productName,
		Quantity:        s.Quantity,
		UnitPriceAtSale: s.UnitPriceAtSale,
		Total:           s.Total,
		Timestamp:       s.Timestamp,
		SalesPersonID:   s.SalesPersonID,
		SalesPersonName: salesPersonName,
		PaymentMode:     s.PaymentMode,
	}
}
