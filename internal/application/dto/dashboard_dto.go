package dto

import "github.com/shopspring/decimal"

// DashboardSnapshotDTO respuesta de GET /api/dashboard.
type DashboardSnapshotDTO struct {
	Products []ProductResponse `json:"products"`
	Sales    []SaleResponse    `json:"sales"`
	Expenses []ExpenseResponse `json:"expenses"`
	Stats    DashboardStatsDTO `json:"stats"`
}

// DashboardStatsDTO KPIs del dashboard.
type DashboardStatsDTO struct {
	TotalProducts     int             `json:"total_products"`
	TotalSales        int             `json:"total_sales"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalExpenses     decimal.Decimal `json:"total_expenses"`
	Profit            decimal.Decimal `json:"profit"`
	LowStock          int             `json:"low_stock"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
}

// ReportSnapshotDTO respuesta de GET /api/reports.
type ReportSnapshotDTO struct {
	Revenue             decimal.Decimal    `json:"revenue"`
	Expenses            decimal.Decimal    `json:"expenses"`
	Profit              decimal.Decimal    `json:"profit"`
	ProfitMargin        decimal.Decimal    `json:"profit_margin"` // porcentaje
	InventoryValue      decimal.Decimal    `json:"inventory_value"`
	AverageProductPrice decimal.Decimal    `json:"average_product_price"`
	SalesByProduct      []ProductSalesDTO  `json:"sales_by_product"`
	ExpensesByCategory  []CategoryTotalDTO `json:"expenses_by_category"`
	StockHealth         StockHealthDTO     `json:"stock_health"`
}

// ProductSalesDTO ventas agregadas de un producto.
type ProductSalesDTO struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Sales     int             `json:"sales"`
	Units     int             `json:"units"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// CategoryTotalDTO total de gastos de una categoría.
type CategoryTotalDTO struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// StockHealthDTO productos en stock bajo y conteos.
type StockHealthDTO struct {
	LowStock      []ProductResponse `json:"low_stock"`
	LowCount      int               `json:"low_count"`
	AdequateCount int               `json:"adequate_count"`
}
