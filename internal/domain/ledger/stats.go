// Package ledger contiene los servicios de dominio puros del libro de inventario:
// agregados de ingresos, gastos, utilidad y salud del stock.
// Ninguna función muta sus entradas ni accede a persistencia.
package ledger

import (
	"sort"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// UnknownLabel es el nombre que se muestra para referencias que ya no resuelven.
const UnknownLabel = "Unknown"

var hundred = decimal.NewFromInt(100)

// ProductSales agregado de ventas por producto.
type ProductSales struct {
	ProductID string
	Name      string
	Sales     int // número de ventas
	Units     int // unidades vendidas
	Revenue   decimal.Decimal
}

// CategoryTotal total de gastos de una categoría.
type CategoryTotal struct {
	Category string
	Amount   decimal.Decimal
}

// StockHealth separa el catálogo entre productos con stock bajo y adecuado.
type StockHealth struct {
	Low           []*entity.Product
	LowCount      int
	AdequateCount int
}

// TotalRevenue suma Total de todas las ventas.
func TotalRevenue(sales []*entity.Sale) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range sales {
		sum = sum.Add(s.Total)
	}
	return sum
}

// TotalExpenses suma Amount de todos los gastos.
func TotalExpenses(expenses []*entity.Expense) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range expenses {
		sum = sum.Add(e.Amount)
	}
	return sum
}

// Profit = ingresos - gastos.
func Profit(revenue, expenses decimal.Decimal) decimal.Decimal {
	return revenue.Sub(expenses)
}

// ProfitMargin devuelve la utilidad como porcentaje de los ingresos (2 decimales).
// Sin ingresos devuelve cero.
func ProfitMargin(revenue, profit decimal.Decimal) decimal.Decimal {
	if !revenue.IsPositive() {
		return decimal.Zero
	}
	return profit.Div(revenue).Mul(hundred).Round(2)
}

// IsLowStock: quantity <= reorderLevel (no estricto).
func IsLowStock(p *entity.Product) bool {
	return p.IsLowStock()
}

// LowStockCount cuenta los productos con stock bajo.
func LowStockCount(products []*entity.Product) int {
	n := 0
	for _, p := range products {
		if p.IsLowStock() {
			n++
		}
	}
	return n
}

// InventoryValue valora el stock al costo: Σ quantity * unitCost.
func InventoryValue(products []*entity.Product) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range products {
		sum = sum.Add(p.UnitCost.Mul(decimal.NewFromInt(int64(p.Quantity))))
	}
	return sum
}

// AverageOrderValue = ingresos / número de ventas; cero si no hay ventas.
func AverageOrderValue(revenue decimal.Decimal, totalSales int) decimal.Decimal {
	if totalSales <= 0 {
		return decimal.Zero
	}
	return revenue.Div(decimal.NewFromInt(int64(totalSales))).Round(2)
}

// AverageProductPrice promedio simple de UnitPrice del catálogo; cero si está vacío.
func AverageProductPrice(products []*entity.Product) decimal.Decimal {
	if len(products) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, p := range products {
		sum = sum.Add(p.UnitPrice)
	}
	return sum.Div(decimal.NewFromInt(int64(len(products)))).Round(2)
}

// SalesByProduct agrupa las ventas por producto. Cada producto del catálogo aparece
// (aunque no tenga ventas) en el orden recibido; las ventas de productos eliminados
// se agrupan por ID al final con nombre UnknownLabel.
func SalesByProduct(products []*entity.Product, sales []*entity.Sale) []ProductSales {
	rows := make([]ProductSales, 0, len(products))
	index := make(map[string]int, len(products))
	for _, p := range products {
		index[p.ID] = len(rows)
		rows = append(rows, ProductSales{ProductID: p.ID, Name: p.Name, Revenue: decimal.Zero})
	}

	var orphanIDs []string
	for _, s := range sales {
		i, ok := index[s.ProductID]
		if !ok {
			i = len(rows)
			index[s.ProductID] = i
			rows = append(rows, ProductSales{ProductID: s.ProductID, Name: UnknownLabel, Revenue: decimal.Zero})
			orphanIDs = append(orphanIDs, s.ProductID)
		}
		rows[i].Sales++
		rows[i].Units += s.Quantity
		rows[i].Revenue = rows[i].Revenue.Add(s.Total)
	}

	// Huérfanos en orden estable por ID para que el reporte sea determinista
	if len(orphanIDs) > 1 {
		orphans := rows[len(products):]
		sort.Slice(orphans, func(a, b int) bool { return orphans[a].ProductID < orphans[b].ProductID })
	}
	return rows
}

// ExpensesByCategory suma los gastos por categoría. Las categorías conocidas van en
// el orden de entity.ExpenseCategories; las etiquetas desconocidas se agregan al final
// en orden alfabético. Solo se incluyen categorías con monto mayor que cero.
func ExpensesByCategory(expenses []*entity.Expense) []CategoryTotal {
	totals := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		totals[e.Category] = totals[e.Category].Add(e.Amount)
	}

	out := make([]CategoryTotal, 0, len(totals))
	known := make(map[string]bool, len(entity.ExpenseCategories))
	for _, c := range entity.ExpenseCategories {
		known[c] = true
		if amount, ok := totals[c]; ok && amount.IsPositive() {
			out = append(out, CategoryTotal{Category: c, Amount: amount})
		}
	}

	var extra []string
	for c, amount := range totals {
		if !known[c] && amount.IsPositive() {
			extra = append(extra, c)
		}
	}
	sort.Strings(extra)
	for _, c := range extra {
		out = append(out, CategoryTotal{Category: c, Amount: totals[c]})
	}
	return out
}

// ComputeStockHealth clasifica el catálogo en stock bajo y adecuado.
func ComputeStockHealth(products []*entity.Product) StockHealth {
	h := StockHealth{Low: make([]*entity.Product, 0)}
	for _, p := range products {
		if p.IsLowStock() {
			h.Low = append(h.Low, p)
			h.LowCount++
			continue
		}
		h.AdequateCount++
	}
	return h
}
