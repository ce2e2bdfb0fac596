package analytics

import (
	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/ledger"
)

func namesByProduct(products []*entity.Product) map[string]string {
	m := make(map[string]string, len(products))
	for _, p := range products {
		m[p.ID] = p.Name
	}
	return m
}

func namesByUser(users []*entity.User) map[string]string {
	m := make(map[string]string, len(users))
	for _, u := range users {
		m[u.ID] = u.Name
	}
	return m
}

// nameOrUnknown devuelve el nombre de id o "Unknown" si la referencia ya no resuelve.
func nameOrUnknown(names map[string]string, id string) string {
	if n, ok := names[id]; ok {
		return n
	}
	return ledger.UnknownLabel
}

func enrichSales(sales []*entity.Sale, products, users map[string]string) []dto.SaleResponse {
	out := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, dto.ToSaleResponse(s, nameOrUnknown(products, s.ProductID), nameOrUnknown(users, s.SalesPersonID)))
	}
	return out
}

func enrichExpenses(expenses []*entity.Expense, users map[string]string) []dto.ExpenseResponse {
	out := make([]dto.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, dto.ToExpenseResponse(e, nameOrUnknown(users, e.CreatedBy)))
	}
	return out
}
