package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// AddExpenseRequest entrada de POST /api/expenses.
type AddExpenseRequest struct {
	Description string          `json:"description" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category" validate:"required"`
}

// ExpenseResponse salida de un gasto.
type ExpenseResponse struct {
	ID            string          `json:"id"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	Timestamp     time.Time       `json:"timestamp"`
	CreatedBy     string          `json:"created_by"`
	CreatedByName string          `json:"created_by_name,omitempty"`
}

// ExpenseListResponse lista de gastos con su total.
type ExpenseListResponse struct {
	Items []ExpenseResponse `json:"items"`
	Total decimal.Decimal   `json:"total"`
}

// ToExpenseResponse mapea el gasto con el nombre de quien lo registró.
func ToExpenseResponse(e *entity.Expense, createdByName string) ExpenseResponse {
	return ExpenseResponse{
		ID:            e.ID,
		Description:   e.Description,
		Amount:        e.Amount,
		Category:      e.Category,
		Timestamp:     e.Timestamp,
		CreatedBy:     e.CreatedBy,
		CreatedByName: createdByName,
	}
}
