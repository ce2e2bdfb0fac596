package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de gasto, en el orden en que se presentan en los reportes.
var ExpenseCategories = []string{
	"Supplies",
	"Utilities",
	"Rent",
	"Salaries",
	"Marketing",
	"Maintenance",
	"Other",
}

// Expense representa un gasto operativo. No tiene acoplamiento con el stock.
type Expense struct {
	ID          string
	Description string
	Amount      decimal.Decimal
	Category    string
	Timestamp   time.Time
	CreatedBy   string // referencia débil a User
}
