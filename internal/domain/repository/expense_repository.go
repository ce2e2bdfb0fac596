package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

//go:generate mockgen -source=expense_repository.go -destination=mock/expense_repository_mock.go -package=mock

// ExpenseFilter filtros para listar gastos.
type ExpenseFilter struct {
	Category string
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}

// ExpenseRepository define el puerto del libro de gastos.
type ExpenseRepository interface {
	Append(ctx context.Context, expense *entity.Expense) error
	GetByID(ctx context.Context, id string) (*entity.Expense, error)
	Remove(ctx context.Context, id string) (*entity.Expense, error)
	List(ctx context.Context, filter ExpenseFilter) ([]*entity.Expense, error)
}
