package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// ExpenseRepository implementa repository.ExpenseRepository. Los gastos no participan
// en transacciones de stock: cada operación es atómica bajo s.mu.
type ExpenseRepository struct {
	store *Store
}

// NewExpenseRepository crea el repositorio.
func NewExpenseRepository(store *Store) *ExpenseRepository {
	return &ExpenseRepository{store: store}
}

func (r *ExpenseRepository) Append(ctx context.Context, e *entity.Expense) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.expenses[e.ID]; exists {
		return domain.ErrDuplicate
	}
	s.expenses[e.ID] = *e
	s.expenseSeq = append(s.expenseSeq, e.ID)
	return nil
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id string) (*entity.Expense, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.expenses[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r *ExpenseRepository) Remove(ctx context.Context, id string) (*entity.Expense, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.expenses[id]
	if !ok {
		return nil, nil
	}
	delete(s.expenses, id)
	s.expenseSeq = removeID(s.expenseSeq, id)
	return &e, nil
}

// List devuelve gastos filtrados por Timestamp descendente.
func (r *ExpenseRepository) List(ctx context.Context, f repository.ExpenseFilter) ([]*entity.Expense, error) {
	s := r.store
	s.mu.RLock()
	out := make([]*entity.Expense, 0, len(s.expenseSeq))
	for _, id := range s.expenseSeq {
		e := s.expenses[id]
		if f.Category != "" && e.Category != f.Category {
			continue
		}
		if f.From != nil && e.Timestamp.Before(*f.From) {
			continue
		}
		if f.To != nil && e.Timestamp.After(*f.To) {
			continue
		}
		out = append(out, &e)
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID > out[j].ID
	})
	return page(out, f.Offset, f.Limit), nil
}

var _ repository.ExpenseRepository = (*ExpenseRepository)(nil)
