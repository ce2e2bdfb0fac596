package memory

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// StockMovementRepository implementa repository.StockMovementRepository (append-only).
type StockMovementRepository struct {
	store *Store
	tx    *memTx
}

// NewStockMovementRepository crea el repositorio fuera de transacción.
func NewStockMovementRepository(store *Store) *StockMovementRepository {
	return &StockMovementRepository{store: store}
}

func (r *StockMovementRepository) do(fn func(tx *memTx) error) error {
	if r.tx != nil {
		return fn(r.tx)
	}
	tx := r.store.begin()
	if err := fn(tx); err != nil {
		tx.rollback()
		return err
	}
	return tx.commit()
}

// Create agrega un movimiento al diario.
func (r *StockMovementRepository) Create(ctx context.Context, m *entity.StockMovement) error {
	return r.do(func(tx *memTx) error {
		tx.newMovements = append(tx.newMovements, *m)
		return nil
	})
}

// ListByProduct devuelve los movimientos de un producto en orden de registro.
func (r *StockMovementRepository) ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.do(func(tx *memTx) error {
		all := tx.movementsView()
		out = make([]*entity.StockMovement, 0)
		for i := range all {
			if all[i].ProductID == productID {
				out = append(out, &all[i])
			}
		}
		return nil
	})
	return out, err
}

// SumByProduct devuelve Σ Delta por producto.
func (r *StockMovementRepository) SumByProduct(ctx context.Context) (map[string]int, error) {
	sums := make(map[string]int)
	err := r.do(func(tx *memTx) error {
		for _, m := range tx.movementsView() {
			sums[m.ProductID] += m.Delta
		}
		return nil
	})
	return sums, err
}

// SaleBalances devuelve, por venta, SALE menos REVERSAL.
func (r *StockMovementRepository) SaleBalances(ctx context.Context) (map[string]int, error) {
	balances := make(map[string]int)
	err := r.do(func(tx *memTx) error {
		for _, m := range tx.movementsView() {
			if m.SaleID == "" {
				continue
			}
			switch m.Reason {
			case entity.MovementReasonSale:
				balances[m.SaleID]++
			case entity.MovementReasonReversal:
				balances[m.SaleID]--
			}
		}
		return nil
	})
	return balances, err
}

var _ repository.StockMovementRepository = (*StockMovementRepository)(nil)
