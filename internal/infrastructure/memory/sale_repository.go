package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// SaleRepository implementa repository.SaleRepository.
type SaleRepository struct {
	store *Store
	tx    *memTx
}

// NewSaleRepository crea el repositorio fuera de transacción.
func NewSaleRepository(store *Store) *SaleRepository {
	return &SaleRepository{store: store}
}

func (r *SaleRepository) do(fn func(tx *memTx) error) error {
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

// Append agrega la venta al libro.
func (r *SaleRepository) Append(ctx context.Context, sale *entity.Sale) error {
	return r.do(func(tx *memTx) error {
		if _, exists := tx.sale(sale.ID); exists {
			return domain.ErrDuplicate
		}
		tx.newSales = append(tx.newSales, *sale)
		return nil
	})
}

// GetByID obtiene una venta; (nil, nil) si no existe.
func (r *SaleRepository) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.do(func(tx *memTx) error {
		if s, ok := tx.sale(id); ok {
			out = &s
		}
		return nil
	})
	return out, err
}

// Remove elimina la venta y devuelve el registro previo, o (nil, nil) si no existe.
func (r *SaleRepository) Remove(ctx context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.do(func(tx *memTx) error {
		for i, s := range tx.newSales {
			if s.ID == id {
				tx.newSales = append(tx.newSales[:i:i], tx.newSales[i+1:]...)
				out = &s
				return nil
			}
		}
		s, ok := tx.sale(id)
		if !ok {
			return nil
		}
		tx.removedSales[id] = true
		out = &s
		return nil
	})
	return out, err
}

// List devuelve las ventas filtradas por Timestamp descendente (empates por ID descendente).
func (r *SaleRepository) List(ctx context.Context, filter repository.SaleFilter) ([]*entity.Sale, error) {
	var out []*entity.Sale
	err := r.do(func(tx *memTx) error {
		out = filterSales(tx.salesView(), filter)
		return nil
	})
	return out, err
}

func filterSales(all []entity.Sale, f repository.SaleFilter) []*entity.Sale {
	out := make([]*entity.Sale, 0, len(all))
	for i := range all {
		s := &all[i]
		if f.ProductID != "" && s.ProductID != f.ProductID {
			continue
		}
		if f.From != nil && s.Timestamp.Before(*f.From) {
			continue
		}
		if f.To != nil && s.Timestamp.After(*f.To) {
			continue
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID > out[j].ID
	})
	return page(out, f.Offset, f.Limit)
}

// page aplica Offset/Limit (Limit 0 = sin límite).
func page[T any](items []T, offset, limit int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return items[:0]
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

var _ repository.SaleRepository = (*SaleRepository)(nil)
