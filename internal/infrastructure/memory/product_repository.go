package memory

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// ProductRepository implementa repository.ProductRepository. Sin tx, cada llamada es
// su propia transacción (autocommit).
type ProductRepository struct {
	store *Store
	tx    *memTx
}

// NewProductRepository crea el repositorio fuera de transacción.
func NewProductRepository(store *Store) *ProductRepository {
	return &ProductRepository{store: store}
}

func (r *ProductRepository) do(fn func(tx *memTx) error) error {
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

// Create persiste un producto nuevo. SKU duplicado devuelve domain.ErrDuplicate.
func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	return r.do(func(tx *memTx) error {
		if _, exists := tx.product(p.ID); exists {
			return domain.ErrDuplicate
		}
		for _, other := range tx.productsView() {
			if other.SKU == p.SKU {
				return domain.ErrDuplicate
			}
		}
		delete(tx.deleted, p.ID)
		tx.upserts[p.ID] = *p
		tx.created[p.ID] = true
		return nil
	})
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.do(func(tx *memTx) error {
		if p, ok := tx.product(id); ok {
			out = &p
		}
		return nil
	})
	return out, err
}

// GetForUpdate bloquea el producto hasta el fin de la transacción y lo devuelve.
// El lock se toma aunque el producto no exista, para serializar reversos huérfanos.
func (r *ProductRepository) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.do(func(tx *memTx) error {
		if err := tx.lock(ctx, id); err != nil {
			return err
		}
		if p, ok := tx.product(id); ok {
			out = &p
		}
		return nil
	})
	return out, err
}

// GetBySKU obtiene un producto por SKU; (nil, nil) si no existe.
func (r *ProductRepository) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	var out *entity.Product
	err := r.do(func(tx *memTx) error {
		for _, p := range tx.productsView() {
			if p.SKU == sku {
				out = &p
				return nil
			}
		}
		return nil
	})
	return out, err
}

// Update reemplaza los datos de catálogo conservando Quantity.
func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	return r.do(func(tx *memTx) error {
		if _, ok := tx.product(p.ID); !ok {
			return domain.ErrProductNotFound
		}
		for _, other := range tx.productsView() {
			if other.ID != p.ID && other.SKU == p.SKU {
				return domain.ErrDuplicate
			}
		}
		up := *p
		if prev, staged := tx.upserts[p.ID]; staged && tx.created[p.ID] {
			up.Quantity = prev.Quantity
		}
		tx.upserts[p.ID] = up
		return nil
	})
}

// AdjustQuantity suma delta al stock. Toma el lock del producto si la tx aún no lo tiene.
func (r *ProductRepository) AdjustQuantity(ctx context.Context, id string, delta int) (*entity.Product, error) {
	var out *entity.Product
	err := r.do(func(tx *memTx) error {
		if err := tx.lock(ctx, id); err != nil {
			return err
		}
		p, ok := tx.product(id)
		if !ok {
			return domain.ErrProductNotFound
		}
		if p.Quantity+delta < 0 {
			return domain.ErrWouldGoNegative
		}
		p.Quantity += delta
		tx.qty[id] = p.Quantity
		out = &p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List devuelve el catálogo ordenado por nombre.
func (r *ProductRepository) List(ctx context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.do(func(tx *memTx) error {
		view := tx.productsView()
		out = make([]*entity.Product, 0, len(view))
		for i := range view {
			out = append(out, &view[i])
		}
		return nil
	})
	return out, err
}

// Delete elimina el producto. Espera el lock para no cruzarse con una venta en curso.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	return r.do(func(tx *memTx) error {
		if err := tx.lock(ctx, id); err != nil {
			return err
		}
		if _, ok := tx.product(id); !ok {
			return domain.ErrProductNotFound
		}
		delete(tx.upserts, id)
		delete(tx.created, id)
		delete(tx.qty, id)
		tx.deleted[id] = true
		return nil
	})
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
