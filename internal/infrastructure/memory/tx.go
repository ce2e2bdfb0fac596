package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// memTx buffer de escrituras de una transacción. Las lecturas combinan el estado
// confirmado con lo pendiente; commit aplica todo o nada bajo s.mu.
type memTx struct {
	s    *Store
	held map[string]struct{}

	upserts map[string]entity.Product // Create/Update (Quantity solo cuenta si es Create)
	created map[string]bool
	qty     map[string]int // Quantity resultante tras AdjustQuantity
	deleted map[string]bool

	newSales     []entity.Sale
	removedSales map[string]bool

	newMovements []entity.StockMovement
}

func (s *Store) begin() *memTx {
	return &memTx{
		s:            s,
		held:         make(map[string]struct{}),
		upserts:      make(map[string]entity.Product),
		created:      make(map[string]bool),
		qty:          make(map[string]int),
		deleted:      make(map[string]bool),
		removedSales: make(map[string]bool),
	}
}

func (tx *memTx) lock(ctx context.Context, productID string) error {
	if _, ok := tx.held[productID]; ok {
		return nil
	}
	if err := tx.s.acquire(ctx, productID); err != nil {
		return err
	}
	tx.held[productID] = struct{}{}
	return nil
}

func (tx *memTx) releaseLocks() {
	for id := range tx.held {
		tx.s.release(id)
	}
	tx.held = map[string]struct{}{}
}

func (tx *memTx) rollback() {
	tx.releaseLocks()
}

// ── Vista de productos ───────────────────────────────────────────────────────

func (tx *memTx) product(id string) (entity.Product, bool) {
	if tx.deleted[id] {
		return entity.Product{}, false
	}
	tx.s.mu.RLock()
	p, ok := tx.s.products[id]
	tx.s.mu.RUnlock()

	if up, staged := tx.upserts[id]; staged {
		q := up.Quantity
		if ok && !tx.created[id] {
			q = p.Quantity
		}
		p, ok = up, true
		p.Quantity = q
	}
	if !ok {
		return entity.Product{}, false
	}
	if q, staged := tx.qty[id]; staged {
		p.Quantity = q
	}
	return p, true
}

// productsView devuelve el catálogo visible para la tx, ordenado por nombre e ID.
func (tx *memTx) productsView() []entity.Product {
	tx.s.mu.RLock()
	view := make(map[string]entity.Product, len(tx.s.products)+len(tx.upserts))
	for id, p := range tx.s.products {
		view[id] = p
	}
	tx.s.mu.RUnlock()

	for id := range tx.upserts {
		if p, ok := tx.product(id); ok {
			view[id] = p
		}
	}
	for id := range tx.qty {
		if p, ok := tx.product(id); ok {
			view[id] = p
		}
	}
	for id := range tx.deleted {
		delete(view, id)
	}

	out := make([]entity.Product, 0, len(view))
	for _, p := range view {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ── Vista de ventas ──────────────────────────────────────────────────────────

func (tx *memTx) sale(id string) (entity.Sale, bool) {
	if tx.removedSales[id] {
		return entity.Sale{}, false
	}
	for _, s := range tx.newSales {
		if s.ID == id {
			return s, true
		}
	}
	tx.s.mu.RLock()
	defer tx.s.mu.RUnlock()
	s, ok := tx.s.sales[id]
	return s, ok
}

// salesView devuelve las ventas visibles en orden de inserción.
func (tx *memTx) salesView() []entity.Sale {
	tx.s.mu.RLock()
	out := make([]entity.Sale, 0, len(tx.s.saleSeq)+len(tx.newSales))
	for _, id := range tx.s.saleSeq {
		if !tx.removedSales[id] {
			out = append(out, tx.s.sales[id])
		}
	}
	tx.s.mu.RUnlock()
	return append(out, tx.newSales...)
}

func (tx *memTx) movementsView() []entity.StockMovement {
	tx.s.mu.RLock()
	out := make([]entity.StockMovement, 0, len(tx.s.movements)+len(tx.newMovements))
	out = append(out, tx.s.movements...)
	tx.s.mu.RUnlock()
	return append(out, tx.newMovements...)
}

// ── Commit ───────────────────────────────────────────────────────────────────

func (tx *memTx) empty() bool {
	return len(tx.upserts) == 0 && len(tx.qty) == 0 && len(tx.deleted) == 0 &&
		len(tx.newSales) == 0 && len(tx.removedSales) == 0 && len(tx.newMovements) == 0
}

// commit valida los conflictos contra el estado confirmado y luego aplica todas las
// escrituras sin soltar s.mu: ningún lector ve la venta sin su ajuste de stock.
func (tx *memTx) commit() error {
	defer tx.releaseLocks()
	if tx.empty() {
		return nil
	}

	s := tx.s
	s.mu.Lock()
	defer s.mu.Unlock()

	// Validaciones: ninguna escritura se aplica si alguna falla
	for id := range tx.created {
		if _, exists := s.products[id]; exists {
			return domain.ErrDuplicate
		}
	}
	for id, up := range tx.upserts {
		for otherID, p := range s.products {
			if otherID != id && !tx.deleted[otherID] && p.SKU == up.SKU {
				return domain.ErrDuplicate
			}
		}
	}
	for id, q := range tx.qty {
		if q < 0 {
			return domain.ErrWouldGoNegative
		}
		if _, exists := s.products[id]; !exists && !tx.created[id] {
			return domain.ErrProductNotFound
		}
	}
	for id := range tx.removedSales {
		if _, exists := s.sales[id]; !exists {
			return domain.ErrSaleNotFound
		}
	}
	for _, sale := range tx.newSales {
		if _, exists := s.sales[sale.ID]; exists {
			return domain.ErrDuplicate
		}
	}

	for id := range tx.deleted {
		delete(s.products, id)
	}
	for id, up := range tx.upserts {
		if !tx.created[id] {
			cur, exists := s.products[id]
			if !exists {
				continue // eliminado entre la lectura y el commit
			}
			up.Quantity = cur.Quantity
		}
		s.products[id] = up
	}
	for id, q := range tx.qty {
		if tx.deleted[id] {
			continue
		}
		p := s.products[id]
		p.Quantity = q
		s.products[id] = p
	}

	for id := range tx.removedSales {
		delete(s.sales, id)
		s.saleSeq = removeID(s.saleSeq, id)
	}
	for _, sale := range tx.newSales {
		s.sales[sale.ID] = sale
		s.saleSeq = append(s.saleSeq, sale.ID)
	}
	s.movements = append(s.movements, tx.newMovements...)
	return nil
}
