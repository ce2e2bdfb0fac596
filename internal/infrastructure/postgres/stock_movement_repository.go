package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo diario de stock sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento del diario.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, sale_id, reason, delta, note, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, nullable(m.SaleID), m.Reason, m.Delta, m.Note, m.CreatedAt, nullable(m.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// ListByProduct devuelve los movimientos de un producto en orden de registro.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, product_id, sale_id, reason, delta, note, created_at, created_by
		FROM stock_movements WHERE product_id = $1 ORDER BY seq`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.StockMovement, 0)
	for rows.Next() {
		var m entity.StockMovement
		var saleID, createdBy *string
		if err := rows.Scan(&m.ID, &m.ProductID, &saleID, &m.Reason, &m.Delta, &m.Note, &m.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		m.SaleID = deref(saleID)
		m.CreatedBy = deref(createdBy)
		list = append(list, &m)
	}
	return list, rows.Err()
}

// SumByProduct devuelve Σ delta por producto.
func (r *StockMovementRepo) SumByProduct(ctx context.Context) (map[string]int, error) {
	return r.groupCount(ctx, `SELECT product_id, COALESCE(SUM(delta), 0) FROM stock_movements GROUP BY product_id`)
}

// SaleBalances devuelve, por venta, movimientos SALE menos REVERSAL.
func (r *StockMovementRepo) SaleBalances(ctx context.Context) (map[string]int, error) {
	return r.groupCount(ctx, `
		SELECT sale_id, SUM(CASE reason WHEN 'SALE' THEN 1 WHEN 'REVERSAL' THEN -1 ELSE 0 END)
		FROM stock_movements WHERE sale_id IS NOT NULL GROUP BY sale_id`)
}

func (r *StockMovementRepo) groupCount(ctx context.Context, query string) (map[string]int, error) {
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("aggregate stock movements: %w", err)
	}
	defer rows.Close()
	out := make(map[string]int)
	for rows.Next() {
		var key string
		var n int64
		if err := rows.Scan(&key, &n); err != nil {
			return nil, fmt.Errorf("scan aggregate: %w", err)
		}
		out[key] = int(n)
	}
	return out, rows.Err()
}
