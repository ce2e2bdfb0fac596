package inventory

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit. Garantiza la atomicidad del par
// (registro en el libro + ajuste de stock + fila del diario).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

// CacheInvalidator descarta los snapshots derivados tras una mutación confirmada.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}
