package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

//go:generate mockgen -source=stock_movement_repository.go -destination=mock/stock_movement_repository_mock.go -package=mock

// StockMovementRepository define el puerto del diario de stock (append-only).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error)
	// SumByProduct devuelve la suma de Delta agrupada por producto.
	SumByProduct(ctx context.Context) (map[string]int, error)
	// SaleBalances devuelve, por venta, movimientos SALE menos REVERSAL (1 = venta vigente, 0 = reversada).
	SaleBalances(ctx context.Context) (map[string]int, error)
}
