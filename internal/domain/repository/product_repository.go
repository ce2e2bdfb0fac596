package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

//go:generate mockgen -source=product_repository.go -destination=mock/product_repository_mock.go -package=mock

// ProductRepository define el puerto de persistencia del catálogo (DIP).
// GetByID y GetForUpdate devuelven (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate obtiene el producto y lo bloquea hasta que termine la transacción
	// (SELECT FOR UPDATE). Serializa las mutaciones de stock por producto.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	// Update modifica los datos de catálogo. No toca Quantity.
	Update(ctx context.Context, product *entity.Product) error
	// AdjustQuantity suma delta al stock y devuelve el producto resultante.
	// Devuelve domain.ErrProductNotFound o domain.ErrWouldGoNegative; nunca recorta a cero.
	AdjustQuantity(ctx context.Context, id string, delta int) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
