package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

//go:generate mockgen -source=sale_repository.go -destination=mock/sale_repository_mock.go -package=mock

// SaleFilter filtros para listar ventas. Campos vacíos no filtran; Limit 0 = sin límite.
type SaleFilter struct {
	ProductID string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// SaleRepository define el puerto del libro de ventas. Los registros son inmutables:
// solo se agregan o se eliminan completos (reverso).
type SaleRepository interface {
	Append(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// Remove elimina la venta y devuelve el registro previo, o (nil, nil) si no existe.
	Remove(ctx context.Context, id string) (*entity.Sale, error)
	// List devuelve ventas por Timestamp descendente; el orden de almacenamiento es el de inserción.
	List(ctx context.Context, filter SaleFilter) ([]*entity.Sale, error)
}
