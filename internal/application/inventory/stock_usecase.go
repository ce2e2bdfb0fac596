package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// StockUseCase ajustes manuales de stock (reposición o merma) fuera del flujo de ventas.
type StockUseCase struct {
	txRunner TxRunner
	cache    CacheInvalidator
	log      zerolog.Logger
	now      func() time.Time
}

// NewStockUseCase construye el caso de uso. cache puede ser nil.
func NewStockUseCase(txRunner TxRunner, cache CacheInvalidator, log zerolog.Logger) *StockUseCase {
	return &StockUseCase{txRunner: txRunner, cache: cache, log: log, now: time.Now}
}

// AdjustStockInput entrada para un ajuste de stock.
type AdjustStockInput struct {
	ProductID string
	Delta     int // positivo reposición, negativo merma
	Note      string
	ActorID   string
}

// AdjustStock aplica delta al stock y registra un movimiento ADJUSTMENT en la misma transacción.
// Una merma mayor que el stock disponible devuelve ErrInsufficientStock; nunca se recorta a cero.
func (uc *StockUseCase) AdjustStock(ctx context.Context, input AdjustStockInput) (*entity.Product, error) {
	if input.Delta == 0 {
		return nil, domain.ErrInvalidQuantity
	}

	var updated *entity.Product
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.SaleRepository,
		movRepo repository.StockMovementRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		if product.Quantity+input.Delta < 0 {
			return domain.ErrInsufficientStock
		}
		p, err := productRepo.AdjustQuantity(ctx, product.ID, input.Delta)
		if err != nil {
			return err
		}
		mov := &entity.StockMovement{
			ID:        newID(),
			ProductID: product.ID,
			Reason:    entity.MovementReasonAdjustment,
			Delta:     input.Delta,
			Note:      strings.TrimSpace(input.Note),
			CreatedAt: uc.now().UTC(),
			CreatedBy: input.ActorID,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrWouldGoNegative) {
			uc.log.Error().Err(err).Str("product_id", input.ProductID).Msg("inconsistencia de stock en ajuste")
		}
		return nil, err
	}

	invalidateCache(ctx, uc.cache, uc.log)
	uc.log.Info().
		Str("product_id", updated.ID).
		Int("delta", input.Delta).
		Int("quantity", updated.Quantity).
		Msg("stock ajustado")
	return updated, nil
}
