package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// SaleUseCase registra y reversa ventas con bloqueo por producto (SELECT FOR UPDATE)
// y Commit/Rollback: la venta, el descuento de stock y el movimiento del diario se
// aplican juntos o no se aplica ninguno.
type SaleUseCase struct {
	txRunner TxRunner
	saleRepo repository.SaleRepository
	cache    CacheInvalidator
	log      zerolog.Logger
	now      func() time.Time
}

// NewSaleUseCase construye el caso de uso. cache puede ser nil.
func NewSaleUseCase(
	txRunner TxRunner,
	saleRepo repository.SaleRepository,
	cache CacheInvalidator,
	log zerolog.Logger,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner: txRunner,
		saleRepo: saleRepo,
		cache:    cache,
		log:      log,
		now:      time.Now,
	}
}

// RecordSaleInput entrada para registrar una venta.
type RecordSaleInput struct {
	ProductID     string
	Quantity      int
	SalesPersonID string
	PaymentMode   string
}

// RecordSale bloquea el producto, valida la cantidad contra el stock actual, fija el precio
// unitario vigente en la venta y descuenta el stock, todo en una transacción.
func (uc *SaleUseCase) RecordSale(ctx context.Context, input RecordSaleInput) (*entity.Sale, error) {
	var sale *entity.Sale

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		movRepo repository.StockMovementRepository,
	) error {
		// Bloquea el producto hasta el fin de la tx; el chequeo y el descuento quedan serializados
		product, err := productRepo.GetForUpdate(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		if input.Quantity < 1 {
			return domain.ErrInvalidQuantity
		}
		if input.SalesPersonID == "" || !entity.IsValidPaymentMode(input.PaymentMode) {
			return domain.ErrInvalidInput
		}
		if product.Quantity < input.Quantity {
			return domain.ErrInsufficientStock
		}

		now := uc.now().UTC()
		s := &entity.Sale{
			ID:              newID(),
			ProductID:       product.ID,
			Quantity:        input.Quantity,
			UnitPriceAtSale: product.UnitPrice,
			Total:           product.UnitPrice.Mul(decimal.NewFromInt(int64(input.Quantity))),
			Timestamp:       now,
			SalesPersonID:   input.SalesPersonID,
			PaymentMode:     input.PaymentMode,
		}
		if err := saleRepo.Append(ctx, s); err != nil {
			return err
		}
		if _, err := productRepo.AdjustQuantity(ctx, product.ID, -input.Quantity); err != nil {
			return err
		}
		mov := &entity.StockMovement{
			ID:        newID(),
			ProductID: product.ID,
			SaleID:    s.ID,
			Reason:    entity.MovementReasonSale,
			Delta:     -input.Quantity,
			CreatedAt: now,
			CreatedBy: input.SalesPersonID,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		sale = s
		return nil
	})
	if err != nil {
		uc.logConsistency(err, input.ProductID)
		return nil, err
	}

	uc.invalidate(ctx)
	uc.log.Info().
		Str("sale_id", sale.ID).
		Str("product_id", sale.ProductID).
		Int("quantity", sale.Quantity).
		Str("total", sale.Total.StringFixed(2)).
		Msg("venta registrada")
	return sale, nil
}

// ReverseSale elimina la venta y devuelve sus unidades al stock en una transacción.
// Si el producto ya no existe la venta se elimina igual y la restauración se omite.
// Reversar dos veces devuelve ErrSaleNotFound y restaura el stock una sola vez.
func (uc *SaleUseCase) ReverseSale(ctx context.Context, saleID, actorID string) error {
	sale, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return err
	}
	if sale == nil {
		return domain.ErrSaleNotFound
	}

	orphaned := false
	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		movRepo repository.StockMovementRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, sale.ProductID)
		if err != nil {
			return err
		}
		// Remove dentro de la tx: si otro reverso ganó la carrera, devuelve nil
		removed, err := saleRepo.Remove(ctx, saleID)
		if err != nil {
			return err
		}
		if removed == nil {
			return domain.ErrSaleNotFound
		}

		mov := &entity.StockMovement{
			ID:        newID(),
			ProductID: removed.ProductID,
			SaleID:    removed.ID,
			Reason:    entity.MovementReasonReversal,
			CreatedAt: uc.now().UTC(),
			CreatedBy: actorID,
		}
		if product == nil {
			// Producto eliminado: el diario registra el reverso sin restaurar unidades
			orphaned = true
			mov.Note = "producto eliminado: stock no restaurado"
			return movRepo.Create(ctx, mov)
		}
		if _, err := productRepo.AdjustQuantity(ctx, product.ID, removed.Quantity); err != nil {
			return err
		}
		mov.Delta = removed.Quantity
		return movRepo.Create(ctx, mov)
	})
	if err != nil {
		uc.logConsistency(err, sale.ProductID)
		return err
	}

	uc.invalidate(ctx)
	if orphaned {
		uc.log.Warn().
			Str("sale_id", sale.ID).
			Str("product_id", sale.ProductID).
			Int("quantity", sale.Quantity).
			Msg("venta reversada sobre producto eliminado; stock no restaurado")
		return nil
	}
	uc.log.Info().
		Str("sale_id", sale.ID).
		Str("product_id", sale.ProductID).
		Int("quantity", sale.Quantity).
		Msg("venta reversada")
	return nil
}

func (uc *SaleUseCase) invalidate(ctx context.Context) {
	invalidateCache(ctx, uc.cache, uc.log)
}

func (uc *SaleUseCase) logConsistency(err error, productID string) {
	if errors.Is(err, domain.ErrWouldGoNegative) {
		uc.log.Error().Err(err).Str("product_id", productID).Msg("inconsistencia de stock: ajuste rechazado tras validar existencias")
	}
}

// invalidateCache descarta los snapshots; un fallo del caché no revierte la mutación ya confirmada.
func invalidateCache(ctx context.Context, cache CacheInvalidator, log zerolog.Logger) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("no se pudo invalidar el caché de snapshots")
	}
}
