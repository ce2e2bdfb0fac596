package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD del catálogo. Quantity solo se fija al crear
// (movimiento OPENING); después cambia únicamente vía ventas, reversos y ajustes.
type ProductUseCase struct {
	repo     repository.ProductRepository
	txRunner inventory.TxRunner
	cache    inventory.CacheInvalidator
	log      zerolog.Logger
}

// NewProductUseCase construye el caso de uso. cache puede ser nil.
func NewProductUseCase(
	repo repository.ProductRepository,
	txRunner inventory.TxRunner,
	cache inventory.CacheInvalidator,
	log zerolog.Logger,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, txRunner: txRunner, cache: cache, log: log}
}

// Create crea un producto y registra su stock de apertura en el diario, en una transacción.
func (uc *ProductUseCase) Create(ctx context.Context, actorID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.SKU = strings.TrimSpace(in.SKU)
	in.Name = strings.TrimSpace(in.Name)
	if in.SKU == "" || in.Name == "" || in.Quantity < 0 || in.ReorderLevel < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitCost.IsNegative() || in.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	product := &entity.Product{
		ID:           uuid.New().String(),
		Name:         in.Name,
		SKU:          in.SKU,
		Quantity:     in.Quantity,
		ReorderLevel: in.ReorderLevel,
		UnitCost:     in.UnitCost,
		UnitPrice:    in.UnitPrice,
		Category:     strings.TrimSpace(in.Category),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.SaleRepository,
		movRepo repository.StockMovementRepository,
	) error {
		existing, err := productRepo.GetBySKU(ctx, product.SKU)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		return movRepo.Create(ctx, &entity.StockMovement{
			ID:        uuid.Must(uuid.NewV7()).String(),
			ProductID: product.ID,
			Reason:    entity.MovementReasonOpening,
			Delta:     product.Quantity,
			CreatedAt: now,
			CreatedBy: actorID,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.invalidate(ctx)
	uc.log.Info().Str("product_id", product.ID).Str("sku", product.SKU).Int("quantity", product.Quantity).Msg("producto creado")
	resp := dto.ToProductResponse(product)
	return &resp, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	resp := dto.ToProductResponse(product)
	return &resp, nil
}

// Update edita los datos de catálogo. No permite modificar Quantity. Un cambio de precio
// no afecta ventas ya registradas: cada venta guarda su propio precio.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = name
	}
	if in.SKU != nil {
		sku := strings.TrimSpace(*in.SKU)
		if sku == "" {
			return nil, domain.ErrInvalidInput
		}
		if sku != product.SKU {
			existing, err := uc.repo.GetBySKU(ctx, sku)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, domain.ErrDuplicate
			}
		}
		product.SKU = sku
	}
	if in.ReorderLevel != nil {
		if *in.ReorderLevel < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.ReorderLevel = *in.ReorderLevel
	}
	if in.UnitCost != nil {
		if err := nonNegative(*in.UnitCost); err != nil {
			return nil, err
		}
		product.UnitCost = *in.UnitCost
	}
	if in.UnitPrice != nil {
		if err := nonNegative(*in.UnitPrice); err != nil {
			return nil, err
		}
		product.UnitPrice = *in.UnitPrice
	}
	if in.Category != nil {
		product.Category = strings.TrimSpace(*in.Category)
	}
	product.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	uc.invalidate(ctx)
	// Releer: Update no escribe Quantity y la copia local puede estar desfasada
	fresh, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if fresh == nil {
		return nil, domain.ErrProductNotFound
	}
	resp := dto.ToProductResponse(fresh)
	return &resp, nil
}

// List lista el catálogo completo.
func (uc *ProductUseCase) List(ctx context.Context) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{Items: dto.ToProductResponses(list), Total: len(list)}, nil
}

// Delete elimina un producto. Las ventas que lo referencian se conservan y se
// muestran como "Unknown".
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx)
	uc.log.Info().Str("product_id", id).Str("sku", product.SKU).Msg("producto eliminado")
	return nil
}

func (uc *ProductUseCase) invalidate(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo invalidar el caché de snapshots")
	}
}

func nonNegative(d decimal.Decimal) error {
	if d.IsNegative() {
		return domain.ErrInvalidInput
	}
	return nil
}
