package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
)

const testSeller = "00000000-0000-0000-0000-0000000000aa"

// ledgerFixture backend en memoria con los casos de uso de inventario.
type ledgerFixture struct {
	store      *memory.Store
	products   *memory.ProductRepository
	sales      *memory.SaleRepository
	movements  *memory.StockMovementRepository
	txRunner   inventory.TxRunner
	saleUC     *inventory.SaleUseCase
	stockUC    *inventory.StockUseCase
	reconciler *inventory.Reconciler
}

func newFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	return newFixtureWithRunner(t, nil)
}

// newFixtureWithRunner permite decorar el TxRunner (inyección de fallos).
func newFixtureWithRunner(t *testing.T, wrap func(inventory.TxRunner) inventory.TxRunner) *ledgerFixture {
	t.Helper()
	store := memory.NewStore()
	f := &ledgerFixture{
		store:     store,
		products:  memory.NewProductRepository(store),
		sales:     memory.NewSaleRepository(store),
		movements: memory.NewStockMovementRepository(store),
		txRunner:  memory.NewTxRunner(store),
	}
	if wrap != nil {
		f.txRunner = wrap(f.txRunner)
	}
	log := zerolog.Nop()
	f.saleUC = inventory.NewSaleUseCase(f.txRunner, f.sales, nil, log)
	f.stockUC = inventory.NewStockUseCase(f.txRunner, nil, log)
	f.reconciler = inventory.NewReconciler(f.products, f.sales, f.movements, log)
	return f
}

// seedProduct crea el producto con su movimiento OPENING, igual que el alta del catálogo.
func (f *ledgerFixture) seedProduct(t *testing.T, name string, qty, reorder int, price, cost int64) *entity.Product {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()
	p := &entity.Product{
		ID:           uuid.NewString(),
		Name:         name,
		SKU:          "SKU-" + name,
		Quantity:     qty,
		ReorderLevel: reorder,
		UnitPrice:    decimal.NewFromInt(price),
		UnitCost:     decimal.NewFromInt(cost),
		Category:     "General",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, f.products.Create(ctx, p))
	require.NoError(t, f.movements.Create(ctx, &entity.StockMovement{
		ID:        uuid.NewString(),
		ProductID: p.ID,
		Reason:    entity.MovementReasonOpening,
		Delta:     qty,
		CreatedAt: now,
	}))
	return p
}

func (f *ledgerFixture) quantity(t *testing.T, id string) int {
	t.Helper()
	p, err := f.products.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Quantity
}

func (f *ledgerFixture) sell(ctx context.Context, productID string, qty int) (*entity.Sale, error) {
	return f.saleUC.RecordSale(ctx, inventory.RecordSaleInput{
		ProductID:     productID,
		Quantity:      qty,
		SalesPersonID: testSeller,
		PaymentMode:   entity.PaymentModeCash,
	})
}

func (f *ledgerFixture) requireConsistent(t *testing.T) {
	t.Helper()
	report, err := f.reconciler.Run(context.Background())
	require.NoError(t, err)
	require.Truef(t, report.Consistent(), "diferencias: %+v / %+v", report.Discrepancies, report.UnpairedSales)
}

// ── Inyección de fallos ─────────────────────────────────────────────────────

// faultyRunner intercepta el ProductRepository de cada transacción.
type faultyRunner struct {
	inner inventory.TxRunner
	err   error
}

func (r *faultyRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return r.inner.Run(ctx, func(p repository.ProductRepository, s repository.SaleRepository, m repository.StockMovementRepository) error {
		return fn(&failingAdjust{ProductRepository: p, err: r.err}, s, m)
	})
}

// failingAdjust falla AdjustQuantity después de que la venta ya se agregó al libro.
type failingAdjust struct {
	repository.ProductRepository
	err error
}

func (f *failingAdjust) AdjustQuantity(context.Context, string, int) (*entity.Product, error) {
	return nil, f.err
}
