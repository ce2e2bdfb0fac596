package analytics_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/analytics"
	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/application/usecase"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/ledger"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
)

// versionedCache caché en memoria con la misma semántica de versión que el de Redis.
type versionedCache struct {
	mu      sync.Mutex
	version int64
	entries map[string]cacheEntry
	sets    int
	getErr  error
}

type cacheEntry struct {
	version int64
	value   []byte
}

func newVersionedCache() *versionedCache {
	return &versionedCache{entries: make(map[string]cacheEntry)}
}

func (c *versionedCache) Get(_ context.Context, key string) ([]byte, int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, 0, false, c.getErr
	}
	e, ok := c.entries[key]
	if !ok || e.version != c.version {
		return nil, c.version, false, nil
	}
	return e.value, c.version, true, nil
}

func (c *versionedCache) Set(_ context.Context, key string, version int64, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	if version != c.version {
		return nil // snapshot calculado antes de una invalidación
	}
	c.entries[key] = cacheEntry{version: version, value: value}
	return nil
}

func (c *versionedCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.version++
	return nil
}

type fixture struct {
	store      *memory.Store
	cache      *versionedCache
	products   *usecase.ProductUseCase
	sales      *inventory.SaleUseCase
	expenses   *usecase.ExpenseUseCase
	users      *usecase.UserUseCase
	snapshots  *analytics.SnapshotUseCase
	productIDs map[string]string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	cache := newVersionedCache()
	log := zerolog.Nop()
	productRepo := memory.NewProductRepository(store)
	saleRepo := memory.NewSaleRepository(store)
	expenseRepo := memory.NewExpenseRepository(store)
	userRepo := memory.NewUserRepository(store)
	txRunner := memory.NewTxRunner(store)

	f := &fixture{
		store:      store,
		cache:      cache,
		products:   usecase.NewProductUseCase(productRepo, txRunner, cache, log),
		sales:      inventory.NewSaleUseCase(txRunner, saleRepo, cache, log),
		expenses:   usecase.NewExpenseUseCase(expenseRepo, userRepo, cache, log),
		users:      usecase.NewUserUseCase(userRepo, cache, log),
		snapshots:  analytics.NewSnapshotUseCase(productRepo, saleRepo, expenseRepo, userRepo, cache, log),
		productIDs: make(map[string]string),
	}

	ctx := context.Background()
	require.NoError(t, userRepo.Create(ctx, &entity.User{ID: "u1", Email: "ana@example.com", Name: "Ana", Role: entity.RoleSalesperson, CreatedAt: time.Now()}))
	for _, p := range []dto.CreateProductRequest{
		{SKU: "LAP", Name: "Laptop", Quantity: 15, ReorderLevel: 5, UnitPrice: decimal.NewFromInt(1200), UnitCost: decimal.NewFromInt(800)},
		{SKU: "MOU", Name: "Mouse", Quantity: 50, ReorderLevel: 20, UnitPrice: decimal.NewFromInt(25), UnitCost: decimal.NewFromInt(10)},
		{SKU: "KEY", Name: "Keyboard", Quantity: 3, ReorderLevel: 10, UnitPrice: decimal.NewFromInt(75), UnitCost: decimal.NewFromInt(40)},
	} {
		out, err := f.products.Create(ctx, "u1", p)
		require.NoError(t, err)
		f.productIDs[p.Name] = out.ID
	}
	return f
}

func (f *fixture) sell(t *testing.T, name string, qty int, seller string) *entity.Sale {
	t.Helper()
	s, err := f.sales.RecordSale(context.Background(), inventory.RecordSaleInput{
		ProductID: f.productIDs[name], Quantity: qty, SalesPersonID: seller, PaymentMode: entity.PaymentModePOS,
	})
	require.NoError(t, err)
	return s
}

func TestDashboard_KPIsYNombres(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.sell(t, "Laptop", 2, "u1")
	f.sell(t, "Mouse", 4, "borrado")
	_, err := f.expenses.AddExpense(ctx, usecase.AddExpenseInput{Description: "Alquiler", Amount: decimal.NewFromInt(1000), Category: "Rent", CreatedBy: "u1"})
	require.NoError(t, err)

	snap, err := f.snapshots.GetDashboardSnapshot(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, snap.Stats.TotalProducts)
	assert.Equal(t, 2, snap.Stats.TotalSales)
	assert.True(t, decimal.NewFromInt(2500).Equal(snap.Stats.TotalRevenue))
	assert.True(t, decimal.NewFromInt(1000).Equal(snap.Stats.TotalExpenses))
	assert.True(t, decimal.NewFromInt(1500).Equal(snap.Stats.Profit))
	assert.True(t, decimal.NewFromInt(1250).Equal(snap.Stats.AverageOrderValue))
	assert.Equal(t, 1, snap.Stats.LowStock, "solo Keyboard (3 <= 10)")

	names := map[string]string{}
	for _, s := range snap.Sales {
		names[s.ProductName] = s.SalesPersonName
	}
	assert.Equal(t, "Ana", names["Laptop"])
	assert.Equal(t, ledger.UnknownLabel, names["Mouse"], "vendedor inexistente se muestra como Unknown")
	require.Len(t, snap.Expenses, 1)
	assert.Equal(t, "Ana", snap.Expenses[0].CreatedByName)
}

func TestDashboard_ProductoEliminadoComoUnknown(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.sell(t, "Keyboard", 1, "u1")
	require.NoError(t, f.products.Delete(ctx, f.productIDs["Keyboard"]))

	snap, err := f.snapshots.GetDashboardSnapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Sales, 1)
	assert.Equal(t, ledger.UnknownLabel, snap.Sales[0].ProductName)
	assert.Equal(t, 2, snap.Stats.TotalProducts)
	assert.True(t, decimal.NewFromInt(75).Equal(snap.Stats.TotalRevenue), "las ventas del producto eliminado siguen contando")
}

func TestDashboard_VendedorEliminadoConCacheActivo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.sell(t, "Laptop", 1, "u1")

	before, err := f.snapshots.GetDashboardSnapshot(ctx)
	require.NoError(t, err)
	require.Len(t, before.Sales, 1)
	assert.Equal(t, "Ana", before.Sales[0].SalesPersonName)

	require.NoError(t, f.users.Delete(ctx, "u1"))

	after, err := f.snapshots.GetDashboardSnapshot(ctx)
	require.NoError(t, err)
	require.Len(t, after.Sales, 1)
	assert.Equal(t, ledger.UnknownLabel, after.Sales[0].SalesPersonName, "la baja del vendedor invalida el snapshot en caché")
}

func TestReport_Agregados(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.sell(t, "Laptop", 2, "u1")
	f.sell(t, "Mouse", 4, "u1")
	for _, e := range []usecase.AddExpenseInput{
		{Description: "Papel", Amount: decimal.NewFromInt(150), Category: "supplies"},
		{Description: "Local", Amount: decimal.NewFromInt(1000), Category: "Rent"},
	} {
		_, err := f.expenses.AddExpense(ctx, e)
		require.NoError(t, err)
	}

	r, err := f.snapshots.GetReportSnapshot(ctx)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(2500).Equal(r.Revenue))
	assert.True(t, decimal.NewFromInt(1150).Equal(r.Expenses))
	assert.True(t, decimal.NewFromInt(1350).Equal(r.Profit))
	assert.True(t, decimal.NewFromInt(54).Equal(r.ProfitMargin))
	// 13*800 + 46*10 + 3*40
	assert.True(t, decimal.NewFromInt(10980).Equal(r.InventoryValue))

	require.Len(t, r.ExpensesByCategory, 2)
	assert.Equal(t, "Supplies", r.ExpensesByCategory[0].Category)
	assert.Equal(t, "Rent", r.ExpensesByCategory[1].Category)

	assert.Equal(t, 1, r.StockHealth.LowCount)
	assert.Equal(t, 2, r.StockHealth.AdequateCount)
	require.Len(t, r.StockHealth.LowStock, 1)
	assert.Equal(t, "Keyboard", r.StockHealth.LowStock[0].Name)
	assert.Len(t, r.SalesByProduct, 3)
}

func TestSnapshot_CacheSeInvalidaTrasMutacion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.snapshots.GetDashboardSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, first.Stats.TotalSales)
	assert.Equal(t, 1, f.cache.sets)

	// Hit: no recalcula ni escribe
	again, err := f.snapshots.GetDashboardSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, again.Stats.TotalSales)
	assert.Equal(t, 1, f.cache.sets)

	f.sell(t, "Laptop", 1, "u1")

	fresh, err := f.snapshots.GetDashboardSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.Stats.TotalSales, "la venta invalida el snapshot")
	assert.Equal(t, 2, f.cache.sets)
}

func TestSnapshot_ErrorDeCacheNoEscribe(t *testing.T) {
	f := newFixture(t)
	f.cache.getErr = errors.New("redis caído")

	snap, err := f.snapshots.GetReportSnapshot(context.Background())
	require.NoError(t, err, "un fallo del caché no falla la lectura")
	assert.NotNil(t, snap)
	assert.Zero(t, f.cache.sets)
}

func TestSnapshot_SinCache(t *testing.T) {
	store := memory.NewStore()
	uc := analytics.NewSnapshotUseCase(
		memory.NewProductRepository(store),
		memory.NewSaleRepository(store),
		memory.NewExpenseRepository(store),
		memory.NewUserRepository(store),
		nil,
		zerolog.Nop(),
	)
	snap, err := uc.GetDashboardSnapshot(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Products)
	assert.True(t, snap.Stats.AverageOrderValue.IsZero())
}

func TestSalesOverview_FiltraPorProducto(t *testing.T) {
	f := newFixture(t)
	f.sell(t, "Laptop", 1, "u1")
	f.sell(t, "Mouse", 2, "u1")
	f.sell(t, "Mouse", 3, "u1")

	out, err := f.snapshots.GetSalesOverview(context.Background(), repository.SaleFilter{ProductID: f.productIDs["Mouse"]})
	require.NoError(t, err)
	assert.Equal(t, 2, out.TotalSales)
	assert.True(t, decimal.NewFromInt(125).Equal(out.TotalRevenue))
	for _, s := range out.Sales {
		assert.Equal(t, "Mouse", s.ProductName)
	}
}
