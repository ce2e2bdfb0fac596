package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
)

func product(id, sku string, qty int) *entity.Product {
	return &entity.Product{ID: id, SKU: sku, Name: "P-" + id, Quantity: qty, UnitPrice: decimal.NewFromInt(10)}
}

func TestTxRunner_RollbackDescartaEscrituras(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	products := memory.NewProductRepository(store)
	require.NoError(t, products.Create(ctx, product("p1", "A", 5)))

	boom := errors.New("boom")
	err := memory.NewTxRunner(store).Run(ctx, func(pr repository.ProductRepository, sr repository.SaleRepository, mr repository.StockMovementRepository) error {
		_, err := pr.AdjustQuantity(ctx, "p1", -3)
		require.NoError(t, err)
		require.NoError(t, sr.Append(ctx, &entity.Sale{ID: "s1", ProductID: "p1", Quantity: 3}))
		require.NoError(t, mr.Create(ctx, &entity.StockMovement{ID: "m1", ProductID: "p1", SaleID: "s1", Reason: entity.MovementReasonSale, Delta: -3}))

		// Dentro de la tx se ven las escrituras pendientes
		p, err := pr.GetByID(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, 2, p.Quantity)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	p, err := products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 5, p.Quantity)

	sale, err := memory.NewSaleRepository(store).GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, sale)

	sums, err := memory.NewStockMovementRepository(store).SumByProduct(ctx)
	require.NoError(t, err)
	assert.Empty(t, sums)
}

func TestTxRunner_LockRespetaCancelacion(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, memory.NewProductRepository(store).Create(ctx, product("p1", "A", 5)))

	locked := make(chan struct{})
	done := make(chan struct{})
	go func() {
		_ = memory.NewTxRunner(store).Run(ctx, func(pr repository.ProductRepository, _ repository.SaleRepository, _ repository.StockMovementRepository) error {
			_, err := pr.GetForUpdate(ctx, "p1")
			close(locked)
			<-done
			return err
		})
	}()
	<-locked

	waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	err := memory.NewTxRunner(store).Run(waitCtx, func(pr repository.ProductRepository, _ repository.SaleRepository, _ repository.StockMovementRepository) error {
		_, err := pr.GetForUpdate(waitCtx, "p1")
		return err
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	close(done)

	// Liberado el lock, otra tx puede tomarlo
	err = memory.NewTxRunner(store).Run(ctx, func(pr repository.ProductRepository, _ repository.SaleRepository, _ repository.StockMovementRepository) error {
		_, err := pr.GetForUpdate(ctx, "p1")
		return err
	})
	assert.NoError(t, err)
}

func TestTxRunner_LocksNoSeAcumulan(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	runner := memory.NewTxRunner(store)
	require.NoError(t, memory.NewProductRepository(store).Create(ctx, product("p1", "A", 5)))

	// IDs que nunca existieron (reversos huérfanos) y un producto real
	for _, id := range []string{"p1", "fantasma-1", "fantasma-2"} {
		err := runner.Run(ctx, func(pr repository.ProductRepository, _ repository.SaleRepository, _ repository.StockMovementRepository) error {
			_, err := pr.GetForUpdate(ctx, id)
			return err
		})
		require.NoError(t, err)
	}
	assert.Zero(t, memory.LockEntries(store), "sin transacciones activas no quedan entradas")

	// Un poseedor y un waiter que se rinde por timeout
	locked := make(chan struct{})
	hold := make(chan struct{})
	finished := make(chan error, 1)
	go func() {
		finished <- runner.Run(ctx, func(pr repository.ProductRepository, _ repository.SaleRepository, _ repository.StockMovementRepository) error {
			_, err := pr.GetForUpdate(ctx, "p1")
			close(locked)
			<-hold
			return err
		})
	}()
	<-locked
	assert.Equal(t, 1, memory.LockEntries(store))

	waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	err := runner.Run(waitCtx, func(pr repository.ProductRepository, _ repository.SaleRepository, _ repository.StockMovementRepository) error {
		_, err := pr.GetForUpdate(waitCtx, "p1")
		return err
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, memory.LockEntries(store), "el waiter que se rinde suelta su referencia")

	close(hold)
	require.NoError(t, <-finished)
	assert.Zero(t, memory.LockEntries(store))
}

func TestProductRepository_SKUDuplicado(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	repo := memory.NewProductRepository(store)
	require.NoError(t, repo.Create(ctx, product("p1", "A", 1)))

	assert.ErrorIs(t, repo.Create(ctx, product("p2", "A", 1)), domain.ErrDuplicate)
	assert.ErrorIs(t, repo.Create(ctx, product("p1", "B", 1)), domain.ErrDuplicate)
}

func TestProductRepository_UpdateConservaCantidad(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	repo := memory.NewProductRepository(store)
	require.NoError(t, repo.Create(ctx, product("p1", "A", 7)))

	edit := product("p1", "A2", 999)
	edit.Name = "Renombrado"
	require.NoError(t, repo.Update(ctx, edit))

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Renombrado", got.Name)
	assert.Equal(t, "A2", got.SKU)
	assert.Equal(t, 7, got.Quantity)

	assert.ErrorIs(t, repo.Update(ctx, product("nope", "Z", 0)), domain.ErrProductNotFound)
}

func TestProductRepository_AdjustQuantityNuncaNegativo(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	repo := memory.NewProductRepository(store)
	require.NoError(t, repo.Create(ctx, product("p1", "A", 2)))

	_, err := repo.AdjustQuantity(ctx, "p1", -3)
	assert.ErrorIs(t, err, domain.ErrWouldGoNegative)

	_, err = repo.AdjustQuantity(ctx, "nope", 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	p, err := repo.AdjustQuantity(ctx, "p1", -2)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Quantity)
}

func TestProductRepository_ListOrdenadoPorNombre(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	repo := memory.NewProductRepository(store)
	for _, p := range []*entity.Product{
		{ID: "3", SKU: "C", Name: "Mouse"},
		{ID: "1", SKU: "A", Name: "Keyboard"},
		{ID: "2", SKU: "B", Name: "Laptop"},
	} {
		require.NoError(t, repo.Create(ctx, p))
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Keyboard", "Laptop", "Mouse"}, []string{list[0].Name, list[1].Name, list[2].Name})

	require.NoError(t, repo.Delete(ctx, "2"))
	assert.ErrorIs(t, repo.Delete(ctx, "2"), domain.ErrProductNotFound)
	list, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestSaleRepository_ListFiltraYPagina(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	repo := memory.NewSaleRepository(store)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, pid := range []string{"p1", "p2", "p1", "p1"} {
		require.NoError(t, repo.Append(ctx, &entity.Sale{
			ID:        string(rune('a' + i)),
			ProductID: pid,
			Quantity:  1,
			Timestamp: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	all, err := repo.List(ctx, repository.SaleFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "d", all[0].ID, "más reciente primero")

	byProduct, err := repo.List(ctx, repository.SaleFilter{ProductID: "p1", Limit: 2})
	require.NoError(t, err)
	require.Len(t, byProduct, 2)
	assert.Equal(t, "d", byProduct[0].ID)
	assert.Equal(t, "c", byProduct[1].ID)

	from := base.Add(90 * time.Minute)
	recent, err := repo.List(ctx, repository.SaleFilter{From: &from})
	require.NoError(t, err)
	assert.Len(t, recent, 2)

	paged, err := repo.List(ctx, repository.SaleFilter{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, paged)

	prev, err := repo.Remove(ctx, "b")
	require.NoError(t, err)
	require.NotNil(t, prev)
	prev, err = repo.Remove(ctx, "b")
	require.NoError(t, err)
	assert.Nil(t, prev, "segundo Remove no encuentra la venta")
}

func TestUserRepository_EmailUnico(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	repo := memory.NewUserRepository(store)
	require.NoError(t, repo.Create(ctx, &entity.User{ID: "u1", Email: "ana@example.com", Role: entity.RoleAdmin}))

	err := repo.Create(ctx, &entity.User{ID: "u2", Email: "ANA@example.com", Role: entity.RoleManager})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	u, err := repo.GetByEmail(ctx, "Ana@Example.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u1", u.ID)

	require.NoError(t, repo.Delete(ctx, "u1"))
	assert.ErrorIs(t, repo.Delete(ctx, "u1"), domain.ErrUserNotFound)
}
