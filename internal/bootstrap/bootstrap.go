// Package bootstrap arma el grafo de dependencias compartido por la API y ledgerctl:
// backend de persistencia, caché de snapshots y casos de uso.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-ledger/internal/application/analytics"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/application/usecase"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/cache"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-ledger/pkg/config"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// Backend agrupa los repositorios de una instancia de almacenamiento.
type Backend struct {
	Kind      string
	Products  repository.ProductRepository
	Sales     repository.SaleRepository
	Expenses  repository.ExpenseRepository
	Movements repository.StockMovementRepository
	Users     repository.UserRepository
	TxRunner  inventory.TxRunner
	close     func()
}

// Close libera el pool o el store.
func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}

// OpenBackend abre el backend configurado en LEDGER_BACKEND. En Postgres aplica el esquema.
func OpenBackend(ctx context.Context, cfg *config.Config) (*Backend, error) {
	switch cfg.Ledger.Backend {
	case config.BackendMemory:
		return NewMemoryBackend(memory.NewStore()), nil
	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &Backend{
			Kind:      config.BackendPostgres,
			Products:  postgres.NewProductRepository(pool),
			Sales:     postgres.NewSaleRepository(pool),
			Expenses:  postgres.NewExpenseRepository(pool),
			Movements: postgres.NewStockMovementRepository(pool),
			Users:     postgres.NewUserRepository(pool),
			TxRunner:  postgres.NewTxRunner(pool),
			close:     pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("backend desconocido: %q", cfg.Ledger.Backend)
	}
}

// NewMemoryBackend arma un backend sobre un store en memoria (tests y demos).
func NewMemoryBackend(store *memory.Store) *Backend {
	return &Backend{
		Kind:      config.BackendMemory,
		Products:  memory.NewProductRepository(store),
		Sales:     memory.NewSaleRepository(store),
		Expenses:  memory.NewExpenseRepository(store),
		Movements: memory.NewStockMovementRepository(store),
		Users:     memory.NewUserRepository(store),
		TxRunner:  memory.NewTxRunner(store),
		close:     store.Close,
	}
}

// SnapshotCache combina lectura versionada e invalidación.
type SnapshotCache interface {
	analytics.SnapshotCache
	inventory.CacheInvalidator
}

// OpenCache conecta con Redis si está configurado. Sin REDIS_ADDR devuelve nil
// (interfaz nula, no un puntero nulo) y los casos de uso operan sin caché.
func OpenCache(ctx context.Context, cfg config.RedisConfig, prefix string) (SnapshotCache, func(), error) {
	if !cfg.Enabled() {
		return nil, func() {}, nil
	}
	c, err := cache.NewRedisSnapshotCache(ctx, cfg, prefix)
	if err != nil {
		return nil, nil, err
	}
	return c, func() { _ = c.Close() }, nil
}

// Services casos de uso listos para los adaptadores de entrada.
type Services struct {
	Products   *usecase.ProductUseCase
	Stock      *inventory.StockUseCase
	Sales      *inventory.SaleUseCase
	Expenses   *usecase.ExpenseUseCase
	Users      *usecase.UserUseCase
	Snapshots  *analytics.SnapshotUseCase
	Reconciler *inventory.Reconciler
}

// NewServices construye los casos de uso sobre el backend. snapshotCache puede ser nil.
func NewServices(b *Backend, snapshotCache SnapshotCache, log *logger.Logger) *Services {
	var (
		invalidator inventory.CacheInvalidator
		reader      analytics.SnapshotCache
	)
	if snapshotCache != nil {
		invalidator = snapshotCache
		reader = snapshotCache
	}
	return &Services{
		Products:   usecase.NewProductUseCase(b.Products, b.TxRunner, invalidator, log.Component("products")),
		Stock:      inventory.NewStockUseCase(b.TxRunner, invalidator, log.Component("stock")),
		Sales:      inventory.NewSaleUseCase(b.TxRunner, b.Sales, invalidator, log.Component("sales")),
		Expenses:   usecase.NewExpenseUseCase(b.Expenses, b.Users, invalidator, log.Component("expenses")),
		Users:      usecase.NewUserUseCase(b.Users, invalidator, log.Component("users")),
		Snapshots:  analytics.NewSnapshotUseCase(b.Products, b.Sales, b.Expenses, b.Users, reader, log.Component("snapshots")),
		Reconciler: inventory.NewReconciler(b.Products, b.Sales, b.Movements, log.Component("reconciler")),
	}
}

