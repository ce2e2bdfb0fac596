// Package analytics contiene los casos de uso de lectura: dashboard, reporte financiero
// y listado enriquecido de ventas. Nunca escribe.
package analytics

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/ledger"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

const (
	dashboardCacheKey = "dashboard"
	reportCacheKey    = "report"

	noVersion int64 = -1 // caché ausente o con error: no se escribe
)

// SnapshotUseCase arma las vistas agregadas del libro.
//
// Las colecciones se leen en paralelo y fuera de cualquier transacción de escritura;
// los agregados se calculan con las funciones puras de domain/ledger.
type SnapshotUseCase struct {
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	expenseRepo repository.ExpenseRepository
	userRepo    repository.UserRepository
	cache       SnapshotCache
	log         zerolog.Logger
}

// NewSnapshotUseCase construye el caso de uso. cache puede ser nil (sin caché).
func NewSnapshotUseCase(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	expenseRepo repository.ExpenseRepository,
	userRepo repository.UserRepository,
	cache SnapshotCache,
	log zerolog.Logger,
) *SnapshotUseCase {
	return &SnapshotUseCase{
		productRepo: productRepo,
		saleRepo:    saleRepo,
		expenseRepo: expenseRepo,
		userRepo:    userRepo,
		cache:       cache,
		log:         log,
	}
}

type collections struct {
	products []*entity.Product
	sales    []*entity.Sale
	expenses []*entity.Expense
	users    []*entity.User
}

// load lee las cuatro colecciones en paralelo.
func (uc *SnapshotUseCase) load(ctx context.Context, filter repository.SaleFilter, withExpenses bool) (*collections, error) {
	var c collections
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		if c.products, err = uc.productRepo.List(gctx); err != nil {
			return fmt.Errorf("productos: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if c.sales, err = uc.saleRepo.List(gctx, filter); err != nil {
			return fmt.Errorf("ventas: %w", err)
		}
		return nil
	})
	if withExpenses {
		g.Go(func() error {
			var err error
			if c.expenses, err = uc.expenseRepo.List(gctx, repository.ExpenseFilter{}); err != nil {
				return fmt.Errorf("gastos: %w", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		var err error
		if c.users, err = uc.userRepo.List(gctx); err != nil {
			return fmt.Errorf("usuarios: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetDashboardSnapshot devuelve productos, ventas enriquecidas, gastos y KPIs.
func (uc *SnapshotUseCase) GetDashboardSnapshot(ctx context.Context) (*dto.DashboardSnapshotDTO, error) {
	var cached dto.DashboardSnapshotDTO
	version, hit := uc.fromCache(ctx, dashboardCacheKey, &cached)
	if hit {
		return &cached, nil
	}

	c, err := uc.load(ctx, repository.SaleFilter{}, true)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	revenue := ledger.TotalRevenue(c.sales)
	spent := ledger.TotalExpenses(c.expenses)
	userNames := namesByUser(c.users)

	out := &dto.DashboardSnapshotDTO{
		Products: dto.ToProductResponses(c.products),
		Sales:    enrichSales(c.sales, namesByProduct(c.products), userNames),
		Expenses: enrichExpenses(c.expenses, userNames),
		Stats: dto.DashboardStatsDTO{
			TotalProducts:     len(c.products),
			TotalSales:        len(c.sales),
			TotalRevenue:      revenue,
			TotalExpenses:     spent,
			Profit:            ledger.Profit(revenue, spent),
			LowStock:          ledger.LowStockCount(c.products),
			AverageOrderValue: ledger.AverageOrderValue(revenue, len(c.sales)),
		},
	}
	uc.toCache(ctx, dashboardCacheKey, version, out)
	return out, nil
}

// GetReportSnapshot devuelve el reporte financiero y de salud del inventario.
func (uc *SnapshotUseCase) GetReportSnapshot(ctx context.Context) (*dto.ReportSnapshotDTO, error) {
	var cached dto.ReportSnapshotDTO
	version, hit := uc.fromCache(ctx, reportCacheKey, &cached)
	if hit {
		return &cached, nil
	}

	c, err := uc.load(ctx, repository.SaleFilter{}, true)
	if err != nil {
		return nil, fmt.Errorf("reporte: %w", err)
	}

	revenue := ledger.TotalRevenue(c.sales)
	spent := ledger.TotalExpenses(c.expenses)
	profit := ledger.Profit(revenue, spent)
	health := ledger.ComputeStockHealth(c.products)

	byProduct := ledger.SalesByProduct(c.products, c.sales)
	salesRows := make([]dto.ProductSalesDTO, 0, len(byProduct))
	for _, r := range byProduct {
		salesRows = append(salesRows, dto.ProductSalesDTO{
			ProductID: r.ProductID, Name: r.Name, Sales: r.Sales, Units: r.Units, Revenue: r.Revenue,
		})
	}
	byCategory := ledger.ExpensesByCategory(c.expenses)
	categoryRows := make([]dto.CategoryTotalDTO, 0, len(byCategory))
	for _, r := range byCategory {
		categoryRows = append(categoryRows, dto.CategoryTotalDTO{Category: r.Category, Amount: r.Amount})
	}

	out := &dto.ReportSnapshotDTO{
		Revenue:             revenue,
		Expenses:            spent,
		Profit:              profit,
		ProfitMargin:        ledger.ProfitMargin(revenue, profit),
		InventoryValue:      ledger.InventoryValue(c.products),
		AverageProductPrice: ledger.AverageProductPrice(c.products),
		SalesByProduct:      salesRows,
		ExpensesByCategory:  categoryRows,
		StockHealth: dto.StockHealthDTO{
			LowStock:      dto.ToProductResponses(health.Low),
			LowCount:      health.LowCount,
			AdequateCount: health.AdequateCount,
		},
	}
	uc.toCache(ctx, reportCacheKey, version, out)
	return out, nil
}

// GetSalesOverview lista ventas (filtradas) enriquecidas con sus totales.
func (uc *SnapshotUseCase) GetSalesOverview(ctx context.Context, filter repository.SaleFilter) (*dto.SalesOverviewDTO, error) {
	c, err := uc.load(ctx, filter, false)
	if err != nil {
		return nil, fmt.Errorf("ventas: %w", err)
	}
	revenue := ledger.TotalRevenue(c.sales)
	return &dto.SalesOverviewDTO{
		Sales:             enrichSales(c.sales, namesByProduct(c.products), namesByUser(c.users)),
		TotalRevenue:      revenue,
		TotalSales:        len(c.sales),
		AverageOrderValue: ledger.AverageOrderValue(revenue, len(c.sales)),
	}, nil
}

// fromCache intenta leer key del caché y devuelve la versión leída. Cualquier error se trata como miss.
func (uc *SnapshotUseCase) fromCache(ctx context.Context, key string, dst any) (int64, bool) {
	if uc.cache == nil {
		return noVersion, false
	}
	raw, version, ok, err := uc.cache.Get(ctx, key)
	if err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("lectura de caché fallida")
		return noVersion, false
	}
	if !ok {
		return version, false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("snapshot en caché ilegible")
		return version, false
	}
	return version, true
}

func (uc *SnapshotUseCase) toCache(ctx context.Context, key string, version int64, v any) {
	if uc.cache == nil || version == noVersion {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("no se pudo serializar el snapshot")
		return
	}
	if err := uc.cache.Set(ctx, key, version, raw); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("escritura de caché fallida")
	}
}
