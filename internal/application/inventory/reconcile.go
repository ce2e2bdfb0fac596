package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// StockDiscrepancy producto cuyo stock no coincide con la suma de su diario.
type StockDiscrepancy struct {
	ProductID string `json:"product_id"`
	SKU       string `json:"sku"`
	Recorded  int    `json:"recorded"` // Product.Quantity
	Journal   int    `json:"journal"`  // Σ Delta
}

// SalePairingIssue venta cuyo registro en el libro no concuerda con sus movimientos.
// InLedger=true con Balance!=1: venta sin su descuento; InLedger=false con Balance!=0:
// descuento sin venta.
type SalePairingIssue struct {
	SaleID   string `json:"sale_id"`
	InLedger bool   `json:"in_ledger"`
	Balance  int    `json:"balance"`
}

// ReconcileReport resultado de una pasada del conciliador.
type ReconcileReport struct {
	CheckedProducts int                `json:"checked_products"`
	CheckedSales    int                `json:"checked_sales"`
	Discrepancies   []StockDiscrepancy `json:"discrepancies"`
	UnpairedSales   []SalePairingIssue `json:"unpaired_sales"`
	CheckedAt       time.Time          `json:"checked_at"`
}

// Consistent indica que no se encontró ninguna diferencia.
func (r *ReconcileReport) Consistent() bool {
	return len(r.Discrepancies) == 0 && len(r.UnpairedSales) == 0
}

// Reconciler compara el catálogo y el libro de ventas contra el diario de stock.
// Solo detecta y reporta; no corrige. Las lecturas no forman una foto atómica, así que
// debe ejecutarse sin tráfico de escritura (arranque, CLI) para evitar falsos positivos.
type Reconciler struct {
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	movRepo     repository.StockMovementRepository
	log         zerolog.Logger
}

// NewReconciler construye el conciliador.
func NewReconciler(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	movRepo repository.StockMovementRepository,
	log zerolog.Logger,
) *Reconciler {
	return &Reconciler{productRepo: productRepo, saleRepo: saleRepo, movRepo: movRepo, log: log}
}

// Run ejecuta la conciliación completa y registra cada diferencia en el log.
func (r *Reconciler) Run(ctx context.Context) (*ReconcileReport, error) {
	products, err := r.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	sums, err := r.movRepo.SumByProduct(ctx)
	if err != nil {
		return nil, fmt.Errorf("sumar diario: %w", err)
	}
	sales, err := r.saleRepo.List(ctx, repository.SaleFilter{})
	if err != nil {
		return nil, fmt.Errorf("listar ventas: %w", err)
	}
	balances, err := r.movRepo.SaleBalances(ctx)
	if err != nil {
		return nil, fmt.Errorf("balances de ventas: %w", err)
	}

	report := &ReconcileReport{
		CheckedProducts: len(products),
		CheckedSales:    len(sales),
		Discrepancies:   make([]StockDiscrepancy, 0),
		UnpairedSales:   make([]SalePairingIssue, 0),
		CheckedAt:       time.Now().UTC(),
	}

	for _, p := range products {
		if journal := sums[p.ID]; journal != p.Quantity {
			report.Discrepancies = append(report.Discrepancies, StockDiscrepancy{
				ProductID: p.ID, SKU: p.SKU, Recorded: p.Quantity, Journal: journal,
			})
		}
	}

	inLedger := make(map[string]bool, len(sales))
	for _, s := range sales {
		inLedger[s.ID] = true
		if b := balances[s.ID]; b != 1 {
			report.UnpairedSales = append(report.UnpairedSales, SalePairingIssue{SaleID: s.ID, InLedger: true, Balance: b})
		}
	}
	for id, b := range balances {
		if !inLedger[id] && b != 0 {
			report.UnpairedSales = append(report.UnpairedSales, SalePairingIssue{SaleID: id, Balance: b})
		}
	}
	sort.Slice(report.UnpairedSales, func(i, j int) bool {
		return report.UnpairedSales[i].SaleID < report.UnpairedSales[j].SaleID
	})

	for _, d := range report.Discrepancies {
		r.log.Error().
			Str("product_id", d.ProductID).
			Str("sku", d.SKU).
			Int("recorded", d.Recorded).
			Int("journal", d.Journal).
			Msg("stock no coincide con el diario")
	}
	for _, u := range report.UnpairedSales {
		r.log.Error().
			Str("sale_id", u.SaleID).
			Bool("in_ledger", u.InLedger).
			Int("balance", u.Balance).
			Msg("venta sin movimiento pareado")
	}
	if report.Consistent() {
		r.log.Info().
			Int("products", report.CheckedProducts).
			Int("sales", report.CheckedSales).
			Msg("conciliación sin diferencias")
	}
	return report, nil
}
