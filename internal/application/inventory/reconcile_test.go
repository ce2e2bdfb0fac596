package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository/mock"
)

func TestReconciler_DetectaDiferencias(t *testing.T) {
	ctrl := gomock.NewController(t)
	products := mock.NewMockProductRepository(ctrl)
	sales := mock.NewMockSaleRepository(ctrl)
	movements := mock.NewMockStockMovementRepository(ctrl)

	products.EXPECT().List(gomock.Any()).Return([]*entity.Product{
		{ID: "p1", SKU: "A", Quantity: 10},
		{ID: "p2", SKU: "B", Quantity: 7},
	}, nil)
	movements.EXPECT().SumByProduct(gomock.Any()).Return(map[string]int{"p1": 10, "p2": 9}, nil)
	sales.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*entity.Sale{{ID: "s1"}, {ID: "s2"}}, nil)
	movements.EXPECT().SaleBalances(gomock.Any()).Return(map[string]int{"s1": 1, "s3": 1}, nil)

	r := inventory.NewReconciler(products, sales, movements, zerolog.Nop())
	report, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.False(t, report.Consistent())
	require.Len(t, report.Discrepancies, 1)
	assert.Equal(t, inventory.StockDiscrepancy{ProductID: "p2", SKU: "B", Recorded: 7, Journal: 9}, report.Discrepancies[0])

	require.Len(t, report.UnpairedSales, 2)
	assert.Equal(t, "s2", report.UnpairedSales[0].SaleID, "venta en el libro sin movimiento")
	assert.True(t, report.UnpairedSales[0].InLedger)
	assert.Equal(t, "s3", report.UnpairedSales[1].SaleID, "movimiento vigente de una venta que ya no está")
	assert.False(t, report.UnpairedSales[1].InLedger)
}

func TestReconciler_ErrorDeRepositorio(t *testing.T) {
	ctrl := gomock.NewController(t)
	products := mock.NewMockProductRepository(ctrl)
	sales := mock.NewMockSaleRepository(ctrl)
	movements := mock.NewMockStockMovementRepository(ctrl)

	dbErr := errors.New("db caída")
	products.EXPECT().List(gomock.Any()).Return(nil, dbErr)

	r := inventory.NewReconciler(products, sales, movements, zerolog.Nop())
	_, err := r.Run(context.Background())
	assert.ErrorIs(t, err, dbErr)
}

func TestReconciler_LibroVacioEsConsistente(t *testing.T) {
	f := newFixture(t)
	f.requireConsistent(t)
}
