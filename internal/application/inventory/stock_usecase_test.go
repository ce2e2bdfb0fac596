package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

func TestAdjustStock_ReposicionYMerma(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.seedProduct(t, "Keyboard", 3, 10, 75, 40)

	updated, err := f.stockUC.AdjustStock(ctx, inventory.AdjustStockInput{ProductID: p.ID, Delta: 12, Note: " reposición ", ActorID: testSeller})
	require.NoError(t, err)
	assert.Equal(t, 15, updated.Quantity)
	assert.False(t, updated.IsLowStock())

	updated, err = f.stockUC.AdjustStock(ctx, inventory.AdjustStockInput{ProductID: p.ID, Delta: -5, Note: "merma"})
	require.NoError(t, err)
	assert.Equal(t, 10, updated.Quantity)

	movs, err := f.movements.ListByProduct(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, movs, 3)
	assert.Equal(t, entity.MovementReasonAdjustment, movs[1].Reason)
	assert.Equal(t, "reposición", movs[1].Note)
	f.requireConsistent(t)
}

func TestAdjustStock_MermaMayorQueStock(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, "Keyboard", 3, 10, 75, 40)

	_, err := f.stockUC.AdjustStock(context.Background(), inventory.AdjustStockInput{ProductID: p.ID, Delta: -4})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 3, f.quantity(t, p.ID), "nunca se recorta a cero")
}

func TestAdjustStock_Validaciones(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, "Keyboard", 3, 10, 75, 40)

	_, err := f.stockUC.AdjustStock(context.Background(), inventory.AdjustStockInput{ProductID: p.ID, Delta: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.stockUC.AdjustStock(context.Background(), inventory.AdjustStockInput{ProductID: "nope", Delta: 1})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
