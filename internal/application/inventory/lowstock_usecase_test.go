package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stocktrack-api/internal/application/inventory"
)

const (
	lowProdA = "11111111-1111-1111-1111-11111111000a"
	lowProdB = "11111111-1111-1111-1111-11111111000b"
	lowLoc   = "aaaaaaaa-0000-0000-0000-00000000000f"
)

func newLowStockSetup() (*inventory.LowStockUseCase, *fakeStore) {
	store := newFakeStore()
	store.addProduct(lowProdA, "SKU-A", "Producto A")
	store.addProduct(lowProdB, "SKU-B", "Producto B")
	store.addLocation(lowLoc, "Bodega Central")
	return inventory.NewLowStockUseCase(&fakeStockRepo{store: store}), store
}

// La alerta incluye el borde exacto (quantity == reorder_level) y excluye
// lo que está por encima.
func TestEvaluate_UmbralInclusivo(t *testing.T) {
	uc, store := newLowStockSetup()
	store.setStock(lowProdA, lowLoc, 10, 10, 50) // en el umbral: alerta
	store.setStock(lowProdB, lowLoc, 11, 10, 50) // sobre el umbral: sin alerta

	alerts, err := uc.Evaluate(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, lowProdA, alerts[0].ProductID)
	assert.Equal(t, "SKU-A", alerts[0].ProductSKU)
	assert.Equal(t, "Bodega Central", alerts[0].LocationName)
}

// Más agotadas primero: orden ascendente por cantidad.
func TestEvaluate_OrdenAscendentePorCantidad(t *testing.T) {
	uc, store := newLowStockSetup()
	store.setStock(lowProdA, lowLoc, 8, 10, 50)
	store.setStock(lowProdB, lowLoc, 2, 10, 50)

	alerts, err := uc.Evaluate(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, lowProdB, alerts[0].ProductID, "la fila más agotada va primero")
	assert.Equal(t, lowProdA, alerts[1].ProductID)
}

// Proyección pura: evaluar dos veces sin movimientos entre medio da lo mismo.
func TestEvaluate_Idempotente(t *testing.T) {
	uc, store := newLowStockSetup()
	store.setStock(lowProdA, lowLoc, 3, 10, 50)

	first, err := uc.Evaluate(context.Background())
	require.NoError(t, err)
	second, err := uc.Evaluate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEvaluate_SinFilasBajas(t *testing.T) {
	uc, store := newLowStockSetup()
	store.setStock(lowProdA, lowLoc, 500, 10, 50)

	alerts, err := uc.Evaluate(context.Background())
	require.NoError(t, err)
	assert.Empty(t, alerts)
}
