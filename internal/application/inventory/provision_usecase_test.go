package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stocktrack-api/internal/application/inventory"
	"github.com/jhoicas/stocktrack-api/internal/domain"
)

func newProvisionSetup() (*inventory.ProvisionUseCase, *fakeStore) {
	store := newFakeStore()
	store.addProduct(testProduct, "SKU-001", "Tornillo 3mm")
	store.addLocation(testOrigin, "Bodega Central")
	uc := inventory.NewProvisionUseCase(
		&fakeStockRepo{store: store},
		&fakeProductRepo{store: store},
		&fakeLocationRepo{store: store},
	)
	return uc, store
}

func TestProvisionCreate_FilaNueva(t *testing.T) {
	uc, _ := newProvisionSetup()

	row, err := uc.Create(context.Background(), inventory.ProvisionInput{
		ProductID:       testProduct,
		LocationID:      testOrigin,
		Quantity:        40,
		ReorderLevel:    10,
		ReorderQuantity: 50,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(40), row.Quantity)
	assert.Equal(t, int64(10), row.ReorderLevel)
	assert.Equal(t, int64(50), row.ReorderQuantity)
}

func TestProvisionCreate_ParDuplicado(t *testing.T) {
	uc, store := newProvisionSetup()
	store.setStock(testProduct, testOrigin, 5, 10, 50)

	_, err := uc.Create(context.Background(), inventory.ProvisionInput{
		ProductID:  testProduct,
		LocationID: testOrigin,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProvisionCreate_CantidadInicialNegativa(t *testing.T) {
	uc, _ := newProvisionSetup()
	_, err := uc.Create(context.Background(), inventory.ProvisionInput{
		ProductID:  testProduct,
		LocationID: testOrigin,
		Quantity:   -1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestProvisionCreate_ReferenciaInexistente(t *testing.T) {
	uc, _ := newProvisionSetup()
	_, err := uc.Create(context.Background(), inventory.ProvisionInput{
		ProductID:  testGhostID,
		LocationID: testOrigin,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// El parcheo de umbrales nunca toca la cantidad; campos nil conservan su valor.
func TestUpdateReorder_ParchaSoloUmbrales(t *testing.T) {
	uc, store := newProvisionSetup()
	store.setStock(testProduct, testOrigin, 77, 10, 50)

	newLevel := int64(20)
	row, err := uc.UpdateReorder(context.Background(), testProduct, testOrigin, &newLevel, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(20), row.ReorderLevel)
	assert.Equal(t, int64(50), row.ReorderQuantity, "campo omitido conserva su valor")
	assert.Equal(t, int64(77), row.Quantity, "la cantidad no debe cambiar por esta vía")
}

func TestUpdateReorder_FilaInexistente(t *testing.T) {
	uc, _ := newProvisionSetup()
	level := int64(5)
	_, err := uc.UpdateReorder(context.Background(), testProduct, testOrigin, &level, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateReorder_UmbralNegativo(t *testing.T) {
	uc, store := newProvisionSetup()
	store.setStock(testProduct, testOrigin, 5, 10, 50)

	bad := int64(-3)
	_, err := uc.UpdateReorder(context.Background(), testProduct, testOrigin, &bad, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}
