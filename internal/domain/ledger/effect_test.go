package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stocktrack-api/internal/domain/entity"
	"github.com/jhoicas/stocktrack-api/internal/domain/ledger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	prodA = "11111111-1111-1111-1111-111111111111"
	prodB = "22222222-2222-2222-2222-222222222222"
	locA  = "aaaaaaaa-0000-0000-0000-000000000001"
	locB  = "aaaaaaaa-0000-0000-0000-000000000002"
)

func mov(product, location, kind string, qty int64) *entity.MovementRecord {
	return &entity.MovementRecord{
		ProductID:  product,
		LocationID: location,
		Kind:       kind,
		Quantity:   qty,
	}
}

func transfer(product, origin, destination string, qty int64) *entity.MovementRecord {
	m := mov(product, origin, entity.MovementKindTransfer, qty)
	m.DestinationLocationID = &destination
	return m
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Apply — efecto de cada tipo de movimiento sobre una fila
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_ReceiveSuma(t *testing.T) {
	got := ledger.Apply(10, locA, mov(prodA, locA, entity.MovementKindReceive, 5))
	assert.Equal(t, int64(15), got, "receive debe sumar la cantidad")
}

func TestApply_ReturnSuma(t *testing.T) {
	got := ledger.Apply(10, locA, mov(prodA, locA, entity.MovementKindReturn, 3))
	assert.Equal(t, int64(13), got, "return debe sumar igual que receive")
}

func TestApply_ShipResta(t *testing.T) {
	got := ledger.Apply(10, locA, mov(prodA, locA, entity.MovementKindShip, 4))
	assert.Equal(t, int64(6), got, "ship debe restar la cantidad")
}

// adjust fija el valor absoluto: no es un delta.
func TestApply_AdjustFijaValorAbsoluto(t *testing.T) {
	got := ledger.Apply(100, locA, mov(prodA, locA, entity.MovementKindAdjust, 7))
	assert.Equal(t, int64(7), got, "adjust debe fijar la cantidad, no sumarla")

	got = ledger.Apply(3, locA, mov(prodA, locA, entity.MovementKindAdjust, 50))
	assert.Equal(t, int64(50), got)
}

func TestApply_TransferRestaEnOrigen(t *testing.T) {
	got := ledger.Apply(10, locA, transfer(prodA, locA, locB, 4))
	assert.Equal(t, int64(6), got, "transfer debe restar en la fila de origen")
}

func TestApply_TransferSumaEnDestino(t *testing.T) {
	got := ledger.Apply(2, locB, transfer(prodA, locA, locB, 4))
	assert.Equal(t, int64(6), got, "transfer debe sumar en la fila de destino")
}

func TestApply_MovimientoAjenoNoAfecta(t *testing.T) {
	// Movimiento sobre otra ubicación: la fila queda intacta.
	got := ledger.Apply(10, locB, mov(prodA, locA, entity.MovementKindReceive, 5))
	assert.Equal(t, int64(10), got, "un movimiento de otra ubicación no debe alterar la fila")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Replay — reconstrucción de la cantidad plegando la bitácora
// ──────────────────────────────────────────────────────────────────────────────

// Secuencia mixta: la cantidad final debe coincidir con la aplicación en orden.
func TestReplay_SecuenciaMixta(t *testing.T) {
	log := []*entity.MovementRecord{
		mov(prodA, locA, entity.MovementKindReceive, 100), // 100
		mov(prodA, locA, entity.MovementKindShip, 30),     // 70
		mov(prodA, locA, entity.MovementKindReturn, 5),    // 75
		mov(prodA, locA, entity.MovementKindAdjust, 60),   // 60 (absoluto)
		transfer(prodA, locA, locB, 20),                   // 40 en locA, 20 en locB
	}

	assert.Equal(t, int64(40), ledger.Replay(prodA, locA, log))
	assert.Equal(t, int64(20), ledger.Replay(prodA, locB, log))
}

// El replay ignora movimientos de otros productos.
func TestReplay_FiltraPorProducto(t *testing.T) {
	log := []*entity.MovementRecord{
		mov(prodA, locA, entity.MovementKindReceive, 10),
		mov(prodB, locA, entity.MovementKindReceive, 99),
		mov(prodA, locA, entity.MovementKindShip, 4),
	}
	assert.Equal(t, int64(6), ledger.Replay(prodA, locA, log))
	assert.Equal(t, int64(99), ledger.Replay(prodB, locA, log))
}

// Un transfer conserva la cantidad total del producto entre ubicaciones.
func TestReplay_TransferConservaTotal(t *testing.T) {
	log := []*entity.MovementRecord{
		mov(prodA, locA, entity.MovementKindReceive, 50),
		transfer(prodA, locA, locB, 20),
		transfer(prodA, locB, locA, 5),
	}
	enA := ledger.Replay(prodA, locA, log)
	enB := ledger.Replay(prodA, locB, log)
	assert.Equal(t, int64(35), enA)
	assert.Equal(t, int64(15), enB)
	assert.Equal(t, int64(50), enA+enB, "los traslados no deben crear ni destruir stock")
}

func TestReplay_BitacoraVaciaEsCero(t *testing.T) {
	assert.Equal(t, int64(0), ledger.Replay(prodA, locA, nil))
}
