package ledger

import "github.com/jhoicas/stocktrack-api/internal/domain/entity"

// Apply calcula la cantidad resultante de aplicar un movimiento sobre la
// cantidad actual de la fila (ProductID, LocationID) indicada (servicio de dominio).
//
//	receive/return: current + q
//	ship:           current - q
//	adjust:         q (valor absoluto, no delta)
//	transfer:       current - q en origen, current + q en destino
//
// Para transfer, la fila se identifica por locationID: si coincide con el
// origen del movimiento se resta, si coincide con el destino se suma.
// Un movimiento que no toca la fila devuelve current sin cambio.
func Apply(current int64, locationID string, m *entity.MovementRecord) int64 {
	switch m.Kind {
	case entity.MovementKindReceive, entity.MovementKindReturn:
		if m.LocationID == locationID {
			return current + m.Quantity
		}
	case entity.MovementKindShip:
		if m.LocationID == locationID {
			return current - m.Quantity
		}
	case entity.MovementKindAdjust:
		if m.LocationID == locationID {
			return m.Quantity
		}
	case entity.MovementKindTransfer:
		if m.LocationID == locationID {
			return current - m.Quantity
		}
		if m.DestinationLocationID != nil && *m.DestinationLocationID == locationID {
			return current + m.Quantity
		}
	}
	return current
}

// Replay reconstruye la cantidad de una fila (productID, locationID) plegando
// los movimientos en orden de commit. Partiendo de 0, el resultado debe
// coincidir exactamente con StockRow.Quantity (invariante ledger/bitácora).
func Replay(productID, locationID string, movements []*entity.MovementRecord) int64 {
	var qty int64
	for _, m := range movements {
		if m.ProductID != productID {
			continue
		}
		qty = Apply(qty, locationID, m)
	}
	return qty
}
