package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementKindReceive  = "receive"  // entrada desde proveedor
	MovementKindShip     = "ship"     // salida / venta
	MovementKindAdjust   = "adjust"   // ajuste manual (fija cantidad absoluta)
	MovementKindTransfer = "transfer" // traslado entre ubicaciones
	MovementKindReturn   = "return"   // devolución de cliente
)

// ValidMovementKind verifica que el tipo pertenezca a la enumeración.
func ValidMovementKind(kind string) bool {
	switch kind {
	case MovementKindReceive, MovementKindShip, MovementKindAdjust,
		MovementKindTransfer, MovementKindReturn:
		return true
	}
	return false
}

// MovementRecord representa un movimiento de inventario aceptado.
// Inmutable una vez confirmado; el ID lo asigna la BD en orden de commit.
// Quantity es estrictamente positiva: el signo del efecto sobre el stock
// se deriva del tipo, no de la cantidad. Para adjust, Quantity es el
// nuevo valor absoluto de la fila.
type MovementRecord struct {
	ID                    int64
	ProductID             string
	LocationID            string
	DestinationLocationID *string // solo transfer
	Kind                  string
	Quantity              int64
	Reference             string
	Notes                 string
	CreatedBy             string // UserID, opcional
	OccurredAt            time.Time
}
