package inventory

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jhoicas/stocktrack-api/internal/domain/repository"
)

// HistoryUseCase consulta la bitácora de movimientos (solo lectura).
type HistoryUseCase struct {
	movRepo repository.MovementRepository
}

// NewHistoryUseCase construye el caso de uso de historial.
func NewHistoryUseCase(movRepo repository.MovementRepository) *HistoryUseCase {
	return &HistoryUseCase{movRepo: movRepo}
}

// List devuelve movimientos filtrados, del más reciente al más antiguo.
func (uc *HistoryUseCase) List(ctx context.Context, filter repository.MovementFilter) ([]*repository.MovementView, int64, error) {
	return uc.movRepo.List(ctx, filter)
}

// ExportCSV escribe los movimientos filtrados como CSV delimitado por punto y
// coma con BOM UTF-8, para abrir directo en hojas de cálculo.
func (uc *HistoryUseCase) ExportCSV(ctx context.Context, w io.Writer, filter repository.MovementFilter) error {
	movements, _, err := uc.movRepo.List(ctx, filter)
	if err != nil {
		return err
	}

	// BOM UTF-8 para que Excel detecte la codificación
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	header := []string{"Date", "Kind", "Product", "SKU", "Quantity", "Reference", "Notes", "User"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, m := range movements {
		record := []string{
			m.OccurredAt.Format("2006-01-02 15:04"),
			m.Kind,
			m.ProductName,
			m.ProductSKU,
			fmt.Sprintf("%d", m.Quantity),
			m.Reference,
			m.Notes,
			m.UserName,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
