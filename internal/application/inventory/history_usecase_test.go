package inventory_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stocktrack-api/internal/application/inventory"
	"github.com/jhoicas/stocktrack-api/internal/domain/entity"
	"github.com/jhoicas/stocktrack-api/internal/domain/repository"
)

type stubMovementRepo struct {
	views []*repository.MovementView
}

func (r *stubMovementRepo) Append(ctx context.Context, draft *entity.MovementRecord) (*entity.MovementRecord, error) {
	return draft, nil
}

func (r *stubMovementRepo) GetByID(ctx context.Context, id int64) (*entity.MovementRecord, error) {
	return nil, nil
}

func (r *stubMovementRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*repository.MovementView, int64, error) {
	return r.views, int64(len(r.views)), nil
}

func TestExportCSV_FormatoParaHojaDeCalculo(t *testing.T) {
	occurred := time.Date(2026, 8, 15, 14, 30, 0, 0, time.UTC)
	repo := &stubMovementRepo{views: []*repository.MovementView{
		{
			MovementRecord: entity.MovementRecord{
				ID:         1,
				Kind:       entity.MovementKindReceive,
				Quantity:   25,
				Reference:  "PO-1001",
				Notes:      "lote inicial",
				OccurredAt: occurred,
			},
			ProductName: "Tornillo 3mm",
			ProductSKU:  "SKU-001",
			UserName:    "Ana Gómez",
		},
	}}
	uc := inventory.NewHistoryUseCase(repo)

	var buf bytes.Buffer
	require.NoError(t, uc.ExportCSV(context.Background(), &buf, repository.MovementFilter{}))

	out := buf.Bytes()
	// BOM UTF-8 al inicio para Excel
	require.True(t, bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}), "el CSV debe iniciar con BOM UTF-8")

	lines := strings.Split(strings.TrimSpace(string(out[3:])), "\n")
	require.Len(t, lines, 2, "cabecera + una fila")
	assert.Equal(t, "Date;Kind;Product;SKU;Quantity;Reference;Notes;User", lines[0])
	assert.Equal(t, "2026-08-15 14:30;receive;Tornillo 3mm;SKU-001;25;PO-1001;lote inicial;Ana Gómez", lines[1])
}

func TestExportCSV_SinMovimientos_SoloCabecera(t *testing.T) {
	uc := inventory.NewHistoryUseCase(&stubMovementRepo{})

	var buf bytes.Buffer
	require.NoError(t, uc.ExportCSV(context.Background(), &buf, repository.MovementFilter{}))

	lines := strings.Split(strings.TrimSpace(buf.String()[3:]), "\n")
	assert.Len(t, lines, 1)
	assert.Contains(t, lines[0], "Date;Kind")
}
