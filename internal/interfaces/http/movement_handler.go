package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stocktrack-api/internal/application/dto"
	"github.com/jhoicas/stocktrack-api/internal/application/inventory"
	"github.com/jhoicas/stocktrack-api/internal/domain"
	"github.com/jhoicas/stocktrack-api/internal/domain/entity"
	"github.com/jhoicas/stocktrack-api/internal/domain/repository"
)

// MovementHandler maneja las peticiones HTTP de movimientos de inventario (protegido).
type MovementHandler struct {
	apply   *inventory.ApplyMovementUseCase
	history *inventory.HistoryUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(apply *inventory.ApplyMovementUseCase, history *inventory.HistoryUseCase) *MovementHandler {
	return &MovementHandler{apply: apply, history: history}
}

// Apply godoc
// @Summary      Aplicar movimiento de inventario
// @Description  Registra un movimiento (receive, ship, adjust, transfer, return),
//
//	muta el stock de forma atómica y devuelve el registro confirmado.
//
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApplyMovementRequest  true  "product_id, location_id, kind, quantity; destination_location_id para transfer"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Apply(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ApplyMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.apply.ApplyMovement(c.Context(), inventory.MovementInput{
		ProductID:             in.ProductID,
		LocationID:            in.LocationID,
		DestinationLocationID: in.DestinationLocationID,
		Kind:                  in.Kind,
		Quantity:              in.Quantity,
		Reference:             in.Reference,
		Notes:                 in.Notes,
		UserID:                userID,
	})
	if err != nil {
		switch err {
		case domain.ErrInvalidInput, domain.ErrInvalidQuantity:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: err.Error()})
		case domain.ErrInvalidTransfer:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_TRANSFER", Message: err.Error()})
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "REFERENCE_NOT_FOUND", Message: "producto o ubicación no encontrado"})
		case domain.ErrInsufficientStock:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
		case domain.ErrConflict:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONCURRENCY_CONFLICT", Message: "conflicto de concurrencia, reintentar"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
}

// List godoc
// @Summary      Listar movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        product_id   query  string  false  "Filtrar por producto"
// @Param        location_id  query  string  false  "Filtrar por ubicación (origen o destino)"
// @Param        kind         query  string  false  "receive | ship | adjust | transfer | return"
// @Param        from         query  string  false  "Fecha inicial (RFC3339)"
// @Param        to           query  string  false  "Fecha final (RFC3339)"
// @Param        limit        query  int     false  "Tamaño de página (default 20)"
// @Param        offset       query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	filter, err := movementFilterFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: err.Error()})
	}
	list, total, err := h.history.List(c.Context(), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementViewResponse(m))
	}
	return c.JSON(dto.MovementListResponse{
		Items: items,
		Meta:  dto.ListMeta{Total: total, Limit: filter.Limit, Offset: filter.Offset},
	})
}

// ExportCSV godoc
// @Summary      Exportar movimientos a CSV
// @Tags         movements
// @Security     Bearer
// @Produce      text/csv
// @Param        kind  query  string  false  "Filtrar por tipo de movimiento"
// @Success      200
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/movements/export [get]
func (h *MovementHandler) ExportCSV(c *fiber.Ctx) error {
	filter, err := movementFilterFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: err.Error()})
	}
	// Exporte completo del filtro, sin paginar
	filter.Limit = 10000
	filter.Offset = 0

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=movements_%s.csv`, time.Now().Format("20060102")))

	buf := c.Response().BodyWriter()
	if err := h.history.ExportCSV(c.Context(), buf, filter); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return nil
}

func movementFilterFromQuery(c *fiber.Ctx) (repository.MovementFilter, error) {
	filter := repository.MovementFilter{
		ProductID:  c.Query("product_id"),
		LocationID: c.Query("location_id"),
		Kind:       c.Query("kind"),
		Limit:      c.QueryInt("limit", 20),
		Offset:     c.QueryInt("offset", 0),
	}
	if filter.Kind != "" && !entity.ValidMovementKind(filter.Kind) {
		return filter, fmt.Errorf("tipo de movimiento desconocido: %s", filter.Kind)
	}
	if s := c.Query("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return filter, fmt.Errorf("from inválido: %s", s)
		}
		filter.From = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return filter, fmt.Errorf("to inválido: %s", s)
		}
		filter.To = &t
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return filter, nil
}

func toMovementResponse(m *entity.MovementRecord) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:                    m.ID,
		ProductID:             m.ProductID,
		LocationID:            m.LocationID,
		DestinationLocationID: m.DestinationLocationID,
		Kind:                  m.Kind,
		Quantity:              m.Quantity,
		Reference:             m.Reference,
		Notes:                 m.Notes,
		CreatedBy:             m.CreatedBy,
		OccurredAt:            m.OccurredAt,
	}
}

func toMovementViewResponse(v *repository.MovementView) *dto.MovementResponse {
	resp := toMovementResponse(&v.MovementRecord)
	resp.ProductName = v.ProductName
	resp.ProductSKU = v.ProductSKU
	resp.LocationName = v.LocationName
	resp.UserName = v.UserName
	return resp
}
