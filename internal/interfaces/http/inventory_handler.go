package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stocktrack-api/internal/application/dto"
	"github.com/jhoicas/stocktrack-api/internal/application/inventory"
	"github.com/jhoicas/stocktrack-api/internal/domain"
	"github.com/jhoicas/stocktrack-api/internal/domain/entity"
	"github.com/jhoicas/stocktrack-api/internal/domain/repository"
)

// InventoryHandler maneja las peticiones HTTP de stock y alertas (protegido).
// La cantidad nunca se muta por aquí: eso es exclusivo de POST /api/movements.
type InventoryHandler struct {
	provision *inventory.ProvisionUseCase
	lowStock  *inventory.LowStockUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(provision *inventory.ProvisionUseCase, lowStock *inventory.LowStockUseCase) *InventoryHandler {
	return &InventoryHandler{provision: provision, lowStock: lowStock}
}

// List godoc
// @Summary      Listar stock por producto y ubicación
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id      query  string  false  "Filtrar por producto"
// @Param        location_id     query  string  false  "Filtrar por ubicación"
// @Param        low_stock_only  query  bool    false  "Solo filas en o bajo el nivel de reorden"
// @Param        limit           query  int     false  "Tamaño de página (default 20)"
// @Param        offset          query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.StockListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	filter := repository.StockFilter{
		ProductID:    c.Query("product_id"),
		LocationID:   c.Query("location_id"),
		LowStockOnly: c.QueryBool("low_stock_only", false),
		Limit:        c.QueryInt("limit", 20),
		Offset:       c.QueryInt("offset", 0),
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	list, total, err := h.provision.List(c.Context(), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	items := make([]dto.StockResponse, 0, len(list))
	for _, v := range list {
		items = append(items, *toStockResponse(v))
	}
	return c.JSON(dto.StockListResponse{
		Items: items,
		Meta:  dto.ListMeta{Total: total, Limit: filter.Limit, Offset: filter.Offset},
	})
}

// LowStock godoc
// @Summary      Alertas de stock bajo
// @Description  Filas con quantity <= reorder_level, ascendente por cantidad
//
//	(más agotadas primero). Proyección pura, recalculada por llamada.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LowStockAlertList
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	rows, err := h.lowStock.Evaluate(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	items := make([]dto.LowStockAlert, 0, len(rows))
	for _, v := range rows {
		items = append(items, dto.LowStockAlert{
			ProductID:       v.ProductID,
			ProductName:     v.ProductName,
			ProductSKU:      v.ProductSKU,
			LocationID:      v.LocationID,
			LocationName:    v.LocationName,
			CurrentQuantity: v.Quantity,
			ReorderLevel:    v.ReorderLevel,
			ReorderQuantity: v.ReorderQuantity,
		})
	}
	return c.JSON(dto.LowStockAlertList{Items: items, Total: len(items)})
}

// Create godoc
// @Summary      Aprovisionar fila de stock
// @Description  Crea explícitamente la fila (producto, ubicación) con cantidad
//
//	inicial y umbrales de reorden. Par duplicado -> 409.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockRequest  true  "product_id, location_id, quantity, reorder_level, reorder_quantity"
// @Success      201   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	row, err := h.provision.Create(c.Context(), inventory.ProvisionInput{
		ProductID:       in.ProductID,
		LocationID:      in.LocationID,
		Quantity:        in.Quantity,
		ReorderLevel:    in.ReorderLevel,
		ReorderQuantity: in.ReorderQuantity,
	})
	if err != nil {
		switch err {
		case domain.ErrInvalidQuantity:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto o ubicación no encontrado"})
		case domain.ErrDuplicate:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe stock para ese par producto-ubicación"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(toStockRowResponse(row))
}

// UpdateReorder godoc
// @Summary      Actualizar umbrales de reorden
// @Description  Solo reorder_level y reorder_quantity; la cantidad se muta
//
//	únicamente vía movimientos.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        product_id   path  string  true  "Producto (UUID)"
// @Param        location_id  path  string  true  "Ubicación (UUID)"
// @Param        body  body  dto.UpdateStockRequest  true  "reorder_level, reorder_quantity"
// @Success      200   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/{product_id}/{location_id} [put]
func (h *InventoryHandler) UpdateReorder(c *fiber.Ctx) error {
	productID := c.Params("product_id")
	locationID := c.Params("location_id")
	var in dto.UpdateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	current, err := h.provision.UpdateReorder(c.Context(), productID, locationID, in.ReorderLevel, in.ReorderQuantity)
	if err != nil {
		switch err {
		case domain.ErrInvalidQuantity:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "fila de stock no encontrada"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.JSON(toStockRowResponse(current))
}

func toStockRowResponse(row *entity.StockRow) *dto.StockResponse {
	return &dto.StockResponse{
		ProductID:       row.ProductID,
		LocationID:      row.LocationID,
		Quantity:        row.Quantity,
		ReorderLevel:    row.ReorderLevel,
		ReorderQuantity: row.ReorderQuantity,
		LastUpdated:     row.LastUpdated,
		IsLowStock:      row.IsLowStock(),
	}
}

func toStockResponse(v *repository.StockView) *dto.StockResponse {
	resp := toStockRowResponse(&v.StockRow)
	resp.ProductName = v.ProductName
	resp.ProductSKU = v.ProductSKU
	resp.LocationName = v.LocationName
	return resp
}
