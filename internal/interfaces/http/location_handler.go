package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stocktrack-api/internal/application/dto"
	"github.com/jhoicas/stocktrack-api/internal/application/usecase"
	"github.com/jhoicas/stocktrack-api/internal/domain"
)

// LocationHandler maneja las peticiones HTTP de ubicaciones.
type LocationHandler struct {
	locationUseCase *usecase.LocationUseCase
}

// NewLocationHandler construye el handler de ubicaciones.
func NewLocationHandler(locationUseCase *usecase.LocationUseCase) *LocationHandler {
	return &LocationHandler{locationUseCase: locationUseCase}
}

// Create godoc
// @Summary      Crear ubicación
// @Tags         locations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLocationRequest  true  "Ubicación a crear (type: store|warehouse)"
// @Success      201   {object}  dto.LocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/locations [post]
func (h *LocationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.locationUseCase.Create(c.Context(), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es obligatorio y type debe ser store o warehouse"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID godoc
// @Summary      Obtener ubicación
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la ubicación (UUID)"
// @Success      200  {object}  dto.LocationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/locations/{id} [get]
func (h *LocationHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.locationUseCase.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if resp == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ubicación no encontrada"})
	}
	return c.JSON(resp)
}

// Update godoc
// @Summary      Actualizar ubicación
// @Tags         locations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la ubicación (UUID)"
// @Param        body  body  dto.UpdateLocationRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.LocationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/locations/{id} [put]
func (h *LocationHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.locationUseCase.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "type debe ser store o warehouse"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if resp == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ubicación no encontrada"})
	}
	return c.JSON(resp)
}

// List godoc
// @Summary      Listar ubicaciones
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Tamaño de página (default 20)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.LocationListResponse
// @Router       /api/locations [get]
func (h *LocationHandler) List(c *fiber.Ctx) error {
	limit, offset := paginationFromQuery(c)
	resp, err := h.locationUseCase.List(c.Context(), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}

// Delete godoc
// @Summary      Eliminar ubicación
// @Tags         locations
// @Security     Bearer
// @Param        id  path  string  true  "ID de la ubicación (UUID)"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/locations/{id} [delete]
func (h *LocationHandler) Delete(c *fiber.Ctx) error {
	if err := h.locationUseCase.Delete(c.Context(), c.Params("id")); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ubicación no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
