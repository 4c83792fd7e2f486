package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stocktrack-api/internal/application/dto"
	"github.com/jhoicas/stocktrack-api/internal/domain"
	"github.com/jhoicas/stocktrack-api/internal/domain/entity"
	"github.com/jhoicas/stocktrack-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock no se toca aquí:
// se maneja por ubicación vía el motor de movimientos.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto. SKU único.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetBySKU(ctx, in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.Unit == "" {
		in.Unit = "pcs"
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		UnitPrice:   in.UnitPrice,
		CostPrice:   in.CostPrice,
		Barcode:     in.Barcode,
		Unit:        in.Unit,
		CategoryID:  in.CategoryID,
		SupplierID:  in.SupplierID,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. No permite modificar el stock (vía movimientos).
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.UnitPrice != nil {
		product.UnitPrice = *in.UnitPrice
	}
	if in.CostPrice != nil {
		product.CostPrice = *in.CostPrice
	}
	if in.Barcode != nil {
		product.Barcode = *in.Barcode
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.CategoryID != nil {
		product.CategoryID = *in.CategoryID
	}
	if in.SupplierID != nil {
		product.SupplierID = *in.SupplierID
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, limit, offset int) (*dto.ProductListResponse, error) {
	list, total, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Meta:  dto.ListMeta{Total: total, Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		UnitPrice:   p.UnitPrice,
		CostPrice:   p.CostPrice,
		Barcode:     p.Barcode,
		Unit:        p.Unit,
		CategoryID:  p.CategoryID,
		SupplierID:  p.SupplierID,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
