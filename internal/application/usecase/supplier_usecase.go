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

// SupplierUseCase casos de uso CRUD para proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create crea un nuevo proveedor.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	supplier := &entity.Supplier{
		ID:          uuid.New().String(),
		Name:        in.Name,
		ContactName: in.ContactName,
		Email:       in.Email,
		Phone:       in.Phone,
		Address:     in.Address,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// GetByID obtiene un proveedor por ID.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id string) (*dto.SupplierResponse, error) {
	supplier, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, nil
	}
	return toSupplierResponse(supplier), nil
}

// Update actualiza un proveedor.
func (uc *SupplierUseCase) Update(ctx context.Context, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	supplier, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, nil
	}
	if in.Name != nil {
		supplier.Name = *in.Name
	}
	if in.ContactName != nil {
		supplier.ContactName = *in.ContactName
	}
	if in.Email != nil {
		supplier.Email = *in.Email
	}
	if in.Phone != nil {
		supplier.Phone = *in.Phone
	}
	if in.Address != nil {
		supplier.Address = *in.Address
	}
	if in.IsActive != nil {
		supplier.IsActive = *in.IsActive
	}
	supplier.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// List lista proveedores con paginación.
func (uc *SupplierUseCase) List(ctx context.Context, limit, offset int) (*dto.SupplierListResponse, error) {
	list, total, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return &dto.SupplierListResponse{
		Items: items,
		Meta:  dto.ListMeta{Total: total, Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un proveedor por ID.
func (uc *SupplierUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:          s.ID,
		Name:        s.Name,
		ContactName: s.ContactName,
		Email:       s.Email,
		Phone:       s.Phone,
		Address:     s.Address,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
