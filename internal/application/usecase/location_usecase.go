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

// LocationUseCase casos de uso CRUD para ubicaciones (tiendas y bodegas).
type LocationUseCase struct {
	repo repository.LocationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repo repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{repo: repo}
}

// Create crea una nueva ubicación. Tipo por defecto: warehouse.
func (uc *LocationUseCase) Create(ctx context.Context, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Type == "" {
		in.Type = entity.LocationTypeWarehouse
	}
	if in.Type != entity.LocationTypeStore && in.Type != entity.LocationTypeWarehouse {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	location := &entity.Location{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Type:      in.Type,
		Address:   in.Address,
		Phone:     in.Phone,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// GetByID obtiene una ubicación por ID.
func (uc *LocationUseCase) GetByID(ctx context.Context, id string) (*dto.LocationResponse, error) {
	location, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, nil
	}
	return toLocationResponse(location), nil
}

// Update actualiza una ubicación.
func (uc *LocationUseCase) Update(ctx context.Context, id string, in dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	location, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, nil
	}
	if in.Name != nil {
		location.Name = *in.Name
	}
	if in.Type != nil {
		if *in.Type != entity.LocationTypeStore && *in.Type != entity.LocationTypeWarehouse {
			return nil, domain.ErrInvalidInput
		}
		location.Type = *in.Type
	}
	if in.Address != nil {
		location.Address = *in.Address
	}
	if in.Phone != nil {
		location.Phone = *in.Phone
	}
	if in.IsActive != nil {
		location.IsActive = *in.IsActive
	}
	location.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// List lista ubicaciones con paginación.
func (uc *LocationUseCase) List(ctx context.Context, limit, offset int) (*dto.LocationListResponse, error) {
	list, total, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLocationResponse(l))
	}
	return &dto.LocationListResponse{
		Items: items,
		Meta:  dto.ListMeta{Total: total, Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina una ubicación por ID.
func (uc *LocationUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:        l.ID,
		Name:      l.Name,
		Type:      l.Type,
		Address:   l.Address,
		Phone:     l.Phone,
		IsActive:  l.IsActive,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}
