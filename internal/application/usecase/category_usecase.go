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

// CategoryUseCase casos de uso CRUD para categorías.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una nueva categoría.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	category := &entity.Category{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// GetByID obtiene una categoría por ID.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	return toCategoryResponse(category), nil
}

// Update actualiza una categoría.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	if in.Name != nil {
		category.Name = *in.Name
	}
	if in.Description != nil {
		category.Description = *in.Description
	}
	category.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// List lista categorías con paginación.
func (uc *CategoryUseCase) List(ctx context.Context, limit, offset int) (*dto.CategoryListResponse, error) {
	list, total, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	return &dto.CategoryListResponse{
		Items: items,
		Meta:  dto.ListMeta{Total: total, Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina una categoría por ID.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
