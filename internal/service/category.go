package service

import (
	"context"
	"errors"
	"strings"

	"github.com/spendtrack/spendtrack-go/internal/model"
	"github.com/spendtrack/spendtrack-go/internal/repository"
)

var (
	ErrCategoryNameRequired = errors.New("category name is required")
	ErrCategoryNameTaken    = errors.New("category with this name already exists")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryHasExpenses  = errors.New("cannot delete category with existing expenses")
)

// CategoryService handles category business logic for one authenticated owner
// per call.
type CategoryService struct {
	categories *repository.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categories *repository.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// List returns the owner's categories ordered by name.
func (s *CategoryService) List(ctx context.Context, userID int64) ([]model.CategoryResponse, error) {
	categories, err := s.categories.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return model.CategoriesToResponse(categories), nil
}

// Create adds a new category. Names collide case-insensitively per owner;
// the pre-check gives a friendly error, the store's unique index settles
// concurrent creates.
func (s *CategoryService) Create(ctx context.Context, userID int64, req model.CategoryRequest) (model.CategoryResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return model.CategoryResponse{}, ErrCategoryNameRequired
	}

	taken, err := s.categories.NameExists(ctx, userID, name, 0)
	if err != nil {
		return model.CategoryResponse{}, err
	}
	if taken {
		return model.CategoryResponse{}, ErrCategoryNameTaken
	}

	category := &model.Category{UserID: userID, Name: name}
	if err := s.categories.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicateCategoryName) {
			return model.CategoryResponse{}, ErrCategoryNameTaken
		}
		return model.CategoryResponse{}, err
	}

	return model.NewCategoryResponse(category), nil
}

// Update renames a category. A row owned by someone else reads as not found.
func (s *CategoryService) Update(ctx context.Context, userID, id int64, req model.CategoryRequest) (model.CategoryResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return model.CategoryResponse{}, ErrCategoryNameRequired
	}

	category, err := s.categories.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return model.CategoryResponse{}, ErrCategoryNotFound
		}
		return model.CategoryResponse{}, err
	}

	if name == category.Name {
		return model.NewCategoryResponse(category), nil
	}

	taken, err := s.categories.NameExists(ctx, userID, name, id)
	if err != nil {
		return model.CategoryResponse{}, err
	}
	if taken {
		return model.CategoryResponse{}, ErrCategoryNameTaken
	}

	if err := s.categories.Rename(ctx, userID, id, name); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateCategoryName):
			return model.CategoryResponse{}, ErrCategoryNameTaken
		case errors.Is(err, repository.ErrCategoryNotFound):
			return model.CategoryResponse{}, ErrCategoryNotFound
		}
		return model.CategoryResponse{}, err
	}

	category.Name = name
	return model.NewCategoryResponse(category), nil
}

// Delete removes a category unless an expense still references it. The
// pre-check gives a friendly error; the foreign key is the arbiter against a
// concurrent expense insert.
func (s *CategoryService) Delete(ctx context.Context, userID, id int64) error {
	category, err := s.categories.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	inUse, err := s.categories.HasExpenses(ctx, category.ID)
	if err != nil {
		return err
	}
	if inUse {
		return ErrCategoryHasExpenses
	}

	if err := s.categories.Delete(ctx, userID, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrCategoryInUse):
			return ErrCategoryHasExpenses
		case errors.Is(err, repository.ErrCategoryNotFound):
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}
