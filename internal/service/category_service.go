package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/vbonduro/vitrine/internal/domain"
	"github.com/vbonduro/vitrine/internal/store"
)

// categoryRepository is the subset of store.CategoryStore that CategoryService requires.
type categoryRepository interface {
	Create(ctx context.Context, name, icon string, parentID *int64) (*domain.Category, error)
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	ListChildren(ctx context.Context, parentID *int64) ([]*domain.Category, error)
	Delete(ctx context.Context, id int64) error
}

type CategoryService struct {
	categories categoryRepository
	logger     *slog.Logger
}

func NewCategoryService(categories categoryRepository, logger *slog.Logger) *CategoryService {
	return &CategoryService{categories: categories, logger: logger}
}

// ParseParent maps a parent reference to an ID. "" and "root" select the
// top level and yield nil.
func ParseParent(parent string) (*int64, error) {
	parent = strings.TrimSpace(parent)
	if parent == "" || parent == domain.RootParent {
		return nil, nil
	}
	id, err := strconv.ParseInt(parent, 10, 64)
	if err != nil || id <= 0 {
		return nil, domain.Validation("Invalid parent category")
	}
	return &id, nil
}

// List returns the direct children of parent, newest first.
func (s *CategoryService) List(ctx context.Context, parent string) ([]*domain.Category, error) {
	parentID, err := ParseParent(parent)
	if err != nil {
		return nil, err
	}
	return s.categories.ListChildren(ctx, parentID)
}

func (s *CategoryService) Get(ctx context.Context, id int64) (*domain.Category, error) {
	cat, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.NotFound("Category not found")
	}
	return cat, nil
}

// Create adds a root category, or a subcategory when parent names an
// existing root category.
func (s *CategoryService) Create(ctx context.Context, name, icon, parent string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	icon = strings.TrimSpace(icon)
	if name == "" || icon == "" {
		return nil, domain.Validation("Missing required fields")
	}

	parentID, err := ParseParent(parent)
	if err != nil {
		return nil, err
	}
	if parentID != nil {
		p, err := s.categories.GetByID(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.Validation("Parent category not found")
		}
		if !p.IsRoot() {
			return nil, domain.Validation("Subcategories cannot have children")
		}
	}

	cat, err := s.categories.Create(ctx, name, icon, parentID)
	if errors.Is(err, store.ErrDuplicate) {
		return nil, domain.Conflict("Category name already exists")
	}
	if err != nil {
		return nil, err
	}
	s.logger.Info("category created", "category_id", cat.ID, "parent_id", parentID)
	return cat, nil
}

// Delete removes a category that has no subcategories. Deleting an unknown
// id succeeds.
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	err := s.categories.Delete(ctx, id)
	if errors.Is(err, store.ErrHasChildren) {
		return domain.Conflict("Cannot delete category with subcategories")
	}
	if err != nil {
		return err
	}
	s.logger.Info("category deleted", "category_id", id)
	return nil
}
