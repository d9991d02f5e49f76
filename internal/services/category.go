package services

import (
	"context"
	"fmt"

	"github.com/mkravchuk/bookshop-platform/internal/errors"
	"github.com/mkravchuk/bookshop-platform/internal/models"
	"github.com/mkravchuk/bookshop-platform/internal/repositories"
	"github.com/mkravchuk/bookshop-platform/internal/utils"
)

type CategoryService interface {
	CreateCategory(ctx context.Context, req *models.CategoryRequest) (*models.Category, error)
	GetCategoryByID(ctx context.Context, id int64) (*models.Category, error)
	ListCategories(ctx context.Context, page, pageSize int) (*models.PaginatedResponse, error)
	UpdateCategory(ctx context.Context, id int64, req *models.CategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

type categoryService struct {
	repo repositories.CategoryRepository
}

func NewCategoryService(repo repositories.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) CreateCategory(ctx context.Context, req *models.CategoryRequest) (*models.Category, error) {
	existing, _ := s.repo.GetCategoryByName(ctx, req.Name)
	if existing != nil {
		return nil, errors.DuplicateEntryError(fmt.Sprintf("Category already exists: %s", req.Name))
	}

	category := &models.Category{
		Name:        req.Name,
		Description: utils.SanitizeText(req.Description),
	}

	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, errors.DatabaseError("Failed to create category").WithError(err)
	}

	return category, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	category, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError(fmt.Sprintf("No category with id %d", id)).WithError(err)
	}

	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context, page, pageSize int) (*models.PaginatedResponse, error) {
	categories, total, err := s.repo.ListCategories(ctx, page, pageSize)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch categories").WithError(err)
	}

	return &models.PaginatedResponse{
		Data:     categories,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id int64, req *models.CategoryRequest) (*models.Category, error) {
	category, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError(fmt.Sprintf("No category with id %d", id)).WithError(err)
	}

	category.Name = req.Name
	category.Description = utils.SanitizeText(req.Description)

	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		return nil, errors.DatabaseError("Failed to update category").WithError(err)
	}

	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return errors.NotFoundError(fmt.Sprintf("No category with id %d", id)).WithError(err)
	}

	return nil
}
