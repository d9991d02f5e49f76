package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/mkravchuk/bookshop-platform/internal/api/middleware"
	"github.com/mkravchuk/bookshop-platform/internal/models"
	"github.com/mkravchuk/bookshop-platform/internal/services"
	"github.com/mkravchuk/bookshop-platform/internal/utils"
	"github.com/mkravchuk/bookshop-platform/internal/utils/response"
)

type CategoryHandler struct {
	categoryService services.CategoryService
	validator       *validator.Validate
}

func NewCategoryHandler(categoryService services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, validator: validator.New()}
}

// CreateCategory godoc
//	@Summary		Create a category
//	@Description	Adds a category to the catalog. Admin only.
//	@Tags			Categories
//	@Accept			json
//	@Produce		json
//	@Param			category	body		models.CategoryRequest	true	"Category details"
//	@Success		201			{object}	models.Category			"Successfully created category"
//	@Failure		400			{object}	response.ErrorResponse	"Validation error"
//	@Failure		403			{object}	response.ErrorResponse	"Admin role required"
//	@Failure		409			{object}	response.ErrorResponse	"Category name already exists"
//	@Security		BearerAuth
//	@Router			/categories [post]
func (h *CategoryHandler) CreateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.CategoryRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid create category input")
			return
		}

		category, err := h.categoryService.CreateCategory(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create category", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Category created successfully", slog.Int64("categoryId", category.ID))
		response.Success(w, http.StatusCreated, category)
	}
}

// GetCategory godoc
//	@Summary		Get a category by ID
//	@Tags			Categories
//	@Produce		json
//	@Param			id	path		int						true	"Category ID"
//	@Success		200	{object}	models.Category			"Successfully retrieved category"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid category ID"
//	@Failure		404	{object}	response.ErrorResponse	"Category not found"
//	@Router			/categories/{id} [get]
func (h *CategoryHandler) GetCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid category id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		category, err := h.categoryService.GetCategoryByID(r.Context(), id)
		if err != nil {
			logger.Error("Failed to get category", slog.Int64("categoryId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, category)
	}
}

// ListCategories godoc
//	@Summary		List categories with pagination
//	@Tags			Categories
//	@Produce		json
//	@Param			page		query		int													false	"Page number (default: 1)"
//	@Param			pageSize	query		int													false	"Items per page (default: 10, max: 100)"
//	@Success		200			{object}	models.PaginatedResponse{Data=[]models.Category}	"Successfully retrieved categories"
//	@Router			/categories [get]
func (h *CategoryHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		page, pageSize := utils.ParsePagination(r)

		result, err := h.categoryService.ListCategories(r.Context(), page, pageSize)
		if err != nil {
			logger.Error("Failed to list categories", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, result)
	}
}

// UpdateCategory godoc
//	@Summary		Update a category
//	@Description	Replaces the category's name and description. Admin only.
//	@Tags			Categories
//	@Accept			json
//	@Produce		json
//	@Param			id			path		int						true	"Category ID"
//	@Param			category	body		models.CategoryRequest	true	"New category details"
//	@Success		200			{object}	models.Category			"Successfully updated category"
//	@Failure		400			{object}	response.ErrorResponse	"Validation error or invalid ID"
//	@Failure		403			{object}	response.ErrorResponse	"Admin role required"
//	@Failure		404			{object}	response.ErrorResponse	"Category not found"
//	@Security		BearerAuth
//	@Router			/categories/{id} [put]
func (h *CategoryHandler) UpdateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid category id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		var req models.CategoryRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update category input")
			return
		}

		category, err := h.categoryService.UpdateCategory(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update category", slog.Int64("categoryId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Category updated successfully", slog.Int64("categoryId", id))
		response.Success(w, http.StatusOK, category)
	}
}

// DeleteCategory godoc
//	@Summary		Delete a category
//	@Description	Removes a category. Books keep existing, only the link rows go. Admin only.
//	@Tags			Categories
//	@Param			id	path	int	true	"Category ID"
//	@Success		204	"Successfully deleted category"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid category ID"
//	@Failure		403	{object}	response.ErrorResponse	"Admin role required"
//	@Failure		404	{object}	response.ErrorResponse	"Category not found"
//	@Security		BearerAuth
//	@Router			/categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid category id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		if err := h.categoryService.DeleteCategory(r.Context(), id); err != nil {
			logger.Error("Failed to delete category", slog.Int64("categoryId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Category deleted successfully", slog.Int64("categoryId", id))
		w.WriteHeader(http.StatusNoContent)
	}
}
