package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/mkravchuk/bookshop-platform/internal/api/middleware"
	"github.com/mkravchuk/bookshop-platform/internal/errors"
	"github.com/mkravchuk/bookshop-platform/internal/models"
	"github.com/mkravchuk/bookshop-platform/internal/services"
	"github.com/mkravchuk/bookshop-platform/internal/utils"
	"github.com/mkravchuk/bookshop-platform/internal/utils/response"
	"github.com/shopspring/decimal"
)

type BookHandler struct {
	bookService services.BookService
	validator   *validator.Validate
}

func NewBookHandler(bookService services.BookService) *BookHandler {
	return &BookHandler{bookService: bookService, validator: validator.New()}
}

// CreateBook godoc
//	@Summary		Add a book to the catalog
//	@Description	Creates a book with its category links. Admin only.
//	@Tags			Books
//	@Accept			json
//	@Produce		json
//	@Param			book	body		models.CreateBookRequest	true	"Book details"
//	@Success		201		{object}	models.Book					"Successfully created book"
//	@Failure		400		{object}	response.ErrorResponse		"Validation error"
//	@Failure		403		{object}	response.ErrorResponse		"Admin role required"
//	@Failure		404		{object}	response.ErrorResponse		"Referenced category not found"
//	@Security		BearerAuth
//	@Router			/books [post]
func (h *BookHandler) CreateBook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateBookRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid create book input")
			return
		}

		book, err := h.bookService.CreateBook(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create book", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Book created successfully", slog.Int64("bookId", book.ID))
		response.Success(w, http.StatusCreated, book)
	}
}

// GetBook godoc
//	@Summary		Get a book by ID
//	@Tags			Books
//	@Produce		json
//	@Param			id	path		int						true	"Book ID"
//	@Success		200	{object}	models.Book				"Successfully retrieved book"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid book ID"
//	@Failure		404	{object}	response.ErrorResponse	"Book not found"
//	@Router			/books/{id} [get]
func (h *BookHandler) GetBook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid book id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		book, err := h.bookService.GetBookByID(r.Context(), id)
		if err != nil {
			logger.Error("Failed to get book", slog.Int64("bookId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, book)
	}
}

// ListBooks godoc
//	@Summary		List books with pagination
//	@Tags			Books
//	@Produce		json
//	@Param			page		query		int												false	"Page number (default: 1)"
//	@Param			pageSize	query		int												false	"Items per page (default: 10, max: 100)"
//	@Success		200			{object}	models.PaginatedResponse{Data=[]models.Book}	"Successfully retrieved books"
//	@Router			/books [get]
func (h *BookHandler) ListBooks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		page, pageSize := utils.ParsePagination(r)

		result, err := h.bookService.ListBooks(r.Context(), page, pageSize)
		if err != nil {
			logger.Error("Failed to list books", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, result)
	}
}

// ListBooksByCategory godoc
//	@Summary		List books in a category
//	@Tags			Books
//	@Produce		json
//	@Param			id			path		int												true	"Category ID"
//	@Param			page		query		int												false	"Page number (default: 1)"
//	@Param			pageSize	query		int												false	"Items per page (default: 10, max: 100)"
//	@Success		200			{object}	models.PaginatedResponse{Data=[]models.Book}	"Successfully retrieved books"
//	@Failure		404			{object}	response.ErrorResponse							"Category not found"
//	@Router			/categories/{id}/books [get]
func (h *BookHandler) ListBooksByCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		categoryID, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid category id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		page, pageSize := utils.ParsePagination(r)

		result, err := h.bookService.ListBooksByCategory(r.Context(), categoryID, page, pageSize)
		if err != nil {
			logger.Error("Failed to list books by category",
				slog.Int64("categoryId", categoryID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, result)
	}
}

// SearchBooks godoc
//	@Summary		Search the catalog
//	@Description	Filters by any combination of title, author, isbn, minPrice and maxPrice. Repeated title/author/isbn parameters are OR-ed, different filters are AND-ed.
//	@Tags			Books
//	@Produce		json
//	@Param			title		query		string											false	"Title substring, repeatable"
//	@Param			author		query		string											false	"Author substring, repeatable"
//	@Param			isbn		query		string											false	"Exact ISBN, repeatable"
//	@Param			minPrice	query		number											false	"Minimum price"
//	@Param			maxPrice	query		number											false	"Maximum price"
//	@Param			page		query		int												false	"Page number (default: 1)"
//	@Param			pageSize	query		int												false	"Items per page (default: 10, max: 100)"
//	@Success		200			{object}	models.PaginatedResponse{Data=[]models.Book}	"Successfully retrieved books"
//	@Failure		400			{object}	response.ErrorResponse							"Invalid price filter"
//	@Router			/books/search [get]
func (h *BookHandler) SearchBooks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		params, err := parseSearchParams(r)
		if err != nil {
			logger.Warn("Invalid search filters", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		page, pageSize := utils.ParsePagination(r)

		result, err := h.bookService.SearchBooks(r.Context(), params, page, pageSize)
		if err != nil {
			logger.Error("Failed to search books", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, result)
	}
}

func parseSearchParams(r *http.Request) (models.BookSearchParams, error) {
	query := r.URL.Query()

	params := models.BookSearchParams{
		Titles:  query["title"],
		Authors: query["author"],
		ISBNs:   query["isbn"],
	}

	if raw := query.Get("minPrice"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return params, errors.BadRequestError("Invalid minPrice: " + raw)
		}

		params.MinPrice = &price
	}

	if raw := query.Get("maxPrice"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return params, errors.BadRequestError("Invalid maxPrice: " + raw)
		}

		params.MaxPrice = &price
	}

	return params, nil
}

// UpdateBook godoc
//	@Summary		Update a book
//	@Description	Replaces the book's fields and category links. Admin only.
//	@Tags			Books
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"Book ID"
//	@Param			book	body		models.CreateBookRequest	true	"New book details"
//	@Success		200		{object}	models.Book					"Successfully updated book"
//	@Failure		400		{object}	response.ErrorResponse		"Validation error or invalid ID"
//	@Failure		403		{object}	response.ErrorResponse		"Admin role required"
//	@Failure		404		{object}	response.ErrorResponse		"Book or category not found"
//	@Security		BearerAuth
//	@Router			/books/{id} [put]
func (h *BookHandler) UpdateBook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid book id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		var req models.CreateBookRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update book input")
			return
		}

		book, err := h.bookService.UpdateBook(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update book", slog.Int64("bookId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Book updated successfully", slog.Int64("bookId", id))
		response.Success(w, http.StatusOK, book)
	}
}

// DeleteBook godoc
//	@Summary		Delete a book
//	@Description	Removes a book from the catalog. Admin only.
//	@Tags			Books
//	@Param			id	path	int	true	"Book ID"
//	@Success		204	"Successfully deleted book"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid book ID"
//	@Failure		403	{object}	response.ErrorResponse	"Admin role required"
//	@Failure		404	{object}	response.ErrorResponse	"Book not found"
//	@Security		BearerAuth
//	@Router			/books/{id} [delete]
func (h *BookHandler) DeleteBook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid book id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		if err := h.bookService.DeleteBook(r.Context(), id); err != nil {
			logger.Error("Failed to delete book", slog.Int64("bookId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Book deleted successfully", slog.Int64("bookId", id))
		w.WriteHeader(http.StatusNoContent)
	}
}
