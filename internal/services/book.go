package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mkravchuk/bookshop-platform/internal/api/middleware"
	"github.com/mkravchuk/bookshop-platform/internal/cache"
	appErrors "github.com/mkravchuk/bookshop-platform/internal/errors"
	"github.com/mkravchuk/bookshop-platform/internal/models"
	"github.com/mkravchuk/bookshop-platform/internal/repositories"
	"github.com/mkravchuk/bookshop-platform/internal/utils"
)

type BookService interface {
	CreateBook(ctx context.Context, req *models.CreateBookRequest) (*models.Book, error)
	GetBookByID(ctx context.Context, id int64) (*models.Book, error)
	ListBooks(ctx context.Context, page, pageSize int) (*models.PaginatedResponse, error)
	ListBooksByCategory(ctx context.Context, categoryID int64, page, pageSize int) (*models.PaginatedResponse, error)
	SearchBooks(ctx context.Context, params models.BookSearchParams, page, pageSize int) (*models.PaginatedResponse, error)
	UpdateBook(ctx context.Context, id int64, req *models.CreateBookRequest) (*models.Book, error)
	DeleteBook(ctx context.Context, id int64) error
}

type bookService struct {
	repo         repositories.BookRepository
	categoryRepo repositories.CategoryRepository
	cache        cache.Cache
	cacheTTL     time.Duration
}

func NewBookService(repo repositories.BookRepository, categoryRepo repositories.CategoryRepository,
	bookCache cache.Cache, cacheTTL time.Duration) BookService {
	return &bookService{
		repo:         repo,
		categoryRepo: categoryRepo,
		cache:        bookCache,
		cacheTTL:     cacheTTL,
	}
}

func bookCacheKey(id int64) string {
	return fmt.Sprintf("book:%d", id)
}

func (s *bookService) CreateBook(ctx context.Context, req *models.CreateBookRequest) (*models.Book, error) {
	if err := s.checkCategories(ctx, req.CategoryIDs); err != nil {
		return nil, err
	}

	book := &models.Book{
		Title:       req.Title,
		Author:      req.Author,
		ISBN:        req.ISBN,
		Price:       req.Price,
		Description: utils.SanitizeText(req.Description),
		CoverImage:  req.CoverImage,
		CategoryIDs: req.CategoryIDs,
	}

	if err := s.repo.CreateBook(ctx, book); err != nil {
		return nil, appErrors.DatabaseError("Failed to create book").WithError(err)
	}

	return book, nil
}

// GetBookByID reads through the cache. A cache failure is logged and
// absorbed, the catalog stays available without Redis.
func (s *bookService) GetBookByID(ctx context.Context, id int64) (*models.Book, error) {
	logger := middleware.LoggerFromContext(ctx)
	key := bookCacheKey(id)

	var cached models.Book

	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("Book cache read failed", slog.String("key", key), slog.Any("error", err))
	}

	if found {
		return &cached, nil
	}

	book, err := s.repo.GetBookByID(ctx, id)
	if err != nil {
		return nil, appErrors.NotFoundError(fmt.Sprintf("Can't find book with id %d", id)).WithError(err)
	}

	if err := s.cache.Set(ctx, key, book, s.cacheTTL); err != nil {
		logger.Warn("Book cache write failed", slog.String("key", key), slog.Any("error", err))
	}

	return book, nil
}

func (s *bookService) ListBooks(ctx context.Context, page, pageSize int) (*models.PaginatedResponse, error) {
	books, total, err := s.repo.ListBooks(ctx, page, pageSize)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch books").WithError(err)
	}

	return &models.PaginatedResponse{Data: books, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *bookService) ListBooksByCategory(ctx context.Context, categoryID int64, page, pageSize int) (*models.PaginatedResponse, error) {
	if _, err := s.categoryRepo.GetCategoryByID(ctx, categoryID); err != nil {
		return nil, appErrors.NotFoundError(fmt.Sprintf("No category with id %d", categoryID)).WithError(err)
	}

	books, total, err := s.repo.ListBooksByCategory(ctx, categoryID, page, pageSize)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch books").WithError(err)
	}

	return &models.PaginatedResponse{Data: books, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *bookService) SearchBooks(ctx context.Context, params models.BookSearchParams, page, pageSize int) (*models.PaginatedResponse, error) {
	books, total, err := s.repo.SearchBooks(ctx, params, page, pageSize)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to search books").WithError(err)
	}

	return &models.PaginatedResponse{Data: books, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *bookService) UpdateBook(ctx context.Context, id int64, req *models.CreateBookRequest) (*models.Book, error) {
	book, err := s.repo.GetBookByID(ctx, id)
	if err != nil {
		return nil, appErrors.NotFoundError(fmt.Sprintf("Can't find book with id %d", id)).WithError(err)
	}

	if err := s.checkCategories(ctx, req.CategoryIDs); err != nil {
		return nil, err
	}

	book.Title = req.Title
	book.Author = req.Author
	book.ISBN = req.ISBN
	book.Price = req.Price
	book.Description = utils.SanitizeText(req.Description)
	book.CoverImage = req.CoverImage
	book.CategoryIDs = req.CategoryIDs

	if err := s.repo.UpdateBook(ctx, book); err != nil {
		return nil, appErrors.DatabaseError("Failed to update book").WithError(err)
	}

	s.invalidate(ctx, id)

	return book, nil
}

func (s *bookService) DeleteBook(ctx context.Context, id int64) error {
	if err := s.repo.DeleteBook(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFoundError(fmt.Sprintf("Can't find book with id %d", id)).WithError(err)
		}

		return appErrors.DatabaseError("Failed to delete book").WithError(err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *bookService) checkCategories(ctx context.Context, categoryIDs []int64) error {
	for _, categoryID := range categoryIDs {
		if _, err := s.categoryRepo.GetCategoryByID(ctx, categoryID); err != nil {
			return appErrors.NotFoundError(fmt.Sprintf("No category with id %d", categoryID)).WithError(err)
		}
	}

	return nil
}

func (s *bookService) invalidate(ctx context.Context, id int64) {
	if err := s.cache.Delete(ctx, bookCacheKey(id)); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Book cache invalidation failed",
			slog.Int64("bookId", id), slog.Any("error", err))
	}
}
