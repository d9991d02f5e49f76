package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/mkravchuk/bookshop-platform/internal/models"
	"github.com/mkravchuk/bookshop-platform/internal/utils"
)

type BookRepository interface {
	CreateBook(ctx context.Context, book *models.Book) error
	GetBookByID(ctx context.Context, id int64) (*models.Book, error)
	ListBooks(ctx context.Context, page, pageSize int) ([]models.Book, int, error)
	ListBooksByCategory(ctx context.Context, categoryID int64, page, pageSize int) ([]models.Book, int, error)
	SearchBooks(ctx context.Context, params models.BookSearchParams, page, pageSize int) ([]models.Book, int, error)
	UpdateBook(ctx context.Context, book *models.Book) error
	DeleteBook(ctx context.Context, id int64) error
}

type bookRepository struct {
	DB *sql.DB
}

func NewBookRepo(db *sql.DB) BookRepository {
	return &bookRepository{DB: db}
}

func (r *bookRepository) CreateBook(ctx context.Context, book *models.Book) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO books(title, author, isbn, price, description, cover_image, created_at, updated_at)
		VALUES($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	err = tx.QueryRowContext(dbCtx, query,
		book.Title, book.Author, book.ISBN, book.Price, book.Description, book.CoverImage).
		Scan(&book.ID, &book.CreatedAt, &book.UpdatedAt)
	if err != nil {
		return err
	}

	if err := replaceBookCategories(dbCtx, tx, book.ID, book.CategoryIDs); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *bookRepository) GetBookByID(ctx context.Context, id int64) (*models.Book, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	book := &models.Book{}
	query := `
		SELECT id, title, author, isbn, price, description, cover_image, created_at, updated_at
		FROM books
		WHERE id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(
		&book.ID, &book.Title, &book.Author, &book.ISBN, &book.Price,
		&book.Description, &book.CoverImage, &book.CreatedAt, &book.UpdatedAt)
	if err != nil {
		return nil, err
	}

	categoryQuery := `SELECT category_id FROM book_categories WHERE book_id = $1 ORDER BY category_id`

	rows, err := r.DB.QueryContext(dbCtx, categoryQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var categoryID int64
		if err := rows.Scan(&categoryID); err != nil {
			return nil, err
		}

		book.CategoryIDs = append(book.CategoryIDs, categoryID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return book, nil
}

func (r *bookRepository) ListBooks(ctx context.Context, page, pageSize int) ([]models.Book, int, error) {
	return r.queryBookPage(ctx,
		`SELECT COUNT(*) FROM books`, nil,
		`SELECT id, title, author, isbn, price, description, cover_image, created_at, updated_at
		 FROM books
		 ORDER BY title
		 LIMIT $1 OFFSET $2`,
		[]any{pageSize, (page - 1) * pageSize})
}

func (r *bookRepository) ListBooksByCategory(ctx context.Context, categoryID int64, page, pageSize int) ([]models.Book, int, error) {
	return r.queryBookPage(ctx,
		`SELECT COUNT(*) FROM book_categories WHERE category_id = $1`, []any{categoryID},
		`SELECT b.id, b.title, b.author, b.isbn, b.price, b.description, b.cover_image, b.created_at, b.updated_at
		 FROM books b
		 JOIN book_categories bc ON bc.book_id = b.id
		 WHERE bc.category_id = $1
		 ORDER BY b.title
		 LIMIT $2 OFFSET $3`,
		[]any{categoryID, pageSize, (page - 1) * pageSize})
}

// SearchBooks builds the WHERE clause from whichever filters are present.
// Filters of the same kind are OR-ed, different kinds are AND-ed.
func (r *bookRepository) SearchBooks(ctx context.Context, params models.BookSearchParams, page, pageSize int) ([]models.Book, int, error) {
	where, args := buildBookSearchWhere(params)

	countQuery := `SELECT COUNT(*) FROM books` + where

	listQuery := fmt.Sprintf(
		`SELECT id, title, author, isbn, price, description, cover_image, created_at, updated_at
		 FROM books%s
		 ORDER BY title
		 LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)

	listArgs := append(append([]any{}, args...), pageSize, (page-1)*pageSize)

	return r.queryBookPage(ctx, countQuery, args, listQuery, listArgs)
}

func buildBookSearchWhere(params models.BookSearchParams) (string, []any) {
	var clauses []string
	var args []any

	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	orGroup := func(column string, values []string) {
		if len(values) == 0 {
			return
		}

		parts := make([]string, 0, len(values))
		for _, v := range values {
			parts = append(parts, fmt.Sprintf("%s ILIKE %s", column, next("%"+v+"%")))
		}

		clauses = append(clauses, "("+strings.Join(parts, " OR ")+")")
	}

	orGroup("title", params.Titles)
	orGroup("author", params.Authors)

	if len(params.ISBNs) > 0 {
		clauses = append(clauses, fmt.Sprintf("isbn = ANY(%s)", next(pq.Array(params.ISBNs))))
	}

	if params.MinPrice != nil {
		clauses = append(clauses, fmt.Sprintf("price >= %s", next(*params.MinPrice)))
	}

	if params.MaxPrice != nil {
		clauses = append(clauses, fmt.Sprintf("price <= %s", next(*params.MaxPrice)))
	}

	if len(clauses) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *bookRepository) queryBookPage(ctx context.Context, countQuery string, countArgs []any, listQuery string, listArgs []any) ([]models.Book, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int
	if err := r.DB.QueryRowContext(dbCtx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.QueryContext(dbCtx, listQuery, listArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var books []models.Book

	for rows.Next() {
		var book models.Book
		if err := rows.Scan(&book.ID, &book.Title, &book.Author, &book.ISBN, &book.Price,
			&book.Description, &book.CoverImage, &book.CreatedAt, &book.UpdatedAt); err != nil {
			return nil, 0, err
		}

		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return books, total, nil
}

func (r *bookRepository) UpdateBook(ctx context.Context, book *models.Book) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE books
		SET title = $1, author = $2, isbn = $3, price = $4, description = $5, cover_image = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at`

	err = tx.QueryRowContext(dbCtx, query,
		book.Title, book.Author, book.ISBN, book.Price, book.Description, book.CoverImage, book.ID).
		Scan(&book.UpdatedAt)
	if err != nil {
		return err
	}

	if err := replaceBookCategories(dbCtx, tx, book.ID, book.CategoryIDs); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *bookRepository) DeleteBook(ctx context.Context, id int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func replaceBookCategories(ctx context.Context, tx *sql.Tx, bookID int64, categoryIDs []int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM book_categories WHERE book_id = $1`, bookID); err != nil {
		return err
	}

	for _, categoryID := range categoryIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO book_categories(book_id, category_id) VALUES($1, $2)`, bookID, categoryID)
		if err != nil {
			return err
		}
	}

	return nil
}
