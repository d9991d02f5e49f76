package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mkravchuk/bookshop-platform/internal/models"
	"github.com/mkravchuk/bookshop-platform/internal/utils"
)

type UserRepository interface {
	CreateUserWithCart(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepo(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

// CreateUserWithCart inserts the user and their shopping cart in one
// transaction. A user never exists without a cart.
func (r *userRepository) CreateUserWithCart(ctx context.Context, user *models.User) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	userQuery := `
		INSERT INTO users(email, password, first_name, last_name, shipping_address, role, created_at)
		VALUES($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at`

	err = tx.QueryRowContext(dbCtx, userQuery,
		user.Email, user.Password, user.FirstName, user.LastName, user.ShippingAddress, user.Role).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	cartQuery := `
		INSERT INTO shopping_carts(user_id, created_at)
		VALUES($1, NOW())`

	if _, err := tx.ExecContext(dbCtx, cartQuery, user.ID); err != nil {
		return fmt.Errorf("failed to create shopping cart: %w", err)
	}

	return tx.Commit()
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	user := &models.User{}
	query := `
		SELECT id, email, password, first_name, last_name, shipping_address, role, created_at
		FROM users
		WHERE email = $1`

	err := r.DB.QueryRowContext(dbCtx, query, email).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName,
		&user.ShippingAddress, &user.Role, &user.CreatedAt)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	user := &models.User{}
	query := `
		SELECT id, email, first_name, last_name, shipping_address, role, created_at
		FROM users
		WHERE id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(
		&user.ID, &user.Email, &user.FirstName, &user.LastName,
		&user.ShippingAddress, &user.Role, &user.CreatedAt)
	if err != nil {
		return nil, err
	}

	return user, nil
}
