package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	appErrors "github.com/mkravchuk/bookshop-platform/internal/errors"
	"github.com/mkravchuk/bookshop-platform/internal/models"
	"github.com/mkravchuk/bookshop-platform/internal/repositories"
)

type CartService interface {
	GetCart(ctx context.Context, userID int64) (*models.Cart, error)
	AddItem(ctx context.Context, userID int64, req *models.AddCartItemRequest) (*models.Cart, error)
	UpdateItem(ctx context.Context, userID, itemID int64, req *models.UpdateCartItemRequest) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID, itemID int64) (*models.Cart, error)
	ClearCart(ctx context.Context, userID int64) error
}

type cartService struct {
	repo     repositories.CartRepository
	bookRepo repositories.BookRepository
}

func NewCartService(repo repositories.CartRepository, bookRepo repositories.BookRepository) CartService {
	return &cartService{repo: repo, bookRepo: bookRepo}
}

func (s *cartService) GetCart(ctx context.Context, userID int64) (*models.Cart, error) {
	cart, err := s.repo.GetCartByUserID(ctx, userID)
	if err != nil {
		return nil, appErrors.NotFoundError(fmt.Sprintf("No shopping cart for user id %d", userID)).WithError(err)
	}

	return cart, nil
}

func (s *cartService) AddItem(ctx context.Context, userID int64, req *models.AddCartItemRequest) (*models.Cart, error) {
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if _, err := s.bookRepo.GetBookByID(ctx, req.BookID); err != nil {
		return nil, appErrors.NotFoundError(fmt.Sprintf("Can't find book with id %d", req.BookID)).WithError(err)
	}

	if err := s.repo.AddItem(ctx, cart.ID, req.BookID, req.Quantity); err != nil {
		return nil, appErrors.DatabaseError("Failed to add item to cart").WithError(err)
	}

	return s.GetCart(ctx, userID)
}

func (s *cartService) UpdateItem(ctx context.Context, userID, itemID int64, req *models.UpdateCartItemRequest) (*models.Cart, error) {
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateItemQuantity(ctx, cart.ID, itemID, req.Quantity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError(fmt.Sprintf("No cart item with id %d", itemID)).WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to update cart item").WithError(err)
	}

	return s.GetCart(ctx, userID)
}

func (s *cartService) RemoveItem(ctx context.Context, userID, itemID int64) (*models.Cart, error) {
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.RemoveItem(ctx, cart.ID, itemID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError(fmt.Sprintf("No cart item with id %d", itemID)).WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to remove cart item").WithError(err)
	}

	return s.GetCart(ctx, userID)
}

func (s *cartService) ClearCart(ctx context.Context, userID int64) error {
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.repo.ClearCart(ctx, cart.ID); err != nil {
		return appErrors.DatabaseError("Failed to clear cart").WithError(err)
	}

	return nil
}
