package service

import (
	"errors"

	"github.com/pageturn/bookstore-backend/internal/app/model"
	"github.com/pageturn/bookstore-backend/internal/app/repository"
	"github.com/pageturn/bookstore-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartNotFound     = errors.New("cart not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
)

type CartService interface {
	GetCart(userID uint) (*model.Cart, error)
	AddItem(userID, bookID uint, quantity int) (*model.CartItem, error)
	UpdateItem(userID, cartItemID uint, quantity int) (*model.CartItem, error)
	RemoveItem(userID, cartItemID uint) error
	ClearCart(userID uint) error
}

type cartService struct {
	cartRepo repository.CartRepository
	bookRepo repository.BookRepository
}

func NewCartService(cartRepo repository.CartRepository, bookRepo repository.BookRepository) CartService {
	return &cartService{
		cartRepo: cartRepo,
		bookRepo: bookRepo,
	}
}

func (s *cartService) GetCart(userID uint) (*model.Cart, error) {
	logger.Debug("Fetching user cart", map[string]interface{}{
		"user_id": userID,
	})

	cart, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cart not found for user", map[string]interface{}{
				"user_id": userID,
			})
			return nil, ErrCartNotFound
		}
		logger.Error("Failed to fetch user cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("User cart fetched successfully", map[string]interface{}{
		"user_id": userID,
		"cart_id": cart.ID,
		"count":   len(cart.Items),
	})
	return cart, nil
}

// AddItem puts a book into the user's cart. Adding a book already present
// merges into the existing line by increasing its quantity.
func (s *cartService) AddItem(userID, bookID uint, quantity int) (*model.CartItem, error) {
	logger.Info("Adding item to cart", map[string]interface{}{
		"user_id":  userID,
		"book_id":  bookID,
		"quantity": quantity,
	})

	if quantity <= 0 {
		logger.Warn("Cannot add to cart: invalid quantity", map[string]interface{}{
			"user_id":  userID,
			"book_id":  bookID,
			"quantity": quantity,
		})
		return nil, ErrInvalidQuantity
	}

	if _, err := s.bookRepo.FindByID(bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot add to cart: book not found", map[string]interface{}{
				"user_id": userID,
				"book_id": bookID,
			})
			return nil, ErrBookNotFound
		}
		logger.Error("Failed to fetch book", err, map[string]interface{}{
			"book_id": bookID,
		})
		return nil, err
	}

	cart, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cart not found for user", map[string]interface{}{
				"user_id": userID,
			})
			return nil, ErrCartNotFound
		}
		logger.Error("Failed to fetch user cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	existing, err := s.cartRepo.FindItemByCartAndBook(cart.ID, bookID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing cart item", err, map[string]interface{}{
			"cart_id": cart.ID,
			"book_id": bookID,
		})
		return nil, err
	}

	if existing != nil {
		logger.Debug("Merging into existing cart item", map[string]interface{}{
			"cart_item_id": existing.ID,
			"old_qty":      existing.Quantity,
			"added_qty":    quantity,
		})
		existing.Quantity += quantity
		if err := s.cartRepo.UpdateItem(existing); err != nil {
			logger.Error("Failed to update cart item", err, map[string]interface{}{
				"cart_item_id": existing.ID,
			})
			return nil, err
		}
		return s.cartRepo.FindItemByID(existing.ID)
	}

	item := &model.CartItem{
		CartID:   cart.ID,
		BookID:   bookID,
		Quantity: quantity,
	}
	if err := s.cartRepo.CreateItem(item); err != nil {
		logger.Error("Failed to create cart item", err, map[string]interface{}{
			"cart_id": cart.ID,
			"book_id": bookID,
		})
		return nil, err
	}

	logger.Info("Cart item added successfully", map[string]interface{}{
		"cart_item_id": item.ID,
	})
	return s.cartRepo.FindItemByID(item.ID)
}

func (s *cartService) UpdateItem(userID, cartItemID uint, quantity int) (*model.CartItem, error) {
	logger.Info("Updating cart item", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": cartItemID,
		"quantity":     quantity,
	})

	if quantity <= 0 {
		logger.Warn("Cannot update cart item: invalid quantity", map[string]interface{}{
			"cart_item_id": cartItemID,
			"quantity":     quantity,
		})
		return nil, ErrInvalidQuantity
	}

	item, err := s.ownedItem(userID, cartItemID)
	if err != nil {
		return nil, err
	}

	item.Quantity = quantity
	if err := s.cartRepo.UpdateItem(item); err != nil {
		logger.Error("Failed to update cart item", err, map[string]interface{}{
			"cart_item_id": cartItemID,
		})
		return nil, err
	}

	logger.Info("Cart item updated successfully", map[string]interface{}{
		"cart_item_id": cartItemID,
		"quantity":     quantity,
	})
	return item, nil
}

func (s *cartService) RemoveItem(userID, cartItemID uint) error {
	logger.Info("Removing cart item", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": cartItemID,
	})

	if _, err := s.ownedItem(userID, cartItemID); err != nil {
		return err
	}

	if err := s.cartRepo.DeleteItem(cartItemID); err != nil {
		logger.Error("Failed to delete cart item", err, map[string]interface{}{
			"cart_item_id": cartItemID,
		})
		return err
	}

	logger.Info("Cart item removed", map[string]interface{}{
		"cart_item_id": cartItemID,
	})
	return nil
}

func (s *cartService) ClearCart(userID uint) error {
	logger.Info("Clearing user cart", map[string]interface{}{
		"user_id": userID,
	})

	cart, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartNotFound
		}
		logger.Error("Failed to fetch user cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}

	if err := s.cartRepo.DeleteItemsByCartID(cart.ID); err != nil {
		logger.Error("Failed to clear cart", err, map[string]interface{}{
			"cart_id": cart.ID,
		})
		return err
	}

	logger.Info("User cart cleared", map[string]interface{}{
		"user_id": userID,
		"cart_id": cart.ID,
	})
	return nil
}

// ownedItem loads a cart item and verifies it belongs to the user's cart.
// An item owned by someone else reports not found rather than forbidden, so
// the response does not reveal whether the ID exists.
func (s *cartService) ownedItem(userID, cartItemID uint) (*model.CartItem, error) {
	item, err := s.cartRepo.FindItemByID(cartItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cart item not found", map[string]interface{}{
				"cart_item_id": cartItemID,
			})
			return nil, ErrCartItemNotFound
		}
		logger.Error("Failed to fetch cart item", err, map[string]interface{}{
			"cart_item_id": cartItemID,
		})
		return nil, err
	}

	cart, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		logger.Error("Failed to fetch user cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	if item.CartID != cart.ID {
		logger.Warn("Cart item access denied: ownership mismatch", map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": cartItemID,
			"owner_cart":   item.CartID,
		})
		return nil, ErrCartItemNotFound
	}
	return item, nil
}
