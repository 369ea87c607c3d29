package service

import (
	"errors"
	"time"

	"github.com/pageturn/bookstore-backend/internal/app/model"
	"github.com/pageturn/bookstore-backend/internal/app/repository"
	"github.com/pageturn/bookstore-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderItemNotFound  = errors.New("order item not found")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrBookUnavailable    = errors.New("book is no longer available")
	ErrInvalidOrderStatus = errors.New("invalid order status")
)

type OrderService interface {
	CreateOrder(userID uint, shippingAddress string) (*model.Order, error)
	GetUserOrders(userID uint) ([]model.Order, error)
	GetOrderByID(userID, orderID uint) (*model.Order, error)
	UpdateOrderStatus(orderID uint, status model.OrderStatus) error
	ListOrderItems(userID, orderID uint) ([]model.OrderItem, error)
	GetOrderItem(userID, orderID, itemID uint) (*model.OrderItem, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
}

func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
	}
}

// CreateOrder converts the user's cart into an order. Each line freezes the
// book's price at checkout time, so later catalog price changes never touch
// existing orders. The cart is emptied in the same transaction as the order
// insert.
func (s *orderService) CreateOrder(userID uint, shippingAddress string) (*model.Order, error) {
	logger.Info("Creating order from cart", map[string]interface{}{
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
		logger.Error("Failed to fetch cart for checkout", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	if len(cart.Items) == 0 {
		logger.Warn("Cannot create order: cart is empty", map[string]interface{}{
			"user_id": userID,
			"cart_id": cart.ID,
		})
		return nil, ErrEmptyCart
	}

	var total float64
	orderItems := make([]model.OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		// The cart preloads Book with the soft-delete scope active, so a book
		// removed from the catalog after being carted loads as a zero value.
		// Checking out such a line would freeze a zero price.
		if item.Book.ID == 0 {
			logger.Warn("Cannot create order: carted book no longer available", map[string]interface{}{
				"user_id":      userID,
				"cart_item_id": item.ID,
				"book_id":      item.BookID,
			})
			return nil, ErrBookUnavailable
		}
		linePrice := item.Book.Price * float64(item.Quantity)
		orderItems = append(orderItems, model.OrderItem{
			BookID:   item.BookID,
			Quantity: item.Quantity,
			Price:    linePrice,
		})
		total += linePrice
	}

	order := &model.Order{
		UserID:          userID,
		Status:          model.OrderStatusPending,
		Total:           total,
		OrderDate:       time.Now(),
		ShippingAddress: shippingAddress,
		OrderItems:      orderItems,
	}

	if err := s.orderRepo.Create(order, cart.ID); err != nil {
		logger.Error("Failed to create order", err, map[string]interface{}{
			"user_id": userID,
			"cart_id": cart.ID,
		})
		return nil, err
	}

	logger.Info("Order created successfully", map[string]interface{}{
		"order_id": order.ID,
		"user_id":  userID,
		"total":    order.Total,
		"items":    len(order.OrderItems),
	})
	return s.orderRepo.FindByID(order.ID)
}

func (s *orderService) GetUserOrders(userID uint) ([]model.Order, error) {
	logger.Debug("Fetching user orders", map[string]interface{}{
		"user_id": userID,
	})

	orders, err := s.orderRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user orders", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("User orders fetched successfully", map[string]interface{}{
		"user_id": userID,
		"count":   len(orders),
	})
	return orders, nil
}

func (s *orderService) GetOrderByID(userID, orderID uint) (*model.Order, error) {
	logger.Debug("Fetching order by ID", map[string]interface{}{
		"user_id":  userID,
		"order_id": orderID,
	})

	return s.ownedOrder(userID, orderID)
}

// UpdateOrderStatus validates the target status and the order's existence
// before writing anything. An unknown status or missing order leaves the
// database untouched.
func (s *orderService) UpdateOrderStatus(orderID uint, status model.OrderStatus) error {
	logger.Info("Updating order status", map[string]interface{}{
		"order_id": orderID,
		"status":   status,
	})

	if !status.IsValid() {
		logger.Warn("Cannot update order: invalid status", map[string]interface{}{
			"order_id": orderID,
			"status":   status,
		})
		return ErrInvalidOrderStatus
	}

	if _, err := s.orderRepo.FindByID(orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot update order: not found", map[string]interface{}{
				"order_id": orderID,
			})
			return ErrOrderNotFound
		}
		logger.Error("Failed to fetch order for status update", err, map[string]interface{}{
			"order_id": orderID,
		})
		return err
	}

	if err := s.orderRepo.UpdateStatus(orderID, status); err != nil {
		logger.Error("Failed to update order status", err, map[string]interface{}{
			"order_id": orderID,
			"status":   status,
		})
		return err
	}

	logger.Info("Order status updated successfully", map[string]interface{}{
		"order_id": orderID,
		"status":   status,
	})
	return nil
}

func (s *orderService) ListOrderItems(userID, orderID uint) ([]model.OrderItem, error) {
	logger.Debug("Fetching order items", map[string]interface{}{
		"user_id":  userID,
		"order_id": orderID,
	})

	order, err := s.ownedOrder(userID, orderID)
	if err != nil {
		return nil, err
	}
	return order.OrderItems, nil
}

func (s *orderService) GetOrderItem(userID, orderID, itemID uint) (*model.OrderItem, error) {
	logger.Debug("Fetching order item", map[string]interface{}{
		"user_id":  userID,
		"order_id": orderID,
		"item_id":  itemID,
	})

	order, err := s.ownedOrder(userID, orderID)
	if err != nil {
		return nil, err
	}

	for i := range order.OrderItems {
		if order.OrderItems[i].ID == itemID {
			return &order.OrderItems[i], nil
		}
	}

	logger.Warn("Order item not found in order", map[string]interface{}{
		"order_id": orderID,
		"item_id":  itemID,
	})
	return nil, ErrOrderItemNotFound
}

// ownedOrder loads an order and verifies ownership. Someone else's order
// reports not found so the response does not leak which IDs exist.
func (s *orderService) ownedOrder(userID, orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Order not found", map[string]interface{}{
				"order_id": orderID,
			})
			return nil, ErrOrderNotFound
		}
		logger.Error("Failed to fetch order", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}

	if order.UserID != userID {
		logger.Warn("Order access denied: ownership mismatch", map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
			"owner_id": order.UserID,
		})
		return nil, ErrOrderNotFound
	}
	return order, nil
}
