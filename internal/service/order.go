package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/nextlevel/storefront/internal/logging"
	"github.com/nextlevel/storefront/internal/models"
	"github.com/nextlevel/storefront/internal/mykafka"
	"github.com/nextlevel/storefront/internal/repo"
	"github.com/nextlevel/storefront/internal/token"
	"github.com/nextlevel/storefront/internal/transport"
)

type OrderService struct {
	Repo   *repo.GormRepo
	Events *mykafka.Producer
}

func (s *OrderService) publish(ctx context.Context, key string, event map[string]interface{}) {
	if err := s.Events.PublishEvent(ctx, "order_events", key, event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_error", "error", err)
	}
}

// CreateOrder prices every line from the current catalog price, never from
// the client. Any unknown product id aborts the whole order.
func (s *OrderService) CreateOrder(ctx context.Context, userID string, req transport.CreateOrderRequest) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.create", "user_id", userID)

	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}

	distinct := make([]string, 0, len(req.Items))
	seen := make(map[string]bool, len(req.Items))
	for _, item := range req.Items {
		if item.ProductID == "" {
			return nil, fmt.Errorf("%w: product_id required", ErrValidation)
		}
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
		}
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			distinct = append(distinct, item.ProductID)
		}
	}

	products, err := s.Repo.ProductsByIDs(ctx, distinct)
	if err != nil {
		return nil, err
	}
	if len(products) != len(distinct) {
		return nil, fmt.Errorf("%w: one or more products not found", ErrValidation)
	}

	priceByID := make(map[string]float64, len(products))
	for _, p := range products {
		priceByID[p.ID] = p.Price
	}

	var total float64
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		price := priceByID[item.ProductID]
		total += price * float64(item.Quantity)
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     price,
		})
	}

	order := &models.Order{
		UserID: userID,
		Total:  total,
		Status: "pending",
		Items:  items,
	}
	if err := s.Repo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	s.publish(ctx, order.ID, map[string]interface{}{
		"type":     "order_created",
		"order_id": order.ID,
		"user_id":  userID,
		"total":    total,
	})

	l.Info("order_created", "order_id", order.ID, "total", total)
	return order, nil
}

func (s *OrderService) GetMyOrders(ctx context.Context, userID string, skip, take int) (int64, []models.Order, error) {
	return s.Repo.ListOrdersByUser(ctx, userID, skip, take)
}

// GetOrderByID is owner-or-admin: everyone else gets forbidden, not a 404.
func (s *OrderService) GetOrderByID(ctx context.Context, requester *token.Claims, id string) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order", ErrNotFound)
		}
		return nil, err
	}

	if order.UserID != requester.UserID && requester.Role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: you do not have access to this order", ErrForbidden)
	}
	return order, nil
}

func (s *OrderService) GetAllOrders(ctx context.Context, f repo.OrderFilter) (int64, []models.Order, error) {
	return s.Repo.ListOrders(ctx, f)
}

func (s *OrderService) UpdateOrderStatus(ctx context.Context, id, status string) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.update_status", "order_id", id)

	if status == "" {
		return nil, fmt.Errorf("%w: status is required", ErrValidation)
	}

	if err := s.Repo.UpdateOrderStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order", ErrNotFound)
		}
		return nil, err
	}

	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, order.ID, map[string]interface{}{
		"type":     "order_status_updated",
		"order_id": order.ID,
		"status":   status,
	})

	l.Info("order_status_updated", "status", status)
	return order, nil
}
