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
	"github.com/nextlevel/storefront/internal/service/search"
	"github.com/nextlevel/storefront/internal/transport"
)

type ProductService struct {
	Repo   *repo.GormRepo
	Events *mykafka.Producer
	Index  *search.Index
}

func (s *ProductService) publish(ctx context.Context, event map[string]interface{}) {
	if err := s.Events.PublishEvent(ctx, "product_events", fmt.Sprint(event["product_id"]), event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_error", "error", err)
	}
}

func (s *ProductService) reindex(ctx context.Context, p *models.Product) {
	if err := s.Index.IndexProduct(ctx, p); err != nil {
		logging.FromContext(ctx).Error("search_index_error", "product_id", p.ID, "error", err)
	}
}

func (s *ProductService) GetAllProducts(ctx context.Context, f repo.ProductFilter) (int64, []models.Product, error) {
	if f.MinPrice != nil && *f.MinPrice < 0 {
		return 0, nil, fmt.Errorf("%w: min_price must not be negative", ErrValidation)
	}
	if f.MaxPrice != nil && *f.MaxPrice < 0 {
		return 0, nil, fmt.Errorf("%w: max_price must not be negative", ErrValidation)
	}
	return s.Repo.ListProducts(ctx, f)
}

func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product", ErrNotFound)
		}
		return nil, err
	}
	return product, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "product.create")

	if req.Name == "" || req.Description == "" {
		return nil, fmt.Errorf("%w: name and description are required", ErrValidation)
	}
	if req.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", ErrValidation)
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	}
	if err := s.Repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	s.reindex(ctx, product)
	s.publish(ctx, map[string]interface{}{
		"type":       "product_created",
		"product_id": product.ID,
		"name":       product.Name,
	})

	l.Info("product_created", "product_id", product.ID)
	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id string, req transport.UpdateProductRequest) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "product.update", "product_id", id)

	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product", ErrNotFound)
		}
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrValidation)
		}
		product.Name = *req.Name
	}
	if req.Description != nil {
		if *req.Description == "" {
			return nil, fmt.Errorf("%w: description must not be empty", ErrValidation)
		}
		product.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, fmt.Errorf("%w: price must be positive", ErrValidation)
		}
		product.Price = *req.Price
	}
	if req.ImageURL != nil {
		product.ImageURL = req.ImageURL
	}

	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}

	s.reindex(ctx, product)
	s.publish(ctx, map[string]interface{}{
		"type":       "product_updated",
		"product_id": product.ID,
		"name":       product.Name,
	})

	l.Info("product_updated")
	return product, nil
}

// DeleteProduct hard-deletes, unless an order line still references the
// product: order history keeps its price snapshots but the product row
// itself must stay while referenced.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	l := logging.FromContext(ctx).With("svc", "product.delete", "product_id", id)

	if _, err := s.Repo.GetProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product", ErrNotFound)
		}
		return err
	}

	referenced, err := s.Repo.ProductReferenced(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return fmt.Errorf("%w: cannot delete product that is part of existing orders", ErrValidation)
	}

	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product", ErrNotFound)
		}
		return err
	}

	if err := s.Index.DeleteProduct(ctx, id); err != nil {
		l.Error("search_index_error", "error", err)
	}
	s.publish(ctx, map[string]interface{}{
		"type":       "product_deleted",
		"product_id": id,
	})

	l.Info("product_deleted")
	return nil
}

func (s *ProductService) Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error) {
	if query == "" {
		return 0, nil, fmt.Errorf("%w: query is required", ErrValidation)
	}
	if s.Index == nil {
		return 0, nil, fmt.Errorf("%w: search is not available", ErrValidation)
	}
	return s.Index.Search(ctx, query, from, size)
}
