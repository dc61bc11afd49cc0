package main

import (
	"context"
	"fmt"
	"log"

	"github.com/nextlevel/storefront/internal/config"
	"github.com/nextlevel/storefront/internal/db"
	"github.com/nextlevel/storefront/internal/hash"
	"github.com/nextlevel/storefront/internal/models"
	"github.com/nextlevel/storefront/internal/repo"
	"github.com/nextlevel/storefront/internal/service"
	"github.com/nextlevel/storefront/internal/transport"
)

// Seeds a minimal dataset for local development: one admin, one customer,
// a handful of products and a sample order.
func main() {
	cfg := config.Load()

	ctx := context.Background()
	gdb, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database error: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	store := repo.New(gdb)

	admin, err := ensureUser(ctx, store, "admin@example.com", "Pass1234!", models.RoleAdmin)
	if err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	customer, err := ensureUser(ctx, store, "customer@example.com", "Pass1234!", models.RoleCustomer)
	if err != nil {
		log.Fatalf("seed customer: %v", err)
	}

	products := []models.Product{
		{Name: "Classic Tee", Description: "Plain cotton t-shirt", Price: 19.99},
		{Name: "Denim Jacket", Description: "Washed denim jacket", Price: 79.90},
		{Name: "Canvas Sneakers", Description: "Low-top canvas sneakers", Price: 49.50},
		{Name: "Wool Beanie", Description: "Ribbed wool beanie", Price: 14.00},
	}
	for i := range products {
		if err := store.CreateProduct(ctx, &products[i]); err != nil {
			log.Fatalf("seed product %q: %v", products[i].Name, err)
		}
	}

	orders := &service.OrderService{Repo: store}
	order, err := orders.CreateOrder(ctx, customer.ID, transport.CreateOrderRequest{
		Items: []transport.OrderItemRequest{
			{ProductID: products[0].ID, Quantity: 2},
			{ProductID: products[2].ID, Quantity: 1},
		},
	})
	if err != nil {
		log.Fatalf("seed order: %v", err)
	}

	fmt.Printf("seeded admin=%s customer=%s products=%d order=%s total=%.2f\n",
		admin.Email, customer.Email, len(products), order.ID, order.Total)
}

func ensureUser(ctx context.Context, store *repo.GormRepo, email, password, role string) (*models.User, error) {
	if existing, err := store.GetUserByEmail(ctx, email); err == nil {
		return existing, nil
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{Email: email, PasswordHash: &pwHash, Role: role}
	if err := store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
