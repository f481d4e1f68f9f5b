// Package seed provisions the demo accounts and sample catalog on startup so
// a fresh database is immediately usable.
package seed

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"shopora-backend/internal/logger"
	"shopora-backend/internal/models"
	"shopora-backend/internal/store"
)

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type ProductStore interface {
	Count(ctx context.Context) (int64, error)
	InsertMany(ctx context.Context, products []models.Product) error
}

var sampleProducts = []models.Product{
	{
		Name:        "Wireless Bluetooth Headphones",
		Description: "High-quality wireless headphones with noise cancellation and 30-hour battery life.",
		Price:       159.99,
		Image:       "https://images.pexels.com/photos/3394650/pexels-photo-3394650.jpeg",
		Category:    "Electronics",
		Stock:       50,
		Featured:    true,
	},
	{
		Name:        "Organic Cotton T-Shirt",
		Description: "Comfortable and sustainable organic cotton t-shirt available in multiple colors.",
		Price:       29.99,
		Image:       "https://images.pexels.com/photos/996329/pexels-photo-996329.jpeg",
		Category:    "Clothing",
		Stock:       100,
		Featured:    false,
	},
	{
		Name:        "Smart Fitness Watch",
		Description: "Advanced fitness tracker with heart rate monitor, GPS, and smartphone connectivity.",
		Price:       249.99,
		Image:       "https://images.pexels.com/photos/393047/pexels-photo-393047.jpeg",
		Category:    "Electronics",
		Stock:       25,
		Featured:    true,
	},
	{
		Name:        "Artisan Coffee Beans",
		Description: "Premium single-origin coffee beans, freshly roasted with rich flavor notes.",
		Price:       18.99,
		Image:       "https://images.pexels.com/photos/1695052/pexels-photo-1695052.jpeg",
		Category:    "Food & Beverage",
		Stock:       200,
		Featured:    false,
	},
	{
		Name:        "Minimalist Backpack",
		Description: "Sleek and functional backpack perfect for work, travel, or daily use.",
		Price:       79.99,
		Image:       "https://images.pexels.com/photos/2905238/pexels-photo-2905238.jpeg",
		Category:    "Accessories",
		Stock:       35,
		Featured:    true,
	},
	{
		Name:        "Wireless Phone Charger",
		Description: "Fast wireless charging pad compatible with all Qi-enabled devices.",
		Price:       34.99,
		Image:       "https://images.pexels.com/photos/4792509/pexels-photo-4792509.jpeg",
		Category:    "Electronics",
		Stock:       75,
		Featured:    false,
	},
}

// Run is idempotent: users are keyed by email and products are only inserted
// into an empty catalog.
func Run(ctx context.Context, users UserStore, products ProductStore, log *logger.Logger) error {
	if err := ensureUser(ctx, users, "Admin User", "admin@example.com", "admin123", models.RoleAdmin, log); err != nil {
		return err
	}
	if err := ensureUser(ctx, users, "Regular User", "user@example.com", "user123", models.RoleUser, log); err != nil {
		return err
	}

	count, err := products.Count(ctx)
	if err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if count == 0 {
		if err := products.InsertMany(ctx, sampleProducts); err != nil {
			return fmt.Errorf("insert sample products: %w", err)
		}
		log.Info("sample products created", "count", len(sampleProducts))
	}
	return nil
}

func ensureUser(ctx context.Context, users UserStore, name, email, password, role string, log *logger.Logger) error {
	_, err := users.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("lookup %s: %w", email, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user := models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     role,
		Cart:     []models.CartLine{},
	}
	if err := users.Create(ctx, &user); err != nil {
		return fmt.Errorf("create %s: %w", email, err)
	}
	log.Info("seed user created", "email", email, "role", role)
	return nil
}
