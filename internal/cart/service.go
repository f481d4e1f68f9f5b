// Package cart implements the cart/catalog consistency contract: one line per
// product, positive quantities only, insertion-ordered lines, and product data
// resolved against the catalog on every read so prices are never stale.
package cart

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopora-backend/internal/logger"
	"shopora-backend/internal/models"
)

// ErrLineNotFound is returned by Update when the cart holds no line for the
// requested product. This is an expected caller error (stale client state),
// unlike a missing user which indicates a broken auth contract upstream.
var ErrLineNotFound = errors.New("item not found in cart")

// UserStore is the slice of the user persistence layer the contract needs.
type UserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	ReplaceCart(ctx context.Context, userID primitive.ObjectID, cart []models.CartLine) error
}

// ProductStore resolves product references for read-time population.
type ProductStore interface {
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Product, error)
}

type Service struct {
	users    UserStore
	products ProductStore
	log      *logger.Logger
}

func NewService(users UserStore, products ProductStore, log *logger.Logger) *Service {
	return &Service{users: users, products: products, log: log.With("component", "cart")}
}

// Get returns the user's cart with every line populated from the current
// catalog state.
func (s *Service) Get(ctx context.Context, userID primitive.ObjectID) ([]models.PopulatedLine, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return s.populate(ctx, user.Cart)
}

// Add merges quantity into an existing line for the product, or appends a new
// line at the end. The product reference is not validated against the
// catalog, and no stock ceiling is enforced.
func (s *Service) Add(ctx context.Context, userID, productID primitive.ObjectID, quantity int) ([]models.PopulatedLine, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	lines := user.Cart
	merged := false
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, models.CartLine{ProductID: productID, Quantity: quantity})
	}

	if err := s.users.ReplaceCart(ctx, userID, lines); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	s.log.Debug("cart line added", "userId", userID.Hex(), "productId", productID.Hex(), "quantity", quantity)
	return s.populate(ctx, lines)
}

// Update replaces the quantity of an existing line. A quantity of zero or
// less removes the line; that removal is idempotent, so updating an absent
// line to a non-positive quantity is a no-op. Updating an absent line to a
// positive quantity is ErrLineNotFound.
func (s *Service) Update(ctx context.Context, userID, productID primitive.ObjectID, quantity int) ([]models.PopulatedLine, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	idx := -1
	for i := range user.Cart {
		if user.Cart[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		if quantity <= 0 {
			return s.populate(ctx, user.Cart)
		}
		return nil, ErrLineNotFound
	}

	lines := user.Cart
	if quantity <= 0 {
		lines = append(lines[:idx], lines[idx+1:]...)
	} else {
		lines[idx].Quantity = quantity
	}

	if err := s.users.ReplaceCart(ctx, userID, lines); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return s.populate(ctx, lines)
}

// Remove drops the line for the product if present. Removing an absent
// product is a no-op, not an error.
func (s *Service) Remove(ctx context.Context, userID, productID primitive.ObjectID) ([]models.PopulatedLine, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	lines := user.Cart
	for i := range lines {
		if lines[i].ProductID == productID {
			lines = append(lines[:i], lines[i+1:]...)
			break
		}
	}

	if err := s.users.ReplaceCart(ctx, userID, lines); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return s.populate(ctx, lines)
}

// Clear empties the cart unconditionally.
func (s *Service) Clear(ctx context.Context, userID primitive.ObjectID) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	if err := s.users.ReplaceCart(ctx, userID, []models.CartLine{}); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// populate resolves every product reference in one batch. Lines whose product
// has been deleted from the catalog are kept with a nil product; cleanup of
// dangling references is deliberately not this layer's job.
func (s *Service) populate(ctx context.Context, lines []models.CartLine) ([]models.PopulatedLine, error) {
	ids := make([]primitive.ObjectID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}
	byID, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("populate products: %w", err)
	}

	populated := make([]models.PopulatedLine, 0, len(lines))
	for _, line := range lines {
		populated = append(populated, models.PopulatedLine{
			Product:  byID[line.ProductID],
			Quantity: line.Quantity,
		})
	}
	return populated, nil
}

// Subtotal computes the cart value from current prices. Dangling lines
// contribute nothing. The result is never persisted.
func Subtotal(lines []models.PopulatedLine) float64 {
	var total float64
	for _, line := range lines {
		if line.Product == nil {
			continue
		}
		total += float64(line.Quantity) * line.Product.Price
	}
	return total
}
