package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopora-backend/internal/cart"
	"shopora-backend/internal/logger"
	"shopora-backend/internal/middleware"
)

type CartHandler struct {
	carts *cart.Service
	log   *logger.Logger
}

func NewCartHandler(carts *cart.Service, log *logger.Logger) *CartHandler {
	return &CartHandler{carts: carts, log: log.With("handler", "cart")}
}

func (h *CartHandler) GetCart(c *gin.Context) {
	user := middleware.CurrentUser(c)
	lines, err := h.carts.Get(c.Request.Context(), user.ID)
	if err != nil {
		serverError(c, h.log, "get cart", err)
		return
	}
	h.log.Debug("cart fetched", "userId", user.ID.Hex(), "lines", len(lines), "subtotal", cart.Subtotal(lines))
	c.JSON(http.StatusOK, lines)
}

// AddToCart merges the requested quantity (default 1) into the user's cart.
func (h *CartHandler) AddToCart(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req struct {
		ProductID string   `json:"productId"`
		Quantity  Quantity `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		message(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		message(c, http.StatusBadRequest, "Invalid product id")
		return
	}
	quantity := req.Quantity.Value(1)
	if quantity < 1 {
		message(c, http.StatusBadRequest, "Quantity must be a positive integer")
		return
	}

	lines, err := h.carts.Add(c.Request.Context(), user.ID, productID, quantity)
	if err != nil {
		serverError(c, h.log, "add to cart", err)
		return
	}
	c.JSON(http.StatusOK, lines)
}

// UpdateCartItem replaces the quantity of an existing line; zero or less
// removes it. The line must already exist.
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req struct {
		ProductID string   `json:"productId"`
		Quantity  Quantity `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		message(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		message(c, http.StatusBadRequest, "Invalid product id")
		return
	}
	if !req.Quantity.Set() {
		message(c, http.StatusBadRequest, "Quantity is required")
		return
	}

	lines, err := h.carts.Update(c.Request.Context(), user.ID, productID, req.Quantity.Value(0))
	if errors.Is(err, cart.ErrLineNotFound) {
		message(c, http.StatusNotFound, "Item not found in cart")
		return
	}
	if err != nil {
		serverError(c, h.log, "update cart item", err)
		return
	}
	c.JSON(http.StatusOK, lines)
}

// RemoveFromCart handles DELETE /cart/:productId. The router cannot register
// the static /cart/clear next to the :productId wildcard, so the literal
// segment "clear" dispatches to the clear operation here.
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	param := c.Param("productId")
	if param == "clear" {
		h.clearCart(c)
		return
	}

	user := middleware.CurrentUser(c)
	productID, err := primitive.ObjectIDFromHex(param)
	if err != nil {
		message(c, http.StatusBadRequest, "Invalid product id")
		return
	}

	lines, err := h.carts.Remove(c.Request.Context(), user.ID, productID)
	if err != nil {
		serverError(c, h.log, "remove from cart", err)
		return
	}
	c.JSON(http.StatusOK, lines)
}

func (h *CartHandler) clearCart(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := h.carts.Clear(c.Request.Context(), user.ID); err != nil {
		serverError(c, h.log, "clear cart", err)
		return
	}
	message(c, http.StatusOK, "Cart cleared successfully")
}
