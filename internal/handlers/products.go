package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopora-backend/internal/logger"
	"shopora-backend/internal/models"
	"shopora-backend/internal/store"
)

// ProductCatalog is the catalog persistence surface used by the product
// handlers.
type ProductCatalog interface {
	List(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ProductHandler struct {
	products ProductCatalog
	log      *logger.Logger
}

func NewProductHandler(products ProductCatalog, log *logger.Logger) *ProductHandler {
	return &ProductHandler{products: products, log: log.With("handler", "products")}
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		serverError(c, h.log, "list products", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		message(c, http.StatusNotFound, "Product not found")
		return
	}
	product, err := h.products.FindByID(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		message(c, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		serverError(c, h.log, "get product", err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct requires name, description, price, image and category to be
// present in the body. Stock defaults to 0 and featured to false. Admin only,
// enforced by middleware.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Price       *float64 `json:"price"`
		Image       string   `json:"image"`
		Category    string   `json:"category"`
		Stock       *int     `json:"stock"`
		Featured    *bool    `json:"featured"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		message(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.Description == "" || req.Price == nil || req.Image == "" || req.Category == "" {
		message(c, http.StatusBadRequest, "Please provide all required fields")
		return
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Image:       req.Image,
		Category:    req.Category,
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Featured != nil {
		product.Featured = *req.Featured
	}

	if err := h.products.Create(c.Request.Context(), &product); err != nil {
		serverError(c, h.log, "create product", err)
		return
	}
	h.log.Info("product created", "productId", product.ID.Hex(), "name", product.Name)
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct performs partial replacement: omitted (or empty string)
// fields keep their prior values; price, stock and featured apply only when
// explicitly supplied.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		message(c, http.StatusNotFound, "Product not found")
		return
	}

	ctx := c.Request.Context()
	product, err := h.products.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		message(c, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		serverError(c, h.log, "update product: load", err)
		return
	}

	var req struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Price       *float64 `json:"price"`
		Image       string   `json:"image"`
		Category    string   `json:"category"`
		Stock       *int     `json:"stock"`
		Featured    *bool    `json:"featured"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		message(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Image != "" {
		product.Image = req.Image
	}
	if req.Category != "" {
		product.Category = req.Category
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Featured != nil {
		product.Featured = *req.Featured
	}

	if err := h.products.Update(ctx, product); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			message(c, http.StatusNotFound, "Product not found")
			return
		}
		serverError(c, h.log, "update product: save", err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct is a hard delete. Cart lines referencing the product are left
// in place and resolve to a nil product on the next populate.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		message(c, http.StatusNotFound, "Product not found")
		return
	}
	err = h.products.Delete(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		message(c, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		serverError(c, h.log, "delete product", err)
		return
	}
	h.log.Info("product deleted", "productId", id.Hex())
	message(c, http.StatusOK, "Product removed successfully")
}
