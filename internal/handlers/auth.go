package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"shopora-backend/internal/auth"
	"shopora-backend/internal/logger"
	"shopora-backend/internal/middleware"
	"shopora-backend/internal/models"
	"shopora-backend/internal/store"
)

// UserAccounts is the slice of the user store the auth handlers need.
type UserAccounts interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type AuthHandler struct {
	users  UserAccounts
	tokens *auth.Tokens
	log    *logger.Logger
}

func NewAuthHandler(users UserAccounts, tokens *auth.Tokens, log *logger.Logger) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, log: log.With("handler", "auth")}
}

// Register creates a user-role account with an empty cart.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		message(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		message(c, http.StatusBadRequest, "Please provide all required fields")
		return
	}

	ctx := c.Request.Context()
	if _, err := h.users.FindByEmail(ctx, req.Email); err == nil {
		message(c, http.StatusBadRequest, "User already exists")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		serverError(c, h.log, "register: lookup email", err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		serverError(c, h.log, "register: hash password", err)
		return
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     models.RoleUser,
		Cart:     []models.CartLine{},
	}
	if err := h.users.Create(ctx, &user); err != nil {
		serverError(c, h.log, "register: create user", err)
		return
	}

	token, err := h.tokens.Sign(user.ID)
	if err != nil {
		serverError(c, h.log, "register: sign token", err)
		return
	}
	h.log.Info("user registered", "userId", user.ID.Hex())
	c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		message(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.users.FindByEmail(c.Request.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		message(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		serverError(c, h.log, "login: lookup email", err)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		message(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := h.tokens.Sign(user.ID)
	if err != nil {
		serverError(c, h.log, "login: sign token", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

// Profile returns the authenticated user's record.
func (h *AuthHandler) Profile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		message(c, http.StatusUnauthorized, "Not authorized, no token")
		return
	}
	c.JSON(http.StatusOK, user)
}
