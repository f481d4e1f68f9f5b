package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"shopora-backend/internal/auth"
	"shopora-backend/internal/cart"
	"shopora-backend/internal/handlers"
	"shopora-backend/internal/logger"
	"shopora-backend/internal/middleware"
	"shopora-backend/internal/models"
	"shopora-backend/internal/server"
	"shopora-backend/internal/store"
)

type fakeUserStore struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[primitive.ObjectID]*models.User{}}
}

func (f *fakeUserStore) add(t *testing.T, name, email, password, role string) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		ID:       primitive.NewObjectID(),
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     role,
		Cart:     []models.CartLine{},
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *user
	copied.Cart = append([]models.CartLine{}, user.Cart...)
	return &copied, nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			copied.Cart = append([]models.CartLine{}, user.Cart...)
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserStore) ReplaceCart(_ context.Context, id primitive.ObjectID, lines []models.CartLine) error {
	user, ok := f.users[id]
	if !ok {
		return store.ErrNotFound
	}
	user.Cart = append([]models.CartLine{}, lines...)
	return nil
}

type fakeProductStore struct {
	products []*models.Product
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{}
}

func (f *fakeProductStore) add(p models.Product) *models.Product {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	p.CreatedAt = time.Now().UTC()
	copied := p
	f.products = append(f.products, &copied)
	return &copied
}

func (f *fakeProductStore) List(_ context.Context) ([]models.Product, error) {
	// Newest first, mirroring the createdAt desc sort of the real store.
	out := make([]models.Product, 0, len(f.products))
	for i := len(f.products) - 1; i >= 0; i-- {
		out = append(out, *f.products[i])
	}
	return out, nil
}

func (f *fakeProductStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			copied := *p
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeProductStore) FindByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Product, error) {
	result := map[primitive.ObjectID]*models.Product{}
	for _, id := range ids {
		for _, p := range f.products {
			if p.ID == id {
				copied := *p
				result[id] = &copied
			}
		}
	}
	return result, nil
}

func (f *fakeProductStore) Create(_ context.Context, product *models.Product) error {
	product.ID = primitive.NewObjectID()
	product.CreatedAt = time.Now().UTC()
	copied := *product
	f.products = append(f.products, &copied)
	return nil
}

func (f *fakeProductStore) Update(_ context.Context, product *models.Product) error {
	for i, p := range f.products {
		if p.ID == product.ID {
			copied := *product
			f.products[i] = &copied
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeProductStore) Delete(_ context.Context, id primitive.ObjectID) error {
	for i, p := range f.products {
		if p.ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

type testEnv struct {
	router   *gin.Engine
	users    *fakeUserStore
	products *fakeProductStore

	user       *models.User
	admin      *models.User
	userToken  string
	adminToken string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.NewNop()

	users := newFakeUserStore()
	products := newFakeProductStore()
	user := users.add(t, "Regular User", "user@example.com", "user123", models.RoleUser)
	admin := users.add(t, "Admin User", "admin@example.com", "admin123", models.RoleAdmin)

	tokens := auth.NewTokens("test-secret", time.Hour)
	carts := cart.NewService(users, products, log)
	authMW := middleware.NewAuthMiddleware(tokens, users, log)

	router := server.NewRouter(server.RouterConfig{
		AllowOrigins:   []string{"http://localhost:3000"},
		Log:            log,
		AuthMiddleware: authMW,
		AuthHandler:    handlers.NewAuthHandler(users, tokens, log),
		ProductHandler: handlers.NewProductHandler(products, log),
		CartHandler:    handlers.NewCartHandler(carts, log),
	})

	userToken, err := tokens.Sign(user.ID)
	require.NoError(t, err)
	adminToken, err := tokens.Sign(admin.ID)
	require.NoError(t, err)

	return &testEnv{
		router:     router,
		users:      users,
		products:   products,
		user:       user,
		admin:      admin,
		userToken:  userToken,
		adminToken: adminToken,
	}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	e.router.ServeHTTP(recorder, req)
	return recorder
}

// doRaw sends a raw JSON body, for payloads a Go struct cannot express.
func (e *testEnv) doRaw(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	e.router.ServeHTTP(recorder, req)
	return recorder
}

func decodeMessage(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body.Message
}

func decodeLines(t *testing.T, recorder *httptest.ResponseRecorder) []models.PopulatedLine {
	t.Helper()
	var lines []models.PopulatedLine
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &lines))
	return lines
}
