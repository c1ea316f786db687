package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shoaib-Asghar/electronics-store-api/internal/apperr"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/config"
	storehttp "github.com/Shoaib-Asghar/electronics-store-api/internal/http"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/model"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/service"
	"github.com/Shoaib-Asghar/electronics-store-api/pkg/validator"
)

type stubAuthService struct {
	users map[string]model.User

	registerResult service.AuthResult
	registerErr    error
	loginResult    service.AuthResult
	loginErr       error
}

func (s *stubAuthService) Register(context.Context, service.RegisterParams) (service.AuthResult, error) {
	return s.registerResult, s.registerErr
}

func (s *stubAuthService) Login(context.Context, service.LoginParams) (service.AuthResult, error) {
	return s.loginResult, s.loginErr
}

func (s *stubAuthService) ResolveUser(_ context.Context, token string) (model.User, error) {
	user, ok := s.users[token]
	if !ok {
		return model.User{}, apperr.InvalidTokenErr
	}
	return user, nil
}

type stubProductService struct {
	product model.Product
	err     error
}

func (s *stubProductService) CreateProduct(context.Context, service.CreateProductParams) (model.Product, error) {
	return s.product, s.err
}

func (s *stubProductService) GetProduct(context.Context, uuid.UUID) (model.Product, error) {
	return s.product, s.err
}

func (s *stubProductService) ListAllProducts(context.Context) ([]model.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []model.Product{s.product}, nil
}

func (s *stubProductService) UpdateProduct(context.Context, uuid.UUID, service.UpdateProductParams) (model.Product, error) {
	return s.product, s.err
}

func (s *stubProductService) DeleteProduct(context.Context, uuid.UUID) error {
	return s.err
}

type stubInventoryService struct{}

func (stubInventoryService) CreateItem(context.Context, service.CreateInventoryItemParams) (model.InventoryItem, error) {
	return model.InventoryItem{}, nil
}

func (stubInventoryService) GetItem(context.Context, uuid.UUID) (model.InventoryItem, error) {
	return model.InventoryItem{}, nil
}

func (stubInventoryService) ListAllItems(context.Context) ([]model.InventoryItem, error) {
	return nil, nil
}

func (stubInventoryService) UpdateItem(context.Context, uuid.UUID, service.UpdateInventoryItemParams) (model.InventoryItem, error) {
	return model.InventoryItem{}, nil
}

func (stubInventoryService) DeleteItem(context.Context, uuid.UUID) error { return nil }

type stubProviderService struct{}

func (stubProviderService) CreateProvider(context.Context, service.CreateProviderParams) (model.ServiceProvider, error) {
	return model.ServiceProvider{}, nil
}

func (stubProviderService) GetProvider(context.Context, uuid.UUID) (model.ServiceProvider, error) {
	return model.ServiceProvider{}, nil
}

func (stubProviderService) ListAllProviders(context.Context) ([]model.ServiceProvider, error) {
	return nil, nil
}

func (stubProviderService) UpdateProvider(context.Context, uuid.UUID, service.UpdateProviderParams) (model.ServiceProvider, error) {
	return model.ServiceProvider{}, nil
}

func (stubProviderService) DeleteProvider(context.Context, uuid.UUID) error { return nil }

type stubCheckoutService struct {
	updated []model.UpdatedLine
	err     error

	gotActor model.User
	gotLines []model.CartLine
}

func (s *stubCheckoutService) Checkout(_ context.Context, actor model.User, lines []model.CartLine) ([]model.UpdatedLine, error) {
	s.gotActor = actor
	s.gotLines = lines
	if s.err != nil {
		return nil, s.err
	}
	return s.updated, nil
}

func doRequest(t *testing.T, router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)
	return resp
}

func messageOf(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body.Message
}

// The server is built once: the request metrics register against the global
// prometheus registry and must not be created twice per process.
func TestServer(t *testing.T) {
	admin := model.User{ID: uuid.New(), Name: "Root", Role: model.RoleAdmin}
	customer := model.User{ID: uuid.New(), Name: "Alice", Role: model.RoleCustomer}

	authSvc := &stubAuthService{users: map[string]model.User{
		"admin-token":    admin,
		"customer-token": customer,
	}}
	productSvc := &stubProductService{product: model.Product{ID: uuid.New(), Name: "Keyboard", Stock: 5}}
	checkoutSvc := &stubCheckoutService{}

	validate, err := validator.NewDefaultValidator()
	require.NoError(t, err)

	svc := storehttp.New(
		config.HTTP{Port: 0},
		slog.New(slog.DiscardHandler),
		validate,
		authSvc,
		productSvc,
		stubInventoryService{},
		stubProviderService{},
		checkoutSvc,
	)

	router := chi.NewRouter()
	svc.RegisterMiddlewares(router)
	svc.RegisterHandlers(router)

	t.Run("Should answer ping", func(t *testing.T) {
		resp := doRequest(t, router, http.MethodGet, "/api/ping", "", "")

		require.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, "pong", messageOf(t, resp))
	})

	t.Run("Should reject checkout without a bearer credential", func(t *testing.T) {
		resp := doRequest(t, router, http.MethodPost, "/api/orders/checkout", "", `{"cart":[]}`)

		require.Equal(t, http.StatusUnauthorized, resp.Code)
		assert.Equal(t, "Not authorized", messageOf(t, resp))
	})

	t.Run("Should reject checkout with a bad token", func(t *testing.T) {
		resp := doRequest(t, router, http.MethodPost, "/api/orders/checkout", "bogus", `{"cart":[]}`)

		require.Equal(t, http.StatusUnauthorized, resp.Code)
		assert.Equal(t, "Invalid token", messageOf(t, resp))
	})

	t.Run("Should reject an empty or malformed cart", func(t *testing.T) {
		for _, body := range []string{
			`{"cart":[]}`,
			`{"cart":"nope"}`,
			`{}`,
			`not json`,
		} {
			resp := doRequest(t, router, http.MethodPost, "/api/orders/checkout", "customer-token", body)

			require.Equal(t, http.StatusBadRequest, resp.Code, "body: %s", body)
			assert.Equal(t, "Cart is empty or invalid.", messageOf(t, resp), "body: %s", body)
		}
	})

	t.Run("Should check out a valid cart for the acting user", func(t *testing.T) {
		checkoutSvc.err = nil
		checkoutSvc.updated = []model.UpdatedLine{{Name: "Keyboard", Remaining: 3}}
		productID := uuid.New().String()

		resp := doRequest(t, router, http.MethodPost, "/api/orders/checkout", "customer-token",
			fmt.Sprintf(`{"cart":[{"productId":%q,"quantity":2}]}`, productID))

		require.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, "Checkout successful. Inventory updated.", messageOf(t, resp))
		assert.JSONEq(t,
			`{"message":"Checkout successful. Inventory updated.","updated":[{"name":"Keyboard","remaining":3}]}`,
			resp.Body.String())
		assert.Equal(t, customer.ID, checkoutSvc.gotActor.ID)
		require.Len(t, checkoutSvc.gotLines, 1)
		assert.Equal(t, model.CartLine{ProductID: productID, Quantity: 2}, checkoutSvc.gotLines[0])
	})

	t.Run("Should pass checkout domain errors through", func(t *testing.T) {
		checkoutSvc.err = apperr.NewProductNotFound("abc")

		resp := doRequest(t, router, http.MethodPost, "/api/orders/checkout", "customer-token",
			`{"cart":[{"productId":"abc","quantity":1}]}`)

		require.Equal(t, http.StatusNotFound, resp.Code)
		assert.Equal(t, "Product not found: abc", messageOf(t, resp))

		checkoutSvc.err = apperr.NewInsufficientStock("Keyboard")

		resp = doRequest(t, router, http.MethodPost, "/api/orders/checkout", "customer-token",
			`{"cart":[{"productId":"abc","quantity":10}]}`)

		require.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Equal(t, "Not enough stock for Keyboard", messageOf(t, resp))
	})

	t.Run("Should fold unexpected checkout failures into a generic message", func(t *testing.T) {
		checkoutSvc.err = fmt.Errorf("connection reset")

		resp := doRequest(t, router, http.MethodPost, "/api/orders/checkout", "customer-token",
			`{"cart":[{"productId":"abc","quantity":1}]}`)

		require.Equal(t, http.StatusInternalServerError, resp.Code)
		assert.Equal(t, "Checkout failed", messageOf(t, resp))

		checkoutSvc.err = nil
	})

	t.Run("Should serve the product catalog without auth", func(t *testing.T) {
		resp := doRequest(t, router, http.MethodGet, "/api/products", "", "")

		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), "Keyboard")
	})

	t.Run("Should gate product mutations behind the admin role", func(t *testing.T) {
		body := `{"name":"Keyboard","description":"A keyboard","category":"peripherals","price":49.99,"stock":5}`

		resp := doRequest(t, router, http.MethodPost, "/api/products", "", body)
		require.Equal(t, http.StatusUnauthorized, resp.Code)
		assert.Equal(t, "Not authorized", messageOf(t, resp))

		resp = doRequest(t, router, http.MethodPost, "/api/products", "customer-token", body)
		require.Equal(t, http.StatusForbidden, resp.Code)
		assert.Equal(t, "Admin access only", messageOf(t, resp))

		resp = doRequest(t, router, http.MethodPost, "/api/products", "admin-token", body)
		require.Equal(t, http.StatusCreated, resp.Code)
	})

	t.Run("Should confirm a product delete", func(t *testing.T) {
		resp := doRequest(t, router, http.MethodDelete, "/api/products/"+uuid.New().String(), "admin-token", "")

		require.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, "Product deleted successfully", messageOf(t, resp))
	})

	t.Run("Should reject an invalid registration payload", func(t *testing.T) {
		resp := doRequest(t, router, http.MethodPost, "/api/auth/register",
			"", `{"name":"Alice","email":"not-an-email","password":"s3cret!"}`)

		require.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("Should surface auth domain errors with their exact messages", func(t *testing.T) {
		authSvc.registerErr = apperr.EmailExistsErr

		resp := doRequest(t, router, http.MethodPost, "/api/auth/register",
			"", `{"name":"Alice","email":"alice@example.com","password":"s3cret!"}`)

		require.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Equal(t, "Email already exists", messageOf(t, resp))

		authSvc.loginErr = apperr.InvalidCredentialsErr

		resp = doRequest(t, router, http.MethodPost, "/api/auth/login",
			"", `{"email":"alice@example.com","password":"wrong"}`)

		require.Equal(t, http.StatusUnauthorized, resp.Code)
		assert.Equal(t, "Invalid credentials", messageOf(t, resp))
	})

	t.Run("Should fold unexpected auth failures into the endpoint message", func(t *testing.T) {
		authSvc.registerErr = fmt.Errorf("db down")

		resp := doRequest(t, router, http.MethodPost, "/api/auth/register",
			"", `{"name":"Alice","email":"alice@example.com","password":"s3cret!"}`)

		require.Equal(t, http.StatusInternalServerError, resp.Code)
		assert.Equal(t, "Registration failed", messageOf(t, resp))

		authSvc.loginErr = fmt.Errorf("db down")

		resp = doRequest(t, router, http.MethodPost, "/api/auth/login",
			"", `{"email":"alice@example.com","password":"s3cret!"}`)

		require.Equal(t, http.StatusInternalServerError, resp.Code)
		assert.Equal(t, "Login failed", messageOf(t, resp))

		authSvc.registerErr = nil
		authSvc.loginErr = nil
	})

	t.Run("Should serve inventory reads without auth but gate mutations", func(t *testing.T) {
		resp := doRequest(t, router, http.MethodGet, "/api/inventory", "", "")
		require.Equal(t, http.StatusOK, resp.Code)

		resp = doRequest(t, router, http.MethodPost, "/api/inventory", "customer-token",
			`{"name":"Cable","price":2.5,"stock":100}`)
		require.Equal(t, http.StatusForbidden, resp.Code)
	})

	t.Run("Should serve service providers without auth but gate mutations", func(t *testing.T) {
		resp := doRequest(t, router, http.MethodGet, "/api/services", "", "")
		require.Equal(t, http.StatusOK, resp.Code)

		resp = doRequest(t, router, http.MethodPost, "/api/services", "customer-token",
			`{"name":"FixIt","expertise":"repair"}`)
		require.Equal(t, http.StatusForbidden, resp.Code)
	})
}
