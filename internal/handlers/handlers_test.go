package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-api/internal/auth"
	"storefront-api/internal/events"
	"storefront-api/internal/models"
	"storefront-api/internal/repository"
	"storefront-api/internal/repository/memory"
	"storefront-api/internal/services"
)

type envelope struct {
	Success     bool            `json:"success"`
	Data        json.RawMessage `json:"data"`
	Message     string          `json:"message"`
	Error       string          `json:"error"`
	Fields      []string        `json:"fields"`
	Count       *int            `json:"count"`
	TotalCount  *int64          `json:"totalCount"`
	TotalPages  *int            `json:"totalPages"`
	CurrentPage *int            `json:"currentPage"`
}

type testServer struct {
	t      *testing.T
	store  *repository.Store
	svc    *services.Services
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := memory.New()
	svc := services.New(store, auth.NewTokenService("handler-secret", time.Hour), events.LogPublisher{})
	return &testServer{
		t:      t,
		store:  store,
		svc:    svc,
		router: NewRouter(svc, RouterOptions{Production: true}),
	}
}

func (s *testServer) do(method, path, token string, body any) (int, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func (s *testServer) register(name string) (id, token string) {
	s.t.Helper()
	session, err := s.svc.Users.Register(context.Background(), models.RegisterRequest{
		Name:            name,
		Email:           name + "@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	require.NoError(s.t, err)
	return session.User.ID, session.Token
}

func (s *testServer) admin() string {
	s.t.Helper()
	ctx := context.Background()
	_, err := s.svc.Users.EnsureAdmin(ctx, "Admin", "admin@example.com", "admin123", "")
	require.NoError(s.t, err)
	session, err := s.svc.Users.Login(ctx, models.LoginRequest{Email: "admin@example.com", Password: "admin123"})
	require.NoError(s.t, err)
	return session.Token
}

func (s *testServer) product(name string, price float64, stock int) string {
	s.t.Helper()
	p := &models.Product{
		Name:        name,
		Description: name,
		Price:       price,
		Category:    models.CategoryJewelry,
		Stock:       stock,
		Images:      []string{"/img/" + name + ".jpg"},
	}
	require.NoError(s.t, s.svc.Catalog.Create(context.Background(), p))
	return p.ID
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func shipping() map[string]string {
	return map[string]string{
		"name": "Asha Rao", "phone": "9876543210", "street": "12 MG Road",
		"city": "Bengaluru", "state": "Karnataka", "pincode": "560001", "country": "India",
	}
}

// ==================== catalog ====================

func TestListProducts_Envelope(t *testing.T) {
	s := newTestServer(t)
	for i := 0; i < 5; i++ {
		s.product(fmt.Sprintf("ring-%d", i), float64(100+i), 3)
	}

	status, env := s.do(http.MethodGet, "/api/products?page=2&limit=2&sort=price-asc", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)
	require.NotNil(t, env.Count)
	assert.Equal(t, 2, *env.Count)
	assert.Equal(t, int64(5), *env.TotalCount)
	assert.Equal(t, 3, *env.TotalPages)
	assert.Equal(t, 2, *env.CurrentPage)

	products := decode[[]map[string]any](t, env.Data)
	require.Len(t, products, 2)
	assert.Equal(t, "ring-2", products[0]["name"])
	assert.Equal(t, "/img/ring-2.jpg", products[0]["image"])
	assert.Equal(t, false, products[0]["isNew"])
}

func TestProductRoutes(t *testing.T) {
	s := newTestServer(t)
	id := s.product("bangle", 1599, 4)

	status, env := s.do(http.MethodGet, "/api/products/"+id, "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "bangle", decode[models.Product](t, env.Data).Name)

	status, env = s.do(http.MethodGet, "/api/products/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, env.Success)
	assert.Equal(t, "Product not found", env.Message)

	status, env = s.do(http.MethodGet, "/api/products/categories/all", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"Jewelry"}, decode[[]string](t, env.Data))

	status, env = s.do(http.MethodGet, "/api/products/new-arrivals", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, *env.Count)
}

func TestProductAdminRoutes(t *testing.T) {
	s := newTestServer(t)
	_, userToken := s.register("buyer")
	adminToken := s.admin()

	body := map[string]any{
		"name": "Pearl Pendant", "description": "Freshwater pearls", "price": 1899,
		"category": "Jewelry", "stock": 7, "images": []string{"/p.jpg"},
	}

	status, _ := s.do(http.MethodPost, "/api/products", "", body)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, env := s.do(http.MethodPost, "/api/products", userToken, body)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Not authorized as an admin", env.Message)

	status, env = s.do(http.MethodPost, "/api/products", adminToken, body)
	require.Equal(t, http.StatusCreated, status)
	created := decode[models.Product](t, env.Data)
	assert.NotEmpty(t, created.ID)

	status, env = s.do(http.MethodPut, "/api/products/"+created.ID, adminToken, map[string]any{"price": 1799})
	require.Equal(t, http.StatusOK, status)
	updated := decode[models.Product](t, env.Data)
	assert.Equal(t, 1799.0, updated.Price)
	assert.Equal(t, 7, updated.Stock)
	assert.Equal(t, "Pearl Pendant", updated.Name)

	status, env = s.do(http.MethodPut, "/api/products/"+created.ID, adminToken, map[string]any{"stock": 2})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, decode[models.Product](t, env.Data).Stock)
	assert.Equal(t, 1799.0, decode[models.Product](t, env.Data).Price)

	status, env = s.do(http.MethodPost, "/api/products", adminToken, map[string]any{"name": "x", "category": "Toys"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Fields, "category")
	assert.Contains(t, env.Fields, "description")

	other := s.product("anklet", 500, 1)
	status, env = s.do(http.MethodDelete, "/api/products", adminToken, map[string]any{"ids": []string{created.ID, other}})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2.0, decode[map[string]any](t, env.Data)["deletedCount"])

	status, _ = s.do(http.MethodDelete, "/api/products/"+created.ID, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

// ==================== cart and orders ====================

func TestCartAndOrderFlow(t *testing.T) {
	s := newTestServer(t)
	_, token := s.register("asha")
	_, otherToken := s.register("ravi")
	adminToken := s.admin()
	necklace := s.product("necklace", 2499, 3)

	status, env := s.do(http.MethodPost, "/api/cart", token, map[string]any{"productId": necklace})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, decode[services.CartView](t, env.Data).TotalItems)

	status, env = s.do(http.MethodPut, "/api/cart/"+necklace, token, map[string]any{"quantity": 2})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 4998.0, decode[services.CartView](t, env.Data).Subtotal)

	status, env = s.do(http.MethodPost, "/api/cart", token, map[string]any{"productId": necklace, "quantity": 5})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Message, "Insufficient stock")

	status, env = s.do(http.MethodPost, "/api/orders", token, map[string]any{
		"shippingAddress": shipping(),
		"paymentMethod":   "UPI",
	})
	require.Equal(t, http.StatusCreated, status, env.Message)
	order := decode[models.Order](t, env.Data)
	assert.Equal(t, 4998.0, order.TotalAmount)
	assert.Equal(t, models.StatusPending, order.Status)

	p, err := s.store.Products.GetByID(context.Background(), necklace)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Stock)

	status, env = s.do(http.MethodGet, "/api/cart", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decode[services.CartView](t, env.Data).Items)

	status, env = s.do(http.MethodPost, "/api/orders", token, map[string]any{"shippingAddress": shipping()})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Cart is empty", env.Message)

	status, _ = s.do(http.MethodGet, "/api/orders/"+order.ID, token, nil)
	assert.Equal(t, http.StatusOK, status)

	status, env = s.do(http.MethodGet, "/api/orders/"+order.ID, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Not authorized to view this order", env.Message)

	status, env = s.do(http.MethodGet, "/api/orders", otherToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, *env.Count)

	status, _ = s.do(http.MethodGet, "/api/orders/all", token, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, env = s.do(http.MethodGet, "/api/orders/all", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	all := decode[[]models.OrderWithBuyer](t, env.Data)
	require.Len(t, all, 1)
	require.NotNil(t, all[0].Buyer)
	assert.Equal(t, "asha@example.com", all[0].Buyer.Email)

	status, env = s.do(http.MethodPut, "/api/orders/"+order.ID+"/status", adminToken, map[string]any{"status": "Delivered"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = s.do(http.MethodPut, "/api/orders/"+order.ID+"/status", adminToken, map[string]any{"status": "Cancelled"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, models.StatusCancelled, decode[models.Order](t, env.Data).Status)

	p, err = s.store.Products.GetByID(context.Background(), necklace)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Stock)
}

func TestOrder_InvalidShippingAddress(t *testing.T) {
	s := newTestServer(t)
	_, token := s.register("asha")
	id := s.product("saree", 899, 2)
	status, _ := s.do(http.MethodPost, "/api/cart", token, map[string]any{"productId": id, "quantity": 1})
	require.Equal(t, http.StatusOK, status)

	addr := shipping()
	delete(addr, "pincode")
	status, env := s.do(http.MethodPost, "/api/orders", token, map[string]any{"shippingAddress": addr})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Fields, "shippingAddress.pincode")

	p, err := s.store.Products.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Stock)
}

// ==================== auth ====================

func TestAuthRoutes(t *testing.T) {
	s := newTestServer(t)

	register := map[string]any{
		"name": "Meera", "email": "Meera@Example.com", "password": "secret1",
		"confirmPassword": "secret1", "phone": "9123456789",
	}
	status, env := s.do(http.MethodPost, "/api/auth/register", "", register)
	require.Equal(t, http.StatusCreated, status)
	session := decode[map[string]any](t, env.Data)
	assert.Equal(t, "meera@example.com", session["email"])
	assert.Equal(t, false, session["isAdmin"])
	assert.NotContains(t, session, "password")
	token, _ := session["token"].(string)
	require.NotEmpty(t, token)

	status, env = s.do(http.MethodPost, "/api/auth/register", "", register)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "User already exists", env.Message)

	status, env = s.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "meera@example.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid credentials", env.Message)

	status, env = s.do(http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Meera", decode[models.User](t, env.Data).Name)

	status, env = s.do(http.MethodPut, "/api/auth/profile", token, map[string]any{"name": "Meera S"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Meera S", decode[map[string]any](t, env.Data)["name"])

	status, _ = s.do(http.MethodGet, "/api/auth/me", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = s.do(http.MethodGet, "/api/auth/users", token, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, env = s.do(http.MethodGet, "/api/auth/users", s.admin(), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, *env.Count)
}

// ==================== contact and admin ====================

func TestContactRoutes(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.admin()

	status, env := s.do(http.MethodPost, "/api/contact", "", map[string]any{"name": "Asha", "email": "asha@example.com"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, env.Success)
	assert.ElementsMatch(t, []string{"subject", "message"}, env.Fields)

	status, env = s.do(http.MethodPost, "/api/contact", "", map[string]any{
		"name": "Asha", "email": "asha@example.com", "subject": "Sizing", "message": "Do you resize rings?",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Your message has been received. We will get back to you soon!", env.Message)
	msg := decode[models.ContactMessage](t, env.Data)
	assert.Equal(t, models.ContactNew, msg.Status)

	status, _ = s.do(http.MethodGet, "/api/contact", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, env = s.do(http.MethodGet, "/api/contact", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, *env.Count)

	status, env = s.do(http.MethodPut, "/api/contact/"+msg.ID, adminToken, map[string]any{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = s.do(http.MethodPut, "/api/contact/"+msg.ID, adminToken, map[string]any{"status": "replied"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Contact status updated", env.Message)
	assert.Equal(t, models.ContactReplied, decode[models.ContactMessage](t, env.Data).Status)

	status, _ = s.do(http.MethodGet, "/api/contact/missing", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAdminStatsRoute(t *testing.T) {
	s := newTestServer(t)
	_, token := s.register("asha")
	adminToken := s.admin()
	s.product("earrings", 3999, 5)

	status, _ := s.do(http.MethodGet, "/api/admin/stats", token, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, env := s.do(http.MethodGet, "/api/admin/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	stats := decode[services.Stats](t, env.Data)
	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.TotalProducts)
	assert.Zero(t, stats.TotalRevenue)
}

func TestHealthAndNoRoute(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"OK"`)

	status, env := s.do(http.MethodGet, "/api/nothing-here", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, env.Success)
}
