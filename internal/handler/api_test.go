package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoplite/shoplite-go/internal/crypto"
	"github.com/shoplite/shoplite-go/internal/middleware"
	"github.com/shoplite/shoplite-go/internal/model"
	"github.com/shoplite/shoplite-go/internal/repository"
	"github.com/shoplite/shoplite-go/internal/service"
)

const testSecret = "test-secret"

// newTestServer wires the full API against an in-memory sqlite database,
// mirroring the route layout in cmd/api.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := repository.NewDB("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, repository.InitSchema(context.Background(), db, "sqlite3"))

	userRepo := repository.NewUserRepository(db)
	authHandler := NewAuthHandler(service.NewAuthService(userRepo, testSecret, time.Hour))
	productHandler := NewProductHandler(service.NewCatalogService(repository.NewProductRepository(db)))
	orderHandler := NewOrderHandler(service.NewOrderService(repository.NewOrderRepository(db)))

	// Seed an admin the way cmd/api does: directly through the store,
	// since no API path may assign the admin role.
	hash, err := crypto.HashPassword("admin-secret")
	require.NoError(t, err)
	require.NoError(t, userRepo.Create(context.Background(), &model.User{
		Name: "Root", Email: "root@x.com", PasswordHash: hash, Role: model.RoleAdmin,
	}))

	r := chi.NewRouter()
	r.Post("/api/auth/register", authHandler.HandleRegister)
	r.Post("/api/auth/login", authHandler.HandleLogin)
	r.Get("/api/products", productHandler.HandleList)
	r.Get("/api/products/{id}", productHandler.HandleGet)
	r.Post("/api/orders", orderHandler.HandleCreate)
	r.Get("/api/orders", orderHandler.HandleList)
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(testSecret))
		r.Get("/api/auth/me", authHandler.HandleMe)
	})
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.Auth(testSecret))
		r.Use(middleware.RequireAdmin)
		r.Get("/products", productHandler.HandleList)
		r.Post("/products", productHandler.HandleCreate)
		r.Put("/products/{id}", productHandler.HandleUpdate)
		r.Delete("/products/{id}", productHandler.HandleDelete)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func login(t *testing.T, srv *httptest.Server, email, password string) string {
	t.Helper()
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestAuthFlow(t *testing.T) {
	srv := newTestServer(t)

	// Register Ana.
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", "", map[string]string{
		"name": "Ana", "email": "ana@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["token"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Ana", user["name"])
	assert.Equal(t, "ana@x.com", user["email"])
	assert.Equal(t, model.RoleUser, user["role"])
	assert.NotZero(t, user["id"])
	assert.NotContains(t, user, "password")

	// Same email again: rejected without a new row.
	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", "", map[string]string{
		"name": "Imposter", "email": "ana@x.com", "password": "other",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "email already registered", body["error"])

	// Wrong password.
	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", "", map[string]string{
		"email": "ana@x.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "invalid credentials", body["error"])

	// Unknown email produces the identical error body.
	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", "", map[string]string{
		"email": "nobody@x.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "invalid credentials", body["error"])

	// Correct login returns the same profile and a fresh token.
	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", "", map[string]string{
		"email": "ana@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	loggedIn, _ := body["user"].(map[string]any)
	assert.Equal(t, user["id"], loggedIn["id"])
	assert.Equal(t, "Ana", loggedIn["name"])

	// Profile endpoint with the token.
	token := body["token"].(string)
	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ana@x.com", body["email"])
}

func TestRegisterValidation(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", "", map[string]string{
		"email": "ana@x.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "name is required", body["error"])
}

func TestAdminGate(t *testing.T) {
	srv := newTestServer(t)

	_, body := doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", "", map[string]string{
		"name": "Ana", "email": "ana@x.com", "password": "secret1",
	})
	anaToken := body["token"].(string)

	// No token: 401.
	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/api/admin/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Garbage token: 401.
	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/admin/products", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Authenticated non-admin: 403, distinct from 401.
	resp, errBody := doJSON(t, http.MethodGet, srv.URL+"/api/admin/products", anaToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "admin access required", errBody["error"])

	// Admin passes through to the handler.
	adminToken := login(t, srv, "root@x.com", "admin-secret")
	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/admin/products", adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminProductCRUD(t *testing.T) {
	srv := newTestServer(t)
	adminToken := login(t, srv, "root@x.com", "admin-secret")

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/admin/products", adminToken, map[string]any{
		"title": "Wireless Headphones", "price": 129.99, "category": "Electronics", "stock": 5,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	id := int64(body["id"].(float64))
	require.NotZero(t, id)

	// Visible on the public catalog.
	resp, _ = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/products/%d", srv.URL, id), "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPut, fmt.Sprintf("%s/api/admin/products/%d", srv.URL, id), adminToken, map[string]any{
		"title": "Wireless Headphones", "price": 99.99, "category": "Electronics", "stock": 4,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/admin/products/%d", srv.URL, id), adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/products/%d", srv.URL, id), "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Missing product paths.
	resp, _ = doJSON(t, http.MethodPut, srv.URL+"/api/admin/products/9999", adminToken, map[string]any{"title": "Ghost"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/admin/products/9999", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOrderEndpoints(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/orders", "", map[string]any{
		"customer": map[string]string{"name": "Ana", "email": "ana@x.com"},
		"items":    []map[string]any{{"id": 1, "title": "Casual T-Shirt", "price": 19.99, "qty": 2}},
		"total":    39.98,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "order created", body["message"])
	assert.NotZero(t, body["id"])

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/orders", "", map[string]any{
		"customer": map[string]string{"name": "Ana"},
		"items":    []map[string]any{{"id": 1, "qty": 1}},
		"total":    19.99,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "customer name and email are required", body["error"])

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/orders", nil)
	require.NoError(t, err)
	listResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer listResp.Body.Close()

	var orders []map[string]any
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&orders))
	require.Len(t, orders, 1)
	customer, _ := orders[0]["customer"].(map[string]any)
	assert.Equal(t, "Ana", customer["name"])
}

func TestPublicCatalog(t *testing.T) {
	srv := newTestServer(t)
	adminToken := login(t, srv, "root@x.com", "admin-secret")

	for _, title := range []string{"Casual T-Shirt", "Running Sneakers"} {
		resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/admin/products", adminToken, map[string]any{
			"title": title, "price": 10.0, "stock": 1,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, err := http.Get(srv.URL + "/api/products")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var products []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&products))
	assert.Len(t, products, 2)

	resp, err = http.Get(srv.URL + "/api/products/9999")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
