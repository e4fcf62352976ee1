package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"pasar/internal/handlers"
	"pasar/internal/middleware"
	"pasar/internal/models"
	"pasar/internal/repositories"
	"pasar/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	testJWTSecret     = "test_jwt_secret"
	testAdminEmail    = "admin@test.local"
	testAdminPassword = "admin-secret"
)

// setupApp builds a Fiber app over a fresh in-memory SQLite database with all
// handlers and services wired the way the server does. Each test gets its own
// named database so parallel tests cannot see each other's data.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.SellerProfile{},
		&models.SellerApproval{},
		&models.Product{},
		&models.CartEntry{},
		&models.Order{},
	)
	require.NoError(t, err)

	store := repositories.NewGormStore(db)
	seedTestAdmin(t, store)

	authService := services.NewAuthService(store.Users(), testJWTSecret)
	productService := services.NewProductService(store.Products())
	cartService := services.NewCartService(store.Carts(), store.Products())
	checkoutService := services.NewCheckoutService(store, nil)
	orderService := services.NewOrderService(store, nil)
	balanceService := services.NewBalanceService(store.Users())
	adminService := services.NewAdminService(store)

	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	cartHandler := handlers.NewCartHandler(cartService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	orderHandler := handlers.NewOrderHandler(orderService)
	balanceHandler := handlers.NewBalanceHandler(balanceService)
	adminHandler := handlers.NewAdminHandler(adminService)

	app := fiber.New()
	api := app.Group("/api")

	authHandler.RegisterRoutes(api)
	adminHandler.RegisterSellerRoutes(api)

	protected := api.Group("", middleware.AuthRequired(authService))
	authHandler.RegisterProtectedRoutes(protected)
	productHandler.RegisterRoutes(protected)
	cartHandler.RegisterRoutes(protected)
	checkoutHandler.RegisterRoutes(protected)
	orderHandler.RegisterRoutes(protected)
	balanceHandler.RegisterRoutes(protected)

	adminOnly := api.Group("", middleware.AuthRequired(authService), middleware.RoleRequired(models.RoleAdmin))
	adminHandler.RegisterRoutes(adminOnly)

	return app
}

func seedTestAdmin(t *testing.T, store repositories.Store) {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	require.NoError(t, err)
	admin := &models.User{
		Name:     "Admin",
		Username: "admin",
		Email:    testAdminEmail,
		Password: string(hashed),
		Phone:    "0000000",
		Address:  "HQ",
		Role:     models.RoleAdmin,
		Approved: true,
	}
	require.NoError(t, store.Users().Create(admin))
}

// doJSON performs a request against the app and decodes the JSON response
// into out (when out is non-nil).
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body, out interface{}) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func registerUser(t *testing.T, app *fiber.App, username, email, role string) uint {
	t.Helper()
	var resp struct {
		UserID uint `json:"userId"`
	}
	status := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Test " + username,
		"username": username,
		"email":    email,
		"password": "password123",
		"phone":    "5551234",
		"address":  "1 Test Street",
		"role":     role,
	}, &resp)
	require.Equal(t, http.StatusCreated, status)
	require.NotZero(t, resp.UserID)
	return resp.UserID
}

func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	var resp struct {
		Token string `json:"token"`
	}
	status := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// TestMain suppresses handler logging for cleaner output.
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestRegisterAndLoginFlow(t *testing.T) {
	app := setupApp(t)

	registerUser(t, app, "buyer1", "buyer1@example.com", models.RoleBuyer)

	// Duplicate username conflicts.
	status := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Dup", "username": "buyer1", "email": "dup@example.com",
		"password": "password123", "phone": "5551234", "address": "x", "role": models.RoleBuyer,
	}, nil)
	assert.Equal(t, http.StatusConflict, status)

	// Admin self-registration is rejected.
	status = doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Evil", "username": "evil", "email": "evil@example.com",
		"password": "password123", "phone": "5551234", "address": "x", "role": models.RoleAdmin,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	token := login(t, app, "buyer1@example.com", "password123")

	// The token resolves back to the registered user.
	var verify struct {
		User models.User `json:"user"`
	}
	status = doJSON(t, app, http.MethodGet, "/api/auth/verify", token, nil, &verify)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "buyer1", verify.User.Username)

	status = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "buyer1@example.com", "password": "wrong",
	}, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := setupApp(t)

	assert.Equal(t, http.StatusUnauthorized, doJSON(t, app, http.MethodGet, "/api/products", "", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, doJSON(t, app, http.MethodGet, "/api/orders", "", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, doJSON(t, app, http.MethodGet, "/api/balance", "", nil, nil))
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	app := setupApp(t)

	registerUser(t, app, "buyer2", "buyer2@example.com", models.RoleBuyer)
	buyerToken := login(t, app, "buyer2@example.com", "password123")

	assert.Equal(t, http.StatusForbidden, doJSON(t, app, http.MethodGet, "/api/admin/pending-sellers", buyerToken, nil, nil))
	assert.Equal(t, http.StatusForbidden, doJSON(t, app, http.MethodGet, "/api/admin/all-users", buyerToken, nil, nil))
}

func TestSellerOnboardingFlow(t *testing.T) {
	app := setupApp(t)

	sellerID := registerUser(t, app, "seller1", "seller1@example.com", models.RoleSeller)

	// Unapproved sellers cannot log in yet.
	status := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "seller1@example.com", "password": "password123",
	}, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// The seller submits business details (no token required).
	status = doJSON(t, app, http.MethodPost, "/api/seller/register", "", map[string]interface{}{
		"user_id":        sellerID,
		"msme_number":    "MSME-42",
		"address":        "9 Market Road",
		"aadhaar_number": "1111",
		"account_number": "ACC-7",
	}, nil)
	assert.Equal(t, http.StatusOK, status)

	adminToken := login(t, app, testAdminEmail, testAdminPassword)

	var pending []models.PendingSeller
	status = doJSON(t, app, http.MethodGet, "/api/admin/pending-sellers", adminToken, nil, &pending)
	assert.Equal(t, http.StatusOK, status)
	if assert.Len(t, pending, 1) {
		assert.Equal(t, sellerID, pending[0].ID)
		assert.Equal(t, "MSME-42", pending[0].MSMENumber)
	}

	status = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/admin/approve-seller/%d", sellerID), adminToken, nil, nil)
	assert.Equal(t, http.StatusOK, status)

	// Approval is not repeatable.
	status = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/admin/approve-seller/%d", sellerID), adminToken, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)

	var history []models.ApprovalRecord
	status = doJSON(t, app, http.MethodGet, "/api/admin/approval-history", adminToken, nil, &history)
	assert.Equal(t, http.StatusOK, status)
	if assert.Len(t, history, 1) {
		assert.Equal(t, sellerID, history[0].UserID)
	}

	// Now the seller can log in.
	login(t, app, "seller1@example.com", "password123")
}

// approvedSeller registers, onboards and approves a seller, returning their
// token and user ID.
func approvedSeller(t *testing.T, app *fiber.App, username, email string) (string, uint) {
	t.Helper()
	sellerID := registerUser(t, app, username, email, models.RoleSeller)
	adminToken := login(t, app, testAdminEmail, testAdminPassword)
	status := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/admin/approve-seller/%d", sellerID), adminToken, nil, nil)
	require.Equal(t, http.StatusOK, status)
	return login(t, app, email, "password123"), sellerID
}

func TestMarketplacePurchaseFlow(t *testing.T) {
	app := setupApp(t)

	sellerToken, sellerID := approvedSeller(t, app, "seller3", "seller3@example.com")
	registerUser(t, app, "buyer3", "buyer3@example.com", models.RoleBuyer)
	buyerToken := login(t, app, "buyer3@example.com", "password123")

	// Seller lists a product.
	var product models.Product
	status := doJSON(t, app, http.MethodPost, "/api/products", sellerToken, map[string]interface{}{
		"image":       "widget.png",
		"description": "A widget",
		"price":       10.0,
		"quantity":    5,
	}, &product)
	require.Equal(t, http.StatusCreated, status)
	require.NotZero(t, product.ID)
	assert.Equal(t, sellerID, product.SellerID)

	// Buyers cannot list products.
	status = doJSON(t, app, http.MethodPost, "/api/products", buyerToken, map[string]interface{}{
		"image": "x.png", "description": "nope", "price": 1.0, "quantity": 1,
	}, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// Buyer funds their account.
	status = doJSON(t, app, http.MethodPost, "/api/balance/add", buyerToken, map[string]float64{"amount": 100}, nil)
	require.Equal(t, http.StatusOK, status)

	var balance struct {
		Balance float64 `json:"balance"`
	}
	status = doJSON(t, app, http.MethodGet, "/api/balance", buyerToken, nil, &balance)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 100.0, balance.Balance)

	// Buyer carts the product.
	var addResp struct {
		Entry models.CartEntry `json:"entry"`
	}
	status = doJSON(t, app, http.MethodPost, "/api/cart/add", buyerToken, map[string]interface{}{
		"productId": product.ID,
		"quantity":  3,
	}, &addResp)
	require.Equal(t, http.StatusOK, status)
	require.NotZero(t, addResp.Entry.ID)

	var cart []models.CartItem
	status = doJSON(t, app, http.MethodGet, "/api/cart", buyerToken, nil, &cart)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, cart, 1)
	assert.Equal(t, "A widget", cart[0].Description)

	// Checkout from the cart.
	var checkout struct {
		Orders []services.CheckoutOrder `json:"orders"`
		Total  float64                  `json:"total"`
	}
	status = doJSON(t, app, http.MethodPost, "/api/payment/process", buyerToken, map[string]interface{}{
		"cartItems": []map[string]interface{}{
			{"id": addResp.Entry.ID, "productId": product.ID, "quantity": 3, "sellerId": sellerID},
		},
	}, &checkout)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, checkout.Orders, 1)
	assert.Equal(t, 30.0, checkout.Total)

	// The money moved and the stock dropped.
	status = doJSON(t, app, http.MethodGet, "/api/balance", buyerToken, nil, &balance)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 70.0, balance.Balance)

	status = doJSON(t, app, http.MethodGet, "/api/balance", sellerToken, nil, &balance)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 30.0, balance.Balance)

	var fetched models.Product
	status = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/products/%d", product.ID), buyerToken, nil, &fetched)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, fetched.Quantity)

	// The cart entry was consumed.
	status = doJSON(t, app, http.MethodGet, "/api/cart", buyerToken, nil, &cart)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, cart)

	// Both sides see the order.
	var buyerOrders []models.OrderView
	status = doJSON(t, app, http.MethodGet, "/api/orders", buyerToken, nil, &buyerOrders)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, buyerOrders, 1)
	assert.Equal(t, models.PaymentCompleted, buyerOrders[0].PaymentStatus)
	assert.Equal(t, models.DeliveryPending, buyerOrders[0].DeliveryStatus)

	var sellerOrders []models.OrderView
	status = doJSON(t, app, http.MethodGet, "/api/orders", sellerToken, nil, &sellerOrders)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, sellerOrders, 1)
	orderID := sellerOrders[0].ID

	// Seller ships the order.
	status = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/orders/update-status/%d", orderID), sellerToken, map[string]string{
		"paymentStatus":  string(models.PaymentCompleted),
		"deliveryStatus": string(models.DeliveryShipped),
	}, nil)
	assert.Equal(t, http.StatusOK, status)

	// A paid order cannot be canceled through the API.
	status = doJSON(t, app, http.MethodPost, "/api/orders/cancel", buyerToken, map[string]uint{
		"orderId": orderID,
	}, nil)
	assert.Equal(t, http.StatusConflict, status)
}

func TestCheckoutInsufficientBalanceOverAPI(t *testing.T) {
	app := setupApp(t)

	sellerToken, sellerID := approvedSeller(t, app, "seller4", "seller4@example.com")
	registerUser(t, app, "buyer4", "buyer4@example.com", models.RoleBuyer)
	buyerToken := login(t, app, "buyer4@example.com", "password123")

	var product models.Product
	status := doJSON(t, app, http.MethodPost, "/api/products", sellerToken, map[string]interface{}{
		"image": "g.png", "description": "Gadget", "price": 50.0, "quantity": 4,
	}, &product)
	require.Equal(t, http.StatusCreated, status)

	status = doJSON(t, app, http.MethodPost, "/api/balance/add", buyerToken, map[string]float64{"amount": 20}, nil)
	require.Equal(t, http.StatusOK, status)

	var errResp struct {
		Message string `json:"message"`
	}
	status = doJSON(t, app, http.MethodPost, "/api/payment/process", buyerToken, map[string]interface{}{
		"items": []map[string]interface{}{
			{"productId": product.ID, "quantity": 1, "sellerId": sellerID},
		},
	}, &errResp)
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, errResp.Message, "insufficient balance")

	// Nothing moved.
	var balance struct {
		Balance float64 `json:"balance"`
	}
	status = doJSON(t, app, http.MethodGet, "/api/balance", buyerToken, nil, &balance)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 20.0, balance.Balance)

	var fetched models.Product
	status = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/products/%d", product.ID), buyerToken, nil, &fetched)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 4, fetched.Quantity)
}

func TestAdminBalanceOverride(t *testing.T) {
	app := setupApp(t)

	buyerID := registerUser(t, app, "buyer5", "buyer5@example.com", models.RoleBuyer)
	buyerToken := login(t, app, "buyer5@example.com", "password123")
	adminToken := login(t, app, testAdminEmail, testAdminPassword)

	// Only the admin route group carries the override; buyers hit a 403 from
	// the service role check.
	status := doJSON(t, app, http.MethodPut, "/api/balance", buyerToken, map[string]interface{}{
		"userId": buyerID, "balance": 1000.0,
	}, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status = doJSON(t, app, http.MethodPut, "/api/balance", adminToken, map[string]interface{}{
		"userId": buyerID, "balance": 250.0,
	}, nil)
	assert.Equal(t, http.StatusOK, status)

	var balance struct {
		Balance float64 `json:"balance"`
	}
	status = doJSON(t, app, http.MethodGet, "/api/balance", buyerToken, nil, &balance)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 250.0, balance.Balance)
}
