package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ads-inventory-ws/internal/handler"
	"ads-inventory-ws/internal/middleware"
	"ads-inventory-ws/internal/model"
	"ads-inventory-ws/internal/repository"
	"ads-inventory-ws/internal/service"
	"ads-inventory-ws/internal/testutil"
	"ads-inventory-ws/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cookieName = "ads_session"

type testAPI struct {
	app   *fiber.App
	token string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	db := testutil.NewDB(t)
	log := logger.Nop()

	productRepo := repository.NewProductRepo(db)
	clientRepo := repository.NewClientRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	eventRepo := repository.NewDateEventRepo(db)
	userRepo := repository.NewUserRepo(db)
	sessionRepo := repository.NewSessionRepo(db)

	authService := service.NewAuthService(userRepo, sessionRepo, "test-secret", 24*time.Hour, nil, log)
	userService := service.NewUserService(userRepo, sessionRepo)

	h := &handler.Handlers{
		Auth:         handler.NewAuthHandler(authService, handler.CookieOptions{Name: cookieName}),
		Users:        handler.NewUserHandler(userService),
		Products:     handler.NewProductHandler(service.NewProductService(productRepo, eventRepo, db, nil)),
		Clients:      handler.NewClientHandler(service.NewClientService(clientRepo)),
		Requirements: handler.NewRequirementHandler(service.NewRequirementService(repository.NewRequirementRepo(db), clientRepo)),
		Orders:       handler.NewOrderHandler(service.NewOrderService(orderRepo, clientRepo, productRepo, saleRepo, db, nil)),
		Sales:        handler.NewSaleHandler(service.NewSaleService(saleRepo, productRepo, clientRepo, orderRepo, eventRepo, db, nil)),
		Recovery:     handler.NewRecoveryHandler(service.NewRecoveryService(repository.NewRecoveryRepo(db), productRepo, clientRepo, eventRepo, db, nil)),
		Events:       handler.NewDateEventHandler(service.NewDateEventService(eventRepo, productRepo, clientRepo, nil)),
		Dashboard:    handler.NewDashboardHandler(service.NewDashboardService(repository.NewDashboardRepo(db), nil, 0, log)),
	}

	app := fiber.New(fiber.Config{ErrorHandler: handler.ErrorHandler(log)})
	handler.Register(app.Group("/api"), h,
		middleware.RequireAuth(authService, cookieName, log),
		middleware.RequireRole(model.RoleAdmin),
	)

	created, err := userService.SeedAdmin(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	require.True(t, created)

	api := &testAPI{app: app}
	api.token = api.login(t, "admin", "admin123")
	return api
}

func (a *testAPI) do(t *testing.T, method, path string, body any, token string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		payload, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func (a *testAPI) login(t *testing.T, username, password string) string {
	t.Helper()
	resp, raw := a.do(t, http.MethodPost, "/api/auth/login", fiber.Map{"username": username, "password": password}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func decodeData(t *testing.T, raw []byte, dest any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, dest))
}

func errorMessage(t *testing.T, raw []byte) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body.Error
}

func newProductBody(adsID string) fiber.Map {
	return fiber.Map{
		"ads_id":     adsID,
		"brand":      "Dell",
		"model":      "Latitude 5490",
		"condition":  "refurbished",
		"cost_price": 18500,
	}
}

func TestLoginSetsSessionCookie(t *testing.T) {
	api := newTestAPI(t)

	resp, raw := api.do(t, http.MethodPost, "/api/auth/login", fiber.Map{"username": "admin", "password": "admin123"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == cookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: cookie.Value})
	meResp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, meResp.StatusCode)

	var me model.User
	require.NoError(t, json.NewDecoder(meResp.Body).Decode(&me))
	assert.Equal(t, "admin", me.Username)
	assert.Equal(t, model.RoleAdmin, me.Role)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	api := newTestAPI(t)

	resp, raw := api.do(t, http.MethodPost, "/api/auth/login", fiber.Map{"username": "admin", "password": "nope"}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "invalid username or password", errorMessage(t, raw))
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	api := newTestAPI(t)

	resp, _ := api.do(t, http.MethodGet, "/api/products", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = api.do(t, http.MethodGet, "/api/products", nil, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogoutRevokesSession(t *testing.T) {
	api := newTestAPI(t)

	resp, _ := api.do(t, http.MethodPost, "/api/auth/logout", nil, api.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = api.do(t, http.MethodGet, "/api/auth/me", nil, api.token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProductEndpoints(t *testing.T) {
	api := newTestAPI(t)

	resp, raw := api.do(t, http.MethodPost, "/api/products", newProductBody("20000000001"), api.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var created model.Product
	decodeData(t, raw, &created)
	assert.Equal(t, model.StatusAvailable, created.Status)

	resp, raw = api.do(t, http.MethodPost, "/api/products", newProductBody("20000000001"), api.token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "ads id already exists", errorMessage(t, raw))

	resp, _ = api.do(t, http.MethodPost, "/api/products", newProductBody("123"), api.token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, raw = api.do(t, http.MethodPost, "/api/products", "{not json", api.token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid JSON", errorMessage(t, raw))

	resp, _ = api.do(t, http.MethodGet, "/api/products/20000000001", nil, api.token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = api.do(t, http.MethodGet, "/api/products/29999999999", nil, api.token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, raw = api.do(t, http.MethodGet, "/api/products/20000000001/events", nil, api.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var events []model.ProductDateEvent
	require.NoError(t, json.Unmarshal(raw, &events))
	require.Len(t, events, 1)
	assert.Equal(t, model.EventProductAdded, events[0].EventType)

	resp, _ = api.do(t, http.MethodDelete, "/api/products/20000000001", nil, api.token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw = api.do(t, http.MethodGet, "/api/products", nil, api.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []model.Product
	require.NoError(t, json.Unmarshal(raw, &list))
	assert.Empty(t, list)
}

func TestChangeStatusEndpoint(t *testing.T) {
	api := newTestAPI(t)
	resp, _ := api.do(t, http.MethodPost, "/api/products", newProductBody("20000000001"), api.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, raw := api.do(t, http.MethodPost, "/api/products/20000000001/status", fiber.Map{"status": "leased-but-maintenance"}, api.token)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var out struct {
		Product model.Product          `json:"product"`
		Event   model.ProductDateEvent `json:"event"`
	}
	decodeData(t, raw, &out)
	assert.Equal(t, model.StatusLeasedInMaintenance, out.Product.Status)
	assert.Equal(t, model.EventMaintenance, out.Event.EventType)
}

func TestClientEndpoints(t *testing.T) {
	api := newTestAPI(t)
	body := fiber.Map{"name": "Acme Traders", "email": "Buyer@Acme.in"}

	resp, raw := api.do(t, http.MethodPost, "/api/clients", body, api.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var client model.Client
	decodeData(t, raw, &client)
	assert.Equal(t, "buyer@acme.in", client.Email)

	resp, raw = api.do(t, http.MethodPost, "/api/clients", fiber.Map{"name": "Other", "email": "buyer@acme.in"}, api.token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "email already exists", errorMessage(t, raw))

	resp, _ = api.do(t, http.MethodGet, "/api/clients/abc", nil, api.token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = api.do(t, http.MethodGet, "/api/clients/999", nil, api.token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = api.do(t, http.MethodGet, "/api/clients?active=maybe", nil, api.token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOrderAndBuyFlow(t *testing.T) {
	api := newTestAPI(t)

	resp, _ := api.do(t, http.MethodPost, "/api/products", newProductBody("20000000001"), api.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, raw := api.do(t, http.MethodPost, "/api/clients", fiber.Map{"name": "Acme", "email": "ops@acme.in"}, api.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var client model.Client
	decodeData(t, raw, &client)

	resp, raw = api.do(t, http.MethodPost, "/api/orders", fiber.Map{
		"client_id":       client.ID,
		"order_type":      "PURCHASE",
		"ads_ids":         []string{"20000000001"},
		"required_pieces": 2,
	}, api.token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "quantities must add up to required pieces")

	resp, raw = api.do(t, http.MethodPost, "/api/orders", fiber.Map{
		"client_id":       client.ID,
		"order_type":      "PURCHASE",
		"ads_ids":         []string{"20000000001"},
		"required_pieces": 1,
		"total_amount":    "26000",
	}, api.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var order model.Order
	decodeData(t, raw, &order)
	require.NotEmpty(t, order.OrderID)

	resp, raw = api.do(t, http.MethodGet, "/api/orders/by-order-id/"+order.OrderID, nil, api.token)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	resp, raw = api.do(t, http.MethodPost, "/api/sales/buy", fiber.Map{
		"ads_id":        "20000000001",
		"client_id":     client.ID,
		"order_id":      order.OrderID,
		"selling_price": "26000",
	}, api.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	resp, raw = api.do(t, http.MethodGet, "/api/products/20000000001", nil, api.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var product model.Product
	require.NoError(t, json.Unmarshal(raw, &product))
	assert.Equal(t, model.StatusSold, product.Status)

	resp, raw = api.do(t, http.MethodPost, "/api/sales/buy", fiber.Map{
		"ads_id":        "20000000001",
		"client_id":     client.ID,
		"selling_price": "26000",
	}, api.token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "a sold unit cannot be sold again")

	resp, raw = api.do(t, http.MethodGet, "/api/orders/"+jsonID(order.ID)+"/sales", nil, api.token)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var sales service.OrderSales
	require.NoError(t, json.Unmarshal(raw, &sales))
	assert.Len(t, sales.Buys, 1)
	assert.Empty(t, sales.Rents)
}

func TestRentPaymentStatusEndpoint(t *testing.T) {
	api := newTestAPI(t)
	resp, _ := api.do(t, http.MethodPost, "/api/products", newProductBody("20000000001"), api.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, raw := api.do(t, http.MethodPost, "/api/clients", fiber.Map{"name": "Acme", "email": "ops@acme.in"}, api.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var client model.Client
	decodeData(t, raw, &client)

	resp, raw = api.do(t, http.MethodPost, "/api/sales/rent", fiber.Map{
		"ads_id":            "20000000001",
		"client_id":         client.ID,
		"lease_amount":      "1500",
		"payment_frequency": "Monthly",
	}, api.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var rent model.SalesRent
	decodeData(t, raw, &rent)

	path := "/api/sales/rent/" + jsonID(rent.ID) + "/payment-status"
	resp, raw = api.do(t, http.MethodPatch, path, fiber.Map{"payment_status": "Complete"}, api.token)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	decodeData(t, raw, &rent)
	assert.Equal(t, model.RentComplete, rent.PaymentStatus)

	resp, _ = api.do(t, http.MethodPatch, path, fiber.Map{"payment_status": "Lost"}, api.token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDateEventsAndRecoveryEndpoints(t *testing.T) {
	api := newTestAPI(t)
	resp, _ := api.do(t, http.MethodPost, "/api/products", newProductBody("20000000001"), api.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, raw := api.do(t, http.MethodPost, "/api/product-date-events", fiber.Map{
		"ads_id":     "20000000001",
		"event_type": "AUDITED",
		"event_date": "2026-09-30",
		"created_at": "2001-01-01T00:00:00Z",
	}, api.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var ev model.ProductDateEvent
	decodeData(t, raw, &ev)
	assert.NotEqual(t, 2001, ev.CreatedAt.Year(), "created_at is always server time")

	resp, _ = api.do(t, http.MethodPut, "/api/product-date-events/"+jsonID(ev.ID), fiber.Map{"note": "edit"}, api.token)
	assert.Contains(t, []int{http.StatusNotFound, http.StatusMethodNotAllowed}, resp.StatusCode)

	resp, raw = api.do(t, http.MethodPost, "/api/recovery-items", fiber.Map{
		"original_ads_id": "20000000001",
		"brand":           "Dell",
		"model":           "Latitude 5490",
		"problem":         "no display",
	}, api.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	resp, raw = api.do(t, http.MethodGet, "/api/product-date-events?ads_id=20000000001&event_type=RECOVERY_RECEIVED", nil, api.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var events []model.ProductDateEvent
	require.NoError(t, json.Unmarshal(raw, &events))
	assert.Len(t, events, 1)

	resp, raw = api.do(t, http.MethodGet, "/api/recovery-items?status=received", nil, api.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var items []model.RecoveryItem
	require.NoError(t, json.Unmarshal(raw, &items))
	assert.Len(t, items, 1)
}

func TestDashboardSalesMovementPeriod(t *testing.T) {
	api := newTestAPI(t)

	resp, raw := api.do(t, http.MethodGet, "/api/dashboard/sales-movement?days=3", nil, api.token)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var out struct {
		Period int                            `json:"period"`
		Data   []repository.SalesMovementData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, 3, out.Period)
	assert.Len(t, out.Data, 3)

	resp, raw = api.do(t, http.MethodGet, "/api/dashboard/sales-movement?days=-4", nil, api.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, 7, out.Period)

	resp, _ = api.do(t, http.MethodGet, "/api/dashboard/stats?refresh=true", nil, api.token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUserManagementIsAdminOnly(t *testing.T) {
	api := newTestAPI(t)

	resp, raw := api.do(t, http.MethodPost, "/api/users", fiber.Map{
		"username":  "ravi",
		"password":  "secret1",
		"full_name": "Ravi Kumar",
		"role":      "staff",
	}, api.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var staff model.User
	decodeData(t, raw, &staff)
	assert.Equal(t, "EMP0002", staff.EmployeeID)

	staffToken := api.login(t, "ravi", "secret1")

	resp, _ = api.do(t, http.MethodGet, "/api/users", nil, staffToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = api.do(t, http.MethodGet, "/api/products", nil, staffToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = api.do(t, http.MethodDelete, "/api/users/"+staff.ID.String(), nil, api.token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = api.do(t, http.MethodGet, "/api/products", nil, staffToken)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "deleting a user ends their sessions")

	resp, _ = api.do(t, http.MethodGet, "/api/users/not-a-uuid", nil, api.token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestErrorHandlerHidesUnexpectedErrors(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: handler.ErrorHandler(logger.Nop())})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("pq: connection refused")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Internal Server Error", errorMessage(t, raw))
}

func jsonID(id uint) string {
	b, _ := json.Marshal(id)
	return string(b)
}
