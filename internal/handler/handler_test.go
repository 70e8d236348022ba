package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/shravyakp25082007-tech/stockmate/internal/model"
	"github.com/shravyakp25082007-tech/stockmate/internal/repository"
	"github.com/shravyakp25082007-tech/stockmate/internal/service"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	store := repository.NewMemoryStore()
	pRepo := repository.NewProductRepo(store)
	planRepo := repository.NewPlanRepo(store)
	tRepo := repository.NewTransactionRepo(store)
	now := func() time.Time { return fixedNow }
	log := zerolog.Nop()

	state, err := service.LoadState(pRepo, planRepo, tRepo, now, log)
	require.NoError(t, err)

	inv := service.NewInventoryService(state, pRepo, planRepo, service.NopNotifier, log)
	plan := service.NewPlanService(state, planRepo, service.NopNotifier, log)
	ledger := service.NewLedgerService(state, pRepo, tRepo, service.NopNotifier, now, log)
	dash := service.NewDashboardService(state)

	app := fiber.New(fiber.Config{Immutable: true})
	SetupRoutes(app, NewInventoryHandler(inv, ledger), NewPlanningHandler(plan), NewDashboardHandler(dash))
	return app
}

func do(t *testing.T, app *fiber.App, method, target, body string) (int, map[string]interface{}) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	return send(t, app, req)
}

func send(t *testing.T, app *fiber.App, req *http.Request) (int, map[string]interface{}) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	} else {
		out = map[string]interface{}{"raw": string(raw)}
	}
	return resp.StatusCode, out
}

func TestProductLifecycle(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	status, body := do(t, app, http.MethodPost, "/api/v1/products",
		`{"name":"Tea (250g)","category":"Groceries","quantity":3,"minQuantity":3,"buyingPrice":90,"sellingPrice":120}`)
	require.Equal(t, http.StatusCreated, status)
	data := body["data"].(map[string]interface{})
	require.EqualValues(t, 9, data["id"])
	require.Equal(t, "low", data["status"])
	require.Equal(t, "Low Stock", data["statusLabel"])
	require.EqualValues(t, 33.3, data["marginPercent"])

	status, body = do(t, app, http.MethodPut, "/api/v1/products/9",
		`{"name":"Tea (250g)","category":"Groceries","quantity":0,"minQuantity":3,"buyingPrice":90,"sellingPrice":120}`)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "out", body["data"].(map[string]interface{})["status"])

	status, _ = do(t, app, http.MethodDelete, "/api/v1/products/9", "")
	require.Equal(t, http.StatusPreconditionRequired, status)

	status, _ = do(t, app, http.MethodDelete, "/api/v1/products/9?confirm=true", "")
	require.Equal(t, http.StatusOK, status)

	status, _ = do(t, app, http.MethodGet, "/api/v1/products/9", "")
	require.Equal(t, http.StatusNotFound, status)
}

func TestCreateProductFromForm(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	form := url.Values{
		"name":         {"Tea"},
		"category":     {"Groceries"},
		"quantity":     {"ten"},
		"minQuantity":  {"1"},
		"buyingPrice":  {"5"},
		"sellingPrice": {"6"},
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)

	status, body := send(t, app, req)
	require.Equal(t, http.StatusBadRequest, status)
	fields := body["fields"].([]interface{})
	require.Len(t, fields, 1)
	require.Equal(t, "quantity", fields[0].(map[string]interface{})["field"])
}

func TestProductValidationErrors(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	status, body := do(t, app, http.MethodPost, "/api/v1/products",
		`{"name":"","category":"Groceries","quantity":-2,"minQuantity":0,"buyingPrice":1,"sellingPrice":1}`)
	require.Equal(t, http.StatusBadRequest, status)
	require.Len(t, body["fields"], 2)

	status, _ = do(t, app, http.MethodGet, "/api/v1/products/abc", "")
	require.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, app, http.MethodGet, "/api/v1/products?status=empty", "")
	require.Equal(t, http.StatusBadRequest, status)
}

func TestCreateProductRequiresNumericFields(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	status, body := do(t, app, http.MethodPost, "/api/v1/products", `{"name":"Ghost","category":"Books"}`)
	require.Equal(t, http.StatusBadRequest, status)
	require.Len(t, body["fields"], 4)

	status, body = do(t, app, http.MethodGet, "/api/v1/dashboard/stats", "")
	require.Equal(t, http.StatusOK, status)
	require.EqualValues(t, 8, body["itemCount"])
}

func TestProductFilters(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?category=Groceries&status=low", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var products []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&products))
	require.Len(t, products, 1)
	require.Equal(t, "Sugar (2kg)", products[0]["name"])
}

func TestTransactions(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	status, body := do(t, app, http.MethodPost, "/api/v1/transactions/buy",
		`{"productId":7,"quantity":5,"price":100,"supplier":"Sharma Traders"}`)
	require.Equal(t, http.StatusCreated, status)
	tx := body["data"].(map[string]interface{})
	require.EqualValues(t, 500, tx["total"])
	require.Equal(t, "Sharma Traders", tx["supplier"])

	status, body = do(t, app, http.MethodPost, "/api/v1/transactions/sale",
		`{"productId":3,"quantity":5,"price":280,"buyerName":"Asha"}`)
	require.Equal(t, http.StatusConflict, status)
	require.EqualValues(t, 2, body["available"])

	status, _ = do(t, app, http.MethodPost, "/api/v1/transactions/sale",
		`{"productId":3,"quantity":0,"price":280}`)
	require.Equal(t, http.StatusBadRequest, status)

	status, body = do(t, app, http.MethodGet, "/api/v1/transactions/"+tx["id"].(string), "")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "buy", body["type"])

	status, _ = do(t, app, http.MethodGet, "/api/v1/transactions/not-a-uuid", "")
	require.Equal(t, http.StatusBadRequest, status)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions?limit=5", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var list []model.Transaction
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 1)
	require.Equal(t, 5, list[0].Quantity)
}

func TestPlanRoutes(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	status, body := do(t, app, http.MethodPost, "/api/v1/plan/buy/items", `{"productId":4}`)
	require.Equal(t, http.StatusCreated, status)
	itemID := body["data"].(map[string]interface{})["id"].(string)

	status, body = do(t, app, http.MethodPost, "/api/v1/plan/buy/items", `{"productId":4}`)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, body["alreadyPresent"])

	status, body = do(t, app, http.MethodPatch, "/api/v1/plan/buy/items/"+itemID, `{"delta":2}`)
	require.Equal(t, http.StatusOK, status)
	require.EqualValues(t, 3, body["data"].(map[string]interface{})["quantity"])

	status, _ = do(t, app, http.MethodPatch, "/api/v1/plan/buy/positions/4", `{"delta":1}`)
	require.Equal(t, http.StatusNotFound, status)

	status, _ = do(t, app, http.MethodPost, "/api/v1/plan/gift/items", `{"productId":4}`)
	require.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, app, http.MethodPut, "/api/v1/plan/notes", `{"notes":"restock salt"}`)
	require.Equal(t, http.StatusOK, status)
	status, _ = do(t, app, http.MethodPut, "/api/v1/plan/date", `{"date":"tomorrow"}`)
	require.Equal(t, http.StatusBadRequest, status)

	status, body = do(t, app, http.MethodGet, "/api/v1/plan", "")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "2026-03-14", body["date"])
	require.Equal(t, "restock salt", body["notes"])
	summary := body["summary"].(map[string]interface{})
	require.EqualValues(t, 3, summary["buyQuantityTotal"])
	require.EqualValues(t, 150, summary["buyCostTotal"])

	status, _ = do(t, app, http.MethodDelete, "/api/v1/plan/buy/positions/0", "")
	require.Equal(t, http.StatusOK, status)
	status, _ = do(t, app, http.MethodDelete, "/api/v1/plan/buy/items/"+itemID, "")
	require.Equal(t, http.StatusNotFound, status)

	status, _ = do(t, app, http.MethodPost, "/api/v1/plan/save", "")
	require.Equal(t, http.StatusOK, status)
}

func TestDashboardRoute(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	status, body := do(t, app, http.MethodGet, "/api/v1/dashboard/stats", "")
	require.Equal(t, http.StatusOK, status)
	require.EqualValues(t, 8, body["itemCount"])
	require.EqualValues(t, 20610, body["totalStockValue"])
	require.EqualValues(t, 1, body["lowStockCount"])
	require.Len(t, body["alerts"], 2)
}
