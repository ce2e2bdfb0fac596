package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/bootstrap"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/stock-ledger/internal/interfaces/http"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// apiFixture API completa sobre el backend en memoria.
type apiFixture struct {
	app     *fiber.App
	backend *bootstrap.Backend
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	backend := bootstrap.NewMemoryBackend(memory.NewStore())
	svc := bootstrap.NewServices(backend, nil, logger.Nop())

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:  svc.Products,
		StockUC:    svc.Stock,
		SaleUC:     svc.Sales,
		ExpenseUC:  svc.Expenses,
		UserUC:     svc.Users,
		SnapshotUC: svc.Snapshots,
		Reconciler: svc.Reconciler,
		JWTSecret:  testJWTSecret,
	})
	require.NoError(t, backend.Users.Create(context.Background(), &entity.User{
		ID: testUserID, Email: "ana@example.com", Name: "Ana", Role: entity.RoleAdmin,
	}))
	return &apiFixture{app: app, backend: backend}
}

func (f *apiFixture) do(t *testing.T, method, path, role string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func (f *apiFixture) createLaptop(t *testing.T) dto.ProductResponse {
	t.Helper()
	resp, body := f.do(t, http.MethodPost, "/api/products", "manager", map[string]any{
		"sku": "LAP-001", "name": "Laptop", "quantity": 15, "reorder_level": 5,
		"unit_cost": "800", "unit_price": "1200", "category": "Electronics",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var p dto.ProductResponse
	require.NoError(t, json.Unmarshal(body, &p))
	return p
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e), string(body))
	return e.Code
}

func TestHealth_Publico(t *testing.T) {
	f := newAPI(t)
	resp, _ := f.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPI_SinTokenRetorna401(t *testing.T) {
	f := newAPI(t)
	resp, body := f.do(t, http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", errorCode(t, body))
}

func TestAPI_VentaYReverso(t *testing.T) {
	f := newAPI(t)
	laptop := f.createLaptop(t)

	resp, body := f.do(t, http.MethodPost, "/api/sales", "salesperson", map[string]any{
		"product_id": laptop.ID, "quantity": 2, "payment_mode": "cash",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var sale dto.SaleResponse
	require.NoError(t, json.Unmarshal(body, &sale))
	assert.Equal(t, "2400", sale.Total.String())
	assert.Equal(t, testUserID, sale.SalesPersonID, "el vendedor es el usuario del token")

	resp, body = f.do(t, http.MethodGet, "/api/products/"+laptop.ID, "salesperson", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var p dto.ProductResponse
	require.NoError(t, json.Unmarshal(body, &p))
	assert.Equal(t, 13, p.Quantity)

	resp, _ = f.do(t, http.MethodDelete, "/api/sales/"+sale.ID, "salesperson", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "salesperson no reversa")

	resp, _ = f.do(t, http.MethodDelete, "/api/sales/"+sale.ID, "manager", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = f.do(t, http.MethodDelete, "/api/sales/"+sale.ID, "manager", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "SALE_NOT_FOUND", errorCode(t, body))

	resp, body = f.do(t, http.MethodGet, "/api/reconciliation", "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var report inventory.ReconcileReport
	require.NoError(t, json.Unmarshal(body, &report))
	assert.True(t, report.Consistent())
}

func TestAPI_StockInsuficienteYProductoInexistente(t *testing.T) {
	f := newAPI(t)
	laptop := f.createLaptop(t)

	resp, body := f.do(t, http.MethodPost, "/api/sales", "salesperson", map[string]any{
		"product_id": laptop.ID, "quantity": 99, "payment_mode": "cash",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", errorCode(t, body))

	resp, body = f.do(t, http.MethodPost, "/api/sales", "salesperson", map[string]any{
		"product_id": "no-existe", "quantity": 1, "payment_mode": "cash",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "PRODUCT_NOT_FOUND", errorCode(t, body))

	resp, body = f.do(t, http.MethodPost, "/api/sales", "salesperson", map[string]any{
		"product_id": laptop.ID, "quantity": 0, "payment_mode": "cash",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_QUANTITY", errorCode(t, body))
}

func TestAPI_AjusteDeStock(t *testing.T) {
	f := newAPI(t)
	laptop := f.createLaptop(t)

	resp, body := f.do(t, http.MethodPost, "/api/products/"+laptop.ID+"/adjustments", "manager", map[string]any{"delta": -20})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", errorCode(t, body))

	resp, body = f.do(t, http.MethodPost, "/api/products/"+laptop.ID+"/adjustments", "manager", map[string]any{"delta": 5, "note": "reposición"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var p dto.ProductResponse
	require.NoError(t, json.Unmarshal(body, &p))
	assert.Equal(t, 20, p.Quantity)
}

func TestAPI_PermisosPorRol(t *testing.T) {
	f := newAPI(t)
	laptop := f.createLaptop(t)

	tests := []struct {
		method, path, role string
		want               int
	}{
		{http.MethodPost, "/api/products", "salesperson", http.StatusForbidden},
		{http.MethodDelete, "/api/products/" + laptop.ID, "manager", http.StatusForbidden},
		{http.MethodGet, "/api/expenses", "salesperson", http.StatusForbidden},
		{http.MethodGet, "/api/reports", "salesperson", http.StatusForbidden},
		{http.MethodGet, "/api/reports", "manager", http.StatusOK},
		{http.MethodGet, "/api/users", "manager", http.StatusForbidden},
		{http.MethodGet, "/api/users", "admin", http.StatusOK},
		{http.MethodGet, "/api/reconciliation", "manager", http.StatusForbidden},
		{http.MethodGet, "/api/dashboard", "salesperson", http.StatusOK},
		{http.MethodGet, "/api/sales", "salesperson", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path+" "+tt.role, func(t *testing.T) {
			resp, body := f.do(t, tt.method, tt.path, tt.role, nil)
			assert.Equal(t, tt.want, resp.StatusCode, string(body))
		})
	}
}

func TestAPI_RolSinPermisoUsaErrorDeDominio(t *testing.T) {
	f := newAPI(t)
	resp, body := f.do(t, http.MethodGet, "/api/users", "salesperson", nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e))
	assert.Equal(t, "FORBIDDEN", e.Code)
	assert.Equal(t, domain.ErrForbidden.Error(), e.Message)
}

func TestAPI_Gastos(t *testing.T) {
	f := newAPI(t)

	resp, body := f.do(t, http.MethodPost, "/api/expenses", "manager", map[string]any{
		"description": "Alquiler", "amount": "1000", "category": "rent",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var e dto.ExpenseResponse
	require.NoError(t, json.Unmarshal(body, &e))
	assert.Equal(t, "Rent", e.Category)

	resp, body = f.do(t, http.MethodPost, "/api/expenses", "manager", map[string]any{
		"description": "Nada", "amount": "0", "category": "Rent",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_AMOUNT", errorCode(t, body))

	resp, body = f.do(t, http.MethodGet, "/api/expenses?category=Rent", "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.ExpenseListResponse
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Ana", list.Items[0].CreatedByName)

	resp, _ = f.do(t, http.MethodDelete, "/api/expenses/"+e.ID, "manager", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, body = f.do(t, http.MethodDelete, "/api/expenses/"+e.ID, "manager", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "EXPENSE_NOT_FOUND", errorCode(t, body))
}

func TestAPI_FechaInvalidaEnFiltro(t *testing.T) {
	f := newAPI(t)
	resp, body := f.do(t, http.MethodGet, "/api/sales?from=ayer", "salesperson", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_DATE", errorCode(t, body))
}

func TestAPI_CuerpoInvalido(t *testing.T) {
	f := newAPI(t)
	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewBufferString("{no json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, "admin"))
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_DirectorioDeUsuarios(t *testing.T) {
	f := newAPI(t)

	resp, body := f.do(t, http.MethodPost, "/api/users", "admin", map[string]any{
		"email": "luis@example.com", "name": "Luis", "role": "salesperson",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = f.do(t, http.MethodPost, "/api/users", "admin", map[string]any{
		"email": "LUIS@example.com", "name": "Otro", "role": "manager",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "EMAIL_EXISTS", errorCode(t, body))

	resp, body = f.do(t, http.MethodGet, "/api/users", "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var users []dto.UserResponse
	require.NoError(t, json.Unmarshal(body, &users))
	assert.Len(t, users, 2)
}

func TestAPI_PaginacionDeVentas(t *testing.T) {
	f := newAPI(t)
	laptop := f.createLaptop(t)
	for i := 0; i < 3; i++ {
		resp, body := f.do(t, http.MethodPost, "/api/sales", "salesperson", map[string]any{
			"product_id": laptop.ID, "quantity": 1, "payment_mode": "POS",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	}

	tests := []struct {
		query string
		want  int
	}{
		{"", 3},
		{"?limit=2", 2},
		{"?limit=2&offset=2", 1},
		{"?limit=-4", 3},
		{"?limit=abc", 3},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp, body := f.do(t, http.MethodGet, "/api/sales"+tt.query, "salesperson", nil)
			require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
			var out dto.SalesOverviewDTO
			require.NoError(t, json.Unmarshal(body, &out))
			assert.Len(t, out.Sales, tt.want)
		})
	}
}
