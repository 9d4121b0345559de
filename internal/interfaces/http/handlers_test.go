package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/smart-inventory-api/internal/application/analytics"
	"github.com/jhoicas/smart-inventory-api/internal/application/auth"
	"github.com/jhoicas/smart-inventory-api/internal/application/sales"
	"github.com/jhoicas/smart-inventory-api/internal/application/usecase"
	"github.com/jhoicas/smart-inventory-api/internal/infrastructure/memory"
	"github.com/jhoicas/smart-inventory-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/smart-inventory-api/internal/interfaces/http"
)

type apiClient struct {
	t   *testing.T
	app *fiber.App
}

func newAPI(t *testing.T, limiter *apphttp.LoginLimiter) *apiClient {
	t.Helper()
	store := memory.NewStore()
	authUC := auth.NewAuthUseCase(store.Users(),
		auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer},
		auth.Options{AllowAdminSignup: true, BcryptCost: bcrypt.MinCost},
	)
	dashboard := analytics.NewDashboardUseCase(store.Sales(), store.Products())

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:       authUC,
		ProductUC:    usecase.NewProductUseCase(store.Products(), store, nil, nil),
		LedgerUC:     sales.NewLedgerUseCase(store, store.Sales()),
		DashboardUC:  dashboard,
		ReportUC:     analytics.NewReportUseCase(dashboard, pdf.NewMarotoPDFGenerator("es"), "Smart Inventory"),
		LoginLimiter: limiter,
		JWTSecret:    testJWTSecret,
	})
	return &apiClient{t: t, app: app}
}

func (a *apiClient) do(method, path, token string, body any) (int, []byte) {
	a.t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	return resp.StatusCode, out
}

func (a *apiClient) json(method, path, token string, body any, want int) map[string]any {
	a.t.Helper()
	status, raw := a.do(method, path, token, body)
	require.Equal(a.t, want, status, "%s %s: %s", method, path, raw)
	var out map[string]any
	if len(raw) > 0 {
		require.NoError(a.t, json.Unmarshal(raw, &out))
	}
	return out
}

// signup registra y devuelve el access_token.
func (a *apiClient) signup(email, role string) string {
	a.t.Helper()
	a.json(http.MethodPost, "/users/register", "", map[string]string{"email": email, "password": "secreto1", "role": role}, http.StatusCreated)
	out := a.json(http.MethodPost, "/users/login", "", map[string]string{"email": email, "password": "secreto1"}, http.StatusOK)
	return out["access_token"].(string)
}

func (a *apiClient) quantity(id string) float64 {
	a.t.Helper()
	return a.json(http.MethodGet, "/products/"+id, "", nil, http.StatusOK)["quantity"].(float64)
}

func TestAPI_RegistroYLogin(t *testing.T) {
	api := newAPI(t, nil)

	user := api.json(http.MethodPost, "/users/register", "", map[string]string{"email": "Ana@Example.com", "password": "secreto1"}, http.StatusCreated)
	assert.Equal(t, "ana@example.com", user["email"])
	assert.Equal(t, "staff", user["role"])
	assert.NotContains(t, user, "password_hash")

	dup := api.json(http.MethodPost, "/users/register", "", map[string]string{"email": "ana@example.com", "password": "otro123"}, http.StatusConflict)
	assert.Equal(t, "EMAIL_EXISTS", dup["code"])

	bad := api.json(http.MethodPost, "/users/register", "", map[string]string{"email": "x@example.com", "password": "123"}, http.StatusBadRequest)
	assert.Equal(t, "VALIDATION", bad["code"])

	login := api.json(http.MethodPost, "/users/login", "", map[string]string{"email": "ana@example.com", "password": "secreto1"}, http.StatusOK)
	assert.Equal(t, "bearer", login["token_type"])
	token := login["access_token"].(string)

	me := api.json(http.MethodGet, "/users/me", token, nil, http.StatusOK)
	assert.Equal(t, "ana@example.com", me["identity"])
	assert.Equal(t, "staff", me["role"])
}

func TestAPI_LoginNoRevelaExistencia(t *testing.T) {
	api := newAPI(t, nil)
	api.signup("ana@example.com", "staff")

	_, wrongPwd := api.do(http.MethodPost, "/users/login", "", map[string]string{"email": "ana@example.com", "password": "incorrecta"})
	status, unknown := api.do(http.MethodPost, "/users/login", "", map[string]string{"email": "nadie@example.com", "password": "incorrecta"})

	assert.Equal(t, http.StatusUnauthorized, status)
	assert.JSONEq(t, string(wrongPwd), string(unknown))
}

func TestAPI_LoginRateLimit(t *testing.T) {
	api := newAPI(t, apphttp.NewLoginLimiter(2, 2))
	creds := map[string]string{"email": "x@example.com", "password": "nope12"}

	s1, _ := api.do(http.MethodPost, "/users/login", "", creds)
	s2, _ := api.do(http.MethodPost, "/users/login", "", creds)
	s3, body := api.do(http.MethodPost, "/users/login", "", creds)

	assert.Equal(t, http.StatusUnauthorized, s1)
	assert.Equal(t, http.StatusUnauthorized, s2)
	assert.Equal(t, http.StatusTooManyRequests, s3)
	assert.Contains(t, string(body), "RATE_LIMITED")
}

func TestAPI_SoloAdminMutaProductos(t *testing.T) {
	api := newAPI(t, nil)
	admin := api.signup("admin@example.com", "admin")
	staff := api.signup("staff@example.com", "staff")
	widget := map[string]any{"name": "Widget", "price": 10, "quantity": 5}

	api.json(http.MethodPost, "/products/", "", widget, http.StatusUnauthorized)
	forbidden := api.json(http.MethodPost, "/products/", staff, widget, http.StatusForbidden)
	assert.Equal(t, "FORBIDDEN", forbidden["code"])

	created := api.json(http.MethodPost, "/products/", admin, widget, http.StatusCreated)
	id := created["id"].(string)

	api.json(http.MethodPatch, "/products/"+id, staff, map[string]any{"quantity": 1}, http.StatusForbidden)
	api.json(http.MethodDelete, "/products/"+id, staff, nil, http.StatusForbidden)
	assert.Equal(t, float64(5), api.quantity(id))

	updated := api.json(http.MethodPut, "/products/"+id, admin, map[string]any{"quantity": 7}, http.StatusOK)
	assert.Equal(t, float64(7), updated["quantity"])
	assert.Equal(t, "Widget", updated["name"])

	status, list := api.do(http.MethodGet, "/products/", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(list), id)

	status, _ = api.do(http.MethodDelete, "/products/"+id, admin, nil)
	assert.Equal(t, http.StatusNoContent, status)
	api.json(http.MethodGet, "/products/"+id, "", nil, http.StatusNotFound)
}

func TestAPI_VentasWidget(t *testing.T) {
	api := newAPI(t, nil)
	admin := api.signup("admin@example.com", "admin")
	staff := api.signup("staff@example.com", "staff")

	id := api.json(http.MethodPost, "/products/", admin, map[string]any{"name": "Widget", "price": 10, "quantity": 5}, http.StatusCreated)["id"].(string)

	sale := api.json(http.MethodPost, "/sales/", staff, map[string]any{"product_id": id, "quantity": 3}, http.StatusCreated)
	assert.Equal(t, float64(2), api.quantity(id))

	over := api.json(http.MethodPost, "/sales/", staff, map[string]any{"product_id": id, "quantity": 10}, http.StatusConflict)
	assert.Equal(t, "INSUFFICIENT_STOCK", over["code"])
	assert.Equal(t, float64(2), over["available"])
	assert.Equal(t, float64(2), api.quantity(id))

	hasSales := api.json(http.MethodDelete, "/products/"+id, admin, nil, http.StatusConflict)
	assert.Equal(t, "PRODUCT_HAS_SALES", hasSales["code"])

	api.json(http.MethodGet, "/sales/"+sale["id"].(string), staff, nil, http.StatusOK)
	status, _ := api.do(http.MethodDelete, "/sales/"+sale["id"].(string), staff, nil)
	assert.Equal(t, http.StatusNoContent, status)
	assert.Equal(t, float64(5), api.quantity(id))

	api.json(http.MethodDelete, "/sales/"+sale["id"].(string), staff, nil, http.StatusNotFound)
	api.json(http.MethodGet, "/sales/", "", nil, http.StatusUnauthorized)
}

func TestAPI_VentaEntradaInvalida(t *testing.T) {
	api := newAPI(t, nil)
	staff := api.signup("staff@example.com", "staff")

	api.json(http.MethodPost, "/sales/", staff, map[string]any{"product_id": "x", "quantity": 0}, http.StatusBadRequest)
	api.json(http.MethodPost, "/sales/", staff, map[string]any{"product_id": "00000000-0000-0000-0000-00000000abcd", "quantity": 1}, http.StatusNotFound)

	status, _ := api.do(http.MethodPost, "/sales/", staff, "no-es-un-objeto")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAPI_Analytics(t *testing.T) {
	api := newAPI(t, nil)
	admin := api.signup("admin@example.com", "admin")
	staff := api.signup("staff@example.com", "staff")

	id := api.json(http.MethodPost, "/products/", admin, map[string]any{"name": "Widget", "price": 10, "quantity": 5}, http.StatusCreated)["id"].(string)
	api.json(http.MethodPost, "/sales/", staff, map[string]any{"product_id": id, "quantity": 3}, http.StatusCreated)

	summary := api.json(http.MethodGet, "/sales/analytics?tz=UTC", staff, nil, http.StatusOK)
	assert.Equal(t, "UTC", summary["timezone"])
	assert.Equal(t, float64(1), summary["total_sales"])
	assert.Len(t, summary["daily_revenue"], 7)
	top := summary["top_selling_product"].(map[string]any)
	assert.Equal(t, "Widget", top["product_name"])

	api.json(http.MethodGet, "/sales/analytics?tz=Marte/Olympus", staff, nil, http.StatusBadRequest)
	api.json(http.MethodGet, "/sales/analytics", "", nil, http.StatusUnauthorized)

	api.json(http.MethodGet, "/sales/report", staff, nil, http.StatusForbidden)
	status, pdfBytes := api.do(http.MethodGet, "/sales/report", admin, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, bytes.HasPrefix(pdfBytes, []byte("%PDF")))
}

func TestAPI_MontosSinRedondeo(t *testing.T) {
	api := newAPI(t, nil)
	admin := api.signup("admin@example.com", "admin")

	product := api.json(http.MethodPost, "/products/", admin, map[string]any{"name": "Widget", "price": 3.335, "quantity": 5}, http.StatusCreated)
	assert.Equal(t, 3.335, product["price"])

	id := product["id"].(string)
	sale := api.json(http.MethodPost, "/sales/", admin, map[string]any{"product_id": id, "quantity": 1, "total_price": 10.005}, http.StatusCreated)
	assert.Equal(t, 10.005, sale["total_price"])

	status, raw := api.do(http.MethodGet, "/sales/"+sale["id"].(string), admin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), `"total_price":10.005`)
	assert.Equal(t, 3.335, api.json(http.MethodGet, "/products/"+id, "", nil, http.StatusOK)["price"])
}

func TestAPI_CantidadFueraDeRango(t *testing.T) {
	api := newAPI(t, nil)
	admin := api.signup("admin@example.com", "admin")

	body := api.json(http.MethodPost, "/products/", admin, map[string]any{"name": "Widget", "price": 1, "quantity": 3000000000}, http.StatusBadRequest)
	assert.Equal(t, "VALIDATION", body["code"])

	id := api.json(http.MethodPost, "/products/", admin, map[string]any{"name": "Widget", "price": 1, "quantity": 1}, http.StatusCreated)["id"].(string)
	api.json(http.MethodPatch, "/products/"+id, admin, map[string]any{"quantity": 3000000000}, http.StatusBadRequest)
	api.json(http.MethodPost, "/sales/", admin, map[string]any{"product_id": id, "quantity": 3000000000}, http.StatusBadRequest)
	assert.Equal(t, float64(1), api.quantity(id))
}
