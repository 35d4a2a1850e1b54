package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/MohamadRiza/happytime/internal/api"
	"github.com/MohamadRiza/happytime/internal/auth"
	"github.com/MohamadRiza/happytime/internal/catalog"
	"github.com/MohamadRiza/happytime/internal/event"
	"github.com/MohamadRiza/happytime/internal/model"
	"github.com/MohamadRiza/happytime/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

type publishedEvent struct {
	Type    string
	Payload any
}

func (p *recordingPublisher) Publish(ctx context.Context, eventType string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Type: eventType, Payload: payload})
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type testEnv struct {
	router    http.Handler
	mem       *store.Memory
	jwt       *auth.JWTService
	catalog   *catalog.Catalog
	publisher *recordingPublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mem := store.NewMemory()
	logger := zap.NewNop()
	cat := catalog.New(mem, logger)
	require.NoError(t, cat.Load(context.Background()))

	jwtSvc := auth.NewJWTService("test-secret-key-at-least-32-chars!!", time.Hour, time.Hour)
	publisher := &recordingPublisher{}

	router := api.NewRouter(api.RouterConfig{
		AdminAuth:    api.NewAdminAuthHandler(mem, jwtSvc, logger),
		Customers:    api.NewCustomerHandler(mem, jwtSvc, logger),
		Products:     api.NewProductHandler(mem, cat, nil, logger),
		Vacancies:    api.NewVacancyHandler(mem, logger),
		Applications: api.NewApplicationHandler(mem, mem, publisher, nil, logger, t.TempDir(), 5<<20),
		Messages:     api.NewMessageHandler(mem, publisher, nil, logger),
		JWTService:   jwtSvc,
		Logger:       logger,
	})

	return &testEnv{router: router, mem: mem, jwt: jwtSvc, catalog: cat, publisher: publisher}
}

func (env *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func (env *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	token, _, err := env.jwt.GenerateAdminToken("admin-1", "boss@happytime.lk")
	require.NoError(t, err)
	return token
}

func (env *testEnv) customerToken(t *testing.T, customerID string) string {
	t.Helper()
	token, _, err := env.jwt.GenerateCustomerToken(customerID, "c@example.com")
	require.NoError(t, err)
	return token
}

func seedAdmin(t *testing.T, mem *store.Memory, username, password string) {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	mem.AddAdmin(model.AdminUser{
		ID:           "admin-1",
		Username:     username,
		PasswordHash: hash,
		Role:         auth.RoleAdmin,
	})
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/healthz", nil, "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminLogin(t *testing.T) {
	env := newTestEnv(t)
	seedAdmin(t, env.mem, "boss", "supersecret1")

	rec := env.do(t, http.MethodPost, "/api/auth/admin/login", map[string]string{
		"username": "boss",
		"password": "supersecret1",
	}, "")

	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, true, envelope["success"])

	token, _ := envelope["token"].(string)
	require.NotEmpty(t, token)
	claims, err := env.jwt.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, claims.Role)

	user, _ := envelope["user"].(map[string]any)
	require.NotNil(t, user)
	assert.Equal(t, "boss", user["username"])
	assert.NotContains(t, user, "passwordHash")
}

func TestAdminLogin_BadCredentials(t *testing.T) {
	env := newTestEnv(t)
	seedAdmin(t, env.mem, "boss", "supersecret1")

	tests := []struct {
		name string
		body map[string]string
		code int
	}{
		{"wrong password", map[string]string{"username": "boss", "password": "nope-nope"}, http.StatusUnauthorized},
		{"unknown user", map[string]string{"username": "ghost", "password": "supersecret1"}, http.StatusUnauthorized},
		{"missing password", map[string]string{"username": "boss"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/api/auth/admin/login", tt.body, "")
			assert.Equal(t, tt.code, rec.Code)
			envelope := decodeEnvelope(t, rec)
			assert.Equal(t, false, envelope["success"])
		})
	}
}

func TestCustomerRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	register := map[string]any{
		"name":            "Amal Perera",
		"email":           "amal@example.com",
		"phone":           "+94 77 123 4567",
		"password":        "supersecret1",
		"confirmPassword": "supersecret1",
		"businessDetails": map[string]string{"companyName": "Perera Traders"},
	}

	rec := env.do(t, http.MethodPost, "/api/customers/register", register, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	envelope := decodeEnvelope(t, rec)
	data, _ := envelope["data"].(map[string]any)
	require.NotNil(t, data)
	assert.NotEmpty(t, data["token"])

	customer, _ := data["customer"].(map[string]any)
	require.NotNil(t, customer)
	assert.Equal(t, "amal@example.com", customer["email"])
	assert.NotContains(t, customer, "passwordHash")

	// Duplicate email is rejected.
	rec = env.do(t, http.MethodPost, "/api/customers/register", register, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	// The new account can log in.
	rec = env.do(t, http.MethodPost, "/api/customers/login", map[string]string{
		"email":    "amal@example.com",
		"password": "supersecret1",
	}, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/customers/login", map[string]string{
		"email":    "amal@example.com",
		"password": "wrong-password",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCustomerRegister_Validation(t *testing.T) {
	env := newTestEnv(t)

	base := func() map[string]any {
		return map[string]any{
			"name":            "Amal",
			"email":           "amal@example.com",
			"phone":           "0771234567",
			"password":        "supersecret1",
			"confirmPassword": "supersecret1",
			"businessDetails": map[string]string{"companyName": "Perera Traders"},
		}
	}

	tests := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"short password", func(m map[string]any) { m["password"] = "short"; m["confirmPassword"] = "short" }},
		{"password mismatch", func(m map[string]any) { m["confirmPassword"] = "different-pass" }},
		{"bad email", func(m map[string]any) { m["email"] = "not-an-email" }},
		{"bad phone", func(m map[string]any) { m["phone"] = "abc" }},
		{"missing company", func(m map[string]any) { m["businessDetails"] = map[string]string{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := base()
			tt.mutate(body)
			rec := env.do(t, http.MethodPost, "/api/customers/register", body, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCustomerProfile_AuthBoundaries(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/customers/profile", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/customers/profile", nil, "garbage-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// An admin token does not open customer routes.
	rec = env.do(t, http.MethodGet, "/api/customers/profile", nil, env.adminToken(t))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCustomerProfile_GetAndUpdate(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.mem.CreateCustomer(context.Background(), &model.Customer{
		ID:    "cust-1",
		Name:  "Amal",
		Email: "amal@example.com",
		Phone: "0771234567",
	}))
	token := env.customerToken(t, "cust-1")

	rec := env.do(t, http.MethodGet, "/api/customers/profile", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPut, "/api/customers/profile", map[string]any{
		"name":            "Amal Perera",
		"phone":           "0779999999",
		"businessDetails": map[string]string{"companyName": "Perera & Sons"},
	}, token)
	require.Equal(t, http.StatusOK, rec.Code)

	updated, err := env.mem.GetCustomer(context.Background(), "cust-1")
	require.NoError(t, err)
	assert.Equal(t, "Amal Perera", updated.Name)
	assert.Equal(t, "Perera & Sons", updated.BusinessDetails.CompanyName)
	assert.Equal(t, "amal@example.com", updated.Email, "email is not changeable")
}

func TestProducts_ListWithFilters(t *testing.T) {
	env := newTestEnv(t)
	price := 14500.0
	seedProducts(t, env,
		catalog.Product{ID: "p1", Title: "Submariner", Brand: "Rolex", ProductType: catalog.TypeWatch, Gender: catalog.GenderMen, Price: &price},
		catalog.Product{ID: "p2", Title: "Wall Clock", Brand: "Acme", ProductType: catalog.TypeWallClock},
	)

	rec := env.do(t, http.MethodGet, "/api/products?gender=men", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	products, _ := envelope["products"].([]any)
	require.Len(t, products, 2, "wall clocks are exempt from the gender filter")

	rec = env.do(t, http.MethodGet, "/api/products?search=rolex&minPrice=1000", nil, "")
	envelope = decodeEnvelope(t, rec)
	products, _ = envelope["products"].([]any)
	require.Len(t, products, 1)
}

func seedProducts(t *testing.T, env *testEnv, products ...catalog.Product) {
	t.Helper()
	for i := range products {
		require.NoError(t, env.mem.CreateProduct(context.Background(), &products[i]))
	}
	require.NoError(t, env.catalog.Load(context.Background()))
}

func TestProducts_UnavailableBeforeLoad(t *testing.T) {
	mem := store.NewMemory()
	logger := zap.NewNop()
	cat := catalog.New(mem, logger) // never loaded
	jwtSvc := auth.NewJWTService("test-secret-key-at-least-32-chars!!", time.Hour, time.Hour)

	router := api.NewRouter(api.RouterConfig{
		AdminAuth:    api.NewAdminAuthHandler(mem, jwtSvc, logger),
		Customers:    api.NewCustomerHandler(mem, jwtSvc, logger),
		Products:     api.NewProductHandler(mem, cat, nil, logger),
		Vacancies:    api.NewVacancyHandler(mem, logger),
		Applications: api.NewApplicationHandler(mem, mem, &recordingPublisher{}, nil, logger, t.TempDir(), 5<<20),
		Messages:     api.NewMessageHandler(mem, &recordingPublisher{}, nil, logger),
		JWTService:   jwtSvc,
		Logger:       logger,
	})

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestProducts_AdminCRUDRefreshesCatalog(t *testing.T) {
	env := newTestEnv(t)
	admin := env.adminToken(t)

	rec := env.do(t, http.MethodPost, "/api/products", map[string]any{
		"title":       "Speedmaster",
		"brand":       "Omega",
		"productType": "watch",
		"gender":      "men",
		"colors":      []any{"black", map[string]any{"name": "steel", "quantity": 2}},
		"price":       8200,
	}, admin)
	require.Equal(t, http.StatusCreated, rec.Code)

	// The new product is immediately visible on the public listing.
	rec = env.do(t, http.MethodGet, "/api/products?brand=Omega", nil, "")
	envelope := decodeEnvelope(t, rec)
	products, _ := envelope["products"].([]any)
	require.Len(t, products, 1)

	// Facet options include the new brand and normalized colors.
	rec = env.do(t, http.MethodGet, "/api/products/facets", nil, "")
	envelope = decodeEnvelope(t, rec)
	data, _ := envelope["data"].(map[string]any)
	require.NotNil(t, data)
	assert.Contains(t, data["brands"], "Omega")
	assert.ElementsMatch(t, []any{"black", "steel"}, data["colors"])
}

func TestProducts_CreateRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)

	body := map[string]any{"title": "X", "brand": "Y", "productType": "watch"}

	rec := env.do(t, http.MethodPost, "/api/products", body, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/products", body, env.customerToken(t, "cust-1"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestProducts_CreateValidation(t *testing.T) {
	env := newTestEnv(t)
	admin := env.adminToken(t)

	rec := env.do(t, http.MethodPost, "/api/products", map[string]any{
		"title": "X", "brand": "Y", "productType": "bracelet",
	}, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/products", map[string]any{
		"title": "X", "brand": "Y", "productType": "watch", "price": -5,
	}, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVacancies_PublicListShowsOnlyActive(t *testing.T) {
	env := newTestEnv(t)
	seedVacancy(t, env, "v1", model.VacancyStatusActive)
	seedVacancy(t, env, "v2", model.VacancyStatusClosed)

	rec := env.do(t, http.MethodGet, "/api/vacancies", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	data, _ := envelope["data"].([]any)
	require.Len(t, data, 1)

	rec = env.do(t, http.MethodGet, "/api/vacancies/all", nil, env.adminToken(t))
	require.Equal(t, http.StatusOK, rec.Code)
	envelope = decodeEnvelope(t, rec)
	data, _ = envelope["data"].([]any)
	assert.Len(t, data, 2)
}

func seedVacancy(t *testing.T, env *testEnv, id, status string) {
	t.Helper()
	require.NoError(t, env.mem.CreateVacancy(context.Background(), &model.Vacancy{
		ID:     id,
		Title:  "Sales Executive",
		Status: status,
	}))
}

func TestMessages_SubmitAndAdminFlow(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/messages", map[string]string{
		"name":    "Nimal",
		"email":   "nimal@example.com",
		"subject": "Warranty",
		"message": "Is the warranty international?",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, env.publisher.types(), event.TypeMessageReceived)

	admin := env.adminToken(t)

	rec = env.do(t, http.MethodGet, "/api/messages", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	list, _ := envelope["data"].([]any)
	require.Len(t, list, 1)
	msg := list[0].(map[string]any)
	assert.Equal(t, false, msg["read"])

	id := msg["id"].(string)
	rec = env.do(t, http.MethodGet, "/api/messages/"+id, nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := env.mem.GetMessage(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, stored.Read, "viewing a message marks it read")

	rec = env.do(t, http.MethodDelete, "/api/messages/"+id, nil, admin)
	assert.Equal(t, http.StatusOK, rec.Code)
}
