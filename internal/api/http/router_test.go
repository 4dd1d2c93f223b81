package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dronehub-backend/internal/catalog"
	"dronehub-backend/internal/domain"
	"dronehub-backend/internal/i18n"
	"dronehub-backend/internal/offer"
	"dronehub-backend/internal/security"
	"dronehub-backend/internal/service"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type MockStorefrontService struct {
	mock.Mock
}

func (m *MockStorefrontService) Copy(countryCode string) (domain.Locale, map[string]string, []i18n.LanguageOption) {
	args := m.Called(countryCode)
	return args.Get(0).(domain.Locale), args.Get(1).(map[string]string), args.Get(2).([]i18n.LanguageOption)
}
func (m *MockStorefrontService) ListProducts(ctx context.Context, countryCode string, params service.ListParams) (*service.ProductPage, error) {
	args := m.Called(ctx, countryCode, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProductPage), args.Error(1)
}
func (m *MockStorefrontService) GetProduct(ctx context.Context, countryCode, handle string) (*service.ProductDetail, error) {
	args := m.Called(ctx, countryCode, handle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProductDetail), args.Error(1)
}
func (m *MockStorefrontService) EvaluateOffer(ctx context.Context, countryCode, handle string, in service.OfferInput) (*offer.Decision, error) {
	args := m.Called(ctx, countryCode, handle, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*offer.Decision), args.Error(1)
}
func (m *MockStorefrontService) AddToCart(ctx context.Context, countryCode, cartID, handle string, in service.OfferInput) (*offer.Decision, json.RawMessage, error) {
	args := m.Called(ctx, countryCode, cartID, handle, in)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*offer.Decision), args.Get(1).(json.RawMessage), args.Error(2)
}
func (m *MockStorefrontService) CartTotals(lines []domain.CartLine, currency domain.CurrencyCode) service.CartTotalsResult {
	args := m.Called(lines, currency)
	return args.Get(0).(service.CartTotalsResult)
}
func (m *MockStorefrontService) WarmProductCache(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockDroneService struct {
	mock.Mock
}

func (m *MockDroneService) CreateDroneFromProduct(ctx context.Context, productID string, in *service.DroneInput) (*domain.Drone, error) {
	args := m.Called(ctx, productID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Drone), args.Error(1)
}
func (m *MockDroneService) HandleProductsCreated(ctx context.Context, productIDs []string, additional *service.DroneInput) ([]domain.Drone, error) {
	args := m.Called(ctx, productIDs, additional)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Drone), args.Error(1)
}
func (m *MockDroneService) DeleteDrone(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

type routerFixture struct {
	store  *MockStorefrontService
	drones *MockDroneService
	tokens security.TokenManager
	server http.Handler
}

func newRouterFixture(health Pinger) *routerFixture {
	f := &routerFixture{
		store:  new(MockStorefrontService),
		drones: new(MockDroneService),
		tokens: security.NewTokenManager(testSecret, time.Hour),
	}
	f.server = NewRouter(Dependencies{
		Storefront:   f.store,
		Drones:       f.drones,
		TokenManager: f.tokens,
		Health:       health,
	})
	return f
}

func (f *routerFixture) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	return rec
}

func (f *routerFixture) adminToken(t *testing.T, roles ...string) string {
	t.Helper()
	token, err := f.tokens.GenerateAccessToken("ops@dronehub", roles)
	require.NoError(t, err)
	return token
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) ProblemDetails {
	t.Helper()
	var pd ProblemDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pd))
	return pd
}

func TestHealth(t *testing.T) {
	f := newRouterFixture(pingFunc(func(context.Context) error { return nil }))
	rec := f.do(t, "GET", "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	f = newRouterFixture(pingFunc(func(context.Context) error { return errors.New("db down") }))
	rec = f.do(t, "GET", "/healthz", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestStorefrontRoutes(t *testing.T) {
	t.Run("Copy", func(t *testing.T) {
		f := newRouterFixture(nil)
		f.store.On("Copy", "fr").Return(domain.LocaleFR, map[string]string{"addToCart": "Ajouter au panier"}, i18n.LanguageOptions())

		rec := f.do(t, "GET", "/store/fr/copy", "", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "fr", body["locale"])
	})

	t.Run("List products with query", func(t *testing.T) {
		f := newRouterFixture(nil)
		params := service.ListParams{Sort: catalog.SortPriceDesc, Page: 2, CategoryID: "pcat_1"}
		f.store.On("ListProducts", mock.Anything, "us", params).Return(&service.ProductPage{Page: 2, TotalPages: 2, Count: 13}, nil)

		rec := f.do(t, "GET", "/store/us/products?sort=price_desc&page=2&category_id=pcat_1", "", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		f.store.AssertExpectations(t)
	})

	t.Run("List products bad sort", func(t *testing.T) {
		f := newRouterFixture(nil)
		rec := f.do(t, "GET", "/store/us/products?sort=random", "", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "bad_request", decodeProblem(t, rec).Code)
	})

	t.Run("Unknown region", func(t *testing.T) {
		f := newRouterFixture(nil)
		f.store.On("GetProduct", mock.Anything, "jp", "drone-pro-x1").Return(nil, domain.ErrRegionNotFound)

		rec := f.do(t, "GET", "/store/jp/products/drone-pro-x1", "", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
		pd := decodeProblem(t, rec)
		assert.Equal(t, "region_not_found", pd.Code)
		assert.Equal(t, "/store/jp/products/drone-pro-x1", pd.Instance)
	})

	t.Run("Evaluate rejected offer", func(t *testing.T) {
		f := newRouterFixture(nil)
		in := service.OfferInput{Action: offer.ActionRent, Options: map[string]string{"Color": "Black"}, StartDate: "2024-06-04", EndDate: "2024-06-01"}
		f.store.On("EvaluateOffer", mock.Anything, "fr", "drone-pro-x1", in).Return(nil, domain.ErrInvalidWindow)

		rec := f.do(t, "POST", "/store/fr/products/drone-pro-x1/evaluate",
			`{"action":"rent","options":{"Color":"Black"},"start_date":"2024-06-04","end_date":"2024-06-01"}`, "")
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "invalid_window", decodeProblem(t, rec).Code)
	})

	t.Run("Evaluate malformed body", func(t *testing.T) {
		f := newRouterFixture(nil)
		rec := f.do(t, "POST", "/store/fr/products/drone-pro-x1/evaluate", `{"action":`, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Evaluate missing or unknown action", func(t *testing.T) {
		f := newRouterFixture(nil)
		for _, body := range []string{`{"options":{"Color":"Black"}}`, `{"action":"lease"}`} {
			rec := f.do(t, "POST", "/store/fr/products/drone-pro-x1/evaluate", body, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code, body)
			assert.Equal(t, "bad_request", decodeProblem(t, rec).Code, body)
		}
		f.store.AssertNotCalled(t, "EvaluateOffer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Add line item", func(t *testing.T) {
		f := newRouterFixture(nil)
		in := service.OfferInput{Action: offer.ActionBuy, Options: map[string]string{"Color": "Black"}}
		decision := &offer.Decision{Action: offer.ActionBuy, VariantID: "var_black", Quantity: 1}
		f.store.On("AddToCart", mock.Anything, "fr", "cart_1", "drone-pro-x1", in).
			Return(decision, json.RawMessage(`{"cart":{"id":"cart_1"}}`), nil)

		rec := f.do(t, "POST", "/store/fr/carts/cart_1/line-items",
			`{"handle":"drone-pro-x1","action":"buy","options":{"Color":"Black"}}`, "")
		require.Equal(t, http.StatusOK, rec.Code)
		var body struct {
			Decision offer.Decision `json:"decision"`
			Cart     map[string]any `json:"cart"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "var_black", body.Decision.VariantID)
		assert.NotNil(t, body.Cart["cart"])
	})

	t.Run("Add line item gateway failure", func(t *testing.T) {
		f := newRouterFixture(nil)
		f.store.On("AddToCart", mock.Anything, "fr", "cart_1", "drone-pro-x1", mock.Anything).
			Return(nil, nil, domain.ErrCartService)

		rec := f.do(t, "POST", "/store/fr/carts/cart_1/line-items", `{"handle":"drone-pro-x1","action":"buy"}`, "")
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Equal(t, "cart_service_error", decodeProblem(t, rec).Code)
	})

	t.Run("Add line item without handle", func(t *testing.T) {
		f := newRouterFixture(nil)
		rec := f.do(t, "POST", "/store/fr/carts/cart_1/line-items", `{"action":"buy"}`, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Add line item with unknown action", func(t *testing.T) {
		f := newRouterFixture(nil)
		rec := f.do(t, "POST", "/store/fr/carts/cart_1/line-items", `{"handle":"drone-pro-x1","action":"lease"}`, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "bad_request", decodeProblem(t, rec).Code)
		f.store.AssertNotCalled(t, "AddToCart", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Cart totals", func(t *testing.T) {
		f := newRouterFixture(nil)
		f.store.On("CartTotals", mock.Anything, domain.CurrencyCode("eur")).
			Return(service.CartTotalsResult{Subtotal: decimal.NewFromInt(350), CurrencyCode: "eur"})

		rec := f.do(t, "POST", "/store/fr/carts/totals", `{"currency_code":"EUR","lines":[]}`, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"subtotal":"350"`)

		rec = f.do(t, "POST", "/store/fr/carts/totals", `{"lines":[]}`, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Unknown path", func(t *testing.T) {
		f := newRouterFixture(nil)
		rec := f.do(t, "GET", "/nowhere", "", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAdminRoutes(t *testing.T) {
	t.Run("Missing token", func(t *testing.T) {
		f := newRouterFixture(nil)
		rec := f.do(t, "DELETE", "/admin/drones/drone_1", "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "unauthorized", decodeProblem(t, rec).Code)
		f.drones.AssertNotCalled(t, "DeleteDrone", mock.Anything, mock.Anything)
	})

	t.Run("Invalid token", func(t *testing.T) {
		f := newRouterFixture(nil)
		rec := f.do(t, "DELETE", "/admin/drones/drone_1", "", "garbage")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Missing admin role", func(t *testing.T) {
		f := newRouterFixture(nil)
		rec := f.do(t, "DELETE", "/admin/drones/drone_1", "", f.adminToken(t, "viewer"))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("Delete drone", func(t *testing.T) {
		f := newRouterFixture(nil)
		f.drones.On("DeleteDrone", mock.Anything, "drone_1").Return(nil)
		rec := f.do(t, "DELETE", "/admin/drones/drone_1", "", f.adminToken(t, security.RoleAdmin))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("Create drone with bad configuration", func(t *testing.T) {
		f := newRouterFixture(nil)
		f.drones.On("CreateDroneFromProduct", mock.Anything, "prod_1", mock.AnythingOfType("*service.DroneInput")).
			Return(nil, domain.ErrInvalidConfiguration)
		rec := f.do(t, "POST", "/admin/products/prod_1/drone", `{"marketing_method":"lease"}`, f.adminToken(t, security.RoleAdmin))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "invalid_configuration", decodeProblem(t, rec).Code)
	})

	t.Run("Create drone", func(t *testing.T) {
		f := newRouterFixture(nil)
		f.drones.On("CreateDroneFromProduct", mock.Anything, "prod_1", mock.MatchedBy(func(in *service.DroneInput) bool {
			return in.MarketingMethod == "rent" && string(in.RentalPerDayPrices) == `{"eur":50}`
		})).Return(&domain.Drone{ID: "drone_1", ProductID: "prod_1", MarketingMethod: domain.MarketingMethodRent}, nil)

		rec := f.do(t, "POST", "/admin/products/prod_1/drone",
			`{"marketing_method":"rent","rental_per_day_prices":{"eur":50}}`, f.adminToken(t, security.RoleAdmin))
		assert.Equal(t, http.StatusCreated, rec.Code)
		f.drones.AssertExpectations(t)
	})

	t.Run("Products created hook without data", func(t *testing.T) {
		f := newRouterFixture(nil)
		f.drones.On("HandleProductsCreated", mock.Anything, []string{"prod_1"}, (*service.DroneInput)(nil)).Return(nil, nil)

		rec := f.do(t, "POST", "/admin/hooks/products-created", `{"product_ids":["prod_1"]}`, f.adminToken(t, security.RoleAdmin))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"drones":[]}`, rec.Body.String())
	})

	t.Run("Products created hook requires ids", func(t *testing.T) {
		f := newRouterFixture(nil)
		rec := f.do(t, "POST", "/admin/hooks/products-created", `{"product_ids":[]}`, f.adminToken(t, security.RoleAdmin))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrOutOfStock, http.StatusUnprocessableEntity, "out_of_stock"},
		{domain.ErrUnsupportedCurrency, http.StatusUnprocessableEntity, "unsupported_currency"},
		{domain.ErrNotFound, http.StatusNotFound, "not_found"},
		{security.ErrExpiredToken, http.StatusUnauthorized, "unauthorized"},
		{errors.New("boom"), http.StatusInternalServerError, "internal"},
	}
	for _, tt := range tests {
		status, code := classify(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
		assert.Equal(t, tt.code, code, tt.err.Error())
	}
}
