package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/semo-payment-gateway/internal/domain/model"
)

// MockMerchantRepository is a mock implementation of MerchantRepository
type MockMerchantRepository struct {
	mock.Mock
}

func (m *MockMerchantRepository) GetByCredentials(ctx context.Context, apiKey, apiSecret string) (*model.Merchant, error) {
	args := m.Called(ctx, apiKey, apiSecret)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Merchant), args.Error(1)
}

func (m *MockMerchantRepository) GetByEmail(ctx context.Context, email string) (*model.Merchant, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Merchant), args.Error(1)
}

func (m *MockMerchantRepository) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func testMerchant() *model.Merchant {
	return &model.Merchant{
		ID:        uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"),
		Name:      "Test Merchant",
		Email:     "test@example.com",
		APIKey:    "key_test_abc123",
		APISecret: "secret_test_xyz789",
		IsActive:  true,
	}
}

func serve(t *testing.T, config APIKeyConfig, path string, headers map[string]string, handler echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := APIKeyMiddleware(config)(handler)(c)
	assert.NoError(t, err) // Middleware writes error responses itself
	return rec
}

func okHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func TestAPIKeyMiddleware_SuccessfulAuthentication(t *testing.T) {
	repo := new(MockMerchantRepository)
	merchant := testMerchant()
	repo.On("GetByCredentials", mock.Anything, "key_test_abc123", "secret_test_xyz789").Return(merchant, nil)

	config := APIKeyConfig{Merchants: repo, Logger: zap.NewNop()}

	rec := serve(t, config, "/api/v1/orders", map[string]string{
		HeaderAPIKey:    "key_test_abc123",
		HeaderAPISecret: "secret_test_xyz789",
	}, func(c echo.Context) error {
		got, err := GetMerchantFromContext(c)
		assert.NoError(t, err)
		assert.Equal(t, merchant.ID, got.ID)
		assert.Equal(t, merchant.ID.String(), c.Get("merchant_id"))
		return okHandler(c)
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	repo.AssertExpectations(t)
}

func TestAPIKeyMiddleware_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		setup   func(repo *MockMerchantRepository)
		status  int
		code    string
	}{
		{
			name:    "missing both headers",
			headers: map[string]string{},
			status:  http.StatusUnauthorized,
			code:    "AUTHENTICATION_ERROR",
		},
		{
			name:    "missing secret",
			headers: map[string]string{HeaderAPIKey: "key_test_abc123"},
			status:  http.StatusUnauthorized,
			code:    "AUTHENTICATION_ERROR",
		},
		{
			name:    "unknown pair",
			headers: map[string]string{HeaderAPIKey: "key_test_abc123", HeaderAPISecret: "wrong"},
			setup: func(repo *MockMerchantRepository) {
				repo.On("GetByCredentials", mock.Anything, "key_test_abc123", "wrong").Return(nil, nil)
			},
			status: http.StatusUnauthorized,
			code:   "AUTHENTICATION_ERROR",
		},
		{
			name:    "repository failure",
			headers: map[string]string{HeaderAPIKey: "k", HeaderAPISecret: "s"},
			setup: func(repo *MockMerchantRepository) {
				repo.On("GetByCredentials", mock.Anything, "k", "s").Return(nil, errors.New("db down"))
			},
			status: http.StatusInternalServerError,
			code:   "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockMerchantRepository)
			if tt.setup != nil {
				tt.setup(repo)
			}

			called := false
			rec := serve(t, APIKeyConfig{Merchants: repo, Logger: zap.NewNop()}, "/api/v1/payments", tt.headers, func(c echo.Context) error {
				called = true
				return okHandler(c)
			})

			assert.False(t, called)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.code)
			if tt.code == "INTERNAL_SERVER_ERROR" {
				assert.NotContains(t, rec.Body.String(), "db down")
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestAPIKeyMiddleware_SkipPaths(t *testing.T) {
	repo := new(MockMerchantRepository)
	config := APIKeyConfig{Merchants: repo, Logger: zap.NewNop(), SkipPaths: []string{"/health"}}

	rec := serve(t, config, "/health", nil, okHandler)

	assert.Equal(t, http.StatusOK, rec.Code)
	repo.AssertNotCalled(t, "GetByCredentials", mock.Anything, mock.Anything, mock.Anything)
}

func TestRequireMerchant(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	_, err := RequireMerchant(c)
	assert.Error(t, err)

	merchant := testMerchant()
	ctx := context.WithValue(c.Request().Context(), merchantContextKey, merchant)
	c.SetRequest(c.Request().WithContext(ctx))

	got, err := RequireMerchant(c)
	assert.NoError(t, err)
	assert.Equal(t, merchant, got)
}
