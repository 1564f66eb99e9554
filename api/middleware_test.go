package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/parkbooking/internal/apperrors"
	"github.com/Domenick1991/parkbooking/internal/domain"
	"github.com/Domenick1991/parkbooking/internal/logger"
	"github.com/Domenick1991/parkbooking/internal/service/auth"
	"github.com/Domenick1991/parkbooking/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCallerResolver struct {
	mock.Mock
}

func (m *MockCallerResolver) Authenticate(ctx context.Context, userToken, authorization string) (*domain.User, error) {
	args := m.Called(ctx, userToken, authorization)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestLogging(logger.Discard()), Recovery(logger.Discard()))
	return router
}

func TestAuthenticate(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		setupMock  func(*MockCallerResolver)
		wantStatus int
	}{
		{
			name:  "known user",
			token: "Token-2",
			setupMock: func(m *MockCallerResolver) {
				m.On("Authenticate", mock.Anything, "Token-2", "").Return(&standardUser, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:  "missing token",
			token: "",
			setupMock: func(m *MockCallerResolver) {
				m.On("Authenticate", mock.Anything, "", "").Return(nil, apperrors.Forbidden())
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:  "user lookup fails",
			token: "Token-2",
			setupMock: func(m *MockCallerResolver) {
				m.On("Authenticate", mock.Anything, "Token-2", "").Return(nil, apperrors.Internal(errors.New("db down")))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := &MockCallerResolver{}
			tt.setupMock(resolver)

			router := newTestRouter()
			router.GET("/whoami", Authenticate(resolver), func(c *gin.Context) {
				caller, ok := callerFrom(c)
				require.True(t, ok)
				c.JSON(http.StatusOK, gin.H{"id": caller.ID})
			})

			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.token != "" {
				req.Header.Set(auth.HeaderUserToken, tt.token)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			resolver.AssertExpectations(t)
		})
	}
}

func TestAuthenticate_RunsBeforeValidation(t *testing.T) {
	resolver := &MockCallerResolver{}
	resolver.On("Authenticate", mock.Anything, "", "").Return(nil, apperrors.Forbidden())
	bookings := &MockBookingUseCase{}

	router := newTestRouter()
	group := router.Group("/bookings", Authenticate(resolver))
	NewBookingHandler(bookings, validation.New()).Register(group)

	req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"message":"Forbidden"}`, w.Body.String())
}

func TestRequestLogging_SetsRequestID(t *testing.T) {
	router := newTestRouter()
	router.GET("/ping", Ping)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "req-42")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "req-42", w.Header().Get(HeaderRequestID))
}

func TestRecovery(t *testing.T) {
	router := newTestRouter()
	router.GET("/panic", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Internal Server Error"}`, w.Body.String())
}

func TestRequestTimeout(t *testing.T) {
	router := newTestRouter()
	router.Use(RequestTimeout(10 * time.Millisecond))
	router.GET("/slow", func(c *gin.Context) {
		<-c.Request.Context().Done()
		writeError(c, apperrors.Internal(c.Request.Context().Err()))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/slow", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"message":"Request timeout"}`, w.Body.String())
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		checks     map[string]HealthCheck
		wantStatus int
		wantBody   string
	}{
		{
			name: "all healthy",
			checks: map[string]HealthCheck{
				"postgres": func(context.Context) error { return nil },
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"ok","checks":{"postgres":"ok"}}`,
		},
		{
			name: "one failing",
			checks: map[string]HealthCheck{
				"postgres": func(context.Context) error { return nil },
				"redis":    func(context.Context) error { return errors.New("connection refused") },
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"status":"degraded","checks":{"postgres":"ok","redis":"connection refused"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter()
			router.GET("/health", NewHealthHandler(tt.checks, time.Second).Health)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}
