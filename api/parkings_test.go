package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/Domenick1991/parkbooking/internal/apperrors"
	"github.com/Domenick1991/parkbooking/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockParkingUseCase struct {
	mock.Mock
}

func (m *MockParkingUseCase) GetByID(ctx context.Context, id int64) (*domain.Parking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Parking), args.Error(1)
}

func TestParkingHandler_get(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		setupMock  func(*MockParkingUseCase)
		wantStatus int
		wantBody   map[string]any
	}{
		{
			name: "found",
			id:   "2",
			setupMock: func(m *MockParkingUseCase) {
				m.On("GetByID", mock.Anything, int64(2)).Return(&domain.Parking{ID: 2, Name: "Parking 2"}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   map[string]any{"data": map[string]any{"id": float64(2), "name": "Parking 2"}},
		},
		{
			name: "missing",
			id:   "99",
			setupMock: func(m *MockParkingUseCase) {
				m.On("GetByID", mock.Anything, int64(99)).Return(nil, apperrors.NotFound())
			},
			wantStatus: http.StatusNotFound,
			wantBody:   map[string]any{"message": "Not Found"},
		},
		{
			name: "storage failure",
			id:   "3",
			setupMock: func(m *MockParkingUseCase) {
				m.On("GetByID", mock.Anything, int64(3)).Return(nil, apperrors.Internal(errors.New("connection reset")))
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]any{"message": "Internal Server Error"},
		},
		{
			name:       "invalid id",
			id:         "-1",
			setupMock:  func(*MockParkingUseCase) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockParkingUseCase{}
			tt.setupMock(mockService)
			handler := NewParkingHandler(mockService)

			c, w := newTestContext(http.MethodGet, "/parkings/"+tt.id, nil, &standardUser)
			c.Params = gin.Params{{Key: "id", Value: tt.id}}

			handler.get(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			body := decodeBody(t, w)
			if tt.wantBody != nil {
				assert.Equal(t, tt.wantBody, body)
			} else {
				assert.Contains(t, body, "issues")
			}
			mockService.AssertExpectations(t)
		})
	}
}
