package parking

import (
	"context"
	"errors"
	"testing"

	"github.com/Domenick1991/parkbooking/internal/apperrors"
	"github.com/Domenick1991/parkbooking/internal/domain"
	"github.com/Domenick1991/parkbooking/internal/logger"
	"github.com/Domenick1991/parkbooking/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockParkingRepository struct {
	mock.Mock
}

func (m *MockParkingRepository) GetByID(ctx context.Context, id int64) (*domain.Parking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Parking), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetParking(ctx context.Context, id int64) (*domain.Parking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Parking), args.Error(1)
}

func (m *MockCache) SetParking(ctx context.Context, parking *domain.Parking) error {
	args := m.Called(ctx, parking)
	return args.Error(0)
}

func TestParkingService_GetByID_CacheMiss(t *testing.T) {
	mockRepo := &MockParkingRepository{}
	mockCache := &MockCache{}
	service := NewParkingService(mockRepo, mockCache, logger.Discard())
	ctx := context.Background()
	parking := &domain.Parking{ID: 1, Name: "Parking 1"}

	mockCache.On("GetParking", ctx, int64(1)).Return(nil, nil).Once()
	mockRepo.On("GetByID", ctx, int64(1)).Return(parking, nil).Once()
	mockCache.On("SetParking", ctx, parking).Return(nil).Once()

	got, err := service.GetByID(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, parking, got)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestParkingService_GetByID_CacheHit(t *testing.T) {
	mockRepo := &MockParkingRepository{}
	mockCache := &MockCache{}
	service := NewParkingService(mockRepo, mockCache, logger.Discard())
	ctx := context.Background()
	parking := &domain.Parking{ID: 2, Name: "Parking 2"}

	mockCache.On("GetParking", ctx, int64(2)).Return(parking, nil).Once()

	got, err := service.GetByID(ctx, 2)

	require.NoError(t, err)
	assert.Equal(t, parking, got)
	mockRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestParkingService_GetByID_CacheErrorFallsBack(t *testing.T) {
	mockRepo := &MockParkingRepository{}
	mockCache := &MockCache{}
	service := NewParkingService(mockRepo, mockCache, logger.Discard())
	ctx := context.Background()
	parking := &domain.Parking{ID: 3, Name: "Parking 3"}

	mockCache.On("GetParking", ctx, int64(3)).Return(nil, errors.New("redis down")).Once()
	mockRepo.On("GetByID", ctx, int64(3)).Return(parking, nil).Once()
	mockCache.On("SetParking", ctx, parking).Return(errors.New("redis down")).Once()

	got, err := service.GetByID(ctx, 3)

	require.NoError(t, err)
	assert.Equal(t, parking, got)
}

func TestParkingService_GetByID_Errors(t *testing.T) {
	tests := []struct {
		name     string
		repoErr  error
		wantKind apperrors.Kind
	}{
		{name: "not found", repoErr: repository.ErrNotFound, wantKind: apperrors.KindNotFound},
		{name: "database error", repoErr: errors.New("boom"), wantKind: apperrors.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &MockParkingRepository{}
			service := NewParkingService(mockRepo, nil, logger.Discard())
			mockRepo.On("GetByID", mock.Anything, int64(9)).Return(nil, tt.repoErr)

			got, err := service.GetByID(context.Background(), 9)

			assert.Nil(t, got)
			assert.Equal(t, tt.wantKind, apperrors.KindOf(err))
		})
	}
}
