package parking

import (
	"context"
	"errors"

	"github.com/Domenick1991/parkbooking/internal/apperrors"
	"github.com/Domenick1991/parkbooking/internal/domain"
	"github.com/Domenick1991/parkbooking/internal/logger"
	"github.com/Domenick1991/parkbooking/internal/repository"
)

type ParkingUseCase interface {
	GetByID(ctx context.Context, id int64) (*domain.Parking, error)
}

type Cache interface {
	GetParking(ctx context.Context, id int64) (*domain.Parking, error)
	SetParking(ctx context.Context, parking *domain.Parking) error
}

type ParkingService struct {
	repo  repository.ParkingRepository
	cache Cache
	log   *logger.Logger
}

// NewParkingService builds the service; cache may be nil.
func NewParkingService(repo repository.ParkingRepository, cache Cache, log *logger.Logger) *ParkingService {
	return &ParkingService{repo: repo, cache: cache, log: log}
}

func (s *ParkingService) GetByID(ctx context.Context, id int64) (*domain.Parking, error) {
	if s.cache != nil {
		cached, err := s.cache.GetParking(ctx, id)
		if err != nil {
			s.log.Warn("Parking cache read failed", "parking_id", id, "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	parking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound()
		}
		s.log.Error("Failed to load parking", "parking_id", id, "error", err)
		return nil, apperrors.Internal(err)
	}

	if s.cache != nil {
		if err := s.cache.SetParking(ctx, parking); err != nil {
			s.log.Warn("Parking cache write failed", "parking_id", id, "error", err)
		}
	}
	return parking, nil
}

var _ ParkingUseCase = (*ParkingService)(nil)
