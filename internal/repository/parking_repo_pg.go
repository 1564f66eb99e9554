package repository

import (
	"context"

	"github.com/Domenick1991/parkbooking/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ParkingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Parking, error)
}

type PGParkingRepository struct {
	db *pgxpool.Pool
}

func NewParkingRepository(db *pgxpool.Pool) ParkingRepository {
	return &PGParkingRepository{db: db}
}

func (r *PGParkingRepository) GetByID(ctx context.Context, id int64) (*domain.Parking, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name FROM parkings WHERE id = $1`, id)
	var p domain.Parking
	if err := row.Scan(&p.ID, &p.Name); err != nil {
		return nil, translateError(err)
	}
	return &p, nil
}

var _ ParkingRepository = (*PGParkingRepository)(nil)
