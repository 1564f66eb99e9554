package repository

import (
	"context"

	"github.com/Domenick1991/parkbooking/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type PGUserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &PGUserRepository{db: db}
}

func (r *PGUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT id, first_name, last_name, email, role FROM users WHERE id = $1 LIMIT 1`, id)
	var (
		u    domain.User
		role string
	)
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &role); err != nil {
		return nil, translateError(err)
	}
	u.Role = domain.Role(role)
	return &u, nil
}

var _ UserRepository = (*PGUserRepository)(nil)
