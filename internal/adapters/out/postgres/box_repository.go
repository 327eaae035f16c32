package postgres

import (
	"context"

	"github.com/clinibox/box-availability-service/internal/core/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BoxRepository struct {
	pool *pgxpool.Pool
}

func NewBoxRepository(pool *pgxpool.Pool) *BoxRepository {
	return &BoxRepository{pool: pool}
}

func (r *BoxRepository) FindAll(ctx context.Context) ([]domain.Box, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT code, floor, specialty, status
		FROM boxes
		ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	boxes := make([]domain.Box, 0)
	for rows.Next() {
		var b domain.Box
		if err := rows.Scan(&b.Code, &b.Floor, &b.Specialty, &b.Status); err != nil {
			return nil, err
		}
		boxes = append(boxes, b)
	}

	return boxes, rows.Err()
}
