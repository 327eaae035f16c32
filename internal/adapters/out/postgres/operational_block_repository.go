package postgres

import (
	"context"
	"time"

	"github.com/clinibox/box-availability-service/internal/core/domain"
	"github.com/clinibox/box-availability-service/internal/core/json_types"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OperationalBlockRepository struct {
	pool *pgxpool.Pool
}

func NewOperationalBlockRepository(pool *pgxpool.Pool) *OperationalBlockRepository {
	return &OperationalBlockRepository{pool: pool}
}

func (r *OperationalBlockRepository) FindInRange(ctx context.Context, dateFrom, dateTo time.Time) ([]domain.OperationalBlock, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, date, start_time, end_time, box_code, reason, status
		FROM operational_blocks
		WHERE date >= $1 AND date <= $2
		ORDER BY date, start_time`,
		dateFrom, dateTo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blocks := make([]domain.OperationalBlock, 0)
	for rows.Next() {
		var b domain.OperationalBlock
		var date time.Time
		var start, end string

		if err := rows.Scan(&b.ID, &date, &start, &end, &b.BoxCode, &b.Reason, &b.Status); err != nil {
			return nil, err
		}

		b.Date = json_types.NewDate(date)
		b.Start = json_types.ClockTime(start)
		b.End = json_types.ClockTime(end)

		blocks = append(blocks, b)
	}

	return blocks, rows.Err()
}

func (r *OperationalBlockRepository) Insert(ctx context.Context, block domain.OperationalBlock) (uuid.UUID, error) {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO operational_blocks (id, date, start_time, end_time, box_code, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		block.ID,
		block.Date.Date,
		block.Start.String(),
		block.End.String(),
		block.BoxCode,
		block.Reason,
		block.Status,
	)
	if err != nil {
		return uuid.Nil, err
	}

	return block.ID, nil
}
