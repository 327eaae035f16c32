package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/clinibox/box-availability-service/internal/core/domain"
	"github.com/clinibox/box-availability-service/internal/core/json_types"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BlockRequestRepository struct {
	pool *pgxpool.Pool
}

func NewBlockRequestRepository(pool *pgxpool.Pool) *BlockRequestRepository {
	return &BlockRequestRepository{pool: pool}
}

func scanBlockRequest(row pgx.Row) (*domain.BlockRequest, error) {
	var b domain.BlockRequest
	var date time.Time
	var start, end string

	err := row.Scan(&b.ID, &b.DoctorRut, &date, &start, &end, &b.Reason, &b.BoxCode, &b.Status, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBlockRequestNotFound
		}
		return nil, err
	}

	b.Date = json_types.NewDate(date)
	b.Start = json_types.ClockTime(start)
	b.End = json_types.ClockTime(end)

	return &b, nil
}

func (r *BlockRequestRepository) FindInRange(ctx context.Context, dateFrom, dateTo time.Time, statuses []domain.BlockRequestStatus) ([]domain.BlockRequest, error) {
	statusValues := make([]string, 0, len(statuses))
	for _, status := range statuses {
		statusValues = append(statusValues, string(status))
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, doctor_rut, date, start_time, end_time, reason, box_code, status, created_at
		FROM block_requests
		WHERE date >= $1 AND date <= $2 AND status = ANY($3)
		ORDER BY date, start_time`,
		dateFrom, dateTo, statusValues)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]domain.BlockRequest, 0)
	for rows.Next() {
		request, err := scanBlockRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *request)
	}

	return requests, rows.Err()
}

func (r *BlockRequestRepository) Insert(ctx context.Context, request domain.BlockRequest) (uuid.UUID, error) {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO block_requests (id, doctor_rut, date, start_time, end_time, reason, box_code, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		request.ID,
		request.DoctorRut,
		request.Date.Date,
		request.Start.String(),
		request.End.String(),
		request.Reason,
		request.BoxCode,
		request.Status,
		request.CreatedAt,
	)
	if err != nil {
		return uuid.Nil, err
	}

	return request.ID, nil
}

func (r *BlockRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BlockRequestStatus) (*domain.BlockRequest, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE block_requests
		SET status = $2
		WHERE id = $1
		RETURNING id, doctor_rut, date, start_time, end_time, reason, box_code, status, created_at`,
		id, status)

	return scanBlockRequest(row)
}
