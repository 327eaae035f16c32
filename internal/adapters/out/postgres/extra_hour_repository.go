package postgres

import (
	"context"

	"github.com/clinibox/box-availability-service/internal/core/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ExtraHourRepository struct {
	pool *pgxpool.Pool
}

func NewExtraHourRepository(pool *pgxpool.Pool) *ExtraHourRepository {
	return &ExtraHourRepository{pool: pool}
}

// Insert agrega el cupo liberado. Append-only desde el punto de vista del
// motor: nunca se actualiza.
func (r *ExtraHourRepository) Insert(ctx context.Context, extraHour domain.ExtraHour) (uuid.UUID, error) {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO extra_hours (id, doctor_rut, specialty, date, start_time, end_time, box_code, audience, source_block_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		extraHour.ID,
		extraHour.DoctorRut,
		extraHour.Specialty,
		extraHour.Date.Date,
		extraHour.Start.String(),
		extraHour.End.String(),
		extraHour.BoxCode,
		extraHour.Audience,
		extraHour.SourceBlockID,
		extraHour.CreatedAt,
	)
	if err != nil {
		return uuid.Nil, err
	}

	return extraHour.ID, nil
}

// DeleteBySourceBlock lo usa la herramienta de limpieza del personal.
// El motor no lo invoca al rechazar la solicitud de origen.
func (r *ExtraHourRepository) DeleteBySourceBlock(ctx context.Context, sourceBlockID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM extra_hours WHERE source_block_id = $1`, sourceBlockID)
	return err
}
