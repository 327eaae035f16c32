package postgres

import (
	"context"

	"github.com/clinibox/box-availability-service/internal/core/domain"
	"github.com/clinibox/box-availability-service/internal/core/json_types"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WeeklySlotRepository struct {
	pool *pgxpool.Pool
}

func NewWeeklySlotRepository(pool *pgxpool.Pool) *WeeklySlotRepository {
	return &WeeklySlotRepository{pool: pool}
}

// FindByDoctorOrAll con rut vacío retorna el snapshot completo de plantillas.
// Con rut, las del médico más las genéricas sin dueño.
func (r *WeeklySlotRepository) FindByDoctorOrAll(ctx context.Context, rut string) ([]domain.WeeklySlot, error) {
	query := `
		SELECT doctor_rut, day, start_time, end_time, box_code, floor, specialty
		FROM weekly_slots`
	args := []interface{}{}

	if rut != "" {
		query += ` WHERE doctor_rut = $1 OR doctor_rut = ''`
		args = append(args, domain.NormalizeRut(rut))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := make([]domain.WeeklySlot, 0)
	for rows.Next() {
		slot, err := scanWeeklySlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, *slot)
	}

	return slots, rows.Err()
}

func scanWeeklySlot(row pgx.Row) (*domain.WeeklySlot, error) {
	var s domain.WeeklySlot
	var day int
	var start, end string

	err := row.Scan(&s.DoctorRut, &day, &start, &end, &s.BoxCode, &s.Floor, &s.Specialty)
	if err != nil {
		return nil, err
	}

	// El día quedó normalizado 1..7 en la ingesta, acá solo se reconstruye
	s.Day = domain.NormalizeWeekdayInt(day)
	s.Start = json_types.ClockTime(start)
	s.End = json_types.ClockTime(end)

	return &s, nil
}
