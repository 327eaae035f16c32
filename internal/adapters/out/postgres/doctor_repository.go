package postgres

import (
	"context"

	"github.com/clinibox/box-availability-service/internal/core/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DoctorRepository struct {
	pool *pgxpool.Pool
}

func NewDoctorRepository(pool *pgxpool.Pool) *DoctorRepository {
	return &DoctorRepository{pool: pool}
}

func (r *DoctorRepository) FindAll(ctx context.Context) ([]domain.Doctor, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT rut, name, specialty, floors, boxes
		FROM doctors
		ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	doctors := make([]domain.Doctor, 0)
	for rows.Next() {
		var d domain.Doctor
		var floors []int32

		if err := rows.Scan(&d.Rut, &d.Name, &d.Specialty, &floors, &d.Boxes); err != nil {
			return nil, err
		}

		d.Rut = domain.NormalizeRut(d.Rut)
		d.Floors = make([]int, 0, len(floors))
		for _, floor := range floors {
			d.Floors = append(d.Floors, int(floor))
		}

		doctors = append(doctors, d)
	}

	return doctors, rows.Err()
}
