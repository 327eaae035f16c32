package out

import (
	"context"

	"github.com/clinibox/box-availability-service/internal/core/domain"
)

type CachePort interface {
	// Caché de resultados de disponibilidad, por firma de consulta
	GetAvailability(ctx context.Context, key string) ([]domain.AvailabilityRecord, bool)
	StoreAvailability(ctx context.Context, key string, records []domain.AvailabilityRecord)
	InvalidateAvailability(ctx context.Context)

	// Caché del directorio de médicos
	GetDoctors(ctx context.Context) ([]domain.Doctor, bool)
	StoreDoctors(ctx context.Context, doctors []domain.Doctor)
	InvalidateDoctors(ctx context.Context)
}
