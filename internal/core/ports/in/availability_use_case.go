package in

import (
	"context"

	"github.com/clinibox/box-availability-service/internal/core/domain"
)

type AvailabilityUseCase interface {
	// Cálculo de intervalos libres para un rango de fechas
	ComputeAvailability(ctx context.Context, query domain.AvailabilityQuery) ([]domain.AvailabilityRecord, error)

	// Invalidación del caché de disponibilidad ante cambios de bloqueos
	InvalidateAvailabilityCache(ctx context.Context)
}
