package out

import (
	"context"
	"time"

	"github.com/clinibox/box-availability-service/internal/core/domain"
	"github.com/google/uuid"
)

// Colaboradores de lectura del motor. Contratos estrechos: el motor consume
// snapshots independientes, nunca escribe catálogos.

type DoctorDirectoryPort interface {
	FindAll(ctx context.Context) ([]domain.Doctor, error)
}

type WeeklySlotPort interface {
	// FindByDoctorOrAll con rut vacío retorna todas las plantillas.
	// Con rut, retorna las del médico más las genéricas sin dueño.
	FindByDoctorOrAll(ctx context.Context, rut string) ([]domain.WeeklySlot, error)
}

type BlockRequestPort interface {
	FindInRange(ctx context.Context, dateFrom, dateTo time.Time, statuses []domain.BlockRequestStatus) ([]domain.BlockRequest, error)
	Insert(ctx context.Context, request domain.BlockRequest) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BlockRequestStatus) (*domain.BlockRequest, error)
}

type OperationalBlockPort interface {
	FindInRange(ctx context.Context, dateFrom, dateTo time.Time) ([]domain.OperationalBlock, error)
	Insert(ctx context.Context, block domain.OperationalBlock) (uuid.UUID, error)
}

type BoxCatalogPort interface {
	// Usado solamente por el camino de respaldo sintético.
	FindAll(ctx context.Context) ([]domain.Box, error)
}

type ExtraHourPort interface {
	Insert(ctx context.Context, extraHour domain.ExtraHour) (uuid.UUID, error)
	// DeleteBySourceBlock existe para la herramienta externa de limpieza,
	// el motor nunca lo invoca al rechazar la solicitud de origen.
	DeleteBySourceBlock(ctx context.Context, sourceBlockID uuid.UUID) error
}
