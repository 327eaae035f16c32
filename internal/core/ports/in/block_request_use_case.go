package in

import (
	"context"
	"time"

	"github.com/clinibox/box-availability-service/internal/core/domain"
	"github.com/google/uuid"
)

type BlockRequestUseCase interface {
	// Creación de solicitud de bloqueo, dispara la publicación de horas extra
	CreateBlockRequest(ctx context.Context, request domain.BlockRequest) (uuid.UUID, error)

	// Transición de estado por parte del personal de agenda
	UpdateBlockRequestStatus(ctx context.Context, id uuid.UUID, status domain.BlockRequestStatus) (*domain.BlockRequest, error)

	// Listado para el flujo del personal
	ListBlockRequests(ctx context.Context, dateFrom, dateTo time.Time, statuses []domain.BlockRequestStatus) ([]domain.BlockRequest, error)

	// Bloqueo operacional iniciado por la instalación
	CreateOperationalBlock(ctx context.Context, block domain.OperationalBlock) (uuid.UUID, error)
}
