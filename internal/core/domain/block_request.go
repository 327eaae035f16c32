package domain

import (
	"time"

	"github.com/clinibox/box-availability-service/internal/core/json_types"
	"github.com/google/uuid"
)

type BlockRequestStatus string

const (
	BlockRequestStatusPending  BlockRequestStatus = "pending"
	BlockRequestStatusApproved BlockRequestStatus = "approved"
	BlockRequestStatusRejected BlockRequestStatus = "rejected"
)

// BlockRequest es una solicitud de bloqueo/liberación de horario iniciada
// por el médico o por un agente. Solo pending y approved cuentan como
// ocupado para el motor, rejected queda inerte.
type BlockRequest struct {
	ID        uuid.UUID            `json:"id"`
	DoctorRut string               `json:"doctorRut"`
	Date      json_types.Date      `json:"date"`
	Start     json_types.ClockTime `json:"start"`
	End       json_types.ClockTime `json:"end"`
	Reason    string               `json:"reason"`
	BoxCode   string               `json:"boxCode,omitempty"`
	Status    BlockRequestStatus   `json:"status"`
	CreatedAt time.Time            `json:"createdAt"`
}

func (s BlockRequestStatus) IsValid() bool {
	return s == BlockRequestStatusPending || s == BlockRequestStatusApproved || s == BlockRequestStatusRejected
}

// BusyStatuses son los estados que el overlay de excepciones trata como ocupado.
func BusyStatuses() []BlockRequestStatus {
	return []BlockRequestStatus{BlockRequestStatusPending, BlockRequestStatusApproved}
}
