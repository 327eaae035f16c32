package domain

import (
	"github.com/clinibox/box-availability-service/internal/core/json_types"
	"github.com/google/uuid"
)

// OperationalBlock es una ventana de indisponibilidad iniciada por la
// instalación (mantención, aseo). El estado alimenta el flujo del personal,
// para el motor el bloqueo siempre cuenta como ocupado.
type OperationalBlock struct {
	ID      uuid.UUID            `json:"id"`
	Date    json_types.Date      `json:"date"`
	Start   json_types.ClockTime `json:"start"`
	End     json_types.ClockTime `json:"end"`
	BoxCode string               `json:"boxCode"`
	Reason  string               `json:"reason"`
	Status  string               `json:"status"`
}
