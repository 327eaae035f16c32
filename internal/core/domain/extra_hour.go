package domain

import (
	"time"

	"github.com/clinibox/box-availability-service/internal/core/json_types"
	"github.com/google/uuid"
)

const AudienceEspecialidad = "especialidad"

// ExtraHour es un cupo liberado visible para la especialidad, materializado
// automáticamente al crear un BlockRequest. Append-only: el motor nunca lo
// muta ni lo retira, la limpieza pertenece a un colaborador externo.
type ExtraHour struct {
	ID            uuid.UUID            `json:"id"`
	DoctorRut     string               `json:"doctorRut"`
	Specialty     string               `json:"specialty"`
	Date          json_types.Date      `json:"date"`
	Start         json_types.ClockTime `json:"start"`
	End           json_types.ClockTime `json:"end"`
	BoxCode       string               `json:"boxCode,omitempty"`
	Audience      string               `json:"audience"`
	SourceBlockID uuid.UUID            `json:"sourceBlockId"`
	CreatedAt     time.Time            `json:"createdAt"`
}
