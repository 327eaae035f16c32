package domain

import "github.com/clinibox/box-availability-service/internal/core/json_types"

type AvailabilitySource string

const (
	AvailabilitySourceWeeklySlots   AvailabilitySource = "weekly_slots_import"
	AvailabilitySourceApprovedBlock AvailabilitySource = "approved_block"
)

type AvailabilityAudience string

const (
	AvailabilityAudiencePropio       AvailabilityAudience = "propio"
	AvailabilityAudienceEspecialidad AvailabilityAudience = "especialidad"
)

// AvailabilityRecord es la salida del motor, efímera, no se persiste.
type AvailabilityRecord struct {
	Date      json_types.Date      `json:"date"`
	Start     json_types.ClockTime `json:"start"`
	End       json_types.ClockTime `json:"end"`
	BoxCode   string               `json:"boxCode"`
	Floor     int                  `json:"floor"`
	Specialty string               `json:"specialty"`
	DoctorRut string               `json:"doctorRut,omitempty"`
	Source    AvailabilitySource   `json:"source"`
	Audience  AvailabilityAudience `json:"audience"`
	Shared    bool                 `json:"shared"`
}

// AvailabilityQuery es el contrato de entrada de ComputeAvailability.
// Las fechas llegan como string ISO y se toleran malformadas: el motor
// las acota en vez de rechazarlas.
type AvailabilityQuery struct {
	DateFrom     string
	DateTo       string
	DoctorRut    string
	Specialty    string
	IncludeAll   bool
	ShareBlocked bool
}
