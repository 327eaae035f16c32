package domain

import "github.com/clinibox/box-availability-service/internal/core/json_types"

// WeeklySlot es una regla recurrente de disponibilidad por día de semana.
// DoctorRut vacío significa plantilla genérica de box, sin dueño.
type WeeklySlot struct {
	DoctorRut string               `json:"doctorRut"`
	Day       Weekday              `json:"day"`
	Start     json_types.ClockTime `json:"start"`
	End       json_types.ClockTime `json:"end"`
	BoxCode   string               `json:"boxCode"`
	Floor     int                  `json:"floor"`
	Specialty string               `json:"specialty"`
}

func (s WeeklySlot) IsGeneric() bool {
	return s.DoctorRut == ""
}
