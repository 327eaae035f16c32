package availability_service

import (
	"github.com/clinibox/box-availability-service/internal/core/domain"
	"github.com/clinibox/box-availability-service/internal/core/json_types"
)

// Ventanas genéricas del horario de respaldo: mañana y tarde, lunes a viernes.
var fallbackWindows = []struct {
	Start json_types.ClockTime
	End   json_types.ClockTime
}{
	{Start: "09:00", End: "13:00"},
	{Start: "14:00", End: "18:00"},
}

// fallbackSlots sintetiza un horario genérico cuando el alcance consultado
// no tiene ninguna plantilla: cada box conocido expone dos ventanas diarias
// de lunes a viernes. Solo aparece en la salida calculada, no se persiste.
func fallbackSlots(boxes []domain.Box) []domain.WeeklySlot {
	slots := make([]domain.WeeklySlot, 0, len(boxes)*len(fallbackWindows)*5)

	for _, box := range boxes {
		for day := domain.WeekdayMonday; day <= domain.WeekdayFriday; day++ {
			for _, window := range fallbackWindows {
				slots = append(slots, domain.WeeklySlot{
					Day:       day,
					Start:     window.Start,
					End:       window.End,
					BoxCode:   box.Code,
					Floor:     box.Floor,
					Specialty: box.Specialty,
				})
			}
		}
	}

	return slots
}
