package availability_service

import (
	"github.com/clinibox/box-availability-service/internal/core/domain"
	"github.com/clinibox/box-availability-service/internal/core/ports/out"
)

const (
	busyKeyNoBox    = "n/a"
	busyKeyNoDoctor = "na"
)

type busyKey struct {
	Date string
	Box  string
	Rut  string
}

type busyIndex map[busyKey][]Interval

func boxKeyOf(boxCode string) string {
	if boxCode == "" {
		return busyKeyNoBox
	}
	return boxCode
}

func rutKeyOf(rut string) string {
	if rut == "" {
		return busyKeyNoDoctor
	}
	return domain.NormalizeRut(rut)
}

// buildBusyIndex arma el índice de ocupación (fecha, box, rut) a partir de
// solicitudes de bloqueo pending/approved y de todos los bloqueos
// operacionales. Un registro con hora malformada se salta, nunca aborta el
// cálculo del rango completo.
func (s *AvailabilityService) buildBusyIndex(blocks []domain.BlockRequest, operationals []domain.OperationalBlock) busyIndex {
	index := make(busyIndex)

	add := func(key busyKey, startRaw, endRaw string) {
		start, err := ToMinutes(startRaw)
		if err != nil {
			s.logger.Warn("availability.busy_index.skip_record", out.LogFields{
				"date":  key.Date,
				"start": startRaw,
				"error": err.Error(),
			})
			return
		}
		end, err := ToMinutes(endRaw)
		if err != nil {
			s.logger.Warn("availability.busy_index.skip_record", out.LogFields{
				"date":  key.Date,
				"end":   endRaw,
				"error": err.Error(),
			})
			return
		}
		index[key] = append(index[key], Interval{Start: start, End: end})
	}

	for _, block := range blocks {
		key := busyKey{
			Date: block.Date.String(),
			Box:  boxKeyOf(block.BoxCode),
			Rut:  rutKeyOf(block.DoctorRut),
		}
		add(key, block.Start.String(), block.End.String())
	}

	for _, operational := range operationals {
		key := busyKey{
			Date: operational.Date.String(),
			Box:  boxKeyOf(operational.BoxCode),
			Rut:  busyKeyNoDoctor,
		}
		add(key, operational.Start.String(), operational.End.String())
	}

	return index
}

// busyFor junta los ocupados que aplican a una ocurrencia de plantilla:
// la clave exacta, la clave sin médico del mismo box (bloqueos operacionales
// y solicitudes sin dueño) y la clave sin box del mismo médico (días libres
// pedidos sin box).
func (index busyIndex) busyFor(date, boxCode, rut string) []Interval {
	boxK := boxKeyOf(boxCode)
	rutK := rutKeyOf(rut)

	busy := append([]Interval(nil), index[busyKey{Date: date, Box: boxK, Rut: rutK}]...)

	if rutK != busyKeyNoDoctor {
		busy = append(busy, index[busyKey{Date: date, Box: boxK, Rut: busyKeyNoDoctor}]...)
	}
	if boxK != busyKeyNoBox {
		busy = append(busy, index[busyKey{Date: date, Box: busyKeyNoBox, Rut: rutK}]...)
	}

	return busy
}

// selectSlots aplica la política de selección de plantillas.
// Modo agenda propia: solo plantillas del médico (tras normalizar RUT) o
// genéricas sin dueño. Modo todos/especialidad: todas, y si hay filtro de
// especialidad se excluyen los médicos del catálogo con otra especialidad.
// La clave del filtro es la especialidad del médico dueño, no la de la
// plantilla: las plantillas pueden omitirla.
func selectSlots(slots []domain.WeeklySlot, doctorsByRut map[string]domain.Doctor, doctorRut, specialty string, includeAll bool) []domain.WeeklySlot {
	selected := make([]domain.WeeklySlot, 0, len(slots))

	ownMode := doctorRut != "" && !includeAll
	normalizedRut := domain.NormalizeRut(doctorRut)

	for _, slot := range slots {
		if ownMode {
			if slot.IsGeneric() || domain.NormalizeRut(slot.DoctorRut) == normalizedRut {
				selected = append(selected, slot)
			}
			continue
		}

		if specialty != "" && !slot.IsGeneric() {
			owner, known := doctorsByRut[domain.NormalizeRut(slot.DoctorRut)]
			if known && owner.Specialty != "" && owner.Specialty != specialty {
				continue
			}
		}
		selected = append(selected, slot)
	}

	return selected
}
