package availability_service

import (
	"github.com/clinibox/box-availability-service/internal/core/domain"
)

// sharedRecords emite las solicitudes aprobadas de colegas de la misma
// especialidad como cupos reutilizables, tal cual, sin restar intervalos:
// el cupo liberado está completo para cualquier colega, la agenda del dueño
// ya quedó reducida por el mismo bloqueo en el overlay.
func sharedRecords(blocks []domain.BlockRequest, doctorsByRut map[string]domain.Doctor, specialty string) []domain.AvailabilityRecord {
	records := make([]domain.AvailabilityRecord, 0)

	for _, block := range blocks {
		if block.Status != domain.BlockRequestStatusApproved {
			continue
		}

		owner, known := doctorsByRut[domain.NormalizeRut(block.DoctorRut)]
		// Sin especialidad registrada el dueño se trata como comodín
		if known && owner.Specialty != "" && owner.Specialty != specialty {
			continue
		}

		records = append(records, domain.AvailabilityRecord{
			Date:      block.Date,
			Start:     block.Start,
			End:       block.End,
			BoxCode:   block.BoxCode,
			Specialty: specialty,
			DoctorRut: domain.NormalizeRut(block.DoctorRut),
			Source:    domain.AvailabilitySourceApprovedBlock,
			Audience:  domain.AvailabilityAudienceEspecialidad,
			Shared:    true,
		})
	}

	return records
}
