package block_request_service

import (
	"context"
	"fmt"
	"time"

	"github.com/clinibox/box-availability-service/internal/core/domain"
	"github.com/clinibox/box-availability-service/internal/core/ports/in"
	"github.com/clinibox/box-availability-service/internal/core/ports/out"
	"github.com/clinibox/box-availability-service/internal/core/services/availability_service"
	"github.com/google/uuid"
)

type BlockRequestService struct {
	blocks       out.BlockRequestPort
	operationals out.OperationalBlockPort
	extraHours   out.ExtraHourPort
	directory    out.DoctorDirectoryPort
	events       out.EventPublisherPort
	availability in.AvailabilityUseCase
	logger       out.LoggerPort
}

func NewBlockRequestService(
	blocks out.BlockRequestPort,
	operationals out.OperationalBlockPort,
	extraHours out.ExtraHourPort,
	directory out.DoctorDirectoryPort,
	events out.EventPublisherPort,
	availability in.AvailabilityUseCase,
	logger out.LoggerPort,
) *BlockRequestService {
	return &BlockRequestService{
		blocks:       blocks,
		operationals: operationals,
		extraHours:   extraHours,
		directory:    directory,
		events:       events,
		availability: availability,
		logger:       logger.WithModule("BlockRequestService"),
	}
}

// CreateBlockRequest persiste la solicitud y luego dispara los efectos
// secundarios de mejor esfuerzo: publicación de horas extra para la
// especialidad, auditoría y correo. Ninguno de esos fallos es visible
// para el usuario ni falla la solicitud.
func (s *BlockRequestService) CreateBlockRequest(ctx context.Context, request domain.BlockRequest) (uuid.UUID, error) {
	request.DoctorRut = domain.NormalizeRut(request.DoctorRut)
	if request.DoctorRut == "" {
		return uuid.Nil, domain.ErrDoctorNotFound
	}

	start, err := availability_service.ToMinutes(request.Start.String())
	if err != nil {
		return uuid.Nil, err
	}
	end, err := availability_service.ToMinutes(request.End.String())
	if err != nil {
		return uuid.Nil, err
	}
	if end <= start {
		return uuid.Nil, fmt.Errorf("%w: start %s, end %s", domain.ErrInvalidDateRange, request.Start, request.End)
	}

	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	if request.Status == "" {
		request.Status = domain.BlockRequestStatusPending
	}
	if !request.Status.IsValid() {
		return uuid.Nil, fmt.Errorf("invalid block request status: %s", request.Status)
	}
	request.CreatedAt = time.Now()

	id, err := s.blocks.Insert(ctx, request)
	if err != nil {
		s.logger.Error("blocks.create.insert_failed", out.LogFields{
			"doctorRut": request.DoctorRut,
			"error":     err.Error(),
		})
		return uuid.Nil, fmt.Errorf("blocks.create.insert_failed: %w", err)
	}
	request.ID = id

	s.logger.Info("blocks.create.stored", out.LogFields{
		"blockId":   id,
		"doctorRut": request.DoctorRut,
		"date":      request.Date.String(),
	})

	// Fuego y olvido relativo a la lectura: no hay garantía transaccional
	// de que la solicitud y su hora extra derivada sean visibles de forma
	// atómica para un lector concurrente
	go s.publishCreationSideEffects(request)

	if s.availability != nil {
		s.availability.InvalidateAvailabilityCache(ctx)
	}

	return id, nil
}

// UpdateBlockRequestStatus transiciona la solicitud. El rechazo solo deja
// de contar como ocupado: una hora extra ya publicada no se retira acá,
// esa limpieza pertenece a un colaborador externo.
func (s *BlockRequestService) UpdateBlockRequestStatus(ctx context.Context, id uuid.UUID, status domain.BlockRequestStatus) (*domain.BlockRequest, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid block request status: %s", status)
	}

	request, err := s.blocks.UpdateStatus(ctx, id, status)
	if err != nil {
		s.logger.Error("blocks.status.update_failed", out.LogFields{
			"blockId": id,
			"status":  status,
			"error":   err.Error(),
		})
		return nil, err
	}

	s.logger.Info("blocks.status.updated", out.LogFields{
		"blockId": id,
		"status":  status,
	})

	go s.publishAudit("block_request.status_updated", map[string]interface{}{
		"blockId":   id.String(),
		"doctorRut": request.DoctorRut,
		"status":    string(status),
	})
	go s.publishMail(out.MailMessage{
		Subject: fmt.Sprintf("Solicitud de bloqueo %s", status),
		Body:    fmt.Sprintf("La solicitud del %s (%s-%s) quedó %s", request.Date, request.Start, request.End, status),
	})

	if s.availability != nil {
		s.availability.InvalidateAvailabilityCache(ctx)
	}

	return request, nil
}

func (s *BlockRequestService) ListBlockRequests(ctx context.Context, dateFrom, dateTo time.Time, statuses []domain.BlockRequestStatus) ([]domain.BlockRequest, error) {
	return s.blocks.FindInRange(ctx, dateFrom, dateTo, statuses)
}

func (s *BlockRequestService) CreateOperationalBlock(ctx context.Context, block domain.OperationalBlock) (uuid.UUID, error) {
	start, err := availability_service.ToMinutes(block.Start.String())
	if err != nil {
		return uuid.Nil, err
	}
	end, err := availability_service.ToMinutes(block.End.String())
	if err != nil {
		return uuid.Nil, err
	}
	if end <= start {
		return uuid.Nil, fmt.Errorf("%w: start %s, end %s", domain.ErrInvalidDateRange, block.Start, block.End)
	}

	if block.ID == uuid.Nil {
		block.ID = uuid.New()
	}

	id, err := s.operationals.Insert(ctx, block)
	if err != nil {
		s.logger.Error("operational_blocks.create.insert_failed", out.LogFields{
			"boxCode": block.BoxCode,
			"error":   err.Error(),
		})
		return uuid.Nil, fmt.Errorf("operational_blocks.create.insert_failed: %w", err)
	}

	s.logger.Info("operational_blocks.create.stored", out.LogFields{
		"blockId": id,
		"boxCode": block.BoxCode,
		"date":    block.Date.String(),
	})

	go s.publishAudit("operational_block.created", map[string]interface{}{
		"blockId": id.String(),
		"boxCode": block.BoxCode,
		"date":    block.Date.String(),
	})

	if s.availability != nil {
		s.availability.InvalidateAvailabilityCache(ctx)
	}

	return id, nil
}

// publishCreationSideEffects materializa el cupo liberado visible para la
// especialidad del dueño y emite auditoría y correo.
func (s *BlockRequestService) publishCreationSideEffects(request domain.BlockRequest) {
	ctx := context.Background()

	specialty := s.lookupSpecialty(ctx, request.DoctorRut)
	if specialty != "" {
		extraHour := domain.ExtraHour{
			ID:            uuid.New(),
			DoctorRut:     request.DoctorRut,
			Specialty:     specialty,
			Date:          request.Date,
			Start:         request.Start,
			End:           request.End,
			BoxCode:       request.BoxCode,
			Audience:      domain.AudienceEspecialidad,
			SourceBlockID: request.ID,
			CreatedAt:     time.Now(),
		}

		if _, err := s.extraHours.Insert(ctx, extraHour); err != nil {
			s.logger.Error("blocks.extra_hours.publish_failed", out.LogFields{
				"blockId": request.ID,
				"error":   err.Error(),
			})
		} else {
			s.logger.Info("blocks.extra_hours.published", out.LogFields{
				"blockId":   request.ID,
				"doctorRut": request.DoctorRut,
				"specialty": specialty,
			})
		}
	}

	s.publishAudit("block_request.created", map[string]interface{}{
		"blockId":   request.ID.String(),
		"doctorRut": request.DoctorRut,
		"date":      request.Date.String(),
		"reason":    request.Reason,
	})
	s.publishMail(out.MailMessage{
		Subject: "Nueva solicitud de bloqueo",
		Body:    fmt.Sprintf("Solicitud del %s (%s-%s), motivo: %s", request.Date, request.Start, request.End, request.Reason),
	})
}

func (s *BlockRequestService) lookupSpecialty(ctx context.Context, rut string) string {
	doctors, err := s.directory.FindAll(ctx)
	if err != nil {
		s.logger.Warn("blocks.directory.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return ""
	}

	for _, doctor := range doctors {
		if domain.SameRut(doctor.Rut, rut) {
			return doctor.Specialty
		}
	}

	return ""
}

func (s *BlockRequestService) publishAudit(action string, payload map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishAudit(context.Background(), action, payload); err != nil {
		s.logger.Warn("blocks.audit.publish_failed", out.LogFields{
			"action": action,
			"error":  err.Error(),
		})
	}
}

func (s *BlockRequestService) publishMail(message out.MailMessage) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishMail(context.Background(), message); err != nil {
		s.logger.Warn("blocks.mail.publish_failed", out.LogFields{
			"subject": message.Subject,
			"error":   err.Error(),
		})
	}
}
