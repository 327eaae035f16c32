package availability_service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/clinibox/box-availability-service/internal/config"
	"github.com/clinibox/box-availability-service/internal/core/domain"
	"github.com/clinibox/box-availability-service/internal/core/json_types"
	"github.com/clinibox/box-availability-service/internal/core/ports/out"
	"github.com/clinibox/box-availability-service/internal/utils"
)

const specialtyAll = "all"

type AvailabilityService struct {
	directory    out.DoctorDirectoryPort
	weeklySlots  out.WeeklySlotPort
	blocks       out.BlockRequestPort
	operationals out.OperationalBlockPort
	boxes        out.BoxCatalogPort
	cachePort    out.CachePort
	logger       out.LoggerPort
	cfg          *config.Config
}

func NewAvailabilityService(
	directory out.DoctorDirectoryPort,
	weeklySlots out.WeeklySlotPort,
	blocks out.BlockRequestPort,
	operationals out.OperationalBlockPort,
	boxes out.BoxCatalogPort,
	cachePort out.CachePort,
	logger out.LoggerPort,
	cfg *config.Config,
) *AvailabilityService {
	return &AvailabilityService{
		directory:    directory,
		weeklySlots:  weeklySlots,
		blocks:       blocks,
		operationals: operationals,
		boxes:        boxes,
		cachePort:    cachePort,
		logger:       logger.WithModule("AvailabilityService"),
		cfg:          cfg,
	}
}

// ComputeAvailability expande las plantillas semanales sobre el rango,
// superpone las excepciones y emite los intervalos libres. Lectura pura:
// snapshots independientes, sin mutación de estado compartido.
func (s *AvailabilityService) ComputeAvailability(ctx context.Context, query domain.AvailabilityQuery) ([]domain.AvailabilityRecord, error) {
	dateFrom, dateTo := s.clampRange(query)

	s.logger.Info("availability.compute.started", out.LogFields{
		"dateFrom":     utils.DayKey(dateFrom),
		"dateTo":       utils.DayKey(dateTo),
		"doctorRut":    query.DoctorRut,
		"specialty":    query.Specialty,
		"includeAll":   query.IncludeAll,
		"shareBlocked": query.ShareBlocked,
	})

	cacheKey := availabilityCacheKey(query, dateFrom, dateTo)
	if s.cachePort != nil && s.cfg.Cache.Enabled {
		if records, exists := s.cachePort.GetAvailability(ctx, cacheKey); exists {
			s.logger.Debug("availability.compute.cache.hit", out.LogFields{
				"key":          cacheKey,
				"recordsCount": len(records),
			})
			return records, nil
		}
	}

	doctors, err := s.getDoctors(ctx)
	if err != nil {
		s.logger.Error("availability.doctors.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("availability.doctors.fetch_failed: %w", err)
	}

	doctorsByRut := make(map[string]domain.Doctor, len(doctors))
	for _, doctor := range doctors {
		doctorsByRut[domain.NormalizeRut(doctor.Rut)] = doctor
	}

	specialty := resolveSpecialty(query, doctorsByRut)

	slots, err := s.loadSlots(ctx, query)
	if err != nil {
		s.logger.Error("availability.weekly_slots.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("availability.weekly_slots.fetch_failed: %w", err)
	}

	selected := selectSlots(slots, doctorsByRut, query.DoctorRut, specialty, query.IncludeAll)

	// Sin ninguna plantilla en el alcance, sintetizamos el horario genérico
	// de respaldo a partir del catálogo de boxes
	if len(selected) == 0 {
		boxes, err := s.boxes.FindAll(ctx)
		if err != nil {
			s.logger.Error("availability.boxes.fetch_failed", out.LogFields{
				"error": err.Error(),
			})
			return nil, fmt.Errorf("availability.boxes.fetch_failed: %w", err)
		}
		selected = fallbackSlots(boxes)
		s.logger.Info("availability.fallback_schedule.synthesized", out.LogFields{
			"boxesCount": len(boxes),
			"slotsCount": len(selected),
		})
	}

	blocks, err := s.blocks.FindInRange(ctx, dateFrom, dateTo, domain.BusyStatuses())
	if err != nil {
		s.logger.Error("availability.block_requests.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("availability.block_requests.fetch_failed: %w", err)
	}

	operationals, err := s.operationals.FindInRange(ctx, dateFrom, dateTo)
	if err != nil {
		s.logger.Error("availability.operational_blocks.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("availability.operational_blocks.fetch_failed: %w", err)
	}

	index := s.buildBusyIndex(blocks, operationals)

	records := make([]domain.AvailabilityRecord, 0)

	// Mutex para el acceso al slice y grupo de espera para los días
	var mu sync.Mutex
	var wg sync.WaitGroup

	for day := dateFrom; !day.After(dateTo); day = utils.StartNextDay(day) {
		wg.Add(1)
		go s.expandDay(day, selected, index, &records, &mu, &wg)
	}
	wg.Wait()

	if query.ShareBlocked && specialty != "" {
		records = append(records, sharedRecords(blocks, doctorsByRut, specialty)...)
	}

	records = RecordSlice(records).quickSort()

	if s.cachePort != nil && s.cfg.Cache.Enabled {
		s.cachePort.StoreAvailability(ctx, cacheKey, records)
	}

	s.logger.Info("availability.compute.finished", out.LogFields{
		"recordsCount": len(records),
	})

	return records, nil
}

func (s *AvailabilityService) InvalidateAvailabilityCache(ctx context.Context) {
	if s.cachePort == nil {
		return
	}
	s.cachePort.InvalidateAvailability(ctx)
	s.logger.Debug("availability.cache.invalidated", out.LogFields{})
}

// expandDay emite los registros libres de un día: por cada plantilla cuyo
// día de semana coincide, resta los ocupados del índice y conserva los
// restos que superan el mínimo configurado.
func (s *AvailabilityService) expandDay(day time.Time, slots []domain.WeeklySlot, index busyIndex, records *[]domain.AvailabilityRecord, mu *sync.Mutex, wg *sync.WaitGroup) {
	defer wg.Done()

	weekday := domain.WeekdayOf(day)
	dateKey := utils.DayKey(day)
	date := json_types.NewDate(day)

	for _, slot := range slots {
		if slot.Day != weekday {
			continue
		}

		start, err := ToMinutes(slot.Start.String())
		if err != nil {
			s.logger.Warn("availability.expand.skip_slot", out.LogFields{
				"date":  dateKey,
				"box":   slot.BoxCode,
				"start": slot.Start.String(),
				"error": err.Error(),
			})
			continue
		}
		end, err := ToMinutes(slot.End.String())
		if err != nil {
			s.logger.Warn("availability.expand.skip_slot", out.LogFields{
				"date":  dateKey,
				"box":   slot.BoxCode,
				"end":   slot.End.String(),
				"error": err.Error(),
			})
			continue
		}
		if end <= start {
			continue
		}

		busy := index.busyFor(dateKey, slot.BoxCode, slot.DoctorRut)
		free := SubtractIntervals(Interval{Start: start, End: end}, busy, s.cfg.Engine.MinSlotMinutes)

		for _, interval := range free {
			record := domain.AvailabilityRecord{
				Date:      date,
				Start:     json_types.ClockTime(ToTimeString(interval.Start)),
				End:       json_types.ClockTime(ToTimeString(interval.End)),
				BoxCode:   slot.BoxCode,
				Floor:     slot.Floor,
				Specialty: slot.Specialty,
				DoctorRut: domain.NormalizeRut(slot.DoctorRut),
				Source:    domain.AvailabilitySourceWeeklySlots,
				Audience:  domain.AvailabilityAudiencePropio,
				Shared:    false,
			}

			mu.Lock()
			*records = append(*records, record)
			mu.Unlock()
		}
	}
}

// clampRange acota el rango pedido en vez de rechazarlo: fecha inicial
// malformada cae a hoy, fecha final malformada o invertida cae a la inicial,
// y el largo total se trunca silenciosamente al tope configurado.
func (s *AvailabilityService) clampRange(query domain.AvailabilityQuery) (time.Time, time.Time) {
	dateFrom, err := utils.ParseDay(query.DateFrom)
	if err != nil {
		s.logger.Warn("availability.range.from_clamped", out.LogFields{
			"dateFrom": query.DateFrom,
			"error":    err.Error(),
		})
		dateFrom = utils.StartCurrentDay(time.Now().In(config.TimeZone))
	}

	dateTo := dateFrom
	if query.DateTo != "" {
		parsed, err := utils.ParseDay(query.DateTo)
		if err != nil || parsed.Before(dateFrom) {
			s.logger.Warn("availability.range.to_clamped", out.LogFields{
				"dateTo": query.DateTo,
			})
		} else {
			dateTo = parsed
		}
	}

	maxDays := s.cfg.Engine.MaxRangeDays
	if maxDays > 0 {
		limit := dateFrom.AddDate(0, 0, maxDays-1)
		if dateTo.After(limit) {
			dateTo = limit
		}
	}

	return dateFrom, dateTo
}

func (s *AvailabilityService) loadSlots(ctx context.Context, query domain.AvailabilityQuery) ([]domain.WeeklySlot, error) {
	rut := ""
	if query.DoctorRut != "" && !query.IncludeAll {
		rut = domain.NormalizeRut(query.DoctorRut)
	}
	return s.weeklySlots.FindByDoctorOrAll(ctx, rut)
}

func (s *AvailabilityService) getDoctors(ctx context.Context) ([]domain.Doctor, error) {
	if s.cachePort != nil && s.cfg.Cache.Enabled {
		if doctors, exists := s.cachePort.GetDoctors(ctx); exists {
			return doctors, nil
		}
	}

	doctors, err := s.directory.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.cachePort != nil && s.cfg.Cache.Enabled {
		s.cachePort.StoreDoctors(ctx, doctors)
	}

	return doctors, nil
}

// resolveSpecialty prefiere el parámetro explícito ("all" equivale a sin
// filtro) y si no viene, usa la especialidad de catálogo del médico consultado.
func resolveSpecialty(query domain.AvailabilityQuery, doctorsByRut map[string]domain.Doctor) string {
	if query.Specialty != "" && query.Specialty != specialtyAll {
		return query.Specialty
	}

	if query.DoctorRut != "" {
		if doctor, exists := doctorsByRut[domain.NormalizeRut(query.DoctorRut)]; exists {
			return doctor.Specialty
		}
	}

	return ""
}

func availabilityCacheKey(query domain.AvailabilityQuery, dateFrom, dateTo time.Time) string {
	return fmt.Sprintf("%s|%s|%s|%s|%t|%t",
		utils.DayKey(dateFrom),
		utils.DayKey(dateTo),
		domain.NormalizeRut(query.DoctorRut),
		query.Specialty,
		query.IncludeAll,
		query.ShareBlocked,
	)
}
