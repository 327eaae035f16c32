package availability_service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/clinibox/box-availability-service/internal/config"
	"github.com/clinibox/box-availability-service/internal/core/domain"
	"github.com/clinibox/box-availability-service/internal/core/json_types"
	"github.com/clinibox/box-availability-service/internal/core/ports/out"
	"github.com/clinibox/box-availability-service/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fakes de los colaboradores de lectura

type nopLogger struct{}

func (l nopLogger) Debug(event string, fields out.LogFields) {}
func (l nopLogger) Info(event string, fields out.LogFields)  {}
func (l nopLogger) Warn(event string, fields out.LogFields)  {}
func (l nopLogger) Error(event string, fields out.LogFields) {}
func (l nopLogger) WithFields(fields out.LogFields) out.LoggerPort {
	return l
}
func (l nopLogger) WithModule(module string) out.LoggerPort {
	return l
}

type fakeDirectory struct {
	doctors []domain.Doctor
	err     error
}

func (f *fakeDirectory) FindAll(ctx context.Context) ([]domain.Doctor, error) {
	return f.doctors, f.err
}

type fakeWeeklySlots struct {
	slots []domain.WeeklySlot
}

func (f *fakeWeeklySlots) FindByDoctorOrAll(ctx context.Context, rut string) ([]domain.WeeklySlot, error) {
	if rut == "" {
		return f.slots, nil
	}

	filtered := make([]domain.WeeklySlot, 0)
	for _, slot := range f.slots {
		if slot.IsGeneric() || domain.SameRut(slot.DoctorRut, rut) {
			filtered = append(filtered, slot)
		}
	}
	return filtered, nil
}

type fakeBlocks struct {
	blocks []domain.BlockRequest
}

func (f *fakeBlocks) FindInRange(ctx context.Context, dateFrom, dateTo time.Time, statuses []domain.BlockRequestStatus) ([]domain.BlockRequest, error) {
	wanted := make(map[domain.BlockRequestStatus]bool, len(statuses))
	for _, status := range statuses {
		wanted[status] = true
	}

	filtered := make([]domain.BlockRequest, 0)
	for _, block := range f.blocks {
		if !wanted[block.Status] {
			continue
		}
		if block.Date.Date.Before(dateFrom) || block.Date.Date.After(dateTo) {
			continue
		}
		filtered = append(filtered, block)
	}
	return filtered, nil
}

func (f *fakeBlocks) Insert(ctx context.Context, request domain.BlockRequest) (uuid.UUID, error) {
	f.blocks = append(f.blocks, request)
	return request.ID, nil
}

func (f *fakeBlocks) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BlockRequestStatus) (*domain.BlockRequest, error) {
	for i := range f.blocks {
		if f.blocks[i].ID == id {
			f.blocks[i].Status = status
			return &f.blocks[i], nil
		}
	}
	return nil, domain.ErrBlockRequestNotFound
}

type fakeOperationals struct {
	blocks []domain.OperationalBlock
}

func (f *fakeOperationals) FindInRange(ctx context.Context, dateFrom, dateTo time.Time) ([]domain.OperationalBlock, error) {
	filtered := make([]domain.OperationalBlock, 0)
	for _, block := range f.blocks {
		if block.Date.Date.Before(dateFrom) || block.Date.Date.After(dateTo) {
			continue
		}
		filtered = append(filtered, block)
	}
	return filtered, nil
}

func (f *fakeOperationals) Insert(ctx context.Context, block domain.OperationalBlock) (uuid.UUID, error) {
	f.blocks = append(f.blocks, block)
	return block.ID, nil
}

type fakeBoxes struct {
	boxes []domain.Box
}

func (f *fakeBoxes) FindAll(ctx context.Context) ([]domain.Box, error) {
	return f.boxes, nil
}

type testPorts struct {
	directory    *fakeDirectory
	slots        *fakeWeeklySlots
	blocks       *fakeBlocks
	operationals *fakeOperationals
	boxes        *fakeBoxes
}

func newTestService(ports testPorts) *AvailabilityService {
	cfg := &config.Config{}
	cfg.Engine.MinSlotMinutes = 15
	cfg.Engine.MaxRangeDays = 730

	if ports.directory == nil {
		ports.directory = &fakeDirectory{}
	}
	if ports.slots == nil {
		ports.slots = &fakeWeeklySlots{}
	}
	if ports.blocks == nil {
		ports.blocks = &fakeBlocks{}
	}
	if ports.operationals == nil {
		ports.operationals = &fakeOperationals{}
	}
	if ports.boxes == nil {
		ports.boxes = &fakeBoxes{}
	}

	return NewAvailabilityService(
		ports.directory,
		ports.slots,
		ports.blocks,
		ports.operationals,
		ports.boxes,
		nil,
		nopLogger{},
		cfg,
	)
}

func mkDate(t *testing.T, value string) json_types.Date {
	day, err := utils.ParseDay(value)
	require.NoError(t, err)
	return json_types.NewDate(day)
}

// Sin ninguna plantilla, el rango lunes a domingo con 2 boxes debe producir
// 20 registros sintéticos: 2 boxes x 2 ventanas x 5 días hábiles, nada en
// fin de semana.
func TestFallbackScheduleSynthesized(t *testing.T) {
	service := newTestService(testPorts{
		boxes: &fakeBoxes{boxes: []domain.Box{
			{Code: "B101", Floor: 1},
			{Code: "B202", Floor: 2},
		}},
	})

	// 2025-03-03 es lunes, 2025-03-09 es domingo
	records, err := service.ComputeAvailability(context.Background(), domain.AvailabilityQuery{
		DateFrom: "2025-03-03",
		DateTo:   "2025-03-09",
	})
	require.NoError(t, err)
	require.Len(t, records, 20)

	for _, record := range records {
		weekday := domain.WeekdayOf(record.Date.Date)
		assert.LessOrEqual(t, weekday, domain.WeekdayFriday)
		assert.Equal(t, domain.AvailabilitySourceWeeklySlots, record.Source)
		assert.Empty(t, record.DoctorRut)
		assert.False(t, record.Shared)
	}
}

// Escenario base 09:00-13:00 con bloqueo pendiente 10:00-10:30
func TestOverlaySubtractsPendingBlock(t *testing.T) {
	rut := "12345678K"
	service := newTestService(testPorts{
		directory: &fakeDirectory{doctors: []domain.Doctor{
			{Rut: rut, Name: "Dra. Soto", Specialty: "TRAUMA"},
		}},
		slots: &fakeWeeklySlots{slots: []domain.WeeklySlot{
			{DoctorRut: rut, Day: domain.WeekdayTuesday, Start: "09:00", End: "13:00", BoxCode: "B101", Floor: 1, Specialty: "TRAUMA"},
		}},
		blocks: &fakeBlocks{blocks: []domain.BlockRequest{
			{
				ID:        uuid.New(),
				DoctorRut: rut,
				Date:      mkDate(t, "2025-03-04"),
				Start:     "10:00",
				End:       "10:30",
				BoxCode:   "B101",
				Status:    domain.BlockRequestStatusPending,
			},
		}},
	})

	// 2025-03-04 es martes
	records, err := service.ComputeAvailability(context.Background(), domain.AvailabilityQuery{
		DateFrom:  "2025-03-04",
		DoctorRut: "12.345.678-k",
	})
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "09:00", records[0].Start.String())
	assert.Equal(t, "10:00", records[0].End.String())
	assert.Equal(t, "10:30", records[1].Start.String())
	assert.Equal(t, "13:00", records[1].End.String())
	assert.Equal(t, rut, records[0].DoctorRut)
}

// Un bloqueo operacional no tiene médico, igual recorta la agenda del dueño
// del box ese día.
func TestOperationalBlockAppliesToDoctorSlot(t *testing.T) {
	rut := "11111111K"
	service := newTestService(testPorts{
		directory: &fakeDirectory{doctors: []domain.Doctor{{Rut: rut}}},
		slots: &fakeWeeklySlots{slots: []domain.WeeklySlot{
			{DoctorRut: rut, Day: domain.WeekdayTuesday, Start: "09:00", End: "12:00", BoxCode: "B101"},
		}},
		operationals: &fakeOperationals{blocks: []domain.OperationalBlock{
			{
				ID:      uuid.New(),
				Date:    mkDate(t, "2025-03-04"),
				Start:   "09:00",
				End:     "10:00",
				BoxCode: "B101",
				Reason:  "mantención",
				Status:  "scheduled",
			},
		}},
	})

	records, err := service.ComputeAvailability(context.Background(), domain.AvailabilityQuery{
		DateFrom:  "2025-03-04",
		DoctorRut: rut,
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "10:00", records[0].Start.String())
	assert.Equal(t, "12:00", records[0].End.String())
}

// Escenario D: un bloqueo aprobado del colega de la misma especialidad se
// publica una sola vez como cupo compartido.
func TestSharedApprovedBlock(t *testing.T) {
	rut := "22222222K"
	service := newTestService(testPorts{
		directory: &fakeDirectory{doctors: []domain.Doctor{
			{Rut: rut, Specialty: "TRAUMA"},
		}},
		slots: &fakeWeeklySlots{slots: []domain.WeeklySlot{
			{DoctorRut: rut, Day: domain.WeekdayTuesday, Start: "09:00", End: "13:00", BoxCode: "B101"},
		}},
		blocks: &fakeBlocks{blocks: []domain.BlockRequest{
			{
				ID:        uuid.New(),
				DoctorRut: rut,
				Date:      mkDate(t, "2025-03-04"),
				Start:     "10:00",
				End:       "12:00",
				BoxCode:   "B101",
				Status:    domain.BlockRequestStatusApproved,
			},
		}},
	})

	records, err := service.ComputeAvailability(context.Background(), domain.AvailabilityQuery{
		DateFrom:     "2025-03-04",
		Specialty:    "TRAUMA",
		IncludeAll:   true,
		ShareBlocked: true,
	})
	require.NoError(t, err)

	shared := make([]domain.AvailabilityRecord, 0)
	for _, record := range records {
		if record.Source == domain.AvailabilitySourceApprovedBlock {
			shared = append(shared, record)
		}
	}

	require.Len(t, shared, 1)
	assert.Equal(t, domain.AvailabilityAudienceEspecialidad, shared[0].Audience)
	assert.True(t, shared[0].Shared)
	assert.Equal(t, "10:00", shared[0].Start.String())
	assert.Equal(t, "12:00", shared[0].End.String())
	assert.Equal(t, rut, shared[0].DoctorRut)

	// La agenda propia del dueño quedó reducida por el mismo bloqueo
	require.Len(t, records, 3)
}

// Escenario E: un bloqueo rechazado es inerte, ni ocupa ni se comparte.
func TestRejectedBlockIsInert(t *testing.T) {
	rut := "33333333K"
	service := newTestService(testPorts{
		directory: &fakeDirectory{doctors: []domain.Doctor{
			{Rut: rut, Specialty: "TRAUMA"},
		}},
		slots: &fakeWeeklySlots{slots: []domain.WeeklySlot{
			{DoctorRut: rut, Day: domain.WeekdayTuesday, Start: "09:00", End: "13:00", BoxCode: "B101"},
		}},
		blocks: &fakeBlocks{blocks: []domain.BlockRequest{
			{
				ID:        uuid.New(),
				DoctorRut: rut,
				Date:      mkDate(t, "2025-03-04"),
				Start:     "10:00",
				End:       "12:00",
				BoxCode:   "B101",
				Status:    domain.BlockRequestStatusRejected,
			},
		}},
	})

	records, err := service.ComputeAvailability(context.Background(), domain.AvailabilityQuery{
		DateFrom:     "2025-03-04",
		Specialty:    "TRAUMA",
		IncludeAll:   true,
		ShareBlocked: true,
	})
	require.NoError(t, err)

	// La plantilla queda entera y no aparece ningún cupo compartido
	require.Len(t, records, 1)
	assert.Equal(t, "09:00", records[0].Start.String())
	assert.Equal(t, "13:00", records[0].End.String())
	assert.Equal(t, domain.AvailabilitySourceWeeklySlots, records[0].Source)
}

// Modo agenda propia: plantillas de otros médicos afuera, genéricas adentro.
func TestOwnModeSelectsOwnAndGenericSlots(t *testing.T) {
	rut := "44444444K"
	service := newTestService(testPorts{
		directory: &fakeDirectory{doctors: []domain.Doctor{{Rut: rut}}},
		slots: &fakeWeeklySlots{slots: []domain.WeeklySlot{
			{DoctorRut: rut, Day: domain.WeekdayTuesday, Start: "09:00", End: "10:00", BoxCode: "B101"},
			{DoctorRut: "55555555K", Day: domain.WeekdayTuesday, Start: "09:00", End: "10:00", BoxCode: "B102"},
			{Day: domain.WeekdayTuesday, Start: "14:00", End: "15:00", BoxCode: "B103"},
		}},
	})

	records, err := service.ComputeAvailability(context.Background(), domain.AvailabilityQuery{
		DateFrom:  "2025-03-04",
		DoctorRut: rut,
	})
	require.NoError(t, err)
	require.Len(t, records, 2)

	boxes := []string{records[0].BoxCode, records[1].BoxCode}
	assert.Contains(t, boxes, "B101")
	assert.Contains(t, boxes, "B103")
}

// Modo especialidad: el filtro compara contra la especialidad de catálogo
// del dueño, las plantillas genéricas no se filtran.
func TestSpecialtyFilterUsesOwningDoctorCatalog(t *testing.T) {
	service := newTestService(testPorts{
		directory: &fakeDirectory{doctors: []domain.Doctor{
			{Rut: "11111111K", Specialty: "TRAUMA"},
			{Rut: "22222222K", Specialty: "PEDIATRIA"},
		}},
		slots: &fakeWeeklySlots{slots: []domain.WeeklySlot{
			{DoctorRut: "11111111K", Day: domain.WeekdayTuesday, Start: "09:00", End: "10:00", BoxCode: "B101"},
			{DoctorRut: "22222222K", Day: domain.WeekdayTuesday, Start: "09:00", End: "10:00", BoxCode: "B102"},
			{Day: domain.WeekdayTuesday, Start: "14:00", End: "15:00", BoxCode: "B103"},
		}},
	})

	records, err := service.ComputeAvailability(context.Background(), domain.AvailabilityQuery{
		DateFrom:   "2025-03-04",
		Specialty:  "TRAUMA",
		IncludeAll: true,
	})
	require.NoError(t, err)
	require.Len(t, records, 2)

	for _, record := range records {
		assert.NotEqual(t, "B102", record.BoxCode)
	}
}

// Rango invertido: se acota al día inicial en vez de rechazarse.
func TestInvertedRangeClampsToSingleDay(t *testing.T) {
	rut := "66666666K"
	service := newTestService(testPorts{
		directory: &fakeDirectory{doctors: []domain.Doctor{{Rut: rut}}},
		slots: &fakeWeeklySlots{slots: []domain.WeeklySlot{
			{DoctorRut: rut, Day: domain.WeekdayTuesday, Start: "09:00", End: "10:00", BoxCode: "B101"},
			{DoctorRut: rut, Day: domain.WeekdayWednesday, Start: "09:00", End: "10:00", BoxCode: "B101"},
		}},
	})

	records, err := service.ComputeAvailability(context.Background(), domain.AvailabilityQuery{
		DateFrom:  "2025-03-04",
		DateTo:    "2025-03-01",
		DoctorRut: rut,
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2025-03-04", records[0].Date.String())
}

// El rango se trunca silenciosamente al tope configurado.
func TestRangeTruncatedToCap(t *testing.T) {
	rut := "77777777K"
	service := newTestService(testPorts{
		directory: &fakeDirectory{doctors: []domain.Doctor{{Rut: rut}}},
		slots: &fakeWeeklySlots{slots: []domain.WeeklySlot{
			{DoctorRut: rut, Day: domain.WeekdayTuesday, Start: "09:00", End: "10:00", BoxCode: "B101"},
		}},
	})
	service.cfg.Engine.MaxRangeDays = 7

	// Dos semanas pedidas, una sola entra en el tope
	records, err := service.ComputeAvailability(context.Background(), domain.AvailabilityQuery{
		DateFrom:  "2025-03-03",
		DateTo:    "2025-03-16",
		DoctorRut: rut,
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2025-03-04", records[0].Date.String())
}

// Una plantilla con hora malformada se salta sin abortar el cálculo.
func TestMalformedSlotSkipped(t *testing.T) {
	rut := "88888888K"
	service := newTestService(testPorts{
		directory: &fakeDirectory{doctors: []domain.Doctor{{Rut: rut}}},
		slots: &fakeWeeklySlots{slots: []domain.WeeklySlot{
			{DoctorRut: rut, Day: domain.WeekdayTuesday, Start: "9h00", End: "10:00", BoxCode: "B101"},
			{DoctorRut: rut, Day: domain.WeekdayTuesday, Start: "11:00", End: "12:00", BoxCode: "B101"},
		}},
	})

	records, err := service.ComputeAvailability(context.Background(), domain.AvailabilityQuery{
		DateFrom:  "2025-03-04",
		DoctorRut: rut,
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "11:00", records[0].Start.String())
}

// La salida queda ordenada por (fecha, inicio) aunque los días se expandan
// en paralelo.
func TestRecordsSortedByDateAndStart(t *testing.T) {
	rut := "99999999K"
	service := newTestService(testPorts{
		directory: &fakeDirectory{doctors: []domain.Doctor{{Rut: rut}}},
		slots: &fakeWeeklySlots{slots: []domain.WeeklySlot{
			{DoctorRut: rut, Day: domain.WeekdayThursday, Start: "14:00", End: "15:00", BoxCode: "B101"},
			{DoctorRut: rut, Day: domain.WeekdayTuesday, Start: "16:00", End: "17:00", BoxCode: "B101"},
			{DoctorRut: rut, Day: domain.WeekdayTuesday, Start: "08:00", End: "09:00", BoxCode: "B102"},
		}},
	})

	records, err := service.ComputeAvailability(context.Background(), domain.AvailabilityQuery{
		DateFrom:  "2025-03-03",
		DateTo:    "2025-03-09",
		DoctorRut: rut,
	})
	require.NoError(t, err)
	require.Len(t, records, 3)

	for i := 1; i < len(records); i++ {
		previous := records[i-1].Date.String() + " " + records[i-1].Start.String()
		current := records[i].Date.String() + " " + records[i].Start.String()
		assert.LessOrEqual(t, previous, current)
	}
}

// La caída de un colaborador es la única clase fatal: error y sin parciales.
func TestCollaboratorFailureIsFatal(t *testing.T) {
	service := newTestService(testPorts{
		directory: &fakeDirectory{err: errors.New("store unavailable")},
	})

	records, err := service.ComputeAvailability(context.Background(), domain.AvailabilityQuery{
		DateFrom: "2025-03-04",
	})
	assert.Error(t, err)
	assert.Nil(t, records)
}
