package availability_service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/clinibox/box-availability-service/internal/core/domain"
)

// Interval es un intervalo [Start, End) en minutos desde medianoche.
type Interval struct {
	Start int
	End   int
}

func (i Interval) Length() int {
	return i.End - i.Start
}

// ToMinutes parsea "HH:MM" a minutos desde medianoche.
func ToMinutes(hhmm string) (int, error) {
	parts := strings.Split(strings.TrimSpace(hhmm), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidTimeFormat, hhmm)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidTimeFormat, hhmm)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidTimeFormat, hhmm)
	}

	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidTimeFormat, hhmm)
	}

	return hours*60 + minutes, nil
}

// ToTimeString es la inversa de ToMinutes, con relleno de ceros.
// El llamador debe mantener el valor dentro de [0, 1440).
func ToTimeString(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// SubtractIntervals resta de base cada intervalo ocupado y retorna los
// sub-intervalos libres máximos, ordenados por inicio ascendente.
// Cada ocupado se recorta a base antes de restar, los invertidos o de largo
// cero se descartan. Los ocupados pueden traslaparse entre sí: la resta
// repetida los fusiona implícitamente. Todo resultado más corto que
// minDuration se elimina.
func SubtractIntervals(base Interval, busy []Interval, minDuration int) []Interval {
	free := []Interval{base}

	for _, b := range busy {
		// Recorte al intervalo base
		if b.Start < base.Start {
			b.Start = base.Start
		}
		if b.End > base.End {
			b.End = base.End
		}
		if b.End <= b.Start {
			continue
		}

		next := make([]Interval, 0, len(free)+1)
		for _, f := range free {
			if b.End <= f.Start || b.Start >= f.End {
				next = append(next, f)
				continue
			}
			if b.Start > f.Start {
				next = append(next, Interval{Start: f.Start, End: b.Start})
			}
			if b.End < f.End {
				next = append(next, Interval{Start: b.End, End: f.End})
			}
		}
		free = next
	}

	result := make([]Interval, 0, len(free))
	for _, f := range free {
		if f.Length() >= minDuration {
			result = append(result, f)
		}
	}

	return result
}
