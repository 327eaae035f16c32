package domain

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Weekday normalizado 1=lunes..7=domingo. El valor 0 es el centinela
// "no reconocido" y no coincide con ningún día real.
type Weekday int

const (
	WeekdayNone      Weekday = 0
	WeekdayMonday    Weekday = 1
	WeekdayTuesday   Weekday = 2
	WeekdayWednesday Weekday = 3
	WeekdayThursday  Weekday = 4
	WeekdayFriday    Weekday = 5
	WeekdaySaturday  Weekday = 6
	WeekdaySunday    Weekday = 7
)

var weekdayPrefixes = []struct {
	prefix string
	day    Weekday
}{
	{"lun", WeekdayMonday},
	{"mar", WeekdayTuesday},
	{"mie", WeekdayWednesday},
	{"jue", WeekdayThursday},
	{"vie", WeekdayFriday},
	{"sab", WeekdaySaturday},
	{"dom", WeekdaySunday},
}

var accentReplacer = strings.NewReplacer("á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u")

// NormalizeWeekdayInt acepta 0=domingo (se mapea a 7) y 1..7 tal cual.
func NormalizeWeekdayInt(value int) Weekday {
	if value == 0 {
		return WeekdaySunday
	}
	if value >= 1 && value <= 7 {
		return Weekday(value)
	}
	return WeekdayNone
}

// NormalizeWeekdayName acepta nombres localizados ("Jueves", "mié") por
// coincidencia de prefijo, sin distinguir mayúsculas ni tildes.
func NormalizeWeekdayName(value string) Weekday {
	name := accentReplacer.Replace(strings.ToLower(strings.TrimSpace(value)))
	if name == "" {
		return WeekdayNone
	}

	if num, err := strconv.Atoi(name); err == nil {
		return NormalizeWeekdayInt(num)
	}

	for _, entry := range weekdayPrefixes {
		if strings.HasPrefix(name, entry.prefix) {
			return entry.day
		}
	}

	return WeekdayNone
}

// WeekdayOf convierte el día de la semana de una fecha al rango 1..7.
func WeekdayOf(t time.Time) Weekday {
	if t.Weekday() == time.Sunday {
		return WeekdaySunday
	}
	return Weekday(int(t.Weekday()))
}

// La entrada polimórfica (número o nombre localizado) se normaliza una sola
// vez al ingerir, aguas abajo solo circula el entero 1..7.
func (w *Weekday) UnmarshalJSON(data []byte) error {
	var num int
	if err := json.Unmarshal(data, &num); err == nil {
		*w = NormalizeWeekdayInt(num)
		return nil
	}

	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}

	*w = NormalizeWeekdayName(name)
	return nil
}

func (w Weekday) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(w))
}
