package utils

import (
	"fmt"
	"time"

	"github.com/clinibox/box-availability-service/internal/config"
)

// ParseDay parsea una fecha "2006-01-02" en la zona horaria de la clínica.
// Si falla, prueba RFC3339 y fecha con hora sin zona horaria.
func ParseDay(str string) (time.Time, error) {
	parsedDate, err := time.ParseInLocation("2006-01-02", str, config.TimeZone)
	if err != nil {
		parsedDate, err = time.Parse(time.RFC3339, str)
		if err != nil {
			parsedDate, err = time.ParseInLocation("2006-01-02T15:04:05", str, config.TimeZone)
			if err != nil {
				return time.Time{}, fmt.Errorf("failed to parse date: %v", err)
			}
		}
	}

	return StartCurrentDay(parsedDate), nil
}

func StartCurrentDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartNextDay retorna la fecha con el día aumentado en 1 y la hora en 00:00.
func StartNextDay(t time.Time) time.Time {
	newDate := t.AddDate(0, 0, 1)
	return time.Date(newDate.Year(), newDate.Month(), newDate.Day(), 0, 0, 0, 0, newDate.Location())
}

// DayKey formatea la fecha como clave de índice "2006-01-02".
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
