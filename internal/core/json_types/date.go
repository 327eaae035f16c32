package json_types

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/clinibox/box-availability-service/internal/config"
)

func parseDate(str string) (time.Time, error) {
	// Primero probamos el formato corto de agenda, es el que manda el front
	parsedDate, err := time.ParseInLocation("2006-01-02", str, config.TimeZone)
	if err != nil {
		// Si no funciona, probamos RFC3339 y fecha con hora sin zona horaria
		parsedDate, err = time.Parse(time.RFC3339, str)
		if err != nil {
			parsedDate, err = time.ParseInLocation("2006-01-02T15:04:05", str, config.TimeZone)
			if err != nil {
				return time.Time{}, fmt.Errorf("failed to parse date: %v", err)
			}
		}
	}

	return parsedDate, nil
}

type Date struct {
	Date time.Time
}

func NewDate(t time.Time) Date {
	return Date{Date: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())}
}

func (t *Date) UnmarshalJSON(data []byte) error {
	// Quitamos las comillas alrededor del string
	str := string(data[1 : len(data)-1])

	parsedDate, err := parseDate(str)
	if err != nil {
		return err
	}

	*t = Date{Date: parsedDate}
	return nil
}

func (t Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Date.Format("2006-01-02"))
}

func (t Date) String() string {
	return t.Date.Format("2006-01-02")
}
