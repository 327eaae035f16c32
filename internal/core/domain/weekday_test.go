package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeWeekdayName(t *testing.T) {
	cases := map[string]Weekday{
		"Jueves":    WeekdayThursday,
		"jueves":    WeekdayThursday,
		"LUNES":     WeekdayMonday,
		"lun":       WeekdayMonday,
		"mié":       WeekdayWednesday,
		"miercoles": WeekdayWednesday,
		"sábado":    WeekdaySaturday,
		"dom":       WeekdaySunday,
		"4":         WeekdayThursday,
		"0":         WeekdaySunday,
		"":          WeekdayNone,
		"feriado":   WeekdayNone,
		"9":         WeekdayNone,
	}

	for input, expected := range cases {
		assert.Equal(t, expected, NormalizeWeekdayName(input), "input %q", input)
	}
}

func TestNormalizeWeekdayInt(t *testing.T) {
	assert.Equal(t, WeekdaySunday, NormalizeWeekdayInt(0))
	assert.Equal(t, WeekdayThursday, NormalizeWeekdayInt(4))
	assert.Equal(t, WeekdaySunday, NormalizeWeekdayInt(7))
	assert.Equal(t, WeekdayNone, NormalizeWeekdayInt(8))
	assert.Equal(t, WeekdayNone, NormalizeWeekdayInt(-1))
}

func TestWeekdayOf(t *testing.T) {
	// 2025-03-03 es lunes, 2025-03-09 es domingo
	monday := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, WeekdayMonday, WeekdayOf(monday))
	assert.Equal(t, WeekdaySunday, WeekdayOf(monday.AddDate(0, 0, 6)))
}

func TestWeekdayUnmarshalPolymorphic(t *testing.T) {
	var fromNumber Weekday
	require.NoError(t, json.Unmarshal([]byte(`4`), &fromNumber))

	var fromName Weekday
	require.NoError(t, json.Unmarshal([]byte(`"Jueves"`), &fromName))

	assert.Equal(t, fromNumber, fromName)
	assert.Equal(t, WeekdayThursday, fromName)

	var unknown Weekday
	require.NoError(t, json.Unmarshal([]byte(`"festivo"`), &unknown))
	assert.Equal(t, WeekdayNone, unknown)
}
