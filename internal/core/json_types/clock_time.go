package json_types

import (
	"encoding/json"
	"strings"
)

// ClockTime es una hora de pared "HH:MM" con granularidad de minutos.
// No se valida al deserializar: un registro con hora malformada se descarta
// en el motor, no debe abortar el decode del lote completo.
type ClockTime string

func (t *ClockTime) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	// Aceptamos "HH:MM:SS" y lo recortamos a minutos
	if len(str) == 8 && strings.Count(str, ":") == 2 {
		str = str[:5]
	}

	*t = ClockTime(str)
	return nil
}

func (t ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t ClockTime) String() string {
	return string(t)
}
