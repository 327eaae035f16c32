package domain

import "strings"

type Doctor struct {
	Rut       string   `json:"rut"`
	Name      string   `json:"name"`
	Specialty string   `json:"specialty"`
	Floors    []int    `json:"floors"`
	Boxes     []string `json:"boxes"`
}

// NormalizeRut canonicaliza un RUT a dígitos más dígito verificador,
// sin puntos ni guión, para que "12.345.678-k" y "12345678K" comparen igual.
func NormalizeRut(rut string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(rut) {
		if (r >= '0' && r <= '9') || r == 'K' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func SameRut(a, b string) bool {
	return NormalizeRut(a) == NormalizeRut(b)
}
