package availability_service

import "github.com/clinibox/box-availability-service/internal/core/domain"

type RecordSlice []domain.AvailabilityRecord

// Clave de orden (fecha, hora de inicio). Ambas van con relleno de ceros,
// el orden lexicográfico coincide con el cronológico.
func recordKey(r domain.AvailabilityRecord) string {
	return r.Date.String() + " " + r.Start.String()
}

// quickSort ordena RecordSlice por (fecha asc, inicio asc)
func (s RecordSlice) quickSort() RecordSlice {
	if len(s) < 2 {
		return s
	}

	// Elegimos el elemento pivote
	pivot := recordKey(s[len(s)/2])

	// Partimos el slice en tres
	less := RecordSlice{}
	equal := RecordSlice{}
	greater := RecordSlice{}

	for _, record := range s {
		key := recordKey(record)
		if key < pivot {
			less = append(less, record)
		} else if key == pivot {
			equal = append(equal, record)
		} else {
			greater = append(greater, record)
		}
	}

	// Ordenamos recursivamente y concatenamos
	return append(append(less.quickSort(), equal...), greater.quickSort()...)
}
