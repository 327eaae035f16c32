package domain

type BoxStatus string

const (
	BoxStatusAvailable BoxStatus = "available"
	BoxStatusBlocked   BoxStatus = "blocked"
)

// Box es una sala de atención agendable. Se referencia por código,
// el catálogo pertenece a un colaborador externo.
type Box struct {
	Code      string    `json:"code"`
	Floor     int       `json:"floor"`
	Specialty string    `json:"specialty"`
	Status    BoxStatus `json:"status"`
}
