package entity

import "time"

// Company representa una organización/tenant del sistema. Toda entidad de
// inventario está particionada por CompanyID.
type Company struct {
	ID        string
	Name      string
	NIT       string // identificación tributaria (con o sin dígito de verificación)
	Address   string
	Phone     string
	Email     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
