package entity

import "time"

// Entreprise representa una empresa (emisora o cliente corporativo).
type Entreprise struct {
	ID        int64
	Nom       string
	Siret     string
	Adresse   string
	Email     string
	Telephone string
	CreatedAt time.Time
	UpdatedAt time.Time
}
