package entity

import "time"

// Client representa un cliente facturable.
type Client struct {
	ID           int64
	Nom          string
	Prenom       string
	Email        string
	Telephone    string
	Adresse      string
	EntrepriseID *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
