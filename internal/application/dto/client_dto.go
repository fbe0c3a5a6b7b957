package dto

import "time"

// ClientRequest body para POST/PUT /api/clients.
type ClientRequest struct {
	Nom          string `json:"nom" validate:"required,max=150"`
	Prenom       string `json:"prenom" validate:"max=150"`
	Email        string `json:"email" validate:"omitempty,email"`
	Telephone    string `json:"telephone" validate:"max=30"`
	Adresse      string `json:"adresse"`
	EntrepriseID *int64 `json:"entreprise_id"`
}

// ClientResponse cliente en respuestas.
type ClientResponse struct {
	ID           int64     `json:"id"`
	Nom          string    `json:"nom"`
	Prenom       string    `json:"prenom"`
	Email        string    `json:"email"`
	Telephone    string    `json:"telephone"`
	Adresse      string    `json:"adresse"`
	EntrepriseID *int64    `json:"entreprise_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// EntrepriseRequest body para POST /api/entreprises.
type EntrepriseRequest struct {
	Nom       string `json:"nom" validate:"required,max=200"`
	Siret     string `json:"siret" validate:"omitempty,len=14,numeric"`
	Adresse   string `json:"adresse"`
	Email     string `json:"email" validate:"omitempty,email"`
	Telephone string `json:"telephone" validate:"max=30"`
}

// EntrepriseResponse empresa en respuestas.
type EntrepriseResponse struct {
	ID        int64     `json:"id"`
	Nom       string    `json:"nom"`
	Siret     string    `json:"siret"`
	Adresse   string    `json:"adresse"`
	Email     string    `json:"email"`
	Telephone string    `json:"telephone"`
	CreatedAt time.Time `json:"created_at"`
}
