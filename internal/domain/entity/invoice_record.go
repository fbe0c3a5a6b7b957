package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Orígenes de factura manejados por el merger y el dashboard.
const (
	SourceDocument     = "document"
	SourceTransport    = "transport"
	SourceNonTransport = "non_transport"
)

// Categorías de factura normalizadas.
const (
	CategoryClassique    = "classique"
	CategoryTransport    = "transport"
	CategoryNonTransport = "non_transport"
)

// InvoiceRow fila cruda de una de las tres tablas de facturas, antes de normalizar.
// DateEmission es la columna explícita; AltDate la fecha propia de cada tabla
// (date_document o date_facture).
type InvoiceRow struct {
	ID           int64
	Numero       string
	ClientID     *int64
	EntrepriseID *int64
	DateEmission *time.Time
	AltDate      *time.Time
	DateEcheance *time.Time
	Total        decimal.Decimal
	Statut       string
	Categorie    string
	Description  string
	CreatedAt    time.Time
}

// InvoiceRecord factura normalizada producida por el merger (GET /api/all-factures).
type InvoiceRecord struct {
	ID               int64           `json:"id"`
	Numero           string          `json:"numero"`
	ClientID         *int64          `json:"client_id"`
	ClientNom        string          `json:"client_nom"`
	ClientPrenom     string          `json:"client_prenom"`
	ClientEmail      string          `json:"client_email"`
	EntrepriseID     *int64          `json:"entreprise_id"`
	DateEmission     *time.Time      `json:"date_emission"`
	DateEcheance     *time.Time      `json:"date_echeance"`
	MontantTotal     decimal.Decimal `json:"montant_total"`
	Statut           string          `json:"statut"`
	CategorieFacture string          `json:"categorie_facture"`
	SourceType       string          `json:"source_type"`
	CreatedAt        time.Time       `json:"created_at"`
	Description      string          `json:"description"`
}

// SortDate fecha usada para ordenar: date_emission si existe, si no created_at.
func (r InvoiceRecord) SortDate() time.Time {
	if r.DateEmission != nil {
		return *r.DateEmission
	}
	return r.CreatedAt
}
