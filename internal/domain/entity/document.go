package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de documento genérico (tabla documents).
const (
	DocumentTypeFacture  = "facture"
	DocumentTypeProforma = "proforma"
	DocumentTypeDevis    = "devis"
)

// Estados de documentos y facturas. El conjunto válido depende de la clase de documento.
const (
	StatusBrouillon = "brouillon"
	StatusEnvoyee   = "envoyee"
	StatusEnAttente = "en_attente"
	StatusEnRetard  = "en_retard"
	StatusPayee     = "payee"
	StatusAcceptee  = "acceptee"
	StatusRefusee   = "refusee"
	StatusExpiree   = "expiree"
)

// PendingStatuses estados considerados "en attente de paiement" en el dashboard.
// Incluye los valores heredados en inglés que aún existen en datos antiguos.
var PendingStatuses = []string{
	StatusEnAttente, StatusEnvoyee, StatusEnRetard,
	"pending", "sent", "overdue",
}

// Document representa un documento genérico (factura, proforma o presupuesto).
// MontantHT/TVA/TTC son los importes almacenados; cuando hay líneas se recalculan siempre
// a partir de ellas (ver billing.DocumentTotals).
type Document struct {
	ID           int64
	Type         string
	Numero       string
	ClientID     *int64
	EntrepriseID *int64
	Devise       string
	DateEmission *time.Time
	DateDocument *time.Time // fecha alternativa de los registros heredados
	DateEcheance *time.Time
	Statut       string
	Categorie    string // vacío = "classique"
	Description  string
	MontantHT    decimal.Decimal
	MontantTVA   decimal.Decimal
	MontantTTC   decimal.Decimal
	Lines        []Line
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
