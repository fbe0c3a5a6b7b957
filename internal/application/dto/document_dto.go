package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/heraclion-api/internal/domain/billing"
)

// LineRequest línea en el cuerpo de POST/PUT /api/documents y POST /api/documents/:id/lignes.
// Los importes de entrada se decodifican de forma tolerante (ver billing.Amount).
type LineRequest struct {
	Designation string `json:"designation" validate:"max=500"`
	billing.LineInput
	Tonnage *billing.Amount `json:"tonnage,omitempty"`
}

// CreateDocumentRequest body para POST /api/documents y PUT /api/documents/:id.
// MontantHT/TVA/TTC solo se usan cuando el documento no tiene líneas.
type CreateDocumentRequest struct {
	Type         string         `json:"type" validate:"required,oneof=facture proforma devis"`
	Numero       string         `json:"numero" validate:"required,max=50"`
	ClientID     *int64         `json:"client_id"`
	EntrepriseID *int64         `json:"entreprise_id"`
	Devise       string         `json:"devise" validate:"omitempty,len=3"`
	DateEmission *Date          `json:"date_emission"`
	DateEcheance *Date          `json:"date_echeance"`
	Statut       string         `json:"statut" validate:"omitempty,oneof=brouillon envoyee en_attente en_retard payee acceptee refusee expiree"`
	Categorie    string         `json:"categorie" validate:"max=50"`
	Description  string         `json:"description"`
	MontantHT    billing.Amount `json:"montant_ht"`
	MontantTVA   billing.Amount `json:"montant_tva"`
	MontantTTC   billing.Amount `json:"montant_ttc"`
	Lignes       []LineRequest  `json:"lignes" validate:"dive"`
}

// LineResponse línea con sus importes derivados.
type LineResponse struct {
	ID                   int64            `json:"id"`
	Position             int              `json:"position"`
	Designation          string           `json:"designation"`
	Quantite             decimal.Decimal  `json:"quantite"`
	PrixUnitaire         decimal.Decimal  `json:"prix_unitaire"`
	TauxTVA              decimal.Decimal  `json:"taux_tva"`
	FraisSupplementaires decimal.Decimal  `json:"frais_supplementaires"`
	Tonnage              *decimal.Decimal `json:"tonnage,omitempty"`
	MontantHT            decimal.Decimal  `json:"montant_ht"`
	MontantTVA           decimal.Decimal  `json:"montant_tva"`
	MontantTTC           decimal.Decimal  `json:"montant_ttc"`
}

// DocumentResponse documento con totales y líneas.
type DocumentResponse struct {
	ID           int64           `json:"id"`
	Type         string          `json:"type"`
	Numero       string          `json:"numero"`
	ClientID     *int64          `json:"client_id"`
	EntrepriseID *int64          `json:"entreprise_id"`
	Devise       string          `json:"devise"`
	DateEmission *Date           `json:"date_emission"`
	DateEcheance *Date           `json:"date_echeance"`
	Statut       string          `json:"statut"`
	Categorie    string          `json:"categorie"`
	Description  string          `json:"description"`
	MontantHT    decimal.Decimal `json:"montant_ht"`
	MontantTVA   decimal.Decimal `json:"montant_tva"`
	MontantTTC   decimal.Decimal `json:"montant_ttc"`
	Lignes       []LineResponse  `json:"lignes"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// LinePreviewResponse respuesta de POST /api/calcul/ligne: entradas normalizadas + importes.
type LinePreviewResponse struct {
	Quantite             decimal.Decimal `json:"quantite"`
	PrixUnitaire         decimal.Decimal `json:"prix_unitaire"`
	TauxTVA              decimal.Decimal `json:"taux_tva"`
	FraisSupplementaires decimal.Decimal `json:"frais_supplementaires"`
	billing.LineAmounts
}

// PaymentResponse respuesta de POST /api/factures/:source/:id/payer.
type PaymentResponse struct {
	Source    string                  `json:"source"`
	FactureID int64                   `json:"facture_id"`
	Numero    string                  `json:"numero"`
	Statut    string                  `json:"statut"`
	Operation CaisseOperationResponse `json:"operation"`
}
