package dto

import "github.com/jhoicas/heraclion-api/internal/domain/entity"

// NewDocumentResponse mapea un documento (con sus líneas) a la respuesta HTTP.
func NewDocumentResponse(d *entity.Document) *DocumentResponse {
	out := &DocumentResponse{
		ID:           d.ID,
		Type:         d.Type,
		Numero:       d.Numero,
		ClientID:     d.ClientID,
		EntrepriseID: d.EntrepriseID,
		Devise:       d.Devise,
		DateEmission: DateFrom(d.DateEmission),
		DateEcheance: DateFrom(d.DateEcheance),
		Statut:       d.Statut,
		Categorie:    d.Categorie,
		Description:  d.Description,
		MontantHT:    d.MontantHT,
		MontantTVA:   d.MontantTVA,
		MontantTTC:   d.MontantTTC,
		Lignes:       make([]LineResponse, 0, len(d.Lines)),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	for _, l := range d.Lines {
		out.Lignes = append(out.Lignes, LineResponse{
			ID:                   l.ID,
			Position:             l.Position,
			Designation:          l.Designation,
			Quantite:             l.Quantite,
			PrixUnitaire:         l.PrixUnitaire,
			TauxTVA:              l.TauxTVA,
			FraisSupplementaires: l.FraisSupplementaires,
			Tonnage:              l.Tonnage,
			MontantHT:            l.MontantHT,
			MontantTVA:           l.MontantTVA,
			MontantTTC:           l.MontantTTC,
		})
	}
	return out
}

// NewClientResponse mapea un cliente.
func NewClientResponse(c *entity.Client) *ClientResponse {
	return &ClientResponse{
		ID:           c.ID,
		Nom:          c.Nom,
		Prenom:       c.Prenom,
		Email:        c.Email,
		Telephone:    c.Telephone,
		Adresse:      c.Adresse,
		EntrepriseID: c.EntrepriseID,
		CreatedAt:    c.CreatedAt,
	}
}

// NewEntrepriseResponse mapea una empresa.
func NewEntrepriseResponse(e *entity.Entreprise) *EntrepriseResponse {
	return &EntrepriseResponse{
		ID:        e.ID,
		Nom:       e.Nom,
		Siret:     e.Siret,
		Adresse:   e.Adresse,
		Email:     e.Email,
		Telephone: e.Telephone,
		CreatedAt: e.CreatedAt,
	}
}

// NewStockArticleResponse mapea un artículo de stock.
func NewStockArticleResponse(a *entity.StockArticle) *StockArticleResponse {
	return &StockArticleResponse{
		ID:           a.ID,
		Reference:    a.Reference,
		Designation:  a.Designation,
		Quantite:     a.Quantite,
		SeuilAlerte:  a.SeuilAlerte,
		PrixUnitaire: a.PrixUnitaire,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// NewCaisseOperationResponse mapea una operación de caja.
func NewCaisseOperationResponse(op *entity.CaisseOperation) CaisseOperationResponse {
	return CaisseOperationResponse{
		ID:        op.ID,
		Type:      op.Type,
		Montant:   op.Montant,
		Libelle:   op.Libelle,
		Reference: op.Reference,
		Date:      op.Date,
	}
}
