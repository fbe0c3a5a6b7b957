package billing

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/heraclion-api/internal/application/dto"
	"github.com/jhoicas/heraclion-api/internal/domain"
	calc "github.com/jhoicas/heraclion-api/internal/domain/billing"
	"github.com/jhoicas/heraclion-api/internal/domain/entity"
	"github.com/jhoicas/heraclion-api/internal/domain/repository"
)

const defaultDevise = "EUR"

// DocumentUseCase casos de uso de documentos genéricos y sus líneas.
// Toda mutación de líneas recalcula importes de línea y totales antes de persistir.
type DocumentUseCase struct {
	repo     repository.DocumentRepository
	txRunner DocumentTxRunner
	notifier DashboardNotifier
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(repo repository.DocumentRepository, txRunner DocumentTxRunner) *DocumentUseCase {
	return &DocumentUseCase{repo: repo, txRunner: txRunner, notifier: noopNotifier{}}
}

// WithNotifier registra el notificador del dashboard (facturas nuevas cambian las métricas).
func (uc *DocumentUseCase) WithNotifier(n DashboardNotifier) *DocumentUseCase {
	if n != nil {
		uc.notifier = n
	}
	return uc
}

// Create crea un documento con sus líneas en una transacción.
func (uc *DocumentUseCase) Create(ctx context.Context, in dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	doc, err := documentFromRequest(in)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	doc.CreatedAt, doc.UpdatedAt = now, now
	calc.Recalculate(doc)

	if err := uc.txRunner.RunDocument(ctx, func(docs repository.DocumentRepository) error {
		return docs.Create(ctx, doc)
	}); err != nil {
		return nil, err
	}
	uc.notifier.Trigger()
	return dto.NewDocumentResponse(doc), nil
}

// Update reemplaza cabecera y líneas de un documento existente.
func (uc *DocumentUseCase) Update(ctx context.Context, id int64, in dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	doc, err := documentFromRequest(in)
	if err != nil {
		return nil, err
	}
	doc.ID = id
	err = uc.txRunner.RunDocument(ctx, func(docs repository.DocumentRepository) error {
		existing, err := docs.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		doc.CreatedAt = existing.CreatedAt
		doc.DateDocument = existing.DateDocument
		doc.UpdatedAt = time.Now()
		calc.Recalculate(doc)
		return docs.Update(ctx, doc)
	})
	if err != nil {
		return nil, err
	}
	uc.notifier.Trigger()
	return dto.NewDocumentResponse(doc), nil
}

// Get obtiene un documento. Los totales devueltos salen siempre de las líneas si las hay.
func (uc *DocumentUseCase) Get(ctx context.Context, id int64) (*dto.DocumentResponse, error) {
	doc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	applyTotals(doc)
	return dto.NewDocumentResponse(doc), nil
}

// List lista documentos, opcionalmente filtrados por tipo.
func (uc *DocumentUseCase) List(ctx context.Context, docType string, page dto.PageRequest) ([]*dto.DocumentResponse, error) {
	if docType != "" && !validDocumentType(docType) {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	list, err := uc.repo.List(ctx, repository.DocumentFilter{Type: docType, Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.DocumentResponse, 0, len(list))
	for _, d := range list {
		applyTotals(d)
		out = append(out, dto.NewDocumentResponse(d))
	}
	return out, nil
}

// Delete elimina un documento y sus líneas.
func (uc *DocumentUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.txRunner.RunDocument(ctx, func(docs repository.DocumentRepository) error {
		return docs.Delete(ctx, id)
	}); err != nil {
		return err
	}
	uc.notifier.Trigger()
	return nil
}

// AddLine agrega una línea al final del documento y recalcula sus totales.
func (uc *DocumentUseCase) AddLine(ctx context.Context, id int64, in dto.LineRequest) (*dto.DocumentResponse, error) {
	return uc.mutateLines(ctx, id, func(doc *entity.Document) error {
		doc.Lines = append(doc.Lines, lineFromRequest(in))
		return nil
	})
}

// DeleteLine elimina una línea del documento y recalcula sus totales.
// Si era la última línea, los totales almacenados quedan en cero.
func (uc *DocumentUseCase) DeleteLine(ctx context.Context, id, lineID int64) (*dto.DocumentResponse, error) {
	return uc.mutateLines(ctx, id, func(doc *entity.Document) error {
		for i, l := range doc.Lines {
			if l.ID == lineID {
				doc.Lines = append(doc.Lines[:i], doc.Lines[i+1:]...)
				if len(doc.Lines) == 0 {
					doc.MontantHT, doc.MontantTVA, doc.MontantTTC = decimal.Zero, decimal.Zero, decimal.Zero
				}
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

func (uc *DocumentUseCase) mutateLines(ctx context.Context, id int64, mutate func(doc *entity.Document) error) (*dto.DocumentResponse, error) {
	var doc *entity.Document
	err := uc.txRunner.RunDocument(ctx, func(docs repository.DocumentRepository) error {
		var err error
		doc, err = docs.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		if err := mutate(doc); err != nil {
			return err
		}
		doc.UpdatedAt = time.Now()
		calc.Recalculate(doc)
		return docs.Update(ctx, doc)
	})
	if err != nil {
		return nil, err
	}
	uc.notifier.Trigger()
	return dto.NewDocumentResponse(doc), nil
}

// PreviewLine calcula una línea sin persistir nada (POST /api/calcul/ligne).
func (uc *DocumentUseCase) PreviewLine(in calc.LineInput) dto.LinePreviewResponse {
	qty, price, rate, frais := calc.Normalize(in)
	return dto.LinePreviewResponse{
		Quantite:             qty,
		PrixUnitaire:         price,
		TauxTVA:              rate,
		FraisSupplementaires: frais,
		LineAmounts:          calc.CalculateLine(in),
	}
}

// applyTotals alinea los totales leídos con las líneas (los datos antiguos pueden estar desfasados).
func applyTotals(doc *entity.Document) {
	t := calc.DocumentTotals(doc)
	doc.MontantHT, doc.MontantTVA, doc.MontantTTC = t.MontantHT, t.MontantTVA, t.MontantTTC
}

func validDocumentType(t string) bool {
	switch t {
	case entity.DocumentTypeFacture, entity.DocumentTypeProforma, entity.DocumentTypeDevis:
		return true
	}
	return false
}

func documentFromRequest(in dto.CreateDocumentRequest) (*entity.Document, error) {
	if !validDocumentType(in.Type) || strings.TrimSpace(in.Numero) == "" {
		return nil, domain.ErrInvalidInput
	}
	devise := strings.ToUpper(strings.TrimSpace(in.Devise))
	if devise == "" {
		devise = defaultDevise
	}
	statut := in.Statut
	if statut == "" {
		statut = entity.StatusBrouillon
	}
	doc := &entity.Document{
		Type:         in.Type,
		Numero:       strings.TrimSpace(in.Numero),
		ClientID:     in.ClientID,
		EntrepriseID: in.EntrepriseID,
		Devise:       devise,
		DateEmission: in.DateEmission.Ptr(),
		DateEcheance: in.DateEcheance.Ptr(),
		Statut:       statut,
		Categorie:    strings.TrimSpace(in.Categorie),
		Description:  in.Description,
		MontantHT:    in.MontantHT.Decimal(),
		MontantTVA:   in.MontantTVA.Decimal(),
		MontantTTC:   in.MontantTTC.Decimal(),
		Lines:        make([]entity.Line, 0, len(in.Lignes)),
	}
	for _, l := range in.Lignes {
		doc.Lines = append(doc.Lines, lineFromRequest(l))
	}
	return doc, nil
}

func lineFromRequest(in dto.LineRequest) entity.Line {
	l := entity.Line{
		Designation:          strings.TrimSpace(in.Designation),
		Quantite:             in.Quantite.Decimal(),
		PrixUnitaire:         in.PrixUnitaire.Decimal(),
		TauxTVA:              in.TauxTVA.Decimal(),
		FraisSupplementaires: in.FraisSupplementaires.Decimal(),
	}
	if in.Tonnage != nil {
		t := in.Tonnage.Decimal()
		l.Tonnage = &t
	}
	return l
}
