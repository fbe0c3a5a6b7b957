package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/heraclion-api/internal/domain"
	"github.com/jhoicas/heraclion-api/internal/domain/entity"
	"github.com/jhoicas/heraclion-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementación de DocumentRepository (usable con pool o tx).
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

const documentColumns = `id, type, numero, client_id, entreprise_id, COALESCE(devise, 'EUR'),
	date_emission, date_document, date_echeance, COALESCE(statut, ''), COALESCE(categorie, ''),
	COALESCE(description, ''), COALESCE(montant_ht, 0), COALESCE(montant_tva, 0), COALESCE(montant_ttc, 0),
	created_at, updated_at`

const lineColumns = `id, document_id, position, COALESCE(designation, ''), quantite, prix_unitaire, taux_tva,
	frais_supplementaires, tonnage, montant_ht, montant_tva, montant_ttc`

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var d entity.Document
	err := row.Scan(&d.ID, &d.Type, &d.Numero, &d.ClientID, &d.EntrepriseID, &d.Devise,
		&d.DateEmission, &d.DateDocument, &d.DateEcheance, &d.Statut, &d.Categorie,
		&d.Description, &d.MontantHT, &d.MontantTVA, &d.MontantTTC, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create persiste cabecera y líneas. Asigna los IDs generados.
func (r *DocumentRepo) Create(ctx context.Context, doc *entity.Document) error {
	query := `
		INSERT INTO documents (type, numero, client_id, entreprise_id, devise, date_emission, date_document,
			date_echeance, statut, categorie, description, montant_ht, montant_tva, montant_ttc, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		doc.Type, doc.Numero, doc.ClientID, doc.EntrepriseID, doc.Devise, doc.DateEmission, doc.DateDocument,
		doc.DateEcheance, doc.Statut, doc.Categorie, doc.Description, doc.MontantHT, doc.MontantTVA, doc.MontantTTC,
		doc.CreatedAt, doc.UpdatedAt,
	).Scan(&doc.ID)
	if err != nil {
		return wrapErr("insert document", err)
	}
	return r.insertLines(ctx, doc)
}

// Update reemplaza la cabecera y el conjunto completo de líneas.
func (r *DocumentRepo) Update(ctx context.Context, doc *entity.Document) error {
	query := `
		UPDATE documents SET type = $2, numero = $3, client_id = $4, entreprise_id = $5, devise = $6,
			date_emission = $7, date_echeance = $8, statut = $9, categorie = $10, description = $11,
			montant_ht = $12, montant_tva = $13, montant_ttc = $14, updated_at = $15
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		doc.ID, doc.Type, doc.Numero, doc.ClientID, doc.EntrepriseID, doc.Devise,
		doc.DateEmission, doc.DateEcheance, doc.Statut, doc.Categorie, doc.Description,
		doc.MontantHT, doc.MontantTVA, doc.MontantTTC, doc.UpdatedAt,
	)
	if err != nil {
		return wrapErr("update document", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM document_lignes WHERE document_id = $1`, doc.ID); err != nil {
		return wrapErr("delete lignes", err)
	}
	return r.insertLines(ctx, doc)
}

func (r *DocumentRepo) insertLines(ctx context.Context, doc *entity.Document) error {
	query := `
		INSERT INTO document_lignes (document_id, position, designation, quantite, prix_unitaire, taux_tva,
			frais_supplementaires, tonnage, montant_ht, montant_tva, montant_ttc)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`
	for i := range doc.Lines {
		l := &doc.Lines[i]
		l.DocumentID = doc.ID
		err := r.q.QueryRow(ctx, query,
			doc.ID, l.Position, l.Designation, l.Quantite, l.PrixUnitaire, l.TauxTVA,
			l.FraisSupplementaires, l.Tonnage, l.MontantHT, l.MontantTVA, l.MontantTTC,
		).Scan(&l.ID)
		if err != nil {
			return wrapErr("insert ligne", err)
		}
	}
	return nil
}

// GetByID obtiene un documento con sus líneas; nil si no existe.
func (r *DocumentRepo) GetByID(ctx context.Context, id int64) (*entity.Document, error) {
	doc, err := scanDocument(r.q.QueryRow(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get document", err)
	}
	lines, err := r.linesFor(ctx, []int64{doc.ID})
	if err != nil {
		return nil, err
	}
	doc.Lines = lines[doc.ID]
	return doc, nil
}

// List lista documentos (más recientes primero) con sus líneas, cargadas en una sola consulta.
func (r *DocumentRepo) List(ctx context.Context, f repository.DocumentFilter) ([]*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents
		WHERE ($1 = '' OR type = $1)
		ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, f.Type, f.Limit, f.Offset)
	if err != nil {
		return nil, wrapErr("list documents", err)
	}
	defer rows.Close()
	var list []*entity.Document
	var ids []int64
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, d)
		ids = append(ids, d.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list documents", err)
	}
	if len(ids) == 0 {
		return list, nil
	}
	lines, err := r.linesFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, d := range list {
		d.Lines = lines[d.ID]
	}
	return list, nil
}

func (r *DocumentRepo) linesFor(ctx context.Context, ids []int64) (map[int64][]entity.Line, error) {
	rows, err := r.q.Query(ctx, `SELECT `+lineColumns+` FROM document_lignes
		WHERE document_id = ANY($1) ORDER BY document_id, position, id`, ids)
	if err != nil {
		return nil, wrapErr("list lignes", err)
	}
	defer rows.Close()
	out := make(map[int64][]entity.Line, len(ids))
	for rows.Next() {
		var l entity.Line
		if err := rows.Scan(&l.ID, &l.DocumentID, &l.Position, &l.Designation, &l.Quantite, &l.PrixUnitaire,
			&l.TauxTVA, &l.FraisSupplementaires, &l.Tonnage, &l.MontantHT, &l.MontantTVA, &l.MontantTTC); err != nil {
			return nil, fmt.Errorf("scan ligne: %w", err)
		}
		out[l.DocumentID] = append(out[l.DocumentID], l)
	}
	return out, wrapErr("list lignes", rows.Err())
}

// Delete elimina un documento y sus líneas.
func (r *DocumentRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM document_lignes WHERE document_id = $1`, id); err != nil {
		return wrapErr("delete lignes", err)
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return wrapErr("delete document", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
