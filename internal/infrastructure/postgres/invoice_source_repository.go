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

var _ repository.InvoiceSourceRepository = (*InvoiceSourceRepo)(nil)

// invoiceTable describe cómo leer una de las tres tablas de facturas con columnas comunes.
type invoiceTable struct {
	name      string
	totalCol  string
	altDate   string
	categorie string
	filter    string
}

var invoiceTables = map[string]invoiceTable{
	entity.SourceDocument: {
		name: "documents", totalCol: "montant_ttc", altDate: "date_document",
		categorie: "COALESCE(categorie, '')", filter: "type = 'facture'",
	},
	entity.SourceTransport: {
		name: "factures_transport", totalCol: "total_general", altDate: "date_facture",
		categorie: "''", filter: "TRUE",
	},
	entity.SourceNonTransport: {
		name: "factures_non_transport", totalCol: "total_general", altDate: "date_facture",
		categorie: "''", filter: "TRUE",
	},
}

func invoiceTableFor(source string) (invoiceTable, error) {
	t, ok := invoiceTables[source]
	if !ok {
		return invoiceTable{}, fmt.Errorf("%w: source de facture %q", domain.ErrInvalidInput, source)
	}
	return t, nil
}

func (t invoiceTable) selectColumns() string {
	return fmt.Sprintf(`id, COALESCE(numero, ''), client_id, entreprise_id, date_emission, %s, date_echeance,
		COALESCE(%s, 0), COALESCE(statut, ''), %s, COALESCE(description, ''), created_at`,
		t.altDate, t.totalCol, t.categorie)
}

// InvoiceSourceRepo implementación de InvoiceSourceRepository (usable con pool o tx).
type InvoiceSourceRepo struct {
	q Querier
}

// NewInvoiceSourceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceSourceRepository(q Querier) *InvoiceSourceRepo {
	return &InvoiceSourceRepo{q: q}
}

func scanInvoiceRow(row pgx.Row) (entity.InvoiceRow, error) {
	var r entity.InvoiceRow
	err := row.Scan(&r.ID, &r.Numero, &r.ClientID, &r.EntrepriseID, &r.DateEmission, &r.AltDate,
		&r.DateEcheance, &r.Total, &r.Statut, &r.Categorie, &r.Description, &r.CreatedAt)
	return r, err
}

// ListInvoices devuelve todas las facturas de una fuente, sin orden particular.
func (r *InvoiceSourceRepo) ListInvoices(ctx context.Context, source string) ([]entity.InvoiceRow, error) {
	t, err := invoiceTableFor(source)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s`, t.selectColumns(), t.name, t.filter)
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, wrapErr("list "+t.name, err)
	}
	defer rows.Close()
	var list []entity.InvoiceRow
	for rows.Next() {
		inv, err := scanInvoiceRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.name, err)
		}
		list = append(list, inv)
	}
	return list, wrapErr("list "+t.name, rows.Err())
}

// GetInvoice obtiene una factura por ID dentro de su fuente; nil si no existe.
func (r *InvoiceSourceRepo) GetInvoice(ctx context.Context, source string, id int64) (*entity.InvoiceRow, error) {
	t, err := invoiceTableFor(source)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 AND %s FOR UPDATE`, t.selectColumns(), t.name, t.filter)
	inv, err := scanInvoiceRow(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get "+t.name, err)
	}
	return &inv, nil
}

// UpdateStatus cambia el estado de una factura.
func (r *InvoiceSourceRepo) UpdateStatus(ctx context.Context, source string, id int64, statut string) error {
	t, err := invoiceTableFor(source)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`UPDATE %s SET statut = $2 WHERE id = $1 AND %s`, t.name, t.filter)
	tag, err := r.q.Exec(ctx, query, id, statut)
	if err != nil {
		return wrapErr("update statut "+t.name, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
