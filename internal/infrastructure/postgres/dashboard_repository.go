package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/heraclion-api/internal/domain"
	"github.com/jhoicas/heraclion-api/internal/domain/entity"
	"github.com/jhoicas/heraclion-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas de solo lectura del dashboard. Trabaja sobre el pool:
// cada consulta toma su propia conexión, así el caso de uso puede lanzarlas en paralelo.
type DashboardRepo struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository construye el adaptador del dashboard.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepo {
	return &DashboardRepo{pool: pool}
}

var proformaTables = map[string]string{
	entity.SourceTransport:    "proformas_transport",
	entity.SourceNonTransport: "proformas_non_transport",
}

// Consultas del feed de actividad. Todas devuelven (ref, label, kind, amount, quantity, date).
var activityQueries = map[string]string{
	entity.ActivityNonTransportInvoice: `
		SELECT COALESCE(numero, ''), '', COALESCE(statut, ''), COALESCE(total_general, 0), 0::numeric, created_at
		FROM factures_non_transport ORDER BY created_at DESC, id DESC LIMIT $1`,
	entity.ActivityTransportInvoice: `
		SELECT COALESCE(numero, ''), '', COALESCE(statut, ''), COALESCE(total_general, 0), 0::numeric, created_at
		FROM factures_transport ORDER BY created_at DESC, id DESC LIMIT $1`,
	entity.ActivityTransportProforma: `
		SELECT COALESCE(numero, ''), COALESCE(designation, ''), COALESCE(statut, ''), COALESCE(total_general, 0),
		       COALESCE(quantite, 0), created_at
		FROM proformas_transport ORDER BY created_at DESC, id DESC LIMIT $1`,
	entity.ActivityStock: `
		SELECT COALESCE(reference, ''), COALESCE(designation, ''), '', COALESCE(prix_unitaire, 0),
		       COALESCE(quantite, 0), COALESCE(updated_at, created_at)
		FROM stock ORDER BY COALESCE(updated_at, created_at) DESC, id DESC LIMIT $1`,
	entity.ActivityCaisse: `
		SELECT COALESCE(reference, ''), COALESCE(libelle, ''), type, montant, 0::numeric, date_operation
		FROM caisse_operations ORDER BY date_operation DESC, id DESC LIMIT $1`,
}

func stockTable(table string) (string, error) {
	switch table {
	case repository.StockTablePrimary, repository.StockTableLegacy:
		return table, nil
	}
	return "", fmt.Errorf("%w: table de stock %q", domain.ErrInvalidInput, table)
}

func (r *DashboardRepo) count(ctx context.Context, op, query string, args ...any) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, wrapErr(op, err)
	}
	return n, nil
}

// InvoiceStats cuenta y suma las facturas de una fuente.
func (r *DashboardRepo) InvoiceStats(ctx context.Context, source string) (int64, decimal.Decimal, error) {
	t, err := invoiceTableFor(source)
	if err != nil {
		return 0, decimal.Zero, err
	}
	query := fmt.Sprintf(`SELECT COUNT(*), COALESCE(SUM(%s), 0) FROM %s WHERE %s`, t.totalCol, t.name, t.filter)
	var (
		n     int64
		total decimal.Decimal
	)
	if err := r.pool.QueryRow(ctx, query).Scan(&n, &total); err != nil {
		return 0, decimal.Zero, wrapErr("dashboard.InvoiceStats "+source, err)
	}
	return n, total, nil
}

// CountProformas cuenta ítems de proforma (tablas especializadas) o documentos type=proforma.
func (r *DashboardRepo) CountProformas(ctx context.Context, source string) (int64, error) {
	if source == entity.SourceDocument {
		return r.count(ctx, "dashboard.CountProformas document",
			`SELECT COUNT(*) FROM documents WHERE type = 'proforma'`)
	}
	table, ok := proformaTables[source]
	if !ok {
		return 0, fmt.Errorf("%w: source de proforma %q", domain.ErrInvalidInput, source)
	}
	return r.count(ctx, "dashboard.CountProformas "+source, `SELECT COUNT(*) FROM `+table)
}

// CountPendingInvoices cuenta las facturas de una fuente cuyo estado está en statuses.
func (r *DashboardRepo) CountPendingInvoices(ctx context.Context, source string, statuses []string) (int64, error) {
	t, err := invoiceTableFor(source)
	if err != nil {
		return 0, err
	}
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s AND statut = ANY($1)`, t.name, t.filter)
	return r.count(ctx, "dashboard.CountPendingInvoices "+source, query, statuses)
}

func (r *DashboardRepo) CountClients(ctx context.Context) (int64, error) {
	return r.count(ctx, "dashboard.CountClients", `SELECT COUNT(*) FROM clients`)
}

func (r *DashboardRepo) CountEntreprises(ctx context.Context) (int64, error) {
	return r.count(ctx, "dashboard.CountEntreprises", `SELECT COUNT(*) FROM entreprises`)
}

// CaisseBalance devuelve SUM(montant) de la caja.
func (r *DashboardRepo) CaisseBalance(ctx context.Context) (decimal.Decimal, error) {
	return sumCaisse(ctx, r.pool)
}

// CountStockArticles cuenta artículos en la tabla indicada.
func (r *DashboardRepo) CountStockArticles(ctx context.Context, table string) (int64, error) {
	t, err := stockTable(table)
	if err != nil {
		return 0, err
	}
	return r.count(ctx, "dashboard.CountStockArticles "+t, `SELECT COUNT(*) FROM `+t)
}

// RecentActivity devuelve las filas más recientes de una fuente del feed.
func (r *DashboardRepo) RecentActivity(ctx context.Context, source string, limit int) ([]entity.ActivityRow, error) {
	query, ok := activityQueries[source]
	if !ok {
		return nil, fmt.Errorf("%w: source d'activité %q", domain.ErrInvalidInput, source)
	}
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, wrapErr("dashboard.RecentActivity "+source, err)
	}
	defer rows.Close()
	var list []entity.ActivityRow
	for rows.Next() {
		var a entity.ActivityRow
		if err := rows.Scan(&a.Ref, &a.Label, &a.Kind, &a.Amount, &a.Quantity, &a.Date); err != nil {
			return nil, fmt.Errorf("scan activité %s: %w", source, err)
		}
		list = append(list, a)
	}
	return list, wrapErr("dashboard.RecentActivity "+source, rows.Err())
}

// StockAlerts devuelve los artículos con quantite <= seuil_alerte, los más escasos primero.
func (r *DashboardRepo) StockAlerts(ctx context.Context, table string) ([]entity.StockArticle, error) {
	t, err := stockTable(table)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + stockColumns + ` FROM ` + t + `
		WHERE COALESCE(quantite, 0) <= COALESCE(seuil_alerte, 0)
		ORDER BY COALESCE(quantite, 0) ASC, id ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, wrapErr("dashboard.StockAlerts "+t, err)
	}
	defer rows.Close()
	var list []entity.StockArticle
	for rows.Next() {
		a, err := scanStock(rows)
		if err != nil {
			return nil, fmt.Errorf("scan alerte: %w", err)
		}
		list = append(list, *a)
	}
	return list, wrapErr("dashboard.StockAlerts "+t, rows.Err())
}
