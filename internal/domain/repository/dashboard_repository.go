package repository

import (
	"context"

	"github.com/jhoicas/heraclion-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DashboardRepository consultas de solo lectura para el dashboard.
// Cada método toca una sola tabla, de modo que el caso de uso pueda aislar fallos por fuente.
// Una tabla inexistente se señala con un error que envuelve domain.ErrTableMissing.
type DashboardRepository interface {
	// InvoiceStats cuenta y suma las facturas de una fuente (entity.Source*).
	InvoiceStats(ctx context.Context, source string) (count int64, total decimal.Decimal, err error)
	// CountProformas cuenta proformas: ítems de las tablas especializadas o documentos type=proforma.
	CountProformas(ctx context.Context, source string) (int64, error)
	CountPendingInvoices(ctx context.Context, source string, statuses []string) (int64, error)
	CountClients(ctx context.Context) (int64, error)
	CountEntreprises(ctx context.Context) (int64, error)
	CaisseBalance(ctx context.Context) (decimal.Decimal, error)
	// CountStockArticles cuenta artículos en la tabla indicada (StockTablePrimary o StockTableLegacy).
	CountStockArticles(ctx context.Context, table string) (int64, error)
	// RecentActivity devuelve las `limit` filas más recientes de una fuente (entity.Activity*).
	RecentActivity(ctx context.Context, source string, limit int) ([]entity.ActivityRow, error)
	// StockAlerts devuelve los artículos con quantite <= seuil_alerte.
	StockAlerts(ctx context.Context, table string) ([]entity.StockArticle, error)
}
