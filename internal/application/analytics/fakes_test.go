package analytics_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/heraclion-api/internal/application/dto"
	"github.com/jhoicas/heraclion-api/internal/domain"
	"github.com/jhoicas/heraclion-api/internal/domain/entity"
)

// fakeDashboardRepo devuelve valores fijos por fuente; errs indexa por "metodo:fuente".
type fakeDashboardRepo struct {
	invoices   map[string]int64
	sums       map[string]decimal.Decimal
	proformas  map[string]int64
	pending    map[string]int64
	clients    int64
	entreprise int64
	caisse     decimal.Decimal
	stock      map[string]int64
	activity   map[string][]entity.ActivityRow
	alerts     map[string][]entity.StockArticle
	errs       map[string]error
}

func missing(table string) error {
	return fmt.Errorf("query %s: %w", table, domain.ErrTableMissing)
}

func (r *fakeDashboardRepo) err(key string) error {
	if r.errs == nil {
		return nil
	}
	return r.errs[key]
}

func (r *fakeDashboardRepo) InvoiceStats(ctx context.Context, source string) (int64, decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return 0, decimal.Zero, err
	}
	if err := r.err("invoices:" + source); err != nil {
		return 0, decimal.Zero, err
	}
	return r.invoices[source], r.sums[source], nil
}

func (r *fakeDashboardRepo) CountProformas(_ context.Context, source string) (int64, error) {
	return r.proformas[source], r.err("proformas:" + source)
}

func (r *fakeDashboardRepo) CountPendingInvoices(_ context.Context, source string, statuses []string) (int64, error) {
	return r.pending[source], r.err("pending:" + source)
}

func (r *fakeDashboardRepo) CountClients(context.Context) (int64, error) {
	return r.clients, r.err("clients")
}

func (r *fakeDashboardRepo) CountEntreprises(context.Context) (int64, error) {
	return r.entreprise, r.err("entreprises")
}

func (r *fakeDashboardRepo) CaisseBalance(context.Context) (decimal.Decimal, error) {
	return r.caisse, r.err("caisse")
}

func (r *fakeDashboardRepo) CountStockArticles(_ context.Context, table string) (int64, error) {
	if err := r.err("stock:" + table); err != nil {
		return 0, err
	}
	return r.stock[table], nil
}

func (r *fakeDashboardRepo) RecentActivity(_ context.Context, source string, limit int) ([]entity.ActivityRow, error) {
	if err := r.err("activity:" + source); err != nil {
		return nil, err
	}
	rows := r.activity[source]
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (r *fakeDashboardRepo) StockAlerts(_ context.Context, table string) ([]entity.StockArticle, error) {
	if err := r.err("alerts:" + table); err != nil {
		return nil, err
	}
	return r.alerts[table], nil
}

// fakeBroadcaster registra los mensajes difundidos.
type fakeBroadcaster struct {
	mu   sync.Mutex
	msgs [][]byte
}

func (b *fakeBroadcaster) Broadcast(payload []byte) {
	b.mu.Lock()
	b.msgs = append(b.msgs, payload)
	b.mu.Unlock()
}

func (b *fakeBroadcaster) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.msgs)
}

type staticSnapshot struct{}

func (staticSnapshot) Snapshot(context.Context) (*dto.DashboardUpdateMessage, error) {
	return &dto.DashboardUpdateMessage{
		Type: dto.DashboardUpdateType,
		Data: dto.DashboardUpdateData{Activities: []dto.ActivityDTO{}},
	}, nil
}

type denyGate struct{}

func (denyGate) TryAcquire(context.Context, time.Duration) (bool, error) { return false, nil }
