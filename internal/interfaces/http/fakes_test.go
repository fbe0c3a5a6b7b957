package http_test

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/heraclion-api/internal/domain"
	"github.com/jhoicas/heraclion-api/internal/domain/entity"
	"github.com/jhoicas/heraclion-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de los puertos de persistencia
// ──────────────────────────────────────────────────────────────────────────────

type memDocuments struct {
	docs   map[int64]*entity.Document
	nextID int64
}

func newMemDocuments() *memDocuments { return &memDocuments{docs: map[int64]*entity.Document{}} }

func (r *memDocuments) Create(_ context.Context, doc *entity.Document) error {
	for _, d := range r.docs {
		if d.Type == doc.Type && d.Numero == doc.Numero {
			return fmt.Errorf("documents.Create: %w", domain.ErrDuplicate)
		}
	}
	r.nextID++
	doc.ID = r.nextID
	for i := range doc.Lines {
		doc.Lines[i].ID = int64(i + 1)
		doc.Lines[i].DocumentID = doc.ID
	}
	cp := *doc
	r.docs[doc.ID] = &cp
	return nil
}

func (r *memDocuments) Update(_ context.Context, doc *entity.Document) error {
	if _, ok := r.docs[doc.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *doc
	r.docs[doc.ID] = &cp
	return nil
}

func (r *memDocuments) GetByID(_ context.Context, id int64) (*entity.Document, error) {
	d, ok := r.docs[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	cp.Lines = append([]entity.Line(nil), d.Lines...)
	return &cp, nil
}

func (r *memDocuments) List(_ context.Context, f repository.DocumentFilter) ([]*entity.Document, error) {
	var out []*entity.Document
	for id := int64(1); id <= r.nextID; id++ {
		if d, ok := r.docs[id]; ok && (f.Type == "" || d.Type == f.Type) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *memDocuments) Delete(_ context.Context, id int64) error {
	if _, ok := r.docs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.docs, id)
	return nil
}

type memDocTx struct{ repo *memDocuments }

func (tx memDocTx) RunDocument(_ context.Context, fn func(repository.DocumentRepository) error) error {
	return fn(tx.repo)
}

type memCaisse struct{ ops []*entity.CaisseOperation }

func (r *memCaisse) Create(_ context.Context, op *entity.CaisseOperation) error {
	op.ID = int64(len(r.ops) + 1)
	r.ops = append(r.ops, op)
	return nil
}
func (r *memCaisse) List(context.Context, int, int) ([]*entity.CaisseOperation, error) {
	return r.ops, nil
}
func (r *memCaisse) Count(context.Context) (int64, error) { return int64(len(r.ops)), nil }
func (r *memCaisse) Balance(context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, op := range r.ops {
		total = total.Add(op.Montant)
	}
	return total, nil
}

type memCaisseTx struct{ repo *memCaisse }

func (tx memCaisseTx) RunCaisse(_ context.Context, fn func(repository.CaisseRepository) error) error {
	return fn(tx.repo)
}

// stubDashboard devuelve cifras fijas; las tablas listadas en missing no existen.
type stubDashboard struct {
	missing map[string]bool
}

func (s stubDashboard) check(table string) error {
	if s.missing[table] {
		return fmt.Errorf("query %s: %w", table, domain.ErrTableMissing)
	}
	return nil
}

func (s stubDashboard) InvoiceStats(_ context.Context, source string) (int64, decimal.Decimal, error) {
	if err := s.check(source); err != nil {
		return 0, decimal.Zero, err
	}
	return 2, decimal.NewFromInt(100), nil
}
func (s stubDashboard) CountProformas(_ context.Context, source string) (int64, error) {
	return 1, s.check("proformas_" + source)
}
func (s stubDashboard) CountPendingInvoices(_ context.Context, source string, _ []string) (int64, error) {
	return 1, s.check(source)
}
func (s stubDashboard) CountClients(context.Context) (int64, error) { return 4, nil }
func (s stubDashboard) CountEntreprises(context.Context) (int64, error) { return 2, nil }
func (s stubDashboard) CaisseBalance(context.Context) (decimal.Decimal, error) {
	return decimal.RequireFromString("250.75"), nil
}
func (s stubDashboard) CountStockArticles(_ context.Context, table string) (int64, error) {
	return 7, s.check(table)
}
func (s stubDashboard) RecentActivity(context.Context, string, int) ([]entity.ActivityRow, error) {
	return nil, nil
}
func (s stubDashboard) StockAlerts(_ context.Context, table string) ([]entity.StockArticle, error) {
	if err := s.check(table); err != nil {
		return nil, err
	}
	return []entity.StockArticle{{ID: 1, Reference: "GAS-01", Designation: "Gasoil",
		Quantite: decimal.Zero, SeuilAlerte: decimal.NewFromInt(10)}}, nil
}
