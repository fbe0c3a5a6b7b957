package billing_test

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/heraclion-api/internal/domain"
	"github.com/jhoicas/heraclion-api/internal/domain/entity"
	"github.com/jhoicas/heraclion-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de repositorio
// ──────────────────────────────────────────────────────────────────────────────

type fakeDocumentRepo struct {
	mu     sync.Mutex
	docs   map[int64]entity.Document
	nextID int64
	lineID int64
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: map[int64]entity.Document{}}
}

func cloneDoc(d entity.Document) entity.Document {
	d.Lines = append([]entity.Line(nil), d.Lines...)
	return d
}

func (r *fakeDocumentRepo) assignLineIDs(doc *entity.Document) {
	for i := range doc.Lines {
		if doc.Lines[i].ID == 0 {
			r.lineID++
			doc.Lines[i].ID = r.lineID
		}
		doc.Lines[i].DocumentID = doc.ID
	}
}

func (r *fakeDocumentRepo) Create(_ context.Context, doc *entity.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.docs {
		if d.Type == doc.Type && d.Numero == doc.Numero {
			return domain.ErrDuplicate
		}
	}
	r.nextID++
	doc.ID = r.nextID
	r.assignLineIDs(doc)
	r.docs[doc.ID] = cloneDoc(*doc)
	return nil
}

func (r *fakeDocumentRepo) Update(_ context.Context, doc *entity.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[doc.ID]; !ok {
		return domain.ErrNotFound
	}
	r.assignLineIDs(doc)
	r.docs[doc.ID] = cloneDoc(*doc)
	return nil
}

func (r *fakeDocumentRepo) GetByID(_ context.Context, id int64) (*entity.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok {
		return nil, nil
	}
	c := cloneDoc(d)
	return &c, nil
}

func (r *fakeDocumentRepo) List(_ context.Context, f repository.DocumentFilter) ([]*entity.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Document
	for id := int64(1); id <= r.nextID; id++ {
		d, ok := r.docs[id]
		if !ok || (f.Type != "" && d.Type != f.Type) {
			continue
		}
		c := cloneDoc(d)
		out = append(out, &c)
	}
	return out, nil
}

func (r *fakeDocumentRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.docs, id)
	return nil
}

// fakeDocTx ejecuta fn sobre el repo y restaura el estado anterior si fn falla.
type fakeDocTx struct {
	repo *fakeDocumentRepo
}

func (tx fakeDocTx) RunDocument(ctx context.Context, fn func(docs repository.DocumentRepository) error) error {
	tx.repo.mu.Lock()
	snapshot := make(map[int64]entity.Document, len(tx.repo.docs))
	for k, v := range tx.repo.docs {
		snapshot[k] = cloneDoc(v)
	}
	tx.repo.mu.Unlock()
	if err := fn(tx.repo); err != nil {
		tx.repo.mu.Lock()
		tx.repo.docs = snapshot
		tx.repo.mu.Unlock()
		return err
	}
	return nil
}

type fakeInvoiceRepo struct {
	mu      sync.Mutex
	rows    map[string][]entity.InvoiceRow
	errs    map[string]error
	updates int
}

func (r *fakeInvoiceRepo) ListInvoices(_ context.Context, source string) ([]entity.InvoiceRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.errs[source]; err != nil {
		return nil, err
	}
	return append([]entity.InvoiceRow(nil), r.rows[source]...), nil
}

func (r *fakeInvoiceRepo) GetInvoice(_ context.Context, source string, id int64) (*entity.InvoiceRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.errs[source]; err != nil {
		return nil, err
	}
	for _, row := range r.rows[source] {
		if row.ID == id {
			c := row
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeInvoiceRepo) UpdateStatus(_ context.Context, source string, id int64, statut string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, row := range r.rows[source] {
		if row.ID == id {
			r.rows[source][i].Statut = statut
			r.updates++
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeClientRepo struct {
	list []*entity.Client
	err  error
}

func (r *fakeClientRepo) Create(context.Context, *entity.Client) error { return nil }
func (r *fakeClientRepo) GetByID(_ context.Context, id int64) (*entity.Client, error) {
	for _, c := range r.list {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}
func (r *fakeClientRepo) List(context.Context, int, int) ([]*entity.Client, error) { return r.list, r.err }
func (r *fakeClientRepo) ListAll(context.Context) ([]*entity.Client, error)        { return r.list, r.err }
func (r *fakeClientRepo) Update(context.Context, *entity.Client) error             { return nil }
func (r *fakeClientRepo) Delete(context.Context, int64) error                      { return nil }

type fakeCaisseRepo struct {
	ops     []*entity.CaisseOperation
	failErr error
}

func (r *fakeCaisseRepo) Create(_ context.Context, op *entity.CaisseOperation) error {
	if r.failErr != nil {
		return r.failErr
	}
	op.ID = int64(len(r.ops) + 1)
	r.ops = append(r.ops, op)
	return nil
}
func (r *fakeCaisseRepo) List(context.Context, int, int) ([]*entity.CaisseOperation, error) {
	return r.ops, nil
}
func (r *fakeCaisseRepo) Count(context.Context) (int64, error) { return int64(len(r.ops)), nil }
func (r *fakeCaisseRepo) Balance(context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, op := range r.ops {
		total = total.Add(op.Montant)
	}
	return total, nil
}

// fakePaymentTx revierte estado de facturas y caja si fn falla.
type fakePaymentTx struct {
	invoices *fakeInvoiceRepo
	caisse   *fakeCaisseRepo
}

func (tx fakePaymentTx) RunPayment(ctx context.Context, fn func(repository.InvoiceSourceRepository, repository.CaisseRepository) error) error {
	tx.invoices.mu.Lock()
	saved := map[string][]entity.InvoiceRow{}
	for k, v := range tx.invoices.rows {
		saved[k] = append([]entity.InvoiceRow(nil), v...)
	}
	tx.invoices.mu.Unlock()
	savedOps := append([]*entity.CaisseOperation(nil), tx.caisse.ops...)

	if err := fn(tx.invoices, tx.caisse); err != nil {
		tx.invoices.mu.Lock()
		tx.invoices.rows = saved
		tx.invoices.mu.Unlock()
		tx.caisse.ops = savedOps
		return err
	}
	return nil
}

type countingNotifier struct {
	mu    sync.Mutex
	count int
}

func (n *countingNotifier) Trigger() {
	n.mu.Lock()
	n.count++
	n.mu.Unlock()
}

func (n *countingNotifier) Count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.count
}

var errBoom = errors.New("connexion perdue")
