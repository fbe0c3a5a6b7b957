package usecase_test

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/heraclion-api/internal/domain"
	"github.com/jhoicas/heraclion-api/internal/domain/entity"
	"github.com/jhoicas/heraclion-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeClientRepo struct {
	items  map[int64]*entity.Client
	nextID int64
}

func newFakeClientRepo() *fakeClientRepo { return &fakeClientRepo{items: map[int64]*entity.Client{}} }

func (r *fakeClientRepo) Create(_ context.Context, c *entity.Client) error {
	r.nextID++
	c.ID = r.nextID
	cp := *c
	r.items[c.ID] = &cp
	return nil
}
func (r *fakeClientRepo) GetByID(_ context.Context, id int64) (*entity.Client, error) {
	c, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}
func (r *fakeClientRepo) List(_ context.Context, limit, offset int) ([]*entity.Client, error) {
	var out []*entity.Client
	for id := int64(1); id <= r.nextID; id++ {
		if c, ok := r.items[id]; ok {
			out = append(out, c)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
func (r *fakeClientRepo) ListAll(ctx context.Context) ([]*entity.Client, error) {
	return r.List(ctx, len(r.items), 0)
}
func (r *fakeClientRepo) Update(_ context.Context, c *entity.Client) error {
	if _, ok := r.items[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	r.items[c.ID] = &cp
	return nil
}
func (r *fakeClientRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeEntrepriseRepo struct {
	items []*entity.Entreprise
}

func (r *fakeEntrepriseRepo) Create(_ context.Context, e *entity.Entreprise) error {
	e.ID = int64(len(r.items) + 1)
	r.items = append(r.items, e)
	return nil
}
func (r *fakeEntrepriseRepo) GetByID(_ context.Context, id int64) (*entity.Entreprise, error) {
	for _, e := range r.items {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}
func (r *fakeEntrepriseRepo) GetBySiret(_ context.Context, siret string) (*entity.Entreprise, error) {
	for _, e := range r.items {
		if e.Siret == siret {
			return e, nil
		}
	}
	return nil, nil
}
func (r *fakeEntrepriseRepo) List(context.Context, int, int) ([]*entity.Entreprise, error) {
	return r.items, nil
}

type fakeStockRepo struct {
	items map[int64]*entity.StockArticle
}

func (r *fakeStockRepo) Create(_ context.Context, a *entity.StockArticle) error {
	for _, it := range r.items {
		if it.Reference == a.Reference {
			return domain.ErrDuplicate
		}
	}
	a.ID = int64(len(r.items) + 1)
	r.items[a.ID] = a
	return nil
}
func (r *fakeStockRepo) GetByID(_ context.Context, id int64) (*entity.StockArticle, error) {
	return r.items[id], nil
}
func (r *fakeStockRepo) List(context.Context, int, int) ([]*entity.StockArticle, error) {
	var out []*entity.StockArticle
	for _, a := range r.items {
		out = append(out, a)
	}
	return out, nil
}
func (r *fakeStockRepo) UpdateQuantity(_ context.Context, id int64, q decimal.Decimal) error {
	a, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.Quantite = q
	return nil
}

type fakeCaisseRepo struct {
	mu  sync.Mutex
	ops []*entity.CaisseOperation
}

func (r *fakeCaisseRepo) Create(_ context.Context, op *entity.CaisseOperation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
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

type fakeCaisseTx struct{ repo *fakeCaisseRepo }

func (tx fakeCaisseTx) RunCaisse(_ context.Context, fn func(repository.CaisseRepository) error) error {
	saved := append([]*entity.CaisseOperation(nil), tx.repo.ops...)
	if err := fn(tx.repo); err != nil {
		tx.repo.ops = saved
		return err
	}
	return nil
}

type countingNotifier struct{ n int }

func (c *countingNotifier) Trigger() { c.n++ }
