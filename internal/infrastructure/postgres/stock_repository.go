package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/heraclion-api/internal/domain"
	"github.com/jhoicas/heraclion-api/internal/domain/entity"
	"github.com/jhoicas/heraclion-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre la tabla principal (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `id, COALESCE(reference, ''), COALESCE(designation, ''), COALESCE(quantite, 0),
	COALESCE(seuil_alerte, 0), COALESCE(prix_unitaire, 0), created_at, COALESCE(updated_at, created_at)`

func scanStock(row pgx.Row) (*entity.StockArticle, error) {
	var a entity.StockArticle
	if err := row.Scan(&a.ID, &a.Reference, &a.Designation, &a.Quantite, &a.SeuilAlerte,
		&a.PrixUnitaire, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create persiste un nuevo artículo.
func (r *StockRepo) Create(ctx context.Context, a *entity.StockArticle) error {
	query := `
		INSERT INTO stock (reference, designation, quantite, seuil_alerte, prix_unitaire, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		a.Reference, a.Designation, a.Quantite, a.SeuilAlerte, a.PrixUnitaire, a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID)
	if err != nil {
		return wrapErr("insert stock", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID; nil si no existe.
func (r *StockRepo) GetByID(ctx context.Context, id int64) (*entity.StockArticle, error) {
	a, err := scanStock(r.q.QueryRow(ctx, `SELECT `+stockColumns+` FROM stock WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get stock", err)
	}
	return a, nil
}

// List lista artículos por referencia con paginación.
func (r *StockRepo) List(ctx context.Context, limit, offset int) ([]*entity.StockArticle, error) {
	rows, err := r.q.Query(ctx, `SELECT `+stockColumns+` FROM stock ORDER BY reference, id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, wrapErr("list stock", err)
	}
	defer rows.Close()
	var list []*entity.StockArticle
	for rows.Next() {
		a, err := scanStock(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, a)
	}
	return list, wrapErr("list stock", rows.Err())
}

// UpdateQuantity fija la cantidad disponible de un artículo.
func (r *StockRepo) UpdateQuantity(ctx context.Context, id int64, quantite decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `UPDATE stock SET quantite = $2, updated_at = $3 WHERE id = $1`, id, quantite, time.Now())
	if err != nil {
		return wrapErr("update quantite", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
