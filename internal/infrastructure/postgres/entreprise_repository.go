package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/heraclion-api/internal/domain/entity"
	"github.com/jhoicas/heraclion-api/internal/domain/repository"
)

var _ repository.EntrepriseRepository = (*EntrepriseRepo)(nil)

// EntrepriseRepo implementación de EntrepriseRepository (usable con pool o tx).
type EntrepriseRepo struct {
	q Querier
}

// NewEntrepriseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEntrepriseRepository(q Querier) *EntrepriseRepo {
	return &EntrepriseRepo{q: q}
}

const entrepriseColumns = `id, nom, COALESCE(siret, ''), COALESCE(adresse, ''), COALESCE(email, ''),
	COALESCE(telephone, ''), created_at, updated_at`

func scanEntreprise(row pgx.Row) (*entity.Entreprise, error) {
	var e entity.Entreprise
	if err := row.Scan(&e.ID, &e.Nom, &e.Siret, &e.Adresse, &e.Email, &e.Telephone,
		&e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

// Create persiste una nueva empresa. SIRET vacío se guarda como NULL.
func (r *EntrepriseRepo) Create(ctx context.Context, e *entity.Entreprise) error {
	query := `
		INSERT INTO entreprises (nom, siret, adresse, email, telephone, created_at, updated_at)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		e.Nom, e.Siret, e.Adresse, e.Email, e.Telephone, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	if err != nil {
		return wrapErr("insert entreprise", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID; nil si no existe.
func (r *EntrepriseRepo) GetByID(ctx context.Context, id int64) (*entity.Entreprise, error) {
	return r.getOne(ctx, `SELECT `+entrepriseColumns+` FROM entreprises WHERE id = $1`, id)
}

// GetBySiret obtiene una empresa por SIRET; nil si no existe.
func (r *EntrepriseRepo) GetBySiret(ctx context.Context, siret string) (*entity.Entreprise, error) {
	return r.getOne(ctx, `SELECT `+entrepriseColumns+` FROM entreprises WHERE siret = $1`, siret)
}

func (r *EntrepriseRepo) getOne(ctx context.Context, query string, arg any) (*entity.Entreprise, error) {
	e, err := scanEntreprise(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get entreprise", err)
	}
	return e, nil
}

// List lista empresas con paginación.
func (r *EntrepriseRepo) List(ctx context.Context, limit, offset int) ([]*entity.Entreprise, error) {
	rows, err := r.q.Query(ctx, `SELECT `+entrepriseColumns+` FROM entreprises ORDER BY nom, id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, wrapErr("list entreprises", err)
	}
	defer rows.Close()
	var list []*entity.Entreprise
	for rows.Next() {
		e, err := scanEntreprise(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entreprise: %w", err)
		}
		list = append(list, e)
	}
	return list, wrapErr("list entreprises", rows.Err())
}
