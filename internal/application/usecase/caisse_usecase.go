package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/jhoicas/heraclion-api/internal/application/dto"
	"github.com/jhoicas/heraclion-api/internal/domain"
	"github.com/jhoicas/heraclion-api/internal/domain/entity"
	"github.com/jhoicas/heraclion-api/internal/domain/repository"
)

// CaisseUseCase casos de uso de la caja: operaciones, saldo y carga inicial.
type CaisseUseCase struct {
	repo     repository.CaisseRepository
	txRunner CaisseTxRunner
	notifier DashboardNotifier
	log      zerolog.Logger
}

// NewCaisseUseCase construye el caso de uso. notifier puede ser nil.
func NewCaisseUseCase(repo repository.CaisseRepository, txRunner CaisseTxRunner, notifier DashboardNotifier, log zerolog.Logger) *CaisseUseCase {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &CaisseUseCase{repo: repo, txRunner: txRunner, notifier: notifier, log: log}
}

// newOperation valida la petición y aplica el signo: las salidas se guardan negativas.
func newOperation(in dto.CaisseOperationRequest, now time.Time) (*entity.CaisseOperation, error) {
	if in.Type != entity.CaisseEntree && in.Type != entity.CaisseSortie {
		return nil, domain.ErrInvalidInput
	}
	if !in.Montant.IsPositive() || strings.TrimSpace(in.Libelle) == "" {
		return nil, domain.ErrInvalidInput
	}
	montant := in.Montant.Round(2)
	if in.Type == entity.CaisseSortie {
		montant = montant.Neg()
	}
	date := now
	if d := in.Date.Ptr(); d != nil {
		date = *d
	}
	return &entity.CaisseOperation{
		Type:      in.Type,
		Montant:   montant,
		Libelle:   strings.TrimSpace(in.Libelle),
		Reference: strings.TrimSpace(in.Reference),
		Date:      date,
		CreatedAt: now,
	}, nil
}

// Create registra una operación de caja.
func (uc *CaisseUseCase) Create(ctx context.Context, in dto.CaisseOperationRequest) (*dto.CaisseOperationResponse, error) {
	op, err := newOperation(in, time.Now())
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, op); err != nil {
		return nil, err
	}
	uc.notifier.Trigger()
	out := dto.NewCaisseOperationResponse(op)
	return &out, nil
}

// List lista operaciones, las más recientes primero.
func (uc *CaisseUseCase) List(ctx context.Context, limit, offset int) ([]dto.CaisseOperationResponse, error) {
	limit, offset = normalizePage(limit, offset)
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CaisseOperationResponse, 0, len(list))
	for _, op := range list {
		out = append(out, dto.NewCaisseOperationResponse(op))
	}
	return out, nil
}

// Balance devuelve el saldo de la caja y el número de operaciones.
func (uc *CaisseUseCase) Balance(ctx context.Context) (*dto.CaisseBalanceResponse, error) {
	solde, err := uc.repo.Balance(ctx)
	if err != nil {
		return nil, err
	}
	n, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.CaisseBalanceResponse{Solde: solde.Round(2), Operations: n}, nil
}

// seedOperation entrada del archivo de seed. Montant y Date llegan como texto
// (viper convierte los números) y se parsean aquí.
type seedOperation struct {
	Type      string `mapstructure:"type"`
	Montant   string `mapstructure:"montant"`
	Libelle   string `mapstructure:"libelle"`
	Reference string `mapstructure:"reference"`
	Date      string `mapstructure:"date"`
}

// LoadSeedFile lee las operaciones de un archivo JSON/YAML con la forma {"operations": [...]}.
func LoadSeedFile(path string) ([]dto.CaisseOperationRequest, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("lecture seed caisse %s: %w", path, err)
	}
	var raw []seedOperation
	if err := v.UnmarshalKey("operations", &raw); err != nil {
		return nil, fmt.Errorf("seed caisse %s: %w", path, err)
	}
	out := make([]dto.CaisseOperationRequest, 0, len(raw))
	for i, r := range raw {
		montant, err := decimal.NewFromString(strings.TrimSpace(r.Montant))
		if err != nil {
			return nil, fmt.Errorf("%w: seed caisse opération %d: montant %q", domain.ErrInvalidInput, i+1, r.Montant)
		}
		req := dto.CaisseOperationRequest{
			Type:      strings.ToLower(strings.TrimSpace(r.Type)),
			Montant:   montant,
			Libelle:   r.Libelle,
			Reference: r.Reference,
		}
		if r.Date != "" {
			var d dto.Date
			if err := d.UnmarshalJSON([]byte(`"` + r.Date + `"`)); err != nil {
				return nil, fmt.Errorf("%w: seed caisse opération %d: %v", domain.ErrInvalidInput, i+1, err)
			}
			req.Date = &d
		}
		out = append(out, req)
	}
	return out, nil
}

// Seed inserta las operaciones del archivo si la caja está vacía. Devuelve cuántas insertó.
// Sin archivo configurado no hace nada. Todas las operaciones van en una sola transacción.
func (uc *CaisseUseCase) Seed(ctx context.Context, path string) (int, error) {
	if path == "" {
		return 0, nil
	}
	n, err := uc.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		uc.log.Info().Int64("operations", n).Msg("caisse: déjà alimentée, seed ignoré")
		return 0, nil
	}
	reqs, err := LoadSeedFile(path)
	if err != nil {
		return 0, err
	}
	now := time.Now()
	ops := make([]*entity.CaisseOperation, 0, len(reqs))
	for i, r := range reqs {
		op, err := newOperation(r, now)
		if err != nil {
			return 0, fmt.Errorf("seed caisse opération %d: %w", i+1, err)
		}
		ops = append(ops, op)
	}
	err = uc.txRunner.RunCaisse(ctx, func(caisse repository.CaisseRepository) error {
		for _, op := range ops {
			if err := caisse.Create(ctx, op); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	uc.log.Info().Int("operations", len(ops)).Str("file", path).Msg("caisse: seed chargé")
	return len(ops), nil
}
