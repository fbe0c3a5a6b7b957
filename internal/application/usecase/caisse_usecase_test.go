package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/heraclion-api/internal/application/dto"
	"github.com/jhoicas/heraclion-api/internal/application/usecase"
	"github.com/jhoicas/heraclion-api/internal/domain"
	"github.com/jhoicas/heraclion-api/internal/domain/entity"
)

func newCaisseUC() (*usecase.CaisseUseCase, *fakeCaisseRepo, *countingNotifier) {
	repo := &fakeCaisseRepo{}
	n := &countingNotifier{}
	return usecase.NewCaisseUseCase(repo, fakeCaisseTx{repo: repo}, n, zerolog.Nop()), repo, n
}

func writeSeed(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCaisseUseCase_SortieSeGuardaNegativa(t *testing.T) {
	uc, _, n := newCaisseUC()
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CaisseOperationRequest{Type: entity.CaisseEntree, Montant: decimal.RequireFromString("500"), Libelle: "Apport"})
	require.NoError(t, err)
	out, err := uc.Create(ctx, dto.CaisseOperationRequest{Type: entity.CaisseSortie, Montant: decimal.RequireFromString("120.456"), Libelle: "Péage"})
	require.NoError(t, err)
	assert.True(t, out.Montant.Equal(decimal.RequireFromString("-120.46")))

	bal, err := uc.Balance(ctx)
	require.NoError(t, err)
	assert.True(t, bal.Solde.Equal(decimal.RequireFromString("379.54")))
	assert.Equal(t, int64(2), bal.Operations)
	assert.Equal(t, 2, n.n)
}

func TestCaisseUseCase_MontantNoPositivo(t *testing.T) {
	uc, _, _ := newCaisseUC()
	_, err := uc.Create(context.Background(), dto.CaisseOperationRequest{Type: entity.CaisseEntree, Montant: decimal.Zero, Libelle: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(context.Background(), dto.CaisseOperationRequest{Type: "virement", Montant: decimal.NewFromInt(1), Libelle: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCaisseUseCase_SeedSoloSiVacia(t *testing.T) {
	uc, repo, _ := newCaisseUC()
	ctx := context.Background()
	path := writeSeed(t, "caisse.json", `{"operations": [
		{"type": "entree", "montant": 1500, "libelle": "Fonds de caisse", "date": "2024-01-02"},
		{"type": "sortie", "montant": "45.90", "libelle": "Fournitures", "reference": "FRN-1"}
	]}`)

	n, err := uc.Seed(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, repo.ops, 2)
	assert.True(t, repo.ops[1].Montant.Equal(decimal.RequireFromString("-45.90")))
	assert.Equal(t, 2024, repo.ops[0].Date.Year())

	again, err := uc.Seed(ctx, path)
	require.NoError(t, err)
	assert.Zero(t, again)
	assert.Len(t, repo.ops, 2)
}

func TestCaisseUseCase_SeedYAML(t *testing.T) {
	uc, repo, _ := newCaisseUC()
	path := writeSeed(t, "caisse.yaml", "operations:\n  - type: entree\n    montant: 200.5\n    libelle: Ouverture\n")

	n, err := uc.Seed(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, repo.ops[0].Montant.Equal(decimal.RequireFromString("200.5")))
}

func TestCaisseUseCase_SeedInvalidoNoInsertaNada(t *testing.T) {
	uc, repo, _ := newCaisseUC()
	path := writeSeed(t, "caisse.json", `{"operations": [
		{"type": "entree", "montant": 10, "libelle": "ok"},
		{"type": "entree", "montant": "abc", "libelle": "ko"}
	]}`)

	_, err := uc.Seed(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, repo.ops)

	n, err := uc.Seed(context.Background(), "")
	require.NoError(t, err)
	assert.Zero(t, n)
}
