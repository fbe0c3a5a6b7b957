// seed carga las operaciones de caja iniciales desde un archivo JSON/YAML.
//
// Uso: go run ./cmd/seed [ruta/caisse.json]
// Sin argumento usa CAISSE_SEED_FILE. No hace nada si la caja ya tiene operaciones.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/heraclion-api/internal/application/usecase"
	"github.com/jhoicas/heraclion-api/internal/infrastructure/postgres"
	"github.com/jhoicas/heraclion-api/pkg/config"
	"github.com/jhoicas/heraclion-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration: %v\n", err)
		os.Exit(1)
	}
	path := cfg.Caisse.SeedFile
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	if path == "" {
		fmt.Fprintln(os.Stderr, "Usage: seed <fichier-caisse.json|yaml> (ou CAISSE_SEED_FILE)")
		os.Exit(2)
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, App: "heraclion-seed"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connexion PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	caisseUC := usecase.NewCaisseUseCase(
		postgres.NewCaisseRepository(pool), postgres.NewTxRunner(pool), nil, log.Component("seed"),
	)
	n, err := caisseUC.Seed(ctx, path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Seed caisse: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Opérations insérées: %d\n", n)
}
