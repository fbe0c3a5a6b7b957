package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	appanalytics "github.com/jhoicas/heraclion-api/internal/application/analytics"
	"github.com/jhoicas/heraclion-api/internal/application/billing"
	"github.com/jhoicas/heraclion-api/internal/application/usecase"
	"github.com/jhoicas/heraclion-api/internal/infrastructure/postgres"
	"github.com/jhoicas/heraclion-api/internal/infrastructure/realtime"
	httpRouter "github.com/jhoicas/heraclion-api/internal/interfaces/http"
	"github.com/jhoicas/heraclion-api/pkg/config"
	"github.com/jhoicas/heraclion-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("charger la configuration: " + err.Error())
	}

	// Los importes viajan como números JSON, no como cadenas.
	decimal.MarshalJSONWithoutQuotes = true

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("addr", cfg.HTTP.Addr()).
		Msg("démarrage de l'application")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connexion PostgreSQL")
	}
	defer pool.Close()

	clientRepo := postgres.NewClientRepository(pool)
	entrepriseRepo := postgres.NewEntrepriseRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	caisseRepo := postgres.NewCaisseRepository(pool)
	documentRepo := postgres.NewDocumentRepository(pool)
	invoiceRepo := postgres.NewInvoiceSourceRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Dashboard en tiempo real: hub local, relay Redis opcional y pusher periódico.
	hub := realtime.NewHub(log.Component("hub"))
	dashboardUC := appanalytics.NewDashboardUseCase(dashboardRepo, log.Component("dashboard"))

	healthChecks := map[string]httpRouter.HealthCheck{
		"postgres": pool.Ping,
	}

	var broadcaster appanalytics.Broadcaster = hub
	var gate appanalytics.TickGate
	var rdb *redis.Client
	if cfg.Redis.Enabled() {
		rdb, err = realtime.NewRedis(ctx, cfg.Redis.URL)
		if err != nil {
			log.Warn().Err(err).Msg("redis indisponible, diffusion locale uniquement")
		} else {
			relay := realtime.NewRedisRelay(rdb, hub, log.Component("relay"))
			broadcaster, gate = relay, relay
			healthChecks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
			go func() {
				if err := relay.Run(ctx, nil); err != nil {
					log.Error().Err(err).Msg("relay redis arrêté")
				}
			}()
		}
	}

	pusher := appanalytics.NewPusher(dashboardUC, broadcaster, cfg.Dashboard.PushInterval, log.Component("pusher"))
	if gate != nil {
		pusher.WithGate(gate)
	}

	documentUC := billing.NewDocumentUseCase(documentRepo, txRunner).WithNotifier(pusher)
	mergerUC := billing.NewInvoiceMergerUseCase(invoiceRepo, clientRepo, log.Component("factures"))
	paymentUC := billing.NewPaymentUseCase(txRunner, pusher)
	clientUC := usecase.NewClientUseCase(clientRepo)
	entrepriseUC := usecase.NewEntrepriseUseCase(entrepriseRepo)
	stockUC := usecase.NewStockUseCase(stockRepo, pusher)
	caisseUC := usecase.NewCaisseUseCase(caisseRepo, txRunner, pusher, log.Component("caisse"))

	if n, err := caisseUC.Seed(ctx, cfg.Caisse.SeedFile); err != nil {
		log.Error().Err(err).Str("file", cfg.Caisse.SeedFile).Msg("seed caisse")
	} else if n > 0 {
		log.Info().Int("operations", n).Msg("seed caisse appliqué")
	}

	app := httpRouter.NewApp(httpRouter.RouterDeps{
		AppName:      cfg.App.Name,
		Development:  cfg.App.IsDevelopment(),
		Log:          log,
		DocumentUC:   documentUC,
		MergerUC:     mergerUC,
		PaymentUC:    paymentUC,
		DashboardUC:  dashboardUC,
		ClientUC:     clientUC,
		EntrepriseUC: entrepriseUC,
		StockUC:      stockUC,
		CaisseUC:     caisseUC,
		Hub:          hub,
		HealthChecks: healthChecks,
		DocsFile:     "./docs/swagger.json",
	})

	go pusher.Run(ctx)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("serveur HTTP arrêté")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("signal d'arrêt reçu, fermeture du serveur...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("arrêt du serveur")
	}
	if rdb != nil {
		_ = rdb.Close()
	}

	log.Info().Msg("application arrêtée")
}
