package http

import (
	"context"
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	appanalytics "github.com/jhoicas/heraclion-api/internal/application/analytics"
	"github.com/jhoicas/heraclion-api/internal/application/billing"
	"github.com/jhoicas/heraclion-api/internal/application/usecase"
	"github.com/jhoicas/heraclion-api/internal/infrastructure/realtime"
	"github.com/jhoicas/heraclion-api/pkg/logger"
)

// HealthCheck comprueba una dependencia externa (PostgreSQL, Redis).
type HealthCheck func(ctx context.Context) error

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName     string
	Development bool
	Log         *logger.Logger

	DocumentUC   *billing.DocumentUseCase
	MergerUC     *billing.InvoiceMergerUseCase
	PaymentUC    *billing.PaymentUseCase
	DashboardUC  *appanalytics.DashboardUseCase
	ClientUC     *usecase.ClientUseCase
	EntrepriseUC *usecase.EntrepriseUseCase
	StockUC      *usecase.StockUseCase
	CaisseUC     *usecase.CaisseUseCase
	Hub          *realtime.Hub

	// HealthChecks por nombre; /health responde 503 si alguno falla.
	HealthChecks map[string]HealthCheck
	// DocsFile ruta del swagger.json; vacío o inexistente desactiva /docs.
	DocsFile     string
}

// NewApp crea la aplicación Fiber con el middleware común y todas las rutas.
func NewApp(deps RouterDeps) *fiber.App {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      deps.AppName,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: NewErrorHandler(deps.Development, log.Component("http")),
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: logger.RequestIDKey,
	}))
	app.Use(cors.New())
	app.Use(logger.AccessLog(log))

	if deps.DocsFile != "" {
		if _, err := os.Stat(deps.DocsFile); err == nil {
			// Swagger UI en local: http://localhost:<port>/docs
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: deps.DocsFile,
				Path:     "docs",
				Title:    "Heraclion API",
			}))
		} else {
			log.Warn().Str("file", deps.DocsFile).Msg("swagger.json introuvable, /docs désactivé")
		}
	}

	app.Get("/health", healthHandler(deps.AppName, deps.HealthChecks))

	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Dashboard
	dashboard := api.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/stats", dashboardHandler.GetStats)
	dashboard.Get("/recent-activities", dashboardHandler.GetRecentActivities)
	dashboard.Get("/alerts", dashboardHandler.GetAlerts)

	// Facturas unificadas y pago
	invoiceHandler := NewInvoiceHandler(deps.MergerUC, deps.PaymentUC)
	api.Get("/all-factures", invoiceHandler.ListAll)
	api.Post("/factures/:source/:id/payer", invoiceHandler.Pay)

	// Documentos y líneas
	documents := api.Group("/documents")
	documentHandler := NewDocumentHandler(deps.DocumentUC)
	documents.Get("/", documentHandler.List)
	documents.Post("/", documentHandler.Create)
	documents.Get("/:id", documentHandler.GetByID)
	documents.Put("/:id", documentHandler.Update)
	documents.Delete("/:id", documentHandler.Delete)
	documents.Post("/:id/lignes", documentHandler.AddLine)
	documents.Delete("/:id/lignes/:ligneId", documentHandler.DeleteLine)
	api.Post("/calcul/ligne", documentHandler.PreviewLine)

	// Clientes
	clients := api.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Get("/", clientHandler.List)
	clients.Post("/", clientHandler.Create)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)

	// Empresas
	entreprises := api.Group("/entreprises")
	entrepriseHandler := NewEntrepriseHandler(deps.EntrepriseUC)
	entreprises.Get("/", entrepriseHandler.List)
	entreprises.Post("/", entrepriseHandler.Create)
	entreprises.Get("/:id", entrepriseHandler.GetByID)

	// Stock
	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stock.Get("/", stockHandler.List)
	stock.Post("/", stockHandler.Create)
	stock.Patch("/:id/quantite", stockHandler.UpdateQuantity)

	// Caja
	caisse := api.Group("/caisse")
	caisseHandler := NewCaisseHandler(deps.CaisseUC)
	caisse.Get("/", caisseHandler.List)
	caisse.Post("/", caisseHandler.Create)
	caisse.Get("/solde", caisseHandler.Balance)

	// Tiempo real
	if deps.Hub != nil {
		log := deps.Log
		if log == nil {
			log = logger.Nop()
		}
		var snapshot appanalytics.SnapshotSource
		if deps.DashboardUC != nil {
			snapshot = deps.DashboardUC
		}
		wsHandler := NewWSHandler(deps.Hub, snapshot, log.Component("ws"))
		app.Use("/ws", wsHandler.Upgrade)
		app.Get("/ws", wsHandler.Serve())
	}
}

func healthHandler(service string, checks map[string]HealthCheck) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		status := "ok"
		deps := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				deps[name] = "error"
				status = "degraded"
				continue
			}
			deps[name] = "connected"
		}
		code := fiber.StatusOK
		if status != "ok" {
			code = fiber.StatusServiceUnavailable
		}
		return c.Status(code).JSON(fiber.Map{"status": status, "service": service, "dependencies": deps})
	}
}
