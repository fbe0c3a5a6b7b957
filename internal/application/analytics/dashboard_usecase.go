// Package analytics contiene el agregador del dashboard: métricas, actividad reciente,
// alertas de stock y el push periódico por WebSocket.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/heraclion-api/internal/application/dto"
	"github.com/jhoicas/heraclion-api/internal/domain"
	"github.com/jhoicas/heraclion-api/internal/domain/entity"
	"github.com/jhoicas/heraclion-api/internal/domain/repository"
)

const (
	activitiesPerSource = 5  // filas leídas de cada fuente del feed
	activitiesMax       = 10 // tamaño máximo del feed unificado
)

// Nombres de las fuentes de métricas, tal como aparecen en el array "sources".
const (
	srcFacturesDocument      = "factures_documents"
	srcFacturesTransport     = "factures_transport"
	srcFacturesNonTransport  = "factures_non_transport"
	srcProformasDocument     = "proformas_documents"
	srcProformasTransport    = "proformas_transport"
	srcProformasNonTransport = "proformas_non_transport"
	srcEnAttenteDocument     = "en_attente_documents"
	srcEnAttenteTransport    = "en_attente_transport"
	srcEnAttenteNonTransport = "en_attente_non_transport"
	srcClients               = "clients"
	srcEntreprises           = "entreprises"
	srcCaisse                = "caisse"
	srcStock                 = "stock"
	reasonTableMissing       = "table inexistante"
	reasonQueryFailed        = "erreur de requête"
)

// DashboardUseCase calcula el snapshot del dashboard.
//
// Cada fuente (tabla) se consulta en su propia goroutine con su propia conexión del pool.
// Una fuente que falla queda "degraded" y aporta cero; solo la cancelación del contexto
// hace fallar la petición completa.
type DashboardUseCase struct {
	repo repository.DashboardRepository
	log  zerolog.Logger
	now  func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.DashboardRepository, log zerolog.Logger) *DashboardUseCase {
	return &DashboardUseCase{repo: repo, log: log, now: time.Now}
}

// metric resultado de una fuente de métricas.
type metric struct {
	count int64
	sum   decimal.Decimal
	err   error
}

type metricTask struct {
	name string
	run  func(ctx context.Context) metric
}

func countTask(name string, fn func(ctx context.Context) (int64, error)) metricTask {
	return metricTask{name: name, run: func(ctx context.Context) metric {
		n, err := fn(ctx)
		return metric{count: n, err: err}
	}}
}

func (uc *DashboardUseCase) invoiceTask(name, source string) metricTask {
	return metricTask{name: name, run: func(ctx context.Context) metric {
		n, sum, err := uc.repo.InvoiceStats(ctx, source)
		return metric{count: n, sum: sum, err: err}
	}}
}

func (uc *DashboardUseCase) pendingTask(name, source string) metricTask {
	return countTask(name, func(ctx context.Context) (int64, error) {
		return uc.repo.CountPendingInvoices(ctx, source, entity.PendingStatuses)
	})
}

func (uc *DashboardUseCase) proformaTask(name, source string) metricTask {
	return countTask(name, func(ctx context.Context) (int64, error) {
		return uc.repo.CountProformas(ctx, source)
	})
}

// countStock cuenta artículos en la tabla principal y, si falla, en la heredada.
func (uc *DashboardUseCase) countStock(ctx context.Context) (int64, error) {
	n, err := uc.repo.CountStockArticles(ctx, repository.StockTablePrimary)
	if err == nil || isCancellation(err) {
		return n, err
	}
	uc.log.Debug().Err(err).Msg("table stock indisponible, essai de la table articles")
	return uc.repo.CountStockArticles(ctx, repository.StockTableLegacy)
}

// runTasks ejecuta las tareas en paralelo; cada goroutine escribe solo en su posición.
func runTasks(ctx context.Context, tasks []metricTask) []metric {
	out := make([]metric, len(tasks))
	done := make(chan struct{}, len(tasks))
	for i, t := range tasks {
		go func(i int, t metricTask) {
			out[i] = t.run(ctx)
			done <- struct{}{}
		}(i, t)
	}
	for range tasks {
		<-done
	}
	return out
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// sourceStatus clasifica el error de una fuente y lo registra si la degrada.
func (uc *DashboardUseCase) sourceStatus(name string, err error) dto.SourceStatus {
	if err == nil {
		return dto.SourceStatus{Source: name, Status: dto.SourceOK}
	}
	reason := reasonQueryFailed
	if errors.Is(err, domain.ErrTableMissing) {
		reason = reasonTableMissing
	}
	uc.log.Warn().Err(err).Str("source", name).Str("reason", reason).Msg("source du dashboard dégradée")
	return dto.SourceStatus{Source: name, Status: dto.SourceDegraded, Reason: reason}
}

// collect convierte los resultados en valores + estados. Devuelve el error de cancelación si lo hay.
func (uc *DashboardUseCase) collect(ctx context.Context, names []string, results []metric) (map[string]metric, []dto.SourceStatus, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	values := make(map[string]metric, len(results))
	statuses := make([]dto.SourceStatus, 0, len(results))
	for i, r := range results {
		if r.err != nil && isCancellation(r.err) {
			return nil, nil, r.err
		}
		statuses = append(statuses, uc.sourceStatus(names[i], r.err))
		if r.err != nil {
			values[names[i]] = metric{sum: decimal.Zero}
			continue
		}
		values[names[i]] = r
	}
	return values, statuses, nil
}

// GetStats calcula las métricas del dashboard (GET /api/dashboard/stats).
//
// Reconciliación: cada total (facturas, proformas, montant) sale de las tablas
// especializadas; los documentos genéricos solo cuentan cuando ese total es cero.
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	tasks := []metricTask{
		uc.invoiceTask(srcFacturesDocument, entity.SourceDocument),
		uc.invoiceTask(srcFacturesTransport, entity.SourceTransport),
		uc.invoiceTask(srcFacturesNonTransport, entity.SourceNonTransport),
		uc.proformaTask(srcProformasDocument, entity.SourceDocument),
		uc.proformaTask(srcProformasTransport, entity.SourceTransport),
		uc.proformaTask(srcProformasNonTransport, entity.SourceNonTransport),
		uc.pendingTask(srcEnAttenteDocument, entity.SourceDocument),
		uc.pendingTask(srcEnAttenteTransport, entity.SourceTransport),
		uc.pendingTask(srcEnAttenteNonTransport, entity.SourceNonTransport),
		countTask(srcClients, uc.repo.CountClients),
		countTask(srcEntreprises, uc.repo.CountEntreprises),
		{name: srcCaisse, run: func(ctx context.Context) metric {
			sum, err := uc.repo.CaisseBalance(ctx)
			return metric{sum: sum, err: err}
		}},
		countTask(srcStock, uc.countStock),
	}
	names := make([]string, len(tasks))
	for i, t := range tasks {
		names[i] = t.name
	}

	v, statuses, err := uc.collect(ctx, names, runTasks(ctx, tasks))
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}

	totalFactures := orCount(v[srcFacturesTransport].count+v[srcFacturesNonTransport].count, v[srcFacturesDocument].count)
	totalProformas := orCount(v[srcProformasTransport].count+v[srcProformasNonTransport].count, v[srcProformasDocument].count)
	montant := orSum(v[srcFacturesTransport].sum.Add(v[srcFacturesNonTransport].sum), v[srcFacturesDocument].sum)
	stock := v[srcStock].count

	return &dto.DashboardStatsDTO{
		TotalFacturesNonTransport:  v[srcFacturesNonTransport].count,
		TotalFacturesTransport:     v[srcFacturesTransport].count,
		TotalFacturesDocuments:     v[srcFacturesDocument].count,
		TotalProformasNonTransport: v[srcProformasNonTransport].count,
		TotalProformasTransport:    v[srcProformasTransport].count,
		TotalProformasDocuments:    v[srcProformasDocument].count,
		TotalFactures:              totalFactures,
		TotalProformas:             totalProformas,
		TotalStockArticlesSnake:    stock,
		TotalStockArticles:         stock,
		TotalClients:               v[srcClients].count,
		TotalEntreprises:           v[srcEntreprises].count,
		MontantTotalFactures:       montant.Round(2),
		FacturesEnAttente:          v[srcEnAttenteDocument].count + v[srcEnAttenteTransport].count + v[srcEnAttenteNonTransport].count,
		SoldeCaisse:                v[srcCaisse].sum.Round(2),
		TotalDocumentsSnake:        totalFactures + totalProformas,
		TotalDocuments:             totalFactures + totalProformas,
		Date:                       uc.now(),
		Sources:                    statuses,
	}, nil
}

// orCount devuelve el total de las tablas especializadas, o el de documents
// cuando ellas no aportan nada (vacías o degradadas).
func orCount(specialized, generic int64) int64 {
	if specialized == 0 {
		return generic
	}
	return specialized
}

func orSum(specialized, generic decimal.Decimal) decimal.Decimal {
	if specialized.IsZero() {
		return generic
	}
	return specialized
}

// activitySources fuentes del feed, en orden de consulta.
var activitySources = []string{
	entity.ActivityNonTransportInvoice,
	entity.ActivityTransportInvoice,
	entity.ActivityTransportProforma,
	entity.ActivityStock,
	entity.ActivityCaisse,
}

// GetRecentActivities devuelve las 10 actividades más recientes de las cinco fuentes.
func (uc *DashboardUseCase) GetRecentActivities(ctx context.Context) ([]dto.ActivityDTO, []dto.SourceStatus, error) {
	type result struct {
		rows []entity.ActivityRow
		err  error
	}
	results := make([]result, len(activitySources))
	done := make(chan struct{}, len(activitySources))
	for i, source := range activitySources {
		go func(i int, source string) {
			rows, err := uc.repo.RecentActivity(ctx, source, activitiesPerSource)
			results[i] = result{rows, err}
			done <- struct{}{}
		}(i, source)
	}
	for range activitySources {
		<-done
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("dashboard activités: %w", err)
	}

	var all []dto.ActivityDTO
	statuses := make([]dto.SourceStatus, 0, len(activitySources))
	for i, res := range results {
		source := activitySources[i]
		if res.err != nil && isCancellation(res.err) {
			return nil, nil, fmt.Errorf("dashboard activités: %w", res.err)
		}
		statuses = append(statuses, uc.sourceStatus(source, res.err))
		if res.err != nil {
			continue
		}
		for _, row := range res.rows {
			all = append(all, FormatActivity(source, row))
		}
	}
	return MergeActivities(all, activitiesMax), statuses, nil
}

// MergeActivities ordena por fecha descendente (estable) y trunca a max elementos.
func MergeActivities(list []dto.ActivityDTO, max int) []dto.ActivityDTO {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Date.After(list[j].Date)
	})
	if len(list) > max {
		list = list[:max]
	}
	if list == nil {
		list = []dto.ActivityDTO{}
	}
	return list
}

// GetAlerts devuelve los artículos en alerta de stock (tabla principal o heredada).
func (uc *DashboardUseCase) GetAlerts(ctx context.Context) ([]dto.StockAlertDTO, []dto.SourceStatus, error) {
	items, err := uc.repo.StockAlerts(ctx, repository.StockTablePrimary)
	if err != nil && !isCancellation(err) {
		uc.log.Debug().Err(err).Msg("alertes: table stock indisponible, essai de la table articles")
		items, err = uc.repo.StockAlerts(ctx, repository.StockTableLegacy)
	}
	if err != nil && isCancellation(err) {
		return nil, nil, fmt.Errorf("dashboard alertes: %w", err)
	}
	status := uc.sourceStatus(srcStock, err)
	out := make([]dto.StockAlertDTO, 0, len(items))
	for _, a := range items {
		out = append(out, dto.StockAlertDTO{
			ID:          a.ID,
			Reference:   a.Reference,
			Designation: a.Designation,
			Quantite:    a.Quantite,
			SeuilAlerte: a.SeuilAlerte,
			Niveau:      AlertLevel(a.Quantite, a.SeuilAlerte),
		})
	}
	return out, []dto.SourceStatus{status}, nil
}

var two = decimal.NewFromInt(2)

// AlertLevel nivel de alerta: rupture (≤ 0), critique (≤ mitad del umbral), faible en otro caso.
func AlertLevel(quantite, seuil decimal.Decimal) string {
	switch {
	case !quantite.IsPositive():
		return dto.AlertRupture
	case quantite.LessThanOrEqual(seuil.Div(two)):
		return dto.AlertCritique
	default:
		return dto.AlertFaible
	}
}

// Snapshot construye el mensaje push {type:"dashboard-update", data:{stats, activities}}.
func (uc *DashboardUseCase) Snapshot(ctx context.Context) (*dto.DashboardUpdateMessage, error) {
	stats, err := uc.GetStats(ctx)
	if err != nil {
		return nil, err
	}
	activities, _, err := uc.GetRecentActivities(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardUpdateMessage{
		Type: dto.DashboardUpdateType,
		Data: dto.DashboardUpdateData{
			Stats: dto.PushStatsDTO{
				Factures:          stats.TotalFactures,
				Proformas:         stats.TotalProformas,
				Clients:           stats.TotalClients,
				Entreprises:       stats.TotalEntreprises,
				ArticlesStock:     stats.TotalStockArticles,
				ChiffreAffaires:   stats.MontantTotalFactures,
				FacturesEnAttente: stats.FacturesEnAttente,
				SoldeCaisse:       stats.SoldeCaisse,
				Date:              stats.Date,
			},
			Activities: activities,
		},
	}, nil
}
