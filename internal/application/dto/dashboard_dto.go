package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados por fuente en las respuestas del dashboard.
const (
	SourceOK       = "ok"
	SourceDegraded = "degraded"
)

// SourceStatus resultado de una fuente del dashboard: ok, o degraded con el motivo.
// Una fuente degradada aporta cero (métricas) o nada (actividad).
type SourceStatus struct {
	Source string `json:"source"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// DashboardStatsDTO respuesta de GET /api/dashboard/stats.
// Algunas métricas se exponen con dos nombres porque el frontend usa ambos.
type DashboardStatsDTO struct {
	TotalFacturesNonTransport  int64           `json:"totalFacturesNonTransport"`
	TotalFacturesTransport     int64           `json:"totalFacturesTransport"`
	TotalFacturesDocuments     int64           `json:"totalFacturesDocuments"`
	TotalProformasNonTransport int64           `json:"totalProformasNonTransport"`
	TotalProformasTransport    int64           `json:"totalProformasTransport"`
	TotalProformasDocuments    int64           `json:"totalProformasDocuments"`
	TotalFactures              int64           `json:"totalFactures"`
	TotalProformas             int64           `json:"totalProformas"`
	TotalStockArticlesSnake    int64           `json:"total_stock_articles"`
	TotalStockArticles         int64           `json:"totalStockArticles"`
	TotalClients               int64           `json:"totalClients"`
	TotalEntreprises           int64           `json:"totalEntreprises"`
	MontantTotalFactures       decimal.Decimal `json:"montant_total_factures"`
	FacturesEnAttente          int64           `json:"factures_en_attente"`
	SoldeCaisse                decimal.Decimal `json:"solde_caisse"`
	TotalDocumentsSnake        int64           `json:"total_documents"`
	TotalDocuments             int64           `json:"totalDocuments"`
	Date                       time.Time       `json:"date"`
	Sources                    []SourceStatus  `json:"sources"`
}

// ActivityDTO elemento del feed de actividad reciente.
type ActivityDTO struct {
	Type    string    `json:"type"`
	Message string    `json:"message"`
	Date    time.Time `json:"date"`
}

// Niveles de alerta de stock.
const (
	AlertRupture  = "rupture"
	AlertCritique = "critique"
	AlertFaible   = "faible"
)

// StockAlertDTO artículo por debajo de su umbral de alerta.
type StockAlertDTO struct {
	ID          int64           `json:"id"`
	Reference   string          `json:"reference"`
	Designation string          `json:"designation"`
	Quantite    decimal.Decimal `json:"quantite"`
	SeuilAlerte decimal.Decimal `json:"seuil_alerte"`
	Niveau      string          `json:"niveau"`
}

// PushStatsDTO métricas enviadas por WebSocket (forma compacta de DashboardStatsDTO).
type PushStatsDTO struct {
	Factures          int64           `json:"factures"`
	Proformas         int64           `json:"proformas"`
	Clients           int64           `json:"clients"`
	Entreprises       int64           `json:"entreprises"`
	ArticlesStock     int64           `json:"articles_stock"`
	ChiffreAffaires   decimal.Decimal `json:"chiffre_affaires"`
	FacturesEnAttente int64           `json:"factures_en_attente"`
	SoldeCaisse       decimal.Decimal `json:"solde_caisse"`
	Date              time.Time       `json:"date"`
}

// DashboardUpdateData contenido del mensaje push.
type DashboardUpdateData struct {
	Stats      PushStatsDTO  `json:"stats"`
	Activities []ActivityDTO `json:"activities"`
}

// DashboardUpdateMessage mensaje {type:"dashboard-update", data:{stats, activities}}.
type DashboardUpdateMessage struct {
	Type string              `json:"type"`
	Data DashboardUpdateData `json:"data"`
}

// DashboardUpdateType tipo del mensaje push del dashboard.
const DashboardUpdateType = "dashboard-update"
