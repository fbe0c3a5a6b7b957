package billing

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/jhoicas/heraclion-api/internal/domain"
	"github.com/jhoicas/heraclion-api/internal/domain/entity"
	"github.com/jhoicas/heraclion-api/internal/domain/repository"
)

// InvoiceSources orden fijo de las fuentes de factura unificadas.
var InvoiceSources = []string{entity.SourceDocument, entity.SourceTransport, entity.SourceNonTransport}

// InvoiceMergerUseCase unifica las tres tablas de facturas en una sola lista normalizada.
type InvoiceMergerUseCase struct {
	invoices repository.InvoiceSourceRepository
	clients  repository.ClientRepository
	log      zerolog.Logger
}

// NewInvoiceMergerUseCase construye el caso de uso.
func NewInvoiceMergerUseCase(invoices repository.InvoiceSourceRepository, clients repository.ClientRepository, log zerolog.Logger) *InvoiceMergerUseCase {
	return &InvoiceMergerUseCase{invoices: invoices, clients: clients, log: log}
}

// ListAll devuelve todas las facturas de las tres fuentes, ordenadas de la más reciente a la más antigua.
//
// Las cuatro lecturas (tres fuentes + clientes) se lanzan en paralelo. Una tabla inexistente
// aporta cero filas; cualquier otro error hace fallar la unión completa.
func (uc *InvoiceMergerUseCase) ListAll(ctx context.Context) ([]entity.InvoiceRecord, error) {
	type sourceResult struct {
		rows []entity.InvoiceRow
		err  error
	}
	type clientsResult struct {
		list []*entity.Client
		err  error
	}

	results := make([]chan sourceResult, len(InvoiceSources))
	for i, source := range InvoiceSources {
		ch := make(chan sourceResult, 1)
		results[i] = ch
		go func(source string) {
			rows, err := uc.invoices.ListInvoices(ctx, source)
			ch <- sourceResult{rows, err}
		}(source)
	}
	clientsCh := make(chan clientsResult, 1)
	go func() {
		list, err := uc.clients.ListAll(ctx)
		clientsCh <- clientsResult{list, err}
	}()

	// Se drenan todos los canales antes de decidir, para no dejar goroutines colgadas.
	perSource := make([]sourceResult, len(InvoiceSources))
	for i, ch := range results {
		perSource[i] = <-ch
	}
	cl := <-clientsCh

	lookup := make(map[int64]*entity.Client, len(cl.list))
	if cl.err != nil {
		if !errors.Is(cl.err, domain.ErrTableMissing) {
			return nil, fmt.Errorf("all-factures: clients: %w", cl.err)
		}
		uc.log.Debug().Err(cl.err).Msg("table clients absente, lookup vide")
	}
	for _, c := range cl.list {
		lookup[c.ID] = c
	}

	var out []entity.InvoiceRecord
	for i, res := range perSource {
		source := InvoiceSources[i]
		if res.err != nil {
			if errors.Is(res.err, domain.ErrTableMissing) {
				uc.log.Debug().Str("source", source).Msg("table de factures absente, source ignorée")
				continue
			}
			return nil, fmt.Errorf("all-factures: %s: %w", source, res.err)
		}
		for _, row := range res.rows {
			out = append(out, NormalizeInvoice(source, row, lookup))
		}
	}
	SortInvoices(out)
	if out == nil {
		out = []entity.InvoiceRecord{}
	}
	return out, nil
}

// NormalizeInvoice convierte una fila cruda al formato unificado.
func NormalizeInvoice(source string, row entity.InvoiceRow, clients map[int64]*entity.Client) entity.InvoiceRecord {
	rec := entity.InvoiceRecord{
		ID:           row.ID,
		Numero:       row.Numero,
		ClientID:     row.ClientID,
		EntrepriseID: row.EntrepriseID,
		DateEmission: row.DateEmission,
		DateEcheance: row.DateEcheance,
		MontantTotal: row.Total,
		Statut:       row.Statut,
		SourceType:   source,
		CreatedAt:    row.CreatedAt,
		Description:  row.Description,
	}
	if rec.DateEmission == nil {
		rec.DateEmission = row.AltDate
	}
	switch source {
	case entity.SourceTransport:
		rec.CategorieFacture = entity.CategoryTransport
	case entity.SourceNonTransport:
		rec.CategorieFacture = entity.CategoryNonTransport
	default:
		rec.CategorieFacture = row.Categorie
		if rec.CategorieFacture == "" {
			rec.CategorieFacture = entity.CategoryClassique
		}
	}
	if row.ClientID != nil {
		if c, ok := clients[*row.ClientID]; ok {
			rec.ClientNom, rec.ClientPrenom, rec.ClientEmail = c.Nom, c.Prenom, c.Email
		}
	}
	return rec
}

// SortInvoices ordena por fecha (date_emission o created_at) descendente;
// a igual fecha, por id ascendente y luego por source_type ascendente.
func SortInvoices(list []entity.InvoiceRecord) {
	sort.SliceStable(list, func(i, j int) bool {
		di, dj := list[i].SortDate(), list[j].SortDate()
		if !di.Equal(dj) {
			return di.After(dj)
		}
		if list[i].ID != list[j].ID {
			return list[i].ID < list[j].ID
		}
		return list[i].SourceType < list[j].SourceType
	})
}
