package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/heraclion-api/internal/domain/repository"
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunDocument ejecuta fn con un repositorio de documentos atado a la tx (cabecera + líneas).
func (r *TxRunner) RunDocument(ctx context.Context, fn func(docs repository.DocumentRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewDocumentRepository(tx))
	})
}

// RunPayment ejecuta fn con los repos de facturas y caja atados a la misma tx.
func (r *TxRunner) RunPayment(ctx context.Context, fn func(
	invoices repository.InvoiceSourceRepository,
	caisse repository.CaisseRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewInvoiceSourceRepository(tx), NewCaisseRepository(tx))
	})
}

// RunCaisse ejecuta fn con el repo de caja atado a la tx (carga del seed).
func (r *TxRunner) RunCaisse(ctx context.Context, fn func(caisse repository.CaisseRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewCaisseRepository(tx))
	})
}
