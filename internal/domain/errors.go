package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("ressource introuvable")
	ErrInvalidInput = errors.New("entrée invalide")
	ErrDuplicate    = errors.New("ressource en double")
	// ErrTableMissing indica que la relación consultada no existe (PostgreSQL 42P01).
	// Las agregaciones lo tratan como una fuente vacía.
	ErrTableMissing = errors.New("table inexistante")
	// ErrAlreadyPaid se devuelve al intentar pagar una factura ya pagada.
	ErrAlreadyPaid = errors.New("facture déjà payée")
)
