package repository

import (
	"context"

	"github.com/jhoicas/heraclion-api/internal/domain/entity"
)

// DocumentFilter filtros del listado de documentos genéricos.
type DocumentFilter struct {
	Type   string // vacío = todos
	Limit  int
	Offset int
}

// DocumentRepository define el puerto de persistencia para documentos genéricos y sus líneas.
// Create y Update escriben cabecera y líneas; usar dentro de TxRunner para atomicidad.
type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	// Update reemplaza la cabecera y el conjunto completo de líneas.
	Update(ctx context.Context, doc *entity.Document) error
	// GetByID devuelve el documento con sus líneas, o nil si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Document, error)
	List(ctx context.Context, f DocumentFilter) ([]*entity.Document, error)
	Delete(ctx context.Context, id int64) error
}
