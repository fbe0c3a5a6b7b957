package repository

import (
	"context"

	"github.com/jhoicas/heraclion-api/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client.
type ClientRepository interface {
	Create(ctx context.Context, c *entity.Client) error
	GetByID(ctx context.Context, id int64) (*entity.Client, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Client, error)
	// ListAll carga todos los clientes (lookup desnormalizado del merger de facturas).
	ListAll(ctx context.Context) ([]*entity.Client, error)
	Update(ctx context.Context, c *entity.Client) error
	Delete(ctx context.Context, id int64) error
}
