package repository

import (
	"context"

	"github.com/jhoicas/factory-api/internal/domain/entity"
)

// ComponentRepository define el puerto de persistencia para Component.
type ComponentRepository interface {
	// NextSequence devuelve el siguiente ordinal para el nombre (nunca se reutiliza).
	NextSequence(ctx context.Context) (int64, error)
	Create(ctx context.Context, c *entity.Component) error
	GetByID(ctx context.Context, id string) (*entity.Component, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Component, error)
	Update(ctx context.Context, c *entity.Component) error
	UpdateStatus(ctx context.Context, id, status string) error
	// FindForAssembly localiza un componente del tipo dado para ensamblar, bloqueando la fila
	// cuando se ejecuta dentro de una transacción. excludeID evita elegir dos veces el mismo.
	FindForAssembly(ctx context.Context, typ, excludeID string) (*entity.Component, error)
	Delete(ctx context.Context, id string) (bool, error)
}
