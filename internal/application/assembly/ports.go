package assembly

import (
	"context"

	"github.com/jhoicas/factory-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace rollback; si devuelve nil, commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		componentRepo repository.ComponentRepository,
		deviceRepo repository.DeviceRepository,
	) error) error
}
