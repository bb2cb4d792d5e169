package repository

import (
	"context"

	"github.com/jhoicas/factory-api/internal/domain/entity"
)

// DeviceRepository define el puerto de persistencia para Device.
type DeviceRepository interface {
	Create(ctx context.Context, d *entity.Device) error
	GetByID(ctx context.Context, id string) (*entity.Device, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Device, error)
	Update(ctx context.Context, d *entity.Device) error
	Delete(ctx context.Context, id string) (bool, error)
}
