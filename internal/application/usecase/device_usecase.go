package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/factory-api/internal/application/dto"
	"github.com/jhoicas/factory-api/internal/domain"
	"github.com/jhoicas/factory-api/internal/domain/assembly"
	"github.com/jhoicas/factory-api/internal/domain/entity"
	"github.com/jhoicas/factory-api/internal/domain/repository"
)

// DeviceUseCase listado, actualización y borrado de dispositivos.
// El alta vive en application/assembly porque necesita transacción.
type DeviceUseCase struct {
	repo         repository.DeviceRepository
	strictNaming bool
	now          func() time.Time
}

// NewDeviceUseCase construye el caso de uso.
func NewDeviceUseCase(repo repository.DeviceRepository, strictNaming bool) *DeviceUseCase {
	return &DeviceUseCase{repo: repo, strictNaming: strictNaming, now: time.Now}
}

// List lista dispositivos.
func (uc *DeviceUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.DeviceListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DeviceResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *DeviceToResponse(d))
	}
	return &dto.DeviceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update aplica un patch; sin cambios efectivos responde NotFound.
func (uc *DeviceUseCase) Update(ctx context.Context, id string, in dto.UpdateDeviceRequest) (*dto.DeviceResponse, error) {
	if !validID(id) {
		return nil, domain.Errorf(domain.ErrNotFound, "device with id: %s not found", id)
	}
	d, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.Errorf(domain.ErrNotFound, "device with id: %s not found", id)
	}
	changed, err := assembly.ApplyDevicePatch(d, assembly.DevicePatch{
		Name:       in.Name,
		Component1: in.Component1,
		Component2: in.Component2,
	}, uc.strictNaming)
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, domain.Errorf(domain.ErrNotFound, "device with id: %s not found", id)
	}
	d.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return DeviceToResponse(d), nil
}

// Delete elimina un dispositivo.
func (uc *DeviceUseCase) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.Errorf(domain.ErrNotFound, "device with id: %s not found", id)
	}
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.Errorf(domain.ErrNotFound, "device with id: %s not found", id)
	}
	return nil
}

// DeviceToResponse mapea la entidad; nombre vacío sale como null.
func DeviceToResponse(d *entity.Device) *dto.DeviceResponse {
	if d == nil {
		return nil
	}
	var name *string
	if d.Name != "" {
		n := d.Name
		name = &n
	}
	return &dto.DeviceResponse{
		ID:         d.ID,
		Name:       name,
		Component1: d.Component1,
		Component2: d.Component2,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}
