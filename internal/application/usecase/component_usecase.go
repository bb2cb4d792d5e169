package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/factory-api/internal/application/dto"
	"github.com/jhoicas/factory-api/internal/domain"
	"github.com/jhoicas/factory-api/internal/domain/entity"
	"github.com/jhoicas/factory-api/internal/domain/lifecycle"
	"github.com/jhoicas/factory-api/internal/domain/repository"
	"github.com/jhoicas/factory-api/pkg/logger"
	"github.com/jhoicas/factory-api/pkg/metrics"
)

// ComponentUseCase alta, listado, actualización (producción y revisión) y borrado de componentes.
type ComponentUseCase struct {
	repo    repository.ComponentRepository
	metrics *metrics.Metrics
	log     *logger.Logger
	now     func() time.Time
}

// NewComponentUseCase construye el caso de uso. m y log pueden ser nil.
func NewComponentUseCase(repo repository.ComponentRepository, m *metrics.Metrics, log *logger.Logger) *ComponentUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ComponentUseCase{repo: repo, metrics: m, log: log.Named("components"), now: time.Now}
}

// Create da de alta un componente con calidad sin asignar y ubicación producer.
func (uc *ComponentUseCase) Create(ctx context.Context, in dto.CreateComponentRequest) (*dto.ComponentResponse, error) {
	c, err := lifecycle.NewComponent(in.Type, in.Status, in.Location, in.Quality)
	if err != nil {
		return nil, err
	}
	seq, err := uc.repo.NextSequence(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	c.ID = uuid.New().String()
	c.Name = lifecycle.ComponentName(seq)
	c.CreatedAt = now
	c.UpdatedAt = now
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	uc.metrics.ComponentEvent("created")
	uc.log.Info().Str("component", c.Name).Str("type", c.Type).Msg("component created")
	return ComponentToResponse(c), nil
}

// List lista componentes.
func (uc *ComponentUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ComponentListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ComponentResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *ComponentToResponse(c))
	}
	return &dto.ComponentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// UpdateFromProducer actualización del lado de producción.
// Un patch sin cambios efectivos se reporta como NotFound.
func (uc *ComponentUseCase) UpdateFromProducer(ctx context.Context, id string, in dto.UpdateComponentRequest) (*dto.ComponentResponse, error) {
	return uc.update(ctx, id, in, lifecycle.ApplyProducerPatch, "updated")
}

// Review revisión del ensamblador: asigna calidad/estado y deja el componente en assembler.
func (uc *ComponentUseCase) Review(ctx context.Context, id string, in dto.UpdateComponentRequest) (*dto.ComponentResponse, error) {
	return uc.update(ctx, id, in, lifecycle.ApplyReviewPatch, "reviewed")
}

func (uc *ComponentUseCase) update(
	ctx context.Context,
	id string,
	in dto.UpdateComponentRequest,
	apply func(*entity.Component, lifecycle.ComponentPatch) (bool, error),
	event string,
) (*dto.ComponentResponse, error) {
	if !validID(id) {
		return nil, domain.Errorf(domain.ErrNotFound, "component with id: %s not found", id)
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.Errorf(domain.ErrNotFound, "component with id: %s not found", id)
	}
	changed, err := apply(c, lifecycle.ComponentPatch{
		Type:     in.Type,
		Quality:  in.Quality,
		Status:   in.Status,
		Location: in.Location,
	})
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, domain.Errorf(domain.ErrNotFound, "component with id: %s not found", id)
	}
	c.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	uc.metrics.ComponentEvent(event)
	uc.log.Info().Str("component", c.Name).Str("quality", c.Quality).Str("status", c.Status).
		Str("location", c.Location).Msg("component " + event)
	return ComponentToResponse(c), nil
}

// Delete elimina un componente.
func (uc *ComponentUseCase) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.Errorf(domain.ErrNotFound, "component with id: %s not found", id)
	}
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.Errorf(domain.ErrNotFound, "component with id: %s not found", id)
	}
	return nil
}

// ComponentToResponse mapea la entidad a la salida HTTP.
func ComponentToResponse(c *entity.Component) *dto.ComponentResponse {
	if c == nil {
		return nil
	}
	return &dto.ComponentResponse{
		ID:        c.ID,
		Name:      c.Name,
		Type:      c.Type,
		Quality:   c.Quality,
		Status:    c.Status,
		Location:  c.Location,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
