// Package assembly caso de uso de alta de dispositivos.
package assembly

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/factory-api/internal/application/dto"
	"github.com/jhoicas/factory-api/internal/application/usecase"
	domassembly "github.com/jhoicas/factory-api/internal/domain/assembly"
	"github.com/jhoicas/factory-api/internal/domain/entity"
	"github.com/jhoicas/factory-api/internal/domain/repository"
	"github.com/jhoicas/factory-api/pkg/logger"
	"github.com/jhoicas/factory-api/pkg/metrics"
)

// AssembleUseCase localiza los componentes por tipo, aplica las reglas de rechazo
// y persiste el dispositivo, todo en una transacción con filas bloqueadas.
type AssembleUseCase struct {
	tx           TxRunner
	strictNaming bool
	metrics      *metrics.Metrics
	log          *logger.Logger
	now          func() time.Time
}

// NewAssembleUseCase construye el caso de uso. m y log pueden ser nil.
func NewAssembleUseCase(tx TxRunner, strictNaming bool, m *metrics.Metrics, log *logger.Logger) *AssembleUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AssembleUseCase{tx: tx, strictNaming: strictNaming, metrics: m, log: log.Named("assembly"), now: time.Now}
}

// Assemble crea un dispositivo a partir de los tipos pedidos.
// Cuando una regla rechaza un componente, el cambio de estado se confirma
// y después se devuelve el error de negocio.
func (uc *AssembleUseCase) Assemble(ctx context.Context, in dto.CreateDeviceRequest) (*dto.DeviceResponse, error) {
	device, err := domassembly.NewDevice(in.Component1, in.Component2, uc.strictNaming)
	if err != nil {
		return nil, err
	}

	var verdict domassembly.Verdict
	err = uc.tx.Run(ctx, func(componentRepo repository.ComponentRepository, deviceRepo repository.DeviceRepository) error {
		c1, err := componentRepo.FindForAssembly(ctx, device.Component1, "")
		if err != nil {
			return err
		}
		exclude := ""
		if c1 != nil {
			exclude = c1.ID
		}
		c2, err := componentRepo.FindForAssembly(ctx, device.Component2, exclude)
		if err != nil {
			return err
		}

		verdict = domassembly.Check(device.Component1, device.Component2, c1, c2)
		if !verdict.OK() {
			if verdict.Reject != nil {
				return componentRepo.UpdateStatus(ctx, verdict.Reject.ID, entity.StatusRejected)
			}
			return nil
		}

		now := uc.now()
		device.ID = uuid.New().String()
		device.CreatedAt = now
		device.UpdatedAt = now
		return deviceRepo.Create(ctx, device)
	})
	if err != nil {
		return nil, err
	}

	if !verdict.OK() {
		uc.metrics.AssemblyFailed(verdict.Reason)
		ev := uc.log.Info().Str("component_1", device.Component1).Str("component_2", device.Component2).Str("reason", verdict.Reason)
		if verdict.Reject != nil {
			ev = ev.Str("rejected", verdict.Reject.Name)
		}
		ev.Msg("assembly failed")
		return nil, verdict.Err
	}

	uc.metrics.DeviceAssembled(device.Name)
	uc.log.Info().Str("device_id", device.ID).Str("name", device.Name).Msg("device assembled")
	return usecase.DeviceToResponse(device), nil
}
