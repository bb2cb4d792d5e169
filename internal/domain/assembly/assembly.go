// Package assembly reglas para combinar dos componentes en un dispositivo.
package assembly

import (
	"github.com/jhoicas/factory-api/internal/domain"
	"github.com/jhoicas/factory-api/internal/domain/entity"
)

// Motivos de fallo, usados como etiqueta en métricas y logs.
const (
	ReasonNotFound       = "component_not_found"
	ReasonQualityPending = "quality_pending"
	ReasonRejected       = "component_rejected"
)

// names tabla fija (component_1, component_2) -> nombre del dispositivo.
var names = map[[2]string]string{
	{entity.ComponentTypeA, entity.ComponentTypeB}: "D1",
	{entity.ComponentTypeC, entity.ComponentTypeD}: "D2",
	{entity.ComponentTypeA, entity.ComponentTypeE}: "D3",
}

// DeviceName devuelve el nombre para el par de tipos o "" si el par no está en la tabla.
func DeviceName(t1, t2 string) string {
	return names[[2]string{t1, t2}]
}

// ValidateTypes comprueba los conjuntos admitidos para cada posición.
func ValidateTypes(t1, t2 string) error {
	if !entity.IsValidFirstComponent(t1) {
		return domain.Errorf(domain.ErrInvalidInput, "component_1 must be one of A, C, got %q", t1)
	}
	if !entity.IsValidSecondComponent(t2) {
		return domain.Errorf(domain.ErrInvalidInput, "component_2 must be one of B, C, E, got %q", t2)
	}
	return nil
}

// Verdict resultado de Check. Si Reject no es nil hay que marcarlo rejected
// y persistir ese cambio aunque la operación falle.
type Verdict struct {
	Err    error
	Reason string
	Reject *entity.Component
}

// OK indica que el ensamblaje puede continuar.
func (v Verdict) OK() bool { return v.Err == nil }

// Check evalúa las precondiciones en orden sobre los componentes localizados
// (nil = no encontrado). No modifica los componentes.
func Check(t1, t2 string, c1, c2 *entity.Component) Verdict {
	if c1 == nil {
		return Verdict{Err: domain.Errorf(domain.ErrNotFound, "component with type %s not found", t1), Reason: ReasonNotFound}
	}
	if c2 == nil {
		return Verdict{Err: domain.Errorf(domain.ErrNotFound, "component with type %s not found", t2), Reason: ReasonNotFound}
	}
	if !c1.IsGraded() {
		return Verdict{
			Err:    domain.Errorf(domain.ErrQualityPending, "component %s has not been reviewed and assigned quality at the assembler", t1),
			Reason: ReasonQualityPending,
		}
	}
	if !c2.IsGraded() {
		return Verdict{
			Err:    domain.Errorf(domain.ErrQualityPending, "component %s has not been reviewed and assigned quality at the assembler", t2),
			Reason: ReasonQualityPending,
		}
	}
	if c1.Quality == entity.QualityD && c1.Type == entity.ComponentTypeA {
		return Verdict{
			Err:    domain.Errorf(domain.ErrComponentRejected, "component %s rejected", c1.Name),
			Reason: ReasonRejected,
			Reject: c1,
		}
	}
	if c1.Quality == entity.QualityF && c2.Quality == entity.QualityF {
		return Verdict{
			Err:    domain.Errorf(domain.ErrComponentRejected, "both components graded F, component %s rejected", c2.Name),
			Reason: ReasonRejected,
			Reject: c2,
		}
	}
	return Verdict{}
}

// NewDevice valida los tipos y resuelve el nombre. Con strict, un par sin nombre es inválido.
func NewDevice(t1, t2 string, strict bool) (*entity.Device, error) {
	if err := ValidateTypes(t1, t2); err != nil {
		return nil, err
	}
	name := DeviceName(t1, t2)
	if name == "" && strict {
		return nil, domain.Errorf(domain.ErrInvalidInput, "no device name defined for components %s and %s", t1, t2)
	}
	return &entity.Device{Name: name, Component1: t1, Component2: t2}, nil
}

// DevicePatch actualización parcial de un dispositivo. Cadena vacía = no enviado.
type DevicePatch struct {
	Name       *string
	Component1 *string
	Component2 *string
}

// IsEmpty indica si el patch no trae ningún campo.
func (p DevicePatch) IsEmpty() bool {
	return !supplied(p.Name) && !supplied(p.Component1) && !supplied(p.Component2)
}

func supplied(s *string) bool {
	return s != nil && *s != ""
}

// ApplyDevicePatch aplica el patch y devuelve si el dispositivo cambió.
// Si cambian los tipos y no se envía nombre, el nombre se recalcula con la tabla.
func ApplyDevicePatch(d *entity.Device, p DevicePatch, strict bool) (bool, error) {
	if p.IsEmpty() {
		return false, nil
	}
	t1, t2 := d.Component1, d.Component2
	if supplied(p.Component1) {
		t1 = *p.Component1
	}
	if supplied(p.Component2) {
		t2 = *p.Component2
	}
	if err := ValidateTypes(t1, t2); err != nil {
		return false, err
	}
	name := d.Name
	switch {
	case supplied(p.Name):
		name = *p.Name
	case t1 != d.Component1 || t2 != d.Component2:
		name = DeviceName(t1, t2)
	}
	if name == "" && strict {
		return false, domain.Errorf(domain.ErrInvalidInput, "no device name defined for components %s and %s", t1, t2)
	}
	changed := name != d.Name || t1 != d.Component1 || t2 != d.Component2
	d.Name, d.Component1, d.Component2 = name, t1, t2
	return changed, nil
}
