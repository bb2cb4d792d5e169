// Package lifecycle contiene las reglas de estado de los componentes:
// creación en producción, revisión en ensamblaje y el merge de actualizaciones parciales.
package lifecycle

import (
	"strconv"

	"github.com/jhoicas/factory-api/internal/domain"
	"github.com/jhoicas/factory-api/internal/domain/entity"
)

// ComponentPatch actualización parcial de un componente.
// nil o cadena vacía significan "no enviado".
type ComponentPatch struct {
	Type     *string
	Quality  *string
	Status   *string
	Location *string
}

// IsEmpty indica si el patch no trae ningún campo.
func (p ComponentPatch) IsEmpty() bool {
	return !supplied(p.Type) && !supplied(p.Quality) && !supplied(p.Status) && !supplied(p.Location)
}

func supplied(s *string) bool {
	return s != nil && *s != ""
}

// NewComponent valida los datos de alta y devuelve el componente en etapa de producción.
// location y quality son opcionales; si se envían deben ser producer y "null".
// ID, nombre y fechas los asigna quien persiste.
func NewComponent(typ, status string, location, quality *string) (*entity.Component, error) {
	if !entity.IsValidComponentType(typ) {
		return nil, domain.Errorf(domain.ErrInvalidInput, "type must be one of A, B, C, D, E, got %q", typ)
	}
	if !entity.IsProducerStatus(status) {
		return nil, domain.Errorf(domain.ErrInvalidInput, "status must be manufactured or reviewed, got %q", status)
	}
	if supplied(location) && *location != entity.LocationProducer {
		return nil, domain.Errorf(domain.ErrInvalidInput, "location must be producer, got %q", *location)
	}
	if supplied(quality) && *quality != entity.QualityUnassigned {
		return nil, domain.Errorf(domain.ErrInvalidInput, "quality must be null until review, got %q", *quality)
	}
	return &entity.Component{
		Type:     typ,
		Quality:  entity.QualityUnassigned,
		Status:   status,
		Location: entity.LocationProducer,
	}, nil
}

// ComponentName nombre asignado a partir de la secuencia del store.
func ComponentName(seq int64) string {
	return "C" + strconv.FormatInt(seq, 10)
}

// ApplyProducerPatch aplica una actualización del lado de producción.
// Devuelve true si el componente cambió. Un componente ya entregado al ensamblaje
// no admite cambios desde producción.
func ApplyProducerPatch(c *entity.Component, p ComponentPatch) (bool, error) {
	if supplied(p.Type) && !entity.IsValidComponentType(*p.Type) {
		return false, domain.Errorf(domain.ErrInvalidInput, "type must be one of A, B, C, D, E, got %q", *p.Type)
	}
	if supplied(p.Status) && !entity.IsProducerStatus(*p.Status) {
		return false, domain.Errorf(domain.ErrInvalidInput, "status must be manufactured or reviewed, got %q", *p.Status)
	}
	if supplied(p.Quality) && *p.Quality != entity.QualityUnassigned {
		return false, domain.Errorf(domain.ErrInvalidInput, "quality must be null until review, got %q", *p.Quality)
	}
	if supplied(p.Location) && *p.Location != entity.LocationProducer {
		return false, domain.Errorf(domain.ErrInvalidInput, "location must be producer, got %q", *p.Location)
	}
	if p.IsEmpty() {
		return false, nil
	}
	if c.Location == entity.LocationAssembler {
		return false, domain.Errorf(domain.ErrStateConflict, "component %s is already at the assembler", c.Name)
	}
	return merge(c, p), nil
}

// ApplyReviewPatch aplica la revisión del ensamblador. La ubicación queda siempre en
// assembler, aunque el patch pida otra.
func ApplyReviewPatch(c *entity.Component, p ComponentPatch) (bool, error) {
	if supplied(p.Type) && !entity.IsValidComponentType(*p.Type) {
		return false, domain.Errorf(domain.ErrInvalidInput, "type must be one of A, B, C, D, E, got %q", *p.Type)
	}
	if supplied(p.Quality) && !entity.IsGrade(*p.Quality) {
		return false, domain.Errorf(domain.ErrInvalidInput, "quality must be one of A, B, C, D, F, got %q", *p.Quality)
	}
	if supplied(p.Status) && !entity.IsReviewStatus(*p.Status) {
		return false, domain.Errorf(domain.ErrInvalidInput, "status must be assembled or rejected, got %q", *p.Status)
	}
	if supplied(p.Location) && !entity.IsValidLocation(*p.Location) {
		return false, domain.Errorf(domain.ErrInvalidInput, "location must be producer or assembler, got %q", *p.Location)
	}
	if p.IsEmpty() {
		return false, nil
	}
	// La ubicación pedida sólo se valida; el resultado es siempre assembler.
	p.Location = nil
	changed := merge(c, p)
	if c.Location != entity.LocationAssembler {
		c.Location = entity.LocationAssembler
		changed = true
	}
	return changed, nil
}

func merge(c *entity.Component, p ComponentPatch) bool {
	changed := false
	set := func(dst *string, v *string) {
		if supplied(v) && *dst != *v {
			*dst = *v
			changed = true
		}
	}
	set(&c.Type, p.Type)
	set(&c.Quality, p.Quality)
	set(&c.Status, p.Status)
	set(&c.Location, p.Location)
	return changed
}
