package entity

import "time"

// Tipos de componente.
const (
	ComponentTypeA = "A"
	ComponentTypeB = "B"
	ComponentTypeC = "C"
	ComponentTypeD = "D"
	ComponentTypeE = "E"
)

// Calidades. QualityUnassigned es el centinela "sin calificar".
const (
	QualityUnassigned = "null"
	QualityA          = "A"
	QualityB          = "B"
	QualityC          = "C"
	QualityD          = "D"
	QualityF          = "F"
)

// Estados del componente. Los dos primeros pertenecen a la etapa de producción,
// los dos últimos a la revisión en ensamblaje.
const (
	StatusManufactured = "manufactured"
	StatusReviewed     = "reviewed"
	StatusAssembled    = "assembled"
	StatusRejected     = "rejected"
)

// Ubicaciones. La ubicación avanza producer -> assembler.
const (
	LocationProducer  = "producer"
	LocationAssembler = "assembler"
)

// Component pieza fabricada por el rol producer.
type Component struct {
	ID        string
	Name      string // C<secuencia>, asignado por el sistema
	Type      string
	Quality   string
	Status    string
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsGraded indica si el componente ya tiene calidad asignada.
func (c *Component) IsGraded() bool {
	return c.Quality != "" && c.Quality != QualityUnassigned
}

// IsValidComponentType A-E.
func IsValidComponentType(t string) bool {
	switch t {
	case ComponentTypeA, ComponentTypeB, ComponentTypeC, ComponentTypeD, ComponentTypeE:
		return true
	}
	return false
}

// IsGrade calidades asignables en revisión (A, B, C, D, F).
func IsGrade(q string) bool {
	switch q {
	case QualityA, QualityB, QualityC, QualityD, QualityF:
		return true
	}
	return false
}

// IsProducerStatus manufactured o reviewed.
func IsProducerStatus(s string) bool {
	return s == StatusManufactured || s == StatusReviewed
}

// IsReviewStatus assembled o rejected.
func IsReviewStatus(s string) bool {
	return s == StatusAssembled || s == StatusRejected
}

// IsValidLocation producer o assembler.
func IsValidLocation(l string) bool {
	return l == LocationProducer || l == LocationAssembler
}
