package entity

import "time"

// Device ensamblaje de dos componentes identificados por su tipo.
// Name vacío significa que el par de tipos no tiene nombre en la tabla.
type Device struct {
	ID         string
	Name       string
	Component1 string // A o C
	Component2 string // B, C o E
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsValidFirstComponent tipos admitidos como component_1.
func IsValidFirstComponent(t string) bool {
	return t == ComponentTypeA || t == ComponentTypeC
}

// IsValidSecondComponent tipos admitidos como component_2.
func IsValidSecondComponent(t string) bool {
	return t == ComponentTypeB || t == ComponentTypeC || t == ComponentTypeE
}
