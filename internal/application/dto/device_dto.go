package dto

import "time"

// CreateDeviceRequest alta de dispositivo: tipos de los dos componentes.
// El nombre lo asigna el sistema.
type CreateDeviceRequest struct {
	Component1 string `json:"component_1" validate:"required,oneof=A C"`
	Component2 string `json:"component_2" validate:"required,oneof=B C E"`
}

// UpdateDeviceRequest patch de dispositivo.
type UpdateDeviceRequest struct {
	Name       *string `json:"name,omitempty"`
	Component1 *string `json:"component_1,omitempty" validate:"omitempty,oneof=A C"`
	Component2 *string `json:"component_2,omitempty" validate:"omitempty,oneof=B C E"`
}

// DeviceResponse salida de un dispositivo. Name es null si el par no tiene nombre.
type DeviceResponse struct {
	ID         string    `json:"id"`
	Name       *string   `json:"name"`
	Component1 string    `json:"component_1"`
	Component2 string    `json:"component_2"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DeviceListResponse listado paginado de dispositivos.
type DeviceListResponse struct {
	Items []DeviceResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
