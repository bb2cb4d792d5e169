package dto

import "time"

// CreateComponentRequest alta de componente en producción.
// quality y location se aceptan sólo con sus valores iniciales ("null" y producer).
type CreateComponentRequest struct {
	Type     string  `json:"type" validate:"required,oneof=A B C D E"`
	Status   string  `json:"status" validate:"required,oneof=manufactured reviewed"`
	Quality  *string `json:"quality,omitempty"`
	Location *string `json:"location,omitempty"`
}

// UpdateComponentRequest patch de componente; los conjuntos válidos dependen de la etapa
// y los valida el dominio.
type UpdateComponentRequest struct {
	Type     *string `json:"type,omitempty"`
	Quality  *string `json:"quality,omitempty"`
	Status   *string `json:"status,omitempty"`
	Location *string `json:"location,omitempty"`
}

// ComponentResponse salida de un componente.
type ComponentResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Quality   string    `json:"quality"`
	Status    string    `json:"status"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ComponentListResponse listado paginado de componentes.
type ComponentListResponse struct {
	Items []ComponentResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
