// Package access centraliza la decisión de permisos por rol.
// Es el único lugar donde se comparan roles para autorizar operaciones.
package access

import (
	"fmt"

	"github.com/jhoicas/factory-api/internal/domain/entity"
)

// Domain recurso sobre el que se opera.
type Domain string

const (
	DomainUsers      Domain = "users"
	DomainComponents Domain = "components"
	DomainDevices    Domain = "devices"
)

// Action operación solicitada sobre un dominio.
type Action string

const (
	ActionList   Action = "list"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Decision resultado de Authorize. Reason se rellena siempre que Allowed es false.
type Decision struct {
	Allowed bool
	Reason  string
}

// grants dominios que gestiona cada rol (acceso completo dentro de cada uno).
var grants = map[string]map[Domain]bool{
	entity.RoleManager:   {DomainUsers: true, DomainComponents: true, DomainDevices: true},
	entity.RoleProducer:  {DomainComponents: true},
	entity.RoleAssembler: {DomainDevices: true},
}

var verbs = map[Action]string{
	ActionList:   "view",
	ActionCreate: "create",
	ActionUpdate: "modify",
	ActionDelete: "delete",
}

// Authorize decide si role puede ejecutar action sobre domain. Función pura.
func Authorize(role string, domain Domain, action Action) Decision {
	verb, ok := verbs[action]
	if !ok {
		return Decision{Reason: fmt.Sprintf("unknown action %q", action)}
	}
	switch domain {
	case DomainUsers, DomainComponents, DomainDevices:
	default:
		return Decision{Reason: fmt.Sprintf("unknown domain %q", domain)}
	}
	domains, ok := grants[role]
	if !ok {
		return Decision{Reason: fmt.Sprintf("role %q is not recognized", role)}
	}
	if !domains[domain] {
		return Decision{Reason: fmt.Sprintf("role %s is not authorized to %s %s", role, verb, domain)}
	}
	return Decision{Allowed: true}
}
