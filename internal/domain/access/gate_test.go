package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/factory-api/internal/domain/access"
)

var (
	allDomains = []access.Domain{access.DomainUsers, access.DomainComponents, access.DomainDevices}
	allActions = []access.Action{access.ActionList, access.ActionCreate, access.ActionUpdate, access.ActionDelete}
)

// Tabla completa rol x dominio: cada rol tiene acceso total a sus dominios y ninguno fuera.
func TestAuthorize_TablaCompleta(t *testing.T) {
	expected := map[string]map[access.Domain]bool{
		"manager":   {access.DomainUsers: true, access.DomainComponents: true, access.DomainDevices: true},
		"producer":  {access.DomainComponents: true},
		"assembler": {access.DomainDevices: true},
	}
	for role, domains := range expected {
		for _, d := range allDomains {
			for _, a := range allActions {
				got := access.Authorize(role, d, a)
				assert.Equal(t, domains[d], got.Allowed, "%s %s %s", role, a, d)
				if !got.Allowed {
					assert.NotEmpty(t, got.Reason, "%s %s %s", role, a, d)
				}
			}
		}
	}
}

func TestAuthorize_RolDesconocido(t *testing.T) {
	for _, role := range []string{"", "admin", "Manager", "PRODUCER"} {
		for _, d := range allDomains {
			got := access.Authorize(role, d, access.ActionList)
			assert.False(t, got.Allowed, "role %q", role)
			assert.Contains(t, got.Reason, "not recognized")
		}
	}
}

func TestAuthorize_DominioOAccionDesconocidos(t *testing.T) {
	got := access.Authorize("manager", access.Domain("invoices"), access.ActionList)
	assert.False(t, got.Allowed)
	assert.Contains(t, got.Reason, "unknown domain")

	got = access.Authorize("manager", access.DomainDevices, access.Action("approve"))
	assert.False(t, got.Allowed)
	assert.Contains(t, got.Reason, "unknown action")
}

func TestAuthorize_Motivo(t *testing.T) {
	got := access.Authorize("producer", access.DomainDevices, access.ActionCreate)
	assert.Equal(t, "role producer is not authorized to create devices", got.Reason)
}
