package assembly_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/factory-api/internal/domain"
	"github.com/jhoicas/factory-api/internal/domain/assembly"
	"github.com/jhoicas/factory-api/internal/domain/entity"
)

func ptr(s string) *string { return &s }

func graded(name, typ, quality string) *entity.Component {
	return &entity.Component{ID: "id-" + name, Name: name, Type: typ, Quality: quality, Status: entity.StatusAssembled, Location: entity.LocationAssembler}
}

// ---------- DeviceName ----------

func TestDeviceName(t *testing.T) {
	assert.Equal(t, "D1", assembly.DeviceName("A", "B"))
	assert.Equal(t, "D2", assembly.DeviceName("C", "D"))
	assert.Equal(t, "D3", assembly.DeviceName("A", "E"))
	assert.Empty(t, assembly.DeviceName("C", "B"))
	assert.Empty(t, assembly.DeviceName("B", "A"), "el orden importa")
}

// ---------- Check ----------

func TestCheck_Orden(t *testing.T) {
	pending := &entity.Component{Name: "C9", Type: "B", Quality: entity.QualityUnassigned}

	v := assembly.Check("A", "B", nil, nil)
	assert.True(t, errors.Is(v.Err, domain.ErrNotFound))
	assert.Equal(t, "component with type A not found", v.Err.Error())

	v = assembly.Check("A", "B", graded("C1", "A", "B"), nil)
	assert.True(t, errors.Is(v.Err, domain.ErrNotFound))
	assert.Contains(t, v.Err.Error(), "type B")

	// pendiente tiene prioridad sobre el rechazo
	v = assembly.Check("A", "B", graded("C1", "A", "D"), pending)
	assert.True(t, errors.Is(v.Err, domain.ErrQualityPending))
	assert.Nil(t, v.Reject)
	assert.Equal(t, assembly.ReasonQualityPending, v.Reason)
}

func TestCheck_RechazaPrimeroTipoAConD(t *testing.T) {
	c1, c2 := graded("C1", "A", "D"), graded("C2", "B", "A")
	v := assembly.Check("A", "B", c1, c2)

	require.False(t, v.OK())
	assert.True(t, errors.Is(v.Err, domain.ErrComponentRejected))
	assert.Same(t, c1, v.Reject)
	assert.Equal(t, entity.StatusAssembled, c1.Status, "Check no modifica; el llamador persiste el rechazo")
}

func TestCheck_DTipoCNoRechaza(t *testing.T) {
	v := assembly.Check("C", "B", graded("C1", "C", "D"), graded("C2", "B", "A"))
	assert.True(t, v.OK())
}

func TestCheck_AmbosFRechazaSegundo(t *testing.T) {
	c1, c2 := graded("C1", "C", "F"), graded("C2", "E", "F")
	v := assembly.Check("C", "E", c1, c2)

	assert.True(t, errors.Is(v.Err, domain.ErrComponentRejected))
	assert.Same(t, c2, v.Reject)
}

func TestCheck_SoloUnF(t *testing.T) {
	v := assembly.Check("A", "B", graded("C1", "A", "F"), graded("C2", "B", "C"))
	assert.True(t, v.OK())
}

// ---------- NewDevice ----------

func TestNewDevice(t *testing.T) {
	d, err := assembly.NewDevice("A", "B", false)
	require.NoError(t, err)
	assert.Equal(t, "D1", d.Name)

	d, err = assembly.NewDevice("C", "C", false)
	require.NoError(t, err)
	assert.Empty(t, d.Name, "par sin nombre se permite por defecto")

	_, err = assembly.NewDevice("C", "C", true)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = assembly.NewDevice("B", "B", false)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = assembly.NewDevice("A", "D", false)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// ---------- ApplyDevicePatch ----------

func TestApplyDevicePatch(t *testing.T) {
	base := func() *entity.Device { return &entity.Device{ID: "d-1", Name: "D1", Component1: "A", Component2: "B"} }

	d := base()
	changed, err := assembly.ApplyDevicePatch(d, assembly.DevicePatch{}, false)
	require.NoError(t, err)
	assert.False(t, changed)

	d = base()
	changed, err = assembly.ApplyDevicePatch(d, assembly.DevicePatch{Component2: ptr("E")}, false)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "D3", d.Name, "nombre recalculado al cambiar tipos")

	d = base()
	changed, err = assembly.ApplyDevicePatch(d, assembly.DevicePatch{Name: ptr("Prototype"), Component2: ptr("E")}, false)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "Prototype", d.Name)

	d = base()
	changed, err = assembly.ApplyDevicePatch(d, assembly.DevicePatch{Component1: ptr("A"), Name: ptr("D1")}, false)
	require.NoError(t, err)
	assert.False(t, changed, "mismos valores")

	d = base()
	_, err = assembly.ApplyDevicePatch(d, assembly.DevicePatch{Component1: ptr("B")}, false)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, *base(), *d)

	d = base()
	_, err = assembly.ApplyDevicePatch(d, assembly.DevicePatch{Component2: ptr("C")}, true)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "modo estricto rechaza pares sin nombre")
}
