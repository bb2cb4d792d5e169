package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSONConCampos(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter(&buf, Config{Env: "production", Level: "info", App: "factory-api"})

	l.Named("assembly").Info().Str("device", "D1").Msg("device assembled")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "factory-api", entry["app"])
	assert.Equal(t, "assembly", entry["component"])
	assert.Equal(t, "D1", entry["device"])
	assert.Equal(t, "info", entry["level"])
}

func TestNivelFiltraEventos(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, "warn")

	l.Info().Msg("descartado")
	assert.Zero(t, buf.Len(), "info no se emite con nivel warn")

	l.Warn().Msg("emitido")
	assert.NotZero(t, buf.Len())
}

func TestParseLevel_Desconocido(t *testing.T) {
	assert.Equal(t, "info", parseLevel("verbose").String())
	assert.Equal(t, "debug", parseLevel(" DEBUG ").String())
}
