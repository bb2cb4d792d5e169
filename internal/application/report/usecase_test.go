package report_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/factory-api/internal/application/report"
	"github.com/jhoicas/factory-api/internal/domain/entity"
	"github.com/jhoicas/factory-api/internal/infrastructure/memory"
)

type captureGenerator struct {
	got report.AssemblyReport
	err error
}

func (g *captureGenerator) GenerateAssemblyReport(r report.AssemblyReport) ([]byte, error) {
	g.got = r
	return []byte("%PDF-fake"), g.err
}

func TestAssemblyPDF_RecorreTodasLasPaginas(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	// más de una página de lectura
	for i := 0; i < 620; i++ {
		name := "D1"
		if i%4 == 0 {
			name = ""
		}
		require.NoError(t, s.Devices().Create(ctx, &entity.Device{
			ID: fmt.Sprintf("d-%d", i), Name: name, Component1: "A", Component2: "B", CreatedAt: time.Now(),
		}))
	}
	gen := &captureGenerator{}
	uc := report.NewReportUseCase(s.Devices(), gen)

	pdf, filename, err := uc.AssemblyPDF(ctx)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(pdf))
	assert.True(t, strings.HasPrefix(filename, "assembly-report-"))
	assert.True(t, strings.HasSuffix(filename, ".pdf"))

	assert.Len(t, gen.got.Devices, 620)
	assert.Equal(t, 155, gen.got.ByName[report.UnnamedLabel])
	assert.Equal(t, 465, gen.got.ByName["D1"])
	assert.NotContains(t, gen.got.ByName, "", "los sin nombre se agrupan bajo una etiqueta visible")
}

func TestAssemblyPDF_ErrorDelGenerador(t *testing.T) {
	gen := &captureGenerator{err: errors.New("font missing")}
	uc := report.NewReportUseCase(memory.NewStore().Devices(), gen)

	_, _, err := uc.AssemblyPDF(context.Background())
	assert.ErrorIs(t, err, gen.err)
}
