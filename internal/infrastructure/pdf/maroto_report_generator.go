// Package pdf genera el informe de ensamblaje en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────┐
//	│  HEADER: título + fecha de generación            │
//	│  RESUMEN: dispositivos por nombre                │
//	│  TABLA: Nombre | Comp. 1 | Comp. 2 | Creado      │
//	└─────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"sort"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/factory-api/internal/application/report"
)

var _ report.ReportGenerator = (*MarotoReportGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoReportGenerator implementa report.ReportGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	title string
}

// NewMarotoReportGenerator construye el generador; title aparece en la cabecera y metadatos.
func NewMarotoReportGenerator(title string) *MarotoReportGenerator {
	return &MarotoReportGenerator{title: title}
}

// GenerateAssemblyReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateAssemblyReport(r report.AssemblyReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRows(r)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(r.Devices)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *MarotoReportGenerator) headerRow(r report.AssemblyReport) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(g.title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("%d devices", len(r.Devices)), props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Generated "+r.GeneratedAt.UTC().Format("2006-01-02 15:04 MST"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// summaryRows una fila por nombre, ordenadas alfabéticamente con UnnamedLabel al final.
func summaryRows(r report.AssemblyReport) []core.Row {
	names := make([]string, 0, len(r.ByName))
	for name := range r.ByName {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if names[i] == report.UnnamedLabel || names[j] == report.UnnamedLabel {
			return names[j] == report.UnnamedLabel && names[i] != report.UnnamedLabel
		}
		return names[i] < names[j]
	})

	rows := []core.Row{row.New(7).Add(col.New(12).Add(text.New("SUMMARY", props.Text{
		Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
	})))}
	for _, name := range names {
		rows = append(rows, row.New(5).Add(
			col.New(3).Add(text.New(name, props.Text{Size: 8, Left: 1})),
			col.New(2).Add(text.New(strconv.Itoa(r.ByName[name]), props.Text{Size: 8, Align: align.Right})),
			col.New(7),
		))
	}
	return rows
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Name", 3, align.Left),
		h("Component 1", 2, align.Center),
		h("Component 2", 2, align.Center),
		h("Created", 5, align.Right),
	)
}

func tableRows(devices []report.DeviceRow) []core.Row {
	rows := make([]core.Row, 0, len(devices))
	for _, d := range devices {
		rows = append(rows, row.New(6).Add(
			col.New(3).Add(text.New(displayName(d.Name), props.Text{Size: 8, Left: 1, Top: 1})),
			col.New(2).Add(text.New(d.Component1, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(d.Component2, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(d.CreatedAt.UTC().Format("2006-01-02 15:04:05"), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return rows
}

func displayName(name string) string {
	if name == "" {
		return report.UnnamedLabel
	}
	return name
}
