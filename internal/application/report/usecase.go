// Package report informe descargable de dispositivos ensamblados.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/factory-api/internal/domain/repository"
)

// pageSize filas leídas por consulta al recorrer todos los dispositivos.
const pageSize = 500

// ReportUseCase arma el informe de ensamblaje y delega el formato en el generador.
type ReportUseCase struct {
	devices   repository.DeviceRepository
	generator ReportGenerator
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(devices repository.DeviceRepository, generator ReportGenerator) *ReportUseCase {
	return &ReportUseCase{devices: devices, generator: generator, now: time.Now}
}

// Build recopila los datos del informe sin generar el documento.
func (uc *ReportUseCase) Build(ctx context.Context) (AssemblyReport, error) {
	r := AssemblyReport{GeneratedAt: uc.now(), ByName: map[string]int{}}
	for offset := 0; ; offset += pageSize {
		list, err := uc.devices.List(ctx, pageSize, offset)
		if err != nil {
			return AssemblyReport{}, fmt.Errorf("report: list devices: %w", err)
		}
		for _, d := range list {
			r.Devices = append(r.Devices, DeviceRow{
				Name:       d.Name,
				Component1: d.Component1,
				Component2: d.Component2,
				CreatedAt:  d.CreatedAt,
			})
			name := d.Name
			if name == "" {
				name = UnnamedLabel
			}
			r.ByName[name]++
		}
		if len(list) < pageSize {
			break
		}
	}
	return r, nil
}

// AssemblyPDF devuelve el PDF del informe y su nombre de archivo.
func (uc *ReportUseCase) AssemblyPDF(ctx context.Context) ([]byte, string, error) {
	r, err := uc.Build(ctx)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.generator.GenerateAssemblyReport(r)
	if err != nil {
		return nil, "", fmt.Errorf("report: generate pdf: %w", err)
	}
	filename := fmt.Sprintf("assembly-report-%s.pdf", r.GeneratedAt.UTC().Format("20060102-150405"))
	return pdf, filename, nil
}
