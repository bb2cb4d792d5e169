package report

import "time"

// DeviceRow fila del informe de dispositivos.
type DeviceRow struct {
	Name       string
	Component1 string
	Component2 string
	CreatedAt  time.Time
}

// UnnamedLabel etiqueta de los dispositivos cuyo par de tipos no tiene nombre.
const UnnamedLabel = "(unnamed)"

// AssemblyReport datos del informe de ensamblaje.
type AssemblyReport struct {
	GeneratedAt time.Time
	Devices     []DeviceRow
	ByName      map[string]int // sin nombre se cuenta bajo UnnamedLabel
}

// ReportGenerator genera el documento (PDF) del informe.
type ReportGenerator interface {
	GenerateAssemblyReport(r AssemblyReport) ([]byte, error)
}
