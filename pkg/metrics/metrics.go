// Package metrics expone contadores Prometheus del servicio.
// Todos los métodos aceptan receptor nil para que los tests no necesiten registry.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics agrupa los vectores registrados por el servicio.
type Metrics struct {
	requests   *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	components *prometheus.CounterVec
	devices    *prometheus.CounterVec
	rejections *prometheus.CounterVec
	logins     *prometheus.CounterVec
}

// New registra las métricas en reg. Con reg nil devuelve nil (métricas desactivadas).
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return nil
	}
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		components: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "components_events_total",
			Help: "Component lifecycle events (created, reviewed).",
		}, []string{"event"}),
		devices: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "devices_assembled_total",
			Help: "Devices assembled by resolved name.",
		}, []string{"name"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "assembly_failures_total",
			Help: "Device assemblies that failed, by reason.",
		}, []string{"reason"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_logins_total",
			Help: "Login attempts by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.requests, m.latency, m.components, m.devices, m.rejections, m.logins)
	return m
}

// ObserveRequest registra una petición HTTP terminada.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ComponentEvent cuenta un evento del ciclo de vida de componentes.
func (m *Metrics) ComponentEvent(event string) {
	if m == nil {
		return
	}
	m.components.WithLabelValues(event).Inc()
}

// DeviceAssembled cuenta un dispositivo creado. Nombre vacío se etiqueta "unresolved".
func (m *Metrics) DeviceAssembled(name string) {
	if m == nil {
		return
	}
	if name == "" {
		name = "unresolved"
	}
	m.devices.WithLabelValues(name).Inc()
}

// AssemblyFailed cuenta un ensamblaje fallido.
func (m *Metrics) AssemblyFailed(reason string) {
	if m == nil {
		return
	}
	m.rejections.WithLabelValues(reason).Inc()
}

// Login cuenta un intento de login (ok, invalid, limited).
func (m *Metrics) Login(result string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(result).Inc()
}
