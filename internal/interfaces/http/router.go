package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/factory-api/internal/application/assembly"
	"github.com/jhoicas/factory-api/internal/application/auth"
	"github.com/jhoicas/factory-api/internal/application/report"
	"github.com/jhoicas/factory-api/internal/application/usecase"
	"github.com/jhoicas/factory-api/internal/domain/access"
	"github.com/jhoicas/factory-api/pkg/logger"
	"github.com/jhoicas/factory-api/pkg/metrics"
)

// AppConfig opciones del servidor Fiber.
type AppConfig struct {
	Name    string
	Timeout time.Duration // lectura y escritura; 0 = sin límite
}

// NewApp construye la aplicación Fiber con el manejador de errores y los middlewares
// comunes: recover, request id y log de peticiones.
func NewApp(cfg AppConfig, log *logger.Logger, m *metrics.Metrics) *fiber.App {
	if log == nil {
		log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(RequestLogger(log.Named("http"), m))
	return app
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	ComponentUC *usecase.ComponentUseCase
	DeviceUC    *usecase.DeviceUseCase
	AssembleUC  *assembly.AssembleUseCase
	ReportUC    *report.ReportUseCase
	Gatherer    prometheus.Gatherer // nil = sin /metrics
	ServiceName string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	authHandler := NewAuthHandler(deps.AuthUC)
	userHandler := NewUserHandler(deps.UserUC)
	componentHandler := NewComponentHandler(deps.ComponentUC)
	deviceHandler := NewDeviceHandler(deps.AssembleUC, deps.DeviceUC, deps.ReportUC)

	// Auth y registro (público)
	app.Post("/auth/login", authHandler.Login)
	app.Post("/users/register", authHandler.Register)

	requireAuth := AuthMiddleware(deps.AuthUC)

	// Users: listado y usuario actual sólo requieren autenticación
	users := app.Group("/users", requireAuth)
	users.Get("/list", userHandler.List)
	users.Get("/current", userHandler.Current)
	users.Put("/manage/:id", RequirePermission(access.DomainUsers, access.ActionUpdate), userHandler.Manage)
	users.Delete("/delete/:id", RequirePermission(access.DomainUsers, access.ActionDelete), userHandler.Delete)

	// Producer: componentes
	producer := app.Group("/producer", requireAuth)
	producer.Post("/add", RequirePermission(access.DomainComponents, access.ActionCreate), componentHandler.Create)
	producer.Get("/list", RequirePermission(access.DomainComponents, access.ActionList), componentHandler.List)
	producer.Put("/update/:id", RequirePermission(access.DomainComponents, access.ActionUpdate), componentHandler.Update)
	producer.Delete("/delete/:id", RequirePermission(access.DomainComponents, access.ActionDelete), componentHandler.Delete)

	// Assembler: dispositivos y revisión de componentes
	assembler := app.Group("/assembler", requireAuth)
	assembler.Put("/update/components/:id", RequirePermission(access.DomainDevices, access.ActionUpdate), componentHandler.Review)
	assembler.Post("/add", RequirePermission(access.DomainDevices, access.ActionCreate), deviceHandler.Create)
	assembler.Get("/list", RequirePermission(access.DomainDevices, access.ActionList), deviceHandler.List)
	assembler.Get("/report", RequirePermission(access.DomainDevices, access.ActionList), deviceHandler.Report)
	assembler.Put("/update/devices/:id", RequirePermission(access.DomainDevices, access.ActionUpdate), deviceHandler.Update)
	assembler.Delete("/delete/:id", RequirePermission(access.DomainDevices, access.ActionDelete), deviceHandler.Delete)
}
