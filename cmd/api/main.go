package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/contrib/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jhoicas/factory-api/internal/application/assembly"
	"github.com/jhoicas/factory-api/internal/application/auth"
	"github.com/jhoicas/factory-api/internal/application/report"
	"github.com/jhoicas/factory-api/internal/application/usecase"
	"github.com/jhoicas/factory-api/internal/domain/repository"
	"github.com/jhoicas/factory-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/factory-api/internal/infrastructure/pdf"
	"github.com/jhoicas/factory-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/factory-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/factory-api/internal/interfaces/http"
	"github.com/jhoicas/factory-api/pkg/config"
	"github.com/jhoicas/factory-api/pkg/logger"
	"github.com/jhoicas/factory-api/pkg/metrics"
)

// stores repositorios y runner transaccional del driver elegido.
type stores struct {
	users      repository.UserRepository
	components repository.ComponentRepository
	devices    repository.DeviceRepository
	tx         assembly.TxRunner
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var st stores
	switch cfg.DB.Driver {
	case "memory":
		log.Warn().Msg("usando almacenamiento en memoria: los datos se pierden al reiniciar")
		mem := memory.NewStore()
		st = stores{users: mem.Users(), components: mem.Components(), devices: mem.Devices(), tx: mem}
	default:
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, cfg.DB.ConnectionString()); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		st = stores{
			users:      postgres.NewUserRepository(pool),
			components: postgres.NewComponentRepository(pool),
			devices:    postgres.NewDeviceRepository(pool),
			tx:         postgres.NewTxRunner(pool),
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Limitador de login: sólo si hay Redis configurado.
	var limiter auth.Limiter
	if cfg.Redis.Enabled() {
		client, err := infraredis.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		limiter = infraredis.NewLoginLimiter(client, cfg.Redis.LoginLimit, cfg.Redis.LoginWindow())
	}

	authUC := auth.NewAuthUseCase(st.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, limiter, m, log)
	userUC := usecase.NewUserUseCase(st.users, cfg.Users.ActiveWindow())
	componentUC := usecase.NewComponentUseCase(st.components, m, log)
	deviceUC := usecase.NewDeviceUseCase(st.devices, cfg.Assembly.StrictNaming)
	assembleUC := assembly.NewAssembleUseCase(st.tx, cfg.Assembly.StrictNaming, m, log)
	reportUC := report.NewReportUseCase(st.devices, infrapdf.NewMarotoReportGenerator(cfg.App.Name+" - assembly report"))

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:    cfg.App.Name,
		Timeout: cfg.HTTP.ReadTimeout(),
	}, log, m)

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "Factory API",
		}))
	} else {
		log.Warn().Str("file", cfg.App.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      userUC,
		ComponentUC: componentUC,
		DeviceUC:    deviceUC,
		AssembleUC:  assembleUC,
		ReportUC:    reportUC,
		Gatherer:    reg,
		ServiceName: cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout())
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
