package main

import (
	"companion/cmd/internal/composer"
	"companion/cmd/internal/config"
	"companion/cmd/internal/directory"
	"companion/cmd/internal/domain/sqlite"
	"companion/cmd/internal/domain/sqlite/repository"
	"companion/cmd/internal/integration/google/gemini"
	"companion/cmd/internal/integration/mailer"
	"companion/cmd/internal/metrics"
	"companion/cmd/internal/routes"
	"companion/cmd/internal/scheduler"
	"companion/cmd/internal/service"
	"companion/cmd/internal/utils/validators"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Warnf("no .env file loaded, using environment only: %v", err)
	}
	log.SetLevel(parseLevel(cfg.LogLevel))

	validate := validator.New()
	validators.Register(validate)

	// Init SQLite
	db, err := sqlite.Init(cfg.DatabasePath)
	if err != nil {
		log.Fatal("failed to initialize database", err)
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	sender, err := newMailSender(cfg)
	if err != nil {
		log.Fatal("failed to initialize mail transport", err)
	}

	ctx := context.Background()
	var generator composer.Generator
	geminiClient, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Warnf("text generation disabled, every message will use the fallback text: %v", err)
	} else {
		generator = geminiClient
		defer geminiClient.Close()
	}

	// Getting repositories
	apptRepo := repository.NewAppointmentRepository(db)

	// Getting services
	comp := composer.New(generator, m)
	sched := scheduler.New(sender, scheduler.WithMetrics(m))
	apptService := service.NewAppointmentService(apptRepo, directory.Default(), sender, validate, m)
	notifService := service.NewNotificationService(comp, sched, validate)

	renderer, err := routes.NewTemplateRenderer()
	if err != nil {
		log.Fatal("failed to parse templates", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Logger.SetLevel(parseLevel(cfg.LogLevel))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(requestLogger())

	routes.Register(e, routes.Handlers{
		Appointments:    routes.NewAppointmentDefault(apptService),
		Notifications:   routes.NewNotificationDefault(notifService),
		Realtime:        routes.NewRealtimeDefault(m),
		Health:          routes.NewHealthDefault(pinger(db)),
		Metrics:         m,
		MetricsHandler:  promhttp.Handler(),
		SubmitRateLimit: cfg.SubmitRateLimit,
	})

	go func() {
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	if n := sched.Pending(); n > 0 {
		log.Warnf("shutting down with %d deferred notifications pending; they will not be sent", n)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Errorf("server shutdown: %v", err)
	}
}

func newMailSender(cfg *config.Config) (mailer.Sender, error) {
	switch cfg.MailProvider {
	case "smtp":
		return mailer.NewSMTPSender(mailer.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
			FromName: cfg.MailFromName,
		})
	case "sendgrid":
		return mailer.NewSendGridSender(mailer.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.MailFrom,
			FromName:  cfg.MailFromName,
		})
	case "log":
		return mailer.NewLogSender(), nil
	}
	return nil, fmt.Errorf("unknown MAIL_PROVIDER %q", cfg.MailProvider)
}

func pinger(db *gorm.DB) routes.Pinger {
	return func(ctx context.Context) error {
		return sqlite.Ping(ctx, db)
	}
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				log.Errorf("%s %s %d %s: %v", v.Method, v.URI, v.Status, v.Latency, v.Error)
				return nil
			}
			log.Infof("%s %s %d %s", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	})
}

func parseLevel(level string) log.Lvl {
	switch level {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}
