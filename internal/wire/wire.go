package wire

import (
	"context"
	"net/http"
	"time"

	"tour-booking/internal/adaptor"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/notify"
	"tour-booking/internal/usecase"
	"tour-booking/pkg/metrics"
	"tour-booking/pkg/middleware"
	"tour-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App menyimpan semua dependencies
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
	Repo    *repository.Repository
	Metrics *metrics.Metrics
	Flash   *notify.FlashNotifier
}

// Start runs the background work the app needs until ctx is done.
func (a *App) Start(ctx context.Context, config *utils.Config) {
	go a.Repo.Draft.Run(ctx, config.Session.SweepInterval)
	go a.Flash.Run(ctx, config.Session.SweepInterval)
}

// Wiring menginisialisasi semua dependencies
func Wiring(repo *repository.Repository, config *utils.Config, clock usecase.Clock, logger *zap.Logger) *App {
	flash := notify.NewFlashNotifier(0, config.Session.TTL, time.Now)
	notifier := notify.Multi{flash, notify.NewLogNotifier(logger)}

	service := usecase.NewService(repo, notifier, clock, logger)
	handler := adaptor.NewHandler(service, flash, notifier, config, logger)

	var m *metrics.Metrics
	if config.Metrics.Enabled {
		m = metrics.New(repo.Draft.Active)
		observeMetrics(service.Booking, m)
	}
	observeLog(service.Booking, logger)

	router := setupRouter(handler, config, m, logger)

	return &App{
		Router:  router,
		Service: service,
		Repo:    repo,
		Metrics: m,
		Flash:   flash,
	}
}

// setupRouter konfigurasi Chi router
func setupRouter(
	handler *adaptor.Handler,
	config *utils.Config,
	m *metrics.Metrics,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Session first so the request log carries the session id.
	r.Use(middleware.Session(config.Session.CookieName, config.Session.TTL, logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	if m != nil {
		r.Use(middleware.Metrics(m))
	}

	wirePage(r, handler.Page)
	wireTour(r, handler.Tour)
	wireBooking(r, handler.Booking)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	if m != nil {
		r.Handle("/metrics", m.Handler())
	}

	return r
}
