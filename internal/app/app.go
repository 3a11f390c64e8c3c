package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/daybook/daybook/internal/config"
	"github.com/daybook/daybook/internal/database"
	"github.com/daybook/daybook/internal/rest"
	"github.com/daybook/daybook/pkg/store"
	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Application wires configuration, storage, router, and server lifecycle.
type Application struct {
	cfg    config.Application
	deps   *Dependencies
	router *mux.Router
	srv    *http.Server
	cron   *cron.Cron
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication() (*Application, error) {
	cfg, err := config.Load("./config/application.yaml")
	if err != nil {
		return nil, err
	}

	medium, err := openMedium(cfg)
	if err != nil {
		return nil, err
	}

	r := mux.NewRouter()

	// Build dependencies (services, handlers...)
	deps := BuildDependencies(medium, cfg)

	// Middleware chain
	SetupMiddleware(r)

	// Routes
	RegisterRoutes(r, deps)

	// Frontend
	if cfg.Frontend.Enabled {
		frontend := rest.NewFrontendHandler("frontend", "index.html")
		r.PathPrefix("/").Handler(frontend)
	}

	srv := &http.Server{
		Handler:      r,
		Addr:         cfg.Listen,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, deps: deps, router: r, srv: srv, cron: cron.New()}, nil
}

// openMedium builds the key-value medium selected by the storage config.
func openMedium(cfg config.Application) (store.Medium, error) {
	switch cfg.Storage.Driver {
	case "file", "":
		return store.NewFileMedium(cfg.Storage.Dir)
	case "postgres":
		pool, err := database.Open(cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(cfg.Database); err != nil {
			return nil, err
		}
		return store.NewPostgresMedium(pool), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// Run arms reminders for all stored events, starts the resweep cron, and
// serves HTTP until the server is shut down.
func (a *Application) Run() error {
	ctx := context.Background()

	if a.cfg.Notifications.Enabled {
		a.deps.Permissions.Request(ctx)
	}
	a.rescheduleReminders(ctx)

	if spec := a.cfg.Notifications.ResweepCron; spec != "" {
		if _, err := a.cron.AddFunc(spec, func() {
			a.rescheduleReminders(context.Background())
		}); err != nil {
			return fmt.Errorf("invalid resweep cron %q: %w", spec, err)
		}
		a.cron.Start()
	}

	log.Infof("Starting server on %s", a.srv.Addr)
	return a.srv.ListenAndServe()
}

// Shutdown stops the HTTP server, the resweep cron, and all pending
// reminder timers.
func (a *Application) Shutdown(ctx context.Context) error {
	err := a.srv.Shutdown(ctx)
	<-a.cron.Stop().Done()
	a.deps.Scheduler.Stop()
	return err
}

// rescheduleReminders re-arms a reminder for every stored event. Timers do
// not survive a restart or a host suspend, so this runs at startup and on
// the resweep cron.
func (a *Application) rescheduleReminders(ctx context.Context) {
	events, err := a.deps.EventService.List(ctx)
	if err != nil {
		log.Errorf("failed to load events for reminder resweep: %v", err)
		return
	}
	a.deps.Scheduler.RescheduleAll(events)
}
