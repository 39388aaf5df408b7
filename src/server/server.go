package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trading212/src/auth"
	"trading212/src/connectors"
	"trading212/src/database"
	"trading212/src/handler"
	"trading212/src/metrics"
	"trading212/src/repository"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	logger "github.com/sirupsen/logrus"
)

// Deps are the collaborators the relay routes need. A nil Journal leaves the
// journal route unmounted (database disabled).
type Deps struct {
	Client  *connectors.Trading212Client
	Journal *repository.OrderJournalRepository
	Config  *Config
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	if cfg == nil {
		cfg = &Config{}
	}

	// Router with middleware
	r := chi.NewRouter()
	// === Global Middleware ===
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)

	// Public routes
	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.WithError(err).Error(" \"/health error")
		}
	})
	r.Handle("/metrics", metrics.Handler())

	r.Group(func(r chi.Router) {
		if cfg.RequestTimeout > 0 {
			r.Use(middleware.Timeout(cfg.RequestTimeout))
		}
		r.Use(auth.RequireToken(cfg.RelayToken))

		if deps.Journal != nil {
			r.Get("/journal/orders", handler.SearchJournalHandler(deps.Journal))
		}
		if deps.Client != nil {
			r.Get("/account/cash", handler.AccountCashHandler(deps.Client))
			r.Get("/portfolio", handler.PortfolioHandler(deps.Client))
		}
	})

	return r
}

func StartServer(deps Deps) {
	if deps.Config == nil {
		deps.Config = GetConfig()
	}

	// Graceful server
	addr := ":" + deps.Config.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("Listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server crashed")
		}
	}()

	// Shutdown on SIGINT or SIGTERM
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Shutdown error")
	}
}

// NewDepsFromEnv builds the relay dependencies from the environment. The
// journal route is only wired when the database is enabled.
func NewDepsFromEnv() (Deps, error) {
	client, err := connectors.NewTrading212ClientFromEnv()
	if err != nil {
		return Deps{}, err
	}

	deps := Deps{Client: client, Config: GetConfig()}

	switch err := database.InitMainDB(); {
	case err == nil:
		deps.Journal = repository.NewOrderJournalRepository()
	case errors.Is(err, database.ErrDisabled):
		logger.Info("database disabled, /journal/orders not mounted")
	default:
		return Deps{}, err
	}
	return deps, nil
}
