package main

import (
	"context"
	"errors"
	"expvar"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bizdir/internal/ratelimiter"
	"bizdir/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

type application struct {
	config      config
	store       store.Storage
	logger      *zap.SugaredLogger
	rateLimiter ratelimiter.Limiter
}

type config struct {
	addr        string
	env         string
	apiURL      string
	db          dbConfig
	rateLimiter ratelimiter.Config
}

type dbConfig struct {
	addr        string
	maxConns    int
	maxIdleTime string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(app.RateLimiterMiddleware)

	// Abort request processing when the handler exceeds this budget.
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)
		r.Get("/debug/vars", expvar.Handler().ServeHTTP)

		r.Route("/businesses", func(r chi.Router) {
			r.Get("/", app.listBusinessesHandler)
			r.Post("/", app.createBusinessHandler)
			r.Route("/{businessID}", func(r chi.Router) {
				r.Get("/", app.getBusinessHandler)
				r.Put("/", app.updateBusinessHandler)
				r.Delete("/", app.deleteBusinessHandler)
			})
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Post("/", app.createReviewHandler)
			r.Route("/{reviewID}", func(r chi.Router) {
				r.Get("/", app.getReviewHandler)
				r.Put("/", app.updateReviewHandler)
				r.Delete("/", app.deleteReviewHandler)
			})
		})

		r.Route("/photos", func(r chi.Router) {
			r.Post("/", app.createPhotoHandler)
			r.Route("/{photoID}", func(r chi.Router) {
				r.Get("/", app.getPhotoHandler)
				r.Put("/", app.updatePhotoHandler)
				r.Delete("/", app.deletePhotoHandler)
			})
		})

		r.Route("/users/{userID}", func(r chi.Router) {
			r.Get("/businesses", app.getUserBusinessesHandler)
			r.Get("/reviews", app.getUserReviewsHandler)
			r.Get("/photos", app.getUserPhotosHandler)
		})
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
