package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"github.com/wejdan/movies-server/docs" //this is required to generate swagger docs
	"github.com/wejdan/movies-server/internal/auth"
	"github.com/wejdan/movies-server/internal/domain/reviews"
	"github.com/wejdan/movies-server/internal/mailer"
	"github.com/wejdan/movies-server/internal/otp"
	"github.com/wejdan/movies-server/internal/ratelimiter"
	"github.com/wejdan/movies-server/internal/store"
)

type application struct {
	config        config
	store         store.Storage
	reviews       *reviews.Service
	logger        *zap.SugaredLogger
	cld           *cloudinary.Cloudinary
	mailer        mailer.Client
	authenticator auth.Authenticator
	rateLimiter   ratelimiter.Limiter
	otp           *otp.Store
}

type config struct {
	addr        string
	db          dbConfig
	redis       redisConfig
	env         string
	apiURL      string
	mail        mailConfig
	frontendURL string
	auth        authConfig
	rateLimiter ratelimiter.Config
}

type authConfig struct {
	basic basicConfig
	token tokenConfig
}

type tokenConfig struct {
	secret          string
	refreshSecret   string
	accessTokenExp  time.Duration
	refreshTokenExp time.Duration
	iss             string
}

type basicConfig struct {
	user string
	pass string
}

type mailConfig struct {
	fromEmail string
	smtp      smtpConfig
}

type smtpConfig struct {
	host     string
	port     int
	username string
	password string
}

type dbConfig struct {
	addr         string
	maxOpenConns int
	maxIdleTime  string
}

type redisConfig struct {
	addr     string
	password string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.RateLimiterMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	//Set a timeout value on the request context (ctx), that will signal through ctx.Done() that the request has timed out and further processing should be stopped
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)
		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))

		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

		// Public routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/request-otp", app.requestOTPHandler)
			r.Post("/signup", app.signupHandler)
			r.Post("/signin", app.createTokenHandler)
			r.Post("/refresh", app.refreshTokenHandler)
			r.Post("/forgot-password", app.forgotPasswordHandler)
			r.Post("/reset-password", app.resetPasswordHandler)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Get("/me", app.getCurrentUserHandler)
			r.Patch("/password", app.updatePasswordHandler)
			r.Post("/logout", app.logoutHandler)
		})

		r.Get("/genres", app.listGenresHandler)

		r.Route("/movies", func(r chi.Router) {
			r.Get("/", app.listMoviesHandler)
			r.Get("/featured", app.featuredMoviesHandler)
			r.Get("/search", app.searchMoviesHandler)
			r.Get("/genre/{genreID}", app.listMoviesByGenreHandler)

			r.With(app.AuthTokenMiddleware, app.RequireAdmin).Post("/", app.createMovieHandler)

			r.Route("/{movieID}", func(r chi.Router) {
				r.Get("/", app.getMovieHandler)
				r.Get("/similar", app.similarMoviesHandler)
				r.With(app.AuthTokenMiddleware, app.RequireAdmin).Delete("/", app.deleteMovieHandler)

				r.Route("/reviews", func(r chi.Router) {
					r.Get("/", app.listMovieReviewsHandler)
					r.Get("/average", app.getMovieAverageHandler)
					r.With(app.AuthTokenMiddleware).Post("/", app.createReviewHandler)
					r.With(app.AuthTokenMiddleware).Get("/mine", app.getOwnReviewHandler)
					r.With(app.AuthTokenMiddleware).Patch("/{reviewID}", app.updateReviewHandler)
					r.With(app.AuthTokenMiddleware).Delete("/{reviewID}", app.deleteReviewHandler)
				})
			})
		})

		r.Route("/actors", func(r chi.Router) {
			r.Get("/", app.listActorsHandler)
			r.Get("/search", app.searchActorsHandler)
			r.Get("/{actorID}", app.getActorHandler)

			r.Group(func(r chi.Router) {
				r.Use(app.AuthTokenMiddleware, app.RequireAdmin)
				r.Post("/", app.createActorHandler)
				r.Delete("/{actorID}", app.deleteActorHandler)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware, app.RequireAdmin)
			r.Get("/stats", app.appStatsHandler)
			r.Get("/movies/highest-rated", app.highestRatedMoviesHandler)
			r.Get("/movies/recent", app.recentMoviesHandler)
		})
	})
	return r
}

func (app *application) run(mux http.Handler) error {
	// Docs
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/v1"

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	// Implementing graceful shutdown
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
