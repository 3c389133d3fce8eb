package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/momentumhq/momentum-lambda/internal/auth"
	"github.com/momentumhq/momentum-lambda/internal/goal"
	"github.com/momentumhq/momentum-lambda/internal/journal"
	"github.com/momentumhq/momentum-lambda/internal/middlewares"
	"github.com/momentumhq/momentum-lambda/internal/routine"
	"github.com/momentumhq/momentum-lambda/internal/stats"
	"github.com/momentumhq/momentum-lambda/internal/timer"
	"github.com/momentumhq/momentum-lambda/internal/user"
)

type RouterConfig struct {
	UserHandler    *user.Handler
	TimerHandler   *timer.Handler
	GoalHandler    *goal.Handler
	RoutineHandler *routine.Handler
	JournalHandler *journal.Handler
	StatsHandler   *stats.Handler
}

func New(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", cfg.UserHandler.GoogleLogin)
		r.Post("/refresh", cfg.UserHandler.RefreshToken)
		r.Post("/logout", auth.NewHandler().Logout)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/timers", timer.Routes(cfg.TimerHandler))
		r.Mount("/goals", goal.Routes(cfg.GoalHandler))
		r.Mount("/routines", routine.Routes(cfg.RoutineHandler))
		r.Mount("/journal", journal.Routes(cfg.JournalHandler))
		r.Mount("/stats", stats.Routes(cfg.StatsHandler))
		r.Mount("/users", user.Routes(cfg.UserHandler))
	})
	return r
}
