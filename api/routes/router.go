package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/careerlink-app/careerlink-backend/api/controllers"
	"github.com/careerlink-app/careerlink-backend/api/middleware"
	"github.com/careerlink-app/careerlink-backend/internal/applications"
	"github.com/careerlink-app/careerlink-backend/internal/identity"
	"github.com/careerlink-app/careerlink-backend/internal/jobs"
	"github.com/careerlink-app/careerlink-backend/internal/profiles"
	sessionsvc "github.com/careerlink-app/careerlink-backend/internal/session"
	"github.com/careerlink-app/careerlink-backend/pkg/auth/session"
	"github.com/careerlink-app/careerlink-backend/pkg/config"
	"github.com/careerlink-app/careerlink-backend/pkg/db"
	"github.com/careerlink-app/careerlink-backend/pkg/enums"
	"github.com/careerlink-app/careerlink-backend/pkg/logger"
	"github.com/careerlink-app/careerlink-backend/pkg/metrics"
	"github.com/careerlink-app/careerlink-backend/pkg/redis"
)

// RouterParams bundles everything the HTTP surface depends on.
type RouterParams struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    redis.Pinger
	Sessions session.AccessSessionChecker

	Provider     identity.Provider
	Refresher    controllers.IdentityRefresher
	Session      sessionsvc.Service
	Profiles     profiles.Service
	Jobs         jobs.Service
	Applications applications.Service

	HTTPMetrics    *metrics.HTTPMetrics
	MetricsHandler http.Handler
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if p.HTTPMetrics != nil {
		r.Use(middleware.Metrics(p.HTTPMetrics))
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.DB, p.Redis))
	})

	if p.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", p.MetricsHandler)
	} else {
		r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(p.Provider, logg))
		r.Post("/login", controllers.AuthLogin(p.Provider, logg))
		r.Post("/logout", controllers.AuthLogout(p.Provider, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(p.Provider, logg))
	})

	// Public board surface plus the route guard. The guard accepts
	// anonymous callers, so auth is optional here.
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalAuth(cfg.JWT, p.Sessions, logg))
		r.Get("/api/v1/jobs", controllers.JobsSearch(p.Jobs, logg))
		r.Get("/api/v1/jobs/{jobId}", controllers.JobsGet(p.Jobs, logg))
		r.Post("/api/v1/session/authorize", controllers.SessionAuthorize(p.Session, logg))
		r.Get("/api/v1/session", controllers.SessionSnapshot(p.Session, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, p.Sessions, logg))

		r.Route("/profile", func(r chi.Router) {
			r.Get("/me", controllers.ProfileMe(p.Profiles, logg))
			r.Post("/complete", controllers.ProfileComplete(p.Profiles, p.Refresher, logg))
		})

		r.Route("/employer", func(r chi.Router) {
			r.Use(middleware.RequireUserType(enums.UserTypeEmployer, logg))
			r.Use(middleware.RequireCompleteProfile(logg))
			r.Post("/jobs", controllers.JobsPost(p.Jobs, logg))
			r.Get("/jobs", controllers.JobsMine(p.Jobs, logg))
			r.Post("/jobs/{jobId}/close", controllers.JobsClose(p.Jobs, logg))
			r.Get("/jobs/{jobId}/applications", controllers.ApplicationsForJob(p.Applications, logg))
			r.Get("/applications", controllers.ApplicationsIncoming(p.Applications, logg))
			r.Patch("/applications/{applicationId}/status", controllers.ApplicationsUpdateStatus(p.Applications, logg))
		})

		r.Route("/jobseeker", func(r chi.Router) {
			r.Use(middleware.RequireUserType(enums.UserTypeJobSeeker, logg))
			r.Use(middleware.RequireCompleteProfile(logg))
			r.Post("/jobs/{jobId}/apply", controllers.ApplicationsApply(p.Applications, logg))
			r.Get("/applications", controllers.ApplicationsMine(p.Applications, logg))
		})
	})

	return r
}
