package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/secops-lab/panoptes/pkg/domain/types"
	"github.com/secops-lab/panoptes/pkg/usecase"
	"github.com/secops-lab/panoptes/pkg/utils/logging"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

type Options func(*Server)

// New builds the REST API router. All entity routes share the same shape:
// collection GET/POST plus item GET/PUT/DELETE, with mitigation sub-routes on
// the kinds that carry an assessment.
func New(uc *usecase.UseCases, opts ...Options) (*Server, error) {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Route("/assets", func(r chi.Router) {
			r.Get("/", s.listAssets)
			r.Post("/", s.createAsset)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.getAsset)
				r.Put("/", s.updateAsset)
				r.Delete("/", s.deleteAsset)
				s.mountMitigationRoutes(r, types.EntityKindAsset)
			})
		})

		r.Route("/personnel", func(r chi.Router) {
			r.Get("/", s.listPersonnel)
			r.Post("/", s.createPersonnel)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.getPersonnel)
				r.Put("/", s.updatePersonnel)
				r.Delete("/", s.deletePersonnel)
				s.mountMitigationRoutes(r, types.EntityKindPersonnel)
			})
		})

		r.Route("/travel-plans", func(r chi.Router) {
			r.Get("/", s.listTravelPlans)
			r.Post("/", s.createTravelPlan)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.getTravelPlan)
				r.Put("/", s.updateTravelPlan)
				r.Delete("/", s.deleteTravelPlan)
				s.mountMitigationRoutes(r, types.EntityKindTravel)
			})
		})

		r.Route("/incidents", func(r chi.Router) {
			r.Get("/", s.listIncidents)
			r.Post("/", s.createIncident)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.getIncident)
				r.Put("/", s.updateIncident)
				r.Delete("/", s.deleteIncident)
			})
		})

		r.Route("/risks", func(r chi.Router) {
			r.Get("/", s.listRisks)
			r.Post("/", s.createRisk)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.getRisk)
				r.Put("/", s.updateRisk)
				r.Delete("/", s.deleteRisk)
			})
		})

		r.Route("/mitigations", func(r chi.Router) {
			r.Get("/", s.listMitigationCatalog)
			r.Post("/", s.createCustomMitigation)
			r.Delete("/{id}", s.deleteCustomMitigation)
		})

		r.Route("/detection", func(r chi.Router) {
			r.Post("/run", s.runDetection)
			r.Get("/staged", s.getStagedDetections)
			r.Post("/confirm", s.confirmDetections)
		})
	})

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// mountMitigationRoutes attaches the mitigation sub-routes for one entity
// kind. The handlers share the assessment engine; only the kind differs.
func (s *Server) mountMitigationRoutes(r chi.Router, kind types.EntityKind) {
	r.Route("/mitigations", func(r chi.Router) {
		r.Post("/", s.addMitigation(kind))
		r.Patch("/{mitigationID}", s.updateMitigation(kind))
		r.Delete("/{mitigationID}", s.removeMitigation(kind))
	})
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
