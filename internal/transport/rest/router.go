package rest

import (
	"database/sql"
	"log/slog"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/auth"
	"github.com/frahmantamala/hr-management/internal/employee"
	"github.com/frahmantamala/hr-management/internal/learningplan"
	"github.com/frahmantamala/hr-management/internal/performance"
	"github.com/frahmantamala/hr-management/internal/transport/middleware"
	"github.com/go-chi/chi"
)

func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	cfg *internal.Config,
	authHandler *auth.Handler,
	employeeHandler *employee.Handler,
	planHandler *learningplan.Handler,
	reviewHandler *performance.Handler,
	dashboardHandler *DashboardHandler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS(cfg.Server.OriginList()))
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Mount API under /api/v1
	router.Route("/api/v1", func(r chi.Router) {
		// Health check route
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		if authHandler != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", authHandler.Login)
				sr.Post("/refresh", authHandler.RefreshToken)
				sr.Post("/logout", authHandler.Logout)
			})
		}

		if authHandler != nil {
			// Protected routes that require authentication
			r.Group(func(pr chi.Router) {
				pr.Use(authHandler.AuthMiddleware)

				if dashboardHandler != nil {
					pr.Get("/dashboard", dashboardHandler.GetDashboard)
				}

				if employeeHandler != nil {
					pr.Get("/departments", employeeHandler.ListDepartments)

					pr.Route("/employees", func(er chi.Router) {
						er.Post("/", employeeHandler.CreateEmployee)        // POST /employees
						er.Get("/", employeeHandler.ListEmployees)          // GET /employees
						er.Get("/me", employeeHandler.GetCurrentEmployee)   // GET /employees/me
						er.Get("/subordinates", employeeHandler.GetSubordinates)
						er.Get("/{id}", employeeHandler.GetEmployee)        // GET /employees/:id
						er.Patch("/{id}", employeeHandler.UpdateEmployee)   // PATCH /employees/:id
					})
				}

				if planHandler != nil {
					pr.Route("/learning-plans", func(lr chi.Router) {
						lr.Post("/", planHandler.SubmitPlan)       // POST /learning-plans
						lr.Get("/", planHandler.ListPlans)         // GET /learning-plans
						lr.Get("/subordinates", planHandler.ListSubordinatePlans)
						lr.Get("/{id}", planHandler.GetPlan)       // GET /learning-plans/:id
						lr.Patch("/{id}", planHandler.UpdatePlan)  // PATCH /learning-plans/:id
						lr.Patch("/{id}/review", planHandler.ReviewPlan)
					})
				}

				if reviewHandler != nil {
					pr.Route("/performance-reviews", func(rr chi.Router) {
						rr.Post("/", reviewHandler.CreateReview)      // POST /performance-reviews
						rr.Get("/", reviewHandler.ListOwnReviews)     // GET /performance-reviews
						rr.Get("/subordinates", reviewHandler.ListSubordinateReviews)
						rr.Get("/{id}", reviewHandler.GetReview)      // GET /performance-reviews/:id
						rr.Patch("/{id}", reviewHandler.UpdateReview) // PATCH /performance-reviews/:id
						rr.Patch("/{id}/grade", reviewHandler.GradeReview)
						rr.Patch("/{id}/grade/update", reviewHandler.UpdateGrade)
					})
				}
			})
		}
	})
}
