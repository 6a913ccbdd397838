package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Kennygunderman/state-of-health-be/internal/middleware"
)

// NewRouter constructs the HTTP handler serving the workout API.
//
// Routes:
//
//	GET  /api/health                        → liveness probe (public)
//	POST /api/user                          → userHandler.CreateUser (public)
//	POST /api/workouts                      → workoutHandler.CreateWorkout
//	PUT  /api/workouts/{id}                 → workoutHandler.UpdateWorkout
//	GET  /api/workouts                      → workoutHandler.ListWorkouts
//	GET  /api/workouts/summary              → workoutHandler.GetSummary
//	GET  /api/workouts/summary/weekly       → workoutHandler.GetWeeklySummary
//	GET  /api/workouts/{date}               → workoutHandler.GetWorkout
//	GET  /api/exercises                     → exerciseHandler.ListExercises
//	POST /api/exercises                     → exerciseHandler.CreateExercise
//	DELETE /api/exercises/{id}              → exerciseHandler.DeleteExercise
//	GET  /api/templates                     → exerciseHandler.ListTemplates
//	POST /api/templates                     → exerciseHandler.CreateTemplate
//	DELETE /api/templates/{id}              → exerciseHandler.DeleteTemplate
//
// All routes except /api/health and /api/user sit behind the supplied
// auth middleware, which resolves the bearer token to a user id.
func NewRouter(
	userHandler *UserHandler,
	workoutHandler *WorkoutHandler,
	exerciseHandler *ExerciseHandler,
	authMiddleware func(http.Handler) http.Handler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		// Public: provisioning a user happens right after sign-up at the
		// identity provider, before the client holds a usable token.
		r.Post("/user", userHandler.CreateUser)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)

			r.Post("/workouts", workoutHandler.CreateWorkout)
			r.Get("/workouts", workoutHandler.ListWorkouts)
			r.Get("/workouts/summary", workoutHandler.GetSummary)
			r.Get("/workouts/summary/weekly", workoutHandler.GetWeeklySummary)
			r.Get("/workouts/{date}", workoutHandler.GetWorkout)
			r.Put("/workouts/{id}", workoutHandler.UpdateWorkout)

			r.Get("/exercises", exerciseHandler.ListExercises)
			r.Post("/exercises", exerciseHandler.CreateExercise)
			r.Delete("/exercises/{id}", exerciseHandler.DeleteExercise)

			r.Get("/templates", exerciseHandler.ListTemplates)
			r.Post("/templates", exerciseHandler.CreateTemplate)
			r.Delete("/templates/{id}", exerciseHandler.DeleteTemplate)
		})
	})

	return r
}
