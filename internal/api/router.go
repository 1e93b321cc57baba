package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/madeee1/exercise-tracker/internal/api/httpx"
	"github.com/madeee1/exercise-tracker/internal/api/validate"
	"github.com/madeee1/exercise-tracker/internal/config"
	"github.com/madeee1/exercise-tracker/internal/metrics"
	"github.com/madeee1/exercise-tracker/internal/middleware"
	repo "github.com/madeee1/exercise-tracker/internal/repository"
	"github.com/madeee1/exercise-tracker/internal/services"
	"github.com/madeee1/exercise-tracker/internal/web"
)

func NewRouter(cfg config.Config, us *services.UserService, es *services.ExerciseService, ls *services.LogService) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics, middleware.RateLimit(cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/", web.Index)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/users", func(r chi.Router) {
		// register (or look up) a username
		r.Post("/", func(w http.ResponseWriter, r *http.Request) {
			username := r.FormValue("username")
			if errs := validate.Collect(validate.Required("username", username)); errs != nil {
				httpx.WriteError(w, http.StatusBadRequest, "validation", errs.Error(), errs)
				return
			}

			u, err := us.GetOrCreate(r.Context(), username)
			if err != nil {
				writeServiceError(w, r, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, struct {
				Username string `json:"username"`
				ID       string `json:"id"`
			}{u.Username, u.ID})
		})

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			users, err := us.List(r.Context())
			if err != nil {
				writeServiceError(w, r, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, users)
		})

		r.Post("/{id}/exercises", func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, "id")
			description := r.FormValue("description")
			if errs := validate.Collect(
				validate.Required("description", description),
				validate.Required("duration", r.FormValue("duration")),
			); errs != nil {
				httpx.WriteError(w, http.StatusBadRequest, "validation", errs.Error(), errs)
				return
			}
			// duration is taken as-is; a non-numeric value parses to 0
			duration, _ := strconv.Atoi(r.FormValue("duration"))

			u, e, err := es.Add(r.Context(), id, description, duration, r.FormValue("date"))
			if err != nil {
				writeServiceError(w, r, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, struct {
				Username    string `json:"username"`
				Description string `json:"description"`
				Duration    int    `json:"duration"`
				Date        string `json:"date"`
				ID          string `json:"id"`
			}{u.Username, e.Description, e.Duration, e.DateString(), u.ID})
		})

		r.Get("/{id}/logs", func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, "id")
			q := r.URL.Query()

			var limit *int
			if v := q.Get("limit"); v != "" {
				if n, err := strconv.Atoi(v); err == nil && n >= 0 {
					limit = &n
				}
			}

			res, err := ls.Query(r.Context(), id, q.Get("from"), q.Get("to"), limit)
			if err != nil {
				writeServiceError(w, r, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, res)
		})
	})

	return r
}

// writeServiceError maps service failures onto the HTTP surface. Every
// failure gets an explicit JSON body.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "user_not_found", "user not found", nil)
	case errors.Is(err, repo.ErrDuplicateUsername):
		httpx.WriteError(w, http.StatusConflict, "duplicate_username", "username already taken", nil)
	default:
		slog.Error("store failure", "path", r.URL.Path, "request_id", middleware.RequestIDFrom(r.Context()), "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "store_error", "internal error", nil)
	}
}
