package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"confprogram/internal/delivery/http/controllers"
	"confprogram/internal/delivery/http/helpers"
	"confprogram/internal/delivery/http/middleware"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(dataset *controllers.DatasetController, serveToken string) *http.ServeMux {
	mux := http.NewServeMux()

	auth := middleware.RequireToken(serveToken)

	// Dataset
	mux.HandleFunc("GET /api/v1/sessions", auth(dataset.GetSessions))
	mux.HandleFunc("GET /api/v1/speakers", auth(dataset.GetSpeakers))
	mux.HandleFunc("GET /api/v1/schedule", auth(dataset.GetSchedule))
	mux.HandleFunc("GET /api/v1/schedule/days/{date}", auth(dataset.GetScheduleDay))
	mux.HandleFunc("GET /api/v1/schedule.ics", auth(dataset.GetCalendar))

	// Health
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
