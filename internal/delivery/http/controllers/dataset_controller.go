package controllers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"regexp"

	"confprogram/internal/delivery/http/helpers"
	"confprogram/internal/domain"
)

// dateRegex matches a schedule day key (YYYY-MM-DD).
var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// DatasetController serves the published dataset files for one event.
// Documents are returned exactly as the transform wrote them.
type DatasetController struct {
	Logger *slog.Logger
	Store  domain.DataStore
}

func NewDatasetController(logger *slog.Logger, store domain.DataStore) *DatasetController {
	return &DatasetController{
		Logger: logger,
		Store:  store,
	}
}

// GetSessions godoc
// @Summary Published sessions
// @Description Returns the published sessions document: a map of session code to session, including timing relationships and resolved slugs.
// @Tags dataset
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]domain.Session
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/v1/sessions [get]
func (c *DatasetController) GetSessions(w http.ResponseWriter, r *http.Request) {
	c.serveDocument(w, r, domain.PublicSessions)
}

// GetSpeakers godoc
// @Summary Published speakers
// @Description Returns the published speakers document: a map of speaker code to speaker, with normalized social URLs and resolved slugs.
// @Tags dataset
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]domain.Speaker
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/v1/speakers [get]
func (c *DatasetController) GetSpeakers(w http.ResponseWriter, r *http.Request) {
	c.serveDocument(w, r, domain.PublicSpeakers)
}

// GetSchedule godoc
// @Summary Published schedule
// @Description Returns the published schedule document: sessions and breaks grouped by day, in presentation order.
// @Tags dataset
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Schedule
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/v1/schedule [get]
func (c *DatasetController) GetSchedule(w http.ResponseWriter, r *http.Request) {
	c.serveDocument(w, r, domain.PublicSchedule)
}

// scheduleDays mirrors the published schedule document for day lookups.
type scheduleDays struct {
	Days map[string]json.RawMessage `json:"days"`
}

// GetScheduleDay godoc
// @Summary One day of the published schedule
// @Description Returns a single day from the published schedule document, keyed by date.
// @Tags dataset
// @Produce json
// @Security BearerAuth
// @Param date path string true "Day in YYYY-MM-DD format"
// @Success 200 {object} domain.DaySchedule
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/v1/schedule/days/{date} [get]
func (c *DatasetController) GetScheduleDay(w http.ResponseWriter, r *http.Request) {
	date := r.PathValue("date")
	if !dateRegex.MatchString(date) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	doc, err := c.Store.LoadPublic(domain.PublicSchedule)
	if err != nil {
		c.writeLoadError(w, r, err)
		return
	}
	var schedule scheduleDays
	if err := json.Unmarshal(doc, &schedule); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "published schedule is not valid JSON")
		return
	}
	day, ok := schedule.Days[date]
	if !ok {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "no schedule for this day")
		return
	}
	helpers.WriteRawJSON(w, http.StatusOK, day)
}

// GetCalendar godoc
// @Summary Published schedule as iCalendar
// @Description Returns the exported schedule calendar in iCalendar format.
// @Tags dataset
// @Produce text/calendar
// @Security BearerAuth
// @Success 200 {string} string "iCalendar document"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/v1/schedule.ics [get]
func (c *DatasetController) GetCalendar(w http.ResponseWriter, r *http.Request) {
	doc, err := c.Store.LoadPublic(domain.PublicCalendar)
	if err != nil {
		c.writeLoadError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

func (c *DatasetController) serveDocument(w http.ResponseWriter, r *http.Request, name string) {
	doc, err := c.Store.LoadPublic(name)
	if err != nil {
		c.writeLoadError(w, r, err)
		return
	}
	helpers.WriteRawJSON(w, http.StatusOK, doc)
}

func (c *DatasetController) writeLoadError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "dataset not published yet")
		return
	}
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
}
