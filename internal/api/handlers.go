package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/igbo-calendar-api/internal/calendar"
	"github.com/zapponejosh/igbo-calendar-api/internal/config"
	"github.com/zapponejosh/igbo-calendar-api/internal/database"
	"github.com/zapponejosh/igbo-calendar-api/internal/ics"
	"github.com/zapponejosh/igbo-calendar-api/internal/logger"
)

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	db     *database.DB
	engine *calendar.Engine
	cfg    *config.Config
	logger *slog.Logger
	now    func() time.Time
}

// NewHandlers creates a new Handlers instance. A nil engine uses the
// built-in month catalog and start rule.
func NewHandlers(db *database.DB, engine *calendar.Engine, cfg *config.Config, logger *slog.Logger) *Handlers {
	if engine == nil {
		engine = calendar.NewEngine()
	}
	return &Handlers{
		db:     db,
		engine: engine,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// weekdayResponse is one market day.
type weekdayResponse struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

// monthResponse is a catalog entry with its derived display fields.
type monthResponse struct {
	calendar.MonthDefinition
	DisplayName       string `json:"display_name"`
	StartWeekdayIndex int    `json:"start_weekday_index"`
	StartWeekdayName  string `json:"start_weekday_name"`
}

// lunarResponse describes the moon on a day of the month.
type lunarResponse struct {
	Day          int                 `json:"day"`
	Stage        calendar.LunarStage `json:"stage"`
	Illumination float64             `json:"illumination"`
}

// convertResponse is an Igbo date together with the inputs that produced it.
type convertResponse struct {
	GregorianDate string `json:"gregorian_date"`
	YearStart     string `json:"year_start"`
	calendar.IgboDate
}

// yearRequest is the body of POST /api/v1/admin/years.
type yearRequest struct {
	Label     string `json:"label"`
	StartDate string `json:"start_date"`
	Notes     string `json:"notes,omitempty"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.db.Health(ctx); err != nil {
		h.log(ctx).Warn("health check failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", "HEALTH_CHECK_FAILED")
		return
	}

	WriteSuccess(w, map[string]string{
		"status": "healthy",
	})
}

// ListWeekdays handles GET /api/v1/weekdays
func (h *Handlers) ListWeekdays(w http.ResponseWriter, r *http.Request) {
	names := calendar.WeekdayNames()
	days := make([]weekdayResponse, len(names))
	for i, name := range names {
		days[i] = weekdayResponse{Index: i, Name: name}
	}
	WriteSuccess(w, days)
}

// ListMonths handles GET /api/v1/months
func (h *Handlers) ListMonths(w http.ResponseWriter, r *http.Request) {
	months := make([]monthResponse, 0, calendar.MonthsPerYear)
	for _, def := range h.engine.Catalog().Ordered() {
		startIdx := h.engine.MonthStartWeekdayIndex(def.Index)
		months = append(months, monthResponse{
			MonthDefinition:   def,
			DisplayName:       calendar.MonthDisplayName(def),
			StartWeekdayIndex: startIdx,
			StartWeekdayName:  calendar.WeekdayName(startIdx),
		})
	}
	WriteSuccess(w, months)
}

// GetLunarStage handles GET /api/v1/lunar/{day}
func (h *Handlers) GetLunarStage(w http.ResponseWriter, r *http.Request) {
	dayStr := chi.URLParam(r, "day")
	day, err := strconv.Atoi(dayStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid day: %s. Use an integer", dayStr))
		return
	}

	WriteSuccess(w, lunarResponse{
		Day:          day,
		Stage:        calendar.LunarStageForDay(day),
		Illumination: calendar.LunarIllumination(day),
	})
}

// ConvertDate handles GET /api/v1/convert/{YYYY-MM-DD}?year_start=YYYY-MM-DD&label=X
func (h *Handlers) ConvertDate(w http.ResponseWriter, r *http.Request) {
	dateStr := chi.URLParam(r, "date")
	date, err := calendar.ParseDateString(dateStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid date format: %s. Use YYYY-MM-DD", dateStr))
		return
	}

	h.writeConversion(w, r, date)
}

// GetToday handles GET /api/v1/today
func (h *Handlers) GetToday(w http.ResponseWriter, r *http.Request) {
	h.writeConversion(w, r, calendar.Midnight(h.now()))
}

// writeConversion converts date against the year named by the query
// string, or against the registry when no year_start is given.
func (h *Handlers) writeConversion(w http.ResponseWriter, r *http.Request, date time.Time) {
	ctx := r.Context()

	yearStart, label, ok := h.queryYear(w, r)
	if !ok {
		return
	}

	if yearStart.IsZero() {
		year, err := h.db.FindYearForDate(ctx, date)
		if err != nil {
			if database.IsNotFound(err) {
				WriteError(w, http.StatusNotFound,
					fmt.Sprintf("No registered year starts on or before %s", calendar.FormatDate(date)), CodeNoYear)
				return
			}
			h.log(ctx).Error("failed to find year for date",
				slog.String("date", calendar.FormatDate(date)),
				slog.Any("error", err))
			WriteInternalError(w, "Failed to resolve year")
			return
		}

		if yearStart, err = year.Start(); err != nil {
			h.log(ctx).Error("registered year has bad start date",
				slog.String("label", year.Label),
				slog.Any("error", err))
			WriteInternalError(w, "Failed to resolve year")
			return
		}
		label = year.Label
	}

	igbo, err := h.engine.Convert(date, yearStart, label)
	if err != nil {
		if errors.Is(err, calendar.ErrBeforeYearStart) {
			WriteError(w, http.StatusNotFound,
				fmt.Sprintf("%s is before the year start %s", calendar.FormatDate(date), calendar.FormatDate(yearStart)),
				CodeBeforeYearStart)
			return
		}
		h.log(ctx).Error("conversion failed", slog.Any("error", err))
		WriteInternalError(w, "Failed to convert date")
		return
	}

	WriteSuccess(w, convertResponse{
		GregorianDate: calendar.FormatDate(date),
		YearStart:     calendar.FormatDate(yearStart),
		IgboDate:      igbo,
	})
}

// GetGrid handles GET /api/v1/grid?year_start=YYYY-MM-DD&label=X
func (h *Handlers) GetGrid(w http.ResponseWriter, r *http.Request) {
	yearStart, label, ok := h.queryYear(w, r)
	if !ok {
		return
	}
	if yearStart.IsZero() {
		WriteBadRequest(w, "year_start parameter is required")
		return
	}

	WriteSuccess(w, h.engine.IgboYearGrid(yearStart, label))
}

// ListYears handles GET /api/v1/years
func (h *Handlers) ListYears(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	years, err := h.db.ListYears(ctx)
	if err != nil {
		h.log(ctx).Error("failed to list years", slog.Any("error", err))
		WriteInternalError(w, "Failed to list years")
		return
	}

	WriteSuccess(w, years)
}

// GetYear handles GET /api/v1/years/{label}
func (h *Handlers) GetYear(w http.ResponseWriter, r *http.Request) {
	year, _, ok := h.registeredYear(w, r)
	if !ok {
		return
	}
	WriteSuccess(w, year)
}

// GetYearGrid handles GET /api/v1/years/{label}/grid
func (h *Handlers) GetYearGrid(w http.ResponseWriter, r *http.Request) {
	year, start, ok := h.registeredYear(w, r)
	if !ok {
		return
	}
	WriteSuccess(w, h.engine.IgboYearGrid(start, year.Label))
}

// GetYearMonth handles GET /api/v1/years/{label}/months/{month}
func (h *Handlers) GetYearMonth(w http.ResponseWriter, r *http.Request) {
	monthStr := chi.URLParam(r, "month")
	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > calendar.MonthsPerYear {
		WriteBadRequest(w, fmt.Sprintf("Invalid month: %s. Use 1-%d", monthStr, calendar.MonthsPerYear))
		return
	}

	year, start, ok := h.registeredYear(w, r)
	if !ok {
		return
	}
	WriteSuccess(w, h.engine.MonthGrid(start, year.Label, month))
}

// GetYearICS handles GET /api/v1/years/{label}/calendar.ics?market_days=true
func (h *Handlers) GetYearICS(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var opts ics.Options
	if v := r.URL.Query().Get("market_days"); v != "" {
		include, err := strconv.ParseBool(v)
		if err != nil {
			WriteBadRequest(w, "market_days must be true or false")
			return
		}
		opts.IncludeMarketDays = include
	}

	year, start, ok := h.registeredYear(w, r)
	if !ok {
		return
	}
	opts.Now = h.now()

	grid := h.engine.IgboYearGrid(start, year.Label)

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ics.Filename(year.Label)))
	if err := ics.WriteYear(w, grid, opts); err != nil {
		h.log(ctx).Error("failed to write calendar",
			slog.String("label", year.Label),
			slog.Any("error", err))
	}
}

// CreateYear handles POST /api/v1/admin/years
func (h *Handlers) CreateYear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req yearRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	req.Label = strings.TrimSpace(req.Label)
	if req.Label == "" {
		WriteBadRequest(w, "label is required")
		return
	}
	if _, err := calendar.ParseDateString(req.StartDate); err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid start_date: %s. Use YYYY-MM-DD", req.StartDate))
		return
	}

	var notes *string
	if req.Notes != "" {
		notes = &req.Notes
	}

	year, err := h.db.CreateYear(ctx, req.Label, req.StartDate, notes)
	if err != nil {
		if database.IsDuplicate(err) {
			WriteConflict(w, "A year with this label or start date already exists")
			return
		}
		h.log(ctx).Error("failed to create year", slog.Any("error", err))
		WriteInternalError(w, "Failed to create year")
		return
	}

	h.log(ctx).Info("year registered",
		slog.String("label", year.Label),
		slog.String("start_date", year.StartDate))
	WriteCreated(w, year)
}

// DeleteYear handles DELETE /api/v1/admin/years/{label}
func (h *Handlers) DeleteYear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	label := labelParam(r)

	if err := h.db.DeleteYear(ctx, label); err != nil {
		if database.IsNotFound(err) {
			WriteNotFound(w, "Year not found")
			return
		}
		h.log(ctx).Error("failed to delete year", slog.Any("error", err))
		WriteInternalError(w, "Failed to delete year")
		return
	}

	h.log(ctx).Info("year deleted", slog.String("label", label))
	WriteSuccess(w, map[string]string{"message": "Year deleted"})
}

// queryYear reads year_start and label from the query string. A zero
// start means year_start was absent. It writes a 400 and returns false on
// a malformed date.
func (h *Handlers) queryYear(w http.ResponseWriter, r *http.Request) (time.Time, string, bool) {
	q := r.URL.Query()
	label := q.Get("label")

	startStr := q.Get("year_start")
	if startStr == "" {
		return time.Time{}, label, true
	}

	start, err := calendar.ParseDateString(startStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid year_start format: %s. Use YYYY-MM-DD", startStr))
		return time.Time{}, "", false
	}
	return start, label, true
}

// registeredYear loads the year named in the path. It writes the error
// response itself and returns false when the year cannot be used.
func (h *Handlers) registeredYear(w http.ResponseWriter, r *http.Request) (*database.IgboYear, time.Time, bool) {
	ctx := r.Context()
	label := labelParam(r)

	year, err := h.db.GetYear(ctx, label)
	if err != nil {
		if database.IsNotFound(err) {
			WriteNotFound(w, fmt.Sprintf("Year %q not found", label))
			return nil, time.Time{}, false
		}
		h.log(ctx).Error("failed to get year",
			slog.String("label", label),
			slog.Any("error", err))
		WriteInternalError(w, "Failed to retrieve year")
		return nil, time.Time{}, false
	}

	start, err := year.Start()
	if err != nil {
		h.log(ctx).Error("registered year has bad start date",
			slog.String("label", label),
			slog.Any("error", err))
		WriteInternalError(w, "Failed to retrieve year")
		return nil, time.Time{}, false
	}

	return year, start, true
}

func (h *Handlers) log(ctx context.Context) *slog.Logger {
	return logger.FromContext(ctx, h.logger)
}

// labelParam returns the unescaped {label} path parameter.
func labelParam(r *http.Request) string {
	raw := chi.URLParam(r, "label")
	if label, err := url.PathUnescape(raw); err == nil {
		return label
	}
	return raw
}

// decodeJSON decodes JSON request body.
func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("request body is empty")
	}
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
