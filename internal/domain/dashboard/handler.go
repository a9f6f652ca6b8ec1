package dashboard

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"health-companion/internal/domain/patients"
	"health-companion/internal/engine"
	"health-companion/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

const dateLayout = "2006-01-02"

func RegisterRoutes(r chi.Router, svc *Service, patientsSvc *patients.Service) {
	r.Get("/patients/{patientID}/dashboard", dashboardHandler(svc, patientsSvc))
	r.Get("/patients/{patientID}/insights", insightsHandler(svc, patientsSvc))
	r.Get("/patients/{patientID}/adherence/calendar", calendarHandler(svc, patientsSvc))
}

type riskSection struct {
	Known          bool              `json:"known"`
	Level          engine.RiskLevel  `json:"level"`
	Score          *float64          `json:"score,omitempty"`
	BP             engine.BPClass    `json:"bp_class,omitempty"`
	HeartRate      engine.VitalClass `json:"heart_rate_class,omitempty"`
	Temperature    engine.VitalClass `json:"temperature_class,omitempty"`
	SymptomMatches []string          `json:"symptom_matches,omitempty"`
}

type scoreSection struct {
	Known      bool                    `json:"known"`
	Score      *int                    `json:"score"`
	Band       engine.ScoreBand        `json:"band,omitempty"`
	Components []engine.ScoreComponent `json:"components,omitempty"`
}

type bundleResponse struct {
	EvaluatedAt string                  `json:"evaluated_at"`
	Risk        riskSection             `json:"risk"`
	Adherence   engine.AdherenceSummary `json:"adherence"`
	Wellness    engine.WellnessSummary  `json:"wellness"`
	Score       scoreSection            `json:"score"`
	Alerts      []engine.Alert          `json:"alerts"`
}

func toBundleResponse(b engine.Bundle) bundleResponse {
	out := bundleResponse{
		EvaluatedAt: b.EvaluatedAt.Format(dateLayout),
		Risk:        riskSection{Known: b.Risk.Known, Level: b.Risk.Level},
		Adherence:   b.Adherence,
		Wellness:    b.Wellness,
		Score:       scoreSection{Known: b.Score.Known},
		Alerts:      b.Alerts,
	}
	if b.Risk.Known {
		score := b.Risk.Score
		out.Risk.Score = &score
		out.Risk.BP = b.Risk.BP
		out.Risk.HeartRate = b.Risk.HeartRate
		out.Risk.Temperature = b.Risk.Temperature
		out.Risk.SymptomMatches = b.Risk.SymptomMatches
	}
	if b.Score.Known {
		score := b.Score.Score
		out.Score.Score = &score
		out.Score.Band = b.Score.Band
		out.Score.Components = b.Score.Components
	}
	if out.Alerts == nil {
		out.Alerts = []engine.Alert{}
	}
	return out
}

func dashboardHandler(svc *Service, patientsSvc *patients.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patientID, ok := resolvePatient(w, r, patientsSvc)
		if !ok {
			return
		}
		at, days, ok := parseWindow(w, r)
		if !ok {
			return
		}

		b, err := svc.Evaluate(r.Context(), patientID, at, days)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toBundleResponse(b))
	}
}

func insightsHandler(svc *Service, patientsSvc *patients.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patientID, ok := resolvePatient(w, r, patientsSvc)
		if !ok {
			return
		}
		at, days, ok := parseWindow(w, r)
		if !ok {
			return
		}
		locale := engine.Locale(r.URL.Query().Get("locale"))

		insights, err := svc.Insights(r.Context(), patientID, at, days, locale)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, struct {
			Insights []string `json:"insights"`
		}{insights})
	}
}

func calendarHandler(svc *Service, patientsSvc *patients.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patientID, ok := resolvePatient(w, r, patientsSvc)
		if !ok {
			return
		}

		now := time.Now().UTC()
		year, month := now.Year(), now.Month()
		if v := r.URL.Query().Get("year"); v != "" {
			y, err := strconv.Atoi(v)
			if err != nil || y < 2000 || y > 2100 {
				http.Error(w, "year must be a four digit year", http.StatusBadRequest)
				return
			}
			year = y
		}
		if v := r.URL.Query().Get("month"); v != "" {
			m, err := strconv.Atoi(v)
			if err != nil || m < 1 || m > 12 {
				http.Error(w, "month must be between 1 and 12", http.StatusBadRequest)
				return
			}
			month = time.Month(m)
		}

		days, err := svc.Calendar(r.Context(), patientID, year, month, now)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		if days == nil {
			days = []engine.CalendarDay{}
		}
		httpx.WriteJSON(w, http.StatusOK, struct {
			Year  int                  `json:"year"`
			Month int                  `json:"month"`
			Days  []engine.CalendarDay `json:"days"`
		}{year, int(month), days})
	}
}

// parseWindow lee ?date= y ?days= con defaults de hoy y una semana.
func parseWindow(w http.ResponseWriter, r *http.Request) (time.Time, int, bool) {
	at := time.Now().UTC()
	if v := r.URL.Query().Get("date"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return time.Time{}, 0, false
		}
		at = t
	}
	days := DefaultWindowDays
	if v := r.URL.Query().Get("days"); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil || d < 1 || d > 90 {
			http.Error(w, "days must be between 1 and 90", http.StatusBadRequest)
			return time.Time{}, 0, false
		}
		days = d
	}
	return at, days, true
}

func resolvePatient(w http.ResponseWriter, r *http.Request, patientsSvc *patients.Service) (string, bool) {
	patientID := chi.URLParam(r, "patientID")
	if _, err := patientsSvc.GetByID(r.Context(), patientID); err != nil {
		if errors.Is(err, engine.ErrInvalidInput) {
			httpx.WriteError(w, err)
		} else {
			httpx.WriteNotFound(w, "patient")
		}
		return "", false
	}
	return patientID, true
}
