package wellness

import (
	"encoding/json"
	"net/http"
	"time"

	"health-companion/internal/domain/patients"
	"health-companion/internal/engine"
	"health-companion/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, patientsSvc *patients.Service) {
	r.Route("/patients/{patientID}/wellness", func(wr chi.Router) {
		wr.Put("/logs", logDayHandler(svc, patientsSvc))
		wr.Get("/logs", listLogsHandler(svc, patientsSvc))
		wr.Put("/goal", setGoalHandler(svc, patientsSvc))
		wr.Get("/goal", getGoalHandler(svc, patientsSvc))
	})
}

const dateLayout = "2006-01-02"

type logDayRequest struct {
	Date       string      `json:"date"` // YYYY-MM-DD, vacío = hoy
	Steps      int         `json:"steps"`
	SleepHours float64     `json:"sleep_hours"`
	WaterML    float64     `json:"water_ml"`
	Mood       engine.Mood `json:"mood"`
}

type logEntryResponse struct {
	PatientID  string      `json:"patient_id"`
	Date       string      `json:"date"`
	Steps      int         `json:"steps"`
	SleepHours float64     `json:"sleep_hours"`
	WaterML    float64     `json:"water_ml"`
	Mood       engine.Mood `json:"mood"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

func toLogEntryResponse(e LogEntry) logEntryResponse {
	return logEntryResponse{
		PatientID:  e.PatientID,
		Date:       e.Date.Format(dateLayout),
		Steps:      e.Steps,
		SleepHours: e.SleepHours,
		WaterML:    e.WaterML,
		Mood:       e.Mood,
		UpdatedAt:  e.UpdatedAt,
	}
}

func logDayHandler(svc *Service, patientsSvc *patients.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patientID, ok := resolvePatient(w, r, patientsSvc)
		if !ok {
			return
		}

		var req logDayRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var date time.Time
		if req.Date != "" {
			d, err := time.Parse(dateLayout, req.Date)
			if err != nil {
				httpx.WriteError(w, &engine.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
				return
			}
			date = d
		}

		e, err := svc.LogDay(r.Context(), patientID, LogInput{
			Date:       date,
			Steps:      req.Steps,
			SleepHours: req.SleepHours,
			WaterML:    req.WaterML,
			Mood:       req.Mood,
		})
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toLogEntryResponse(e))
	}
}

func listLogsHandler(svc *Service, patientsSvc *patients.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patientID, ok := resolvePatient(w, r, patientsSvc)
		if !ok {
			return
		}

		to := time.Now()
		from := to.AddDate(0, -1, 0)
		logs, err := svc.Logs(r.Context(), patientID, from, to)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		out := make([]logEntryResponse, 0, len(logs))
		for _, e := range logs {
			out = append(out, toLogEntryResponse(e))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

type goalRequest struct {
	StepsTarget int     `json:"steps_target"`
	SleepTarget float64 `json:"sleep_target"`
	WaterTarget float64 `json:"water_target"`
}

type goalResponse struct {
	PatientID   string    `json:"patient_id"`
	StepsTarget int       `json:"steps_target"`
	SleepTarget float64   `json:"sleep_target"`
	WaterTarget float64   `json:"water_target"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func setGoalHandler(svc *Service, patientsSvc *patients.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patientID, ok := resolvePatient(w, r, patientsSvc)
		if !ok {
			return
		}

		var req goalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		g, err := svc.SetGoal(r.Context(), patientID, GoalInput{
			StepsTarget: req.StepsTarget,
			SleepTarget: req.SleepTarget,
			WaterTarget: req.WaterTarget,
		})
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, goalResponse{
			PatientID:   g.PatientID,
			StepsTarget: g.StepsTarget,
			SleepTarget: g.SleepTarget,
			WaterTarget: g.WaterTarget,
			UpdatedAt:   g.UpdatedAt,
		})
	}
}

func getGoalHandler(svc *Service, patientsSvc *patients.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patientID, ok := resolvePatient(w, r, patientsSvc)
		if !ok {
			return
		}

		g, hasGoal, err := svc.Goal(r.Context(), patientID)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		if !hasGoal {
			// "Sin metas" es un estado válido, no un 404.
			httpx.WriteJSON(w, http.StatusOK, struct {
				Goal *goalResponse `json:"goal"`
			}{nil})
			return
		}
		httpx.WriteJSON(w, http.StatusOK, struct {
			Goal *goalResponse `json:"goal"`
		}{&goalResponse{
			PatientID:   g.PatientID,
			StepsTarget: g.StepsTarget,
			SleepTarget: g.SleepTarget,
			WaterTarget: g.WaterTarget,
			UpdatedAt:   g.UpdatedAt,
		}})
	}
}

func resolvePatient(w http.ResponseWriter, r *http.Request, patientsSvc *patients.Service) (string, bool) {
	patientID := chi.URLParam(r, "patientID")
	if _, err := patientsSvc.GetByID(r.Context(), patientID); err != nil {
		httpx.WriteNotFound(w, "patient")
		return "", false
	}
	return patientID, true
}
