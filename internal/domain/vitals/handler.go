package vitals

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"health-companion/internal/domain/patients"
	"health-companion/internal/engine"
	"health-companion/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, patientsSvc *patients.Service) {
	r.Route("/patients/{patientID}/vitals", func(vr chi.Router) {
		vr.Post("/", recordVitalsHandler(svc, patientsSvc))
		vr.Get("/", listVitalsHandler(svc, patientsSvc))
		vr.Get("/latest", latestVitalsHandler(svc, patientsSvc))
	})
}

type recordVitalsRequest struct {
	BP          string   `json:"bp"` // "120/80"
	HeartRate   int      `json:"heart_rate"`
	Temperature float64  `json:"temperature"`
	Symptoms    []string `json:"symptoms"`
	TakenAt     string   `json:"taken_at"` // RFC3339 opcional
}

type riskResponse struct {
	Known          bool              `json:"known"`
	Level          engine.RiskLevel  `json:"level"`
	Score          *float64          `json:"score,omitempty"`
	BP             engine.BPClass    `json:"bp_class,omitempty"`
	HeartRate      engine.VitalClass `json:"heart_rate_class,omitempty"`
	Temperature    engine.VitalClass `json:"temperature_class,omitempty"`
	SymptomMatches []string          `json:"symptom_matches,omitempty"`
}

func toRiskResponse(r engine.RiskAssessment) riskResponse {
	out := riskResponse{Known: r.Known, Level: r.Level}
	if r.Known {
		score := r.Score
		out.Score = &score
		out.BP = r.BP
		out.HeartRate = r.HeartRate
		out.Temperature = r.Temperature
		out.SymptomMatches = r.SymptomMatches
	}
	return out
}

type observationResponse struct {
	ID          string    `json:"id"`
	PatientID   string    `json:"patient_id"`
	TakenAt     time.Time `json:"taken_at"`
	BP          string    `json:"bp"`
	Systolic    int       `json:"systolic"`
	Diastolic   int       `json:"diastolic"`
	HeartRate   int       `json:"heart_rate"`
	Temperature float64   `json:"temperature"`
	Symptoms    []string  `json:"symptoms"`
	RecordedAt  time.Time `json:"recorded_at"`
}

func toObservationResponse(o Observation) observationResponse {
	return observationResponse{
		ID:          o.ID,
		PatientID:   o.PatientID,
		TakenAt:     o.TakenAt,
		BP:          formatBP(o.Systolic, o.Diastolic),
		Systolic:    o.Systolic,
		Diastolic:   o.Diastolic,
		HeartRate:   o.HeartRate,
		Temperature: o.Temperature,
		Symptoms:    o.Symptoms,
		RecordedAt:  o.RecordedAt,
	}
}

func recordVitalsHandler(svc *Service, patientsSvc *patients.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patientID, ok := resolvePatient(w, r, patientsSvc)
		if !ok {
			return
		}

		var req recordVitalsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var takenAt time.Time
		if req.TakenAt != "" {
			t, err := time.Parse(time.RFC3339, req.TakenAt)
			if err != nil {
				http.Error(w, "taken_at must be RFC3339", http.StatusBadRequest)
				return
			}
			takenAt = t
		}

		o, risk, err := svc.Record(r.Context(), patientID, RecordInput{
			BP:          req.BP,
			HeartRate:   req.HeartRate,
			Temperature: req.Temperature,
			Symptoms:    req.Symptoms,
			TakenAt:     takenAt,
		})
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, struct {
			Observation observationResponse `json:"observation"`
			Risk        riskResponse        `json:"risk"`
		}{toObservationResponse(o), toRiskResponse(risk)})
	}
}

func listVitalsHandler(svc *Service, patientsSvc *patients.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patientID, ok := resolvePatient(w, r, patientsSvc)
		if !ok {
			return
		}

		to := time.Now()
		from := to.AddDate(0, -3, 0)
		obs, err := svc.History(r.Context(), patientID, from, to)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		out := make([]observationResponse, 0, len(obs))
		for _, o := range obs {
			out = append(out, toObservationResponse(o))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func latestVitalsHandler(svc *Service, patientsSvc *patients.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patientID, ok := resolvePatient(w, r, patientsSvc)
		if !ok {
			return
		}

		o, risk, hasData, err := svc.Latest(r.Context(), patientID)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		resp := struct {
			Observation *observationResponse `json:"observation"`
			Risk        riskResponse         `json:"risk"`
		}{Risk: toRiskResponse(risk)}
		if hasData {
			obs := toObservationResponse(o)
			resp.Observation = &obs
		}
		httpx.WriteJSON(w, http.StatusOK, resp)
	}
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

func formatBP(sys, dia int) string {
	return strconv.Itoa(sys) + "/" + strconv.Itoa(dia)
}
