package medications

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"health-companion/internal/domain/patients"
	"health-companion/internal/engine"
	"health-companion/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, patientsSvc *patients.Service) {
	r.Route("/patients/{patientID}/medications", func(mr chi.Router) {
		mr.Post("/", addMedicationHandler(svc, patientsSvc))
		mr.Get("/", listMedicationsHandler(svc, patientsSvc))
	})
	r.Put("/medications/{medicationID}/intakes", markIntakeHandler(svc))
}

type addMedicationRequest struct {
	Name      string            `json:"name"`
	Dosage    string            `json:"dosage"`
	Frequency int               `json:"frequency"`
	Slots     []engine.TimeSlot `json:"slots"`
	Start     string            `json:"start_date"`         // YYYY-MM-DD
	End       string            `json:"end_date,omitempty"` // YYYY-MM-DD, vacío = en curso
}

type medicationResponse struct {
	ID        string            `json:"id"`
	PatientID string            `json:"patient_id"`
	Name      string            `json:"name"`
	Dosage    string            `json:"dosage"`
	Frequency int               `json:"frequency"`
	Slots     []engine.TimeSlot `json:"slots"`
	Start     string            `json:"start_date"`
	End       *string           `json:"end_date,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

const dateLayout = "2006-01-02"

func toMedicationResponse(m Medication) medicationResponse {
	resp := medicationResponse{
		ID:        m.ID,
		PatientID: m.PatientID,
		Name:      m.Name,
		Dosage:    m.Dosage,
		Frequency: m.Frequency,
		Slots:     m.Slots,
		Start:     m.Start.Format(dateLayout),
		CreatedAt: m.CreatedAt,
	}
	if m.End != nil {
		end := m.End.Format(dateLayout)
		resp.End = &end
	}
	return resp
}

func addMedicationHandler(svc *Service, patientsSvc *patients.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patientID := chi.URLParam(r, "patientID")
		if _, err := patientsSvc.GetByID(r.Context(), patientID); err != nil {
			httpx.WriteNotFound(w, "patient")
			return
		}

		var req addMedicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		start, err := time.Parse(dateLayout, req.Start)
		if err != nil {
			httpx.WriteError(w, &engine.ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"})
			return
		}
		var end *time.Time
		if req.End != "" {
			e, err := time.Parse(dateLayout, req.End)
			if err != nil {
				httpx.WriteError(w, &engine.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"})
				return
			}
			end = &e
		}

		m, err := svc.Add(r.Context(), patientID, AddInput{
			Name:      req.Name,
			Dosage:    req.Dosage,
			Frequency: req.Frequency,
			Slots:     req.Slots,
			Start:     start,
			End:       end,
		})
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toMedicationResponse(m))
	}
}

func listMedicationsHandler(svc *Service, patientsSvc *patients.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patientID := chi.URLParam(r, "patientID")
		if _, err := patientsSvc.GetByID(r.Context(), patientID); err != nil {
			httpx.WriteNotFound(w, "patient")
			return
		}

		meds, err := svc.ListByPatient(r.Context(), patientID)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		// ?active_on=YYYY-MM-DD filtra por vigencia de la pauta.
		if v := r.URL.Query().Get("active_on"); v != "" {
			d, err := time.Parse(dateLayout, v)
			if err != nil {
				httpx.WriteError(w, &engine.ValidationError{Field: "active_on", Message: "must be YYYY-MM-DD"})
				return
			}
			active := meds[:0]
			for _, m := range meds {
				if schedule(m).ActiveOn(d) {
					active = append(active, m)
				}
			}
			meds = active
		}

		out := make([]medicationResponse, 0, len(meds))
		for _, m := range meds {
			out = append(out, toMedicationResponse(m))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

type markIntakeRequest struct {
	Date  string          `json:"date"` // YYYY-MM-DD
	Slot  engine.TimeSlot `json:"slot"`
	Taken bool            `json:"taken"`
}

// PUT porque marcar una toma es un upsert idempotente sobre
// (medicación, fecha, franja); repetir el click no duplica nada.
func markIntakeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req markIntakeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		date, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			httpx.WriteError(w, &engine.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
			return
		}

		e, err := svc.MarkIntake(r.Context(), chi.URLParam(r, "medicationID"), MarkInput{
			Date:  date,
			Slot:  req.Slot,
			Taken: req.Taken,
		})
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				httpx.WriteNotFound(w, "medication")
				return
			}
			httpx.WriteError(w, err)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, struct {
			MedicationID string          `json:"medication_id"`
			Date         string          `json:"date"`
			Slot         engine.TimeSlot `json:"slot"`
			Taken        bool            `json:"taken"`
			MarkedAt     time.Time       `json:"marked_at"`
		}{e.MedicationID, e.Date.Format(dateLayout), e.Slot, e.Taken, e.MarkedAt})
	}
}
