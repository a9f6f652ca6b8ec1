package patients

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"health-companion/internal/engine"
	"health-companion/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/patients", func(pr chi.Router) {
		pr.Post("/", registerPatientHandler(svc))
		pr.Get("/", listPatientsHandler(svc))
		pr.Get("/{patientID}", getPatientHandler(svc))
	})
}

type registerPatientRequest struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
	Sex  Sex    `json:"sex"`
}

type patientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Age       int       `json:"age,omitempty"`
	Sex       Sex       `json:"sex"`
	CreatedAt time.Time `json:"created_at"`
}

func toPatientResponse(p Patient) patientResponse {
	return patientResponse{
		ID:        p.ID,
		Name:      p.Name,
		Age:       p.Age,
		Sex:       p.Sex,
		CreatedAt: p.CreatedAt,
	}
}

func registerPatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerPatientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Register(r.Context(), RegisterInput{
			Name: req.Name,
			Age:  req.Age,
			Sex:  req.Sex,
		})
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toPatientResponse(p))
	}
}

func listPatientsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ps, err := svc.List(r.Context())
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		out := make([]patientResponse, 0, len(ps))
		for _, p := range ps {
			out = append(out, toPatientResponse(p))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func getPatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "patientID"))
		if err != nil {
			if errors.Is(err, engine.ErrInvalidInput) {
				httpx.WriteError(w, err)
				return
			}
			httpx.WriteNotFound(w, "patient")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toPatientResponse(p))
	}
}
