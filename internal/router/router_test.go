package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"health-companion/internal/router"
)

func TestHTTP_EndToEnd_PatientJourney(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	// 1) Registrar paciente
	patientID := createPatient(t, ts.URL, map[string]any{
		"name": "Asha",
		"age":  62,
		"sex":  "female",
	})

	// 2) Paciente inexistente => 404
	{
		st, _ := doReq(t, ts.URL, "GET", "/patients/nope/dashboard", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 for unknown patient, got %d", st)
		}
	}

	// 3) Registrar vitales con riesgo alto
	{
		st, body := doReq(t, ts.URL, "POST", "/patients/"+patientID+"/vitals", map[string]any{
			"bp":          "150/95",
			"heart_rate":  88,
			"temperature": 36.8,
			"symptoms":    []string{"mild headache"},
			"taken_at":    "2026-03-14T09:00:00Z",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 record vitals, got %d body=%s", st, string(body))
		}
		var resp struct {
			Risk struct {
				Known bool   `json:"known"`
				Level string `json:"level"`
			} `json:"risk"`
		}
		mustUnmarshal(t, body, &resp)
		if !resp.Risk.Known || resp.Risk.Level != "high" {
			t.Fatalf("expected high risk for 150/95, got %+v", resp.Risk)
		}
	}

	// 4) Formato de presión inválido => 400 con detalle por campo
	{
		st, body := doReq(t, ts.URL, "POST", "/patients/"+patientID+"/vitals", map[string]any{
			"bp":          "not-a-bp",
			"heart_rate":  70,
			"temperature": 36.6,
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for malformed bp, got %d body=%s", st, string(body))
		}
	}

	// 5) Alta de medicación
	medicationID := ""
	{
		st, body := doReq(t, ts.URL, "POST", "/patients/"+patientID+"/medications", map[string]any{
			"name":       "Amlodipine",
			"dosage":     "5 mg",
			"frequency":  2,
			"slots":      []string{"morning", "night"},
			"start_date": "2026-03-09",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 add medication, got %d body=%s", st, string(body))
		}
		var resp struct {
			ID string `json:"id"`
		}
		mustUnmarshal(t, body, &resp)
		if resp.ID == "" {
			t.Fatalf("add medication: missing id body=%s", string(body))
		}
		medicationID = resp.ID
	}

	// 6) Franja fuera de la pauta => 400
	{
		st, _ := doReq(t, ts.URL, "PUT", "/medications/"+medicationID+"/intakes", map[string]any{
			"date":  "2026-03-14",
			"slot":  "afternoon",
			"taken": true,
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for unscheduled slot, got %d", st)
		}
	}

	// 7) Marcar tomas de la semana (solo mañanas: adherencia 50%)
	for d := 9; d <= 15; d++ {
		st, body := doReq(t, ts.URL, "PUT", "/medications/"+medicationID+"/intakes", map[string]any{
			"date":  "2026-03-" + twoDigits(d),
			"slot":  "morning",
			"taken": true,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 mark intake day %d, got %d body=%s", d, st, string(body))
		}
	}

	// 8) Metas y registros de bienestar
	{
		st, body := doReq(t, ts.URL, "PUT", "/patients/"+patientID+"/wellness/goal", map[string]any{
			"steps_target": 8000,
			"sleep_target": 8,
			"water_target": 2000,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 set goal, got %d body=%s", st, string(body))
		}
	}
	for d := 13; d <= 15; d++ {
		st, body := doReq(t, ts.URL, "PUT", "/patients/"+patientID+"/wellness/logs", map[string]any{
			"date":        "2026-03-" + twoDigits(d),
			"steps":       3000,
			"sleep_hours": 5,
			"water_ml":    1000,
			"mood":        "okay",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 log day %d, got %d body=%s", d, st, string(body))
		}
	}

	// 9) Dashboard de la semana
	{
		st, body := doReq(t, ts.URL, "GET", "/patients/"+patientID+"/dashboard?date=2026-03-15&days=7", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 dashboard, got %d body=%s", st, string(body))
		}
		var resp struct {
			Risk struct {
				Level string `json:"level"`
			} `json:"risk"`
			Adherence struct {
				Expected int      `json:"expected"`
				Taken    int      `json:"taken"`
				Overall  *float64 `json:"overall"`
			} `json:"adherence"`
			Score struct {
				Known bool `json:"known"`
				Score *int `json:"score"`
			} `json:"score"`
			Alerts []struct {
				Code string `json:"code"`
			} `json:"alerts"`
		}
		mustUnmarshal(t, body, &resp)

		if resp.Risk.Level != "high" {
			t.Fatalf("expected high risk, got %q", resp.Risk.Level)
		}
		// 7 días x 2 franjas, solo mañanas tomadas
		if resp.Adherence.Expected != 14 || resp.Adherence.Taken != 7 {
			t.Fatalf("expected adherence 7/14, got %d/%d", resp.Adherence.Taken, resp.Adherence.Expected)
		}
		if resp.Adherence.Overall == nil || *resp.Adherence.Overall != 50 {
			t.Fatalf("expected 50%% adherence, got %v", resp.Adherence.Overall)
		}
		if !resp.Score.Known || resp.Score.Score == nil {
			t.Fatalf("expected a known score, got %+v", resp.Score)
		}

		codes := map[string]bool{}
		for _, a := range resp.Alerts {
			codes[a.Code] = true
		}
		for _, want := range []string{"high_risk", "low_sleep", "low_activity"} {
			if !codes[want] {
				t.Fatalf("expected alert %q, got %v", want, codes)
			}
		}
	}

	// 10) Insights localizados, con el aviso siempre al final
	{
		st, body := doReq(t, ts.URL, "GET", "/patients/"+patientID+"/insights?date=2026-03-15&days=7&locale=en-IN", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 insights, got %d body=%s", st, string(body))
		}
		var resp struct {
			Insights []string `json:"insights"`
		}
		mustUnmarshal(t, body, &resp)
		if len(resp.Insights) < 2 {
			t.Fatalf("expected several insights, got %v", resp.Insights)
		}
		last := resp.Insights[len(resp.Insights)-1]
		if last == "" || !bytes.Contains([]byte(last), []byte("not a medical diagnosis")) {
			t.Fatalf("expected disclaimer last, got %q", last)
		}
	}

	// 11) Calendario mensual de tomas
	{
		st, body := doReq(t, ts.URL, "GET", "/patients/"+patientID+"/adherence/calendar?month=3&year=2026", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 calendar, got %d body=%s", st, string(body))
		}
		var resp struct {
			Year  int `json:"year"`
			Month int `json:"month"`
			Days  []struct {
				Slots []struct {
					Slot   string `json:"slot"`
					Status string `json:"status"`
				} `json:"slots"`
			} `json:"days"`
		}
		mustUnmarshal(t, body, &resp)
		if resp.Year != 2026 || resp.Month != 3 || len(resp.Days) != 31 {
			t.Fatalf("expected 31 days for 2026-03, got %d (%d-%d)", len(resp.Days), resp.Year, resp.Month)
		}
		// Día 14: mañana tomada, noche no tomada
		day14 := resp.Days[13]
		if len(day14.Slots) != 2 {
			t.Fatalf("expected two slots on day 14, got %d", len(day14.Slots))
		}
		for _, s := range day14.Slots {
			if s.Slot == "morning" && s.Status != "taken" {
				t.Fatalf("expected morning taken on day 14, got %s", s.Status)
			}
		}
	}
}

func TestHTTP_Patient_Validation(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	st, body := doReq(t, ts.URL, "POST", "/patients", map[string]any{
		"name": "",
		"age":  200,
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid patient, got %d body=%s", st, string(body))
	}

	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	mustUnmarshal(t, body, &resp)
	if resp.Fields["name"] == "" || resp.Fields["age"] == "" {
		t.Fatalf("expected per-field detail, got %v", resp.Fields)
	}
}

func TestHTTP_WellnessGoal_NullWhenUnset(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	patientID := createPatient(t, ts.URL, map[string]any{"name": "Ravi", "age": 35})

	st, body := doReq(t, ts.URL, "GET", "/patients/"+patientID+"/wellness/goal", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 for unset goal, got %d body=%s", st, string(body))
	}
	var resp struct {
		Goal *json.RawMessage `json:"goal"`
	}
	mustUnmarshal(t, body, &resp)
	if resp.Goal != nil && string(*resp.Goal) != "null" {
		t.Fatalf("expected null goal, got %s", string(*resp.Goal))
	}
}

func TestHTTP_MarkIntake_UnknownMedicationIs404(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	st, body := doReq(t, ts.URL, "PUT", "/medications/nope/intakes", map[string]any{
		"date":  "2026-03-10",
		"slot":  "morning",
		"taken": true,
	})
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown medication, got %d body=%s", st, string(body))
	}
}

func createPatient(t *testing.T, baseURL string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/patients", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create patient, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create patient: missing id body=%s", string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return res.StatusCode, b
}

func mustUnmarshal(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("unmarshal %s: %v", string(body), err)
	}
}

func twoDigits(d int) string {
	return fmt.Sprintf("%02d", d)
}
