package engine

import "time"

// MedicationAdherence es la adherencia de una medicación en la ventana.
// Percent nil significa "no aplica" (cero tomas esperadas), distinto de 0%.
type MedicationAdherence struct {
	MedicationID string   `json:"medication_id"`
	Name         string   `json:"name"`
	Expected     int      `json:"expected"`
	Taken        int      `json:"taken"`
	Percent      *float64 `json:"percent"`
}

// AdherenceSummary agrega la adherencia por medicación y global.
// Overall nil significa que el paciente no tenía tomas esperadas en la
// ventana (sin medicación activa): "no aplica", nunca 0%.
type AdherenceSummary struct {
	PerMedication []MedicationAdherence `json:"per_medication"`
	Expected      int                   `json:"expected"`
	Taken         int                   `json:"taken"`
	Overall       *float64              `json:"overall"`
}

// ComputeAdherence calcula tomas esperadas y realizadas por medicación
// dentro de la ventana. Las marcas duplicadas o fuera de agenda no cuentan:
// una toma realizada es un par (fecha, franja) distinto, acotado por lo
// esperado, así que la adherencia nunca supera 100%.
func ComputeAdherence(meds []MedicationSchedule, marks []IntakeMark, window Window) AdherenceSummary {
	taken := indexTaken(marks)

	out := AdherenceSummary{PerMedication: make([]MedicationAdherence, 0, len(meds))}
	for _, med := range meds {
		ma := MedicationAdherence{MedicationID: med.ID, Name: med.Name}

		for day := DateOf(window.From); !day.After(DateOf(window.To)); day = day.AddDate(0, 0, 1) {
			if !med.ActiveOn(day) {
				continue
			}
			for _, slot := range med.Slots {
				ma.Expected++
				if taken[slotKey{med.ID, day, slot}] {
					ma.Taken++
				}
			}
		}

		if ma.Taken > ma.Expected {
			ma.Taken = ma.Expected
		}
		if ma.Expected > 0 {
			pct := float64(ma.Taken) / float64(ma.Expected) * 100
			ma.Percent = &pct
		}

		out.Expected += ma.Expected
		out.Taken += ma.Taken
		out.PerMedication = append(out.PerMedication, ma)
	}

	if out.Expected > 0 {
		pct := float64(out.Taken) / float64(out.Expected) * 100
		out.Overall = &pct
	}
	return out
}

type slotKey struct {
	medID string
	date  time.Time
	slot  TimeSlot
}

func indexTaken(marks []IntakeMark) map[slotKey]bool {
	idx := make(map[slotKey]bool, len(marks))
	for _, m := range marks {
		// Última escritura gana: desmarcar una toma la elimina del índice.
		idx[slotKey{m.MedicationID, DateOf(m.Date), m.Slot}] = m.Taken
	}
	for k, v := range idx {
		if !v {
			delete(idx, k)
		}
	}
	return idx
}

// SlotStatus clasifica una franja del calendario de medicación.
type SlotStatus string

const (
	SlotTaken    SlotStatus = "taken"
	SlotMissed   SlotStatus = "missed"
	SlotUpcoming SlotStatus = "upcoming"
	SlotNone     SlotStatus = "none"
)

type CalendarSlot struct {
	MedicationID string     `json:"medication_id"`
	Name         string     `json:"name"`
	Slot         TimeSlot   `json:"slot"`
	Status       SlotStatus `json:"status"`
}

type CalendarDay struct {
	Date  time.Time      `json:"date"`
	Slots []CalendarSlot `json:"slots"`
}

// BuildCalendar clasifica cada (medicación, día, franja) de la ventana.
// Una franja nunca puede ser missed y upcoming a la vez: missed exige día
// pasado, upcoming exige hoy o futuro.
func BuildCalendar(meds []MedicationSchedule, marks []IntakeMark, window Window, today time.Time) []CalendarDay {
	taken := indexTaken(marks)
	today = DateOf(today)

	var days []CalendarDay
	for day := DateOf(window.From); !day.After(DateOf(window.To)); day = day.AddDate(0, 0, 1) {
		cd := CalendarDay{Date: day}
		for _, med := range meds {
			for _, slot := range med.Slots {
				st := SlotNone
				if med.ActiveOn(day) {
					switch {
					case taken[slotKey{med.ID, day, slot}]:
						st = SlotTaken
					case day.Before(today):
						st = SlotMissed
					default:
						st = SlotUpcoming
					}
				}
				cd.Slots = append(cd.Slots, CalendarSlot{
					MedicationID: med.ID,
					Name:         med.Name,
					Slot:         slot,
					Status:       st,
				})
			}
		}
		days = append(days, cd)
	}
	return days
}
