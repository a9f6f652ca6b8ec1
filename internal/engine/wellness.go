package engine

import "time"

// TrendPoint es un punto de serie para graficar. Value nil marca un día sin
// registro: los huecos se conservan explícitos, nunca se interpolan.
type TrendPoint struct {
	Date  time.Time `json:"date"`
	Value *float64  `json:"value"`
}

type Trends struct {
	Steps []TrendPoint `json:"steps"`
	Sleep []TrendPoint `json:"sleep"`
	Water []TrendPoint `json:"water"`
}

// DayCompletion es el % de cumplimiento de metas de un día registrado.
// Un campo nil significa que esa métrica no tiene meta (> 0) configurada.
type DayCompletion struct {
	Date  time.Time `json:"date"`
	Steps *float64  `json:"steps"`
	Sleep *float64  `json:"sleep"`
	Water *float64  `json:"water"`
}

// GoalCompletion existe solo cuando el paciente tiene metas configuradas.
type GoalCompletion struct {
	Days []DayCompletion `json:"days"`

	AvgSteps *float64 `json:"avg_steps"`
	AvgSleep *float64 `json:"avg_sleep"`
	AvgWater *float64 `json:"avg_water"`

	// Average es la media de los promedios por métrica disponibles; es el
	// valor que entra al health score como señal de bienestar.
	Average *float64 `json:"average"`
}

// WeeklyAverages es la media de los últimos 7 días calendario con al menos
// un registro; se divide por registros, no por 7.
type WeeklyAverages struct {
	Steps   float64 `json:"steps"`
	Sleep   float64 `json:"sleep"`
	Water   float64 `json:"water"`
	Entries int     `json:"entries"`
}

// WellnessSummary resume los logs de bienestar dentro de la ventana.
// Completion nil = "sin metas configuradas"; Weekly nil = "datos
// insuficientes". Ninguno de los dos se confunde con un cero real.
type WellnessSummary struct {
	DaysLogged int    `json:"days_logged"`
	Trends     Trends `json:"trends"`

	// Goal es la meta usada en el cálculo (nil si no había ninguna); las
	// alertas de actividad la necesitan para comparar contra el promedio.
	Goal *Goal `json:"goal"`

	Completion *GoalCompletion `json:"completion"`
	LogStreak  int             `json:"log_streak"`
	GoalStreak *int            `json:"goal_streak"`
	Weekly     *WeeklyAverages `json:"weekly"`
}

// ComputeWellness deriva tendencias, rachas, promedios semanales y
// cumplimiento de metas de la serie de logs. goal nil (o con todas las
// metas en cero) deja el cumplimiento sin definir.
func ComputeWellness(logs []DailyLog, goal *Goal, window Window) WellnessSummary {
	byDay := make(map[time.Time]DailyLog)
	from, to := DateOf(window.From), DateOf(window.To)
	for _, l := range logs {
		d := DateOf(l.Date)
		if d.Before(from) || d.After(to) {
			continue
		}
		byDay[d] = l // un log por día; el último pisa al anterior
	}

	var s WellnessSummary
	s.DaysLogged = len(byDay)

	var loggedDays []time.Time
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		l, ok := byDay[day]
		s.Trends.Steps = append(s.Trends.Steps, point(day, float64(l.Steps), ok))
		s.Trends.Sleep = append(s.Trends.Sleep, point(day, l.SleepHours, ok))
		s.Trends.Water = append(s.Trends.Water, point(day, l.WaterML, ok))
		if ok {
			loggedDays = append(loggedDays, day)
		}
	}

	s.Weekly = weeklyAverages(byDay, to)
	s.LogStreak = logStreak(byDay, loggedDays)

	if hasGoal(goal) {
		g := *goal
		s.Goal = &g
		s.Completion = goalCompletion(byDay, loggedDays, g)
		gs := goalStreak(byDay, loggedDays, g)
		s.GoalStreak = &gs
	}
	return s
}

func point(day time.Time, v float64, ok bool) TrendPoint {
	p := TrendPoint{Date: day}
	if ok {
		p.Value = &v
	}
	return p
}

func hasGoal(g *Goal) bool {
	return g != nil && (g.StepsTarget > 0 || g.SleepTarget > 0 || g.WaterTarget > 0)
}

func weeklyAverages(byDay map[time.Time]DailyLog, to time.Time) *WeeklyAverages {
	var w WeeklyAverages
	for i := 0; i < 7; i++ {
		if l, ok := byDay[to.AddDate(0, 0, -i)]; ok {
			w.Steps += float64(l.Steps)
			w.Sleep += l.SleepHours
			w.Water += l.WaterML
			w.Entries++
		}
	}
	if w.Entries == 0 {
		return nil
	}
	n := float64(w.Entries)
	w.Steps /= n
	w.Sleep /= n
	w.Water /= n
	return &w
}

// logStreak cuenta días consecutivos con registro hacia atrás desde el
// último día registrado. Un hueco corta la racha; no altera días previos.
func logStreak(byDay map[time.Time]DailyLog, loggedDays []time.Time) int {
	if len(loggedDays) == 0 {
		return 0
	}
	streak := 0
	for d := loggedDays[len(loggedDays)-1]; ; d = d.AddDate(0, 0, -1) {
		if _, ok := byDay[d]; !ok {
			break
		}
		streak++
	}
	return streak
}

func goalCompletion(byDay map[time.Time]DailyLog, loggedDays []time.Time, g Goal) *GoalCompletion {
	gc := &GoalCompletion{}

	var sumSteps, sumSleep, sumWater float64
	for _, day := range loggedDays {
		l := byDay[day]
		dc := DayCompletion{Date: day}
		if g.StepsTarget > 0 {
			dc.Steps = pct(float64(l.Steps), float64(g.StepsTarget))
			sumSteps += *dc.Steps
		}
		if g.SleepTarget > 0 {
			dc.Sleep = pct(l.SleepHours, g.SleepTarget)
			sumSleep += *dc.Sleep
		}
		if g.WaterTarget > 0 {
			dc.Water = pct(l.WaterML, g.WaterTarget)
			sumWater += *dc.Water
		}
		gc.Days = append(gc.Days, dc)
	}

	if len(loggedDays) == 0 {
		return gc
	}

	n := float64(len(loggedDays))
	var avgs []float64
	if g.StepsTarget > 0 {
		v := sumSteps / n
		gc.AvgSteps = &v
		avgs = append(avgs, v)
	}
	if g.SleepTarget > 0 {
		v := sumSleep / n
		gc.AvgSleep = &v
		avgs = append(avgs, v)
	}
	if g.WaterTarget > 0 {
		v := sumWater / n
		gc.AvgWater = &v
		avgs = append(avgs, v)
	}
	if len(avgs) > 0 {
		sum := 0.0
		for _, v := range avgs {
			sum += v
		}
		avg := sum / float64(len(avgs))
		gc.Average = &avg
	}
	return gc
}

// pct es min(actual/target, 1) * 100.
func pct(actual, target float64) *float64 {
	v := actual / target
	if v > 1 {
		v = 1
	}
	v *= 100
	return &v
}

// goalStreak cuenta días consecutivos, hacia atrás desde el último día
// registrado, cumpliendo todas las metas configuradas a la vez.
func goalStreak(byDay map[time.Time]DailyLog, loggedDays []time.Time, g Goal) int {
	if len(loggedDays) == 0 {
		return 0
	}
	meets := func(l DailyLog) bool {
		if g.StepsTarget > 0 && l.Steps < g.StepsTarget {
			return false
		}
		if g.SleepTarget > 0 && l.SleepHours < g.SleepTarget {
			return false
		}
		if g.WaterTarget > 0 && l.WaterML < g.WaterTarget {
			return false
		}
		return true
	}
	streak := 0
	for d := loggedDays[len(loggedDays)-1]; ; d = d.AddDate(0, 0, -1) {
		l, ok := byDay[d]
		if !ok || !meets(l) {
			break
		}
		streak++
	}
	return streak
}
