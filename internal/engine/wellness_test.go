package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wlog(d time.Time, steps int, sleep, water float64) DailyLog {
	return DailyLog{Date: d, Steps: steps, SleepHours: sleep, WaterML: water, Mood: MoodGood}
}

func TestComputeWellness_CompletionAndWeeklyAverage(t *testing.T) {
	window := Window{From: day(1), To: day(7)}
	logs := []DailyLog{
		wlog(day(3), 9000, 7, 2000),
		wlog(day(5), 7000, 7, 2000),
		wlog(day(7), 8500, 7, 2000),
	}
	goal := &Goal{StepsTarget: 8000, SleepTarget: 7, WaterTarget: 2000}

	s := ComputeWellness(logs, goal, window)

	assert.Equal(t, 3, s.DaysLogged)

	require.NotNil(t, s.Completion)
	require.Len(t, s.Completion.Days, 3)
	for i, want := range []float64{100, 87.5, 100} {
		require.NotNil(t, s.Completion.Days[i].Steps)
		assert.InDelta(t, want, *s.Completion.Days[i].Steps, 0.001)
	}

	// La media semanal divide por los días con registro, no por 7.
	require.NotNil(t, s.Weekly)
	assert.Equal(t, 3, s.Weekly.Entries)
	assert.InDelta(t, (9000.0+7000.0+8500.0)/3, s.Weekly.Steps, 0.001)
	assert.InDelta(t, 7.0, s.Weekly.Sleep, 0.001)
}

func TestComputeWellness_NoGoalMeansNoCompletion(t *testing.T) {
	s := ComputeWellness([]DailyLog{wlog(day(2), 5000, 6, 1200)}, nil, Window{From: day(1), To: day(7)})

	assert.Nil(t, s.Completion, "no goal set must stay undefined, never assumed")
	assert.Nil(t, s.GoalStreak)
	assert.Nil(t, s.Goal)
	require.NotNil(t, s.Weekly)
}

func TestComputeWellness_NoEntriesMeansInsufficientData(t *testing.T) {
	s := ComputeWellness(nil, &Goal{StepsTarget: 8000}, Window{From: day(1), To: day(7)})

	assert.Nil(t, s.Weekly, "a week without entries reports insufficient data, not a zero average")
	assert.Equal(t, 0, s.LogStreak)
	require.NotNil(t, s.GoalStreak)
	assert.Equal(t, 0, *s.GoalStreak)
}

func TestComputeWellness_TrendsKeepGapsAsNulls(t *testing.T) {
	s := ComputeWellness([]DailyLog{wlog(day(2), 4000, 6, 1500)}, nil, Window{From: day(1), To: day(3)})

	require.Len(t, s.Trends.Steps, 3)
	assert.Nil(t, s.Trends.Steps[0].Value)
	require.NotNil(t, s.Trends.Steps[1].Value)
	assert.Equal(t, 4000.0, *s.Trends.Steps[1].Value)
	assert.Nil(t, s.Trends.Steps[2].Value)
}

func TestComputeWellness_LogStreakResetsAfterGap(t *testing.T) {
	logs := []DailyLog{
		wlog(day(1), 4000, 7, 1500),
		wlog(day(2), 4000, 7, 1500),
		// hueco el día 3
		wlog(day(4), 4000, 7, 1500),
		wlog(day(5), 4000, 7, 1500),
	}
	s := ComputeWellness(logs, nil, Window{From: day(1), To: day(7)})

	// La racha camina hacia atrás desde el último día registrado y el
	// hueco la corta; los días anteriores al hueco no cambian.
	assert.Equal(t, 2, s.LogStreak)
}

func TestComputeWellness_GoalStreakRequiresAllTargets(t *testing.T) {
	goal := &Goal{StepsTarget: 8000, SleepTarget: 7, WaterTarget: 2000}
	logs := []DailyLog{
		wlog(day(3), 9000, 7.5, 2100),
		wlog(day(4), 8200, 6.0, 2100), // sueño por debajo de la meta
		wlog(day(5), 8100, 7.2, 2000),
		wlog(day(6), 9500, 8.0, 2500),
	}
	s := ComputeWellness(logs, goal, Window{From: day(1), To: day(7)})

	require.NotNil(t, s.GoalStreak)
	assert.Equal(t, 2, *s.GoalStreak)
	assert.Equal(t, 4, s.LogStreak)
}

func TestComputeWellness_PartialGoalOnlyScoresConfiguredMetrics(t *testing.T) {
	goal := &Goal{StepsTarget: 8000} // sin metas de sueño ni agua
	s := ComputeWellness([]DailyLog{wlog(day(2), 4000, 5, 500)}, goal, Window{From: day(1), To: day(7)})

	require.NotNil(t, s.Completion)
	require.Len(t, s.Completion.Days, 1)
	require.NotNil(t, s.Completion.Days[0].Steps)
	assert.InDelta(t, 50.0, *s.Completion.Days[0].Steps, 0.001)
	assert.Nil(t, s.Completion.Days[0].Sleep)
	assert.Nil(t, s.Completion.Days[0].Water)

	require.NotNil(t, s.Completion.Average)
	assert.InDelta(t, 50.0, *s.Completion.Average, 0.001)
}
