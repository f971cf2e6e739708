package plan

import (
	"fmt"
	"testing"
	"time"

	"bertmill/hyrox-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2025, time.December, 23, 0, 0, 0, 0, time.UTC)

func TestGenerateWeekShape(t *testing.T) {
	for weekNumber := 1; weekNumber <= TotalWeeks; weekNumber++ {
		week := GenerateWeek(weekNumber, testStart)

		require.Len(t, week.Sessions, 7, "week %d", weekNumber)
		assert.Equal(t, weekNumber, week.WeekNumber)

		// Dates are strictly increasing and contiguous from the week start.
		expectedStart := testStart.AddDate(0, 0, (weekNumber-1)*7)
		assert.Equal(t, expectedStart.Format("2006-01-02"), week.StartDate)
		for i, session := range week.Sessions {
			expected := expectedStart.AddDate(0, 0, i).Format("2006-01-02")
			assert.Equal(t, expected, session.Date, "week %d day %d", weekNumber, i)
		}
	}
}

func TestPhaseBoundaries(t *testing.T) {
	tests := []struct {
		week      int
		phase     int
		phaseName string
	}{
		{1, 1, "Base Building"},
		{8, 1, "Base Building"},
		{9, 2, "Race-Specific"},
		{15, 2, "Race-Specific"},
		{16, 3, "Taper"},
		{20, 3, "Taper"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("week%d", tt.week), func(t *testing.T) {
			week := GenerateWeek(tt.week, testStart)
			assert.Equal(t, tt.phase, week.Phase)
			assert.Equal(t, tt.phaseName, week.PhaseName)
		})
	}

	// No off-by-one at either boundary.
	assert.NotEqual(t, GenerateWeek(8, testStart).Phase, GenerateWeek(9, testStart).Phase)
	assert.NotEqual(t, GenerateWeek(15, testStart).Phase, GenerateWeek(16, testStart).Phase)
}

func TestSessionIDsUnique(t *testing.T) {
	seen := make(map[string]struct{})
	total := 0

	for _, week := range FullPlan(testStart) {
		for _, session := range week.Sessions {
			_, dup := seen[session.ID]
			require.False(t, dup, "duplicate session id %s", session.ID)
			seen[session.ID] = struct{}{}
			total++
		}
	}

	assert.Equal(t, 140, total)
}

func TestWeekOneDates(t *testing.T) {
	week := GenerateWeek(1, testStart)

	assert.Equal(t, "week1-monday", week.Sessions[0].ID)
	assert.Equal(t, "2025-12-23", week.Sessions[0].Date)
	assert.Equal(t, "2025-12-29", week.Sessions[6].Date)
	assert.Equal(t, "Monday", week.Sessions[0].Day)
	assert.Equal(t, "Sunday", week.Sessions[6].Day)
}

func TestTemplateFieldsCarried(t *testing.T) {
	week := GenerateWeek(3, testStart)
	monday := week.Sessions[0]

	assert.Equal(t, "Lower Strength + Running", monday.Title)
	assert.Equal(t, domain.SessionStrength, monday.Type)
	assert.Equal(t, "90 min", monday.Duration)
	assert.Equal(t, "4:00/km", monday.TargetPace)
	require.NotNil(t, monday.Details)
	assert.Equal(t, "10 min easy jog, dynamic stretches", monday.Details.Warmup)
	assert.Len(t, monday.Details.Main, 5)

	// Saturday in the taper phase comes from a different template set.
	taperSaturday := GenerateWeek(18, testStart).Sessions[5]
	assert.Equal(t, "Mini Simulation", taperSaturday.Title)
	assert.Equal(t, domain.SessionSimulation, taperSaturday.Type)
}

func TestGeneratedPlanIsStable(t *testing.T) {
	// Same inputs, same output: the plan is pure derived data.
	assert.Equal(t, GenerateWeek(5, testStart), GenerateWeek(5, testStart))
}

func TestSessionDetailsNotShared(t *testing.T) {
	a := GenerateWeek(1, testStart)
	b := GenerateWeek(1, testStart)

	a.Sessions[0].Details.Main[0] = "mutated"
	assert.NotEqual(t, "mutated", b.Sessions[0].Details.Main[0])
}
