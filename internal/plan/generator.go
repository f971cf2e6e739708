// Package plan expands the three phase templates into the 20-week training
// calendar. Generation is pure: there is no stored plan, every Week is derived
// from the templates, the week number and the start date.
package plan

import (
	"fmt"
	"time"

	"bertmill/hyrox-app/internal/domain"
)

// TotalWeeks in the program: 8 base, 7 race-specific, 5 taper.
const TotalWeeks = 20

// Default program dates. Training starts December 23, 2025; race day is
// May 15, 2026.
var (
	DefaultStartDate = time.Date(2025, time.December, 23, 0, 0, 0, 0, time.UTC)
	RaceDate         = time.Date(2026, time.May, 15, 0, 0, 0, 0, time.UTC)
)

// DefaultAthlete is the profile this plan was built for.
var DefaultAthlete = domain.Athlete{
	Name:        "Robert",
	Partner:     "Katy",
	Event:       "Hyrox Mixed Doubles",
	CurrentTime: "57:00",
	GoalTime:    "Sub-57:00",
}

const isoDate = "2006-01-02"

// phaseFor maps a week number onto its training phase.
// Weeks 1-8 build the base, 9-15 are race-specific, 16-20 taper.
func phaseFor(weekNumber int) (phase int, phaseName string, templates map[string]sessionTemplate) {
	switch {
	case weekNumber <= 8:
		return 1, "Base Building", baseTemplates
	case weekNumber <= 15:
		return 2, "Race-Specific", raceSpecificTemplates
	default:
		return 3, "Taper", taperTemplates
	}
}

// GenerateWeek builds one week of the calendar. It is pure and total for
// weekNumber in [1,TotalWeeks]; callers must not request weeks outside that
// range.
func GenerateWeek(weekNumber int, startDate time.Time) domain.Week {
	phase, phaseName, templates := phaseFor(weekNumber)

	weekStart := startDate.AddDate(0, 0, (weekNumber-1)*7)

	sessions := make([]domain.Session, 0, len(weekdays))
	for offset, day := range weekdays {
		tpl := templates[day]
		sessionDate := weekStart.AddDate(0, 0, offset)

		// Copy the details so callers can't mutate the shared template.
		details := tpl.Details
		details.Main = append([]string(nil), tpl.Details.Main...)

		sessions = append(sessions, domain.Session{
			ID:          fmt.Sprintf("week%d-%s", weekNumber, day),
			Day:         titleCase(day),
			Date:        sessionDate.Format(isoDate),
			Title:       tpl.Title,
			Type:        tpl.Type,
			Description: tpl.Description,
			Details:     &details,
			Duration:    tpl.Duration,
			TargetPace:  tpl.TargetPace,
		})
	}

	return domain.Week{
		WeekNumber: weekNumber,
		Phase:      phase,
		PhaseName:  phaseName,
		StartDate:  weekStart.Format(isoDate),
		Sessions:   sessions,
	}
}

// FullPlan generates all TotalWeeks weeks. Computed once at startup and
// treated as a constant for the process lifetime.
func FullPlan(startDate time.Time) []domain.Week {
	weeks := make([]domain.Week, 0, TotalWeeks)
	for n := 1; n <= TotalWeeks; n++ {
		weeks = append(weeks, GenerateWeek(n, startDate))
	}
	return weeks
}

// titleCase uppercases the first letter of a weekday name ("monday" → "Monday").
// Weekday names are plain ASCII so a byte swap is enough.
func titleCase(day string) string {
	if day == "" {
		return day
	}
	return string(day[0]-'a'+'A') + day[1:]
}
