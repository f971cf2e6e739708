package domain

// SessionType classifies what kind of training a session is.
type SessionType string

const (
	SessionStrength   SessionType = "strength"
	SessionRunning    SessionType = "running"
	SessionRecovery   SessionType = "recovery"
	SessionMixed      SessionType = "mixed"
	SessionSimulation SessionType = "simulation"
)

// SessionDetails holds the structured instructions for a session.
type SessionDetails struct {
	Warmup string   `json:"warmup,omitempty"`
	Main   []string `json:"main"`
	Notes  string   `json:"notes,omitempty"`
}

// Session is one scheduled workout. Sessions are derived data: they are
// generated from the phase templates at read time and never persisted. The
// ID ("week3-monday") is the join key for completions and notes.
type Session struct {
	ID          string          `json:"id"`
	Day         string          `json:"day"`
	Date        string          `json:"date"` // ISO YYYY-MM-DD
	Title       string          `json:"title"`
	Type        SessionType     `json:"type"`
	Description string          `json:"description"`
	Details     *SessionDetails `json:"details,omitempty"`
	Duration    string          `json:"duration"`
	TargetPace  string          `json:"targetPace,omitempty"`
}

// Week is a 7-session block of the plan.
type Week struct {
	WeekNumber int       `json:"weekNumber"` // 1..20
	Phase      int       `json:"phase"`      // 1|2|3
	PhaseName  string    `json:"phaseName"`
	StartDate  string    `json:"startDate"` // ISO YYYY-MM-DD
	Sessions   []Session `json:"sessions"`  // exactly 7, monday..sunday
}

// Athlete is the profile block served alongside the plan.
type Athlete struct {
	Name        string `json:"name"`
	Partner     string `json:"partner"`
	Event       string `json:"event"`
	CurrentTime string `json:"currentTime"`
	GoalTime    string `json:"goalTime"`
}
