package plan

import "bertmill/hyrox-app/internal/domain"

// sessionTemplate is the per-weekday blueprint a Session is stamped from.
// Everything except id/day/date comes from here verbatim.
type sessionTemplate struct {
	Title       string
	Type        domain.SessionType
	Description string
	Details     domain.SessionDetails
	Duration    string
	TargetPace  string
}

// weekdays in schedule order. Index is the day offset from the week start.
var weekdays = [7]string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// Phase 1: Base Building
var baseTemplates = map[string]sessionTemplate{
	"monday": {
		Title:       "Lower Strength + Running",
		Type:        domain.SessionStrength,
		Description: "Squats, sled push/pull practice",
		Details: domain.SessionDetails{
			Warmup: "10 min easy jog, dynamic stretches",
			Main: []string{
				"Back Squats: 4x8 @ 70%",
				"Sled Push: 4x20m moderate weight",
				"Sled Pull: 4x20m moderate weight",
				"Lunges: 3x12 each leg",
				"Running: 3-4 x 1km @ 4:00/km pace",
			},
			Notes: "Focus on form, build strength foundation",
		},
		Duration:   "90 min",
		TargetPace: "4:00/km",
	},
	"tuesday": {
		Title:       "Threshold Run + Upper Push",
		Type:        domain.SessionRunning,
		Description: "Threshold running with lighter upper body work",
		Details: domain.SessionDetails{
			Warmup: "10 min easy jog, arm circles",
			Main: []string{
				"Threshold Run: 5-6km @ 4:10/km",
				"Bench Press: 3x10 moderate",
				"Overhead Press: 3x10",
				"Push-ups: 3x15",
				"Tricep Dips: 3x12",
			},
			Notes: "Keep chest/shoulders lighter, running is priority",
		},
		Duration:   "75 min",
		TargetPace: "4:10/km",
	},
	"wednesday": {
		Title:       "Yoga / Recovery",
		Type:        domain.SessionRecovery,
		Description: "Mobility focus, active recovery",
		Details: domain.SessionDetails{
			Warmup: "Light walking 5 min",
			Main: []string{
				"45 min yoga flow",
				"Hip openers",
				"Spine mobility",
				"Foam rolling: 15 min",
			},
			Notes: "Focus on areas of tightness, prioritize recovery",
		},
		Duration: "60 min",
	},
	"thursday": {
		Title:       "Lower Pull + Running Under Fatigue",
		Type:        domain.SessionMixed,
		Description: "Deadlifts, lunges, dark zone simulation",
		Details: domain.SessionDetails{
			Warmup: "10 min row or bike, dynamic stretches",
			Main: []string{
				"Deadlifts: 4x6 @ 75%",
				"Romanian Deadlifts: 3x10",
				"Walking Lunges: 3x20 total",
				"1km Run",
				"Wall Balls: 3x20",
				"1km Run",
				"Burpee Broad Jumps: 3x10",
			},
			Notes: "Simulate running under fatigue from stations",
		},
		Duration:   "90 min",
		TargetPace: "4:15/km",
	},
	"friday": {
		Title:       "Upper Pull + Intervals",
		Type:        domain.SessionMixed,
		Description: "Back and biceps with fast intervals",
		Details: domain.SessionDetails{
			Warmup: "10 min easy jog, arm swings",
			Main: []string{
				"Pull-ups: 4x8 (assisted if needed)",
				"Bent Over Rows: 4x10",
				"Bicep Curls: 3x12",
				"Face Pulls: 3x15",
				"Track Intervals: 6-8 x 400m @ 1:30-1:35",
			},
			Notes: "90 sec rest between intervals",
		},
		Duration:   "75 min",
		TargetPace: "3:45/km",
	},
	"saturday": {
		Title:       "Full Simulation",
		Type:        domain.SessionSimulation,
		Description: "All 8 stations + runs, practice transitions",
		Details: domain.SessionDetails{
			Warmup: "15 min easy jog, full body activation",
			Main: []string{
				"1km Run → SkiErg 1000m",
				"1km Run → Sled Push 50m",
				"1km Run → Sled Pull 50m",
				"1km Run → Burpee Broad Jumps 80m",
				"1km Run → Rowing 1000m",
				"1km Run → Farmers Carry 200m",
				"1km Run → Lunges 100m",
				"1km Run → Wall Balls 100 reps",
			},
			Notes: "Focus on pacing and transitions with Katy",
		},
		Duration:   "60-70 min",
		TargetPace: "4:00/km",
	},
	"sunday": {
		Title:       "Rest / Light Yoga",
		Type:        domain.SessionRecovery,
		Description: "Full rest or gentle mobility",
		Details: domain.SessionDetails{
			Main: []string{
				"Complete rest OR",
				"30 min gentle yoga",
				"Light stretching",
				"Meditation/visualization",
			},
			Notes: "Listen to your body, prioritize sleep",
		},
		Duration: "0-30 min",
	},
}

// Phase 2: Race-Specific
var raceSpecificTemplates = map[string]sessionTemplate{
	"monday": {
		Title:       "Lower Strength + Race Pace Runs",
		Type:        domain.SessionStrength,
		Description: "Maintenance strength with race pace work",
		Details: domain.SessionDetails{
			Warmup: "10 min easy jog, dynamic stretches",
			Main: []string{
				"Back Squats: 3x6 @ 75%",
				"Sled Push: 5x20m race weight",
				"Sled Pull: 5x20m race weight",
				"Running: 4 x 1km @ 3:55/km",
			},
			Notes: "Reduced strength volume, increased running intensity",
		},
		Duration:   "85 min",
		TargetPace: "3:55/km",
	},
	"tuesday": {
		Title:       "Negative Split Run + Rowing",
		Type:        domain.SessionRunning,
		Description: "Practice finishing strong with rowing technique",
		Details: domain.SessionDetails{
			Warmup: "10 min easy jog",
			Main: []string{
				"Negative Split Run: 6km total",
				"  - First 3km @ 4:15/km",
				"  - Last 3km @ 3:50/km",
				"Rowing Technique: 4 x 500m",
				"  - Focus on drive sequence",
				"  - Maintain 1:45-1:50 split",
			},
			Notes: "Rowing form is key - legs, back, arms",
		},
		Duration:   "75 min",
		TargetPace: "Negative split",
	},
	"wednesday": {
		Title:       "Active Recovery",
		Type:        domain.SessionRecovery,
		Description: "Easy movement and mobility",
		Details: domain.SessionDetails{
			Main: []string{
				"30 min easy swim or bike",
				"30 min yoga/mobility",
				"Foam rolling",
			},
			Notes: "Stay loose, no intensity",
		},
		Duration: "60 min",
	},
	"thursday": {
		Title:       "Station Time Trials",
		Type:        domain.SessionSimulation,
		Description: "Test individual station times",
		Details: domain.SessionDetails{
			Warmup: "15 min easy jog, full activation",
			Main: []string{
				"1km Run time trial",
				"Rest 5 min",
				"SkiErg 1000m time trial",
				"Rest 5 min",
				"Rowing 1000m time trial",
				"Rest 5 min",
				"Wall Balls 100 reps time trial",
			},
			Notes: "Record times, compare to previous weeks",
		},
		Duration:   "60 min",
		TargetPace: "Max effort",
	},
	"friday": {
		Title:       "Transition Drills + Intervals",
		Type:        domain.SessionMixed,
		Description: "Partner transitions with Katy",
		Details: domain.SessionDetails{
			Warmup: "10 min jog, dynamic stretches",
			Main: []string{
				"Handoff Practice: 6x station-to-run transitions",
				"Communication drills under fatigue",
				"Track Intervals: 6 x 600m @ 2:20-2:25",
				"Cool down together",
			},
			Notes: "Practice race day communication with Katy",
		},
		Duration:   "70 min",
		TargetPace: "3:50/km",
	},
	"saturday": {
		Title:       "Race Simulation",
		Type:        domain.SessionSimulation,
		Description: "Full race pace simulation with strategy",
		Details: domain.SessionDetails{
			Warmup: "15 min easy jog, race prep routine",
			Main: []string{
				"Full Hyrox simulation at 90% effort",
				"Practice pacing strategy:",
				"  - Runs 1-4: Controlled @ 4:00/km",
				"  - Runs 5-8: Push @ 3:50/km",
				"Time all stations",
				"Practice handoffs with Katy",
			},
			Notes: "Target sub-57:00 simulation",
		},
		Duration:   "55-60 min",
		TargetPace: "3:55/km avg",
	},
	"sunday": {
		Title:       "Rest",
		Type:        domain.SessionRecovery,
		Description: "Complete rest",
		Details: domain.SessionDetails{
			Main: []string{
				"No training",
				"Light walking only",
				"Focus on nutrition and sleep",
			},
			Notes: "Recovery is training",
		},
		Duration: "0 min",
	},
}

// Phase 3: Taper
var taperTemplates = map[string]sessionTemplate{
	"monday": {
		Title:       "Light Strength + Strides",
		Type:        domain.SessionStrength,
		Description: "Maintain neuromuscular activation",
		Details: domain.SessionDetails{
			Warmup: "10 min easy jog",
			Main: []string{
				"Back Squats: 2x5 @ 60%",
				"Sled Push: 3x20m light",
				"Strides: 6 x 100m @ race pace",
				"Core work: 10 min",
			},
			Notes: "Low volume, maintain sharpness",
		},
		Duration:   "50 min",
		TargetPace: "Race pace strides",
	},
	"tuesday": {
		Title:       "Easy Run + Technique",
		Type:        domain.SessionRunning,
		Description: "Short easy running with form focus",
		Details: domain.SessionDetails{
			Warmup: "5 min walk",
			Main: []string{
				"Easy Run: 4km @ conversational pace",
				"Rowing: 2 x 500m technique focus",
				"Light stretching",
			},
			Notes: "Stay loose, no hard efforts",
		},
		Duration:   "45 min",
		TargetPace: "4:30/km",
	},
	"wednesday": {
		Title:       "Yoga / Mobility",
		Type:        domain.SessionRecovery,
		Description: "Active recovery focus",
		Details: domain.SessionDetails{
			Main: []string{
				"45 min yoga",
				"Foam rolling",
				"Meditation",
			},
			Notes: "Mental preparation begins",
		},
		Duration: "45 min",
	},
	"thursday": {
		Title:       "Short Sharp Session",
		Type:        domain.SessionMixed,
		Description: "Brief intensity to stay sharp",
		Details: domain.SessionDetails{
			Warmup: "10 min easy jog",
			Main: []string{
				"4 x 400m @ race pace",
				"2 min rest between",
				"Wall Balls: 2 x 20 @ race pace",
				"Easy cool down",
			},
			Notes: "Just enough to maintain fitness",
		},
		Duration:   "40 min",
		TargetPace: "3:50/km",
	},
	"friday": {
		Title:       "Rest or Light Walk",
		Type:        domain.SessionRecovery,
		Description: "Minimal activity",
		Details: domain.SessionDetails{
			Main: []string{
				"20-30 min easy walk",
				"Light stretching",
				"Visualization",
			},
			Notes: "Save energy for race",
		},
		Duration: "30 min",
	},
	"saturday": {
		Title:       "Mini Simulation",
		Type:        domain.SessionSimulation,
		Description: "Short opener workout",
		Details: domain.SessionDetails{
			Warmup: "10 min easy jog",
			Main: []string{
				"2 x 1km @ race pace",
				"1 x SkiErg 500m",
				"1 x Rowing 500m",
				"20 Wall Balls",
				"Easy cool down",
			},
			Notes: "Wake up the systems, stay fresh",
		},
		Duration:   "35 min",
		TargetPace: "Race pace",
	},
	"sunday": {
		Title:       "Complete Rest",
		Type:        domain.SessionRecovery,
		Description: "Full recovery",
		Details: domain.SessionDetails{
			Main: []string{
				"No training",
				"Prepare gear",
				"Visualization",
				"Early to bed",
			},
			Notes: "Trust your training",
		},
		Duration: "0 min",
	},
}
