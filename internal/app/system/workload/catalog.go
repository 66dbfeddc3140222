package workload

// LearningTypeCatalog is the fixed display order of learning types. Every
// entry is shown on the dashboard even when no activity uses it.
var LearningTypeCatalog = []string{
	"Acquisition",
	"Collaboration",
	"Discussion",
	"Investigation",
	"Practice",
	"Production",
	"Assessment",
}

// GraduateAttributeCatalog is the fixed display order of graduate
// attributes.
var GraduateAttributeCatalog = []string{
	"Subject specialists",
	"Investigative",
	"Independent and critical thinkers",
	"Resourceful and responsible",
	"Effective communicators",
	"Confident",
	"Adaptable",
	"Experienced collaborators",
	"Ethically and socially aware",
	"Reflective learners",
}

// learningTypeColors maps catalog keys to chart colours.
var learningTypeColors = map[string]string{
	"acquisition":   "#a1f5ed",
	"collaboration": "#ffd750",
	"discussion":    "#7aaeea",
	"investigation": "#ff966d",
	"practice":      "#bb98dc",
	"production":    "#bdea75",
	"assessment":    "#f8807f",
}

// UnusedColor is used for categories with no minutes or occurrences.
const UnusedColor = "#d1d5db"

// extraColors colour learning types that are not in the catalog.
var extraColors = []string{"#94a3b8", "#fca5a5", "#86efac", "#fde68a", "#c4b5fd"}

func colorFor(key string, extra int) string {
	if c, ok := learningTypeColors[key]; ok {
		return c
	}
	return extraColors[extra%len(extraColors)]
}
