package workload

import (
	"slices"
	"strings"

	"github.com/dalemusser/workbookhub/internal/domain/models"
)

// WeekSummary is one bar of the chart and one row of the table.
type WeekSummary struct {
	Week    int
	Minutes map[string]int // by TypeKey
	Total   int
}

// MinutesFor returns the week's minutes for a learning type key.
func (w WeekSummary) MinutesFor(key string) int { return w.Minutes[key] }

// LearningType is one catalog entry as shown on the dashboard.
type LearningType struct {
	Name         string
	Key          string
	Color        string
	TotalMinutes int
	Used         bool
}

// Dashboard is the chart- and table-ready summary of a workbook.
type Dashboard struct {
	Weeks []WeekSummary
	// AllLearningTypes lists used types first, then unused ones, each group
	// in catalog order. Used types outside the catalog follow the used
	// catalog types.
	AllLearningTypes []LearningType
	TotalMinutes     int
	MaxWeeklyMinutes int
	// YAxisMax is the max weekly total rounded up to the hour plus one hour
	// of headroom.
	YAxisMax int
}

// YAxisMax returns ceil(maxMinutes/60)*60 + 60.
func YAxisMax(maxMinutes int) int {
	if maxMinutes < 0 {
		maxMinutes = 0
	}
	return (maxMinutes+59)/60*60 + 60
}

// PrepareDashboardData groups rows by week (ascending) and learning type and
// derives the totals and chart bounds. catalog fixes which learning types
// are always shown and in what order.
func PrepareDashboardData(rows []Row, catalog []string) Dashboard {
	var d Dashboard

	byWeek := make(map[int]*WeekSummary)
	var weekNums []int
	typeTotals := make(map[string]int)
	typeNames := make(map[string]string)
	var seen []string

	for _, r := range rows {
		ws, ok := byWeek[r.WeekNumber]
		if !ok {
			ws = &WeekSummary{Week: r.WeekNumber, Minutes: make(map[string]int)}
			byWeek[r.WeekNumber] = ws
			weekNums = append(weekNums, r.WeekNumber)
		}
		key := TypeKey(r.LearningType)
		mins := TimeToMinutes(r.Time)
		ws.Minutes[key] += mins
		ws.Total += mins
		typeTotals[key] += mins
		if _, ok := typeNames[key]; !ok {
			typeNames[key] = strings.TrimSpace(r.LearningType)
			seen = append(seen, key)
		}
		d.TotalMinutes += mins
	}

	slices.Sort(weekNums)
	for _, n := range weekNums {
		ws := *byWeek[n]
		d.Weeks = append(d.Weeks, ws)
		if ws.Total > d.MaxWeeklyMinutes {
			d.MaxWeeklyMinutes = ws.Total
		}
	}
	d.YAxisMax = YAxisMax(d.MaxWeeklyMinutes)
	d.AllLearningTypes = orderLearningTypes(catalog, typeTotals, typeNames, seen)
	return d
}

func orderLearningTypes(catalog []string, totals map[string]int, names map[string]string, seen []string) []LearningType {
	var used, unused []LearningType
	inCatalog := make(map[string]bool, len(catalog))

	for _, name := range catalog {
		key := TypeKey(name)
		inCatalog[key] = true
		lt := LearningType{Name: name, Key: key, TotalMinutes: totals[key]}
		if lt.TotalMinutes > 0 {
			lt.Used = true
			lt.Color = colorFor(key, 0)
			used = append(used, lt)
		} else {
			lt.Color = UnusedColor
			unused = append(unused, lt)
		}
	}

	extra := 0
	for _, key := range seen {
		if inCatalog[key] || totals[key] == 0 {
			continue
		}
		name := names[key]
		if name == "" {
			name = "Unspecified"
		}
		used = append(used, LearningType{
			Name:         name,
			Key:          key,
			Color:        colorFor(key, extra),
			TotalMinutes: totals[key],
			Used:         true,
		})
		extra++
	}

	return append(used, unused...)
}

// AttributeUsage is one graduate attribute with its number of week links.
type AttributeUsage struct {
	ID    string
	Name  string
	Count int
	Used  bool
	Color string
}

// GraduateAttributeUsage counts week links per attribute. Attributes are
// listed in GraduateAttributeCatalog order (matched by name), then any other
// attribute the backend knows; used ones come first.
func GraduateAttributeUsage(links []models.WeekGraduateAttribute, attrs []models.GraduateAttribute) []AttributeUsage {
	counts := make(map[string]int)
	for _, l := range links {
		counts[l.GraduateAttributeID]++
	}

	byName := make(map[string]models.GraduateAttribute, len(attrs))
	for _, a := range attrs {
		byName[strings.ToLower(a.Name)] = a
	}

	var ordered []AttributeUsage
	placed := make(map[string]bool)
	for _, name := range GraduateAttributeCatalog {
		u := AttributeUsage{Name: name}
		if a, ok := byName[strings.ToLower(name)]; ok {
			u.ID = a.ID
			placed[a.ID] = true
		}
		ordered = append(ordered, u)
	}
	for _, a := range attrs {
		if !placed[a.ID] {
			ordered = append(ordered, AttributeUsage{ID: a.ID, Name: a.Name})
		}
	}

	var used, unused []AttributeUsage
	for _, u := range ordered {
		if u.ID != "" {
			u.Count = counts[u.ID]
		}
		if u.Count > 0 {
			u.Used = true
			u.Color = "#7aaeea"
			used = append(used, u)
		} else {
			u.Color = UnusedColor
			unused = append(unused, u)
		}
	}
	return append(used, unused...)
}
