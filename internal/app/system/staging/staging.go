// Package staging holds a workbook that has not been (fully) written to the
// backend yet and keeps its weeks and activities consistent while the user
// edits it.
//
// Week date ranges are always derived from the workbook start date and the
// week's position: week i (1-based) starts on start + 7(i-1) days and ends six
// days later. Every operation that can move a week re-derives all ranges, so
// displayed ranges never drift.
package staging

import (
	"errors"
	"slices"

	"github.com/dalemusser/workbookhub/internal/domain/models"
)

// DaysPerWeek is the length of one workbook week.
const DaysPerWeek = 7

var (
	// ErrNoSuchWeek is returned when a week number is outside 1..len(weeks).
	ErrNoSuchWeek = errors.New("staging: no such week")
	// ErrNoSuchActivity is returned when an activity index is out of range.
	ErrNoSuchActivity = errors.New("staging: no such activity")
)

// Draft is the staged workbook tree.
type Draft struct {
	Workbook       models.Workbook `json:"workbook"`
	Weeks          []models.Week   `json:"weeks"`
	ContributorIDs []string        `json:"contributor_ids,omitempty"`
}

// New returns a draft for wb with weekCount weeks derived from its start
// date. The workbook end date is set from the last week.
func New(wb models.Workbook, weekCount int) *Draft {
	d := &Draft{Workbook: wb}
	d.SetWeekCount(weekCount)
	return d
}

// DeriveWeekDates returns n consecutive, non-overlapping weeks starting at
// start. Week i (0-based) spans start+7i .. start+7i+6.
func DeriveWeekDates(start models.Date, n int) []models.Week {
	if n <= 0 {
		return nil
	}
	weeks := make([]models.Week, n)
	for i := range weeks {
		ws := start.AddDays(DaysPerWeek * i)
		weeks[i] = models.Week{
			Number:    i + 1,
			StartDate: ws,
			EndDate:   ws.AddDays(DaysPerWeek - 1),
		}
	}
	return weeks
}

// WeekCount returns the number of staged weeks.
func (d *Draft) WeekCount() int { return len(d.Weeks) }

// Week returns the week with the given 1-based number.
func (d *Draft) Week(number int) (*models.Week, error) {
	if number < 1 || number > len(d.Weeks) {
		return nil, ErrNoSuchWeek
	}
	return &d.Weeks[number-1], nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Weeks                                                                       |
*─────────────────────────────────────────────────────────────────────────────*/

// AddWeek appends a week starting the day after the previous week ends (or
// on the workbook start date for the first week) and extends the workbook
// end date to cover it.
func (d *Draft) AddWeek() models.Week {
	start := d.Workbook.StartDate
	if n := len(d.Weeks); n > 0 {
		start = d.Weeks[n-1].EndDate.AddDays(1)
	}
	w := models.Week{
		WorkbookID: d.Workbook.ID,
		Number:     len(d.Weeks) + 1,
		StartDate:  start,
		EndDate:    start.AddDays(DaysPerWeek - 1),
	}
	d.Weeks = append(d.Weeks, w)
	d.Workbook.EndDate = w.EndDate
	return w
}

// DeleteWeek removes week number, closes the numbering gap, moves the later
// weeks' activities with them and re-derives every date range.
func (d *Draft) DeleteWeek(number int) error {
	if number < 1 || number > len(d.Weeks) {
		return ErrNoSuchWeek
	}
	d.Weeks = slices.Delete(d.Weeks, number-1, number)
	d.renumber()
	return nil
}

// SetWeekCount grows or shrinks the draft to n weeks. Trailing weeks (and
// their activities) are dropped when shrinking.
func (d *Draft) SetWeekCount(n int) {
	if n < 0 {
		n = 0
	}
	if n < len(d.Weeks) {
		d.Weeks = d.Weeks[:n]
	}
	for len(d.Weeks) < n {
		d.AddWeek()
	}
	d.renumber()
}

// ChangeStartDate moves the whole schedule to start on start.
func (d *Draft) ChangeStartDate(start models.Date) {
	d.Workbook.StartDate = start
	d.renumber()
}

// ChangePlatform sets the learning platform and reports whether it changed.
// Activities that reference the old platform's learning activities are kept
// as they are; callers must reload the platform-scoped learning activities.
func (d *Draft) ChangePlatform(platformID string) bool {
	if d.Workbook.LearningPlatformID == platformID {
		return false
	}
	d.Workbook.LearningPlatformID = platformID
	return true
}

// renumber restores the dense 1..n numbering, re-derives every week's range
// from the workbook start and recomputes the workbook end date.
func (d *Draft) renumber() {
	for i := range d.Weeks {
		w := &d.Weeks[i]
		w.Number = i + 1
		w.WorkbookID = d.Workbook.ID
		w.StartDate = d.Workbook.StartDate.AddDays(DaysPerWeek * i)
		w.EndDate = w.StartDate.AddDays(DaysPerWeek - 1)
		for j := range w.Activities {
			w.Activities[j].WeekNumber = w.Number
		}
	}
	if n := len(d.Weeks); n > 0 {
		d.Workbook.EndDate = d.Weeks[n-1].EndDate
	} else {
		d.Workbook.EndDate = d.Workbook.StartDate
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Activities                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// Activities are addressed by position, not id: staged activities have no
// id until they are published.

// AddActivity appends a to week weekNumber and returns its index.
func (d *Draft) AddActivity(weekNumber int, a models.Activity) (int, error) {
	w, err := d.Week(weekNumber)
	if err != nil {
		return 0, err
	}
	a.WeekNumber = w.Number
	a.WorkbookID = d.Workbook.ID
	w.Activities = append(w.Activities, a)
	return len(w.Activities) - 1, nil
}

// EditActivity replaces the activity at index in week weekNumber.
func (d *Draft) EditActivity(weekNumber, index int, a models.Activity) error {
	w, err := d.Week(weekNumber)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(w.Activities) {
		return ErrNoSuchActivity
	}
	a.WeekNumber = w.Number
	a.WorkbookID = d.Workbook.ID
	if a.ID == "" {
		a.ID = w.Activities[index].ID
	}
	w.Activities[index] = a
	return nil
}

// DeleteActivity removes the activity at index in week weekNumber.
func (d *Draft) DeleteActivity(weekNumber, index int) error {
	w, err := d.Week(weekNumber)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(w.Activities) {
		return ErrNoSuchActivity
	}
	w.Activities = slices.Delete(w.Activities, index, index+1)
	return nil
}

// Activity returns a copy of the activity at index in week weekNumber.
func (d *Draft) Activity(weekNumber, index int) (models.Activity, error) {
	w, err := d.Week(weekNumber)
	if err != nil {
		return models.Activity{}, err
	}
	if index < 0 || index >= len(w.Activities) {
		return models.Activity{}, ErrNoSuchActivity
	}
	return w.Activities[index], nil
}

// AllActivities returns every staged activity in week then list order.
func (d *Draft) AllActivities() []models.Activity {
	var out []models.Activity
	for _, w := range d.Weeks {
		out = append(out, w.Activities...)
	}
	return out
}

/*─────────────────────────────────────────────────────────────────────────────*
| Contributors                                                                |
*─────────────────────────────────────────────────────────────────────────────*/

// AddContributor records userID as a contributor. The course lead and
// duplicates are ignored; the return value reports whether it was added.
func (d *Draft) AddContributor(userID string) bool {
	if userID == "" || userID == d.Workbook.CourseLeadID || slices.Contains(d.ContributorIDs, userID) {
		return false
	}
	d.ContributorIDs = append(d.ContributorIDs, userID)
	return true
}

// RemoveContributor drops userID and reports whether it was present.
func (d *Draft) RemoveContributor(userID string) bool {
	i := slices.Index(d.ContributorIDs, userID)
	if i < 0 {
		return false
	}
	d.ContributorIDs = slices.Delete(d.ContributorIDs, i, i+1)
	return true
}

/*─────────────────────────────────────────────────────────────────────────────*
| Persisted workbooks                                                         |
*─────────────────────────────────────────────────────────────────────────────*/

// FromPersisted builds a draft from backend records so an existing workbook
// can be checked with the same rules as a staged one. Activities are placed
// into their week by WeekNumber, ordered by Number; activities whose week
// does not exist are dropped. Week ranges are derived from the workbook
// start and each week's position; stored dates are ignored.
func FromPersisted(wb models.Workbook, weeks []models.Week, acts []models.Activity, contributorIDs []string) *Draft {
	d := &Draft{Workbook: wb}
	sorted := slices.Clone(weeks)
	slices.SortFunc(sorted, func(a, b models.Week) int { return a.Number - b.Number })
	derived := DeriveWeekDates(wb.StartDate, len(sorted))
	pos := make(map[int]int, len(sorted))
	for i, w := range sorted {
		w.Activities = nil
		w.StartDate = derived[i].StartDate
		w.EndDate = derived[i].EndDate
		pos[w.Number] = len(d.Weeks)
		d.Weeks = append(d.Weeks, w)
	}

	ordered := slices.Clone(acts)
	slices.SortStableFunc(ordered, func(a, b models.Activity) int { return a.Number - b.Number })
	for _, a := range ordered {
		i, ok := pos[a.WeekNumber]
		if !ok {
			continue
		}
		w := &d.Weeks[i]
		w.Activities = append(w.Activities, a)
	}

	for _, id := range contributorIDs {
		d.AddContributor(id)
	}
	return d
}
