// Package publish writes a staged workbook to the backend.
//
// Requests are strictly sequential: the workbook, then each week in
// ascending number, then that week's activities in list order (each followed
// by its staff links), then contributor links. The first failure stops the
// sequence. Nothing already created is rolled back, so a failed publish can
// leave a partial workbook on the backend and re-publishing can create a
// duplicate.
package publish

import (
	"context"
	"fmt"
	"slices"

	"github.com/dalemusser/workbookhub/internal/app/system/errmsg"
	"github.com/dalemusser/workbookhub/internal/app/system/staging"
	"github.com/dalemusser/workbookhub/internal/domain/models"
	"go.uber.org/zap"
)

// Backend is the subset of the backend client the sequencer writes through.
type Backend interface {
	CreateWorkbook(ctx context.Context, wb models.Workbook) (models.Workbook, error)
	CreateWeek(ctx context.Context, workbookID string, w models.Week) (models.Week, error)
	CreateActivity(ctx context.Context, workbookID string, a models.Activity) (models.Activity, error)
	CreateActivityStaff(ctx context.Context, link models.ActivityStaff) (models.ActivityStaff, error)
	CreateWorkbookContributor(ctx context.Context, link models.WorkbookContributor) (models.WorkbookContributor, error)
}

// Step names the request that failed.
type Step string

const (
	StepWorkbook    Step = "workbook"
	StepWeek        Step = "week"
	StepActivity    Step = "activity"
	StepStaff       Step = "staff"
	StepContributor Step = "contributor"
)

// Error reports where a publish stopped. WorkbookID is set once the workbook
// itself was created, whatever step failed afterwards.
type Error struct {
	Step          Step
	WorkbookID    string
	WeekNumber    int // 0 when not applicable
	ActivityIndex int // 0-based; -1 when not applicable
	StaffID       string
	ContributorID string
	Err           error
}

func (e *Error) Error() string {
	return fmt.Sprintf("publish %s: %s: %v", e.Step, e.Where(), e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Where describes the failing step for people, e.g. "Week 2, Activity 1".
func (e *Error) Where() string {
	switch e.Step {
	case StepWorkbook:
		return "Creating workbook"
	case StepWeek:
		return fmt.Sprintf("Week %d", e.WeekNumber)
	case StepActivity:
		return fmt.Sprintf("Week %d, Activity %d", e.WeekNumber, e.ActivityIndex+1)
	case StepStaff:
		return fmt.Sprintf("Week %d, Activity %d staff", e.WeekNumber, e.ActivityIndex+1)
	case StepContributor:
		return "Contributors"
	}
	return string(e.Step)
}

// Message is the text shown in the publish-failed dialog.
func (e *Error) Message() string {
	return e.Where() + ": " + errmsg.Message(e.Err)
}

// Result summarises a successful publish.
type Result struct {
	WorkbookID   string
	Weeks        int
	Activities   int
	StaffLinks   int
	Contributors int
}

// Sequencer performs publishes.
type Sequencer struct {
	backend Backend
	log     *zap.Logger
}

// NewSequencer returns a Sequencer writing through b.
func NewSequencer(b Backend, logger *zap.Logger) *Sequencer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sequencer{backend: b, log: logger}
}

// Publish writes d to the backend. On failure the returned error is a *Error
// and the Result holds whatever was created before it.
func (s *Sequencer) Publish(ctx context.Context, d *staging.Draft) (Result, error) {
	var res Result

	created, err := s.backend.CreateWorkbook(ctx, d.Workbook)
	if err != nil {
		return res, s.fail(&Error{Step: StepWorkbook, ActivityIndex: -1, Err: err})
	}
	res.WorkbookID = created.ID

	weeks := slices.Clone(d.Weeks)
	slices.SortStableFunc(weeks, func(a, b models.Week) int { return a.Number - b.Number })

	for _, w := range weeks {
		if _, err := s.backend.CreateWeek(ctx, res.WorkbookID, w); err != nil {
			return res, s.fail(&Error{Step: StepWeek, WorkbookID: res.WorkbookID, WeekNumber: w.Number, ActivityIndex: -1, Err: err})
		}
		res.Weeks++

		for i, a := range w.Activities {
			a.WeekNumber = w.Number
			act, err := s.backend.CreateActivity(ctx, res.WorkbookID, a)
			if err != nil {
				return res, s.fail(&Error{Step: StepActivity, WorkbookID: res.WorkbookID, WeekNumber: w.Number, ActivityIndex: i, Err: err})
			}
			res.Activities++

			for _, staffID := range a.StaffIDs {
				if staffID == "" {
					continue
				}
				link := models.ActivityStaff{ActivityID: act.ID, StaffID: staffID}
				if _, err := s.backend.CreateActivityStaff(ctx, link); err != nil {
					return res, s.fail(&Error{Step: StepStaff, WorkbookID: res.WorkbookID, WeekNumber: w.Number, ActivityIndex: i, StaffID: staffID, Err: err})
				}
				res.StaffLinks++
			}
		}
	}

	for _, uid := range d.ContributorIDs {
		link := models.WorkbookContributor{WorkbookID: res.WorkbookID, ContributorID: uid}
		if _, err := s.backend.CreateWorkbookContributor(ctx, link); err != nil {
			return res, s.fail(&Error{Step: StepContributor, WorkbookID: res.WorkbookID, ActivityIndex: -1, ContributorID: uid, Err: err})
		}
		res.Contributors++
	}

	s.log.Info("workbook published",
		zap.String("workbook_id", res.WorkbookID),
		zap.Int("weeks", res.Weeks),
		zap.Int("activities", res.Activities),
		zap.Int("contributors", res.Contributors))
	return res, nil
}

func (s *Sequencer) fail(e *Error) error {
	s.log.Warn("publish aborted",
		zap.String("step", string(e.Step)),
		zap.String("workbook_id", e.WorkbookID),
		zap.Int("week", e.WeekNumber),
		zap.Int("activity_index", e.ActivityIndex),
		zap.Error(e.Err))
	return e
}
