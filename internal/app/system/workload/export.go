package workload

import (
	"fmt"
	"io"
	"slices"

	"github.com/dalemusser/workbookhub/internal/domain/models"
	"github.com/xuri/excelize/v2"
)

// XLSXContentType is the media type of ExportXLSX output.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet names written by ExportXLSX. Week sheets are named "Week<N>".
const (
	SheetBasic        = "Basic information"
	SheetContributors = "Contributors"
	SheetWorkload     = "Workload"
)

// ExportInput is everything the spreadsheet shows.
type ExportInput struct {
	Details      models.WorkbookDetails
	AreaName     string
	SchoolName   string
	Contributors []models.User
	Dashboard    Dashboard
}

var activityHeader = []any{
	"Staff Responsible", "Title / Name", "Learning Activity", "Learning Type",
	"Activity Location", "Task Status", "Time (minutes)",
}

// ExportXLSX writes the workbook as an Excel file: basic information,
// contributors, one sheet per week of activities and a workload summary.
func ExportXLSX(w io.Writer, in ExportInput) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetBasic); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	wb := in.Details.Workbook
	basic := [][]any{
		{"Course name", "Course lead", "Area", "School", "Start Date", "End Date"},
		{wb.CourseName, in.Details.CourseLeadName(), in.AreaName, in.SchoolName, wb.StartDate.String(), wb.EndDate.String()},
	}
	if err := writeRows(f, SheetBasic, basic); err != nil {
		return err
	}
	setWidths(f, SheetBasic, 35, 30, 45, 45, 15, 15)

	if _, err := f.NewSheet(SheetContributors); err != nil {
		return fmt.Errorf("add sheet %s: %w", SheetContributors, err)
	}
	contrib := [][]any{{"Contributor name"}}
	for _, u := range in.Contributors {
		contrib = append(contrib, []any{u.Name})
	}
	if len(in.Contributors) == 0 {
		contrib = append(contrib, []any{"There is no contributor for this course."})
	}
	if err := writeRows(f, SheetContributors, contrib); err != nil {
		return err
	}
	setWidths(f, SheetContributors, 40)

	byWeek := RowsByWeek(RowsFromDetails(in.Details.Activities))
	weeks := make([]int, 0, len(byWeek))
	for n := range byWeek {
		weeks = append(weeks, n)
	}
	slices.Sort(weeks)
	for _, n := range weeks {
		sheet := fmt.Sprintf("Week%d", n)
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("add sheet %s: %w", sheet, err)
		}
		rows := [][]any{activityHeader}
		for _, r := range byWeek[n] {
			rows = append(rows, []any{
				r.StaffList(), r.Name, r.LearningActivity, r.LearningType,
				r.Location, r.TaskStatus, r.Minutes(),
			})
		}
		if err := writeRows(f, sheet, rows); err != nil {
			return err
		}
		setWidths(f, sheet, 45, 45, 20, 20, 20, 15, 20)
	}

	if _, err := f.NewSheet(SheetWorkload); err != nil {
		return fmt.Errorf("add sheet %s: %w", SheetWorkload, err)
	}
	if err := writeRows(f, SheetWorkload, workloadRows(in.Dashboard)); err != nil {
		return err
	}
	setWidths(f, SheetWorkload, 12)

	return f.Write(w)
}

// workloadRows is the dashboard table: one row per week, one column per
// learning type (HH:MM), then the week total.
func workloadRows(d Dashboard) [][]any {
	header := []any{"Week"}
	for _, lt := range d.AllLearningTypes {
		header = append(header, lt.Name)
	}
	header = append(header, "Total")

	rows := [][]any{header}
	for _, w := range d.Weeks {
		row := []any{w.Week}
		for _, lt := range d.AllLearningTypes {
			row = append(row, FormatMinutes(w.MinutesFor(lt.Key)))
		}
		row = append(row, FormatMinutes(w.Total))
		rows = append(rows, row)
	}

	total := []any{"Total"}
	for _, lt := range d.AllLearningTypes {
		total = append(total, FormatMinutes(lt.TotalMinutes))
	}
	total = append(total, FormatMinutes(d.TotalMinutes))
	return append(rows, total)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func setWidths(f *excelize.File, sheet string, widths ...float64) {
	for i, wd := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			continue
		}
		_ = f.SetColWidth(sheet, col, col, wd)
	}
}
