package workload_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/dalemusser/workbookhub/internal/app/system/workload"
	"github.com/dalemusser/workbookhub/internal/domain/models"
	"github.com/xuri/excelize/v2"
)

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "00:00"},
		{5, "00:05"},
		{60, "01:00"},
		{135, "02:15"},
		{1439, "23:59"},
		{6000, "100:00"},
		{-10, "00:00"},
	}
	for _, tt := range tests {
		if got := workload.FormatMinutes(tt.in); got != tt.want {
			t.Errorf("FormatMinutes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTimeToMinutes(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"01:30", 90},
		{"00:45", 45},
		{"10:00", 600},
		{"ab:15", 15},
		{"02:xx", 120},
		{"", 0},
		{"3", 180},
	}
	for _, tt := range tests {
		if got := workload.TimeToMinutes(tt.in); got != tt.want {
			t.Errorf("TimeToMinutes(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestMinutesRoundTrip(t *testing.T) {
	for m := 0; m < 1440; m++ {
		if got := workload.TimeToMinutes(workload.FormatMinutes(m)); got != m {
			t.Fatalf("round trip %d -> %q -> %d", m, workload.FormatMinutes(m), got)
		}
	}
}

func TestCalculateTotalMinutes(t *testing.T) {
	if got := workload.CalculateTotalMinutes(nil); got != 0 {
		t.Errorf("empty list: got %d, want 0", got)
	}
	rows := []workload.Row{{Time: "01:30"}, {Time: "00:45"}, {Time: "02:00"}}
	want := 0
	for _, r := range rows {
		want += workload.TimeToMinutes(r.Time)
	}
	if got := workload.CalculateTotalMinutes(rows); got != want {
		t.Errorf("got %d, want %d", got, want)
	}
}

func TestSameLearningTypeSums(t *testing.T) {
	rows := []workload.Row{
		{WeekNumber: 1, Time: "01:30", LearningType: "Practice"},
		{WeekNumber: 1, Time: "00:45", LearningType: "practice"},
	}
	byType := workload.CalculateLearningTypeMinutes(rows)
	if len(byType) != 1 || byType["practice"] != 135 {
		t.Errorf("by type: got %v, want map[practice:135]", byType)
	}
	if got := workload.CalculateTotalMinutes(rows); got != 135 {
		t.Errorf("total: got %d, want 135", got)
	}
}

func TestYAxisMax(t *testing.T) {
	tests := []struct{ max, want int }{
		{0, 60},
		{1, 120},
		{59, 120},
		{60, 120},
		{61, 180},
		{135, 240},
	}
	for _, tt := range tests {
		got := workload.YAxisMax(tt.max)
		if got != tt.want {
			t.Errorf("YAxisMax(%d) = %d, want %d", tt.max, got, tt.want)
		}
		if got < tt.max || got%60 != 0 {
			t.Errorf("YAxisMax(%d) = %d violates bound or hour multiple", tt.max, got)
		}
	}
}

func TestPrepareDashboardData(t *testing.T) {
	rows := []workload.Row{
		{WeekNumber: 2, Time: "01:00", LearningType: "Discussion"},
		{WeekNumber: 1, Time: "01:30", LearningType: "Practice"},
		{WeekNumber: 1, Time: "00:45", LearningType: "Practice"},
		{WeekNumber: 2, Time: "00:30", LearningType: "Acquisition"},
	}

	d := workload.PrepareDashboardData(rows, workload.LearningTypeCatalog)

	if len(d.Weeks) != 2 || d.Weeks[0].Week != 1 || d.Weeks[1].Week != 2 {
		t.Fatalf("weeks not ascending: %+v", d.Weeks)
	}
	if d.Weeks[0].MinutesFor("practice") != 135 || d.Weeks[0].Total != 135 {
		t.Errorf("week 1: %+v", d.Weeks[0])
	}
	if d.Weeks[1].Total != 90 {
		t.Errorf("week 2 total: got %d", d.Weeks[1].Total)
	}
	if d.TotalMinutes != 225 || d.MaxWeeklyMinutes != 135 {
		t.Errorf("totals: %d / %d", d.TotalMinutes, d.MaxWeeklyMinutes)
	}
	if d.YAxisMax != 240 {
		t.Errorf("YAxisMax: got %d, want 240", d.YAxisMax)
	}

	var names []string
	for _, lt := range d.AllLearningTypes {
		names = append(names, lt.Name)
	}
	want := []string{"Acquisition", "Discussion", "Practice", "Collaboration", "Investigation", "Production", "Assessment"}
	if len(names) != len(want) {
		t.Fatalf("learning types: got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("learning types: got %v, want %v", names, want)
		}
	}
	for i, lt := range d.AllLearningTypes {
		if lt.Used != (i < 3) {
			t.Errorf("%s Used = %v", lt.Name, lt.Used)
		}
		if !lt.Used && lt.Color != workload.UnusedColor {
			t.Errorf("%s should be greyed, got %s", lt.Name, lt.Color)
		}
	}
}

func TestPrepareDashboardData_AllZero(t *testing.T) {
	d := workload.PrepareDashboardData(nil, workload.LearningTypeCatalog)
	if d.YAxisMax != 60 {
		t.Errorf("YAxisMax: got %d, want 60", d.YAxisMax)
	}
	if len(d.AllLearningTypes) != len(workload.LearningTypeCatalog) {
		t.Errorf("every catalog type should be listed, got %d", len(d.AllLearningTypes))
	}
	for i, lt := range d.AllLearningTypes {
		if lt.Used || lt.Name != workload.LearningTypeCatalog[i] {
			t.Errorf("position %d: %+v", i, lt)
		}
	}
}

func TestPrepareDashboardData_UnknownTypeFollowsUsedCatalog(t *testing.T) {
	rows := []workload.Row{
		{WeekNumber: 1, Time: "00:20", LearningType: "Fieldwork"},
		{WeekNumber: 1, Time: "00:10", LearningType: "Assessment"},
	}
	d := workload.PrepareDashboardData(rows, workload.LearningTypeCatalog)
	if d.AllLearningTypes[0].Name != "Assessment" || d.AllLearningTypes[1].Name != "Fieldwork" {
		t.Errorf("got %s, %s", d.AllLearningTypes[0].Name, d.AllLearningTypes[1].Name)
	}
	if d.AllLearningTypes[2].Used {
		t.Errorf("third entry should be unused: %+v", d.AllLearningTypes[2])
	}
}

func TestGraduateAttributeUsage(t *testing.T) {
	attrs := []models.GraduateAttribute{
		{ID: "ga-1", Name: "Subject specialists"},
		{ID: "ga-2", Name: "Confident"},
		{ID: "ga-3", Name: "Investigative"},
		{ID: "ga-x", Name: "Digitally literate"},
	}
	links := []models.WeekGraduateAttribute{
		{WeekNumber: 1, GraduateAttributeID: "ga-2"},
		{WeekNumber: 2, GraduateAttributeID: "ga-2"},
		{WeekNumber: 2, GraduateAttributeID: "ga-3"},
	}

	usage := workload.GraduateAttributeUsage(links, attrs)

	if len(usage) != len(workload.GraduateAttributeCatalog)+1 {
		t.Fatalf("expected catalog plus extra, got %d", len(usage))
	}
	if usage[0].Name != "Investigative" || usage[0].Count != 1 {
		t.Errorf("first used: %+v", usage[0])
	}
	if usage[1].Name != "Confident" || usage[1].Count != 2 {
		t.Errorf("second used: %+v", usage[1])
	}
	if usage[2].Used || usage[2].Name != "Subject specialists" {
		t.Errorf("unused should follow in catalog order: %+v", usage[2])
	}
	if last := usage[len(usage)-1]; last.Name != "Digitally literate" || last.Used {
		t.Errorf("extra attribute last: %+v", last)
	}
}

func TestChartConfig(t *testing.T) {
	rows := []workload.Row{
		{WeekNumber: 1, Time: "01:00", LearningType: "Practice"},
		{WeekNumber: 3, Time: "00:30", LearningType: "Discussion"},
	}
	d := workload.PrepareDashboardData(rows, workload.LearningTypeCatalog)

	raw, err := workload.ChartConfig(d)
	if err != nil {
		t.Fatalf("ChartConfig failed: %v", err)
	}

	var cfg struct {
		Type string `json:"type"`
		Data struct {
			Labels   []string `json:"labels"`
			Datasets []struct {
				Label  string `json:"label"`
				Data   []int  `json:"data"`
				Hidden bool   `json:"hidden"`
			} `json:"datasets"`
		} `json:"data"`
		Options struct {
			Scales struct {
				Y struct {
					Stacked bool `json:"stacked"`
					Max     int  `json:"max"`
				} `json:"y"`
			} `json:"scales"`
		} `json:"options"`
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if cfg.Type != "bar" {
		t.Errorf("type: got %q", cfg.Type)
	}
	if len(cfg.Data.Labels) != 2 || cfg.Data.Labels[1] != "Week 3" {
		t.Errorf("labels: %v", cfg.Data.Labels)
	}
	if len(cfg.Data.Datasets) != 7 {
		t.Fatalf("datasets: got %d", len(cfg.Data.Datasets))
	}
	first := cfg.Data.Datasets[0]
	if first.Label != "Discussion" || first.Hidden || len(first.Data) != 2 || first.Data[1] != 30 {
		t.Errorf("first dataset: %+v", first)
	}
	if !cfg.Data.Datasets[6].Hidden {
		t.Error("unused learning types should be hidden")
	}
	if !cfg.Options.Scales.Y.Stacked || cfg.Options.Scales.Y.Max != 120 {
		t.Errorf("y axis: %+v", cfg.Options.Scales.Y)
	}
}

func TestExportXLSX(t *testing.T) {
	details := models.WorkbookDetails{
		Workbook: models.Workbook{
			ID:         "wb-1",
			CourseName: "Biology",
			StartDate:  models.MustParseDate("2025-01-06"),
			EndDate:    models.MustParseDate("2025-01-19"),
		},
		CourseLead: &models.Ref{ID: "u-1", Name: "Dr Smith"},
		Activities: []models.ActivityDetail{
			{ID: "a1", Name: "Lecture", TimeEstimateMinutes: 90, WeekNumber: 1, LearningType: "Acquisition", Staff: []models.Ref{{Name: "Ann"}, {Name: "Bob"}}},
			{ID: "a2", Name: "Quiz", TimeEstimateMinutes: 45, WeekNumber: 2, LearningType: "Assessment"},
		},
	}
	dash := workload.PrepareDashboardData(workload.RowsFromDetails(details.Activities), workload.LearningTypeCatalog)

	var buf bytes.Buffer
	err := workload.ExportXLSX(&buf, workload.ExportInput{Details: details, Dashboard: dash})
	if err != nil {
		t.Fatalf("ExportXLSX failed: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("output is not a valid workbook: %v", err)
	}
	defer f.Close()

	want := []string{"Basic information", "Contributors", "Week1", "Week2", "Workload"}
	got := f.GetSheetList()
	if len(got) != len(want) {
		t.Fatalf("sheets: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sheets: got %v, want %v", got, want)
		}
	}

	if v, _ := f.GetCellValue("Basic information", "B2"); v != "Dr Smith" {
		t.Errorf("course lead cell: got %q", v)
	}
	if v, _ := f.GetCellValue("Week1", "A2"); v != "Ann, Bob" {
		t.Errorf("staff cell: got %q", v)
	}
	if v, _ := f.GetCellValue("Week1", "G2"); v != "90" {
		t.Errorf("minutes cell: got %q", v)
	}
	if v, _ := f.GetCellValue("Contributors", "A2"); v != "There is no contributor for this course." {
		t.Errorf("contributors placeholder: got %q", v)
	}
	if v, _ := f.GetCellValue("Workload", "A1"); v != "Week" {
		t.Errorf("workload header: got %q", v)
	}
}
