package inputval

import "testing"

func TestIsValidHTTPURL(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"http://localhost:8000/api", true},
		{"https://workbooks.example.ac.uk/api", true},
		{"", false},
		{"   ", false},
		{"ftp://example.com", false},
		{"localhost:8000", false},
		{"/api", false},
		{"https://", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := IsValidHTTPURL(tt.in); got != tt.want {
				t.Errorf("IsValidHTTPURL(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsValidDate(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"2025-01-06", true},
		{"2024-02-29", true},
		{"2025-02-29", false},
		{"06/01/2025", false},
		{"2025-1-6", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := IsValidDate(tt.in); got != tt.want {
				t.Errorf("IsValidDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsValidHHMM(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"00:00", true},
		{"1:30", true},
		{"01:30", true},
		{"120:05", true},
		{"01:60", false},
		{"01:5", false},
		{"ab:cd", false},
		{"-1:30", false},
		{"01:-5", false},
		{"90", false},
		{":30", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := IsValidHHMM(tt.in); got != tt.want {
				t.Errorf("IsValidHHMM(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	type TestInput struct {
		Course string `validate:"required,max=10" label:"Course name"`
		Start  string `validate:"required,isodate" label:"Start date"`
		Weeks  int    `validate:"min=1,max=52" label:"Number of weeks"`
	}

	tests := []struct {
		name       string
		input      TestInput
		wantErrors bool
		wantFirst  string
	}{
		{
			name:  "valid input",
			input: TestInput{Course: "Biology", Start: "2025-01-06", Weeks: 3},
		},
		{
			name:       "missing course",
			input:      TestInput{Start: "2025-01-06", Weeks: 3},
			wantErrors: true,
			wantFirst:  "Course name is required.",
		},
		{
			name:       "course too long",
			input:      TestInput{Course: "Advanced Biology", Start: "2025-01-06", Weeks: 3},
			wantErrors: true,
			wantFirst:  "Course name must be at most 10 characters.",
		},
		{
			name:       "bad date",
			input:      TestInput{Course: "Biology", Start: "6 Jan", Weeks: 3},
			wantErrors: true,
			wantFirst:  "Start date must be a date (YYYY-MM-DD).",
		},
		{
			name:       "zero weeks",
			input:      TestInput{Course: "Biology", Start: "2025-01-06"},
			wantErrors: true,
			wantFirst:  "Number of weeks must be at least 1.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(tt.input)

			if result.HasErrors() != tt.wantErrors {
				t.Errorf("Validate() HasErrors = %v, want %v (%s)", result.HasErrors(), tt.wantErrors, result.All())
			}
			if tt.wantErrors && result.First() != tt.wantFirst {
				t.Errorf("Validate() First() = %q, want %q", result.First(), tt.wantFirst)
			}
		})
	}
}

func TestValidate_CollectsAll(t *testing.T) {
	type in struct {
		A string `validate:"required" label:"Name"`
		B string `validate:"required,hhmm" label:"Time estimate"`
	}
	res := Validate(in{B: "9:99"})
	if len(res.Errors) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(res.Errors), res.Errors)
	}
	want := "Name is required.; Time estimate must be a duration in HH:MM."
	if got := res.All(); got != want {
		t.Errorf("All() = %q, want %q", got, want)
	}
	if got := res.Messages(); len(got) != 2 {
		t.Errorf("Messages() = %v", got)
	}
}

func TestResult_Empty(t *testing.T) {
	r := &Result{}
	if r.HasErrors() || r.First() != "" || r.All() != "" || r.Messages() != nil {
		t.Errorf("empty result reported errors: %+v", r)
	}
	var nilRes *Result
	if nilRes.HasErrors() {
		t.Error("nil result reported errors")
	}
}

func TestValidate_HTTPURL(t *testing.T) {
	type cfg struct {
		URL string `validate:"required,httpurl" label:"Backend base URL"`
	}
	if res := Validate(cfg{URL: "http://localhost:8000/api"}); res.HasErrors() {
		t.Errorf("valid URL rejected: %s", res.All())
	}
	res := Validate(cfg{URL: "localhost"})
	if got := res.First(); got != "Backend base URL must be an http or https URL." {
		t.Errorf("First() = %q", got)
	}
}
