package htmlsanitize_test

import (
	"strings"
	"testing"

	"github.com/dalemusser/workbookhub/internal/app/system/htmlsanitize"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		want      string
		wantNotIn string
	}{
		{name: "empty", in: "", want: ""},
		{name: "plain", in: "Week 1: API error (500)", want: "Week 1: API error (500)"},
		{name: "formatting kept", in: "<p><strong>Week 2</strong> failed</p>", want: "<p><strong>Week 2</strong> failed</p>"},
		{name: "script removed", in: `ok<script>alert(1)</script>`, wantNotIn: "script"},
		{name: "onclick removed", in: `<span onclick="x()">hi</span>`, wantNotIn: "onclick"},
		{name: "iframe removed", in: `<iframe src="https://evil"></iframe>x`, wantNotIn: "iframe"},
		{name: "form removed", in: `<form><input name="a"></form>`, wantNotIn: "input"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := htmlsanitize.Sanitize(tt.in)
			if tt.wantNotIn != "" {
				if strings.Contains(got, tt.wantNotIn) {
					t.Errorf("Sanitize(%q) = %q, still contains %q", tt.in, got, tt.wantNotIn)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPlainTextToHTML(t *testing.T) {
	got := string(htmlsanitize.PlainTextToHTML("a < b & c\nnext"))
	want := "a &lt; b &amp; c<br>next"
	if got != want {
		t.Errorf("PlainTextToHTML = %q, want %q", got, want)
	}
	if htmlsanitize.PlainTextToHTML("") != "" {
		t.Error("empty input should give empty output")
	}
}

func TestMessagesHTML(t *testing.T) {
	if got := htmlsanitize.MessagesHTML(nil); got != "" {
		t.Errorf("MessagesHTML(nil) = %q", got)
	}

	one := string(htmlsanitize.MessagesHTML([]string{"Name is required"}))
	if one != "Name is required" {
		t.Errorf("single message = %q", one)
	}

	many := string(htmlsanitize.MessagesHTML([]string{
		"Course name is required",
		"Week 1, Activity 1: <b>Staff</b> is required",
	}))
	if !strings.HasPrefix(many, `<ul class="error-list"><li>Course name is required</li>`) {
		t.Errorf("list rendering = %q", many)
	}
	if strings.Contains(many, "<b>") {
		t.Errorf("message markup not escaped: %q", many)
	}
	if strings.Count(many, "<li>") != 2 {
		t.Errorf("want 2 items, got %q", many)
	}
}
