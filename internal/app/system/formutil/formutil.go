// Package formutil provides helpers for form re-rendering with validation errors.
//
// When a form submission fails validation, the form should be re-rendered with:
// - The user's previously entered values (echoed back)
// - Every message explaining what went wrong
// - All the context data needed for the form (dropdowns, etc.)
//
// Example usage:
//
//	type newWorkbookData struct {
//		formutil.Base
//		CourseName string
//		Platforms  []models.LearningPlatform
//	}
//
//	data := newWorkbookData{CourseName: name}
//	formutil.SetBase(&data.Base, r, "New workbook", "/workbooks")
//	data.SetErrors(validation.Workbook(wb, weeks))
//	templates.Render(w, r, "workbook_new", data)
package formutil

import (
	"html/template"
	"net/http"

	"github.com/dalemusser/workbookhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/workbookhub/internal/app/system/viewdata"
)

// Base contains common fields for form pages that can be embedded in form data structs.
type Base struct {
	viewdata.BaseVM

	// Error is the rendered message block; Errors keeps the raw messages
	// for templates that lay them out themselves.
	Error  template.HTML
	Errors []string
}

// SetBase populates the common fields from the request.
func SetBase(b *Base, r *http.Request, title, backDefault string) {
	b.BaseVM = viewdata.NewBaseVM(r, title, backDefault)
}

// SetError sets a single error message.
func (b *Base) SetError(msg string) {
	if msg == "" {
		b.Error, b.Errors = "", nil
		return
	}
	b.Errors = []string{msg}
	b.Error = htmlsanitize.MessagesHTML(b.Errors)
}

// SetErrors sets an itemised list of messages.
func (b *Base) SetErrors(msgs []string) {
	b.Errors = msgs
	b.Error = htmlsanitize.MessagesHTML(msgs)
}

// HasError reports whether any message is set.
func (b *Base) HasError() bool { return len(b.Errors) > 0 }
