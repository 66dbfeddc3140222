// Package htmlsanitize renders untrusted text (backend error details,
// validation messages) into HTML that is safe to drop into a template.
package htmlsanitize

import (
	"html"
	"html/template"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// messagePolicy allows the handful of elements used to lay out messages.
func messagePolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.NewPolicy()
		p.AllowElements("p", "br", "strong", "em", "b", "i", "code", "ul", "ol", "li", "span")
		p.AllowAttrs("class").OnElements("ul", "li", "span", "p")
		p.AllowStandardURLs()
		p.AllowAttrs("href").OnElements("a")
		p.RequireNoFollowOnLinks(true)
		policy = p
	})
	return policy
}

// Sanitize strips everything outside the message policy.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return messagePolicy().Sanitize(s)
}

// SanitizeToHTML is Sanitize typed for templates.
func SanitizeToHTML(s string) template.HTML {
	return template.HTML(Sanitize(s))
}

// PlainTextToHTML escapes s and turns newlines into <br>.
func PlainTextToHTML(s string) template.HTML {
	if s == "" {
		return ""
	}
	esc := html.EscapeString(s)
	esc = strings.ReplaceAll(esc, "\r\n", "\n")
	return template.HTML(strings.ReplaceAll(esc, "\n", "<br>"))
}

// MessagesHTML renders msgs as an itemised list. A single message renders
// as plain escaped text.
func MessagesHTML(msgs []string) template.HTML {
	switch len(msgs) {
	case 0:
		return ""
	case 1:
		return SanitizeToHTML(string(PlainTextToHTML(msgs[0])))
	}
	var b strings.Builder
	b.WriteString(`<ul class="error-list">`)
	for _, m := range msgs {
		b.WriteString("<li>")
		b.WriteString(string(PlainTextToHTML(m)))
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return SanitizeToHTML(b.String())
}
