package task

import (
	"regexp"
	"strings"
)

var markupPattern = regexp.MustCompile(`<[^>]*>`)

var entityReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
)

// Sanitize strips angle-bracket markup, escapes & < > " ' into entities and
// trims surrounding whitespace.
//
// The transform is one-way: sanitizing an already escaped string escapes
// its ampersands again.
func Sanitize(text string) string {
	stripped := markupPattern.ReplaceAllString(text, "")
	return strings.TrimSpace(entityReplacer.Replace(stripped))
}

// SanitizeCreate returns a copy of in with its text fields sanitized.
// A description that sanitizes to nothing is dropped.
func SanitizeCreate(in CreateInput) CreateInput {
	out := in
	out.Title = Sanitize(in.Title)
	if in.Description != "" {
		out.Description = Sanitize(in.Description)
	}
	return out
}

// SanitizeUpdate returns a copy of in with any present text fields sanitized.
func SanitizeUpdate(in UpdateInput) UpdateInput {
	out := in
	if in.Title != nil {
		out.Title = String(Sanitize(*in.Title))
	}
	if in.Description != nil {
		out.Description = String(Sanitize(*in.Description))
	}
	return out
}
