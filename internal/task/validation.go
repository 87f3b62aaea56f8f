package task

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const (
	createSchemaURL = "https://github.com/nibzard/taskboard/schema/create-task.json"
	updateSchemaURL = "https://github.com/nibzard/taskboard/schema/update-task.json"
)

var createSchemaSource = fmt.Sprintf(`{
  "type": "object",
  "required": ["title"],
  "properties": {
    "title": {"type": "string", "minLength": 1, "maxLength": %[1]d},
    "description": {"type": "string", "maxLength": %[2]d},
    "estimated_time": {"type": "integer", "minimum": 0, "maximum": %[3]d}
  }
}`, MaxTitleLength, MaxDescriptionLength, MaxEstimatedTime)

var updateSchemaSource = fmt.Sprintf(`{
  "type": "object",
  "properties": {
    "title": {"type": "string", "minLength": 1, "maxLength": %[1]d},
    "description": {"type": "string", "maxLength": %[2]d},
    "category": {"enum": ["work", "personal", "urgent"]},
    "estimated_time": {"type": "integer", "minimum": 0, "maximum": %[3]d}
  }
}`, MaxTitleLength, MaxDescriptionLength, MaxEstimatedTime)

// Field error messages keyed by field, then by the failing schema keyword.
var fieldMessages = map[string]map[string]string{
	"title": {
		"required":  "Title is required",
		"minLength": "Title is required",
		"maxLength": fmt.Sprintf("Title must be less than %d characters", MaxTitleLength),
		"type":      "Title must be text",
	},
	"description": {
		"maxLength": fmt.Sprintf("Description must be less than %d characters", MaxDescriptionLength),
		"type":      "Description must be text",
	},
	"estimated_time": {
		"minimum": "Estimated time must be positive",
		"maximum": "Estimated time cannot exceed 24 hours",
		"type":    "Estimated time must be a whole number",
	},
	"category": {
		"enum": "Category must be one of work, personal, urgent",
	},
}

// FieldErrors maps a field name to its message.
type FieldErrors map[string]string

// Fields returns the failing field names in sorted order.
func (f FieldErrors) Fields() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type schemas struct {
	create *jsonschema.Schema
	update *jsonschema.Schema
	err    error
}

var (
	schemasOnce sync.Once
	compiled    schemas
)

func loadSchemas() schemas {
	schemasOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(createSchemaURL, strings.NewReader(createSchemaSource)); err != nil {
			compiled.err = fmt.Errorf("add create schema: %w", err)
			return
		}
		if err := compiler.AddResource(updateSchemaURL, strings.NewReader(updateSchemaSource)); err != nil {
			compiled.err = fmt.Errorf("add update schema: %w", err)
			return
		}
		create, err := compiler.Compile(createSchemaURL)
		if err != nil {
			compiled.err = fmt.Errorf("compile create schema: %w", err)
			return
		}
		update, err := compiler.Compile(updateSchemaURL)
		if err != nil {
			compiled.err = fmt.Errorf("compile update schema: %w", err)
			return
		}
		compiled.create = create
		compiled.update = update
	})
	return compiled
}

// ValidateCreate checks a create input against the task schema.
// It returns nil when the input is valid.
func ValidateCreate(in CreateInput) FieldErrors {
	s := loadSchemas()
	if s.err != nil {
		return validateCreateMinimal(in)
	}
	return validateWithSchema(s.create, in)
}

// ValidateUpdate checks the fields present in a partial update.
// It returns nil when the input is valid.
func ValidateUpdate(in UpdateInput) FieldErrors {
	s := loadSchemas()
	if s.err != nil {
		return validateUpdateMinimal(in)
	}
	return validateWithSchema(s.update, in)
}

func validateWithSchema(schema *jsonschema.Schema, in any) FieldErrors {
	data, err := json.Marshal(in)
	if err != nil {
		return FieldErrors{"": fmt.Sprintf("marshal input: %v", err)}
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return FieldErrors{"": fmt.Sprintf("unmarshal input: %v", err)}
	}

	err = schema.Validate(doc)
	if err == nil {
		return nil
	}

	errs := FieldErrors{}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		errs[""] = err.Error()
		return errs
	}
	collectSchemaErrors(errs, ve)
	if len(errs) == 0 {
		errs[""] = ve.Message
	}
	return errs
}

func collectSchemaErrors(errs FieldErrors, err *jsonschema.ValidationError) {
	if len(err.Causes) > 0 {
		for _, cause := range err.Causes {
			collectSchemaErrors(errs, cause)
		}
		return
	}

	keyword := lastSegment(err.KeywordLocation)
	field := lastSegment(err.InstanceLocation)
	if keyword == "required" {
		// Required errors are reported on the parent object.
		field = "title"
	}
	if _, seen := errs[field]; seen {
		return
	}
	if msg, ok := fieldMessages[field][keyword]; ok {
		errs[field] = msg
		return
	}
	errs[field] = err.Message
}

func lastSegment(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	if i := strings.LastIndex(ptr, "/"); i >= 0 {
		ptr = ptr[i+1:]
	}
	ptr = strings.ReplaceAll(ptr, "~1", "/")
	return strings.ReplaceAll(ptr, "~0", "~")
}

// validateCreateMinimal mirrors the create schema without the schema engine.
func validateCreateMinimal(in CreateInput) FieldErrors {
	errs := FieldErrors{}
	checkTitle(errs, in.Title)
	checkDescription(errs, in.Description)
	checkEstimate(errs, in.EstimatedTime)
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// validateUpdateMinimal mirrors the update schema without the schema engine.
func validateUpdateMinimal(in UpdateInput) FieldErrors {
	errs := FieldErrors{}
	if in.Title != nil {
		checkTitle(errs, *in.Title)
	}
	if in.Description != nil {
		checkDescription(errs, *in.Description)
	}
	if in.Category != nil && !in.Category.Valid() {
		errs["category"] = fieldMessages["category"]["enum"]
	}
	checkEstimate(errs, in.EstimatedTime)
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func checkTitle(errs FieldErrors, title string) {
	n := utf8.RuneCountInString(title)
	switch {
	case n == 0:
		errs["title"] = fieldMessages["title"]["minLength"]
	case n > MaxTitleLength:
		errs["title"] = fieldMessages["title"]["maxLength"]
	}
}

func checkDescription(errs FieldErrors, description string) {
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		errs["description"] = fieldMessages["description"]["maxLength"]
	}
}

func checkEstimate(errs FieldErrors, minutes *int) {
	if minutes == nil {
		return
	}
	switch {
	case *minutes < 0:
		errs["estimated_time"] = fieldMessages["estimated_time"]["minimum"]
	case *minutes > MaxEstimatedTime:
		errs["estimated_time"] = fieldMessages["estimated_time"]["maximum"]
	}
}

// ParseEstimatedTime parses the estimated-time form field.
// Blank input means no estimate.
func ParseEstimatedTime(text string) (*int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return nil, &ValidationError{Fields: FieldErrors{
			"estimated_time": fieldMessages["estimated_time"]["type"],
		}}
	}
	return &n, nil
}
