// Package validation checks user input before it reaches the catalog
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/peertutor/backend/internal/models"
)

// Error reports the fields that failed validation together with a message per field
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, e.Fields[name])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validator validates course and enrollment requests
type Validator struct {
	validate *validator.Validate
}

// New creates a new validator with the catalog-specific rules registered
func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// Report json field names instead of Go field names
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	validate.RegisterValidation("level", func(fl validator.FieldLevel) bool {
		level, err := models.ParseLevel(fl.Field().String())
		return err == nil && level != ""
	})

	return &Validator{validate: validate}
}

// CourseRequest trims the text fields of req and validates it.
//
// Title, description, instructor, duration and category must be non-empty, level must be known,
// maxStudents must be positive when given and attachments must be data URLs.
func (v *Validator) CourseRequest(req *models.CreateCourseRequest) error {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.Instructor = strings.TrimSpace(req.Instructor)
	req.Duration = strings.TrimSpace(req.Duration)
	req.Category = strings.TrimSpace(req.Category)
	req.Level = strings.TrimSpace(req.Level)

	return v.check(req)
}

// EnrollRequest trims the fields of req and validates it.
//
// Student name is required and email must be a valid address. Motivation is optional.
func (v *Validator) EnrollRequest(req *models.EnrollRequest) error {
	req.StudentName = strings.TrimSpace(req.StudentName)
	req.Email = strings.TrimSpace(req.Email)
	req.Motivation = strings.TrimSpace(req.Motivation)

	return v.check(req)
}

func (v *Validator) check(req any) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return fmt.Errorf("failed to validate request: %w", err)
	}

	result := &Error{Fields: make(map[string]string, len(fieldErrors))}
	for _, fe := range fieldErrors {
		field := fieldPath(fe)
		result.Fields[field] = message(field, fe)
	}
	return result
}

// fieldPath strips the struct name from the namespace, e.g. "CreateCourseRequest.coverImage.data" -> "coverImage.data"
func fieldPath(fe validator.FieldError) string {
	_, path, found := strings.Cut(fe.Namespace(), ".")
	if !found {
		return fe.Field()
	}
	return path
}

func message(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s has an invalid email format", field)
	case "gt":
		return fmt.Sprintf("%s must be a positive number", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "level":
		return fmt.Sprintf("%s must be 'beginner', 'intermediate' or 'advanced'", field)
	case "datauri":
		return fmt.Sprintf("%s must be a data URL", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
