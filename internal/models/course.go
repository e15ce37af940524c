package models

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Level represents the difficulty level of a course
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// LevelAliases maps legacy level values found in stored catalogs to levels
var LevelAliases = map[string]Level{
	"debutant":      LevelBeginner,
	"intermediaire": LevelIntermediate,
	"avance":        LevelAdvanced,
}

// ParseLevel converts a raw value into a Level.
//
// Canonical values and legacy aliases are accepted, case-insensitively.
// An empty value yields an empty Level, which means "any level" for filtering.
func ParseLevel(raw string) (Level, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch Level(value) {
	case "":
		return "", nil
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return Level(value), nil
	}
	if level, ok := LevelAliases[value]; ok {
		return level, nil
	}
	return "", fmt.Errorf("invalid level: %s, must be 'beginner', 'intermediate' or 'advanced'", raw)
}

// UnmarshalText accepts legacy aliases so stored catalogs keep loading
func (l *Level) UnmarshalText(text []byte) error {
	level, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = level
	return nil
}

// Attachment is an opaque file embedded inline as a data URL
type Attachment struct {
	Name string `json:"name,omitempty" validate:"max=255"`
	Data string `json:"data" validate:"required,datauri"`
}

// Course represents a course listing in a catalog
type Course struct {
	ID               string      `json:"id"`
	Title            string      `json:"title"`
	Description      string      `json:"description"`
	Instructor       string      `json:"instructor"`
	Duration         string      `json:"duration"`
	Category         string      `json:"category"`
	Level            Level       `json:"level"`
	MaxStudents      *int        `json:"maxStudents"`
	EnrolledStudents []string    `json:"enrolledStudents"`
	CreatedAt        time.Time   `json:"createdAt"`
	CoverImage       *Attachment `json:"coverImage"`
	CourseDocument   *Attachment `json:"courseDocument"`
}

// IsFull returns true when the course has a capacity and no seats remain
func (c *Course) IsFull() bool {
	return c.MaxStudents != nil && len(c.EnrolledStudents) >= *c.MaxStudents
}

// RemainingSeats returns the number of free seats, or nil for unlimited capacity
func (c *Course) RemainingSeats() *int {
	if c.MaxStudents == nil {
		return nil
	}
	remaining := max(*c.MaxStudents-len(c.EnrolledStudents), 0)
	return &remaining
}

// IsEnrolled checks if a student name is already on the roster (exact match)
func (c *Course) IsEnrolled(studentName string) bool {
	return slices.Contains(c.EnrolledStudents, studentName)
}

// Clone returns a deep copy of the course
func (c *Course) Clone() Course {
	clone := *c
	clone.EnrolledStudents = append(make([]string, 0, len(c.EnrolledStudents)), c.EnrolledStudents...)
	if c.MaxStudents != nil {
		maxStudents := *c.MaxStudents
		clone.MaxStudents = &maxStudents
	}
	if c.CoverImage != nil {
		cover := *c.CoverImage
		clone.CoverImage = &cover
	}
	if c.CourseDocument != nil {
		document := *c.CourseDocument
		clone.CourseDocument = &document
	}
	return clone
}

// NewCourse holds the fields of a course before the catalog assigns its identity
type NewCourse struct {
	Title          string
	Description    string
	Instructor     string
	Duration       string
	Category       string
	Level          Level
	MaxStudents    *int
	CoverImage     *Attachment
	CourseDocument *Attachment
}

// CourseResponse represents a course in API responses
type CourseResponse struct {
	Course
	IsFull         bool `json:"isFull"`
	RemainingSeats *int `json:"remainingSeats"`
}

// NewCourseResponse builds the API view of a course
func NewCourseResponse(course Course) CourseResponse {
	return CourseResponse{
		Course:         course,
		IsFull:         course.IsFull(),
		RemainingSeats: course.RemainingSeats(),
	}
}

// CourseListItem represents a course in list responses (attachment payloads omitted)
type CourseListItem struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Instructor        string    `json:"instructor"`
	Duration          string    `json:"duration"`
	Category          string    `json:"category"`
	Level             Level     `json:"level"`
	MaxStudents       *int      `json:"maxStudents"`
	EnrolledCount     int       `json:"enrolledCount"`
	RemainingSeats    *int      `json:"remainingSeats"`
	IsFull            bool      `json:"isFull"`
	CreatedAt         time.Time `json:"createdAt"`
	CoverImage        string    `json:"coverImage,omitempty"`
	HasCourseDocument bool      `json:"hasCourseDocument"`
}

// NewCourseListItem builds the list view of a course
func NewCourseListItem(course Course) CourseListItem {
	item := CourseListItem{
		ID:                course.ID,
		Title:             course.Title,
		Description:       course.Description,
		Instructor:        course.Instructor,
		Duration:          course.Duration,
		Category:          course.Category,
		Level:             course.Level,
		MaxStudents:       course.MaxStudents,
		EnrolledCount:     len(course.EnrolledStudents),
		RemainingSeats:    course.RemainingSeats(),
		IsFull:            course.IsFull(),
		CreatedAt:         course.CreatedAt,
		HasCourseDocument: course.CourseDocument != nil,
	}
	if course.CoverImage != nil {
		item.CoverImage = course.CoverImage.Data
	}
	return item
}

// CreateCourseRequest represents a request to create a course
type CreateCourseRequest struct {
	Title          string      `json:"title" validate:"required,max=200"`
	Description    string      `json:"description" validate:"required"`
	Instructor     string      `json:"instructor" validate:"required,max=100"`
	Duration       string      `json:"duration" validate:"required,max=50"`
	Category       string      `json:"category" validate:"required,max=100"`
	Level          string      `json:"level" validate:"required,level"`
	MaxStudents    *int        `json:"maxStudents" validate:"omitempty,gt=0"`
	CoverImage     *Attachment `json:"coverImage"`
	CourseDocument *Attachment `json:"courseDocument"`
}

// Stats represents catalog-wide counters
type Stats struct {
	TotalCourses      int `json:"totalCourses"`
	TotalEnrollments  int `json:"totalEnrollments"`
	UniqueInstructors int `json:"uniqueInstructors"`
}
