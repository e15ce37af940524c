// Package catalog holds the course catalog of a session and the registry of sessions
package catalog

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/peertutor/backend/internal/models"
	"github.com/samber/lo"
)

// Store holds the ordered courses of one catalog, most recent first.
//
// Create and Enroll are the only mutations. Each runs to completion under the store lock,
// so a capacity check and the append it guards can never interleave with another enrollment.
type Store struct {
	mu      sync.RWMutex
	courses []models.Course
	now     func() time.Time
	newID   func() string
}

// Option configures a Store
type Option func(*Store)

// WithClock sets the clock used for createdAt timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator sets the generator used for course ids
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		s.newID = newID
	}
}

// NewStore creates a store seeded with the given courses (copied, order kept)
func NewStore(courses []models.Course, opts ...Option) *Store {
	s := &Store{
		courses: make([]models.Course, 0, len(courses)),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	for i := range courses {
		s.courses = append(s.courses, courses[i].Clone())
	}
	return s
}

// Create assigns an id and a creation time to the input and prepends the course.
//
// The input is trusted: field validation happens before this call.
func (s *Store) Create(input models.NewCourse) models.Course {
	s.mu.Lock()
	defer s.mu.Unlock()

	course := models.Course{
		ID:               s.uniqueID(),
		Title:            input.Title,
		Description:      input.Description,
		Instructor:       input.Instructor,
		Duration:         input.Duration,
		Category:         input.Category,
		Level:            input.Level,
		MaxStudents:      input.MaxStudents,
		EnrolledStudents: []string{},
		CreatedAt:        s.now().UTC(),
		CoverImage:       input.CoverImage,
		CourseDocument:   input.CourseDocument,
	}
	course = course.Clone()

	s.courses = slices.Insert(s.courses, 0, course)
	return course.Clone()
}

// uniqueID draws ids until one is not used by any course in the store
func (s *Store) uniqueID() string {
	for {
		id := s.newID()
		if id != "" && s.indexOf(id) < 0 {
			return id
		}
	}
}

// Enroll appends studentName to the roster of the course with courseID.
//
// Unknown ids, duplicate names and full courses leave the catalog untouched;
// the outcome tells the caller which case happened.
// The returned course is a copy of the course after the attempt (zero value when not found).
func (s *Store) Enroll(courseID, studentName string) (models.Course, models.EnrollOutcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(courseID)
	if i < 0 {
		return models.Course{}, models.EnrollOutcomeCourseNotFound
	}

	course := s.courses[i]
	if course.IsEnrolled(studentName) {
		return course.Clone(), models.EnrollOutcomeAlreadyEnrolled
	}
	if course.IsFull() {
		return course.Clone(), models.EnrollOutcomeCourseFull
	}

	updated := course.Clone()
	updated.EnrolledStudents = append(updated.EnrolledStudents, studentName)
	s.courses[i] = updated

	return updated.Clone(), models.EnrollOutcomeEnrolled
}

// Get returns a copy of the course with the given id
func (s *Store) Get(id string) (models.Course, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Course{}, false
	}
	return s.courses[i].Clone(), true
}

// Courses returns a copy of the whole catalog in catalog order
func (s *Store) Courses() []models.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.Map(s.courses, func(course models.Course, _ int) models.Course {
		return course.Clone()
	})
}

// Len returns the number of courses in the catalog
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.courses)
}

// Stats computes the catalog counters shown on the landing page
func (s *Store) Stats() models.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return models.Stats{
		TotalCourses: len(s.courses),
		TotalEnrollments: lo.SumBy(s.courses, func(course models.Course) int {
			return len(course.EnrolledStudents)
		}),
		UniqueInstructors: len(lo.Uniq(lo.Map(s.courses, func(course models.Course, _ int) string {
			return course.Instructor
		}))),
	}
}

// indexOf must be called with the lock held
func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.courses, func(course models.Course) bool {
		return course.ID == id
	})
}

// Filter returns the courses matching both the search term and the level, in catalog order.
//
// The term matches case-insensitively as a substring of the title, description or instructor.
// An empty level matches every course. The input slice is not modified.
func Filter(courses []models.Course, searchTerm string, level models.Level) []models.Course {
	term := strings.ToLower(searchTerm)
	return lo.Filter(courses, func(course models.Course, _ int) bool {
		return matchesSearch(course, term) && (level == "" || course.Level == level)
	})
}

func matchesSearch(course models.Course, term string) bool {
	return strings.Contains(strings.ToLower(course.Title), term) ||
		strings.Contains(strings.ToLower(course.Description), term) ||
		strings.Contains(strings.ToLower(course.Instructor), term)
}
