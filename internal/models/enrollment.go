package models

// EnrollOutcome describes what an enrollment attempt did to the catalog
type EnrollOutcome string

const (
	EnrollOutcomeEnrolled        EnrollOutcome = "enrolled"
	EnrollOutcomeAlreadyEnrolled EnrollOutcome = "already_enrolled"
	EnrollOutcomeCourseFull      EnrollOutcome = "course_full"
	EnrollOutcomeCourseNotFound  EnrollOutcome = "course_not_found"
)

// Changed reports whether the outcome mutated the catalog
func (o EnrollOutcome) Changed() bool {
	return o == EnrollOutcomeEnrolled
}

// EnrollRequest represents a request to enroll a student in a course
type EnrollRequest struct {
	StudentName string `json:"studentName" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Motivation  string `json:"motivation" validate:"omitempty,max=1000"`
}

// EnrollResponse represents the result of an enrollment attempt
type EnrollResponse struct {
	Outcome EnrollOutcome  `json:"outcome"`
	Course  CourseResponse `json:"course"`
}
