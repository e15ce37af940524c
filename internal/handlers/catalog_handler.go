package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/peertutor/backend/internal/attachments"
	"github.com/peertutor/backend/internal/middleware"
	"github.com/peertutor/backend/internal/models"
	"github.com/peertutor/backend/internal/services"
	"github.com/peertutor/backend/internal/validation"
	"go.uber.org/zap"
)

// CatalogService is the interface that wraps methods for course catalog business logic.
type CatalogService interface {
	// Method CreateCourse validate the request and add a new course at the top of the session catalog.
	//
	// If the request is invalid, a *validation.Error will be returned together with "nil" value.
	CreateCourse(ctx context.Context, sessionID string, req models.CreateCourseRequest) (*models.Course, error)
	// Method Enroll add a student to the roster of a course.
	//
	// Duplicate names and full courses are reported through the returned outcome.
	// If the course does not exist, services.ErrCourseNotFound will be returned.
	Enroll(ctx context.Context, sessionID, courseID string, req models.EnrollRequest) (*models.Course, models.EnrollOutcome, error)
	// Method ListCourses retrieve the session courses matching "search" and "level".
	//
	// Empty parameters match every course. Please reference Level constants for correct level values.
	ListCourses(ctx context.Context, sessionID, search, level string) ([]models.Course, error)
	// Method GetCourse retrieve a course by its id.
	//
	// If the course does not exist, services.ErrCourseNotFound will be returned together with "nil" value.
	GetCourse(ctx context.Context, sessionID, courseID string) (*models.Course, error)
	// Method GetCourseDocument retrieve the file name, content type and content of the course document.
	GetCourseDocument(ctx context.Context, sessionID, courseID string) (string, string, []byte, error)
	// Method GetStats retrieve the counters of the session catalog.
	GetStats(ctx context.Context, sessionID string) (*models.Stats, error)
}

// maxMultipartMemory is the part of a multipart form kept in memory, the rest goes to temporary files
const maxMultipartMemory = 32 << 20

// CatalogHandler handles HTTP requests for the course catalog
type CatalogHandler struct {
	BaseHandler
	service CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(svc CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service:     svc,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all catalog handler routes
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Route("/courses", func(r chi.Router) {
		r.Get("/", h.ListCourses)
		r.Post("/", h.CreateCourse)
		r.Get("/{id}", h.GetCourse)
		r.Get("/{id}/document", h.DownloadDocument)
		r.Post("/{id}/enrollments", h.Enroll)
	})
	r.Get("/stats", h.GetStats)
}

// ListCourses handles GET /api/v1/courses
// @Summary List courses
// @Description Get the courses of the session, most recent first, filtered by search term and level
// @Tags courses
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Catalog session id"
// @Param search query string false "Case-insensitive term matched against title, description and instructor"
// @Param level query string false "Level: beginner, intermediate or advanced"
// @Success 200 {array} models.CourseListItem
// @Failure 400 {object} map[string]any
// @Failure 500 {object} map[string]string
// @Router /courses [get]
func (h *CatalogHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())
	search := r.URL.Query().Get("search")
	level := r.URL.Query().Get("level")

	courses, err := h.service.ListCourses(r.Context(), sessionID, search, level)
	if err != nil {
		h.handleServiceError(w, err, "failed to list courses")
		return
	}

	items := make([]models.CourseListItem, 0, len(courses))
	for _, course := range courses {
		items = append(items, models.NewCourseListItem(course))
	}

	h.respondJSON(w, http.StatusOK, items)
}

// CreateCourse handles POST /api/v1/courses
// @Summary Create a course
// @Description Create a course from a JSON body or a multipart form with optional coverImage and courseDocument files
// @Tags courses
// @Accept json,mpfd
// @Produce json
// @Param X-Session-ID header string false "Catalog session id"
// @Param request body models.CreateCourseRequest false "Course fields (JSON requests)"
// @Param coverImage formData file false "Cover image (multipart requests)"
// @Param courseDocument formData file false "PDF document (multipart requests)"
// @Success 201 {object} models.CourseResponse
// @Failure 400 {object} map[string]any
// @Failure 500 {object} map[string]string
// @Router /courses [post]
func (h *CatalogHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())

	var req models.CreateCourseRequest
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		parsed, err := h.parseCourseForm(r)
		if err != nil {
			var validationErr *validation.Error
			if errors.As(err, &validationErr) {
				h.respondValidationError(w, validationErr)
				return
			}
			h.logger.Info("invalid course form", zap.Error(err))
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		req = *parsed
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	course, err := h.service.CreateCourse(r.Context(), sessionID, req)
	if err != nil {
		h.handleServiceError(w, err, "failed to create course")
		return
	}

	h.respondJSON(w, http.StatusCreated, models.NewCourseResponse(*course))
}

// parseCourseForm reads course fields and attachment files from a multipart form
func (h *CatalogHandler) parseCourseForm(r *http.Request) (*models.CreateCourseRequest, error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, errors.New("failed to parse multipart form")
	}

	req := &models.CreateCourseRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Instructor:  r.FormValue("instructor"),
		Duration:    r.FormValue("duration"),
		Category:    r.FormValue("category"),
		Level:       r.FormValue("level"),
	}

	if raw := strings.TrimSpace(r.FormValue("maxStudents")); raw != "" {
		maxStudents, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &validation.Error{Fields: map[string]string{"maxStudents": "maxStudents must be a positive number"}}
		}
		req.MaxStudents = &maxStudents
	}

	cover, err := formAttachment(r, string(attachments.KindCoverImage), attachments.KindCoverImage)
	if err != nil {
		return nil, err
	}
	req.CoverImage = cover

	document, err := formAttachment(r, string(attachments.KindCourseDocument), attachments.KindCourseDocument)
	if err != nil {
		return nil, err
	}
	req.CourseDocument = document

	return req, nil
}

// formAttachment encodes the file of a form field, returning nil when the field is absent
func formAttachment(r *http.Request, field string, kind attachments.Kind) (*models.Attachment, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	attachment, err := attachments.Encode(file, header.Filename, kind)
	if err != nil {
		if errors.Is(err, attachments.ErrUnsupportedType) || errors.Is(err, attachments.ErrEmptyFile) {
			return nil, &validation.Error{Fields: map[string]string{field: err.Error()}}
		}
		return nil, err
	}
	return attachment, nil
}

// GetCourse handles GET /api/v1/courses/{id}
// @Summary Get course by ID
// @Description Get a course with its roster and attachments
// @Tags courses
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Catalog session id"
// @Param id path string true "Course ID"
// @Success 200 {object} models.CourseResponse
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /courses/{id} [get]
func (h *CatalogHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())
	id := chi.URLParam(r, "id")

	course, err := h.service.GetCourse(r.Context(), sessionID, id)
	if err != nil {
		h.handleServiceError(w, err, "failed to get course")
		return
	}

	h.respondJSON(w, http.StatusOK, models.NewCourseResponse(*course))
}

// DownloadDocument handles GET /api/v1/courses/{id}/document
// @Summary Download course document
// @Description Download the PDF document attached to a course
// @Tags courses
// @Produce application/pdf
// @Param X-Session-ID header string false "Catalog session id"
// @Param id path string true "Course ID"
// @Success 200 "Document content"
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /courses/{id}/document [get]
func (h *CatalogHandler) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())
	id := chi.URLParam(r, "id")

	name, contentType, data, err := h.service.GetCourseDocument(r.Context(), sessionID, id)
	if err != nil {
		if errors.Is(err, services.ErrDocumentNotFound) {
			h.respondError(w, http.StatusNotFound, "course document not found")
			return
		}
		h.handleServiceError(w, err, "failed to get course document")
		return
	}

	if name == "" {
		name = "document.pdf"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Error("failed to write course document", zap.Error(err))
	}
}

// Enroll handles POST /api/v1/courses/{id}/enrollments
// @Summary Enroll in a course
// @Description Add a student to the course roster. Enrolling twice is a no-op, full courses refuse the enrollment.
// @Tags enrollments
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Catalog session id"
// @Param id path string true "Course ID"
// @Param request body models.EnrollRequest true "Enrollment contact info"
// @Success 201 {object} models.EnrollResponse "Student enrolled"
// @Success 200 {object} models.EnrollResponse "Student was already enrolled"
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Failure 409 {object} models.EnrollResponse "Course is full"
// @Failure 500 {object} map[string]string
// @Router /courses/{id}/enrollments [post]
func (h *CatalogHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())
	id := chi.URLParam(r, "id")

	var req models.EnrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	course, outcome, err := h.service.Enroll(r.Context(), sessionID, id, req)
	if err != nil {
		h.handleServiceError(w, err, "failed to enroll")
		return
	}

	status := http.StatusOK
	switch outcome {
	case models.EnrollOutcomeEnrolled:
		status = http.StatusCreated
	case models.EnrollOutcomeCourseFull:
		status = http.StatusConflict
	}

	h.respondJSON(w, status, models.EnrollResponse{
		Outcome: outcome,
		Course:  models.NewCourseResponse(*course),
	})
}

// GetStats handles GET /api/v1/stats
// @Summary Get catalog stats
// @Description Get the number of courses, enrollments and distinct instructors of the session catalog
// @Tags stats
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Catalog session id"
// @Success 200 {object} models.Stats
// @Failure 500 {object} map[string]string
// @Router /stats [get]
func (h *CatalogHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())

	stats, err := h.service.GetStats(r.Context(), sessionID)
	if err != nil {
		h.handleServiceError(w, err, "failed to get stats")
		return
	}

	h.respondJSON(w, http.StatusOK, stats)
}

// handleServiceError maps service errors to HTTP responses
func (h *CatalogHandler) handleServiceError(w http.ResponseWriter, err error, message string) {
	var validationErr *validation.Error
	switch {
	case errors.As(err, &validationErr):
		h.respondValidationError(w, validationErr)
	case errors.Is(err, services.ErrCourseNotFound):
		h.respondError(w, http.StatusNotFound, "course not found")
	default:
		h.logger.Error(message, zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, message)
	}
}
