package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/peertutor/backend/internal/attachments"
	"github.com/peertutor/backend/internal/catalog"
	"github.com/peertutor/backend/internal/models"
	"github.com/peertutor/backend/internal/validation"
	"go.uber.org/zap"
)

// saveTimeout bounds a snapshot save, which outlives the request that triggered it
const saveTimeout = 5 * time.Second

var (
	// ErrCourseNotFound is returned when no course of the session has the requested id
	ErrCourseNotFound = errors.New("course not found")
	// ErrDocumentNotFound is returned when the course has no attached document
	ErrDocumentNotFound = errors.New("course document not found")
)

// CatalogRegistry is the interface that wraps methods for accessing session catalogs
type CatalogRegistry interface {
	// Method Get retrieve the catalog store of a session, loading it from storage on first access.
	//
	// If the stored catalog can not be loaded, the error will be returned together with "nil" value.
	Get(ctx context.Context, sessionID string) (*catalog.Store, error)
	// Method EvictIdle drops in-memory sessions not used since "before" and returns their ids.
	EvictIdle(before time.Time) []string
	// Method SessionIDs retrieve the ids of the sessions held in memory.
	SessionIDs() []string
}

// SnapshotRepository is the interface that wraps methods for catalog_snapshots table data access
type SnapshotRepository interface {
	// Method Save stores the full course list of a session, replacing the previous snapshot.
	Save(ctx context.Context, sessionID string, courses []models.Course) error
	// Method DeleteExpired deletes snapshots not updated since "expiryTime" and returns their number.
	//
	// Snapshots of the sessions listed in "keep" are never deleted.
	DeleteExpired(ctx context.Context, expiryTime time.Time, keep []string) (int, error)
}

// RequestValidator is the interface that wraps methods for validating user input.
//
// Both methods normalize the request in place before checking it.
type RequestValidator interface {
	CourseRequest(req *models.CreateCourseRequest) error
	EnrollRequest(req *models.EnrollRequest) error
}

type catalogService struct {
	registry  CatalogRegistry
	repo      SnapshotRepository
	validator RequestValidator
	logger    *zap.Logger
	now       func() time.Time
	saveLocks sync.Map
}

// NewCatalogService creates a new catalog service
func NewCatalogService(registry CatalogRegistry, repo SnapshotRepository, validator RequestValidator, logger *zap.Logger) *catalogService {
	return &catalogService{
		registry:  registry,
		repo:      repo,
		validator: validator,
		logger:    logger,
		now:       time.Now,
	}
}

// CreateCourse validates the request, adds the course to the session catalog and stores the catalog
func (s *catalogService) CreateCourse(ctx context.Context, sessionID string, req models.CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.CourseRequest(&req); err != nil {
		return nil, err
	}
	level, err := models.ParseLevel(req.Level)
	if err != nil {
		return nil, &validation.Error{Fields: map[string]string{"level": err.Error()}}
	}

	store, err := s.registry.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	course := store.Create(models.NewCourse{
		Title:          req.Title,
		Description:    req.Description,
		Instructor:     req.Instructor,
		Duration:       req.Duration,
		Category:       req.Category,
		Level:          level,
		MaxStudents:    req.MaxStudents,
		CoverImage:     req.CoverImage,
		CourseDocument: req.CourseDocument,
	})
	s.logger.Info("course created",
		zap.String("session_id", sessionID),
		zap.String("course_id", course.ID),
		zap.String("level", string(course.Level)),
	)

	s.persist(ctx, sessionID, store)

	return &course, nil
}

// Enroll validates the request and adds the student to the course roster.
//
// Duplicate names and full courses are reported through the outcome, not as errors.
// An unknown course id yields ErrCourseNotFound together with the CourseNotFound outcome.
// The catalog is stored only when the roster changed.
func (s *catalogService) Enroll(ctx context.Context, sessionID, courseID string, req models.EnrollRequest) (*models.Course, models.EnrollOutcome, error) {
	if err := s.validator.EnrollRequest(&req); err != nil {
		return nil, "", err
	}

	store, err := s.registry.Get(ctx, sessionID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open catalog: %w", err)
	}

	course, outcome := store.Enroll(courseID, req.StudentName)
	if outcome == models.EnrollOutcomeCourseNotFound {
		return nil, outcome, ErrCourseNotFound
	}

	s.logger.Info("enrollment attempted",
		zap.String("session_id", sessionID),
		zap.String("course_id", courseID),
		zap.String("outcome", string(outcome)),
		zap.Int("enrolled", len(course.EnrolledStudents)),
	)

	if outcome.Changed() {
		s.persist(ctx, sessionID, store)
	}

	return &course, outcome, nil
}

// ListCourses returns the session courses matching the search term and level, most recent first.
//
// "level" may be empty (any level), a canonical level or a legacy alias.
func (s *catalogService) ListCourses(ctx context.Context, sessionID, search, levelParam string) ([]models.Course, error) {
	level, err := models.ParseLevel(levelParam)
	if err != nil {
		return nil, &validation.Error{Fields: map[string]string{"level": err.Error()}}
	}

	store, err := s.registry.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	return catalog.Filter(store.Courses(), search, level), nil
}

// GetCourse retrieves a course of the session by its id
func (s *catalogService) GetCourse(ctx context.Context, sessionID, courseID string) (*models.Course, error) {
	store, err := s.registry.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	course, ok := store.Get(courseID)
	if !ok {
		return nil, ErrCourseNotFound
	}
	return &course, nil
}

// GetCourseDocument retrieves the attached document of a course as raw bytes.
//
// Returns the document file name, its content type and its content.
func (s *catalogService) GetCourseDocument(ctx context.Context, sessionID, courseID string) (string, string, []byte, error) {
	course, err := s.GetCourse(ctx, sessionID, courseID)
	if err != nil {
		return "", "", nil, err
	}
	if course.CourseDocument == nil {
		return "", "", nil, ErrDocumentNotFound
	}

	contentType, data, err := attachments.Decode(course.CourseDocument)
	if err != nil {
		s.logger.Error("failed to decode course document", zap.Error(err), zap.String("course_id", courseID))
		return "", "", nil, fmt.Errorf("failed to decode course document: %w", err)
	}

	return course.CourseDocument.Name, contentType, data, nil
}

// GetStats computes the counters of the session catalog
func (s *catalogService) GetStats(ctx context.Context, sessionID string) (*models.Stats, error) {
	store, err := s.registry.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	stats := store.Stats()
	return &stats, nil
}

// CleanSessions drops sessions idle for longer than ttl, both in memory and in storage.
//
// Snapshots of sessions still held in memory are kept whatever their age, since reads do not
// refresh them. Returns the number of stored snapshots deleted.
func (s *catalogService) CleanSessions(ctx context.Context, ttl time.Duration) (int, error) {
	expiryTime := s.now().Add(-ttl)

	evicted := s.evictIdle(expiryTime)
	deleted, err := s.repo.DeleteExpired(ctx, expiryTime, s.registry.SessionIDs())
	if err != nil {
		s.logger.Error("failed to delete expired snapshots", zap.Error(err))
		return 0, fmt.Errorf("failed to clean sessions: %w", err)
	}

	s.logger.Info("sessions cleaned", zap.Int("evicted", evicted), zap.Int("deleted", deleted))
	return deleted, nil
}

// RunEviction drops in-memory sessions idle for longer than ttl every interval, until ctx is done.
//
// Stored snapshots are left untouched, an evicted session is reloaded on its next request.
func (s *catalogService) RunEviction(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if evicted := s.evictIdle(s.now().Add(-ttl)); evicted > 0 {
				s.logger.Info("idle sessions evicted", zap.Int("evicted", evicted))
			}
		}
	}
}

// evictIdle drops idle sessions from the registry together with their save locks
func (s *catalogService) evictIdle(before time.Time) int {
	evicted := s.registry.EvictIdle(before)
	for _, sessionID := range evicted {
		s.saveLocks.Delete(sessionID)
	}
	return len(evicted)
}

// persist stores the current catalog of a session.
//
// The in-memory catalog stays authoritative for the session: a failed save is logged, not returned.
// The save is detached from the request cancellation so that a client leaving after the mutation
// does not drop the snapshot.
// Saves of one session are serialized and each one snapshots the catalog after taking the lock,
// so the last write always holds the latest catalog.
func (s *catalogService) persist(ctx context.Context, sessionID string, store *catalog.Store) {
	lock, _ := s.saveLocks.LoadOrStore(sessionID, &sync.Mutex{})
	mu := lock.(*sync.Mutex)
	mu.Lock()
	defer mu.Unlock()

	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
	defer cancel()

	if err := s.repo.Save(saveCtx, sessionID, store.Courses()); err != nil {
		s.logger.Error("failed to persist catalog", zap.Error(err), zap.String("session_id", sessionID))
	}
}
