package integration

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/go-sql-driver/mysql"
	"github.com/peertutor/backend/internal/catalog"
	"github.com/peertutor/backend/internal/config"
	"github.com/peertutor/backend/internal/handlers"
	"github.com/peertutor/backend/internal/middleware"
	"github.com/peertutor/backend/internal/models"
	"github.com/peertutor/backend/internal/repositories"
	"github.com/peertutor/backend/internal/services"
	"github.com/peertutor/backend/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	testDB     *sql.DB
	testLogger *zap.Logger
)

// setupTestRouter creates a test router with all handlers, backed by a fresh session registry
func setupTestRouter(db *sql.DB, logger *zap.Logger) chi.Router {
	repo := repositories.NewSnapshotRepository(db, logger)
	registry := catalog.NewRegistry(repo, logger)
	svc := services.NewCatalogService(registry, repo, validation.New(), logger)
	catalogHandler := handlers.NewCatalogHandler(svc, logger)
	cleaningHandler := handlers.NewSessionCleaningHandler(svc, logger, time.Hour)

	r := chi.NewRouter()
	r.Use(middleware.SessionMiddleware)
	catalogHandler.RegisterRoutes(r)
	cleaningHandler.RegisterRoutes(r)

	return r
}

// TestMain sets up and tears down the test environment
func TestMain(m *testing.M) {
	var err error
	testLogger, err = zap.NewDevelopment()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	cfg, err := config.LoadTestConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load test config: %v", err))
	}
	if !cfg.IsDatabaseConfigured() {
		fmt.Println("TEST_DB_* is not set, skipping integration tests")
		os.Exit(0)
	}

	testDB, err = sql.Open("mysql", cfg.DSN())
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to test database: %v", err))
	}

	if err = testDB.Ping(); err != nil {
		panic(fmt.Sprintf("Failed to ping test database: %v", err))
	}

	setupTestSchemaForMain(testDB)

	code := m.Run()

	if testDB != nil {
		testDB.Close()
	}
	os.Exit(code)
}

// setupTestSchemaForMain creates the test database schema (for TestMain)
func setupTestSchemaForMain(db *sql.DB) {
	query := `
		CREATE TABLE IF NOT EXISTS catalog_snapshots (
			session_id VARCHAR(64) NOT NULL,
			payload JSON NOT NULL,
			updated_at DATETIME NOT NULL,
			PRIMARY KEY (session_id),
			INDEX idx_catalog_snapshots_updated_at (updated_at)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
	`

	db.Exec(query)
}

// cleanupTestData removes all test data
func cleanupTestData(t *testing.T, db *sql.DB) {
	t.Helper()
	_, err := db.Exec("DELETE FROM catalog_snapshots")
	require.NoError(t, err, "Failed to cleanup test data")
}

func doRequest(t *testing.T, router http.Handler, method, path, sessionID, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.SessionHeader, sessionID)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIntegration_EnrollmentFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	defer cleanupTestData(t, testDB)

	router := setupTestRouter(testDB, testLogger)
	session := "integration-enroll"

	w := doRequest(t, router, http.MethodPost, "/courses", session,
		`{"title":"Intro to Go","description":"Learn Go","instructor":"Rob","duration":"4 weeks","category":"Programming","level":"beginner","maxStudents":2}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.CourseResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	require.NotEmpty(t, created.ID)

	enrollPath := "/courses/" + created.ID + "/enrollments"
	steps := []struct {
		student         string
		expectedStatus  int
		expectedOutcome models.EnrollOutcome
	}{
		{student: "Alice", expectedStatus: http.StatusCreated, expectedOutcome: models.EnrollOutcomeEnrolled},
		{student: "Alice", expectedStatus: http.StatusOK, expectedOutcome: models.EnrollOutcomeAlreadyEnrolled},
		{student: "Bob", expectedStatus: http.StatusCreated, expectedOutcome: models.EnrollOutcomeEnrolled},
		{student: "Carol", expectedStatus: http.StatusConflict, expectedOutcome: models.EnrollOutcomeCourseFull},
	}
	for _, step := range steps {
		body := fmt.Sprintf(`{"studentName":%q,"email":"%s@example.com"}`, step.student, strings.ToLower(step.student))
		w := doRequest(t, router, http.MethodPost, enrollPath, session, body)
		require.Equal(t, step.expectedStatus, w.Code, step.student)

		var resp models.EnrollResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, step.expectedOutcome, resp.Outcome)
	}

	// A new registry simulates a restart: the session catalog is loaded from storage
	restarted := setupTestRouter(testDB, testLogger)
	w = doRequest(t, restarted, http.MethodGet, "/courses/"+created.ID, session, "")
	require.Equal(t, http.StatusOK, w.Code)
	var reloaded models.CourseResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&reloaded))
	assert.Equal(t, []string{"Alice", "Bob"}, reloaded.EnrolledStudents)
	assert.True(t, reloaded.IsFull)
	assert.Equal(t, created.CreatedAt.UTC(), reloaded.CreatedAt.UTC())

	w = doRequest(t, restarted, http.MethodGet, "/stats", session, "")
	require.Equal(t, http.StatusOK, w.Code)
	var stats models.Stats
	require.NoError(t, json.NewDecoder(w.Body).Decode(&stats))
	assert.Equal(t, models.Stats{TotalCourses: 1, TotalEnrollments: 2, UniqueInstructors: 1}, stats)
}

func TestIntegration_SessionsAreIsolated(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	defer cleanupTestData(t, testDB)

	router := setupTestRouter(testDB, testLogger)

	w := doRequest(t, router, http.MethodPost, "/courses", "integration-a",
		`{"title":"React","description":"UI","instructor":"Dan","duration":"2 weeks","category":"Web","level":"intermediate"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	tests := []struct {
		name          string
		sessionID     string
		query         string
		expectedCount int
	}{
		{name: "owner sees course", sessionID: "integration-a", expectedCount: 1},
		{name: "owner filters by level", sessionID: "integration-a", query: "?level=advanced", expectedCount: 0},
		{name: "owner searches instructor", sessionID: "integration-a", query: "?search=DAN", expectedCount: 1},
		{name: "other session sees nothing", sessionID: "integration-b", expectedCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, router, http.MethodGet, "/courses"+tt.query, tt.sessionID, "")
			require.Equal(t, http.StatusOK, w.Code)

			var items []models.CourseListItem
			require.NoError(t, json.NewDecoder(w.Body).Decode(&items))
			assert.Len(t, items, tt.expectedCount)
		})
	}
}

func TestIntegration_CleanSessions(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	defer cleanupTestData(t, testDB)

	_, err := testDB.Exec(
		"INSERT INTO catalog_snapshots (session_id, payload, updated_at) VALUES (?, ?, ?), (?, ?, ?)",
		"stale", "[]", time.Now().UTC().Add(-2*time.Hour),
		"fresh", "[]", time.Now().UTC(),
	)
	require.NoError(t, err)

	router := setupTestRouter(testDB, testLogger)
	w := doRequest(t, router, http.MethodGet, "/sessions/clean", "maintenance", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		DeletedCount int `json:"deletedCount"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, 1, body.DeletedCount)

	var remaining int
	require.NoError(t, testDB.QueryRow("SELECT COUNT(*) FROM catalog_snapshots").Scan(&remaining))
	assert.Equal(t, 1, remaining)
}
