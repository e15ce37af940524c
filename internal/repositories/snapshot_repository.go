package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/peertutor/backend/internal/models"
	"go.uber.org/zap"
)

type snapshotRepository struct {
	db     *sql.DB
	logger *zap.Logger
	now    func() time.Time
}

// NewSnapshotRepository creates a new catalog snapshot repository
func NewSnapshotRepository(db *sql.DB, logger *zap.Logger) *snapshotRepository {
	return &snapshotRepository{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

// Load retrieves the stored course list of a session.
//
// A session without a stored snapshot yields an empty list.
func (r *snapshotRepository) Load(ctx context.Context, sessionID string) ([]models.Course, error) {
	query := `
		SELECT payload
		FROM catalog_snapshots
		WHERE session_id = ?
	`

	var payload []byte
	err := r.db.QueryRowContext(ctx, query, sessionID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return []models.Course{}, nil
	}
	if err != nil {
		r.logger.Error("failed to query catalog snapshot", zap.Error(err), zap.String("session_id", sessionID))
		return nil, fmt.Errorf("failed to query catalog snapshot: %w", err)
	}

	courses, err := models.DecodeCourses(payload)
	if err != nil {
		r.logger.Error("failed to decode catalog snapshot", zap.Error(err), zap.String("session_id", sessionID))
		return nil, fmt.Errorf("failed to decode catalog snapshot: %w", err)
	}
	if courses == nil {
		courses = []models.Course{}
	}

	return courses, nil
}

// Save stores the full course list of a session, replacing the previous snapshot
func (r *snapshotRepository) Save(ctx context.Context, sessionID string, courses []models.Course) error {
	if courses == nil {
		courses = []models.Course{}
	}
	payload, err := json.Marshal(courses)
	if err != nil {
		return fmt.Errorf("failed to encode catalog snapshot: %w", err)
	}

	query := `
		INSERT INTO catalog_snapshots (session_id, payload, updated_at)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE payload = VALUES(payload), updated_at = VALUES(updated_at)
	`

	if _, err := r.db.ExecContext(ctx, query, sessionID, payload, r.now().UTC()); err != nil {
		r.logger.Error("failed to save catalog snapshot", zap.Error(err), zap.String("session_id", sessionID))
		return fmt.Errorf("failed to save catalog snapshot: %w", err)
	}

	return nil
}

// DeleteExpired deletes the snapshots not updated since expiryTime and returns how many were removed.
//
// Snapshots of the sessions listed in keep are left in place even when they are older.
func (r *snapshotRepository) DeleteExpired(ctx context.Context, expiryTime time.Time, keep []string) (int, error) {
	query := `DELETE FROM catalog_snapshots WHERE updated_at <= ?`
	args := []any{expiryTime.UTC()}
	if len(keep) > 0 {
		query += ` AND session_id NOT IN (?` + strings.Repeat(`, ?`, len(keep)-1) + `)`
		for _, sessionID := range keep {
			args = append(args, sessionID)
		}
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired snapshots: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(rowsAffected), nil
}
