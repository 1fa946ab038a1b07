package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"aicademy/internal/database"
	"aicademy/internal/models"
)

// SessionRepository handles database operations for learning sessions.
// Sessions are append-only: there is no update or delete path.
type SessionRepository struct {
	db *database.DB
}

// NewSessionRepository creates a new learning session repository
func NewSessionRepository(db *database.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// CreateSession appends one completed learning session for a kid
func (r *SessionRepository) CreateSession(kidID int64, start, end time.Time, activities []string, totalScore, timeSpentMinutes int, certificates []string) (*models.LearningSession, error) {
	activitiesJSON, err := marshalStringList(activities)
	if err != nil {
		return nil, fmt.Errorf("failed to encode activities: %w", err)
	}
	certificatesJSON, err := marshalStringList(certificates)
	if err != nil {
		return nil, fmt.Errorf("failed to encode certificates: %w", err)
	}

	query := `
		INSERT INTO learning_sessions (kid_id, session_start, session_end, activities_completed, total_score, time_spent_minutes, certificates_earned)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, kidID, start, end, activitiesJSON, totalScore, timeSpentMinutes, certificatesJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to create learning session: %w", err)
	}

	session := &models.LearningSession{
		ID:                  id,
		KidID:               kidID,
		SessionStart:        start,
		SessionEnd:          end,
		ActivitiesCompleted: activities,
		TotalScore:          totalScore,
		TimeSpentMinutes:    timeSpentMinutes,
		CertificatesEarned:  certificates,
	}

	return session, nil
}

// GetKidSessions retrieves all sessions for a kid, newest first
func (r *SessionRepository) GetKidSessions(kidID int64) ([]models.LearningSession, error) {
	query := `
		SELECT id, kid_id, session_start, session_end, activities_completed, total_score, time_spent_minutes, certificates_earned
		FROM learning_sessions
		WHERE kid_id = ?
		ORDER BY session_start DESC
	`
	rows, err := r.db.Query(query, kidID)
	if err != nil {
		return nil, fmt.Errorf("failed to query learning sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.LearningSession
	for rows.Next() {
		var session models.LearningSession
		var activitiesJSON, certificatesJSON string

		if err := rows.Scan(
			&session.ID,
			&session.KidID,
			&session.SessionStart,
			&session.SessionEnd,
			&activitiesJSON,
			&session.TotalScore,
			&session.TimeSpentMinutes,
			&certificatesJSON,
		); err != nil {
			return nil, fmt.Errorf("failed to scan learning session: %w", err)
		}

		if session.ActivitiesCompleted, err = unmarshalStringList(activitiesJSON); err != nil {
			return nil, fmt.Errorf("failed to decode activities: %w", err)
		}
		if session.CertificatesEarned, err = unmarshalStringList(certificatesJSON); err != nil {
			return nil, fmt.Errorf("failed to decode certificates: %w", err)
		}

		sessions = append(sessions, session)
	}

	return sessions, rows.Err()
}

// CountKidSessions returns the number of sessions recorded for a kid
func (r *SessionRepository) CountKidSessions(kidID int64) (int, error) {
	query := "SELECT COUNT(*) FROM learning_sessions WHERE kid_id = ?"
	var count int
	err := r.db.QueryRow(query, kidID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count learning sessions: %w", err)
	}
	return count, nil
}

// marshalStringList serializes a string list as JSON, normalizing nil to []
func marshalStringList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// unmarshalStringList deserializes a JSON string list
func unmarshalStringList(data string) ([]string, error) {
	if data == "" {
		return []string{}, nil
	}
	var items []string
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []string{}
	}
	return items, nil
}
