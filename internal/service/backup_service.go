package service

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"aicademy/internal/database"
)

// BackupData represents the complete database backup structure
type BackupData struct {
	Version    string          `json:"version"`
	ExportedAt time.Time       `json:"exported_at"`
	Parents    []ParentBackup  `json:"parents"`
	Kids       []KidBackup     `json:"kids"`
	Sessions   []SessionBackup `json:"sessions"`
}

// ParentBackup represents a parent account record for backup
type ParentBackup struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"password_hash"`
	Name          string    `json:"name"`
	OAuthProvider string    `json:"oauth_provider,omitempty"`
	OAuthSubject  string    `json:"oauth_subject,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// KidBackup represents a kid profile record for backup
type KidBackup struct {
	ID        int64     `json:"id"`
	ParentID  int64     `json:"parent_id"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Grade     string    `json:"grade"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionBackup represents a learning session record for backup
type SessionBackup struct {
	ID                  int64     `json:"id"`
	KidID               int64     `json:"kid_id"`
	SessionStart        time.Time `json:"session_start"`
	SessionEnd          time.Time `json:"session_end"`
	ActivitiesCompleted string    `json:"activities_completed"`
	TotalScore          int       `json:"total_score"`
	TimeSpentMinutes    int       `json:"time_spent_minutes"`
	CertificatesEarned  string    `json:"certificates_earned"`
}

// BackupService exports and imports the full database as JSON
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export writes all parents, kids and learning sessions to a JSON file
func (s *BackupService) Export(outputPath string) error {
	backup := BackupData{
		Version:    "1",
		ExportedAt: time.Now(),
	}

	if err := s.exportParents(&backup); err != nil {
		return fmt.Errorf("failed to export parents: %w", err)
	}
	if err := s.exportKids(&backup); err != nil {
		return fmt.Errorf("failed to export kids: %w", err)
	}
	if err := s.exportSessions(&backup); err != nil {
		return fmt.Errorf("failed to export sessions: %w", err)
	}

	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	if err := os.WriteFile(outputPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}

	return nil
}

// Import reads a backup file and inserts its records. With clear set, all
// existing rows are deleted first (children before parents, for the FKs).
func (s *BackupService) Import(inputPath string, clear bool) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read backup file: %w", err)
	}

	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	if clear {
		for _, table := range []string{"learning_sessions", "auth_sessions", "password_reset_tokens", "kids", "parents"} {
			if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
				return fmt.Errorf("failed to clear table %s: %w", table, err)
			}
		}
	}

	for _, p := range backup.Parents {
		_, err := s.db.Exec(
			"INSERT INTO parents (id, email, password_hash, name, oauth_provider, oauth_subject, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
			p.ID, p.Email, p.PasswordHash, p.Name, p.OAuthProvider, p.OAuthSubject, p.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to import parent %d: %w", p.ID, err)
		}
	}

	for _, k := range backup.Kids {
		_, err := s.db.Exec(
			"INSERT INTO kids (id, parent_id, name, age, grade, avatar, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
			k.ID, k.ParentID, k.Name, k.Age, k.Grade, k.Avatar, k.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to import kid %d: %w", k.ID, err)
		}
	}

	for _, sess := range backup.Sessions {
		_, err := s.db.Exec(
			"INSERT INTO learning_sessions (id, kid_id, session_start, session_end, activities_completed, total_score, time_spent_minutes, certificates_earned) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			sess.ID, sess.KidID, sess.SessionStart, sess.SessionEnd, sess.ActivitiesCompleted, sess.TotalScore, sess.TimeSpentMinutes, sess.CertificatesEarned,
		)
		if err != nil {
			return fmt.Errorf("failed to import session %d: %w", sess.ID, err)
		}
	}

	return nil
}

func (s *BackupService) exportParents(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, email, password_hash, name, COALESCE(oauth_provider, ''), COALESCE(oauth_subject, ''), created_at FROM parents ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p ParentBackup
		if err := rows.Scan(&p.ID, &p.Email, &p.PasswordHash, &p.Name, &p.OAuthProvider, &p.OAuthSubject, &p.CreatedAt); err != nil {
			return err
		}
		backup.Parents = append(backup.Parents, p)
	}

	return rows.Err()
}

func (s *BackupService) exportKids(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, parent_id, name, age, grade, avatar, created_at FROM kids ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var k KidBackup
		if err := rows.Scan(&k.ID, &k.ParentID, &k.Name, &k.Age, &k.Grade, &k.Avatar, &k.CreatedAt); err != nil {
			return err
		}
		backup.Kids = append(backup.Kids, k)
	}

	return rows.Err()
}

func (s *BackupService) exportSessions(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, kid_id, session_start, session_end, activities_completed, total_score, time_spent_minutes, certificates_earned FROM learning_sessions ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var sess SessionBackup
		if err := rows.Scan(&sess.ID, &sess.KidID, &sess.SessionStart, &sess.SessionEnd, &sess.ActivitiesCompleted, &sess.TotalScore, &sess.TimeSpentMinutes, &sess.CertificatesEarned); err != nil {
			return err
		}
		backup.Sessions = append(backup.Sessions, sess)
	}

	return rows.Err()
}
