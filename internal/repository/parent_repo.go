package repository

import (
	"database/sql"
	"fmt"
	"time"

	"aicademy/internal/database"
	"aicademy/internal/models"
)

// ParentRepository handles database operations for parent accounts,
// their auth sessions and password reset tokens
type ParentRepository struct {
	db *database.DB
}

// NewParentRepository creates a new parent repository
func NewParentRepository(db *database.DB) *ParentRepository {
	return &ParentRepository{db: db}
}

// CreateParent inserts a new parent account into the database
func (r *ParentRepository) CreateParent(email, passwordHash, name string) (*models.Parent, error) {
	query := `
		INSERT INTO parents (email, password_hash, name)
		VALUES (?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, email, passwordHash, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create parent: %w", err)
	}

	parent := &models.Parent{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		CreatedAt:    time.Now(),
	}

	return parent, nil
}

// GetParentByEmail retrieves a parent by email address
func (r *ParentRepository) GetParentByEmail(email string) (*models.Parent, error) {
	query := `
		SELECT id, email, password_hash, name, COALESCE(oauth_provider, ''), COALESCE(oauth_subject, ''), created_at
		FROM parents
		WHERE email = ?
	`
	parent := &models.Parent{}
	err := r.db.QueryRow(query, email).Scan(
		&parent.ID,
		&parent.Email,
		&parent.PasswordHash,
		&parent.Name,
		&parent.OAuthProvider,
		&parent.OAuthSubject,
		&parent.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get parent: %w", err)
	}

	return parent, nil
}

// GetParentByID retrieves a parent by ID
func (r *ParentRepository) GetParentByID(id int64) (*models.Parent, error) {
	query := `
		SELECT id, email, password_hash, name, COALESCE(oauth_provider, ''), COALESCE(oauth_subject, ''), created_at
		FROM parents
		WHERE id = ?
	`
	parent := &models.Parent{}
	err := r.db.QueryRow(query, id).Scan(
		&parent.ID,
		&parent.Email,
		&parent.PasswordHash,
		&parent.Name,
		&parent.OAuthProvider,
		&parent.OAuthSubject,
		&parent.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get parent: %w", err)
	}

	return parent, nil
}

// GetAllParents retrieves all parent accounts ordered by creation time
func (r *ParentRepository) GetAllParents() ([]models.Parent, error) {
	query := `
		SELECT id, email, password_hash, name, COALESCE(oauth_provider, ''), COALESCE(oauth_subject, ''), created_at
		FROM parents
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query parents: %w", err)
	}
	defer rows.Close()

	var parents []models.Parent
	for rows.Next() {
		var parent models.Parent
		if err := rows.Scan(
			&parent.ID,
			&parent.Email,
			&parent.PasswordHash,
			&parent.Name,
			&parent.OAuthProvider,
			&parent.OAuthSubject,
			&parent.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan parent: %w", err)
		}
		parents = append(parents, parent)
	}

	return parents, rows.Err()
}

// GetParentByOAuth retrieves a parent by OAuth provider and subject
func (r *ParentRepository) GetParentByOAuth(provider, subject string) (*models.Parent, error) {
	query := `
		SELECT id, email, password_hash, name, COALESCE(oauth_provider, ''), COALESCE(oauth_subject, ''), created_at
		FROM parents
		WHERE oauth_provider = ? AND oauth_subject = ?
	`
	parent := &models.Parent{}
	err := r.db.QueryRow(query, provider, subject).Scan(
		&parent.ID,
		&parent.Email,
		&parent.PasswordHash,
		&parent.Name,
		&parent.OAuthProvider,
		&parent.OAuthSubject,
		&parent.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get parent by oauth: %w", err)
	}

	return parent, nil
}

// LinkOAuthProvider links an existing parent account to an OAuth provider
func (r *ParentRepository) LinkOAuthProvider(parentID int64, provider, subject string) error {
	query := `
		UPDATE parents
		SET oauth_provider = ?, oauth_subject = ?
		WHERE id = ?
		AND (oauth_provider IS NULL OR oauth_provider = '')
	`
	result, err := r.db.Exec(query, provider, subject, parentID)
	if err != nil {
		return fmt.Errorf("failed to link oauth provider: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read link result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("oauth provider already linked")
	}

	return nil
}

// UpdatePassword replaces a parent's password hash
func (r *ParentRepository) UpdatePassword(parentID int64, passwordHash string) error {
	query := "UPDATE parents SET password_hash = ? WHERE id = ?"
	_, err := r.db.Exec(query, passwordHash, parentID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// CreateAuthSession creates a new session for a parent
func (r *ParentRepository) CreateAuthSession(sessionID string, parentID int64, expiresAt time.Time) (*models.AuthSession, error) {
	query := `
		INSERT INTO auth_sessions (id, parent_id, expires_at)
		VALUES (?, ?, ?)
	`
	_, err := r.db.Exec(query, sessionID, parentID, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	session := &models.AuthSession{
		ID:        sessionID,
		ParentID:  parentID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}

	return session, nil
}

// GetAuthSession retrieves a session by ID
func (r *ParentRepository) GetAuthSession(sessionID string) (*models.AuthSession, error) {
	query := `
		SELECT id, parent_id, expires_at, created_at
		FROM auth_sessions
		WHERE id = ?
	`
	session := &models.AuthSession{}
	err := r.db.QueryRow(query, sessionID).Scan(
		&session.ID,
		&session.ParentID,
		&session.ExpiresAt,
		&session.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

// DeleteAuthSession removes a session from the database
func (r *ParentRepository) DeleteAuthSession(sessionID string) error {
	query := "DELETE FROM auth_sessions WHERE id = ?"
	_, err := r.db.Exec(query, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpiredAuthSessions removes all expired sessions
func (r *ParentRepository) DeleteExpiredAuthSessions() error {
	query := "DELETE FROM auth_sessions WHERE expires_at < ?"
	_, err := r.db.Exec(query, time.Now())
	if err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return nil
}

// CreatePasswordResetToken stores a new reset token
func (r *ParentRepository) CreatePasswordResetToken(token string, parentID int64, expiresAt time.Time) error {
	query := `
		INSERT INTO password_reset_tokens (token, parent_id, expires_at)
		VALUES (?, ?, ?)
	`
	_, err := r.db.Exec(query, token, parentID, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to create reset token: %w", err)
	}
	return nil
}

// GetPasswordResetToken retrieves a reset token
func (r *ParentRepository) GetPasswordResetToken(token string) (*models.PasswordResetToken, error) {
	query := `
		SELECT token, parent_id, expires_at, used, created_at
		FROM password_reset_tokens
		WHERE token = ?
	`
	resetToken := &models.PasswordResetToken{}
	err := r.db.QueryRow(query, token).Scan(
		&resetToken.Token,
		&resetToken.ParentID,
		&resetToken.ExpiresAt,
		&resetToken.Used,
		&resetToken.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reset token: %w", err)
	}

	return resetToken, nil
}

// MarkPasswordResetTokenAsUsed marks a token as consumed
func (r *ParentRepository) MarkPasswordResetTokenAsUsed(token string) error {
	query := "UPDATE password_reset_tokens SET used = ? WHERE token = ?"
	_, err := r.db.Exec(query, true, token)
	if err != nil {
		return fmt.Errorf("failed to mark token as used: %w", err)
	}
	return nil
}

// DeleteParentPasswordResetTokens removes all reset tokens for a parent
func (r *ParentRepository) DeleteParentPasswordResetTokens(parentID int64) error {
	query := "DELETE FROM password_reset_tokens WHERE parent_id = ?"
	_, err := r.db.Exec(query, parentID)
	if err != nil {
		return fmt.Errorf("failed to delete reset tokens: %w", err)
	}
	return nil
}

// DeleteExpiredPasswordResetTokens removes expired reset tokens
func (r *ParentRepository) DeleteExpiredPasswordResetTokens() error {
	query := "DELETE FROM password_reset_tokens WHERE expires_at < ?"
	_, err := r.db.Exec(query, time.Now())
	if err != nil {
		return fmt.Errorf("failed to delete expired reset tokens: %w", err)
	}
	return nil
}
