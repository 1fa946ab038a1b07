package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"aicademy/internal/models"
	"aicademy/internal/repository"
	"aicademy/internal/security"
	"aicademy/internal/validation"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
)

// AuthService handles parent account authentication
type AuthService struct {
	parentRepo      *repository.ParentRepository
	sessionDuration time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(parentRepo *repository.ParentRepository, sessionDuration time.Duration) *AuthService {
	return &AuthService{
		parentRepo:      parentRepo,
		sessionDuration: sessionDuration,
	}
}

// Register creates a new parent account. A duplicate email fails with
// ErrEmailTaken and leaves the account table unchanged.
func (s *AuthService) Register(email, password, name string) (*models.Parent, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}

	existing, err := s.parentRepo.GetParentByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing parent: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	parent, err := s.parentRepo.CreateParent(email, passwordHash, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create parent: %w", err)
	}

	return parent, nil
}

// Login authenticates a parent and creates a session. Unknown email and
// wrong password both return ErrInvalidCredentials so the response does not
// reveal which accounts exist.
func (s *AuthService) Login(email, password string) (*models.AuthSession, *models.Parent, error) {
	parent, err := s.parentRepo.GetParentByEmail(email)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get parent: %w", err)
	}
	if parent == nil {
		return nil, nil, ErrInvalidCredentials
	}

	if !security.CheckPassword(password, parent.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}

	sessionID := security.GenerateSessionID()
	expiresAt := time.Now().Add(s.sessionDuration)

	session, err := s.parentRepo.CreateAuthSession(sessionID, parent.ID, expiresAt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, parent, nil
}

// ValidateSession checks if a session is valid and returns the associated parent
func (s *AuthService) ValidateSession(sessionID string) (*models.Parent, error) {
	session, err := s.parentRepo.GetAuthSession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	if session.IsExpired() {
		_ = s.parentRepo.DeleteAuthSession(sessionID)
		return nil, ErrSessionExpired
	}

	parent, err := s.parentRepo.GetParentByID(session.ParentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get parent: %w", err)
	}
	if parent == nil {
		return nil, ErrSessionNotFound
	}

	return parent, nil
}

// Logout invalidates a session
func (s *AuthService) Logout(sessionID string) error {
	if err := s.parentRepo.DeleteAuthSession(sessionID); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}
	return nil
}

// CleanupExpiredSessions removes expired sessions from the database
func (s *AuthService) CleanupExpiredSessions() error {
	if err := s.parentRepo.DeleteExpiredAuthSessions(); err != nil {
		return fmt.Errorf("failed to cleanup sessions: %w", err)
	}
	return nil
}

// OAuthLogin authenticates or creates a parent using an OAuth provider
func (s *AuthService) OAuthLogin(provider, subject, email, name string) (*models.AuthSession, *models.Parent, error) {
	if provider == "" || subject == "" {
		return nil, nil, errors.New("missing oauth provider information")
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, nil, err
	}

	parent, err := s.parentRepo.GetParentByOAuth(provider, subject)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to lookup oauth parent: %w", err)
	}

	if parent == nil {
		existing, err := s.parentRepo.GetParentByEmail(email)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to check existing parent: %w", err)
		}
		if existing != nil {
			if existing.OAuthProvider != "" && existing.OAuthProvider != provider {
				return nil, nil, ErrEmailTaken
			}
			if err := s.parentRepo.LinkOAuthProvider(existing.ID, provider, subject); err != nil {
				return nil, nil, fmt.Errorf("failed to link oauth provider: %w", err)
			}
			parent = existing
		} else {
			if name == "" {
				name = strings.Split(email, "@")[0]
			}
			// OAuth accounts never log in with this password; it only
			// keeps the column non-empty
			randomPasswordHash, err := security.HashPassword(security.GenerateSessionID())
			if err != nil {
				return nil, nil, fmt.Errorf("failed to generate oauth password hash: %w", err)
			}
			newParent, err := s.parentRepo.CreateParent(email, randomPasswordHash, name)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to create oauth parent: %w", err)
			}
			if err := s.parentRepo.LinkOAuthProvider(newParent.ID, provider, subject); err != nil {
				return nil, nil, fmt.Errorf("failed to link oauth provider: %w", err)
			}
			parent = newParent
		}
	}

	sessionID := security.GenerateSessionID()
	expiresAt := time.Now().Add(s.sessionDuration)
	session, err := s.parentRepo.CreateAuthSession(sessionID, parent.ID, expiresAt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, parent, nil
}

// RequestPasswordReset creates a password reset token and sends an email.
// Unknown emails are not revealed: the call succeeds without side effects.
func (s *AuthService) RequestPasswordReset(ctx context.Context, emailService *EmailService, email string) error {
	parent, err := s.parentRepo.GetParentByEmail(email)
	if err != nil {
		return fmt.Errorf("failed to get parent: %w", err)
	}

	if parent == nil {
		return nil
	}

	token, err := generateSecureToken(32)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	// Any earlier token becomes invalid once a new one is requested
	_ = s.parentRepo.DeleteParentPasswordResetTokens(parent.ID)

	expiresAt := time.Now().Add(1 * time.Hour)
	if err := s.parentRepo.CreatePasswordResetToken(token, parent.ID, expiresAt); err != nil {
		return fmt.Errorf("failed to create reset token: %w", err)
	}

	if emailService != nil && emailService.IsEnabled() {
		if err := emailService.SendPasswordResetEmail(ctx, parent.Email, parent.Name, token); err != nil {
			return fmt.Errorf("failed to send reset email: %w", err)
		}
	}

	return nil
}

// ValidatePasswordResetToken checks if a reset token is valid
func (s *AuthService) ValidatePasswordResetToken(token string) (bool, error) {
	resetToken, err := s.parentRepo.GetPasswordResetToken(token)
	if err != nil {
		return false, fmt.Errorf("failed to get reset token: %w", err)
	}

	if resetToken == nil || resetToken.Used || resetToken.IsExpired() {
		return false, nil
	}

	return true, nil
}

// ResetPassword resets a parent's password using a valid token
func (s *AuthService) ResetPassword(token, newPassword string) error {
	resetToken, err := s.parentRepo.GetPasswordResetToken(token)
	if err != nil {
		return fmt.Errorf("failed to get reset token: %w", err)
	}

	if resetToken == nil {
		return errors.New("invalid or expired reset token")
	}
	if resetToken.Used {
		return errors.New("this reset link has already been used")
	}
	if resetToken.IsExpired() {
		return errors.New("this reset link has expired")
	}

	if err := validation.ValidatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.parentRepo.UpdatePassword(resetToken.ParentID, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.parentRepo.MarkPasswordResetTokenAsUsed(token); err != nil {
		return fmt.Errorf("failed to mark token as used: %w", err)
	}

	return nil
}

// CleanupExpiredPasswordResetTokens removes expired reset tokens
func (s *AuthService) CleanupExpiredPasswordResetTokens() error {
	if err := s.parentRepo.DeleteExpiredPasswordResetTokens(); err != nil {
		return fmt.Errorf("failed to cleanup reset tokens: %w", err)
	}
	return nil
}

// generateSecureToken generates a cryptographically secure random token
func generateSecureToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
