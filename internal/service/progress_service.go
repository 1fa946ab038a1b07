package service

import (
	"errors"
	"fmt"
	"time"

	"aicademy/internal/models"
	"aicademy/internal/repository"
	"aicademy/internal/validation"
)

var ErrKidNotFound = errors.New("kid profile not found")

// recentWindow is the trailing window used for "recent" time statistics
const recentWindow = 7 * 24 * time.Hour

// ProgressService owns the learning-session write path and the derived
// progress read path
type ProgressService struct {
	kidRepo     *repository.KidRepository
	sessionRepo *repository.SessionRepository
}

// NewProgressService creates a new progress service
func NewProgressService(kidRepo *repository.KidRepository, sessionRepo *repository.SessionRepository) *ProgressService {
	return &ProgressService{
		kidRepo:     kidRepo,
		sessionRepo: sessionRepo,
	}
}

// LogSession appends one completed learning session for a kid. Time spent
// is authoritative: the start timestamp is derived as end minus minutes.
// Callers retrying a flaky save can create duplicate rows; the log does not
// deduplicate.
func (s *ProgressService) LogSession(kidID int64, activities []string, totalScore, timeSpentMinutes int, certificates []string) (*models.LearningSession, error) {
	if err := validation.ValidateScore(totalScore); err != nil {
		return nil, err
	}
	if err := validation.ValidateMinutes(timeSpentMinutes); err != nil {
		return nil, err
	}

	kid, err := s.kidRepo.GetKidByID(kidID)
	if err != nil {
		return nil, fmt.Errorf("failed to check kid: %w", err)
	}
	if kid == nil {
		return nil, ErrKidNotFound
	}

	end := time.Now()
	start := end.Add(-time.Duration(timeSpentMinutes) * time.Minute)

	session, err := s.sessionRepo.CreateSession(kidID, start, end, activities, totalScore, timeSpentMinutes, certificates)
	if err != nil {
		return nil, fmt.Errorf("failed to log session: %w", err)
	}

	return session, nil
}

// GetProgress computes the progress summary for a kid. A kid with no
// sessions yields an all-zero summary, never an error.
func (s *ProgressService) GetProgress(kidID int64) (*models.ProgressSummary, error) {
	kid, err := s.kidRepo.GetKidByID(kidID)
	if err != nil {
		return nil, fmt.Errorf("failed to check kid: %w", err)
	}
	if kid == nil {
		return nil, ErrKidNotFound
	}

	sessions, err := s.sessionRepo.GetKidSessions(kidID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}

	summary := computeSummary(sessions, time.Now())
	return &summary, nil
}

// ListSessions returns a kid's session history, newest first
func (s *ProgressService) ListSessions(kidID int64) ([]models.LearningSession, error) {
	kid, err := s.kidRepo.GetKidByID(kidID)
	if err != nil {
		return nil, fmt.Errorf("failed to check kid: %w", err)
	}
	if kid == nil {
		return nil, ErrKidNotFound
	}

	sessions, err := s.sessionRepo.GetKidSessions(kidID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}
	return sessions, nil
}

// GetParentProgress rolls up progress across all of a parent's kids
func (s *ProgressService) GetParentProgress(parentID int64) (*models.ParentProgress, error) {
	kids, err := s.kidRepo.GetParentKids(parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list kids: %w", err)
	}

	now := time.Now()
	var kidProgress []models.KidProgress
	for _, kid := range kids {
		sessions, err := s.sessionRepo.GetKidSessions(kid.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load sessions for kid %d: %w", kid.ID, err)
		}
		kidProgress = append(kidProgress, models.KidProgress{
			Kid:     kid,
			Summary: computeSummary(sessions, now),
		})
	}

	rollup := rollupProgress(kidProgress)
	return &rollup, nil
}

// computeSummary derives a progress summary from a kid's session history.
// now anchors the trailing recency window.
func computeSummary(sessions []models.LearningSession, now time.Time) models.ProgressSummary {
	summary := models.ProgressSummary{
		TotalSessions: len(sessions),
	}

	if len(sessions) == 0 {
		return summary
	}

	cutoff := now.Add(-recentWindow)
	var totalScore int
	for _, session := range sessions {
		summary.TotalTimeMinutes += session.TimeSpentMinutes
		totalScore += session.TotalScore
		if !session.SessionStart.Before(cutoff) {
			summary.RecentTimeMinutes += session.TimeSpentMinutes
		}
	}

	summary.AverageScore = float64(totalScore) / float64(len(sessions))
	return summary
}

// rollupProgress aggregates per-kid summaries into a parent-level view.
// The average is weighted by session count so it matches the mean over all
// of the parent's sessions.
func rollupProgress(kids []models.KidProgress) models.ParentProgress {
	rollup := models.ParentProgress{Kids: kids}

	var weightedScore float64
	for _, kp := range kids {
		rollup.TotalSessions += kp.Summary.TotalSessions
		rollup.TotalTimeMinutes += kp.Summary.TotalTimeMinutes
		rollup.RecentTimeMinutes += kp.Summary.RecentTimeMinutes
		weightedScore += kp.Summary.AverageScore * float64(kp.Summary.TotalSessions)
	}

	if rollup.TotalSessions > 0 {
		rollup.AverageScore = weightedScore / float64(rollup.TotalSessions)
	}

	return rollup
}
