package service

import (
	"testing"
	"time"

	"aicademy/internal/models"
)

func TestComputeSummary(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	session := func(daysAgo int, score, minutes int) models.LearningSession {
		start := now.AddDate(0, 0, -daysAgo)
		return models.LearningSession{
			SessionStart:     start,
			SessionEnd:       start.Add(time.Duration(minutes) * time.Minute),
			TotalScore:       score,
			TimeSpentMinutes: minutes,
		}
	}

	tests := []struct {
		name     string
		sessions []models.LearningSession
		expected models.ProgressSummary
	}{
		{
			name:     "no sessions yields all zeros",
			sessions: nil,
			expected: models.ProgressSummary{},
		},
		{
			name: "single recent session",
			sessions: []models.LearningSession{
				session(1, 10, 5),
			},
			expected: models.ProgressSummary{
				TotalSessions:     1,
				TotalTimeMinutes:  5,
				AverageScore:      10,
				RecentTimeMinutes: 5,
			},
		},
		{
			name: "two recent sessions",
			sessions: []models.LearningSession{
				session(0, 20, 15),
				session(1, 10, 5),
			},
			expected: models.ProgressSummary{
				TotalSessions:     2,
				TotalTimeMinutes:  20,
				AverageScore:      15,
				RecentTimeMinutes: 20,
			},
		},
		{
			name: "session 8 days ago is outside the recent window",
			sessions: []models.LearningSession{
				session(8, 30, 40),
			},
			expected: models.ProgressSummary{
				TotalSessions:     1,
				TotalTimeMinutes:  40,
				AverageScore:      30,
				RecentTimeMinutes: 0,
			},
		},
		{
			name: "session 6 days ago is inside the recent window",
			sessions: []models.LearningSession{
				session(6, 30, 40),
			},
			expected: models.ProgressSummary{
				TotalSessions:     1,
				TotalTimeMinutes:  40,
				AverageScore:      30,
				RecentTimeMinutes: 40,
			},
		},
		{
			name: "mixed old and recent sessions",
			sessions: []models.LearningSession{
				session(1, 100, 10),
				session(6, 50, 20),
				session(10, 20, 30),
			},
			expected: models.ProgressSummary{
				TotalSessions:     3,
				TotalTimeMinutes:  60,
				AverageScore:      (100.0 + 50.0 + 20.0) / 3.0,
				RecentTimeMinutes: 30,
			},
		},
		{
			name: "zero scores average to zero",
			sessions: []models.LearningSession{
				session(1, 0, 5),
				session(2, 0, 5),
			},
			expected: models.ProgressSummary{
				TotalSessions:     2,
				TotalTimeMinutes:  10,
				AverageScore:      0,
				RecentTimeMinutes: 10,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := computeSummary(tt.sessions, now)
			if result != tt.expected {
				t.Errorf("computeSummary() = %+v, want %+v", result, tt.expected)
			}
		})
	}
}

func TestComputeSummaryWindowBoundary(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	cutoff := now.Add(-7 * 24 * time.Hour)

	// A session starting exactly at the cutoff counts as recent
	sessions := []models.LearningSession{
		{SessionStart: cutoff, TimeSpentMinutes: 10, TotalScore: 5},
	}

	result := computeSummary(sessions, now)
	if result.RecentTimeMinutes != 10 {
		t.Errorf("RecentTimeMinutes = %d, want 10 (boundary is inclusive)", result.RecentTimeMinutes)
	}
}

func TestComputeSummaryIdempotent(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	sessions := []models.LearningSession{
		{SessionStart: now.AddDate(0, 0, -1), TimeSpentMinutes: 5, TotalScore: 10},
		{SessionStart: now.AddDate(0, 0, -2), TimeSpentMinutes: 15, TotalScore: 20},
	}

	first := computeSummary(sessions, now)
	second := computeSummary(sessions, now)
	if first != second {
		t.Errorf("computeSummary() not idempotent: %+v != %+v", first, second)
	}
}

func TestRollupProgress(t *testing.T) {
	tests := []struct {
		name     string
		kids     []models.KidProgress
		expected models.ParentProgress
	}{
		{
			name:     "no kids",
			kids:     nil,
			expected: models.ParentProgress{},
		},
		{
			name: "single kid passes through",
			kids: []models.KidProgress{
				{Summary: models.ProgressSummary{TotalSessions: 2, TotalTimeMinutes: 20, AverageScore: 15, RecentTimeMinutes: 20}},
			},
			expected: models.ParentProgress{
				TotalSessions:     2,
				TotalTimeMinutes:  20,
				AverageScore:      15,
				RecentTimeMinutes: 20,
			},
		},
		{
			name: "average is weighted by session count",
			kids: []models.KidProgress{
				{Summary: models.ProgressSummary{TotalSessions: 3, TotalTimeMinutes: 30, AverageScore: 10, RecentTimeMinutes: 10}},
				{Summary: models.ProgressSummary{TotalSessions: 1, TotalTimeMinutes: 10, AverageScore: 50, RecentTimeMinutes: 5}},
			},
			expected: models.ParentProgress{
				TotalSessions:     4,
				TotalTimeMinutes:  40,
				AverageScore:      20, // (3*10 + 1*50) / 4
				RecentTimeMinutes: 15,
			},
		},
		{
			name: "kid with no sessions does not skew the average",
			kids: []models.KidProgress{
				{Summary: models.ProgressSummary{TotalSessions: 2, TotalTimeMinutes: 20, AverageScore: 30, RecentTimeMinutes: 20}},
				{Summary: models.ProgressSummary{}},
			},
			expected: models.ParentProgress{
				TotalSessions:     2,
				TotalTimeMinutes:  20,
				AverageScore:      30,
				RecentTimeMinutes: 20,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := rollupProgress(tt.kids)
			if result.TotalSessions != tt.expected.TotalSessions {
				t.Errorf("TotalSessions = %d, want %d", result.TotalSessions, tt.expected.TotalSessions)
			}
			if result.TotalTimeMinutes != tt.expected.TotalTimeMinutes {
				t.Errorf("TotalTimeMinutes = %d, want %d", result.TotalTimeMinutes, tt.expected.TotalTimeMinutes)
			}
			if result.AverageScore != tt.expected.AverageScore {
				t.Errorf("AverageScore = %v, want %v", result.AverageScore, tt.expected.AverageScore)
			}
			if result.RecentTimeMinutes != tt.expected.RecentTimeMinutes {
				t.Errorf("RecentTimeMinutes = %d, want %d", result.RecentTimeMinutes, tt.expected.RecentTimeMinutes)
			}
		})
	}
}
