package handlers

import (
	"time"

	"aicademy/internal/models"
)

// JSON shapes returned by the API. Database models stay tag-free; these
// views decide what the wire format exposes.

type parentView struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type kidView struct {
	ID        int64     `json:"id"`
	ParentID  int64     `json:"parent_id"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Grade     string    `json:"grade"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

type sessionView struct {
	ID                  int64     `json:"id"`
	KidID               int64     `json:"kid_id"`
	SessionStart        time.Time `json:"session_start"`
	SessionEnd          time.Time `json:"session_end"`
	ActivitiesCompleted []string  `json:"activities_completed"`
	TotalScore          int       `json:"total_score"`
	TimeSpentMinutes    int       `json:"time_spent_minutes"`
	CertificatesEarned  []string  `json:"certificates_earned"`
}

type progressView struct {
	TotalSessions     int     `json:"total_sessions"`
	TotalTimeMinutes  int     `json:"total_time_minutes"`
	AverageScore      float64 `json:"average_score"`
	RecentTimeMinutes int     `json:"recent_time_minutes"`
}

type kidProgressView struct {
	Kid     kidView      `json:"kid"`
	Summary progressView `json:"summary"`
}

type parentProgressView struct {
	TotalSessions     int               `json:"total_sessions"`
	TotalTimeMinutes  int               `json:"total_time_minutes"`
	AverageScore      float64           `json:"average_score"`
	RecentTimeMinutes int               `json:"recent_time_minutes"`
	Kids              []kidProgressView `json:"kids"`
}

func newParentView(p *models.Parent) parentView {
	return parentView{
		ID:        p.ID,
		Email:     p.Email,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
	}
}

func newKidView(k *models.Kid) kidView {
	return kidView{
		ID:        k.ID,
		ParentID:  k.ParentID,
		Name:      k.Name,
		Age:       k.Age,
		Grade:     k.Grade,
		Avatar:    k.Avatar,
		CreatedAt: k.CreatedAt,
	}
}

func newKidViews(kids []models.Kid) []kidView {
	views := make([]kidView, 0, len(kids))
	for i := range kids {
		views = append(views, newKidView(&kids[i]))
	}
	return views
}

func newSessionView(s *models.LearningSession) sessionView {
	return sessionView{
		ID:                  s.ID,
		KidID:               s.KidID,
		SessionStart:        s.SessionStart,
		SessionEnd:          s.SessionEnd,
		ActivitiesCompleted: s.ActivitiesCompleted,
		TotalScore:          s.TotalScore,
		TimeSpentMinutes:    s.TimeSpentMinutes,
		CertificatesEarned:  s.CertificatesEarned,
	}
}

func newProgressView(p *models.ProgressSummary) progressView {
	return progressView{
		TotalSessions:     p.TotalSessions,
		TotalTimeMinutes:  p.TotalTimeMinutes,
		AverageScore:      p.AverageScore,
		RecentTimeMinutes: p.RecentTimeMinutes,
	}
}

func newParentProgressView(p *models.ParentProgress) parentProgressView {
	kids := make([]kidProgressView, 0, len(p.Kids))
	for i := range p.Kids {
		kids = append(kids, kidProgressView{
			Kid:     newKidView(&p.Kids[i].Kid),
			Summary: newProgressView(&p.Kids[i].Summary),
		})
	}
	return parentProgressView{
		TotalSessions:     p.TotalSessions,
		TotalTimeMinutes:  p.TotalTimeMinutes,
		AverageScore:      p.AverageScore,
		RecentTimeMinutes: p.RecentTimeMinutes,
		Kids:              kids,
	}
}
