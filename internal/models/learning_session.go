package models

import "time"

// LearningSession is one completed use of the app by a kid, logged at
// session end. Rows are append-only; there is no update or delete path.
type LearningSession struct {
	ID                  int64
	KidID               int64
	SessionStart        time.Time
	SessionEnd          time.Time
	ActivitiesCompleted []string
	TotalScore          int
	TimeSpentMinutes    int
	CertificatesEarned  []string
}

// Duration returns the recorded session length
func (s *LearningSession) Duration() time.Duration {
	return s.SessionEnd.Sub(s.SessionStart)
}
