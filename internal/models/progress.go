package models

// ProgressSummary holds derived statistics over a kid's session history.
// It is computed on demand and never persisted.
type ProgressSummary struct {
	TotalSessions     int
	TotalTimeMinutes  int
	AverageScore      float64
	RecentTimeMinutes int
}

// KidProgress pairs a kid with their progress summary
type KidProgress struct {
	Kid     Kid
	Summary ProgressSummary
}

// ParentProgress is the rollup across all of a parent's kids
type ParentProgress struct {
	TotalSessions     int
	TotalTimeMinutes  int
	AverageScore      float64
	RecentTimeMinutes int
	Kids              []KidProgress
}
