package models

import "time"

// LessonCompletion represents one (user, lesson) completion event.
// At most one exists per pair, enforced by a uniqueness constraint.
type LessonCompletion struct {
	ID          int       `json:"id"`
	UserID      int       `json:"userId"`
	LessonID    int       `json:"lessonId"`
	CompletedAt time.Time `json:"completedAt"`
}

// CompletionResult reports the outcome of reconciling a completion.
type CompletionResult struct {
	Accepted         bool `json:"accepted"`
	AlreadyCompleted bool `json:"alreadyCompleted"`
	PointsAwarded    int  `json:"pointsAwarded"`
}
