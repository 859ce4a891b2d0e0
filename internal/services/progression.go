package services

import "github.com/farmlearn/backend/internal/models"

// GuestUserID marks an unauthenticated caller. Guests always see the frontier
// at zero and their completions are never persisted.
const GuestUserID = 0

// completionFrontier returns the highest sequence among the user's completed
// lessons. Zero means nothing is completed yet, so the sequence-1 lesson
// becomes current.
func completionFrontier(lessons []models.LessonSource, completed map[int]struct{}) int {
	frontier := 0
	for _, lesson := range lessons {
		if _, ok := completed[lesson.ID]; ok && lesson.Sequence > frontier {
			frontier = lesson.Sequence
		}
	}
	return frontier
}

// lessonStatus derives the progression status of one lesson. Completion is
// decided by lesson identity; the current slot is decided by sequence, always
// the first step past the frontier.
func lessonStatus(lesson models.LessonSource, completed map[int]struct{}, frontier int) models.LessonStatus {
	if _, ok := completed[lesson.ID]; ok {
		return models.LessonStatusCompleted
	}
	if lesson.Sequence == frontier+1 {
		return models.LessonStatusCurrent
	}
	return models.LessonStatusLocked
}
