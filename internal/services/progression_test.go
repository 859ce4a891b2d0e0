package services

import (
	"testing"

	"github.com/farmlearn/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func sequencedLessons(pairs ...[2]int) []models.LessonSource {
	lessons := make([]models.LessonSource, 0, len(pairs))
	for _, p := range pairs {
		lessons = append(lessons, models.LessonSource{ID: p[0], Sequence: p[1]})
	}
	return lessons
}

func TestCompletionFrontier(t *testing.T) {
	lessons := sequencedLessons([2]int{10, 1}, [2]int{11, 2}, [2]int{12, 3}, [2]int{13, 4})

	tests := []struct {
		name      string
		completed map[int]struct{}
		expected  int
	}{
		{
			name:      "nothing completed",
			completed: map[int]struct{}{},
			expected:  0,
		},
		{
			name:      "first completed",
			completed: map[int]struct{}{10: {}},
			expected:  1,
		},
		{
			name:      "frontier is max sequence not count",
			completed: map[int]struct{}{10: {}, 12: {}},
			expected:  3,
		},
		{
			name:      "unknown completion ids are ignored",
			completed: map[int]struct{}{99: {}},
			expected:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, completionFrontier(lessons, tt.completed))
		})
	}
}

func TestLessonStatus(t *testing.T) {
	tests := []struct {
		name      string
		lesson    models.LessonSource
		completed map[int]struct{}
		frontier  int
		expected  models.LessonStatus
	}{
		{
			name:      "first lesson is current for a fresh user",
			lesson:    models.LessonSource{ID: 10, Sequence: 1},
			completed: map[int]struct{}{},
			frontier:  0,
			expected:  models.LessonStatusCurrent,
		},
		{
			name:      "later lesson is locked for a fresh user",
			lesson:    models.LessonSource{ID: 11, Sequence: 2},
			completed: map[int]struct{}{},
			frontier:  0,
			expected:  models.LessonStatusLocked,
		},
		{
			name:      "completed by identity even past the frontier",
			lesson:    models.LessonSource{ID: 12, Sequence: 5},
			completed: map[int]struct{}{12: {}},
			frontier:  1,
			expected:  models.LessonStatusCompleted,
		},
		{
			name:      "lesson after the frontier is current",
			lesson:    models.LessonSource{ID: 13, Sequence: 4},
			completed: map[int]struct{}{},
			frontier:  3,
			expected:  models.LessonStatusCurrent,
		},
		{
			name:      "lesson before the frontier is locked when not completed",
			lesson:    models.LessonSource{ID: 14, Sequence: 2},
			completed: map[int]struct{}{},
			frontier:  3,
			expected:  models.LessonStatusLocked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, lessonStatus(tt.lesson, tt.completed, tt.frontier))
		})
	}
}
