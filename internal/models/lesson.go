package models

import "database/sql"

// LessonStatus is the derived progression state of a lesson for one user.
// It is recomputed on every fetch and never persisted.
type LessonStatus string

const (
	LessonStatusLocked    LessonStatus = "locked"
	LessonStatusCurrent   LessonStatus = "current"
	LessonStatusCompleted LessonStatus = "completed"
)

// LessonSource is a raw lessons row carrying both the requested-language and
// default-language values for each localized field. The Local* fields are
// invalid when the row was fetched with the default-only projection.
type LessonSource struct {
	ID       int
	Sequence int
	Points   int
	Theme    sql.NullString

	DefaultTitle       sql.NullString
	DefaultDescription sql.NullString
	DefaultContent     sql.NullString

	LocalTitle       sql.NullString
	LocalDescription sql.NullString
	LocalContent     sql.NullString
}

// LessonListItem represents a lesson in the lessons list response
type LessonListItem struct {
	ID          int          `json:"id"`
	Sequence    int          `json:"sequence"`
	Points      int          `json:"points"`
	Theme       string       `json:"theme,omitempty"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      LessonStatus `json:"status"`
}

// LessonDetail represents a single lesson in the detail response
type LessonDetail struct {
	ID        int    `json:"id"`
	Sequence  int    `json:"sequence"`
	Points    int    `json:"points"`
	Theme     string `json:"theme,omitempty"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Completed bool   `json:"completed"`
}

// LessonBoard is the collection view: lessons annotated with status plus the
// values the lessons screen derives from them.
type LessonBoard struct {
	Lessons               []LessonListItem `json:"lessons"`
	LastCompletedSequence int              `json:"lastCompletedSequence"`
	TotalScore            int              `json:"totalScore"`
}
