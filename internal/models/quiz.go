package models

import "database/sql"

// QuizQuestionSource is a raw quiz_questions row carrying the requested- and
// default-language question text. LocalQuestion is invalid when the row was
// fetched with the default-only projection.
type QuizQuestionSource struct {
	ID       int
	LessonID int
	Position int

	DefaultQuestion sql.NullString
	LocalQuestion   sql.NullString

	OptionA       string
	OptionB       string
	OptionC       string
	OptionD       string
	CorrectOption string
}

// QuizQuestion represents one question in the quiz response. The correct
// option is never included.
type QuizQuestion struct {
	ID       int      `json:"id"`
	Position int      `json:"position"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// QuizAnswer is one submitted answer, option "a" through "d".
type QuizAnswer struct {
	QuestionID int    `json:"questionId"`
	Option     string `json:"option"`
}

// QuizSubmission is the request body for submitting quiz answers
type QuizSubmission struct {
	Answers []QuizAnswer `json:"answers"`
}

// QuizResultItem reports correctness for one question
type QuizResultItem struct {
	QuestionID int  `json:"questionId"`
	Correct    bool `json:"correct"`
}

// QuizResult is the graded outcome of a quiz submission.
type QuizResult struct {
	Score   int              `json:"score"`
	Total   int              `json:"total"`
	Passed  bool             `json:"passed"`
	Results []QuizResultItem `json:"results"`
}
