package models

// Reward is a discount voucher granted for completing a lesson.
type Reward struct {
	ID         int    `json:"id"`
	LessonID   int    `json:"lessonId"`
	Percentage int    `json:"percentage"`
	Item       string `json:"item"`
}
