package models

import "math"

// AttemptRecord summarizes one completed quiz attempt. The field layout
// matches the persisted JSON shape and must stay compatible with data
// written by earlier releases.
type AttemptRecord struct {
	Date     string `json:"date"`
	Score    int    `json:"score"`
	Total    int    `json:"total"`
	Accuracy int    `json:"accuracy"`
}

// AnswerOutcome records the result of one submitted question.
type AnswerOutcome struct {
	QuestionID int  `json:"question_id"`
	Selected   int  `json:"selected"`
	Correct    int  `json:"correct"`
	IsCorrect  bool `json:"is_correct"`
}

// FinalResult is emitted when a session advances past its last question.
type FinalResult struct {
	CategoryID string          `json:"category_id"`
	Score      int             `json:"score"`
	Total      int             `json:"total"`
	Accuracy   int             `json:"accuracy"`
	Answers    []AnswerOutcome `json:"answers"`
}

// OverallStats aggregates retained quiz history across every category.
type OverallStats struct {
	TotalQuizzes      int `json:"total_quizzes"`
	CategoriesStudied int `json:"categories_studied"`
	TotalScore        int `json:"total_score"`
	TotalQuestions    int `json:"total_questions"`
	OverallAccuracy   int `json:"overall_accuracy"`
}

// AccuracyPercent converts a score into an integer percentage, rounding
// half up: 7/10 -> 70, 1/3 -> 33, 1/8 -> 13.
func AccuracyPercent(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}
