package results

import (
	"time"

	"github.com/abhisek/flashquiz/internal/timer"
)

// Record is one completed quiz attempt. Records are built once when a
// session completes and never modified afterwards.
type Record struct {
	ID             string         `json:"id"`
	SetName        string         `json:"setName"`
	SetID          string         `json:"setId"`
	Subject        string         `json:"subject,omitempty"`
	Mode           string         `json:"mode"`
	Score          int            `json:"score"`
	CorrectAnswers int            `json:"correctAnswers"`
	TotalQuestions int            `json:"totalQuestions"`
	CompletedAt    time.Time      `json:"completedAt"`
	TimeTaken      int64          `json:"timeTaken"` // seconds
	Settings       timer.Settings `json:"settings"`
}

// Percentage returns the rounded share of correct answers, 0 for an empty quiz.
func (r Record) Percentage() int {
	return Percent(r.CorrectAnswers, r.TotalQuestions)
}

// Duration returns TimeTaken as a time.Duration.
func (r Record) Duration() time.Duration {
	return time.Duration(r.TimeTaken) * time.Second
}

// Percent returns round(correct/total*100), or 0 when total is 0.
func Percent(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return (correct*100*2 + total) / (total * 2)
}
