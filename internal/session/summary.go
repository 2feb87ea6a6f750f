package session

import (
	"time"

	"github.com/abhisek/flashquiz/internal/quiz"
	"github.com/abhisek/flashquiz/internal/results"
)

// Result holds the data displayed on the results screen.
type Result struct {
	SessionID      string         `json:"sessionId"`
	SetID          string         `json:"setId"`
	SetName        string         `json:"setName"`
	Subject        string         `json:"subject,omitempty"`
	Mode           Mode           `json:"mode"`
	Score          int            `json:"score"`
	CorrectAnswers int            `json:"correctAnswers"`
	TotalQuestions int            `json:"totalQuestions"`
	Percentage     int            `json:"percentage"`
	Answers        []AnswerRecord `json:"answers"`
	Pairs          []quiz.Pair    `json:"pairs,omitempty"`
	TotalTime      time.Duration  `json:"totalTime"`
	AverageTime    time.Duration  `json:"averageTime"`
	TimedOut       bool           `json:"timedOut"`
}

// Result builds the results payload of a completed scored session. It
// returns nil while the session is running, for review sessions and for
// abandoned ones.
func (s *Session) Result() *Result {
	if s.phase != PhaseCompleted || s.abandoned || !s.mode.Scored() {
		return nil
	}

	correct := s.correctCount()
	total := s.deck.Len()
	elapsed := s.elapsed()

	res := &Result{
		SessionID:      s.id,
		SetID:          s.deck.SetID,
		SetName:        s.deck.SetName,
		Subject:        s.deck.Subject,
		Mode:           s.mode,
		Score:          correct,
		CorrectAnswers: correct,
		TotalQuestions: total,
		Percentage:     results.Percent(correct, total),
		Answers:        s.Answers(),
		TotalTime:      elapsed,
		TimedOut:       s.timedOut,
	}

	// Average over what was actually answered: answers in answer modes,
	// confirmed pairs in pair mode.
	n := len(res.Answers)
	if s.mode == ModePair {
		res.Pairs = s.puzzle.Confirmed()
		n = len(res.Pairs)
	}
	if n > 0 {
		res.AverageTime = elapsed / time.Duration(n)
	}
	return res
}
