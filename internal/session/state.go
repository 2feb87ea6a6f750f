package session

import (
	"fmt"
	"time"
)

// Phase is the lifecycle stage of a quiz session.
type Phase int

const (
	PhaseModeSelection Phase = iota // Choosing mode and timer
	PhaseActive                     // Playing
	PhaseCompleted                  // Finished, timed out or abandoned
)

func (p Phase) String() string {
	switch p {
	case PhaseModeSelection:
		return "mode-selection"
	case PhaseActive:
		return "active"
	case PhaseCompleted:
		return "completed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Mode is how cards are presented while the session is active.
type Mode int

const (
	ModeMultipleChoice Mode = iota + 1
	ModeTypeAnswer
	ModePair
	ModeReview
)

var modeNames = map[Mode]string{
	ModeMultipleChoice: "multiple-choice",
	ModeTypeAnswer:     "type-answer",
	ModePair:           "pair",
	ModeReview:         "review",
}

// Modes lists the playable modes in menu order.
var Modes = []Mode{ModeMultipleChoice, ModeTypeAnswer, ModePair, ModeReview}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Label is the human-readable mode name.
func (m Mode) Label() string {
	switch m {
	case ModeMultipleChoice:
		return "Multiple choice"
	case ModeTypeAnswer:
		return "Type the answer"
	case ModePair:
		return "Match pairs"
	case ModeReview:
		return "Review"
	}
	return m.String()
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	_, ok := modeNames[m]
	return ok
}

// Scored reports whether sessions in this mode produce a quiz record.
func (m Mode) Scored() bool { return m != ModeReview }

// Timed reports whether the configured timer runs in this mode.
func (m Mode) Timed() bool { return m != ModeReview }

// Answered reports whether the mode collects one answer per card.
func (m Mode) Answered() bool {
	return m == ModeMultipleChoice || m == ModeTypeAnswer
}

// ParseMode converts a mode name into a Mode.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown quiz mode %q", s)
}

func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("unknown quiz mode %d", int(m))
	}
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// AnswerRecord is one answered card in multiple-choice or type-answer mode.
type AnswerRecord struct {
	QuestionIndex int           `json:"questionIndex"`
	Question      string        `json:"question"`
	CorrectAnswer string        `json:"correctAnswer"`
	UserAnswer    string        `json:"userAnswer"`
	IsCorrect     bool          `json:"isCorrect"`
	ResponseTime  time.Duration `json:"responseTime"`
}
