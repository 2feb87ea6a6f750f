package quiz

import (
	"math/rand/v2"
	"slices"

	"github.com/abhisek/flashquiz/internal/deck"
)

// PairItem is one tile in the pairing puzzle. Index is the card's position in
// the deck; a question and an answer match when their indexes are equal.
type PairItem struct {
	Index int
	Text  string
}

// Pair is a question/answer selection, identified by deck indexes.
type Pair struct {
	QuestionIndex int
	AnswerIndex   int
}

// PairOutcome is the result of a single tap in the pairing puzzle.
type PairOutcome int

const (
	PairIgnored    PairOutcome = iota // Tap had no effect
	PairPending                       // Waiting for the other half of the pair
	PairMatched                       // Selections matched and were confirmed
	PairMismatched                    // Selections did not match; awaiting ClearMismatch
)

func (o PairOutcome) String() string {
	switch o {
	case PairPending:
		return "pending"
	case PairMatched:
		return "matched"
	case PairMismatched:
		return "mismatched"
	default:
		return "ignored"
	}
}

const noSelection = -1

// PairPuzzle holds the state of a pairing round.
type PairPuzzle struct {
	questions []PairItem
	answers   []PairItem
	confirmed []Pair

	selectedQuestion int
	selectedAnswer   int
	mismatch         *Pair
	total            int
}

// NewPairPuzzle builds independently shuffled question and answer columns
// from cards.
func NewPairPuzzle(cards []deck.Card, rng *rand.Rand) *PairPuzzle {
	questions := make([]PairItem, len(cards))
	answers := make([]PairItem, len(cards))
	for i, c := range cards {
		questions[i] = PairItem{Index: i, Text: c.Question}
		answers[i] = PairItem{Index: i, Text: c.Answer}
	}
	shuffle(len(questions), func(i, j int) { questions[i], questions[j] = questions[j], questions[i] }, rng)
	shuffle(len(answers), func(i, j int) { answers[i], answers[j] = answers[j], answers[i] }, rng)

	return &PairPuzzle{
		questions:        questions,
		answers:          answers,
		selectedQuestion: noSelection,
		selectedAnswer:   noSelection,
		total:            len(cards),
	}
}

// Questions returns the remaining unmatched questions in display order.
func (p *PairPuzzle) Questions() []PairItem { return slices.Clone(p.questions) }

// Answers returns the remaining unmatched answers in display order.
func (p *PairPuzzle) Answers() []PairItem { return slices.Clone(p.answers) }

// Confirmed returns matched pairs in the order they were confirmed.
func (p *PairPuzzle) Confirmed() []Pair { return slices.Clone(p.confirmed) }

// Total is the number of pairs in the puzzle.
func (p *PairPuzzle) Total() int { return p.total }

// Complete reports whether every pair has been confirmed.
func (p *PairPuzzle) Complete() bool { return len(p.confirmed) == p.total }

// SelectedQuestion returns the selected question's deck index.
func (p *PairPuzzle) SelectedQuestion() (int, bool) {
	return p.selectedQuestion, p.selectedQuestion != noSelection
}

// SelectedAnswer returns the selected answer's deck index.
func (p *PairPuzzle) SelectedAnswer() (int, bool) {
	return p.selectedAnswer, p.selectedAnswer != noSelection
}

// Mismatch returns the pair currently flagged as incorrect, if any.
func (p *PairPuzzle) Mismatch() (Pair, bool) {
	if p.mismatch == nil {
		return Pair{}, false
	}
	return *p.mismatch, true
}

// SelectQuestion selects the remaining question with the given deck index.
// Tapping the selected question again deselects it.
func (p *PairPuzzle) SelectQuestion(index int) PairOutcome {
	if p.mismatch != nil || !containsIndex(p.questions, index) {
		return PairIgnored
	}
	if p.selectedQuestion == index {
		p.selectedQuestion = noSelection
		return PairPending
	}
	p.selectedQuestion = index
	return p.resolve()
}

// SelectAnswer selects the remaining answer with the given deck index.
// Tapping the selected answer again deselects it.
func (p *PairPuzzle) SelectAnswer(index int) PairOutcome {
	if p.mismatch != nil || !containsIndex(p.answers, index) {
		return PairIgnored
	}
	if p.selectedAnswer == index {
		p.selectedAnswer = noSelection
		return PairPending
	}
	p.selectedAnswer = index
	return p.resolve()
}

// ClearMismatch ends the error highlight and clears both selections.
func (p *PairPuzzle) ClearMismatch() {
	p.mismatch = nil
	p.selectedQuestion = noSelection
	p.selectedAnswer = noSelection
}

func (p *PairPuzzle) resolve() PairOutcome {
	if p.selectedQuestion == noSelection || p.selectedAnswer == noSelection {
		return PairPending
	}

	pair := Pair{QuestionIndex: p.selectedQuestion, AnswerIndex: p.selectedAnswer}
	if pair.QuestionIndex != pair.AnswerIndex {
		p.mismatch = &pair
		return PairMismatched
	}

	p.confirmed = append(p.confirmed, pair)
	p.questions = removeIndex(p.questions, pair.QuestionIndex)
	p.answers = removeIndex(p.answers, pair.AnswerIndex)
	p.selectedQuestion = noSelection
	p.selectedAnswer = noSelection
	return PairMatched
}

func containsIndex(items []PairItem, index int) bool {
	return slices.ContainsFunc(items, func(it PairItem) bool { return it.Index == index })
}

func removeIndex(items []PairItem, index int) []PairItem {
	return slices.DeleteFunc(items, func(it PairItem) bool { return it.Index == index })
}
