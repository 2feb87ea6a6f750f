package quiz

import "strings"

// NormalizeAnswer trims surrounding whitespace and lowercases s.
func NormalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// CheckAnswer compares the learner's input against the correct answer.
//
// Normalization rules:
// - Whitespace is trimmed
// - Comparison is case-insensitive
// - No partial credit or fuzzy matching
//
// An empty answer (including a time-expired submission) is never correct.
func CheckAnswer(learnerAnswer, correctAnswer string) bool {
	got := NormalizeAnswer(learnerAnswer)
	if got == "" {
		return false
	}
	return got == NormalizeAnswer(correctAnswer)
}
