package play

// tickMsg is one single-shot countdown tick. Generation ties it to the
// timer chain that scheduled it.
type tickMsg struct {
	Generation int
}

// mismatchClearMsg ends the pair mismatch highlight.
type mismatchClearMsg struct {
	Seq int
}
