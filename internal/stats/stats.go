// Package stats derives profile statistics from quiz history.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/abhisek/flashquiz/internal/results"
)

// Summary aggregates a user's quiz records.
type Summary struct {
	Quizzes        int
	Questions      int
	Correct        int
	AveragePercent int // mean of per-quiz percentages
	BestPercent    int
	TotalTime      time.Duration
	LastPlayed     time.Time
	Modes          []ModeStats
	Sets           []SetStats
}

// ModeStats is the per-mode breakdown.
type ModeStats struct {
	Mode           string
	Quizzes        int
	AveragePercent int
}

// SetStats is the per-set breakdown.
type SetStats struct {
	SetID       string
	SetName     string
	Quizzes     int
	BestPercent int
	LastPercent int
}

// Compute summarises records, which are expected oldest first.
func Compute(records []results.Record) Summary {
	var s Summary
	if len(records) == 0 {
		return s
	}

	type modeAcc struct{ n, sum int }
	modes := make(map[string]*modeAcc)
	sets := make(map[string]*SetStats)
	var order []string

	percentSum := 0
	for _, r := range records {
		pct := r.Percentage()
		s.Quizzes++
		s.Questions += r.TotalQuestions
		s.Correct += r.CorrectAnswers
		s.TotalTime += r.Duration()
		percentSum += pct
		if pct > s.BestPercent {
			s.BestPercent = pct
		}
		if r.CompletedAt.After(s.LastPlayed) {
			s.LastPlayed = r.CompletedAt
		}

		m := modes[r.Mode]
		if m == nil {
			m = &modeAcc{}
			modes[r.Mode] = m
		}
		m.n++
		m.sum += pct

		st := sets[r.SetID]
		if st == nil {
			st = &SetStats{SetID: r.SetID}
			sets[r.SetID] = st
			order = append(order, r.SetID)
		}
		st.SetName = r.SetName
		st.Quizzes++
		st.LastPercent = pct
		if pct > st.BestPercent {
			st.BestPercent = pct
		}
	}
	s.AveragePercent = roundDiv(percentSum, s.Quizzes)

	for mode, m := range modes {
		s.Modes = append(s.Modes, ModeStats{Mode: mode, Quizzes: m.n, AveragePercent: roundDiv(m.sum, m.n)})
	}
	sort.Slice(s.Modes, func(i, j int) bool {
		if s.Modes[i].Quizzes != s.Modes[j].Quizzes {
			return s.Modes[i].Quizzes > s.Modes[j].Quizzes
		}
		return s.Modes[i].Mode < s.Modes[j].Mode
	})

	for _, id := range order {
		s.Sets = append(s.Sets, *sets[id])
	}
	sort.SliceStable(s.Sets, func(i, j int) bool { return s.Sets[i].Quizzes > s.Sets[j].Quizzes })
	return s
}

func roundDiv(sum, n int) int {
	if n == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(n)))
}
