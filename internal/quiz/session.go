package quiz

import (
	"fmt"
	"slices"
	"strings"
)

// MissedEntry records an incorrect answer.
type MissedEntry struct {
	Street  string `json:"street"`
	Correct string `json:"correct"`
	Chosen  string `json:"chosen"`
}

// SkippedEntry records a skipped question.
type SkippedEntry struct {
	Street    string `json:"street"`
	Districts string `json:"districts"`
}

// Session holds the tallies of one quiz run.
type Session struct {
	Score    int            `json:"score"`
	Total    int            `json:"total"`
	Answered int            `json:"answered"`
	Missed   []MissedEntry  `json:"missed"`
	Skipped  []SkippedEntry `json:"skipped"`
}

// Recap is the end-of-run summary shown on finish.
type Recap struct {
	Score   int            `json:"score"`
	Total   int            `json:"total"`
	Percent string         `json:"percent"`
	Missed  []MissedEntry  `json:"missed"`
	Skipped []SkippedEntry `json:"skipped"`
	Text    string         `json:"text"`
}

// RecordAnswer tallies an evaluated answer and reports whether it was correct.
func (s *Session) RecordAnswer(street, correct, chosen string) bool {
	s.Total++
	s.Answered++
	if chosen == correct {
		s.Score++
		return true
	}
	s.Missed = append(s.Missed, MissedEntry{Street: street, Correct: correct, Chosen: chosen})
	return false
}

// RecordSkip tallies a skipped question. Score and total are untouched.
func (s *Session) RecordSkip(street, districts string) {
	s.Answered++
	s.Skipped = append(s.Skipped, SkippedEntry{Street: street, Districts: districts})
}

// Reset zeroes counters and clears both logs.
func (s *Session) Reset() {
	*s = Session{}
}

// Percent is score/total*100 with one decimal, ties rounded up, "0.0" when
// nothing was answered.
func (s *Session) Percent() string {
	if s.Total <= 0 {
		return "0.0"
	}
	// tenths of a percent, rounded half up in integer arithmetic
	tenths := (2000*s.Score + s.Total) / (2 * s.Total)
	return fmt.Sprintf("%d.%d", tenths/10, tenths%10)
}

func (s *Session) clone() Session {
	out := *s
	out.Missed = slices.Clone(s.Missed)
	out.Skipped = slices.Clone(s.Skipped)
	return out
}

// Recap builds the textual summary of the run so far.
func (s *Session) Recap() Recap {
	percent := s.Percent()

	var b strings.Builder
	fmt.Fprintf(&b, "Score: %d/%d  |  Percent: %s%%\n\n", s.Score, s.Total, percent)

	b.WriteString("Missed:\n")
	if len(s.Missed) == 0 {
		b.WriteString("None 🎉")
	} else {
		lines := make([]string, len(s.Missed))
		for i, m := range s.Missed {
			lines[i] = fmt.Sprintf("• %s\n  Correct: %s | You chose: %s", m.Street, m.Correct, m.Chosen)
		}
		b.WriteString(strings.Join(lines, "\n"))
	}

	b.WriteString("\n\nSkipped:\n")
	if len(s.Skipped) == 0 {
		b.WriteString("None")
	} else {
		lines := make([]string, len(s.Skipped))
		for i, sk := range s.Skipped {
			lines[i] = fmt.Sprintf("• %s → %s", sk.Street, sk.Districts)
		}
		b.WriteString(strings.Join(lines, "\n"))
	}

	snap := s.clone()
	return Recap{
		Score:   snap.Score,
		Total:   snap.Total,
		Percent: percent,
		Missed:  snap.Missed,
		Skipped: snap.Skipped,
		Text:    b.String(),
	}
}
