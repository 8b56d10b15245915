package quiz

import "fmt"

// DefaultNumChoices is the number of options shown when enough distinct sets exist.
const DefaultNumChoices = 4

// Question is the active record with its rendered choices.
type Question struct {
	Record  Record   `json:"record"`
	Prompt  string   `json:"prompt"`
	Correct string   `json:"-"`
	Choices []string `json:"choices"`
}

// Generator builds multiple-choice questions over a fixed record set.
type Generator struct {
	keys       []string // unique normalized keys, first-seen order
	numChoices int
	rng        Rand
}

// NewGenerator indexes the distinct district sets of records.
func NewGenerator(records []Record, numChoices int, rng Rand) *Generator {
	if numChoices <= 0 {
		numChoices = DefaultNumChoices
	}
	seen := make(map[string]struct{}, len(records))
	keys := make([]string, 0, len(records))
	for _, rec := range records {
		key := NormalizeKey(rec.Districts)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return &Generator{keys: keys, numChoices: numChoices, rng: rng}
}

// Build returns a question for rec. Distractors come from other distinct sets;
// when fewer than numChoices-1 exist the question simply has fewer choices.
func (g *Generator) Build(rec Record) Question {
	correctKey := NormalizeKey(rec.Districts)

	distractors := make([]string, 0, len(g.keys))
	for _, key := range g.keys {
		if key != correctKey {
			distractors = append(distractors, key)
		}
	}
	picked := shuffled(g.rng, distractors)
	if limit := g.numChoices - 1; len(picked) > limit {
		picked = picked[:limit]
	}

	correct := FormatSet(rec.Districts)
	choices := make([]string, 0, len(picked)+1)
	choices = append(choices, correct)
	for _, key := range picked {
		choices = append(choices, formatKey(key))
	}

	return Question{
		Record:  rec,
		Prompt:  fmt.Sprintf("What districts is %s in?", rec.Street),
		Correct: correct,
		Choices: shuffled(g.rng, choices),
	}
}
