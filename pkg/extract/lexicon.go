package extract

import (
	"regexp"
	"strings"
)

// Lexicon is a pair of positive and negative cue lists with a fallback verdict.
type Lexicon struct {
	positive []*regexp.Regexp
	negative []*regexp.Regexp
	fallback bool
}

// NewLexicon compiles whole-word, case-insensitive matchers for the cues.
func NewLexicon(positive, negative []string, fallback bool) *Lexicon {
	return &Lexicon{
		positive: compileCues(positive),
		negative: compileCues(negative),
		fallback: fallback,
	}
}

func compileCues(cues []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(cues))
	for _, cue := range cues {
		out = append(out, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(cue)+`\b`))
	}
	return out
}

// Judge scans positive cues first, then negative ones, then falls back.
func (l *Lexicon) Judge(text string) bool {
	text = normalizeApostrophes(text)
	if anyMatch(l.positive, text) {
		return true
	}
	if anyMatch(l.negative, text) {
		return false
	}
	return l.fallback
}

func anyMatch(patterns []*regexp.Regexp, text string) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// Recognizers often emit typographic apostrophes ("don’t").
func normalizeApostrophes(text string) string {
	return strings.NewReplacer("’", "'", "‘", "'").Replace(text)
}

var (
	interestLexicon = NewLexicon(
		[]string{"yes", "yeah", "sure", "interested", "definitely", "absolutely"},
		[]string{"no", "not", "don't", "isn't", "nope"},
		false,
	)

	// Ambiguous confirmations count as confirmed, unlike Interest.
	confirmationLexicon = NewLexicon(
		[]string{"yes", "yeah", "correct", "right", "sure", "ok"},
		[]string{"no", "not", "wrong", "incorrect", "change"},
		true,
	)
)

// Interest reports whether the candidate expressed interest in the role.
func Interest(text string) bool {
	return interestLexicon.Judge(text)
}

// Confirmation reports whether the candidate accepted the proposed slot.
func Confirmation(text string) bool {
	return confirmationLexicon.Judge(text)
}
