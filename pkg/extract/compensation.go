package extract

import (
	"regexp"
	"strings"

	"github.com/aretw0/screener/pkg/domain"
)

var compensationPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)(?:\s*(k|lakhs|lakh|crores|crore|million))?\b`)

// Compensation holds the first two amounts of an answer, in the order spoken.
type Compensation struct {
	Current  string
	Expected string
}

// Fields returns the collected-data entries for the pair.
func (c Compensation) Fields() map[string]any {
	return map[string]any{
		domain.FieldCurrentCTC:  c.Current,
		domain.FieldExpectedCTC: c.Expected,
	}
}

// Unclear reports whether neither amount was found.
func (c Compensation) Unclear() bool {
	return c.Current == domain.Unclear && c.Expected == domain.Unclear
}

// ExtractCompensation assigns amounts positionally; a missing one is domain.Unclear.
func ExtractCompensation(text string) Compensation {
	amounts := make([]string, 0, 2)
	for _, m := range compensationPattern.FindAllStringSubmatch(text, 2) {
		amount := m[1]
		if m[2] != "" {
			unit := strings.ToLower(m[2])
			if unit == "k" {
				amount += unit
			} else {
				amount += " " + unit
			}
		}
		amounts = append(amounts, amount)
	}
	for len(amounts) < 2 {
		amounts = append(amounts, domain.Unclear)
	}
	return Compensation{Current: amounts[0], Expected: amounts[1]}
}
