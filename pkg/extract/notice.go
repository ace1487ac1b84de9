package extract

import (
	"regexp"
	"strings"

	"github.com/aretw0/screener/pkg/domain"
)

// Longer unit spellings come first so "weeks" is not cut to "week".
var noticePattern = regexp.MustCompile(`(?i)(\d+)\s*(days|day|weeks|week|months|month)\b`)

// NoticePeriod returns "<n> <unit>" for the first duration in text, or domain.Unclear.
func NoticePeriod(text string) string {
	m := noticePattern.FindStringSubmatch(text)
	if m == nil {
		return domain.Unclear
	}
	return m[1] + " " + strings.ToLower(m[2])
}
