package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/screener/pkg/domain"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// It falls back to the raw markdown if no renderer can be built.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

var summaryFields = []struct {
	key   string
	label string
}{
	{domain.FieldInterested, "Interested"},
	{domain.FieldNoticePeriod, "Notice period"},
	{domain.FieldCurrentCTC, "Current CTC"},
	{domain.FieldExpectedCTC, "Expected CTC"},
	{domain.FieldInterviewDate, "Interview"},
	{domain.FieldConfirmed, "Confirmed"},
}

// Summary describes a finished screening as markdown.
func Summary(job domain.JobContext, candidate string, collected map[string]any, notes ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Screening summary\n\n")
	fmt.Fprintf(&b, "**%s** at %s", job.Title, job.Company)
	if candidate != "" {
		fmt.Fprintf(&b, " with %s", candidate)
	}
	b.WriteString("\n\n| Field | Answer |\n|---|---|\n")
	for _, f := range summaryFields {
		v, ok := collected[f.key]
		if !ok {
			v = "-"
		}
		fmt.Fprintf(&b, "| %s | %s |\n", f.label, formatValue(v))
	}
	for _, n := range notes {
		fmt.Fprintf(&b, "\n> %s\n", n)
	}
	return b.String()
}

func formatValue(v any) string {
	switch v := v.(type) {
	case bool:
		if v {
			return "yes"
		}
		return "no"
	case string:
		return v
	}
	return fmt.Sprint(v)
}
