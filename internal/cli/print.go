package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/aretw0/screener/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by the record commands.
const (
	FormatTable = "table"
	FormatYAML  = "yaml"
)

const timeLayout = "2006-01-02 15:04"

// PrintYAML writes v as a YAML document.
func PrintYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// PrintJobs writes jobs in the requested format.
func PrintJobs(w io.Writer, format string, jobs []domain.Job) error {
	if format == FormatYAML {
		return PrintYAML(w, jobs)
	}
	return table(w, []string{"ID", "TITLE", "CREATED"}, len(jobs), func(i int) []any {
		j := jobs[i]
		return []any{j.ID, j.Title, j.CreatedAt.Format(timeLayout)}
	})
}

// PrintCandidates writes candidates in the requested format.
func PrintCandidates(w io.Writer, format string, candidates []domain.Candidate) error {
	if format == FormatYAML {
		return PrintYAML(w, candidates)
	}
	return table(w, []string{"ID", "NAME", "PHONE", "NOTICE", "CURRENT", "EXPECTED"}, len(candidates), func(i int) []any {
		c := candidates[i]
		return []any{c.ID, c.Name, c.Phone, dash(c.NoticePeriod), dash(c.CurrentCTC), dash(c.ExpectedCTC)}
	})
}

// PrintAppointments writes appointments in the requested format.
func PrintAppointments(w io.Writer, format string, appointments []domain.Appointment) error {
	if format == FormatYAML {
		return PrintYAML(w, appointments)
	}
	return table(w, []string{"ID", "JOB", "CANDIDATE", "WHEN", "STATUS"}, len(appointments), func(i int) []any {
		a := appointments[i]
		return []any{a.ID, a.JobID, a.CandidateID, a.DateTime.Format(timeLayout), a.Status}
	})
}

// ParseTime accepts RFC 3339 or "2006-01-02 15:04" in local time.
func ParseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(timeLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, want RFC 3339 or %q", s, timeLayout)
	}
	return t, nil
}

func table(w io.Writer, header []string, n int, row func(int) []any) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, h := range header {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, h)
	}
	fmt.Fprintln(tw)
	for i := range n {
		for j, cell := range row(i) {
			if j > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, cell)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
