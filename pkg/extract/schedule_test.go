package extract

import (
	"testing"
	"time"

	"github.com/aretw0/screener/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Thursday.
var today = time.Date(2026, time.October, 15, 9, 30, 0, 0, time.UTC)

func TestInterviewTime(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"afternoon", "Monday afternoon works", time.Date(2026, 10, 19, 14, 0, 0, 0, time.UTC)},
		{"default hour", "Friday morning", time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)},
		{"evening", "tuesday evening", time.Date(2026, 10, 20, 17, 0, 0, 0, time.UTC)},
		{"same weekday rolls a week", "Thursday is fine", time.Date(2026, 10, 22, 10, 0, 0, 0, time.UTC)},
		{"weekend", "Saturday", time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)},
		{"explicit pm", "Wednesday at 3pm", time.Date(2026, 10, 21, 15, 0, 0, 0, time.UTC)},
		{"explicit minutes", "Monday 11:30 am", time.Date(2026, 10, 19, 11, 30, 0, 0, time.UTC)},
		{"explicit overrides afternoon", "Monday afternoon at 4:15 PM", time.Date(2026, 10, 19, 16, 15, 0, 0, time.UTC)},
		{"12pm stays noon", "Friday 12 pm", time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)},
		{"first weekday wins", "Friday or maybe Monday", time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)},
		{"invalid hour ignored", "Monday at 45", time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := InterviewTime(tc.input, today)
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestInterviewDate(t *testing.T) {
	assert.Equal(t, "Monday, October 19, 2026 at 2:00 PM", InterviewDate("Monday afternoon works", today))
	assert.Equal(t, domain.Unclear, InterviewDate("whenever suits you", today))
	assert.Equal(t, domain.Unclear, InterviewDate("next week", today))
}

func TestInterviewTime_MonthRollover(t *testing.T) {
	endOfMonth := time.Date(2026, time.October, 30, 8, 0, 0, 0, time.UTC) // Friday

	got, ok := InterviewTime("Monday", endOfMonth)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, time.November, 2, 10, 0, 0, 0, time.UTC), got)
}
