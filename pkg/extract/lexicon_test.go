package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterest(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"Yes, I am", true},
		{"yeah sounds good", true},
		{"I'm definitely INTERESTED", true},
		{"no thanks", false},
		{"Nope", false},
		{"I don't think so", false},
		{"I don’t think so", false},
		{"maybe possibly", false},
		{"I know the company", false},
		{"", false},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, Interest(tc.input))
		})
	}
}

func TestConfirmation(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"yes that's correct", true},
		{"OK", true},
		{"that's right", true},
		{"no, that is wrong", false},
		{"I'd like to change it", false},
		{"hmm I guess", true},
		{"I took a note", true},
		{"", true},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, Confirmation(tc.input))
		})
	}
}

func TestLexicon_PositiveWinsOverNegative(t *testing.T) {
	l := NewLexicon([]string{"go"}, []string{"stop"}, false)

	assert.True(t, l.Judge("stop, no wait, go"))
	assert.False(t, l.Judge("please stop"))
	assert.False(t, l.Judge("gone"))
}
