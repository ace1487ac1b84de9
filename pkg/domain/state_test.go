package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStep(t *testing.T) {
	for s := StepInterest; s <= StepConfirmation+1; s++ {
		got, ok := ParseStep(s.String())
		assert.True(t, ok, s.String())
		assert.Equal(t, s, got)
	}

	_, ok := ParseStep("greeting")
	assert.False(t, ok)
	_, ok = ParseStep("")
	assert.False(t, ok)
}

func TestStep_Closed(t *testing.T) {
	assert.False(t, StepConfirmation.Closed())
	assert.True(t, (StepConfirmation + 1).Closed())
	assert.Equal(t, "closed", (StepConfirmation + 3).String())
	assert.Equal(t, "step(-1)", Step(-1).String())
}

func TestDialogueState_CloneIsIndependent(t *testing.T) {
	s := NewDialogueState(JobContext{Title: "QA", Company: "Acme"})
	s.CollectedData[FieldInterested] = true
	s.Transcript = append(s.Transcript, Line(SpeakerAgent, "hi"))

	c := s.Clone()
	c.CollectedData[FieldNoticePeriod] = "1 month"
	c.Transcript[0] = "changed"

	assert.NotContains(t, s.CollectedData, FieldNoticePeriod)
	assert.Equal(t, "Agent: hi", s.Transcript[0])
}
