package domain

import (
	"fmt"
	"maps"
	"slices"
)

// Unclear is the value an extractor reports when nothing in the utterance matched.
const Unclear = "unclear"

// Keys of DialogueState.CollectedData.
const (
	FieldInterested    = "interested"
	FieldNoticePeriod  = "noticePeriod"
	FieldCurrentCTC    = "currentCtc"
	FieldExpectedCTC   = "expectedCtc"
	FieldInterviewDate = "interviewDate"
	FieldConfirmed     = "confirmed"
)

// Step indexes the fixed question sequence.
type Step int

const (
	StepInterest Step = iota
	StepNoticePeriod
	StepCompensation
	StepAvailability
	StepConfirmation
)

// QuestionCount is the number of fixed questions asked before the confirmation turn.
const QuestionCount = int(StepConfirmation)

func (s Step) String() string {
	switch s {
	case StepInterest:
		return "interest"
	case StepNoticePeriod:
		return "notice_period"
	case StepCompensation:
		return "compensation"
	case StepAvailability:
		return "availability"
	case StepConfirmation:
		return "confirmation"
	}
	if s > StepConfirmation {
		return "closed"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// ParseStep is the inverse of Step.String for the five question steps and "closed".
func ParseStep(name string) (Step, bool) {
	for s := StepInterest; s <= StepConfirmation+1; s++ {
		if s.String() == name {
			return s, true
		}
	}
	return 0, false
}

// Closed reports whether the step is past the confirmation turn.
func (s Step) Closed() bool {
	return s > StepConfirmation
}

// JobContext names the role a conversation screens for.
type JobContext struct {
	Title   string `json:"title" mapstructure:"title"`
	Company string `json:"company" mapstructure:"company"`
}

// Speaker tags a transcript line.
type Speaker string

const (
	SpeakerUser  Speaker = "User"
	SpeakerAgent Speaker = "Agent"
)

// Line formats a transcript entry as "<Speaker>: <text>".
func Line(speaker Speaker, text string) string {
	return string(speaker) + ": " + text
}

// DialogueState represents the current snapshot of one conversation.
type DialogueState struct {
	// CurrentStep only moves forward, one step per accepted answer.
	CurrentStep Step `json:"current_step"`

	// CollectedData accumulates extracted facts. Keys are overwritten, never removed.
	CollectedData map[string]any `json:"collected_data"`

	Job JobContext `json:"job"`

	// Transcript is append-only and never read by extraction.
	Transcript []string `json:"transcript"`
}

// NewDialogueState creates a clean state at the first question.
func NewDialogueState(job JobContext) *DialogueState {
	return &DialogueState{
		CurrentStep:   StepInterest,
		CollectedData: make(map[string]any),
		Job:           job,
		Transcript:    []string{},
	}
}

// Clone returns a copy that shares no mutable memory with s.
func (s *DialogueState) Clone() DialogueState {
	return DialogueState{
		CurrentStep:   s.CurrentStep,
		CollectedData: maps.Clone(s.CollectedData),
		Job:           s.Job,
		Transcript:    slices.Clone(s.Transcript),
	}
}
