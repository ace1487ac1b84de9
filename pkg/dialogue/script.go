package dialogue

import (
	"fmt"

	"github.com/aretw0/screener/pkg/domain"
)

const (
	// ClarificationLine is recorded when an answer could not be understood.
	ClarificationLine = "I'm sorry, I didn't quite catch that."

	// ClosingMessage is the prompt once the call is over.
	ClosingMessage = "Thank you for your time. We'll be in touch soon!"

	fallbackDate = "the requested date"
)

// Questions returns the fixed question sequence for a job.
func Questions(job domain.JobContext) []string {
	return []string{
		fmt.Sprintf("Hello, this is %s regarding the %s opportunity. Are you interested in this role?", job.Company, job.Title),
		"Great! What is your current notice period?",
		"Can you share your current and expected CTC (Cost to Company)?",
		"When would you be available for an interview next week?",
	}
}

// ConfirmationPrompt reads the proposed slot back to the candidate.
func ConfirmationPrompt(collected map[string]any) string {
	date, _ := collected[domain.FieldInterviewDate].(string)
	if date == "" {
		date = fallbackDate
	}
	return fmt.Sprintf("We've scheduled your interview on %s. Is that correct?", date)
}

// Fields lists the collected keys a step writes.
func Fields(step domain.Step) []string {
	switch step {
	case domain.StepInterest:
		return []string{domain.FieldInterested}
	case domain.StepNoticePeriod:
		return []string{domain.FieldNoticePeriod}
	case domain.StepCompensation:
		return []string{domain.FieldCurrentCTC, domain.FieldExpectedCTC}
	case domain.StepAvailability:
		return []string{domain.FieldInterviewDate}
	case domain.StepConfirmation:
		return []string{domain.FieldConfirmed}
	}
	return nil
}

// Clarifies reports whether an unclear answer at step repeats the question
// instead of moving on.
func Clarifies(step domain.Step) bool {
	switch step {
	case domain.StepNoticePeriod, domain.StepCompensation, domain.StepAvailability:
		return true
	}
	return false
}
