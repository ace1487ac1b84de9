package records

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/screener/pkg/domain"
	"github.com/aretw0/screener/pkg/extract"
	"github.com/mitchellh/mapstructure"
)

// Outcome is the typed view of a finished conversation's collected data.
type Outcome struct {
	Interested    bool   `mapstructure:"interested"`
	NoticePeriod  string `mapstructure:"noticePeriod"`
	CurrentCTC    string `mapstructure:"currentCtc"`
	ExpectedCTC   string `mapstructure:"expectedCtc"`
	InterviewDate string `mapstructure:"interviewDate"`
	Confirmed     bool   `mapstructure:"confirmed"`
}

// OutcomeFrom decodes collected dialogue data. Unknown keys are ignored.
func OutcomeFrom(collected map[string]any) (Outcome, error) {
	var out Outcome
	if err := mapstructure.Decode(collected, &out); err != nil {
		return Outcome{}, fmt.Errorf("decode outcome: %w", err)
	}
	return out, nil
}

// Slot parses InterviewDate back into a time in loc.
func (o Outcome) Slot(loc *time.Location) (time.Time, bool) {
	if o.InterviewDate == "" || o.InterviewDate == domain.Unclear {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(extract.DateLayout, o.InterviewDate, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Schedulable reports whether the outcome should produce an appointment.
func (o Outcome) Schedulable() bool {
	return o.Interested && o.Confirmed
}

// ApplyOutcome copies the answers onto the candidate and, when the candidate
// was interested and confirmed a slot, schedules an appointment for job.
// It returns the appointment, or nil if none was created.
func (s *Service) ApplyOutcome(ctx context.Context, candidateID, jobID string, o Outcome) (*domain.Appointment, error) {
	if _, err := s.UpdateCandidate(ctx, candidateID, func(c *domain.Candidate) {
		setKnown(&c.NoticePeriod, o.NoticePeriod)
		setKnown(&c.CurrentCTC, o.CurrentCTC)
		setKnown(&c.ExpectedCTC, o.ExpectedCTC)
	}); err != nil {
		return nil, fmt.Errorf("update candidate %s: %w", candidateID, err)
	}

	if !o.Schedulable() {
		return nil, nil
	}
	slot, ok := o.Slot(s.clock().Location())
	if !ok {
		s.logger.Warn("confirmed interview date could not be parsed", "candidate_id", candidateID)
		return nil, nil
	}

	appt, err := s.CreateAppointment(ctx, domain.Appointment{
		JobID:       jobID,
		CandidateID: candidateID,
		DateTime:    slot,
		Status:      domain.AppointmentScheduled,
	})
	if err != nil {
		return nil, fmt.Errorf("schedule interview: %w", err)
	}
	return &appt, nil
}

func setKnown(dst *string, value string) {
	if value != "" && value != domain.Unclear {
		*dst = value
	}
}
