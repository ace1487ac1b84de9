package records

import (
	"context"
	"time"

	"github.com/aretw0/screener/pkg/domain"
)

// Seed inserts a sample job, candidate and appointment when the store has
// no jobs yet. It reports whether anything was written.
func (s *Service) Seed(ctx context.Context) (bool, error) {
	jobs, err := s.store.ListJobs(ctx)
	if err != nil {
		return false, err
	}
	if len(jobs) > 0 {
		return false, nil
	}

	job, err := s.CreateJob(ctx, domain.Job{
		Title:        "Frontend Developer",
		Description:  "We are looking for a skilled frontend developer to join our team.",
		Requirements: "React, TypeScript, 3+ years experience",
	})
	if err != nil {
		return false, err
	}

	candidate, err := s.CreateCandidate(ctx, domain.Candidate{
		Name:         "John Doe",
		Phone:        "+1234567890",
		CurrentCTC:   "8 LPA",
		ExpectedCTC:  "12 LPA",
		NoticePeriod: "30 days",
		Experience:   "3 years",
	})
	if err != nil {
		return false, err
	}

	now := s.clock()
	tomorrow := time.Date(now.Year(), now.Month(), now.Day()+1, 10, 0, 0, 0, now.Location())
	if _, err := s.CreateAppointment(ctx, domain.Appointment{
		JobID:       job.ID,
		CandidateID: candidate.ID,
		DateTime:    tomorrow,
		Status:      domain.AppointmentScheduled,
	}); err != nil {
		return false, err
	}

	s.logger.Info("sample records seeded")
	return true, nil
}
