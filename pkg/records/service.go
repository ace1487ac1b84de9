package records

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/aretw0/screener/pkg/domain"
	"github.com/aretw0/screener/pkg/ports"
	"github.com/go-playground/validator/v10"
)

// Service wraps a RecordStore with the rules the store does not enforce.
type Service struct {
	store    ports.RecordStore
	validate *validator.Validate
	clock    func() time.Time
	logger   *slog.Logger
}

// Option defines a functional option for configuring the Service.
type Option func(*Service)

// WithClock sets the time source for CreatedAt stamps and seeded appointments.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a Service over store.
func NewService(store ports.RecordStore, opts ...Option) *Service {
	s := &Service{
		store:    store,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

func (s *Service) check(record any) error {
	if err := s.validate.Struct(record); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidRecord, err)
	}
	return nil
}

// CreateJob assigns an ID and creation time, then stores the job.
func (s *Service) CreateJob(ctx context.Context, job domain.Job) (domain.Job, error) {
	job.ID = NewID()
	job.CreatedAt = s.clock()
	if err := s.check(job); err != nil {
		return domain.Job{}, err
	}
	if err := s.store.SaveJob(ctx, job); err != nil {
		return domain.Job{}, err
	}
	s.logger.Info("job created", "job_id", job.ID)
	return job, nil
}

// UpdateJob loads a job, applies patch and stores the result. The ID and
// creation time cannot be changed.
func (s *Service) UpdateJob(ctx context.Context, id string, patch func(*domain.Job)) (domain.Job, error) {
	job, err := s.store.GetJob(ctx, id)
	if err != nil {
		return domain.Job{}, err
	}
	createdAt := job.CreatedAt
	patch(&job)
	job.ID, job.CreatedAt = id, createdAt
	if err := s.check(job); err != nil {
		return domain.Job{}, err
	}
	return job, s.store.SaveJob(ctx, job)
}

func (s *Service) Job(ctx context.Context, id string) (domain.Job, error) {
	return s.store.GetJob(ctx, id)
}

// Jobs lists jobs oldest first.
func (s *Service) Jobs(ctx context.Context) ([]domain.Job, error) {
	jobs, err := s.store.ListJobs(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(jobs, func(a, b domain.Job) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
	return jobs, nil
}

func (s *Service) DeleteJob(ctx context.Context, id string) error {
	return s.store.DeleteJob(ctx, id)
}

// CreateCandidate assigns an ID and stores the candidate.
func (s *Service) CreateCandidate(ctx context.Context, c domain.Candidate) (domain.Candidate, error) {
	c.ID = NewID()
	if err := s.check(c); err != nil {
		return domain.Candidate{}, err
	}
	if err := s.store.SaveCandidate(ctx, c); err != nil {
		return domain.Candidate{}, err
	}
	s.logger.Info("candidate created", "candidate_id", c.ID)
	return c, nil
}

// UpdateCandidate loads a candidate, applies patch and stores the result.
func (s *Service) UpdateCandidate(ctx context.Context, id string, patch func(*domain.Candidate)) (domain.Candidate, error) {
	c, err := s.store.GetCandidate(ctx, id)
	if err != nil {
		return domain.Candidate{}, err
	}
	patch(&c)
	c.ID = id
	if err := s.check(c); err != nil {
		return domain.Candidate{}, err
	}
	return c, s.store.SaveCandidate(ctx, c)
}

func (s *Service) Candidate(ctx context.Context, id string) (domain.Candidate, error) {
	return s.store.GetCandidate(ctx, id)
}

// Candidates lists candidates by name.
func (s *Service) Candidates(ctx context.Context) ([]domain.Candidate, error) {
	candidates, err := s.store.ListCandidates(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(candidates, func(a, b domain.Candidate) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return candidates, nil
}

func (s *Service) DeleteCandidate(ctx context.Context, id string) error {
	return s.store.DeleteCandidate(ctx, id)
}

// CreateAppointment assigns an ID and stores the appointment. An empty
// status defaults to scheduled.
func (s *Service) CreateAppointment(ctx context.Context, a domain.Appointment) (domain.Appointment, error) {
	a.ID = NewID()
	if a.Status == "" {
		a.Status = domain.AppointmentScheduled
	}
	if err := s.check(a); err != nil {
		return domain.Appointment{}, err
	}
	if err := s.store.SaveAppointment(ctx, a); err != nil {
		return domain.Appointment{}, err
	}
	s.logger.Info("appointment created", "appointment_id", a.ID, "job_id", a.JobID, "candidate_id", a.CandidateID)
	return a, nil
}

// UpdateAppointment loads an appointment, applies patch and stores the result.
func (s *Service) UpdateAppointment(ctx context.Context, id string, patch func(*domain.Appointment)) (domain.Appointment, error) {
	a, err := s.store.GetAppointment(ctx, id)
	if err != nil {
		return domain.Appointment{}, err
	}
	patch(&a)
	a.ID = id
	if err := s.check(a); err != nil {
		return domain.Appointment{}, err
	}
	return a, s.store.SaveAppointment(ctx, a)
}

func (s *Service) Appointment(ctx context.Context, id string) (domain.Appointment, error) {
	return s.store.GetAppointment(ctx, id)
}

// Appointments lists appointments by date.
func (s *Service) Appointments(ctx context.Context) ([]domain.Appointment, error) {
	return sortedAppointments(s.store.ListAppointments(ctx))
}

func (s *Service) AppointmentsForJob(ctx context.Context, jobID string) ([]domain.Appointment, error) {
	return sortedAppointments(s.store.AppointmentsByJob(ctx, jobID))
}

func (s *Service) AppointmentsForCandidate(ctx context.Context, candidateID string) ([]domain.Appointment, error) {
	return sortedAppointments(s.store.AppointmentsByCandidate(ctx, candidateID))
}

func (s *Service) DeleteAppointment(ctx context.Context, id string) error {
	return s.store.DeleteAppointment(ctx, id)
}

func sortedAppointments(list []domain.Appointment, err error) ([]domain.Appointment, error) {
	if err != nil {
		return nil, err
	}
	slices.SortFunc(list, func(a, b domain.Appointment) int {
		return cmp.Or(a.DateTime.Compare(b.DateTime), cmp.Compare(a.ID, b.ID))
	})
	return list, nil
}
