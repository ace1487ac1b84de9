package ports

import (
	"context"

	"github.com/aretw0/screener/pkg/domain"
)

// RecordStore defines the persistence of back-office records.
// Save* methods upsert by ID. Get* and Delete* return domain.ErrNotFound for
// unknown IDs. List order is unspecified.
type RecordStore interface {
	SaveJob(ctx context.Context, job domain.Job) error
	GetJob(ctx context.Context, id string) (domain.Job, error)
	ListJobs(ctx context.Context) ([]domain.Job, error)
	DeleteJob(ctx context.Context, id string) error

	SaveCandidate(ctx context.Context, candidate domain.Candidate) error
	GetCandidate(ctx context.Context, id string) (domain.Candidate, error)
	ListCandidates(ctx context.Context) ([]domain.Candidate, error)
	DeleteCandidate(ctx context.Context, id string) error

	SaveAppointment(ctx context.Context, appointment domain.Appointment) error
	GetAppointment(ctx context.Context, id string) (domain.Appointment, error)
	ListAppointments(ctx context.Context) ([]domain.Appointment, error)
	DeleteAppointment(ctx context.Context, id string) error
	AppointmentsByJob(ctx context.Context, jobID string) ([]domain.Appointment, error)
	AppointmentsByCandidate(ctx context.Context, candidateID string) ([]domain.Appointment, error)
}
