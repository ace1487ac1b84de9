package memory

import (
	"context"
	"sync"

	"github.com/aretw0/screener/pkg/domain"
)

// Snapshot is the full content of a store, in a form suitable for serialization.
type Snapshot struct {
	Jobs         []domain.Job         `json:"jobs"`
	Candidates   []domain.Candidate   `json:"candidates"`
	Appointments []domain.Appointment `json:"appointments"`
}

// Store implements ports.RecordStore in memory.
// Safe for concurrent use.
type Store struct {
	mu           sync.RWMutex
	jobs         map[string]domain.Job
	candidates   map[string]domain.Candidate
	appointments map[string]domain.Appointment
}

// NewStore creates a new empty in-memory store.
func NewStore() *Store {
	return &Store{
		jobs:         make(map[string]domain.Job),
		candidates:   make(map[string]domain.Candidate),
		appointments: make(map[string]domain.Appointment),
	}
}

// NewStoreFrom creates a store preloaded with snap.
func NewStoreFrom(snap Snapshot) *Store {
	s := NewStore()
	for _, j := range snap.Jobs {
		s.jobs[j.ID] = j
	}
	for _, c := range snap.Candidates {
		s.candidates[c.ID] = c
	}
	for _, a := range snap.Appointments {
		s.appointments[a.ID] = a
	}
	return s
}

// Snapshot copies the current content.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Jobs:         values(s.jobs, nil),
		Candidates:   values(s.candidates, nil),
		Appointments: values(s.appointments, nil),
	}
}

func (s *Store) SaveJob(ctx context.Context, job domain.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
	return nil
}

func (s *Store) GetJob(ctx context.Context, id string) (domain.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return get(s.jobs, id)
}

func (s *Store) ListJobs(ctx context.Context) ([]domain.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return values(s.jobs, nil), nil
}

func (s *Store) DeleteJob(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return remove(s.jobs, id)
}

func (s *Store) SaveCandidate(ctx context.Context, candidate domain.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates[candidate.ID] = candidate
	return nil
}

func (s *Store) GetCandidate(ctx context.Context, id string) (domain.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return get(s.candidates, id)
}

func (s *Store) ListCandidates(ctx context.Context) ([]domain.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return values(s.candidates, nil), nil
}

func (s *Store) DeleteCandidate(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return remove(s.candidates, id)
}

func (s *Store) SaveAppointment(ctx context.Context, appointment domain.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appointments[appointment.ID] = appointment
	return nil
}

func (s *Store) GetAppointment(ctx context.Context, id string) (domain.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return get(s.appointments, id)
}

func (s *Store) ListAppointments(ctx context.Context) ([]domain.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return values(s.appointments, nil), nil
}

func (s *Store) DeleteAppointment(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return remove(s.appointments, id)
}

func (s *Store) AppointmentsByJob(ctx context.Context, jobID string) ([]domain.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return values(s.appointments, func(a domain.Appointment) bool { return a.JobID == jobID }), nil
}

func (s *Store) AppointmentsByCandidate(ctx context.Context, candidateID string) ([]domain.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return values(s.appointments, func(a domain.Appointment) bool { return a.CandidateID == candidateID }), nil
}

func get[T any](rows map[string]T, id string) (T, error) {
	row, ok := rows[id]
	if !ok {
		var zero T
		return zero, domain.ErrNotFound
	}
	return row, nil
}

func remove[T any](rows map[string]T, id string) error {
	if _, ok := rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(rows, id)
	return nil
}

// values copies rows out of the map; keep may be nil to select all.
func values[T any](rows map[string]T, keep func(T) bool) []T {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if keep == nil || keep(row) {
			out = append(out, row)
		}
	}
	return out
}
