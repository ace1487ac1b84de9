package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/aretw0/screener/pkg/adapters/memory"
	"github.com/aretw0/screener/pkg/domain"
)

// DefaultPath is where records live when no path is configured.
var DefaultPath = filepath.Join(".screener", "records.json")

// Store implements ports.RecordStore on a single JSON document.
// Reads are served from memory; every mutation rewrites the file atomically.
type Store struct {
	path string
	mu   sync.Mutex
	mem  *memory.Store
}

// Open loads the document at path, starting empty if it does not exist yet.
func Open(path string) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Store{path: path, mem: memory.NewStore()}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read records file: %w", err)
	}

	var snap memory.Snapshot
	if len(data) > 0 {
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("failed to unmarshal records file: %w", err)
		}
	}
	return &Store{path: path, mem: memory.NewStoreFrom(snap)}, nil
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// mutate applies fn to the in-memory copy and persists the result.
func (s *Store) mutate(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(); err != nil {
		return err
	}
	return s.flush()
}

// flush writes to a temporary file in the same directory, fsyncs it and
// renames it over the destination.
func (s *Store) flush() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to ensure records directory: %w", err)
	}

	data, err := json.MarshalIndent(s.mem.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, "tmp-records-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// Windows refuses to rename over an existing file.
	if _, err := os.Stat(s.path); err == nil {
		if err := os.Remove(s.path); err != nil {
			return fmt.Errorf("failed to replace records file: %w", err)
		}
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

func (s *Store) SaveJob(ctx context.Context, job domain.Job) error {
	return s.mutate(func() error { return s.mem.SaveJob(ctx, job) })
}

func (s *Store) GetJob(ctx context.Context, id string) (domain.Job, error) {
	return s.mem.GetJob(ctx, id)
}

func (s *Store) ListJobs(ctx context.Context) ([]domain.Job, error) {
	return s.mem.ListJobs(ctx)
}

func (s *Store) DeleteJob(ctx context.Context, id string) error {
	return s.mutate(func() error { return s.mem.DeleteJob(ctx, id) })
}

func (s *Store) SaveCandidate(ctx context.Context, candidate domain.Candidate) error {
	return s.mutate(func() error { return s.mem.SaveCandidate(ctx, candidate) })
}

func (s *Store) GetCandidate(ctx context.Context, id string) (domain.Candidate, error) {
	return s.mem.GetCandidate(ctx, id)
}

func (s *Store) ListCandidates(ctx context.Context) ([]domain.Candidate, error) {
	return s.mem.ListCandidates(ctx)
}

func (s *Store) DeleteCandidate(ctx context.Context, id string) error {
	return s.mutate(func() error { return s.mem.DeleteCandidate(ctx, id) })
}

func (s *Store) SaveAppointment(ctx context.Context, appointment domain.Appointment) error {
	return s.mutate(func() error { return s.mem.SaveAppointment(ctx, appointment) })
}

func (s *Store) GetAppointment(ctx context.Context, id string) (domain.Appointment, error) {
	return s.mem.GetAppointment(ctx, id)
}

func (s *Store) ListAppointments(ctx context.Context) ([]domain.Appointment, error) {
	return s.mem.ListAppointments(ctx)
}

func (s *Store) DeleteAppointment(ctx context.Context, id string) error {
	return s.mutate(func() error { return s.mem.DeleteAppointment(ctx, id) })
}

func (s *Store) AppointmentsByJob(ctx context.Context, jobID string) ([]domain.Appointment, error) {
	return s.mem.AppointmentsByJob(ctx, jobID)
}

func (s *Store) AppointmentsByCandidate(ctx context.Context, candidateID string) ([]domain.Appointment, error) {
	return s.mem.AppointmentsByCandidate(ctx, candidateID)
}
