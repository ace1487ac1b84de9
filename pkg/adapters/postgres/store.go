package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/screener/pkg/domain"

	_ "github.com/lib/pq"
)

// Store implements ports.RecordStore on PostgreSQL.
type Store struct {
	db  *sql.DB
	log *slog.Logger
}

// Open connects with the lib/pq driver and makes sure the schema exists.
func Open(ctx context.Context, dsn string, log *slog.Logger) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	store := New(db, log)
	if err := store.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// New wraps an existing connection pool.
func New(db *sql.DB, log *slog.Logger) *Store {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{db: db, log: log}
}

// Migrate creates the tables if they are missing.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// DB exposes the underlying pool.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) SaveJob(ctx context.Context, job domain.Job) error {
	const query = `
		INSERT INTO jobs (id, title, description, requirements, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			requirements = EXCLUDED.requirements,
			created_at = EXCLUDED.created_at
	`
	if _, err := s.db.ExecContext(ctx, query, job.ID, job.Title, job.Description, job.Requirements, job.CreatedAt); err != nil {
		s.log.Error("failed to save job", slog.String("job_id", job.ID), slog.Any("error", err))
		return fmt.Errorf("upsert job: %w", err)
	}
	return nil
}

func (s *Store) GetJob(ctx context.Context, id string) (domain.Job, error) {
	const query = `SELECT id, title, description, requirements, created_at FROM jobs WHERE id = $1`
	job, err := scanJob(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return domain.Job{}, notFound(err, "select job")
	}
	return job, nil
}

func (s *Store) ListJobs(ctx context.Context) ([]domain.Job, error) {
	const query = `SELECT id, title, description, requirements, created_at FROM jobs ORDER BY created_at`
	return queryAll(ctx, s.db, "select jobs", scanJob, query)
}

func (s *Store) DeleteJob(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "jobs", id)
}

func (s *Store) SaveCandidate(ctx context.Context, c domain.Candidate) error {
	const query = `
		INSERT INTO candidates (id, name, phone, current_ctc, expected_ctc, notice_period, experience)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			phone = EXCLUDED.phone,
			current_ctc = EXCLUDED.current_ctc,
			expected_ctc = EXCLUDED.expected_ctc,
			notice_period = EXCLUDED.notice_period,
			experience = EXCLUDED.experience
	`
	if _, err := s.db.ExecContext(ctx, query, c.ID, c.Name, c.Phone, c.CurrentCTC, c.ExpectedCTC, c.NoticePeriod, c.Experience); err != nil {
		s.log.Error("failed to save candidate", slog.String("candidate_id", c.ID), slog.Any("error", err))
		return fmt.Errorf("upsert candidate: %w", err)
	}
	return nil
}

func (s *Store) GetCandidate(ctx context.Context, id string) (domain.Candidate, error) {
	const query = `SELECT id, name, phone, current_ctc, expected_ctc, notice_period, experience FROM candidates WHERE id = $1`
	c, err := scanCandidate(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return domain.Candidate{}, notFound(err, "select candidate")
	}
	return c, nil
}

func (s *Store) ListCandidates(ctx context.Context) ([]domain.Candidate, error) {
	const query = `SELECT id, name, phone, current_ctc, expected_ctc, notice_period, experience FROM candidates ORDER BY name`
	return queryAll(ctx, s.db, "select candidates", scanCandidate, query)
}

func (s *Store) DeleteCandidate(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "candidates", id)
}

func (s *Store) SaveAppointment(ctx context.Context, a domain.Appointment) error {
	const query = `
		INSERT INTO appointments (id, job_id, candidate_id, date_time, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			job_id = EXCLUDED.job_id,
			candidate_id = EXCLUDED.candidate_id,
			date_time = EXCLUDED.date_time,
			status = EXCLUDED.status
	`
	if _, err := s.db.ExecContext(ctx, query, a.ID, a.JobID, a.CandidateID, a.DateTime, string(a.Status)); err != nil {
		s.log.Error("failed to save appointment", slog.String("appointment_id", a.ID), slog.Any("error", err))
		return fmt.Errorf("upsert appointment: %w", err)
	}
	return nil
}

const appointmentColumns = `id, job_id, candidate_id, date_time, status`

func (s *Store) GetAppointment(ctx context.Context, id string) (domain.Appointment, error) {
	a, err := scanAppointment(s.db.QueryRowContext(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id))
	if err != nil {
		return domain.Appointment{}, notFound(err, "select appointment")
	}
	return a, nil
}

func (s *Store) ListAppointments(ctx context.Context) ([]domain.Appointment, error) {
	return queryAll(ctx, s.db, "select appointments", scanAppointment, `SELECT `+appointmentColumns+` FROM appointments ORDER BY date_time`)
}

func (s *Store) DeleteAppointment(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "appointments", id)
}

func (s *Store) AppointmentsByJob(ctx context.Context, jobID string) ([]domain.Appointment, error) {
	return queryAll(ctx, s.db, "select appointments by job", scanAppointment,
		`SELECT `+appointmentColumns+` FROM appointments WHERE job_id = $1 ORDER BY date_time`, jobID)
}

func (s *Store) AppointmentsByCandidate(ctx context.Context, candidateID string) ([]domain.Appointment, error) {
	return queryAll(ctx, s.db, "select appointments by candidate", scanAppointment,
		`SELECT `+appointmentColumns+` FROM appointments WHERE candidate_id = $1 ORDER BY date_time`, candidateID)
}

// deleteByID only ever receives one of the fixed table names above.
func (s *Store) deleteByID(ctx context.Context, table, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanJob(row scanner) (domain.Job, error) {
	var j domain.Job
	err := row.Scan(&j.ID, &j.Title, &j.Description, &j.Requirements, &j.CreatedAt)
	return j, err
}

func scanCandidate(row scanner) (domain.Candidate, error) {
	var c domain.Candidate
	err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.CurrentCTC, &c.ExpectedCTC, &c.NoticePeriod, &c.Experience)
	return c, err
}

func scanAppointment(row scanner) (domain.Appointment, error) {
	var a domain.Appointment
	var status string
	err := row.Scan(&a.ID, &a.JobID, &a.CandidateID, &a.DateTime, &status)
	a.Status = domain.AppointmentStatus(status)
	return a, err
}

func queryAll[T any](ctx context.Context, db *sql.DB, op string, scan func(scanner) (T, error), query string, args ...any) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		record, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

func notFound(err error, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
