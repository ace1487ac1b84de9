package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aretw0/screener/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

const (
	kindJob         = "job"
	kindCandidate   = "candidate"
	kindAppointment = "appointment"
)

// Store implements ports.RecordStore using Redis.
//
// Each record is a JSON string under <prefix><kind>:<id>. A set per kind
// indexes the IDs, and two extra sets per appointment index it by job and
// by candidate.
type Store struct {
	client *backend.Client
	prefix string
}

type Option func(*Store)

// WithPrefix sets the key prefix for records.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "screener:",
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) key(kind, id string) string {
	return s.prefix + kind + ":" + id
}

func (s *Store) indexKey(kind string) string {
	return s.prefix + kind + ":index"
}

func (s *Store) byJobKey(jobID string) string {
	return s.prefix + "appointment:by-job:" + jobID
}

func (s *Store) byCandidateKey(candidateID string) string {
	return s.prefix + "appointment:by-candidate:" + candidateID
}

func (s *Store) SaveJob(ctx context.Context, job domain.Job) error {
	return s.save(ctx, kindJob, job.ID, job)
}

func (s *Store) GetJob(ctx context.Context, id string) (domain.Job, error) {
	return load[domain.Job](ctx, s, kindJob, id)
}

func (s *Store) ListJobs(ctx context.Context) ([]domain.Job, error) {
	return loadSet[domain.Job](ctx, s, kindJob, s.indexKey(kindJob))
}

func (s *Store) DeleteJob(ctx context.Context, id string) error {
	return s.delete(ctx, kindJob, id)
}

func (s *Store) SaveCandidate(ctx context.Context, candidate domain.Candidate) error {
	return s.save(ctx, kindCandidate, candidate.ID, candidate)
}

func (s *Store) GetCandidate(ctx context.Context, id string) (domain.Candidate, error) {
	return load[domain.Candidate](ctx, s, kindCandidate, id)
}

func (s *Store) ListCandidates(ctx context.Context) ([]domain.Candidate, error) {
	return loadSet[domain.Candidate](ctx, s, kindCandidate, s.indexKey(kindCandidate))
}

func (s *Store) DeleteCandidate(ctx context.Context, id string) error {
	return s.delete(ctx, kindCandidate, id)
}

// SaveAppointment rewrites the secondary indexes under WATCH so a
// concurrent save of the same appointment cannot leave stale entries.
func (s *Store) SaveAppointment(ctx context.Context, appointment domain.Appointment) error {
	data, err := json.Marshal(appointment)
	if err != nil {
		return fmt.Errorf("failed to marshal appointment: %w", err)
	}
	key := s.key(kindAppointment, appointment.ID)

	err = s.client.Watch(ctx, func(tx *backend.Tx) error {
		previous, err := readJSON[domain.Appointment](ctx, tx, key)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		found := err == nil

		_, err = tx.TxPipelined(ctx, func(pipe backend.Pipeliner) error {
			if found {
				pipe.SRem(ctx, s.byJobKey(previous.JobID), appointment.ID)
				pipe.SRem(ctx, s.byCandidateKey(previous.CandidateID), appointment.ID)
			}
			pipe.Set(ctx, key, data, 0)
			pipe.SAdd(ctx, s.indexKey(kindAppointment), appointment.ID)
			pipe.SAdd(ctx, s.byJobKey(appointment.JobID), appointment.ID)
			pipe.SAdd(ctx, s.byCandidateKey(appointment.CandidateID), appointment.ID)
			return nil
		})
		return err
	}, key)
	if err != nil {
		return fmt.Errorf("failed to save appointment to redis: %w", err)
	}
	return nil
}

func (s *Store) GetAppointment(ctx context.Context, id string) (domain.Appointment, error) {
	return load[domain.Appointment](ctx, s, kindAppointment, id)
}

func (s *Store) ListAppointments(ctx context.Context) ([]domain.Appointment, error) {
	return loadSet[domain.Appointment](ctx, s, kindAppointment, s.indexKey(kindAppointment))
}

func (s *Store) DeleteAppointment(ctx context.Context, id string) error {
	key := s.key(kindAppointment, id)
	return s.client.Watch(ctx, func(tx *backend.Tx) error {
		previous, err := readJSON[domain.Appointment](ctx, tx, key)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe backend.Pipeliner) error {
			pipe.Del(ctx, key)
			pipe.SRem(ctx, s.indexKey(kindAppointment), id)
			pipe.SRem(ctx, s.byJobKey(previous.JobID), id)
			pipe.SRem(ctx, s.byCandidateKey(previous.CandidateID), id)
			return nil
		})
		return err
	}, key)
}

func (s *Store) AppointmentsByJob(ctx context.Context, jobID string) ([]domain.Appointment, error) {
	return loadSet[domain.Appointment](ctx, s, kindAppointment, s.byJobKey(jobID))
}

func (s *Store) AppointmentsByCandidate(ctx context.Context, candidateID string) ([]domain.Appointment, error) {
	return loadSet[domain.Appointment](ctx, s, kindAppointment, s.byCandidateKey(candidateID))
}

func (s *Store) save(ctx context.Context, kind, id string, record any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", kind, err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(kind, id), data, 0)
	pipe.SAdd(ctx, s.indexKey(kind), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save %s to redis: %w", kind, err)
	}
	return nil
}

func (s *Store) delete(ctx context.Context, kind, id string) error {
	pipe := s.client.TxPipeline()
	del := pipe.Del(ctx, s.key(kind, id))
	pipe.SRem(ctx, s.indexKey(kind), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete %s from redis: %w", kind, err)
	}
	if del.Val() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func load[T any](ctx context.Context, s *Store, kind, id string) (T, error) {
	return readJSON[T](ctx, s.client, s.key(kind, id))
}

// loadSet resolves every ID in an index set. IDs whose record vanished are skipped.
func loadSet[T any](ctx context.Context, s *Store, kind, setKey string) ([]T, error) {
	ids, err := s.client.SMembers(ctx, setKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s index: %w", kind, err)
	}
	out := make([]T, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.key(kind, id)
	}
	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s records: %w", kind, err)
	}
	for _, v := range vals {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var record T
		if err := json.Unmarshal([]byte(raw), &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s: %w", kind, err)
		}
		out = append(out, record)
	}
	return out, nil
}

func readJSON[T any](ctx context.Context, c backend.Cmdable, key string) (T, error) {
	var record T
	val, err := c.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return record, domain.ErrNotFound
		}
		return record, fmt.Errorf("failed to get from redis: %w", err)
	}
	if err := json.Unmarshal([]byte(val), &record); err != nil {
		return record, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return record, nil
}
