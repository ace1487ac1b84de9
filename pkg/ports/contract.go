package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/screener/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunRecordStoreContract runs a suite of tests to verify that a RecordStore
// implementation adheres to the interface contract. The store must start empty.
func RunRecordStoreContract(t *testing.T, store RecordStore) {
	ctx := context.Background()
	created := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

	job := domain.Job{ID: "job0001", Title: "Frontend Developer", Description: "React", Requirements: "3 years", CreatedAt: created}
	other := domain.Job{ID: "job0002", Title: "Backend Developer", CreatedAt: created.Add(time.Hour)}
	cand := domain.Candidate{ID: "cand001", Name: "John Doe", Phone: "+1234567890", CurrentCTC: "8 LPA", NoticePeriod: "30 days"}

	t.Run("Jobs", func(t *testing.T) {
		require.NoError(t, store.SaveJob(ctx, job))
		require.NoError(t, store.SaveJob(ctx, other))

		got, err := store.GetJob(ctx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, job.Title, got.Title)
		assert.Equal(t, job.Requirements, got.Requirements)
		assert.True(t, job.CreatedAt.Equal(got.CreatedAt))

		all, err := store.ListJobs(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		updated := job
		updated.Title = "Senior Frontend Developer"
		require.NoError(t, store.SaveJob(ctx, updated))
		got, err = store.GetJob(ctx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, "Senior Frontend Developer", got.Title)

		all, err = store.ListJobs(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2, "upsert must not duplicate")
	})

	t.Run("Candidates", func(t *testing.T) {
		require.NoError(t, store.SaveCandidate(ctx, cand))

		got, err := store.GetCandidate(ctx, cand.ID)
		require.NoError(t, err)
		assert.Equal(t, cand, got)

		all, err := store.ListCandidates(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("Appointments", func(t *testing.T) {
		a1 := domain.Appointment{ID: "appt001", JobID: job.ID, CandidateID: cand.ID, DateTime: created.Add(24 * time.Hour), Status: domain.AppointmentScheduled}
		a2 := domain.Appointment{ID: "appt002", JobID: other.ID, CandidateID: cand.ID, DateTime: created.Add(48 * time.Hour), Status: domain.AppointmentCancelled}
		require.NoError(t, store.SaveAppointment(ctx, a1))
		require.NoError(t, store.SaveAppointment(ctx, a2))

		got, err := store.GetAppointment(ctx, a1.ID)
		require.NoError(t, err)
		assert.Equal(t, a1.JobID, got.JobID)
		assert.Equal(t, a1.Status, got.Status)
		assert.True(t, a1.DateTime.Equal(got.DateTime))

		byJob, err := store.AppointmentsByJob(ctx, job.ID)
		require.NoError(t, err)
		require.Len(t, byJob, 1)
		assert.Equal(t, a1.ID, byJob[0].ID)

		byCandidate, err := store.AppointmentsByCandidate(ctx, cand.ID)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{a1.ID, a2.ID}, []string{byCandidate[0].ID, byCandidate[1].ID})

		// Moving an appointment to another job must update the job index.
		a1.JobID = other.ID
		a1.Status = domain.AppointmentCompleted
		require.NoError(t, store.SaveAppointment(ctx, a1))
		byJob, err = store.AppointmentsByJob(ctx, job.ID)
		require.NoError(t, err)
		assert.Empty(t, byJob)
		byJob, err = store.AppointmentsByJob(ctx, other.ID)
		require.NoError(t, err)
		assert.Len(t, byJob, 2)

		none, err := store.AppointmentsByCandidate(ctx, "nobody")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("Not Found", func(t *testing.T) {
		_, err := store.GetJob(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		_, err = store.GetCandidate(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		_, err = store.GetAppointment(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)

		assert.ErrorIs(t, store.DeleteJob(ctx, "missing"), domain.ErrNotFound)
		assert.ErrorIs(t, store.DeleteCandidate(ctx, "missing"), domain.ErrNotFound)
		assert.ErrorIs(t, store.DeleteAppointment(ctx, "missing"), domain.ErrNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.DeleteAppointment(ctx, "appt002"))
		_, err := store.GetAppointment(ctx, "appt002")
		assert.ErrorIs(t, err, domain.ErrNotFound)

		byCandidate, err := store.AppointmentsByCandidate(ctx, cand.ID)
		require.NoError(t, err)
		assert.Len(t, byCandidate, 1)

		require.NoError(t, store.DeleteJob(ctx, other.ID))
		_, err = store.GetJob(ctx, other.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		require.NoError(t, store.DeleteCandidate(ctx, cand.ID))
		all, err := store.ListCandidates(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}
