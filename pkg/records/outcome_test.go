package records_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/screener/pkg/domain"
	"github.com/aretw0/screener/pkg/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collected() map[string]any {
	return map[string]any{
		domain.FieldInterested:    true,
		domain.FieldNoticePeriod:  "1 month",
		domain.FieldCurrentCTC:    "8 lakh",
		domain.FieldExpectedCTC:   domain.Unclear,
		domain.FieldInterviewDate: "Friday, October 16, 2026 at 10:00 AM",
		domain.FieldConfirmed:     true,
	}
}

func TestOutcomeFrom(t *testing.T) {
	o, err := records.OutcomeFrom(collected())
	require.NoError(t, err)

	assert.True(t, o.Interested)
	assert.True(t, o.Confirmed)
	assert.Equal(t, "1 month", o.NoticePeriod)

	slot, ok := o.Slot(time.UTC)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, time.October, 16, 10, 0, 0, 0, time.UTC), slot)

	_, err = records.OutcomeFrom(map[string]any{domain.FieldInterested: []int{1}})
	assert.Error(t, err)
}

func TestOutcome_Slot(t *testing.T) {
	_, ok := records.Outcome{InterviewDate: domain.Unclear}.Slot(time.UTC)
	assert.False(t, ok)
	_, ok = records.Outcome{InterviewDate: "next week"}.Slot(time.UTC)
	assert.False(t, ok)
}

func TestService_ApplyOutcome(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	job, err := svc.CreateJob(ctx, domain.Job{Title: "QA"})
	require.NoError(t, err)
	cand, err := svc.CreateCandidate(ctx, domain.Candidate{Name: "Ana", Phone: "555", ExpectedCTC: "15 lakh"})
	require.NoError(t, err)

	o, err := records.OutcomeFrom(collected())
	require.NoError(t, err)

	appt, err := svc.ApplyOutcome(ctx, cand.ID, job.ID, o)
	require.NoError(t, err)
	require.NotNil(t, appt)
	assert.Equal(t, domain.AppointmentScheduled, appt.Status)
	assert.Equal(t, job.ID, appt.JobID)

	updated, err := svc.Candidate(ctx, cand.ID)
	require.NoError(t, err)
	assert.Equal(t, "1 month", updated.NoticePeriod)
	assert.Equal(t, "8 lakh", updated.CurrentCTC)
	assert.Equal(t, "15 lakh", updated.ExpectedCTC, "unclear answers keep the stored value")
}

func TestService_ApplyOutcome_NotInterested(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	cand, err := svc.CreateCandidate(ctx, domain.Candidate{Name: "Ana", Phone: "555"})
	require.NoError(t, err)

	data := collected()
	data[domain.FieldInterested] = false
	o, err := records.OutcomeFrom(data)
	require.NoError(t, err)

	appt, err := svc.ApplyOutcome(ctx, cand.ID, "job", o)
	require.NoError(t, err)
	assert.Nil(t, appt)

	all, err := svc.Appointments(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestService_ApplyOutcome_UnknownCandidate(t *testing.T) {
	_, err := newService().ApplyOutcome(context.Background(), "missing", "job", records.Outcome{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
