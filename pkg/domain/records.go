package domain

import "time"

// Job is an open role candidates are screened for.
type Job struct {
	ID           string    `json:"id" yaml:"id"`
	Title        string    `json:"title" yaml:"title" validate:"required"`
	Description  string    `json:"description" yaml:"description"`
	Requirements string    `json:"requirements" yaml:"requirements"`
	CreatedAt    time.Time `json:"createdAt" yaml:"createdAt"`
}

// Context returns the dialogue job context for a given company.
func (j Job) Context(company string) JobContext {
	return JobContext{Title: j.Title, Company: company}
}

// Candidate is a person being screened. Optional fields stay empty until known.
type Candidate struct {
	ID           string `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name" validate:"required"`
	Phone        string `json:"phone" yaml:"phone" validate:"required"`
	CurrentCTC   string `json:"currentCtc,omitempty" yaml:"currentCtc,omitempty"`
	ExpectedCTC  string `json:"expectedCtc,omitempty" yaml:"expectedCtc,omitempty"`
	NoticePeriod string `json:"noticePeriod,omitempty" yaml:"noticePeriod,omitempty"`
	Experience   string `json:"experience,omitempty" yaml:"experience,omitempty"`
}

// AppointmentStatus is the lifecycle of an interview slot.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentScheduled, AppointmentCompleted, AppointmentCancelled:
		return true
	}
	return false
}

// Appointment links a candidate to a job at a point in time.
type Appointment struct {
	ID          string            `json:"id" yaml:"id"`
	JobID       string            `json:"jobId" yaml:"jobId" validate:"required"`
	CandidateID string            `json:"candidateId" yaml:"candidateId" validate:"required"`
	DateTime    time.Time         `json:"dateTime" yaml:"dateTime" validate:"required"`
	Status      AppointmentStatus `json:"status" yaml:"status" validate:"required,oneof=scheduled completed cancelled"`
}
