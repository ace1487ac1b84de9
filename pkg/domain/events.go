package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventTurnAccepted  EventType = "turn_accepted"
	EventTurnClarified EventType = "turn_clarified"
	EventCompleted     EventType = "completed"
)

// TurnEvent describes one processed utterance.
type TurnEvent struct {
	Timestamp time.Time      `json:"timestamp"`
	Type      EventType      `json:"type"`
	Step      Step           `json:"step"`
	Extracted map[string]any `json:"extracted,omitempty"`
	Duration  time.Duration  `json:"duration"`
}

// FailureEvent describes a recognition failure seen by the controller.
type FailureEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Err       error     `json:"-"`
	Attempt   int       `json:"attempt"`
	Fatal     bool      `json:"fatal"`
}

// LifecycleHooks defines callbacks for conversation observability.
// Any field may be nil.
type LifecycleHooks struct {
	OnTurn               func(context.Context, *TurnEvent)
	OnComplete           func(context.Context, *TurnEvent)
	OnRecognitionFailure func(context.Context, *FailureEvent)
}
