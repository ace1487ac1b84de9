package domain

import "errors"

// ErrNotFound is returned when a record ID cannot be found in the store.
var ErrNotFound = errors.New("record not found")

// ErrInvalidRecord is returned when a record fails validation before being stored.
var ErrInvalidRecord = errors.New("invalid record")

// ErrConversationComplete is returned when an utterance arrives after the closing message.
var ErrConversationComplete = errors.New("conversation already complete")
