// Package middleware wraps a ports.RecordStore with cross-cutting behavior.
//
// The encryption middleware seals the candidate fields that identify or
// price a person (phone and compensation) so they are unreadable in the
// JSON file, Redis or Postgres:
//
//	mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})
//	store = middleware.Chain(store, mw)
package middleware
