// Package mvp holds the pieces every presenter shares: request tagging, progress
// pairing and error surfacing.
package mvp

import (
	"github.com/google/uuid"
	"weatherview.app/internal/ports"
)

// ProgressView toggles a busy indicator
type ProgressView interface {
	SetProgressBar(active bool)
}

// ErrorView is implemented by views that can display failures
type ErrorView interface {
	ShowError(err error)
}

// Request tags loads so only the latest one renders
type Request struct {
	current uuid.UUID
}

// Begin starts a new load and supersedes the previous one
func (r *Request) Begin() uuid.UUID {
	r.current = uuid.New()
	return r.current
}

// IsCurrent reports whether id belongs to the latest load
func (r *Request) IsCurrent(id uuid.UUID) bool {
	return id != uuid.Nil && id == r.current
}

// Fail logs err and shows it on views implementing ErrorView
func Fail(view interface{}, logger ports.Logger, operation string, err error) {
	logger.Error("Presenter operation failed",
		ports.F("operation", operation),
		ports.F("error", err.Error()))
	if ev, ok := view.(ErrorView); ok {
		ev.ShowError(err)
	}
}
