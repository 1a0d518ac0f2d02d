package lead

import "time"

// Repository is the persistence contract for lead records. The analytics
// services only ever read full snapshots or created_at ranges; writes exist
// for the intake layer and seeding.
type Repository interface {
	// FindAll returns the complete snapshot of lead records.
	FindAll() ([]*Lead, error)

	// FindByCreatedRange returns leads whose created_at date (UTC) falls
	// inside the inclusive [start, end] window.
	FindByCreatedRange(start, end time.Time) ([]*Lead, error)

	// CountByStatus counts leads currently in the given pipeline stage.
	CountByStatus(status string) (int, error)

	// CountByCreatedRange counts leads created inside the inclusive window.
	CountByCreatedRange(start, end time.Time) (int, error)

	// CountByCreatedRangeAndStatus combines both filters.
	CountByCreatedRangeAndStatus(start, end time.Time, status string) (int, error)

	// Store inserts a new lead record.
	Store(l *Lead) error

	// UpdateStatus moves a lead to a new stage and stamps updated_at.
	UpdateStatus(id, status string, at time.Time) error
}
