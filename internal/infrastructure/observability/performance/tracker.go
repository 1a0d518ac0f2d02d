package performance

import (
	"sync"
	"time"

	"github.com/mwdesignstudio/leadpulse-go/internal/infrastructure/observability/logging"
)

// Tracker collects completed operation markers and flags slow operations.
type Tracker struct {
	markers    []*Marker
	maxMarkers int
	threshold  time.Duration
	logger     *logging.ChanneledLogger
	mu         sync.RWMutex
}

// TrackerConfig contains configuration options for the performance tracker.
type TrackerConfig struct {
	MaxMarkers             int           `json:"maxMarkers"`
	SlowOperationThreshold time.Duration `json:"slowOperationThreshold"`
}

// DefaultTrackerConfig returns a sensible default configuration.
func DefaultTrackerConfig() *TrackerConfig {
	return &TrackerConfig{
		MaxMarkers:             1000,
		SlowOperationThreshold: time.Second,
	}
}

// NewTracker creates a performance tracker. Logger may be nil in tests.
func NewTracker(config *TrackerConfig, logger *logging.ChanneledLogger) *Tracker {
	if config == nil {
		config = DefaultTrackerConfig()
	}
	return &Tracker{
		markers:    make([]*Marker, 0, config.MaxMarkers),
		maxMarkers: config.MaxMarkers,
		threshold:  config.SlowOperationThreshold,
		logger:     logger,
	}
}

// StartOperation begins tracking a named operation.
func (t *Tracker) StartOperation(operation string) *Marker {
	return &Marker{
		Operation: operation,
		StartTime: time.Now(),
		tracker:   t,
	}
}

// record stores a completed marker, evicting the oldest past capacity.
func (t *Tracker) record(m *Marker) {
	t.mu.Lock()
	t.markers = append(t.markers, m)
	if len(t.markers) > t.maxMarkers {
		t.markers = t.markers[len(t.markers)-t.maxMarkers:]
	}
	t.mu.Unlock()

	if t.logger != nil && m.Duration > t.threshold {
		t.logger.Alert().Warn("Slow operation",
			"operation", m.Operation,
			"duration", m.Duration.String(),
			"success", m.Success,
		)
	}
}

// RecentMarkers returns up to n most recent completed markers, newest last.
func (t *Tracker) RecentMarkers(n int) []*Marker {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if n <= 0 || n > len(t.markers) {
		n = len(t.markers)
	}
	out := make([]*Marker, n)
	copy(out, t.markers[len(t.markers)-n:])
	return out
}
