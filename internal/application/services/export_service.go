package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/mwdesignstudio/leadpulse-go/internal/domain/lead"
	"github.com/mwdesignstudio/leadpulse-go/internal/infrastructure/observability/logging"
	"github.com/mwdesignstudio/leadpulse-go/internal/infrastructure/observability/performance"
)

// ExportService renders lead snapshots as CSV for the admin dashboard.
type ExportService struct {
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

func NewExportService(logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *ExportService {
	return &ExportService{logger: logger, perfTracker: perfTracker}
}

// ExportCSV writes one row per lead. When ids is non-empty only matching
// leads are exported, preserving snapshot order.
func (s *ExportService) ExportCSV(snapshot []*lead.Lead, ids []string) ([]byte, error) {
	start := time.Now()
	marker := s.perfTracker.StartOperation("export_leads_csv")
	defer marker.Complete()

	var wanted map[string]bool
	if len(ids) > 0 {
		wanted = make(map[string]bool, len(ids))
		for _, id := range ids {
			wanted[id] = true
		}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"ID", "Business Name", "Website", "Budget", "Status", "Priority",
		"Timeline", "Created At", "Updated At", "Brand Story", "USP", "Platforms",
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	exported := 0
	for _, l := range snapshot {
		if wanted != nil && !wanted[l.ID] {
			continue
		}

		updatedAt := ""
		if l.UpdatedAt != nil {
			updatedAt = l.UpdatedAt.UTC().Format("2006-01-02 15:04:05")
		}

		row := []string{
			l.ID,
			l.BusinessName,
			l.Website,
			l.Budget,
			l.Status,
			l.Priority,
			l.Timeline,
			l.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
			updatedAt,
			l.BrandStory,
			l.USP,
			strings.Join(l.Platforms, ", "),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
		exported++
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	marker.SetSuccess(true)
	s.logger.Analytics().Info("Exported leads to CSV", "exported", exported, "duration", time.Since(start))
	return buf.Bytes(), nil
}
