package services

import (
	"sort"
	"strings"
	"time"

	"github.com/mwdesignstudio/leadpulse-go/internal/domain/lead"
	"github.com/mwdesignstudio/leadpulse-go/internal/infrastructure/observability/logging"
	"github.com/mwdesignstudio/leadpulse-go/internal/infrastructure/observability/performance"
)

// PlatformCount is one (platform, frequency) pair in descending-count order.
type PlatformCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// PlatformAnalytics reports platform preference frequencies and win rates.
// Counts are emitted as ordered slices so the dashboard renders them in
// descending order without re-sorting.
type PlatformAnalytics struct {
	PlatformCounts          []PlatformCount    `json:"platform_counts"`
	PlatformCombinations    []PlatformCount    `json:"platform_combinations"`
	PlatformConversionRates map[string]float64 `json:"platform_conversion_rates"`
	TopPlatforms            []PlatformCount    `json:"top_platforms"`
}

// PlatformAnalyticsService counts platform frequency and co-occurrence.
type PlatformAnalyticsService struct {
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

func NewPlatformAnalyticsService(logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *PlatformAnalyticsService {
	return &PlatformAnalyticsService{logger: logger, perfTracker: perfTracker}
}

// ComputePlatforms builds frequency, combination, and win-rate breakdowns.
// Every observed platform string counts, known vocabulary or not.
func (s *PlatformAnalyticsService) ComputePlatforms(snapshot []*lead.Lead) *PlatformAnalytics {
	start := time.Now()
	marker := s.perfTracker.StartOperation("compute_platform_analytics")
	defer marker.Complete()

	counts := make(map[string]int)
	combinations := make(map[string]int)
	totals := make(map[string]int)
	wins := make(map[string]int)

	for _, l := range snapshot {
		if len(l.Platforms) == 0 {
			continue
		}

		for _, platform := range l.Platforms {
			counts[platform]++
			totals[platform]++
			if l.Status == lead.StatusWon {
				wins[platform]++
			}
		}

		if len(l.Platforms) > 1 {
			sorted := append([]string(nil), l.Platforms...)
			sort.Strings(sorted)
			combinations[strings.Join(sorted, " + ")]++
		}
	}

	conversionRates := make(map[string]float64)
	for platform, total := range totals {
		if total > 0 {
			conversionRates[platform] = round1(float64(wins[platform]) / float64(total) * 100)
		}
	}

	orderedCounts := sortedCounts(counts)
	topPlatforms := orderedCounts
	if len(topPlatforms) > 5 {
		topPlatforms = topPlatforms[:5]
	}

	orderedCombos := sortedCounts(combinations)
	if len(orderedCombos) > 10 {
		orderedCombos = orderedCombos[:10]
	}

	marker.SetSuccess(true)
	s.logger.Analytics().Debug("Computed platform analytics", "platforms", len(counts), "combinations", len(combinations), "duration", time.Since(start))

	return &PlatformAnalytics{
		PlatformCounts:          orderedCounts,
		PlatformCombinations:    orderedCombos,
		PlatformConversionRates: conversionRates,
		TopPlatforms:            topPlatforms,
	}
}

// sortedCounts flattens a counter into pairs ordered by descending count,
// name ascending on ties for deterministic output.
func sortedCounts(counter map[string]int) []PlatformCount {
	out := make([]PlatformCount, 0, len(counter))
	for name, count := range counter {
		out = append(out, PlatformCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}
