package services

import (
	"time"

	"github.com/mwdesignstudio/leadpulse-go/internal/domain/lead"
	"github.com/mwdesignstudio/leadpulse-go/internal/infrastructure/observability/logging"
	"github.com/mwdesignstudio/leadpulse-go/internal/infrastructure/observability/performance"
)

// ConversionFunnel holds per-stage counts and cumulative-reach conversion
// percentages. The rates divide by total leads, not by the prior stage; this
// mirrors the dashboard's historical contract and is intentional.
type ConversionFunnel struct {
	FunnelCounts    map[string]int     `json:"funnel_counts"`
	ConversionRates map[string]float64 `json:"conversion_rates"`
	TotalLeads      int                `json:"total_leads"`
	Unrecognized    int                `json:"unrecognized"`
}

// FunnelAnalyticsService computes pipeline stage distribution.
type FunnelAnalyticsService struct {
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

func NewFunnelAnalyticsService(logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *FunnelAnalyticsService {
	return &FunnelAnalyticsService{logger: logger, perfTracker: perfTracker}
}

// funnelKeys maps each known stage to its report key.
var funnelKeys = map[string]string{
	lead.StatusNew:          "new",
	lead.StatusContacted:    "contacted",
	lead.StatusProposalSent: "proposal_sent",
	lead.StatusWon:          "won",
	lead.StatusLost:         "lost",
}

// ComputeFunnel builds the conversion funnel from a lead snapshot.
func (s *FunnelAnalyticsService) ComputeFunnel(snapshot []*lead.Lead) *ConversionFunnel {
	start := time.Now()
	marker := s.perfTracker.StartOperation("compute_conversion_funnel")
	defer marker.Complete()

	counts := map[string]int{
		"new":           0,
		"contacted":     0,
		"proposal_sent": 0,
		"won":           0,
		"lost":          0,
	}
	unrecognized := 0

	for _, l := range snapshot {
		key, ok := funnelKeys[l.Status]
		if !ok {
			unrecognized++
			continue
		}
		counts[key]++
	}

	total := counts["new"] + counts["contacted"] + counts["proposal_sent"] + counts["won"] + counts["lost"]

	rates := map[string]float64{}
	if total > 0 {
		rates["new_to_contacted"] = round1(float64(counts["contacted"]+counts["proposal_sent"]+counts["won"]) / float64(total) * 100)
		rates["contacted_to_proposal"] = round1(float64(counts["proposal_sent"]+counts["won"]) / float64(total) * 100)
		rates["proposal_to_won"] = round1(float64(counts["won"]) / float64(total) * 100)
	}

	marker.SetSuccess(true)
	s.logger.Analytics().Debug("Computed conversion funnel", "totalLeads", total, "unrecognized", unrecognized, "duration", time.Since(start))

	return &ConversionFunnel{
		FunnelCounts:    counts,
		ConversionRates: rates,
		TotalLeads:      total,
		Unrecognized:    unrecognized,
	}
}
