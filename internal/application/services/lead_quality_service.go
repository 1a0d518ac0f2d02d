package services

import (
	"sort"
	"time"

	"github.com/mwdesignstudio/leadpulse-go/internal/domain/lead"
	"github.com/mwdesignstudio/leadpulse-go/internal/infrastructure/observability/logging"
	"github.com/mwdesignstudio/leadpulse-go/internal/infrastructure/observability/performance"
)

// Scoring weights. A lead hitting every criterion scores 100.
const (
	scoreWebsite         = 20
	scoreHighBudget      = 30
	scoreMidBudget       = 20
	scoreMultiPlatform   = 25
	scoreUrgentTimeline  = 15
	scoreCompleteProfile = 10

	highScoreThreshold = 70
)

// LeadScore is one scored lead in the ranked report.
type LeadScore struct {
	ID           string `json:"id"`
	BusinessName string `json:"business_name"`
	Score        int    `json:"score"`
	Status       string `json:"status"`
}

// QualityIndicators counts how many leads satisfied each scoring criterion.
// The counters are independent; one lead can hit all five.
type QualityIndicators struct {
	HasWebsite        int `json:"has_website"`
	HighBudget        int `json:"high_budget"`
	MultiplePlatforms int `json:"multiple_platforms"`
	ImmediateTimeline int `json:"immediate_timeline"`
	CompleteProfile   int `json:"complete_profile"`
}

// LeadQuality reports the scoring model output.
type LeadQuality struct {
	LeadScores            []LeadScore       `json:"lead_scores"`
	QualityIndicators     QualityIndicators `json:"quality_indicators"`
	QualityConversionRate int               `json:"quality_conversion_rate"`
	AvgLeadScore          int               `json:"avg_lead_score"`
}

// LeadQualityService applies the deterministic weighted scoring model.
type LeadQualityService struct {
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

func NewLeadQualityService(logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *LeadQualityService {
	return &LeadQualityService{logger: logger, perfTracker: perfTracker}
}

// ScoreLead computes the additive quality score for a single lead.
func ScoreLead(l *lead.Lead) int {
	score := 0
	if l.Website != "" {
		score += scoreWebsite
	}
	switch l.Budget {
	case lead.Budget10kTo25k, lead.Budget25kPlus:
		score += scoreHighBudget
	case lead.Budget5kTo10k:
		score += scoreMidBudget
	}
	if len(l.Platforms) >= 3 {
		score += scoreMultiPlatform
	}
	if l.Timeline == "Immediately" || l.Timeline == "Within 1 month" {
		score += scoreUrgentTimeline
	}
	if profileFieldCount(l) >= 3 {
		score += scoreCompleteProfile
	}
	return score
}

func profileFieldCount(l *lead.Lead) int {
	count := 0
	for _, field := range []string{l.BrandStory, l.USP, l.Demographics, l.BrandVoice, l.Competitors} {
		if field != "" {
			count++
		}
	}
	return count
}

// ComputeLeadQuality scores every lead, tallies the quality indicators, and
// correlates high scores with won outcomes.
func (s *LeadQualityService) ComputeLeadQuality(snapshot []*lead.Lead) *LeadQuality {
	start := time.Now()
	marker := s.perfTracker.StartOperation("compute_lead_quality")
	defer marker.Complete()

	indicators := QualityIndicators{}
	scores := make([]LeadScore, 0, len(snapshot))
	scoreSum := 0

	highScoreTotal := 0
	highScoreWon := 0

	for _, l := range snapshot {
		if l.Website != "" {
			indicators.HasWebsite++
		}
		if l.Budget == lead.Budget10kTo25k || l.Budget == lead.Budget25kPlus {
			indicators.HighBudget++
		}
		if len(l.Platforms) >= 3 {
			indicators.MultiplePlatforms++
		}
		if l.Timeline == "Immediately" || l.Timeline == "Within 1 month" {
			indicators.ImmediateTimeline++
		}
		if profileFieldCount(l) >= 3 {
			indicators.CompleteProfile++
		}

		score := ScoreLead(l)
		scoreSum += score
		if score >= highScoreThreshold {
			highScoreTotal++
			if l.Status == lead.StatusWon {
				highScoreWon++
			}
		}

		scores = append(scores, LeadScore{
			ID:           l.ID,
			BusinessName: l.BusinessName,
			Score:        score,
			Status:       l.Status,
		})
	}

	// Stable sort keeps snapshot order among equal scores.
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Score > scores[j].Score })
	if len(scores) > 20 {
		scores = scores[:20]
	}

	avgScore := 0
	if len(snapshot) > 0 {
		avgScore = roundInt(float64(scoreSum) / float64(len(snapshot)))
	}

	qualityConversionRate := 0
	if highScoreTotal > 0 {
		qualityConversionRate = roundInt(float64(highScoreWon) / float64(highScoreTotal) * 100)
	}

	marker.SetSuccess(true)
	s.logger.Analytics().Debug("Computed lead quality", "leads", len(snapshot), "avgScore", avgScore, "duration", time.Since(start))

	return &LeadQuality{
		LeadScores:            scores,
		QualityIndicators:     indicators,
		QualityConversionRate: qualityConversionRate,
		AvgLeadScore:          avgScore,
	}
}
