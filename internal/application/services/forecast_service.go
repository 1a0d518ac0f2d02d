package services

import (
	"sort"
	"time"

	"github.com/mwdesignstudio/leadpulse-go/internal/domain/lead"
	"github.com/mwdesignstudio/leadpulse-go/internal/infrastructure/observability/logging"
	"github.com/mwdesignstudio/leadpulse-go/internal/infrastructure/observability/performance"
)

// MonthlyTrend is one month of the forecasting window.
type MonthlyTrend struct {
	Month       string `json:"month"`
	Submissions int    `json:"submissions"`
	Wins        int    `json:"wins"`
}

// Forecast projects next month's submissions from a short trailing window.
// This is a deliberate two-window moving-average heuristic, not a model.
type Forecast struct {
	TrendDirection    string         `json:"trend_direction"`
	TrendPercentage   int            `json:"trend_percentage"`
	ForecastNextMonth int            `json:"forecast_next_month"`
	MonthlyTrendData  []MonthlyTrend `json:"monthly_trend_data"`
}

// ForecastService derives trend direction and a one-step projection from
// the trailing six months of monthly submission counts.
type ForecastService struct {
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

func NewForecastService(logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *ForecastService {
	return &ForecastService{logger: logger, perfTracker: perfTracker}
}

// ComputeForecast buckets the trailing 180 days into calendar months,
// compares the last three months against the months before them, and
// scales the recent average by ±10% in the trend direction.
func (s *ForecastService) ComputeForecast(snapshot []*lead.Lead, asOf time.Time) *Forecast {
	start := time.Now()
	marker := s.perfTracker.StartOperation("compute_forecast")
	defer marker.Complete()

	sixMonthsAgo := asOf.UTC().AddDate(0, 0, -180)

	type bucket struct {
		submissions int
		wins        int
	}
	months := make(map[string]*bucket)

	for _, l := range snapshot {
		created := l.CreatedAt.UTC()
		if created.Before(sixMonthsAgo) {
			continue
		}
		key := monthStart(created).Format("2006-01-02")
		b, ok := months[key]
		if !ok {
			b = &bucket{}
			months[key] = b
		}
		b.submissions++
		if l.Status == lead.StatusWon {
			b.wins++
		}
	}

	keys := make([]string, 0, len(months))
	for k := range months {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	trendData := make([]MonthlyTrend, 0, len(keys))
	for _, k := range keys {
		trendData = append(trendData, MonthlyTrend{
			Month:       k,
			Submissions: months[k].submissions,
			Wins:        months[k].wins,
		})
	}

	direction := "stable"
	trendPercentage := 0
	recentAvg := 0.0

	if len(trendData) >= 3 {
		recent := trendData[len(trendData)-3:]
		older := trendData[:len(trendData)-3]

		sum := 0
		for _, m := range recent {
			sum += m.Submissions
		}
		recentAvg = float64(sum) / 3

		// With exactly three buckets there is no older window; treat the
		// averages as equal so no trend is perceived.
		olderAvg := recentAvg
		if len(older) > 0 {
			sum = 0
			for _, m := range older {
				sum += m.Submissions
			}
			olderAvg = float64(sum) / float64(len(older))
		}

		if recentAvg > olderAvg {
			direction = "up"
		} else if recentAvg < olderAvg {
			direction = "down"
		}

		if olderAvg > 0 {
			trendPercentage = roundInt((recentAvg - olderAvg) / olderAvg * 100)
			if trendPercentage < 0 {
				trendPercentage = -trendPercentage
			}
		}
	}

	factor := 1.0
	switch direction {
	case "up":
		factor = 1.1
	case "down":
		factor = 0.9
	}
	forecastNextMonth := roundInt(recentAvg * factor)

	marker.SetSuccess(true)
	s.logger.Analytics().Debug("Computed forecast", "months", len(trendData), "trend", direction, "duration", time.Since(start))

	return &Forecast{
		TrendDirection:    direction,
		TrendPercentage:   trendPercentage,
		ForecastNextMonth: forecastNextMonth,
		MonthlyTrendData:  trendData,
	}
}
