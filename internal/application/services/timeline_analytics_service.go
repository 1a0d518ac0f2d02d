package services

import (
	"sort"
	"time"

	"github.com/mwdesignstudio/leadpulse-go/internal/domain/lead"
	"github.com/mwdesignstudio/leadpulse-go/internal/infrastructure/observability/logging"
	"github.com/mwdesignstudio/leadpulse-go/internal/infrastructure/observability/performance"
)

// DateCount is one calendar bucket. Date carries an ISO date string for the
// day, ISO-week start, or month start depending on the series.
type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// WeekCount is one ISO-week bucket keyed by its Monday.
type WeekCount struct {
	Week  string `json:"week"`
	Count int    `json:"count"`
}

// MonthCount is one calendar-month bucket keyed by the month's first day.
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// HourCount is one hour-of-day bucket, hour 0-23.
type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// DayCount is one day-of-week bucket, 0=Sunday through 6=Saturday.
type DayCount struct {
	Day   int `json:"day"`
	Count int `json:"count"`
}

// TimelineAnalytics groups submissions over several time granularities.
// Windowed series omit empty buckets; only the custom-range breakdown
// zero-fills.
type TimelineAnalytics struct {
	DailySubmissions   []DateCount  `json:"daily_submissions"`
	WeeklySubmissions  []WeekCount  `json:"weekly_submissions"`
	MonthlySubmissions []MonthCount `json:"monthly_submissions"`
	HourlyDistribution []HourCount  `json:"hourly_distribution"`
	DailyDistribution  []DayCount   `json:"daily_distribution"`
}

// TimelineAnalyticsService buckets lead creation times. All window
// boundaries derive from the caller-supplied asOf instant.
type TimelineAnalyticsService struct {
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

func NewTimelineAnalyticsService(logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *TimelineAnalyticsService {
	return &TimelineAnalyticsService{logger: logger, perfTracker: perfTracker}
}

// ComputeTimeline builds the five bucketings over the snapshot.
func (s *TimelineAnalyticsService) ComputeTimeline(snapshot []*lead.Lead, asOf time.Time) *TimelineAnalytics {
	start := time.Now()
	marker := s.perfTracker.StartOperation("compute_timeline_analytics")
	defer marker.Complete()

	asOf = asOf.UTC()
	thirtyDaysAgo := asOf.AddDate(0, 0, -30)
	twelveWeeksAgo := asOf.AddDate(0, 0, -12*7)
	twelveMonthsAgo := asOf.AddDate(0, 0, -365)

	daily := make(map[string]int)
	weekly := make(map[string]int)
	monthly := make(map[string]int)
	hourly := make(map[int]int)
	dow := make(map[int]int)

	for _, l := range snapshot {
		created := l.CreatedAt.UTC()

		if !created.Before(thirtyDaysAgo) {
			daily[created.Format("2006-01-02")]++
		}
		if !created.Before(twelveWeeksAgo) {
			weekly[weekStart(created).Format("2006-01-02")]++
		}
		if !created.Before(twelveMonthsAgo) {
			monthly[monthStart(created).Format("2006-01-02")]++
		}

		hourly[created.Hour()]++
		dow[int(created.Weekday())]++
	}

	marker.SetSuccess(true)
	s.logger.Analytics().Debug("Computed timeline analytics", "dailyBuckets", len(daily), "weeklyBuckets", len(weekly), "monthlyBuckets", len(monthly), "duration", time.Since(start))

	return &TimelineAnalytics{
		DailySubmissions:   collectDateCounts(daily),
		WeeklySubmissions:  collectWeekCounts(weekly),
		MonthlySubmissions: collectMonthCounts(monthly),
		HourlyDistribution: collectIntCounts(hourly, func(k, c int) HourCount { return HourCount{Hour: k, Count: c} }),
		DailyDistribution:  collectIntCounts(dow, func(k, c int) DayCount { return DayCount{Day: k, Count: c} }),
	}
}

// weekStart truncates to the ISO week start (Monday, UTC midnight).
func weekStart(t time.Time) time.Time {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7
	return time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, time.UTC)
}

// monthStart truncates to the first day of the calendar month (UTC).
func monthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func collectDateCounts(buckets map[string]int) []DateCount {
	keys := sortedStringKeys(buckets)
	out := make([]DateCount, 0, len(keys))
	for _, k := range keys {
		out = append(out, DateCount{Date: k, Count: buckets[k]})
	}
	return out
}

func collectWeekCounts(buckets map[string]int) []WeekCount {
	keys := sortedStringKeys(buckets)
	out := make([]WeekCount, 0, len(keys))
	for _, k := range keys {
		out = append(out, WeekCount{Week: k, Count: buckets[k]})
	}
	return out
}

func collectMonthCounts(buckets map[string]int) []MonthCount {
	keys := sortedStringKeys(buckets)
	out := make([]MonthCount, 0, len(keys))
	for _, k := range keys {
		out = append(out, MonthCount{Month: k, Count: buckets[k]})
	}
	return out
}

func collectIntCounts[T any](buckets map[int]int, wrap func(key, count int) T) []T {
	keys := make([]int, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, wrap(k, buckets[k]))
	}
	return out
}

func sortedStringKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
