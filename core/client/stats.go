package client

import (
	"context"
	"net/http"
)

// EventSummary fetches whole-event summary statistics.
func (c *Client) EventSummary(ctx context.Context) (*EventSummary, error) {
	var out EventSummary
	if err := c.get(ctx, "/stats/event/summary", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EventProgress fetches event completion and per-day milestones.
func (c *Client) EventProgress(ctx context.Context) (*EventProgress, error) {
	var out EventProgress
	if err := c.get(ctx, "/stats/event/progress", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DailyAttendance fetches per-day attendance, optionally filtered.
func (c *Client) DailyAttendance(ctx context.Context, query *AttendanceQuery) ([]DailyAttendance, error) {
	var out []DailyAttendance
	if err := c.do(ctx, requestParams{
		method: http.MethodGet,
		path:   "/stats/attendance/daily",
		query:  query.values(),
	}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TodayDetailedStats fetches the full picture of the current event day.
func (c *Client) TodayDetailedStats(ctx context.Context) (*TodayDetailedStats, error) {
	var out TodayDetailedStats
	if err := c.get(ctx, "/stats/today/detailed", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TodaySummary fetches the compact current-day summary.
func (c *Client) TodaySummary(ctx context.Context) (*TodaySummary, error) {
	var out TodaySummary
	if err := c.get(ctx, "/stats/today/summary", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TodayStudents fetches the list of students present today.
func (c *Client) TodayStudents(ctx context.Context) (*TodayStudents, error) {
	var out TodayStudents
	if err := c.get(ctx, "/stats/today/students", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RegistrationStats fetches registration totals.
func (c *Client) RegistrationStats(ctx context.Context) (*RegistrationStats, error) {
	var out RegistrationStats
	if err := c.get(ctx, "/stats/registrations", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RegistrationDemographics fetches the registration breakdowns.
func (c *Client) RegistrationDemographics(ctx context.Context) (*RegistrationDemographics, error) {
	var out RegistrationDemographics
	if err := c.get(ctx, "/stats/registrations/demographics", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Engagement fetches engagement statistics, optionally filtered.
func (c *Client) Engagement(ctx context.Context, query *EngagementQuery) (*Engagement, error) {
	var out Engagement
	if err := c.do(ctx, requestParams{
		method: http.MethodGet,
		path:   "/stats/engagement",
		query:  query.values(),
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PerformanceRankings fetches the student leaderboard, optionally filtered.
func (c *Client) PerformanceRankings(ctx context.Context, query *PerformanceRankingsQuery) ([]PerformanceRanking, error) {
	var out []PerformanceRanking
	if err := c.do(ctx, requestParams{
		method: http.MethodGet,
		path:   "/stats/performance/rankings",
		query:  query.values(),
	}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ClassPerformance fetches the class comparison.
func (c *Client) ClassPerformance(ctx context.Context) ([]ClassPerformance, error) {
	var out []ClassPerformance
	if err := c.get(ctx, "/stats/performance/classes", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GenderPerformanceAnalysis fetches the male/female performance comparison.
func (c *Client) GenderPerformanceAnalysis(ctx context.Context) (*GenderPerformanceAnalysis, error) {
	var out GenderPerformanceAnalysis
	if err := c.get(ctx, "/stats/performance/", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PointsSummary fetches per-category points totals, optionally filtered.
func (c *Client) PointsSummary(ctx context.Context, query *PointsSummaryQuery) ([]PointsCategorySummary, error) {
	var out []PointsCategorySummary
	if err := c.do(ctx, requestParams{
		method: http.MethodGet,
		path:   "/stats/points/summary",
		query:  query.values(),
	}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DailyPointsTrends fetches the day-by-day points trend, optionally filtered.
func (c *Client) DailyPointsTrends(ctx context.Context, query *DailyPointsQuery) ([]DailyPointsTrend, error) {
	var out []DailyPointsTrend
	if err := c.do(ctx, requestParams{
		method: http.MethodGet,
		path:   "/stats/points/daily",
		query:  query.values(),
	}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PointsDistribution fetches the event-wide points histogram.
func (c *Client) PointsDistribution(ctx context.Context) (*PointsDistribution, error) {
	var out PointsDistribution
	if err := c.get(ctx, "/stats/points/distribution", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EventPredictions fetches the forecast for the rest of the event.
func (c *Client) EventPredictions(ctx context.Context) (*EventPredictions, error) {
	var out EventPredictions
	if err := c.get(ctx, "/stats/event/predictions", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PointSystem fetches the configured point values per category.
func (c *Client) PointSystem(ctx context.Context) (PointSystem, error) {
	var out PointSystem
	if err := c.get(ctx, "/constants/points", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SystemConfig fetches the backend's tunable configuration.
func (c *Client) SystemConfig(ctx context.Context) (*SystemConfig, error) {
	var out SystemConfig
	if err := c.get(ctx, "/constants/config", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// get is shorthand for a query-less authenticated GET.
func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, requestParams{method: http.MethodGet, path: path}, out)
}
