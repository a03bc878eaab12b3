package client

import "context"

// Convenience wrappers pre-filling the query filters dashboard widgets
// ask for most often.

// StudentsByAgeGroup lists all students in one age group.
func (c *Client) StudentsByAgeGroup(ctx context.Context, ageGroup AgeGroup) ([]StudentListItem, error) {
	return c.Students(ctx, &StudentsListQuery{AgeGroup: ageGroup})
}

// StudentsByGender lists all students of one gender.
func (c *Client) StudentsByGender(ctx context.Context, gender Gender) ([]StudentListItem, error) {
	return c.Students(ctx, &StudentsListQuery{Gender: gender})
}

// StudentsByAgeRange lists students within a custom age range.
func (c *Client) StudentsByAgeRange(ctx context.Context, minAge, maxAge int) ([]StudentListItem, error) {
	return c.Students(ctx, &StudentsListQuery{
		AgeGroup: AgeGroupCustom,
		MinAge:   &minAge,
		MaxAge:   &maxAge,
	})
}

// TopPerformers fetches the leaderboard's top entries; limit defaults to 10
// when non-positive.
func (c *Client) TopPerformers(ctx context.Context, limit int) ([]PerformanceRanking, error) {
	if limit <= 0 {
		limit = 10
	}
	return c.PerformanceRankings(ctx, &PerformanceRankingsQuery{Limit: limit})
}

// AttendanceForDay fetches attendance for a specific event day.
func (c *Client) AttendanceForDay(ctx context.Context, day int) ([]DailyAttendance, error) {
	return c.DailyAttendance(ctx, &AttendanceQuery{Day: DayNumber(day)})
}

// TodayAttendance fetches attendance for the current event day.
func (c *Client) TodayAttendance(ctx context.Context) ([]DailyAttendance, error) {
	return c.DailyAttendance(ctx, &AttendanceQuery{Day: DayToday})
}

// ClassEngagement fetches engagement scoped to one class.
func (c *Client) ClassEngagement(ctx context.Context, classID AgeGroup) (*Engagement, error) {
	return c.Engagement(ctx, &EngagementQuery{ClassID: classID})
}

// TodayPointsSummary fetches today's per-category points totals.
func (c *Client) TodayPointsSummary(ctx context.Context) ([]PointsCategorySummary, error) {
	return c.PointsSummary(ctx, &PointsSummaryQuery{Day: DayToday})
}

// OverallPointsSummary fetches per-category totals across the whole event.
func (c *Client) OverallPointsSummary(ctx context.Context) ([]PointsCategorySummary, error) {
	return c.PointsSummary(ctx, &PointsSummaryQuery{Day: DayOverall})
}
