package client

import (
	"net/url"
	"strconv"
)

// Day selects an event day on statistics queries. It is either a day number
// or one of the aggregate pseudo-days.
type Day string

const (
	// DayToday resolves to the current event day server-side.
	DayToday Day = "today"
	// DayOverall aggregates across the whole event.
	DayOverall Day = "overall"
)

// DayNumber selects a specific event day.
func DayNumber(n int) Day {
	return Day(strconv.Itoa(n))
}

// StudentsListQuery filters the student list. Zero-valued fields are omitted
// from the query string entirely.
type StudentsListQuery struct {
	AgeGroup AgeGroup
	Gender   Gender
	MinAge   *int
	MaxAge   *int
	SortBy   SortBy
	Order    Order
}

func (q *StudentsListQuery) values() url.Values {
	if q == nil {
		return nil
	}
	v := url.Values{}
	setString(v, "age_group", string(q.AgeGroup))
	setString(v, "gender", string(q.Gender))
	setInt(v, "min_age", q.MinAge)
	setInt(v, "max_age", q.MaxAge)
	setString(v, "sort_by", string(q.SortBy))
	setString(v, "order", string(q.Order))
	return v
}

// AttendanceQuery filters daily attendance statistics.
type AttendanceQuery struct {
	Day     Day
	ClassID AgeGroup
}

func (q *AttendanceQuery) values() url.Values {
	if q == nil {
		return nil
	}
	v := url.Values{}
	setString(v, "day", string(q.Day))
	setString(v, "class_id", string(q.ClassID))
	return v
}

// EngagementQuery filters engagement statistics.
type EngagementQuery struct {
	Day     Day
	ClassID AgeGroup
	Gender  Gender
}

func (q *EngagementQuery) values() url.Values {
	if q == nil {
		return nil
	}
	v := url.Values{}
	setString(v, "day", string(q.Day))
	setString(v, "class_id", string(q.ClassID))
	setString(v, "gender", string(q.Gender))
	return v
}

// PerformanceRankingsQuery filters the student leaderboard. Limit zero means
// no limit parameter is sent.
type PerformanceRankingsQuery struct {
	ClassID AgeGroup
	Gender  Gender
	Day     Day
	Limit   int
}

func (q *PerformanceRankingsQuery) values() url.Values {
	if q == nil {
		return nil
	}
	v := url.Values{}
	setString(v, "class_id", string(q.ClassID))
	setString(v, "gender", string(q.Gender))
	setString(v, "day", string(q.Day))
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

// PointsSummaryQuery filters the per-category points summary.
type PointsSummaryQuery struct {
	Day     Day
	ClassID AgeGroup
	Gender  Gender
}

func (q *PointsSummaryQuery) values() url.Values {
	if q == nil {
		return nil
	}
	v := url.Values{}
	setString(v, "day", string(q.Day))
	setString(v, "class_id", string(q.ClassID))
	setString(v, "gender", string(q.Gender))
	return v
}

// DailyPointsQuery filters the daily points trend.
type DailyPointsQuery struct {
	IncludeProjections *bool
	ClassID            AgeGroup
}

func (q *DailyPointsQuery) values() url.Values {
	if q == nil {
		return nil
	}
	v := url.Values{}
	if q.IncludeProjections != nil {
		v.Set("include_projections", strconv.FormatBool(*q.IncludeProjections))
	}
	setString(v, "class_id", string(q.ClassID))
	return v
}

// setString adds a parameter only when it carries a value; unset fields are
// omitted rather than serialized empty.
func setString(v url.Values, key, val string) {
	if val != "" {
		v.Set(key, val)
	}
}

func setInt(v url.Values, key string, val *int) {
	if val != nil {
		v.Set(key, strconv.Itoa(*val))
	}
}
