package client

// Gender of a registered student.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// AgeGroup identifies one of the fixed event classes, or a custom age range
// on list queries.
type AgeGroup string

const (
	AgeGroup0to6   AgeGroup = "0-6"
	AgeGroup7to9   AgeGroup = "7-9"
	AgeGroup10to12 AgeGroup = "10-12"
	AgeGroup13to15 AgeGroup = "13-15"
	AgeGroupCustom AgeGroup = "custom"
)

// SortBy selects a student list ordering field.
type SortBy string

const (
	SortByName        SortBy = "name"
	SortByAge         SortBy = "age"
	SortByTotalPoints SortBy = "total_points"
	SortByCreatedAt   SortBy = "created_at"
)

// Order is the sort direction.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// PointCategory is one of the six gamified point categories.
type PointCategory string

const (
	CategoryPresence      PointCategory = "PRESENCE"
	CategoryBook          PointCategory = "BOOK"
	CategoryVersicle      PointCategory = "VERSICLE"
	CategoryParticipation PointCategory = "PARTICIPATION"
	CategoryGuest         PointCategory = "GUEST"
	CategoryGame          PointCategory = "GAME"
)

// MilestoneStatus marks an event-day milestone as reached or pending.
type MilestoneStatus string

const (
	MilestoneCompleted MilestoneStatus = "completed"
	MilestoneUpcoming  MilestoneStatus = "upcoming"
)

// Trend describes the direction of an engagement metric.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// Performance positions a metric against the configured benchmark.
type Performance string

const (
	PerformanceAboveBenchmark Performance = "above_benchmark"
	PerformanceAtBenchmark    Performance = "at_benchmark"
	PerformanceBelowBenchmark Performance = "below_benchmark"
)

// UserRole gates access to staff features.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleTeacher UserRole = "teacher"
	RoleViewer  UserRole = "viewer"
)

// User is a backend account.
type User struct {
	ID       string   `json:"id,omitempty"`
	Username string   `json:"username"`
	Role     UserRole `json:"role,omitempty"`
}

// AuthUser is the payload for creating a backend account.
type AuthUser struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	Role     UserRole `json:"role"`
}

// Student is the full student record.
type Student struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Age         int           `json:"age"`
	Gender      Gender        `json:"gender"`
	Group       AgeGroup      `json:"group"`
	Address     string        `json:"address,omitempty"`
	ParentName  string        `json:"parent_name"`
	ParentPhone string        `json:"parent_phone"`
	Notes       string        `json:"notes,omitempty"`
	TotalPoints int           `json:"total_points"`
	Points      []DailyPoints `json:"points"`
	CreatedAt   string        `json:"created_at"`
	LastUpdated string        `json:"last_updated,omitempty"`
}

// StudentListItem is the reduced student shape used by list endpoints.
type StudentListItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Age         int      `json:"age"`
	Gender      Gender   `json:"gender"`
	Group       AgeGroup `json:"group"`
	TotalPoints int      `json:"total_points"`
}

// CreateStudentRequest registers a new student.
type CreateStudentRequest struct {
	Name        string `json:"name"`
	Age         int    `json:"age"`
	Gender      Gender `json:"gender"`
	Address     string `json:"address,omitempty"`
	ParentName  string `json:"parent_name"`
	ParentPhone string `json:"parent_phone"`
	Notes       string `json:"notes,omitempty"`
}

// UpdateStudentRequest carries partial student updates; nil fields are left
// untouched by the backend.
type UpdateStudentRequest struct {
	Name        *string `json:"name,omitempty"`
	Age         *int    `json:"age,omitempty"`
	Gender      *Gender `json:"gender,omitempty"`
	Address     *string `json:"address,omitempty"`
	ParentName  *string `json:"parent_name,omitempty"`
	ParentPhone *string `json:"parent_phone,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// DailyPoints records the points a student earned per category on one date.
type DailyPoints struct {
	Date          string `json:"date"`
	Presence      int    `json:"PRESENCE,omitempty"`
	Book          int    `json:"BOOK,omitempty"`
	Versicle      int    `json:"VERSICLE,omitempty"`
	Participation int    `json:"PARTICIPATION,omitempty"`
	Guest         int    `json:"GUEST,omitempty"`
	Game          int    `json:"GAME,omitempty"`
}

// CategoryFlags marks which point categories applied on a given date.
type CategoryFlags struct {
	Presence      bool `json:"PRESENCE,omitempty"`
	Book          bool `json:"BOOK,omitempty"`
	Versicle      bool `json:"VERSICLE,omitempty"`
	Participation bool `json:"PARTICIPATION,omitempty"`
	Guest         bool `json:"GUEST,omitempty"`
	Game          bool `json:"GAME,omitempty"`
}

// AwardPointsRequest awards daily points to a student.
type AwardPointsRequest struct {
	Date   string        `json:"date"`
	Points CategoryFlags `json:"points"`
}

// PointAdjustmentRequest applies a signed manual correction.
type PointAdjustmentRequest struct {
	Amount int    `json:"amount"`
	Reason string `json:"reason"`
	Date   string `json:"date"`
}

// ClassGroup describes one event class.
type ClassGroup struct {
	ID           AgeGroup `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	MinAge       int      `json:"min_age"`
	MaxAge       int      `json:"max_age"`
	StudentCount int      `json:"student_count"`
}

// Teacher describes a class teacher.
type Teacher struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	Specialization  string `json:"specialization"`
	YearsExperience int    `json:"years_experience"`
}

// EventSummary aggregates whole-event statistics.
type EventSummary struct {
	EventName              string  `json:"event_name"`
	StartDate              string  `json:"start_date"`
	EndDate                string  `json:"end_date"`
	CurrentDay             int     `json:"current_day"`
	TotalDays              int     `json:"total_days"`
	TotalRegistered        int     `json:"total_registered"`
	AverageDailyAttendance float64 `json:"average_daily_attendance"`
	TotalPointsAwarded     int     `json:"total_points_awarded"`
	CompletionPercentage   float64 `json:"completion_percentage"`
}

// Milestone marks progress for one event day.
type Milestone struct {
	Status              MilestoneStatus `json:"status"`
	Attendance          int             `json:"attendance,omitempty"`
	Points              int             `json:"points,omitempty"`
	ProjectedAttendance int             `json:"projected_attendance,omitempty"`
}

// EventProgress reports event completion and per-day milestones, keyed
// "day_1" through "day_7".
type EventProgress struct {
	DaysCompleted   int                  `json:"days_completed"`
	DaysRemaining   int                  `json:"days_remaining"`
	OverallProgress float64              `json:"overall_progress"`
	Milestones      map[string]Milestone `json:"milestones"`
}

// DailyAttendance reports attendance for one event day.
type DailyAttendance struct {
	Day              int     `json:"day"`
	Date             string  `json:"date"`
	AttendanceCount  int     `json:"attendance_count"`
	TotalStudents    int     `json:"total_students"`
	AttendanceRate   float64 `json:"attendance_rate"`
	MaleAttendance   int     `json:"male_attendance"`
	FemaleAttendance int     `json:"female_attendance"`
	LateArrivals     int     `json:"late_arrivals"`
}

// GenderStats breaks attendance down for one gender.
type GenderStats struct {
	Present int     `json:"present"`
	Total   int     `json:"total"`
	Rate    float64 `json:"rate"`
}

// GenderCounts is a simple male/female tally.
type GenderCounts struct {
	Male   int `json:"male"`
	Female int `json:"female"`
}

// GenderBreakdown pairs per-gender attendance stats.
type GenderBreakdown struct {
	Male   GenderStats `json:"male"`
	Female GenderStats `json:"female"`
}

// ClassStats breaks attendance down for one class.
type ClassStats struct {
	Present int     `json:"present"`
	Total   int     `json:"total"`
	Rate    float64 `json:"rate"`
}

// AttendanceDetail is today's attendance with gender and class breakdowns.
type AttendanceDetail struct {
	PresentCount   int                     `json:"present_count"`
	TotalStudents  int                     `json:"total_students"`
	AttendanceRate float64                 `json:"attendance_rate"`
	ByGender       GenderBreakdown         `json:"by_gender"`
	ByClass        map[AgeGroup]ClassStats `json:"by_class"`
}

// TodayDetailedStats is the full picture of the current event day.
type TodayDetailedStats struct {
	Day                 int              `json:"day"`
	Date                string           `json:"date"`
	EventProgress       float64          `json:"event_progress"`
	Attendance          AttendanceDetail `json:"attendance"`
	PointsAwardedToday  int              `json:"points_awarded_today"`
	ActivitiesCompleted int              `json:"activities_completed"`
	UpcomingActivities  int              `json:"upcoming_activities"`
}

// RegistrationStats totals event registrations.
type RegistrationStats struct {
	TotalStudents              int              `json:"total_students"`
	ActiveParticipants         int              `json:"active_participants"`
	InactiveParticipants       int              `json:"inactive_participants"`
	ByGender                   GenderCounts     `json:"by_gender"`
	ByClass                    map[AgeGroup]int `json:"by_class"`
	RegistrationCompletionRate float64          `json:"registration_completion_rate"`
}

// AgeDistribution is the registration count for one age.
type AgeDistribution struct {
	Age        int     `json:"age"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Distribution is a count with its share of the total.
type Distribution struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// GenderDistributionPair splits a distribution by gender.
type GenderDistributionPair struct {
	Male   Distribution `json:"male"`
	Female Distribution `json:"female"`
}

// RegistrationDemographics breaks registrations down by age, gender and class.
type RegistrationDemographics struct {
	AgeDistribution    []AgeDistribution         `json:"age_distribution"`
	GenderDistribution GenderDistributionPair    `json:"gender_distribution"`
	ClassDistribution  map[AgeGroup]Distribution `json:"class_distribution"`
}

// TopPerformer is one entry of today's leaderboard.
type TopPerformer struct {
	StudentID   string   `json:"student_id"`
	Name        string   `json:"name"`
	Gender      Gender   `json:"gender"`
	Class       AgeGroup `json:"class"`
	PointsToday int      `json:"points_today"`
}

// ActivityStatus counts event activities by completion state.
type ActivityStatus struct {
	Completed  int `json:"completed"`
	InProgress int `json:"in_progress"`
	Upcoming   int `json:"upcoming"`
}

// TodaySummary is the compact current-day widget payload.
type TodaySummary struct {
	Day                 int            `json:"day"`
	Date                string         `json:"date"`
	EventDayName        string         `json:"event_day_name"`
	PresentCount        int            `json:"present_count"`
	TotalStudents       int            `json:"total_students"`
	AttendanceRate      float64        `json:"attendance_rate"`
	PointsAwardedToday  int            `json:"points_awarded_today"`
	DailyGoalCompletion float64        `json:"daily_goal_completion"`
	TopPerformersToday  []TopPerformer `json:"top_performers_today"`
	ActivitiesStatus    ActivityStatus `json:"activities_status"`
}

// PresentStudent is one student present today.
type PresentStudent struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Age         int      `json:"age"`
	Gender      Gender   `json:"gender"`
	Class       AgeGroup `json:"class"`
	PointsToday int      `json:"points_today"`
	ArrivalTime string   `json:"arrival_time"`
}

// TodayStudents lists who is present today.
type TodayStudents struct {
	PresentCount    int              `json:"present_count"`
	PresentStudents []PresentStudent `json:"present_students"`
	AbsentCount     int              `json:"absent_count"`
	AbsenceRate     float64          `json:"absence_rate"`
	LateArrivals    int              `json:"late_arrivals"`
}

// EngagementByGender is the engagement/participation pair for one gender.
type EngagementByGender struct {
	Engagement    float64 `json:"engagement"`
	Participation float64 `json:"participation"`
}

// EngagementGenderPair splits engagement by gender.
type EngagementGenderPair struct {
	Male   EngagementByGender `json:"male"`
	Female EngagementByGender `json:"female"`
}

// Engagement measures points earned against the maximum possible.
type Engagement struct {
	EventDay          string               `json:"event_day"`
	DaysElapsed       int                  `json:"days_elapsed"`
	MaxPossiblePoints int                  `json:"max_possible_points"`
	AwardedPoints     int                  `json:"awarded_points"`
	EngagementPercent float64              `json:"engagement_percent"`
	DailyAverage      float64              `json:"daily_average"`
	ParticipationRate float64              `json:"participation_rate"`
	Trend             Trend                `json:"trend"`
	ByGender          EngagementGenderPair `json:"by_gender"`
	Benchmark         float64              `json:"benchmark"`
	Performance       Performance          `json:"performance"`
}

// PerformanceRanking is one row of the student leaderboard.
type PerformanceRanking struct {
	Rank           int      `json:"rank"`
	StudentID      string   `json:"student_id"`
	Name           string   `json:"name"`
	Age            int      `json:"age"`
	Gender         Gender   `json:"gender"`
	Class          AgeGroup `json:"class"`
	TotalPoints    int      `json:"total_points"`
	DaysAttended   int      `json:"days_attended"`
	AttendanceRate float64  `json:"attendance_rate"`
	AvgDailyPoints float64  `json:"avg_daily_points"`
}

// ClassGenderBreakdown is the per-gender slice of a class comparison.
type ClassGenderBreakdown struct {
	Count     int     `json:"count"`
	AvgPoints float64 `json:"avg_points"`
}

// ClassGenderPair splits a class comparison by gender.
type ClassGenderPair struct {
	Male   ClassGenderBreakdown `json:"male"`
	Female ClassGenderBreakdown `json:"female"`
}

// ClassPerformance compares one class against the others.
type ClassPerformance struct {
	ClassID               AgeGroup        `json:"class_id"`
	ClassName             string          `json:"class_name"`
	StudentCount          int             `json:"student_count"`
	AverageAttendanceRate float64         `json:"average_attendance_rate"`
	AveragePoints         float64         `json:"average_points"`
	EngagementScore       float64         `json:"engagement_score"`
	DailyParticipation    float64         `json:"daily_participation"`
	GenderBreakdown       ClassGenderPair `json:"gender_breakdown"`
}

// PointsCategorySummary totals one point category.
type PointsCategorySummary struct {
	Category          PointCategory `json:"category"`
	TotalPoints       int           `json:"total_points"`
	TimesAwarded      int           `json:"times_awarded"`
	PercentageOfTotal float64       `json:"percentage_of_total"`
	DailyAverage      float64       `json:"daily_average"`
}

// DailyPointsBreakdown totals each category for one day.
type DailyPointsBreakdown struct {
	Presence      int `json:"PRESENCE"`
	Book          int `json:"BOOK"`
	Versicle      int `json:"VERSICLE"`
	Participation int `json:"PARTICIPATION"`
	Guest         int `json:"GUEST"`
	Game          int `json:"GAME"`
}

// DailyPointsByGender splits one day's points by gender.
type DailyPointsByGender struct {
	Male   int `json:"male"`
	Female int `json:"female"`
}

// DailyPointsTrend is one day of the points trend chart.
type DailyPointsTrend struct {
	Day               int                  `json:"day"`
	Date              string               `json:"date"`
	TotalPoints       int                  `json:"total_points"`
	UniqueStudents    int                  `json:"unique_students"`
	AveragePerStudent float64              `json:"average_per_student"`
	Breakdown         DailyPointsBreakdown `json:"breakdown"`
	ByGender          DailyPointsByGender  `json:"by_gender"`
}

// PointsDistributionRange buckets students by total points.
type PointsDistributionRange struct {
	Range        string  `json:"range"`
	StudentCount int     `json:"student_count"`
	Percentage   float64 `json:"percentage"`
}

// PointsDistributionByGender is the average/median pair for one gender.
type PointsDistributionByGender struct {
	Average float64 `json:"average"`
	Median  float64 `json:"median"`
}

// PointsGenderPair splits the distribution stats by gender.
type PointsGenderPair struct {
	Male   PointsDistributionByGender `json:"male"`
	Female PointsDistributionByGender `json:"female"`
}

// PointsDistribution is the event-wide points histogram.
type PointsDistribution struct {
	TotalPointsAwarded int                       `json:"total_points_awarded"`
	DaysElapsed        int                       `json:"days_elapsed"`
	Distribution       []PointsDistributionRange `json:"distribution"`
	MedianPoints       float64                   `json:"median_points"`
	AveragePoints      float64                   `json:"average_points"`
	TopScore           int                       `json:"top_score"`
	ByGender           PointsGenderPair          `json:"by_gender"`
}

// GenderTopPerformer names the best performer of one gender.
type GenderTopPerformer struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// GenderPerformanceStats aggregates one gender's performance.
type GenderPerformanceStats struct {
	TotalStudents         int                `json:"total_students"`
	AverageAttendanceRate float64            `json:"average_attendance_rate"`
	AveragePoints         float64            `json:"average_points"`
	EngagementScore       float64            `json:"engagement_score"`
	TopPerformer          GenderTopPerformer `json:"top_performer"`
}

// GenderComparison is the male/female metric deltas.
type GenderComparison struct {
	AttendanceDifference float64 `json:"attendance_difference"`
	PointsDifference     float64 `json:"points_difference"`
	EngagementDifference float64 `json:"engagement_difference"`
}

// GenderPerformanceAnalysis compares performance between genders.
type GenderPerformanceAnalysis struct {
	Male       GenderPerformanceStats `json:"male"`
	Female     GenderPerformanceStats `json:"female"`
	Comparison GenderComparison       `json:"comparison"`
}

// AtRiskParticipants counts participants trending toward dropping out.
type AtRiskParticipants struct {
	LowAttendance int `json:"low_attendance"`
	LowEngagement int `json:"low_engagement"`
	LikelyToDrop  int `json:"likely_to_drop"`
}

// SuccessIndicators summarize whether the event is on track.
type SuccessIndicators struct {
	OnTrackForGoals     bool   `json:"on_track_for_goals"`
	EngagementTrending  string `json:"engagement_trending"`
	AttendanceStability string `json:"attendance_stability"`
}

// FinalDayProjections estimate the closing day.
type FinalDayProjections struct {
	ExpectedAttendance   int     `json:"expected_attendance"`
	CelebrationReadiness float64 `json:"celebration_readiness"`
}

// EventPredictions forecasts the rest of the event.
type EventPredictions struct {
	RemainingDays            int                 `json:"remaining_days"`
	ProjectedFinalAttendance int                 `json:"projected_final_attendance"`
	ProjectedTotalPoints     int                 `json:"projected_total_points"`
	CompletionForecast       float64             `json:"completion_forecast"`
	AtRiskParticipants       AtRiskParticipants  `json:"at_risk_participants"`
	SuccessIndicators        SuccessIndicators   `json:"success_indicators"`
	FinalDayProjections      FinalDayProjections `json:"final_day_projections"`
}

// PointValue is the configured value of one point category.
type PointValue struct {
	Value       int    `json:"value"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// PointSystem maps each category to its configured value.
type PointSystem map[PointCategory]PointValue

// SystemConfig is the backend's tunable configuration.
type SystemConfig struct {
	AgeGroups           map[AgeGroup]string `json:"age_groups"`
	AttendanceThreshold float64             `json:"attendance_threshold"`
	EngagementBenchmark float64             `json:"engagement_benchmark"`
	MaxDailyPoints      int                 `json:"max_daily_points"`
	SystemVersion       string              `json:"system_version"`
}
