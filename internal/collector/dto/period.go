package dto

// Period is the look-back hint passed to acquisition channels.
type Period string

const (
	PeriodAllTime     Period = "all_time"
	PeriodLast6Months Period = "last_6_months"
	PeriodLast30Days  Period = "last_30_days"
	PeriodLast7Days   Period = "last_7_days"
)

var periodLabels = map[Period]string{
	PeriodAllTime:     "all time (no date restriction)",
	PeriodLast6Months: "the last 6 months",
	PeriodLast30Days:  "the last 30 days",
	PeriodLast7Days:   "the last 7 days",
}

var periodDays = map[Period]int{
	PeriodAllTime:     0,
	PeriodLast6Months: 180,
	PeriodLast30Days:  30,
	PeriodLast7Days:   7,
}

// ParsePeriod returns the period for s, falling back to the last 30 days.
func ParsePeriod(s string) Period {
	p := Period(s)
	if _, ok := periodLabels[p]; ok {
		return p
	}
	return PeriodLast30Days
}

// Label is the human readable form used in prompts.
func (p Period) Label() string {
	if label, ok := periodLabels[p]; ok {
		return label
	}
	return periodLabels[PeriodLast30Days]
}

// Days is the window length; 0 means unbounded.
func (p Period) Days() int {
	if days, ok := periodDays[p]; ok {
		return days
	}
	return periodDays[PeriodLast30Days]
}
