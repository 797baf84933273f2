package services

import "time"

const dateLayout = "2006-01-02"

// DayCount returns the inclusive number of calendar days between two
// YYYY-MM-DD dates. It is a pure function of its inputs: a missing or
// unparsable date, or an end date before the start date, counts as 0.
func DayCount(startDate, endDate string) int {
	if startDate == "" || endDate == "" {
		return 0
	}
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return 0
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return 0
	}
	days := int(end.Sub(start).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days + 1
}
