package util

import "time"

const (
	dateLayout    = "2006-01-02"
	displayLayout = "Jan 2, 2006"
)

// MonthToDate returns the first day of now's calendar month and now's
// calendar date, both as YYYY-MM-DD in now's location.
func MonthToDate(now time.Time) (string, string) {
	y, m, d := now.Date()
	currentLocation := now.Location()

	firstOfMonth := time.Date(y, m, 1, 0, 0, 0, 0, currentLocation)
	today := time.Date(y, m, d, 0, 0, 0, 0, currentLocation)

	return firstOfMonth.Format(dateLayout), today.Format(dateLayout)
}

// Today returns now's calendar date as YYYY-MM-DD.
func Today(now time.Time) string {
	return now.Format(dateLayout)
}

// FormatDate renders a YYYY-MM-DD date as "Jan 2, 2006". Values that do not
// parse are returned untouched.
func FormatDate(date string) string {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return date
	}
	return t.Format(displayLayout)
}
