package types

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
)

// languages the backend can format dates for. Thai is the
// app default, English the fallback for everything else.
var matcher = language.NewMatcher([]language.Tag{
	language.Thai,
	language.English,
})

var shortMonthsThai = [12]string{
	"ม.ค.", "ก.พ.", "มี.ค.", "เม.ย.", "พ.ค.", "มิ.ย.",
	"ก.ค.", "ส.ค.", "ก.ย.", "ต.ค.", "พ.ย.", "ธ.ค.",
}

// DaysUntilEndOfMonth returns the inclusive count of days remaining in
// the month of t. The result is never smaller than 1 so that it can be
// used as a divisor in budget calculations.
func DaysUntilEndOfMonth(t time.Time) int {
	days := MonthOf(t).LastDay() - t.Day() + 1
	if days < 1 {
		return 1
	}

	return days
}

// FormatShortDate formats a date as day and abbreviated month name,
// e.g. "31 ธ.ค." for Thai and "31 Dec" for English.
func FormatShortDate(t time.Time, tag language.Tag) string {
	_, index, _ := matcher.Match(tag)

	// Index 0 is Thai, see the matcher above
	if index == 0 {
		return fmt.Sprintf("%d %s", t.Day(), shortMonthsThai[t.Month()-1])
	}

	return fmt.Sprintf("%d %s", t.Day(), t.Format("Jan"))
}
