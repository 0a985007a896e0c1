package format

import (
	"fmt"
	"strconv"

	"github.com/takhmino/takhmino/pkg/constants"
)

// FormatMonthsResult renders a months-to-goal figure. Below a year it shows
// months; from 12 months on it shows whole years rounded up, so a result never
// understates the wait and never mentions months.
func FormatMonthsResult(months int) string {
	if months < 0 {
		months = 0
	}
	if months < constants.MonthsPerYear {
		if months == 1 {
			return "~1 month"
		}
		return fmt.Sprintf("~%d months", months)
	}

	years := yearsCeil(months)
	if years == 1 {
		return "~1 year"
	}
	return fmt.Sprintf("~%d years", years)
}

// FormatMonthsResultFa is the Persian rendering of FormatMonthsResult.
func FormatMonthsResultFa(months int) string {
	if months < 0 {
		months = 0
	}
	if months < constants.MonthsPerYear {
		return "حدود " + ToScript(strconv.Itoa(months), ScriptPersian) + " ماه"
	}
	return "حدود " + ToScript(strconv.Itoa(yearsCeil(months)), ScriptPersian) + " سال"
}

func yearsCeil(months int) int {
	return (months + constants.MonthsPerYear - 1) / constants.MonthsPerYear
}
