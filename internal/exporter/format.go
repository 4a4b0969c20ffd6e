package exporter

import (
	"fmt"
	"strconv"
	"time"
)

// DateLayout is the date format used in exported files
const DateLayout = "2006-01-02"

// formatFloat formats a float64 value for CSV output with exactly 2 decimal places
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatInt formats an int value for CSV output
func formatInt(i int) string {
	return strconv.Itoa(i)
}

// formatDate formats a date without its time of day
func formatDate(t time.Time) string {
	return t.Format(DateLayout)
}
