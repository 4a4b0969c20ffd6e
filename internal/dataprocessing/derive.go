package dataprocessing

import (
	"time"

	"cricketcli/pkg/contracts/domain"
)

// DaysPerYear is the divisor used for the age approximation; leap days and
// month boundaries are deliberately ignored
const DaysPerYear = 365

// Derive fills Age and TotalMatches on every record in place and returns the
// same slice. Age is computed against now, which callers pass explicitly so
// runs can be reproduced.
func Derive(records []domain.PlayerRecord, now time.Time) []domain.PlayerRecord {
	ref := wallClock(now)
	for i := range records {
		records[i].Age = AgeAt(records[i].DateOfBirth, ref)
		records[i].TotalMatches = records[i].MatchSum()
	}
	return records
}

// AgeAt returns floor(whole days between dob and now / 365)
func AgeAt(dob, now time.Time) int {
	days := floorDiv(int64(now.Sub(dob)), int64(24*time.Hour))
	return int(floorDiv(days, DaysPerYear))
}

// wallClock reinterprets t's local date and time as UTC so that it compares
// against parsed dates, which carry no zone
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
