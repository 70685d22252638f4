package models

import "time"

// ClockLayout renders the wall-clock part of a time of day as HH:mm:ss
const ClockLayout = "15:04:05"

// referenceDate anchors every time of day. Its date part is never displayed.
var referenceDate = time.Date(1901, time.February, 1, 0, 0, 0, 0, time.UTC)

// ReferenceDate returns the instant ToTimeOfDay counts from
func ReferenceDate() time.Time {
	return referenceDate
}

// ToTimeOfDay converts seconds since midnight into a time on the reference date.
// Input is not validated: negative or overlong values roll into neighbouring days.
func ToTimeOfDay(seconds float64) time.Time {
	ms := int64(seconds * 1000)
	return referenceDate.Add(time.Duration(ms) * time.Millisecond)
}

// FormatClock formats the wall-clock part of t
func FormatClock(t time.Time) string {
	return t.Format(ClockLayout)
}

// NormalizeTimes rewrites the given positional columns of every row in place
func NormalizeTimes(rows []Row, columns ...int) {
	for i := range rows {
		row := &rows[i]
		if len(row.Times) < len(row.Values) {
			times := make([]time.Time, len(row.Values))
			copy(times, row.Times)
			row.Times = times
		}
		for _, col := range columns {
			idx := col - 1
			if idx < 0 || idx >= len(row.Values) {
				continue
			}
			row.Times[idx] = ToTimeOfDay(row.Values[idx])
		}
	}
}
