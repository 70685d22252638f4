package models

// HasSignal sums the given positional column over every row, starting at
// index 0, and reports whether the sum is non-zero. Callers pass data rows
// only; a header row is not skipped.
func HasSignal(rows []Row, column int) bool {
	var sum float64
	for _, r := range rows {
		sum += r.Value(column)
	}
	return sum != 0
}
