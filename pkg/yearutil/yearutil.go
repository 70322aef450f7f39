package yearutil

// IndexOf returns the zero-based projection index of a calendar year.
func IndexOf(baseYear, year int) (int, bool) {
	idx := year - baseYear
	if idx < 0 {
		return 0, false
	}
	return idx, true
}

// Horizon lists the calendar years covered by a projection of n years.
func Horizon(baseYear, n int) []int {
	if n <= 0 {
		return nil
	}
	years := make([]int, n)
	for i := range years {
		years[i] = baseYear + i
	}
	return years
}

// Span lists every year from first to last inclusive.
func Span(first, last int) []int {
	if last < first {
		return nil
	}
	return Horizon(first, last-first+1)
}

// LastYear returns the final calendar year of a projection of n years.
func LastYear(baseYear, n int) int {
	return baseYear + n - 1
}
