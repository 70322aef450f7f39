package calculation

// Grade maps a warning count to a letter grade.
func Grade(warnings int) string {
	switch {
	case warnings <= 0:
		return "A+"
	case warnings <= 5:
		return "A"
	case warnings <= 10:
		return "B+"
	case warnings <= 15:
		return "B"
	case warnings <= 25:
		return "C"
	default:
		return "D"
	}
}
