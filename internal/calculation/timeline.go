package calculation

import (
	"github.com/fiscalsim/consolidated-fiscal/internal/domain"
	"github.com/fiscalsim/consolidated-fiscal/pkg/yearutil"
)

// MergeTimeline lays actual records and a projection on one continuous calendar.
// Years with neither are kept as gap points; where both exist the actual record wins.
func MergeTimeline(actuals []domain.ActualRecord, projection []domain.YearState) []domain.TimelinePoint {
	if len(actuals) == 0 && len(projection) == 0 {
		return nil
	}

	first, last := 0, 0
	track := func(y int) {
		if first == 0 || y < first {
			first = y
		}
		if y > last {
			last = y
		}
	}
	for _, a := range actuals {
		track(a.Year)
	}
	for _, s := range projection {
		track(s.Year)
	}

	years := yearutil.Span(first, last)
	timeline := make([]domain.TimelinePoint, len(years))
	for i, y := range years {
		timeline[i].Year = y
	}
	for i := range projection {
		if idx, ok := yearutil.IndexOf(first, projection[i].Year); ok {
			timeline[idx].Projected = &projection[i]
		}
	}
	for i := range actuals {
		if idx, ok := yearutil.IndexOf(first, actuals[i].Year); ok {
			timeline[idx].Actual = &actuals[i]
			timeline[idx].Projected = nil
		}
	}
	return timeline
}
