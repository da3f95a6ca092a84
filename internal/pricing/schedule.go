package pricing

import "dopc/internal/domain"

// Contains reports whether distance falls in [Min, Max), or [Min, ∞) when Max is 0.
func (r DistanceRange) Contains(distance int) bool {
	return distance >= r.Min && (r.Max == 0 || distance < r.Max)
}

// Match returns the first range containing distance.
func (s Schedule) Match(distance int) (DistanceRange, bool) {
	for _, r := range s.Ranges {
		if r.Contains(distance) {
			return r, true
		}
	}
	return DistanceRange{}, false
}

// Validate rejects schedules the engine cannot price with. A malformed
// schedule is reported as ErrDeliveryNotPossible.
func (s Schedule) Validate() error {
	if len(s.Ranges) == 0 {
		return domain.NewErrorf(domain.ErrDeliveryNotPossible, "malformed schedule: no distance ranges")
	}
	if s.Divisor <= 0 {
		return domain.NewErrorf(domain.ErrDeliveryNotPossible, "malformed schedule: divisor must be positive, got %d", s.Divisor)
	}
	for i := 1; i < len(s.Ranges); i++ {
		if s.Ranges[i].Min <= s.Ranges[i-1].Min {
			return domain.NewErrorf(domain.ErrDeliveryNotPossible,
				"malformed schedule: range %d min %d does not increase over %d", i, s.Ranges[i].Min, s.Ranges[i-1].Min)
		}
	}
	return nil
}

// MaxDistance is the distance from which delivery is refused.
func (s Schedule) MaxDistance() int {
	if len(s.Ranges) == 0 {
		return 0
	}
	return s.Ranges[len(s.Ranges)-1].Min
}
