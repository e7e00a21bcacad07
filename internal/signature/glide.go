package signature

// glideEnd is why the 3x+1 orbit stopped.
type glideEnd int

const (
	// endGlided: the orbit dropped below its starting value.
	endGlided glideEnd = iota
	// endReachedOne: the orbit hit 1 without ever dropping below start
	// (only possible for start <= 2).
	endReachedOne
	// endCapped: the step cap was reached first.
	endCapped
)

// glideSteps runs the 3x+1 map from np and counts steps until the orbit
// first drops below np, checking after every step including the first.
// The step count never exceeds limit.
func glideSteps(np int64, limit int) (int, glideEnd) {
	curr := np
	steps := 0
	for curr > 1 && steps < limit {
		if curr%2 == 0 {
			curr >>= 1
		} else {
			curr = 3*curr + 1
		}
		steps++
		if curr < np {
			return steps, endGlided
		}
	}
	if curr <= 1 {
		return steps, endReachedOne
	}
	return steps, endCapped
}
