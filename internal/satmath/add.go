package satmath

import "math"

// Overflow classifies the direction in which an addition left the int32 range.
type Overflow int

const (
	None     Overflow = iota // sum fits in int32
	Positive                 // sum exceeded math.MaxInt32
	Negative                 // sum fell below math.MinInt32
)

func (o Overflow) String() string {
	switch o {
	case None:
		return "none"
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	default:
		return "unknown"
	}
}

// Add returns a + b clamped to the int32 range.
func Add(a, b int32) int32 {
	return Clamp(int64(a) + int64(b))
}

// Clamp narrows v to int32, pinning out-of-range values to the nearest bound.
func Clamp(v int64) int32 {
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	if v < math.MinInt32 {
		return math.MinInt32
	}
	return int32(v)
}

// Sum folds values with Add starting from zero.
func Sum(values ...int32) int32 {
	var total int32
	for _, v := range values {
		total = Add(total, v)
	}
	return total
}

// Overflowed reports whether, and in which direction, a + b saturates.
func Overflowed(a, b int32) Overflow {
	sum := int64(a) + int64(b)
	switch {
	case sum > math.MaxInt32:
		return Positive
	case sum < math.MinInt32:
		return Negative
	default:
		return None
	}
}
