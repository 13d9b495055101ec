// Package satmath provides saturating arithmetic over int32.
//
// Results that would fall outside [math.MinInt32, math.MaxInt32] are clamped
// to the nearest bound instead of wrapping around. No operation in this
// package returns an error or panics; every function is total over its
// input domain and safe for concurrent use.
//
// Saturation is applied per step. Folding a sequence with Sum clamps after
// each addition, so a run of large positive values pins the running total at
// math.MaxInt32 and a later negative value moves it down from there:
//
//	satmath.Sum(math.MaxInt32, 1, -1) // math.MaxInt32 - 1
package satmath
