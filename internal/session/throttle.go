package session

// AcceptSample reports whether a motion observation taken at candidate
// (seconds) should be kept, given the timestamp of the last accepted
// sample and the configured minimum sampling interval. Stateless: the
// caller owns the last-accepted timestamp and updates it only when a
// sample is accepted.
//
// minInterval must be positive; the controller substitutes
// DefaultSampleInterval for invalid configuration before calling.
func AcceptSample(candidate, last, minInterval float64) bool {
	return candidate-last >= minInterval
}
