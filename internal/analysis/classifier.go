package analysis

// Default thresholds for the stationary classifier.
const (
	DefaultSpeedThresholdMps = 0.3
	DefaultPauseThresholdSec = 5.0
)

// IsStationary reports whether a segment of the given distance and duration
// represents a pause. Segments shorter than pauseThresholdSec are always
// treated as moving, so sampling jitter never counts as a stop. The duration
// check runs before the speed division, which keeps a zero-duration segment
// away from the division entirely.
func IsStationary(distanceMeters, deltaSec, speedThresholdMps, pauseThresholdSec float64) bool {
	if deltaSec <= 0 || deltaSec < pauseThresholdSec {
		return false
	}
	return distanceMeters/deltaSec < speedThresholdMps
}
