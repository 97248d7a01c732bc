package analysis

// Point is one location sample captured during an activity.
// Tracks are ordered by capture time; timestamps are expected to be
// non-decreasing (negative deltas are clamped to zero, not rejected).
type Point struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	TimestampMs int64   `json:"timestamp_ms"`
}

// Split is the time taken to complete one whole kilometer of moving
// distance. Km starts at 1 and increases by exactly one per split.
type Split struct {
	Km          int     `json:"km"`
	DurationSec float64 `json:"duration_sec"`
}

// Summary is the result of analyzing a complete track. All values are in
// SI base units; display conversion is the consumer's problem.
type Summary struct {
	MovingDistanceM float64 `json:"moving_distance_m"`
	MovingTimeSec   float64 `json:"moving_time_sec"`
	ElapsedSec      float64 `json:"elapsed_sec"`
	AverageSpeedMps float64 `json:"average_speed_mps"`
	PausedSec       float64 `json:"paused_sec"`
	PauseCount      int     `json:"pause_count"`
	Splits          []Split `json:"splits"`
}
