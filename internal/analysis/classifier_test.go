package analysis

import "testing"

func TestIsStationaryShortSegmentsAlwaysMoving(t *testing.T) {
	for _, delta := range []float64{0, 0.5, 1, 4.9} {
		if IsStationary(0, delta, DefaultSpeedThresholdMps, DefaultPauseThresholdSec) {
			t.Fatalf("segment of %vs classified as pause", delta)
		}
	}
}

func TestIsStationarySpeedThreshold(t *testing.T) {
	// 1.4m over 5s = 0.28 m/s, below 0.3
	if !IsStationary(1.4, 5, DefaultSpeedThresholdMps, DefaultPauseThresholdSec) {
		t.Fatalf("expected pause at 0.28 m/s")
	}
	// 1.6m over 5s = 0.32 m/s
	if IsStationary(1.6, 5, DefaultSpeedThresholdMps, DefaultPauseThresholdSec) {
		t.Fatalf("expected moving at 0.32 m/s")
	}
}

func TestIsStationaryZeroDuration(t *testing.T) {
	// duration guard must fire before any division
	if IsStationary(0, 0, DefaultSpeedThresholdMps, 0) {
		t.Fatalf("zero-duration segment classified as pause")
	}
}

func TestIsStationaryLongStop(t *testing.T) {
	if !IsStationary(0, 60, DefaultSpeedThresholdMps, DefaultPauseThresholdSec) {
		t.Fatalf("expected pause for a 60s stop")
	}
}
