package analysis

import (
	"errors"

	"backend-tracklens/internal/shared/geo"
)

// ErrInsufficientData is returned when a track has fewer than two points.
var ErrInsufficientData = errors.New("track needs at least 2 points")

// Options configure the analyzer. A zero-valued field means "use the
// default", so the pause detector cannot be disabled by setting a
// threshold to 0; lower the thresholds to small positive values instead.
type Options struct {
	SpeedThresholdMps float64
	PauseThresholdSec float64
	EarthRadiusM      float64
}

func (o Options) withDefaults() Options {
	if o.SpeedThresholdMps == 0 {
		o.SpeedThresholdMps = DefaultSpeedThresholdMps
	}
	if o.PauseThresholdSec == 0 {
		o.PauseThresholdSec = DefaultPauseThresholdSec
	}
	if o.EarthRadiusM == 0 {
		o.EarthRadiusM = geo.EarthRadiusMeters
	}
	return o
}

// Analyzer folds a captured track into a Summary. It carries no state
// between calls; concurrent use on independent tracks is safe.
type Analyzer struct {
	opts Options
}

func NewAnalyzer(opts Options) *Analyzer {
	return &Analyzer{opts: opts.withDefaults()}
}

// Analyze runs a single pass over the ordered point sequence. Each segment
// between adjacent points is either a pause (counted, its time set aside) or
// movement (distance and time accumulated, kilometer splits emitted). A
// segment that carries moving distance across one or more whole-kilometer
// boundaries emits one Split per boundary, never skipping a kilometer; the
// split start is re-anchored by linear interpolation inside the segment.
func (a *Analyzer) Analyze(points []Point) (Summary, error) {
	if len(points) < 2 {
		return Summary{}, ErrInsufficientData
	}

	var (
		movingDistM float64
		movingSec   float64
		pausedSec   float64
		pauseCount  int
		lastSplitKm int
		splits      []Split
	)
	splitStartMs := float64(points[0].TimestampMs)

	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]

		segDist := geo.DistanceMetersOnSphere(prev.Lat, prev.Lng, cur.Lat, cur.Lng, a.opts.EarthRadiusM)
		deltaSec := float64(cur.TimestampMs-prev.TimestampMs) / 1000
		if deltaSec < 0 {
			// Out-of-order timestamp; treat as an instantaneous sample.
			deltaSec = 0
		}

		if IsStationary(segDist, deltaSec, a.opts.SpeedThresholdMps, a.opts.PauseThresholdSec) {
			pauseCount++
			pausedSec += deltaSec
			continue
		}

		movingDistM += segDist
		movingSec += deltaSec

		kmNow := int(movingDistM / 1000)
		for km := lastSplitKm + 1; km <= kmNow; km++ {
			splits = append(splits, Split{
				Km:          km,
				DurationSec: (float64(cur.TimestampMs) - splitStartMs) / 1000,
			})
			overshootM := movingDistM - float64(km)*1000
			if segDist > 0 {
				splitStartMs = float64(cur.TimestampMs) - overshootM/segDist*deltaSec*1000
			} else {
				splitStartMs = float64(cur.TimestampMs)
			}
		}
		lastSplitKm = kmNow
	}

	elapsedSec := float64(points[len(points)-1].TimestampMs-points[0].TimestampMs) / 1000
	avgSpeed := 0.0
	if movingSec > 0 {
		avgSpeed = movingDistM / movingSec
	}

	return Summary{
		MovingDistanceM: movingDistM,
		MovingTimeSec:   movingSec,
		ElapsedSec:      elapsedSec,
		AverageSpeedMps: avgSpeed,
		PausedSec:       pausedSec,
		PauseCount:      pauseCount,
		Splits:          splits,
	}, nil
}
