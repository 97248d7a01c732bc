package activity

import "time"

type Activity struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Sport     string    `json:"sport"`
	CreatedBy string    `json:"created_by"`
	StartedAt time.Time `json:"started_at"`
	CreatedAt time.Time `json:"created_at"`
}

// TrackPoint is one captured location sample. Uploads carry the complete
// track in capture order once recording has stopped.
type TrackPoint struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	TimestampMs int64   `json:"timestamp_ms"`
}

type TrackUpload struct {
	Points []TrackPoint `json:"points"`
}
