package activity

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"backend-tracklens/internal/analysis"
	"backend-tracklens/internal/db"
	"backend-tracklens/internal/stream"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
)

const summaryCacheTTL = 24 * time.Hour

type Service struct {
	db       db.Querier
	cache    *redis.Client
	analyzer *analysis.Analyzer
	hub      *stream.Hub
}

func NewService(db db.Querier, cache *redis.Client, analyzer *analysis.Analyzer, hub *stream.Hub) *Service {
	return &Service{db: db, cache: cache, analyzer: analyzer, hub: hub}
}

func (s *Service) CreateActivity(ctx context.Context, input Activity) (Activity, error) {
	input.ID = uuid.NewString()
	if input.StartedAt.IsZero() {
		input.StartedAt = time.Now()
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO activities (id, name, sport, created_by, started_at)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at
	`, input.ID, input.Name, input.Sport, input.CreatedBy, input.StartedAt)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Activity{}, err
	}
	return input, nil
}

func (s *Service) GetActivity(ctx context.Context, id string) (Activity, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, sport, created_by, started_at, created_at
		FROM activities WHERE id=$1
	`, id)

	var a Activity
	if err := row.Scan(&a.ID, &a.Name, &a.Sport, &a.CreatedBy, &a.StartedAt, &a.CreatedAt); err != nil {
		return Activity{}, err
	}
	return a, nil
}

func (s *Service) ListActivities(ctx context.Context, createdBy string) ([]Activity, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, sport, created_by, started_at, created_at
		FROM activities WHERE created_by=$1
		ORDER BY started_at DESC
	`, createdBy)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []Activity
	for rows.Next() {
		var a Activity
		if err := rows.Scan(&a.ID, &a.Name, &a.Sport, &a.CreatedBy, &a.StartedAt, &a.CreatedAt); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

// ReplaceTrack stores the complete captured track for an activity, replacing
// any earlier upload. Points are kept in capture order via an explicit
// sequence column. A fresh upload invalidates the cached summary.
func (s *Service) ReplaceTrack(ctx context.Context, activityID string, points []TrackPoint) (int, error) {
	if _, err := s.db.Exec(ctx, `DELETE FROM track_points WHERE activity_id=$1`, activityID); err != nil {
		return 0, err
	}

	batch := &pgx.Batch{}
	for seq, p := range points {
		batch.Queue(`
			INSERT INTO track_points (activity_id, seq, location, recorded_at_ms)
			VALUES ($1, $2, ST_SetSRID(ST_MakePoint($3,$4), 4326)::geography, $5)
		`, activityID, seq, p.Lng, p.Lat, p.TimestampMs)
	}
	results := s.db.SendBatch(ctx, batch)
	if err := results.Close(); err != nil {
		return 0, err
	}

	s.invalidateSummary(ctx, activityID)
	return len(points), nil
}

func (s *Service) Track(ctx context.Context, activityID string) ([]TrackPoint, error) {
	rows, err := s.db.Query(ctx, `
		SELECT ST_Y(location::geometry), ST_X(location::geometry), recorded_at_ms
		FROM track_points WHERE activity_id=$1
		ORDER BY seq
	`, activityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []TrackPoint
	for rows.Next() {
		var p TrackPoint
		if err := rows.Scan(&p.Lat, &p.Lng, &p.TimestampMs); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// Summarize returns the activity's analysis summary, recomputing it from the
// stored track on a cache miss. Computed summaries are persisted on the
// activity row, cached in Redis, and broadcast to stream subscribers.
func (s *Service) Summarize(ctx context.Context, activityID string) (analysis.Summary, error) {
	if cached, ok := s.cachedSummary(ctx, activityID); ok {
		return cached, nil
	}

	points, err := s.Track(ctx, activityID)
	if err != nil {
		return analysis.Summary{}, err
	}

	samples := make([]analysis.Point, len(points))
	for i, p := range points {
		samples[i] = analysis.Point{Lat: p.Lat, Lng: p.Lng, TimestampMs: p.TimestampMs}
	}

	summary, err := s.analyzer.Analyze(samples)
	if err != nil {
		return analysis.Summary{}, err
	}

	payload, err := json.Marshal(summary)
	if err != nil {
		return analysis.Summary{}, err
	}

	if _, err := s.db.Exec(ctx, `UPDATE activities SET summary=$2 WHERE id=$1`, activityID, payload); err != nil {
		return analysis.Summary{}, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, summaryKey(activityID), payload, summaryCacheTTL).Err(); err != nil {
			log.Printf("summary cache set error: %v", err)
		}
	}
	if s.hub != nil {
		s.hub.Broadcast(activityID, payload)
	}

	return summary, nil
}

func (s *Service) cachedSummary(ctx context.Context, activityID string) (analysis.Summary, bool) {
	if s.cache == nil {
		return analysis.Summary{}, false
	}
	raw, err := s.cache.Get(ctx, summaryKey(activityID)).Bytes()
	if err != nil {
		return analysis.Summary{}, false
	}
	var summary analysis.Summary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return analysis.Summary{}, false
	}
	return summary, true
}

func (s *Service) invalidateSummary(ctx context.Context, activityID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, summaryKey(activityID)).Err(); err != nil {
		log.Printf("summary cache del error: %v", err)
	}
}

func summaryKey(activityID string) string {
	return "activity:" + activityID + ":summary"
}
