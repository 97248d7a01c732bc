package stream

import (
	"context"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Hub fans freshly computed activity summaries out to websocket
// subscribers. With Redis configured, summaries are also published so other
// instances can forward them to their own subscribers.
type Hub struct {
	redis       *redis.Client
	subscribers map[string]map[*Subscriber]struct{}
	mu          sync.RWMutex
}

type Subscriber struct {
	ActivityID string
	Send       chan []byte
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		redis:       redisClient,
		subscribers: map[string]map[*Subscriber]struct{}{},
	}

	if redisClient != nil {
		go h.forwardFromRedis()
	}
	return h
}

func (h *Hub) Register(activityID string) *Subscriber {
	sub := &Subscriber{
		ActivityID: activityID,
		Send:       make(chan []byte, 16),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subscribers[activityID] == nil {
		h.subscribers[activityID] = map[*Subscriber]struct{}{}
	}
	h.subscribers[activityID][sub] = struct{}{}
	return sub
}

func (h *Hub) Unregister(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if subs, ok := h.subscribers[sub.ActivityID]; ok {
		delete(subs, sub)
		if len(subs) == 0 {
			delete(h.subscribers, sub.ActivityID)
		}
	}
	close(sub.Send)
}

func (h *Hub) Broadcast(activityID string, payload []byte) {
	h.deliver(activityID, payload)

	if h.redis != nil {
		err := h.redis.Publish(context.Background(), summaryChannel(activityID), payload).Err()
		if err != nil {
			log.Printf("redis publish error: %v", err)
		}
	}
}

func (h *Hub) deliver(activityID string, payload []byte) {
	h.mu.RLock()
	subs := h.subscribers[activityID]
	h.mu.RUnlock()

	for sub := range subs {
		select {
		case sub.Send <- payload:
		default:
		}
	}
}

func (h *Hub) forwardFromRedis() {
	pubsub := h.redis.PSubscribe(context.Background(), "activity:*:summary")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		if activityID := activityIDFromChannel(msg.Channel); activityID != "" {
			h.deliver(activityID, []byte(msg.Payload))
		}
	}
}

func summaryChannel(activityID string) string {
	return "activity:" + activityID + ":summary"
}

func activityIDFromChannel(ch string) string {
	// activity:{id}:summary
	const prefix = "activity:"
	const suffix = ":summary"
	if len(ch) <= len(prefix)+len(suffix) {
		return ""
	}
	return ch[len(prefix) : len(ch)-len(suffix)]
}
