package mq

import (
	"context"
	"encoding/json"
	"log"

	"mcsons/rdx"
)

// Event represents a domain event published for back-office consumers
// (dashboard refresh, notification fan-out).
type Event struct {
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	Method     string `json:"method"`
	UserID     string `json:"user_id,omitempty"`
}

const channel = "store-events"

// Emit publishes a domain event to Redis. Failures are logged, never fatal:
// events are advisory, the write that triggered them has already committed.
func Emit(eventName string, content Event) {
	payload := struct {
		Event
		Name string `json:"event"`
	}{Event: content, Name: eventName}

	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[Emit] failed to marshal event: %v", err)
		return
	}

	if err := rdx.Conn.Publish(context.Background(), channel, data).Err(); err != nil {
		log.Printf("[Emit] failed to publish %s: %v", eventName, err)
	}
}

// StartEventLogger subscribes to the event channel and logs traffic. The
// admin console tails these through the ops log.
func StartEventLogger() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, channel)
	ch := sub.Channel()

	log.Println("[EventLogger] listening for store events...")

	for msg := range ch {
		log.Printf("[EventLogger] %s", msg.Payload)
	}
}
