// Package events publishes domain events about posts, comments and follows.
package events

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	PostCreated    = "post.created"
	PostUpdated    = "post.updated"
	PostDeleted    = "post.deleted"
	CommentCreated = "comment.created"
	FollowCreated  = "follow.created"
	FollowRemoved  = "follow.removed"
)

type Event struct {
	Type       string            `json:"type"`
	ActorID    uint              `json:"actor_id"`
	SubjectID  uint              `json:"subject_id"`
	OccurredAt time.Time         `json:"occurred_at"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

func New(eventType string, actorID, subjectID uint) Event {
	return Event{Type: eventType, ActorID: actorID, SubjectID: subjectID, OccurredAt: time.Now().UTC()}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Emit publishes and only logs failures; callers never fail on event delivery.
func Emit(ctx context.Context, p Publisher, event Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, event); err != nil {
		slog.Warn("events: publish failed", "type", event.Type, "error", err)
	}
}

type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

func (r *Recorder) Types() []string {
	events := r.Events()
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.Type)
	}
	return out
}
