package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sktech/account-gateway/internal/core/ports"
)

type recordingAudit struct {
	mu     sync.Mutex
	events []ports.LoginEventInput
}

func (r *recordingAudit) Process(_ context.Context, event ports.LoginEventInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordingAudit) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func TestDispatcher_ProcessesEnqueuedEvents(t *testing.T) {
	audit := &recordingAudit{}
	d := NewDispatcher(2, audit, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	emails := []string{"a@skt.com", "b@skt.com", "c@skt.com", "a@skt.com"}
	for _, email := range emails {
		d.Enqueue(ports.LoginEventInput{Email: email, Timestamp: time.Now()})
	}

	deadline := time.After(2 * time.Second)
	for audit.len() < len(emails) {
		select {
		case <-deadline:
			t.Fatalf("expected %d events, got %d", len(emails), audit.len())
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestDispatcher_ShardIsStablePerEmail(t *testing.T) {
	d := NewDispatcher(4, &recordingAudit{}, zerolog.Nop())

	first := d.shardIndex("ordered@skt.com")
	for i := 0; i < 50; i++ {
		if got := d.shardIndex("ordered@skt.com"); got != first {
			t.Fatalf("shard changed between calls: %d vs %d", first, got)
		}
	}
	if first < 0 || first >= 4 {
		t.Fatalf("shard out of range: %d", first)
	}
}
