package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/velora/commerce-system/internal/core/domain"
)

// collectingRecorder appends processed entries and signals on each write.
type collectingRecorder struct {
	mu      sync.Mutex
	entries []*domain.PaymentAudit
	done    chan struct{}
}

func newCollectingRecorder() *collectingRecorder {
	return &collectingRecorder{done: make(chan struct{}, 1024)}
}

func (r *collectingRecorder) Record(_ context.Context, entry *domain.PaymentAudit) error {
	r.mu.Lock()
	r.entries = append(r.entries, entry)
	r.mu.Unlock()
	r.done <- struct{}{}
	return nil
}

func (r *collectingRecorder) waitFor(t *testing.T, n int) []*domain.PaymentAudit {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for i := 0; i < n; i++ {
		select {
		case <-r.done:
		case <-deadline:
			t.Fatalf("timed out waiting for %d audit writes", n)
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.PaymentAudit, len(r.entries))
	copy(out, r.entries)
	return out
}

func TestDispatcher_ShardIndexIsDeterministic(t *testing.T) {
	d := NewDispatcher(4, newCollectingRecorder(), zerolog.Nop())
	for _, n := range []string{"VL-00000001", "VL-DEADBEEF", "VL-12345678"} {
		first := d.shardIndex(n)
		for i := 0; i < 10; i++ {
			if got := d.shardIndex(n); got != first {
				t.Fatalf("shard for %s moved from %d to %d", n, first, got)
			}
		}
		if first < 0 || first >= 4 {
			t.Fatalf("shard %d out of range", first)
		}
	}
}

func TestDispatcher_DeliversEntries(t *testing.T) {
	rec := newCollectingRecorder()
	d := NewDispatcher(0, rec, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < 5; i++ {
		d.Enqueue(&domain.PaymentAudit{
			OrderNumber: fmt.Sprintf("VL-%08X", i),
			ToStatus:    domain.OrderPaymentSubmitted,
		})
	}

	if got := rec.waitFor(t, 5); len(got) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(got))
	}
}

func TestDispatcher_PreservesPerOrderOrdering(t *testing.T) {
	rec := newCollectingRecorder()
	d := NewDispatcher(4, rec, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	transitions := []domain.OrderStatus{
		domain.OrderPaymentSubmitted,
		domain.OrderRejected,
		domain.OrderPaymentSubmitted,
		domain.OrderVerified,
	}
	for _, to := range transitions {
		d.Enqueue(&domain.PaymentAudit{OrderNumber: "VL-CAFEF00D", ToStatus: to})
	}

	got := rec.waitFor(t, len(transitions))
	for i, entry := range got {
		if entry.ToStatus != transitions[i] {
			t.Fatalf("entry %d out of order: got %s, want %s", i, entry.ToStatus, transitions[i])
		}
	}
}
