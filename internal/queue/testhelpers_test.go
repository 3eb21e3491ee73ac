package queue_test

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"

	"github.com/craftel-io/backend-craftel/internal/queue"
)

// newRedis spins up an in-process redis and returns a connected client.
// Both are torn down with the test.
func newRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

// fakeDLQ is an in-memory queue.Store so DLQ behavior can be tested
// without postgres. GetQueueDlq mirrors the real store's use of
// sql.ErrNoRows for missing rows.
type fakeDLQ struct {
	mu   sync.Mutex
	rows map[uuid.UUID]queue.DLQEntry
}

func newFakeDLQ() *fakeDLQ {
	return &fakeDLQ{rows: make(map[uuid.UUID]queue.DLQEntry)}
}

func (f *fakeDLQ) InsertQueueDlq(_ context.Context, entry queue.DLQEntry) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	f.rows[entry.ID] = entry
	return entry.ID, nil
}

func (f *fakeDLQ) DeleteQueueDlq(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, id)
	return nil
}

func (f *fakeDLQ) GetQueueDlq(_ context.Context, id uuid.UUID) (queue.DLQEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if entry, ok := f.rows[id]; ok {
		return entry, nil
	}
	return queue.DLQEntry{}, sql.ErrNoRows
}

func (f *fakeDLQ) ListQueueDlq(_ context.Context, kind string, limit, offset int) ([]queue.DLQEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var entries []queue.DLQEntry
	for _, entry := range f.rows {
		if kind == "" || entry.Kind == kind {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	if limit <= 0 {
		limit = len(entries)
	}
	if offset >= len(entries) {
		return nil, nil
	}
	if end := offset + limit; end < len(entries) {
		entries = entries[:end]
	}
	return append([]queue.DLQEntry(nil), entries[offset:]...), nil
}

func (f *fakeDLQ) CountQueueDlq(_ context.Context, kind string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var total int64
	for _, entry := range f.rows {
		if kind == "" || entry.Kind == kind {
			total++
		}
	}
	return total, nil
}

func (f *fakeDLQ) QueueDlqSizeByKind(_ context.Context) (map[string]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sizes := make(map[string]int64, len(f.rows))
	for _, entry := range f.rows {
		sizes[entry.Kind]++
	}
	return sizes, nil
}

func (f *fakeDLQ) snapshot() []queue.DLQEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]queue.DLQEntry, 0, len(f.rows))
	for _, entry := range f.rows {
		out = append(out, entry)
	}
	return out
}
