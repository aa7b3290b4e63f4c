package workspace

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hammad983ae/sustaino-sub007/internal/session"
	"github.com/hammad983ae/sustaino-sub007/internal/store"
)

// memKV is an in-memory store.KV recording per-key write counts. onPut runs
// outside the lock so tests can re-enter the manager from a write.
type memKV struct {
	mu      sync.Mutex
	entries map[string][]byte
	puts    map[string]int
	onPut   func(key string)
}

var _ store.KV = (*memKV)(nil)

func newMemKV() *memKV {
	return &memKV{
		entries: map[string][]byte{},
		puts:    map[string]int{},
	}
}

func (k *memKV) Get(_ context.Context, key string) ([]byte, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	value, ok := k.entries[key]
	if !ok {
		return nil, store.ErrRecordNotFound
	}
	return value, nil
}

func (k *memKV) Put(_ context.Context, key string, value []byte) error {
	k.mu.Lock()
	k.entries[key] = value
	k.puts[key]++
	hook := k.onPut
	k.mu.Unlock()

	if hook != nil {
		hook(key)
	}
	return nil
}

func (k *memKV) Delete(_ context.Context, keys ...string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	for _, key := range keys {
		delete(k.entries, key)
	}
	return nil
}

func (k *memKV) Keys(_ context.Context, prefix string) ([]string, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	var keys []string
	for key := range k.entries {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type manualTimer struct {
	f       func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	t.stopped = true
	return true
}

// manualScheduler collects scheduled callbacks for explicit firing, recording
// the window each one was scheduled with.
type manualScheduler struct {
	timers  []*manualTimer
	windows []time.Duration
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &manualTimer{f: f}
	s.timers = append(s.timers, t)
	s.windows = append(s.windows, d)
	return t
}

// Fire runs every timer not cancelled yet, in scheduling order.
func (s *manualScheduler) Fire() {
	for i := 0; i < len(s.timers); i++ {
		t := s.timers[i]
		if t.stopped {
			continue
		}
		t.stopped = true
		t.f()
	}
}

type fakeJobs struct {
	archived   []*session.Data
	archiveErr error
	hydrated   *session.Data
	hydrateErr error
}

func (f *fakeJobs) ArchiveSession(_ context.Context, data *session.Data) error {
	if f.archiveErr != nil {
		return f.archiveErr
	}
	f.archived = append(f.archived, data)
	return nil
}

func (f *fakeJobs) HydrateSession(_ context.Context, _ string) (*session.Data, error) {
	if f.hydrateErr != nil {
		return nil, f.hydrateErr
	}
	return f.hydrated, nil
}
