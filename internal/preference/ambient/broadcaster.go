// Package ambient provides sources for the system color-scheme signal.
package ambient

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strings"
	"sync"

	"atelier/internal/preference"
	"atelier/pkg/platform/sentinel"
)

// HintHeader is the client hint carrying the browser's prefers-color-scheme.
const HintHeader = "Sec-CH-Prefers-Color-Scheme"

// Broadcaster is a push source: it remembers the last known value and fans changes
// out to subscribers in subscription order. Listeners run outside the lock.
type Broadcaster struct {
	mu        sync.Mutex
	known     bool
	current   bool
	nextID    int
	listeners map[int]preference.Listener
}

// NewBroadcaster returns a source with no known value; queries fail with
// sentinel.ErrUnavailable until the first Publish.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{listeners: make(map[int]preference.Listener)}
}

// NewBroadcasterWith returns a source whose current value is prefersDark.
func NewBroadcasterWith(prefersDark bool) *Broadcaster {
	b := NewBroadcaster()
	b.known = true
	b.current = prefersDark
	return b
}

// FromRequest seeds a source from the client hint header, if the browser sent one.
func FromRequest(r *http.Request) *Broadcaster {
	if prefersDark, ok := ParseHint(r.Header.Get(HintHeader)); ok {
		return NewBroadcasterWith(prefersDark)
	}
	return NewBroadcaster()
}

// ParseHint decodes a prefers-color-scheme hint value ("dark" or "light", possibly
// quoted as a structured-field string).
func ParseHint(raw string) (prefersDark bool, ok bool) {
	switch strings.ToLower(strings.Trim(strings.TrimSpace(raw), `"`)) {
	case "dark":
		return true, true
	case "light":
		return false, true
	default:
		return false, false
	}
}

func (b *Broadcaster) QueryCurrent(context.Context) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.known {
		return false, sentinel.ErrUnavailable
	}
	return b.current, nil
}

func (b *Broadcaster) Subscribe(fn preference.Listener) (preference.Unsubscribe, error) {
	if fn == nil {
		return nil, errors.New("ambient: nil listener")
	}
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.listeners[id] = fn
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.listeners, id)
			b.mu.Unlock()
		})
	}, nil
}

// Publish records a new ambient value and notifies every current subscriber.
func (b *Broadcaster) Publish(ctx context.Context, prefersDark bool) {
	b.mu.Lock()
	b.known = true
	b.current = prefersDark
	ids := make([]int, 0, len(b.listeners))
	for id := range b.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	snapshot := make([]preference.Listener, 0, len(ids))
	for _, id := range ids {
		snapshot = append(snapshot, b.listeners[id])
	}
	b.mu.Unlock()

	for _, fn := range snapshot {
		fn(ctx, prefersDark)
	}
}

// Listeners reports the number of live subscriptions.
func (b *Broadcaster) Listeners() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}
