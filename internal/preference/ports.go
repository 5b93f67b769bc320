package preference

import "context"

// StorageKey is the fixed key the controller persists under.
const StorageKey = "theme"

// DarkClass is the root class marker for dark mode.
const DarkClass = "dark"

// Store is a durable key-value store. Get returns sentinel.ErrNotFound when the key
// is absent; any other error means the store could not answer.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Listener receives ambient signal changes; matches reports "prefers dark".
type Listener func(ctx context.Context, matches bool)

// Unsubscribe releases a subscription. Calling it more than once is safe.
type Unsubscribe func()

// AmbientSource is the system-level dark-mode signal.
type AmbientSource interface {
	QueryCurrent(ctx context.Context) (bool, error)
	Subscribe(fn Listener) (Unsubscribe, error)
}

// Styler receives the root class marker.
type Styler interface {
	SetClass(name string, on bool)
}
