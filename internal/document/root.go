// Package document models the page's root element as seen by server rendering:
// the class list the <html> tag is emitted with.
package document

import (
	"strings"
	"sync"
)

// Root is the document root's class classification. Order of first insertion is kept
// so rendered markup is stable.
type Root struct {
	mu      sync.RWMutex
	classes []string
}

// NewRoot returns a root carrying the given base classes.
func NewRoot(classes ...string) *Root {
	r := &Root{}
	for _, c := range classes {
		r.SetClass(c, true)
	}
	return r
}

// SetClass adds or removes a class marker. Blank names are ignored.
func (r *Root) SetClass(name string, on bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(name)
	switch {
	case on && idx < 0:
		r.classes = append(r.classes, name)
	case !on && idx >= 0:
		r.classes = append(r.classes[:idx], r.classes[idx+1:]...)
	}
}

func (r *Root) HasClass(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.indexOf(name) >= 0
}

// ClassAttr is the value for the root's class attribute.
func (r *Root) ClassAttr() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return strings.Join(r.classes, " ")
}

func (r *Root) indexOf(name string) int {
	for i, c := range r.classes {
		if c == name {
			return i
		}
	}
	return -1
}
