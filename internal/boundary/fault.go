package boundary

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Status is the boundary's health.
type Status int

const (
	Healthy Status = iota
	Faulted
)

func (s Status) String() string {
	if s == Faulted {
		return "faulted"
	}
	return "healthy"
}

// ErrorRecord is the structured form of a render failure.
type ErrorRecord struct {
	Kind    string
	Message string
	Trace   string
	// ComponentStack lists component names from the failing element outward.
	ComponentStack []string
}

func (r ErrorRecord) Error() string {
	return r.Kind + ": " + r.Message
}

// StackString renders the component stack one frame per line, innermost first.
func (r ErrorRecord) StackString() string {
	var b strings.Builder
	for _, name := range r.ComponentStack {
		b.WriteString("    in ")
		b.WriteString(name)
		b.WriteByte('\n')
	}
	return b.String()
}

func (r ErrorRecord) within(name string) ErrorRecord {
	if name == "" {
		return r
	}
	stack := make([]string, len(r.ComponentStack), len(r.ComponentStack)+1)
	copy(stack, r.ComponentStack)
	r.ComponentStack = append(stack, name)
	return r
}

// FaultState is the boundary's internal state. Captured is set iff Status is Faulted.
type FaultState struct {
	Status   Status
	Captured *ErrorRecord
}

func (s FaultState) clone() FaultState {
	if s.Captured == nil {
		return s
	}
	rec := *s.Captured
	rec.ComponentStack = append([]string(nil), s.Captured.ComponentStack...)
	return FaultState{Status: s.Status, Captured: &rec}
}

// kinder lets error types name their own kind instead of exposing their Go type.
type kinder interface {
	Kind() string
}

// RecordPanic builds an ErrorRecord for a value recovered in component name.
func RecordPanic(name string, v any) ErrorRecord {
	rec := ErrorRecord{Trace: string(debug.Stack())}
	if err, ok := v.(error); ok {
		rec.Kind = kindOf(err)
		rec.Message = err.Error()
	} else {
		rec.Kind = "panic"
		rec.Message = fmt.Sprint(v)
	}
	return rec.within(name)
}

// RecordError builds an ErrorRecord for an error returned by component name.
func RecordError(name string, err error) ErrorRecord {
	rec := ErrorRecord{
		Kind:    kindOf(err),
		Message: err.Error(),
		Trace:   string(debug.Stack()),
	}
	return rec.within(name)
}

func kindOf(err error) string {
	if k, ok := err.(kinder); ok {
		return k.Kind()
	}
	return fmt.Sprintf("%T", err)
}
