// Package executortest provides a scripted Executor for tests.
package executortest

import (
	"context"
	"fmt"
	"sync"
)

// Call records one command invocation
type Call struct {
	Dir   string
	Name  string
	Args  []string
	Input string
}

// Flag returns the argument following flag, or "" if flag is absent
func (c Call) Flag(flag string) string {
	for i, arg := range c.Args {
		if arg == flag && i+1 < len(c.Args) {
			return c.Args[i+1]
		}
	}
	return ""
}

// Has reports whether arg appears in the call's arguments
func (c Call) Has(arg string) bool {
	for _, a := range c.Args {
		if a == arg {
			return true
		}
	}
	return false
}

// Handler scripts the result of a command
type Handler func(call Call) (string, error)

// Fake is an executor.Executor that dispatches to per-command handlers
type Fake struct {
	mu       sync.Mutex
	calls    []Call
	handlers map[string]Handler
	missing  map[string]bool
}

func New() *Fake {
	return &Fake{
		handlers: map[string]Handler{},
		missing:  map[string]bool{},
	}
}

// On registers the handler for name
func (f *Fake) On(name string, h Handler) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[name] = h
	return f
}

// Missing makes LookPath fail for name
func (f *Fake) Missing(name string) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.missing[name] = true
	return f
}

func (f *Fake) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return f.ExecuteInDir(ctx, "", name, args...)
}

func (f *Fake) ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error) {
	return f.dispatch(Call{Dir: dir, Name: name, Args: append([]string(nil), args...)})
}

func (f *Fake) ExecuteWithInput(ctx context.Context, input string, name string, args ...string) (string, error) {
	return f.dispatch(Call{Name: name, Args: append([]string(nil), args...), Input: input})
}

func (f *Fake) dispatch(call Call) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	h, ok := f.handlers[name]
	f.mu.Unlock()

	if !ok {
		return "", fmt.Errorf("command '%s' failed: unexpected command", name)
	}
	return h(call)
}

func (f *Fake) LookPath(name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.missing[name] {
		return "", fmt.Errorf("%s not found", name)
	}
	return "/usr/bin/" + name, nil
}

// Calls returns every recorded invocation
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallsTo returns the invocations of name
func (f *Fake) CallsTo(name string) []Call {
	var out []Call
	for _, c := range f.Calls() {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Reset forgets recorded calls but keeps handlers
func (f *Fake) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}
