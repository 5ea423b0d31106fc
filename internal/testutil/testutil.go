// Package testutil provides shared test helpers used across packages.
package testutil

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/ai-cli-labs/mcpctl/internal/runtime"
)

// Result is the canned outcome for one fake invocation.
type Result struct {
	Output runtime.Output
	Err    error
	// Inspect, when set, runs before the result is returned. It can check
	// files the command refers to while they still exist.
	Inspect func(cmd runtime.Command)
}

// FakeRunner records every command and answers from a per-binary queue of
// results. Commands with no queued result succeed with empty output.
type FakeRunner struct {
	mu       sync.Mutex
	Calls    []runtime.Command
	results  map[string][]Result
	fallback map[string]Result
}

// NewFakeRunner returns an empty FakeRunner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		results:  make(map[string][]Result),
		fallback: make(map[string]Result),
	}
}

// Queue appends results returned, in order, for commands named name.
func (f *FakeRunner) Queue(name string, results ...Result) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[name] = append(f.results[name], results...)
}

// Always sets the result returned for name once its queue is empty.
func (f *FakeRunner) Always(name string, r Result) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fallback[name] = r
}

// Run implements runtime.Runner.
func (f *FakeRunner) Run(_ context.Context, cmd runtime.Command) (*runtime.Output, error) {
	f.mu.Lock()
	f.Calls = append(f.Calls, cmd)
	r, ok := f.fallback[cmd.Name]
	if q := f.results[cmd.Name]; len(q) > 0 {
		r, ok = q[0], true
		f.results[cmd.Name] = q[1:]
	}
	f.mu.Unlock()

	if !ok {
		return &runtime.Output{}, nil
	}
	if r.Inspect != nil {
		r.Inspect(cmd)
	}
	if r.Err != nil {
		return nil, r.Err
	}
	out := r.Output
	write(cmd.Stdout, out.Stdout)
	write(cmd.Stderr, out.Stderr)
	return &out, nil
}

// Commands returns the recorded commands as shell-quoted lines.
func (f *FakeRunner) Commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	lines := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		lines[i] = c.String()
	}
	return lines
}

// NotFound returns the error a runner reports for a missing binary.
func NotFound(name string) error {
	return fmt.Errorf("%s not found: executable file not found in $PATH", name)
}

func write(w io.Writer, s string) {
	if w != nil && s != "" {
		_, _ = io.WriteString(w, s)
	}
}
