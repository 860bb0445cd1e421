// Package testutil provides a scripted fake runner and interfaces-file
// fixtures shared by the provisioning tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
)

// FakeRunner records every command and file operation, serving reads and
// command results from scripted maps. The zero value is usable.
type FakeRunner struct {
	mu sync.Mutex

	// Files backs ReadFile/WriteFile/Remove. Keyed by path.
	Files map[string][]byte

	// Fail maps a command substring to the error returned for any
	// command containing it.
	Fail map[string]error

	// FailOnce behaves like Fail but clears each entry after one hit,
	// for retry scenarios.
	FailOnce map[string]error

	// Commands lists every Run invocation in order.
	Commands []string
}

// NewFakeRunner returns a FakeRunner seeded with the given files.
func NewFakeRunner(files map[string]string) *FakeRunner {
	f := &FakeRunner{Files: make(map[string][]byte)}
	for path, content := range files {
		f.Files[path] = []byte(content)
	}
	return f
}

// Run records the command and returns a scripted failure if one matches.
func (f *FakeRunner) Run(_ context.Context, command string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Commands = append(f.Commands, command)

	for substr, err := range f.FailOnce {
		if strings.Contains(command, substr) {
			delete(f.FailOnce, substr)
			return nil, err
		}
	}
	for substr, err := range f.Fail {
		if strings.Contains(command, substr) {
			return nil, err
		}
	}
	return nil, nil
}

// ReadFile serves from the scripted file map.
func (f *FakeRunner) ReadFile(path string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.Files[path]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", path, os.ErrNotExist)
	}
	return data, nil
}

// WriteFile stores into the scripted file map.
func (f *FakeRunner) WriteFile(path string, data []byte, _ os.FileMode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Files == nil {
		f.Files = make(map[string][]byte)
	}
	f.Files[path] = append([]byte(nil), data...)
	return nil
}

// Remove deletes from the scripted file map. Missing paths are not an error.
func (f *FakeRunner) Remove(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.Files, path)
	return nil
}

// Host names the fake target.
func (f *FakeRunner) Host() string { return "fake" }

// Close is a no-op.
func (f *FakeRunner) Close() error { return nil }

// RanCommand reports whether any recorded command contains substr.
func (f *FakeRunner) RanCommand(substr string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.Commands {
		if strings.Contains(c, substr) {
			return true
		}
	}
	return false
}

// CountCommands returns how many recorded commands contain substr.
func (f *FakeRunner) CountCommands(substr string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Commands {
		if strings.Contains(c, substr) {
			n++
		}
	}
	return n
}
