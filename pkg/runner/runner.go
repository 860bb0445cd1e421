// Package runner abstracts where provisioning side effects land: the local
// host, or a remote host reached over SSH. Every shell-out and best-effort
// file write in the provisioning sequence goes through a Runner so the same
// step list works for both targets.
package runner

import (
	"context"
	"os"
)

// Runner executes shell commands and file operations on a target host.
type Runner interface {
	// Run executes a shell command line and returns its combined output.
	Run(ctx context.Context, command string) ([]byte, error)

	// ReadFile returns the contents of path on the target.
	ReadFile(path string) ([]byte, error)

	// WriteFile replaces path on the target with data.
	WriteFile(path string, data []byte, perm os.FileMode) error

	// Remove deletes path on the target. Missing files are not an error.
	Remove(path string) error

	// Host names the target for logging ("local" or user@host).
	Host() string

	// Close releases any connection held by the runner.
	Close() error
}
