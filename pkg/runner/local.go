package runner

import (
	"context"
	"os"
	"os/exec"

	"github.com/virtnode-tools/virtnode/pkg/util"
)

// Local runs commands on this host through the shell.
type Local struct{}

// NewLocal returns a runner for the local host.
func NewLocal() *Local {
	return &Local{}
}

// Run executes command via sh -c and returns combined stdout/stderr.
func (l *Local) Run(ctx context.Context, command string) ([]byte, error) {
	util.Debugf("exec: %s", command)
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	return cmd.CombinedOutput()
}

// ReadFile returns the contents of a local file.
func (l *Local) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile replaces a local file with data.
func (l *Local) WriteFile(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}

// Remove deletes a local file. A missing file is not an error.
func (l *Local) Remove(path string) error {
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Host names the target for logging.
func (l *Local) Host() string {
	return "local"
}

// Close is a no-op for the local runner.
func (l *Local) Close() error {
	return nil
}
