package hostprep

import (
	"context"
	"fmt"
	"time"

	"github.com/virtnode-tools/virtnode/pkg/runner"
	"github.com/virtnode-tools/virtnode/pkg/util"
)

// Reboot restarts the target after a fixed delay. The delay gives log
// output and the SSH connection time to drain.
func Reboot(ctx context.Context, run runner.Runner, delay time.Duration) error {
	util.WithHost(run.Host()).Infof("rebooting in %s", delay)
	select {
	case <-time.After(delay):
	case <-ctx.Done():
		return ctx.Err()
	}
	if _, err := run.Run(ctx, "shutdown -r now"); err != nil {
		return fmt.Errorf("triggering reboot: %w", err)
	}
	return nil
}
