package hostprep

import (
	"context"
	"fmt"

	"github.com/virtnode-tools/virtnode/pkg/runner"
)

// forwardingConfPath is the sysctl drop-in enabling routed guest traffic.
const forwardingConfPath = "/etc/sysctl.d/99-virtnode-forwarding.conf"

const forwardingConf = `net.ipv4.ip_forward = 1
net.ipv6.conf.all.forwarding = 1
`

// EnableForwarding writes the IP forwarding sysctl drop-in and reloads the
// sysctl configuration so it applies before the reboot as well.
func EnableForwarding(ctx context.Context, run runner.Runner) error {
	if err := run.WriteFile(forwardingConfPath, []byte(forwardingConf), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", forwardingConfPath, err)
	}
	if _, err := run.Run(ctx, "sysctl --system"); err != nil {
		return fmt.Errorf("reloading sysctl: %w", err)
	}
	return nil
}
