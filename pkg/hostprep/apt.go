package hostprep

import (
	"context"
	"fmt"
	"strings"

	"github.com/virtnode-tools/virtnode/pkg/runner"
	"github.com/virtnode-tools/virtnode/pkg/util"
)

// aptEnv keeps dpkg from prompting during unattended runs.
const aptEnv = "DEBIAN_FRONTEND=noninteractive"

// Apt wraps the target's package manager. All operations are best-effort
// from the caller's point of view: failures are returned but the
// provisioning sequence treats them as warnings.
type Apt struct {
	run runner.Runner
}

// NewApt returns an Apt bound to the given runner.
func NewApt(run runner.Runner) *Apt {
	return &Apt{run: run}
}

// Update refreshes the package index.
func (a *Apt) Update(ctx context.Context) error {
	return a.exec(ctx, "update")
}

// DistUpgrade upgrades all installed packages, allowing dependency changes.
func (a *Apt) DistUpgrade(ctx context.Context) error {
	return a.exec(ctx, "dist-upgrade -y")
}

// Install installs the given packages.
func (a *Apt) Install(ctx context.Context, packages ...string) error {
	return a.exec(ctx, "install -y "+strings.Join(packages, " "))
}

// Remove uninstalls the given packages.
func (a *Apt) Remove(ctx context.Context, packages ...string) error {
	return a.exec(ctx, "remove -y "+strings.Join(packages, " "))
}

func (a *Apt) exec(ctx context.Context, args string) error {
	command := fmt.Sprintf("%s apt-get %s", aptEnv, args)
	output, err := a.run.Run(ctx, command)
	if err != nil {
		return fmt.Errorf("apt-get %s: %w (%s)", args, err, lastLine(output))
	}
	return nil
}

// lastLine trims apt's verbose output down to its final line for error
// messages.
func lastLine(output []byte) string {
	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	if len(lines) == 0 {
		return ""
	}
	return lines[len(lines)-1]
}

// InstallBasePackages installs the pre-repository package set, retrying
// once after re-applying the postfix patch: the first attempt can fail on
// the same hostname-resolution problem the patch fixes.
func InstallBasePackages(ctx context.Context, run runner.Runner, postfixPath string, packages []string) error {
	apt := NewApt(run)
	err := apt.Install(ctx, packages...)
	if err == nil {
		return nil
	}

	util.WithStep("install-base-packages").Warnf("first attempt failed, re-patching postfix and retrying: %v", err)
	if perr := PatchPostfix(run, postfixPath); perr != nil {
		util.WithStep("install-base-packages").Warnf("re-patch failed: %v", perr)
	}
	return apt.Install(ctx, packages...)
}
