// Package provision sequences the two provisioning stages: host
// preparation (packages, repositories, mail patch) and network
// reconfiguration (bridge rewrite, forwarding, reboot).
//
// Structural precondition failures (wrong distribution, unsupported
// codename, no primary static interface) abort the run. Every other step
// failure is reported as a warning and the sequence continues, on the
// theory that a partially provisioned host is still recoverable by hand.
package provision

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/virtnode-tools/virtnode/pkg/cli"
	"github.com/virtnode-tools/virtnode/pkg/hostprep"
	"github.com/virtnode-tools/virtnode/pkg/ifupdown"
	"github.com/virtnode-tools/virtnode/pkg/profile"
	"github.com/virtnode-tools/virtnode/pkg/runner"
	"github.com/virtnode-tools/virtnode/pkg/util"
)

// stepWidth aligns the step status column.
const stepWidth = 28

// Provisioner drives one provisioning run against a single target.
type Provisioner struct {
	Run     runner.Runner
	Profile *profile.Profile

	// Out receives the per-step status lines. Defaults to stdout.
	Out io.Writer

	// Start stamps the interfaces backup path. Defaults to time.Now
	// at construction.
	Start time.Time

	release  *hostprep.Release
	warnings int
}

// New returns a Provisioner for the given target and profile.
func New(run runner.Runner, prof *profile.Profile) *Provisioner {
	return &Provisioner{
		Run:     run,
		Profile: prof,
		Out:     os.Stdout,
		Start:   time.Now(),
	}
}

type step struct {
	name string
	fn   func(ctx context.Context) error
}

// Prepare runs the host-preparation stage. It returns an error only for
// fatal precondition failures; step failures are counted as warnings.
func (p *Provisioner) Prepare(ctx context.Context) error {
	prof := p.Profile
	apt := hostprep.NewApt(p.Run)

	steps := []step{
		{"patch-postfix", func(ctx context.Context) error {
			return hostprep.PatchPostfix(p.Run, prof.PostfixConfigPath)
		}},
		{"remove-enterprise-repo", func(ctx context.Context) error {
			return hostprep.RemoveEnterpriseRepo(p.Run, prof.EnterpriseListPath)
		}},
		{"detect-release", p.detectRelease},
		{"update-packages", apt.Update},
		{"upgrade-packages", apt.DistUpgrade},
		{"install-base-packages", func(ctx context.Context) error {
			return hostprep.InstallBasePackages(ctx, p.Run, prof.PostfixConfigPath, prof.BasePackages)
		}},
		{"add-hypervisor-repo", p.addHypervisorRepo},
		{"refresh-package-index", apt.Update},
		{"install-hypervisor", func(ctx context.Context) error {
			return apt.Install(ctx, prof.HypervisorPackage)
		}},
		{"remove-os-prober", func(ctx context.Context) error {
			return apt.Remove(ctx, "os-prober")
		}},
	}
	return p.execute(ctx, steps)
}

// Network runs the network-reconfiguration stage: the bridge rewrite and
// the forwarding sysctl. A failed rewrite is fatal — without a primary
// interface there is no bridge target.
func (p *Provisioner) Network(ctx context.Context) error {
	steps := []step{
		{"rewrite-interfaces", func(ctx context.Context) error {
			backup, err := ifupdown.Rewrite(p.Run, p.Profile.InterfacesPath, p.Profile.Bridge, p.Start)
			if err != nil {
				return util.NewFatalError("interfaces", err, p.Profile.InterfacesPath)
			}
			util.Infof("original configuration backed up to %s", backup)
			return nil
		}},
		{"enable-forwarding", func(ctx context.Context) error {
			return hostprep.EnableForwarding(ctx, p.Run)
		}},
	}
	return p.execute(ctx, steps)
}

// Provision runs both stages and reboots the target.
func (p *Provisioner) Provision(ctx context.Context) error {
	if err := p.Prepare(ctx); err != nil {
		return err
	}
	if err := p.Network(ctx); err != nil {
		return err
	}
	delay := time.Duration(p.Profile.RebootDelaySeconds) * time.Second
	return hostprep.Reboot(ctx, p.Run, delay)
}

// Warnings returns how many non-fatal step failures occurred so far.
func (p *Provisioner) Warnings() int {
	return p.warnings
}

func (p *Provisioner) execute(ctx context.Context, steps []step) error {
	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := s.fn(ctx)
		switch {
		case err == nil:
			fmt.Fprintf(p.Out, "%s %s\n", cli.DotPad(s.name, stepWidth), cli.Green("ok"))
		case util.IsFatal(err):
			fmt.Fprintf(p.Out, "%s %s\n", cli.DotPad(s.name, stepWidth), cli.Red("failed"))
			return err
		default:
			p.warnings++
			fmt.Fprintf(p.Out, "%s %s\n", cli.DotPad(s.name, stepWidth), cli.Yellow("warning"))
			util.Warnf("%v", &util.StepError{Step: s.name, Err: err})
		}
	}
	return nil
}

func (p *Provisioner) detectRelease(ctx context.Context) error {
	rel, err := hostprep.DetectRelease(p.Run)
	if err != nil {
		return util.NewFatalError("os-release", util.ErrUnsupportedOS, err.Error())
	}
	if err := rel.CheckSupported(p.Profile.Distribution, p.Profile.SupportsCodename); err != nil {
		return err
	}
	p.release = rel
	util.WithHost(p.Run.Host()).Infof("detected %s %s", rel.ID, rel.Codename)
	return nil
}

func (p *Provisioner) addHypervisorRepo(ctx context.Context) error {
	if p.release == nil {
		return errors.New("release not detected, skipping repository setup")
	}
	codename := p.release.Codename
	if err := hostprep.WriteRepoList(p.Run, p.Profile.RepoListPath, p.Profile.RepoLine(codename)); err != nil {
		return err
	}
	return hostprep.FetchSigningKey(ctx, p.Run, p.Profile.KeyURL(codename), p.Profile.KeyringPath(codename))
}
