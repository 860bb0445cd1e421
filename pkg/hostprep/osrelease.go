// Package hostprep implements the host-preparation steps that turn a bare
// Debian install into a hypervisor node: mail-agent patching, repository
// switching, package installs, and kernel forwarding. Every side effect
// goes through a runner.Runner so the same steps apply locally or over SSH.
package hostprep

import (
	"fmt"
	"strings"

	"github.com/virtnode-tools/virtnode/pkg/runner"
	"github.com/virtnode-tools/virtnode/pkg/util"
)

const osReleasePath = "/etc/os-release"

// Release identifies the target's distribution and version codename.
type Release struct {
	ID       string
	Codename string
}

// DetectRelease reads /etc/os-release on the target and extracts the
// distribution ID and version codename.
func DetectRelease(run runner.Runner) (*Release, error) {
	data, err := run.ReadFile(osReleasePath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", osReleasePath, err)
	}
	rel := ParseOSRelease(string(data))
	if rel.ID == "" || rel.Codename == "" {
		return nil, fmt.Errorf("%s has no ID or VERSION_CODENAME", osReleasePath)
	}
	return rel, nil
}

// ParseOSRelease extracts ID and VERSION_CODENAME from os-release content.
// Values may be bare or double-quoted.
func ParseOSRelease(content string) *Release {
	rel := &Release{}
	for _, line := range strings.Split(content, "\n") {
		key, value, ok := strings.Cut(strings.TrimSpace(line), "=")
		if !ok {
			continue
		}
		value = strings.Trim(value, `"`)
		switch key {
		case "ID":
			rel.ID = value
		case "VERSION_CODENAME":
			rel.Codename = value
		}
	}
	return rel
}

// CheckSupported verifies the release against the expected distribution and
// codename set. Failures are fatal: there is no sane way to continue
// provisioning an unknown OS.
func (r *Release) CheckSupported(distribution string, supported func(string) bool) error {
	if r.ID != distribution {
		return util.NewFatalError("os-release", util.ErrUnsupportedOS,
			fmt.Sprintf("found %q, need %q", r.ID, distribution))
	}
	if !supported(r.Codename) {
		return util.NewFatalError("os-release", util.ErrUnsupportedCodename,
			fmt.Sprintf("codename %q", r.Codename))
	}
	return nil
}
