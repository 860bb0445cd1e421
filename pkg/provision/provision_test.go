package provision

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/virtnode-tools/virtnode/internal/testutil"
	"github.com/virtnode-tools/virtnode/pkg/profile"
	"github.com/virtnode-tools/virtnode/pkg/util"
)

// testProfile returns the default profile with its key URL pointed at a
// local server so tests never touch the network.
func testProfile(t *testing.T) *profile.Profile {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("signing-key"))
	}))
	t.Cleanup(srv.Close)

	prof := profile.Default()
	prof.KeyURLTemplate = srv.URL + "/release-%s.gpg"
	return prof
}

func debianFiles() map[string]string {
	return map[string]string{
		"/etc/os-release":      testutil.OSReleaseDebian,
		"/etc/postfix/main.cf": testutil.PostfixMainCF,
		"/etc/apt/sources.list.d/pve-enterprise.list": "deb https://enterprise.proxmox.com/debian/pve bookworm pve-enterprise\n",
		"/etc/network/interfaces":                     testutil.InterfacesStatic,
	}
}

func newTestProvisioner(t *testing.T, run *testutil.FakeRunner) *Provisioner {
	p := New(run, testProfile(t))
	p.Out = io.Discard
	p.Start = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return p
}

func TestPrepareHappyPath(t *testing.T) {
	run := testutil.NewFakeRunner(debianFiles())
	p := newTestProvisioner(t, run)

	if err := p.Prepare(context.Background()); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if p.Warnings() != 0 {
		t.Errorf("Warnings() = %d, want 0", p.Warnings())
	}

	// Postfix patched, enterprise repo gone, hypervisor repo in place.
	if got := string(run.Files["/etc/postfix/main.cf"]); !strings.Contains(got, "inet_protocols = ipv4") {
		t.Error("postfix not patched")
	}
	if _, ok := run.Files["/etc/apt/sources.list.d/pve-enterprise.list"]; ok {
		t.Error("enterprise repo list not removed")
	}
	wantRepo := "deb http://download.proxmox.com/debian/pve bookworm pve-no-subscription\n"
	if got := string(run.Files["/etc/apt/sources.list.d/pve-install-repo.list"]); got != wantRepo {
		t.Errorf("repo list = %q, want %q", got, wantRepo)
	}
	if got := string(run.Files["/etc/apt/trusted.gpg.d/proxmox-release-bookworm.gpg"]); got != "signing-key" {
		t.Errorf("keyring = %q", got)
	}

	// Package-manager sequence.
	if got := run.CountCommands("apt-get update"); got != 2 {
		t.Errorf("apt-get update runs = %d, want 2", got)
	}
	if !run.RanCommand("apt-get dist-upgrade -y") {
		t.Error("dist-upgrade not run")
	}
	if !run.RanCommand("apt-get install -y proxmox-ve") {
		t.Error("hypervisor package not installed")
	}
	if !run.RanCommand("apt-get remove -y os-prober") {
		t.Error("os-prober not removed")
	}
}

func TestPrepareAbortsOnWrongDistribution(t *testing.T) {
	files := debianFiles()
	files["/etc/os-release"] = testutil.OSReleaseUbuntu
	run := testutil.NewFakeRunner(files)
	p := newTestProvisioner(t, run)

	err := p.Prepare(context.Background())
	if !errors.Is(err, util.ErrUnsupportedOS) {
		t.Fatalf("Prepare() error = %v, want ErrUnsupportedOS", err)
	}
	// Nothing after the fatal check may run.
	if run.RanCommand("apt-get dist-upgrade") {
		t.Error("steps after fatal check should not run")
	}
}

func TestPrepareAbortsOnUnsupportedCodename(t *testing.T) {
	run := testutil.NewFakeRunner(debianFiles())
	p := newTestProvisioner(t, run)
	p.Profile.SupportedCodenames = []string{"trixie"}

	err := p.Prepare(context.Background())
	if !errors.Is(err, util.ErrUnsupportedCodename) {
		t.Fatalf("Prepare() error = %v, want ErrUnsupportedCodename", err)
	}
}

func TestPrepareContinuesPastPackageFailures(t *testing.T) {
	run := testutil.NewFakeRunner(debianFiles())
	run.Fail = map[string]error{
		"apt-get dist-upgrade": errors.New("exit status 100"),
		"apt-get remove":       errors.New("exit status 100"),
	}
	p := newTestProvisioner(t, run)

	if err := p.Prepare(context.Background()); err != nil {
		t.Fatalf("Prepare() error = %v, package failures must not abort", err)
	}
	if p.Warnings() != 2 {
		t.Errorf("Warnings() = %d, want 2", p.Warnings())
	}
	// The sequence kept going after the upgrade failure.
	if !run.RanCommand("apt-get install -y proxmox-ve") {
		t.Error("later steps should still run")
	}
}

func TestNetworkRewritesInterfaces(t *testing.T) {
	run := testutil.NewFakeRunner(debianFiles())
	p := newTestProvisioner(t, run)

	if err := p.Network(context.Background()); err != nil {
		t.Fatalf("Network() error = %v", err)
	}

	got := string(run.Files["/etc/network/interfaces"])
	if !strings.Contains(got, "iface vmbr0 inet static") {
		t.Errorf("bridge stanza missing:\n%s", got)
	}
	if !strings.Contains(got, "\taddress 10.0.0.5/24\n") {
		t.Errorf("normalized address missing:\n%s", got)
	}
	if !strings.Contains(got, "\tbridge-ports eth0\n") {
		t.Errorf("bridge-ports missing:\n%s", got)
	}

	backup := "/etc/network/interfaces.bak.20260102-030405"
	if got := string(run.Files[backup]); got != testutil.InterfacesStatic {
		t.Errorf("backup at %s = %q", backup, got)
	}

	if string(run.Files["/etc/sysctl.d/99-virtnode-forwarding.conf"]) == "" {
		t.Error("forwarding sysctl not written")
	}
	if !run.RanCommand("sysctl --system") {
		t.Error("sysctl not reloaded")
	}
}

func TestNetworkFatalWithoutPrimaryInterface(t *testing.T) {
	files := debianFiles()
	files["/etc/network/interfaces"] = "auto eth0\niface eth0 inet dhcp\n"
	run := testutil.NewFakeRunner(files)
	p := newTestProvisioner(t, run)

	err := p.Network(context.Background())
	if !errors.Is(err, util.ErrNoPrimaryInterface) {
		t.Fatalf("Network() error = %v, want ErrNoPrimaryInterface", err)
	}
	if !util.IsFatal(err) {
		t.Error("missing primary interface must be fatal")
	}
	// Forwarding must not be enabled after a fatal rewrite.
	if run.RanCommand("sysctl --system") {
		t.Error("steps after fatal rewrite should not run")
	}
}

func TestProvisionEndsWithReboot(t *testing.T) {
	run := testutil.NewFakeRunner(debianFiles())
	p := newTestProvisioner(t, run)
	p.Profile.RebootDelaySeconds = 0

	if err := p.Provision(context.Background()); err != nil {
		t.Fatalf("Provision() error = %v", err)
	}
	if len(run.Commands) == 0 || run.Commands[len(run.Commands)-1] != "shutdown -r now" {
		t.Errorf("last command = %v, want shutdown -r now", run.Commands)
	}
}
