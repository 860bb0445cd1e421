package ifupdown

import (
	"errors"
	"strings"
	"testing"

	"github.com/virtnode-tools/virtnode/pkg/util"
)

func parse(t *testing.T, input string) *Config {
	t.Helper()
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return cfg
}

func TestParseSingleStatic(t *testing.T) {
	cfg := parse(t, `
auto lo
iface lo inet loopback

auto eth0
iface eth0 inet static
	address 10.0.0.5
	netmask 255.255.255.0
	gateway 10.0.0.1
`)

	if cfg.Iface != "eth0" {
		t.Errorf("Iface = %q, want eth0", cfg.Iface)
	}
	if cfg.Address != "10.0.0.5" {
		t.Errorf("Address = %q, want 10.0.0.5", cfg.Address)
	}
	if cfg.Netmask != "255.255.255.0" {
		t.Errorf("Netmask = %q, want 255.255.255.0", cfg.Netmask)
	}
	if cfg.Gateway != "10.0.0.1" {
		t.Errorf("Gateway = %q, want 10.0.0.1", cfg.Gateway)
	}
	if len(cfg.Aliases) != 0 {
		t.Errorf("Aliases = %v, want empty", cfg.Aliases)
	}
}

func TestParseNoPrimary(t *testing.T) {
	inputs := map[string]string{
		"empty file":   "",
		"only dhcp":    "auto eth0\niface eth0 inet dhcp\n",
		"only loopback": "auto lo\niface lo inet loopback\n",
		"static without address": "iface eth0 inet static\n\tnetmask 255.255.255.0\n",
	}
	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(input))
			if !errors.Is(err, util.ErrNoPrimaryInterface) {
				t.Errorf("Parse() error = %v, want ErrNoPrimaryInterface", err)
			}
		})
	}
}

func TestParseSecondAddressBecomesAlias(t *testing.T) {
	cfg := parse(t, `
iface eth0 inet static
	address 10.0.0.5
	netmask 255.255.255.0
	address 10.0.0.9
`)

	if cfg.Address != "10.0.0.5" {
		t.Errorf("primary address overwritten: %q", cfg.Address)
	}
	key := AliasKey{Iface: "eth0", IP: "10.0.0.9"}
	if got := cfg.Aliases[key]; got != "10.0.0.9" {
		t.Errorf("Aliases[%v] = %q, want 10.0.0.9", key, got)
	}
	if len(cfg.Aliases) != 1 {
		t.Errorf("alias count = %d, want 1", len(cfg.Aliases))
	}
}

func TestParseAliasOnOtherInterface(t *testing.T) {
	cfg := parse(t, `
iface eth0 inet static
	address 192.168.1.10/24
	gateway 192.168.1.1

iface eth1 inet static
	address 172.16.0.2/28
	gateway 172.16.0.1
`)

	if cfg.Iface != "eth0" {
		t.Errorf("Iface = %q, want eth0", cfg.Iface)
	}
	// Later static blocks never overwrite primary attributes.
	if cfg.Gateway != "192.168.1.1" {
		t.Errorf("Gateway = %q, want 192.168.1.1", cfg.Gateway)
	}
	key := AliasKey{Iface: "eth1", IP: "172.16.0.2"}
	if got := cfg.Aliases[key]; got != "172.16.0.2/28" {
		t.Errorf("Aliases[%v] = %q, want 172.16.0.2/28", key, got)
	}
}

func TestParseDuplicateAliasCollapses(t *testing.T) {
	cfg := parse(t, `
iface eth0 inet static
	address 10.0.0.5
	address 10.0.0.9
	address 10.0.0.9/28
`)

	if len(cfg.Aliases) != 1 {
		t.Fatalf("alias count = %d, want 1 (same iface+IP must collapse)", len(cfg.Aliases))
	}
	if got := cfg.Aliases[AliasKey{Iface: "eth0", IP: "10.0.0.9"}]; got != "10.0.0.9/28" {
		t.Errorf("last duplicate should win, got %q", got)
	}
}

// The cursor moves only on static headers: attribute lines after an
// intervening dhcp stanza still bind to the last static interface.
func TestParseCursorSurvivesNonStaticHeader(t *testing.T) {
	cfg := parse(t, `
iface eth0 inet static
	address 10.0.0.5

iface eth1 inet dhcp
	gateway 10.0.0.1
`)

	if cfg.Gateway != "10.0.0.1" {
		t.Errorf("Gateway = %q, want 10.0.0.1 (bound to eth0 despite dhcp header)", cfg.Gateway)
	}
}

func TestParseDNSGlobalLastWins(t *testing.T) {
	cfg := parse(t, `
iface eth0 inet static
	address 10.0.0.5
	dns-nameservers 1.1.1.1, 8.8.8.8
	dns-search corp.example

iface eth1 inet static
	address 10.1.0.5/24
	dns-nameservers 9.9.9.9
`)

	// Commas are stripped, values joined by spaces, last occurrence wins.
	if cfg.DNSServers != "9.9.9.9" {
		t.Errorf("DNSServers = %q, want 9.9.9.9", cfg.DNSServers)
	}
	if cfg.DNSSearch != "corp.example" {
		t.Errorf("DNSSearch = %q, want corp.example", cfg.DNSSearch)
	}
}

func TestParseNetmaskGatewayFirstWinsPrimaryOnly(t *testing.T) {
	cfg := parse(t, `
iface eth0 inet static
	address 10.0.0.5
	netmask 255.255.255.0
	netmask 255.255.0.0
	gateway 10.0.0.1
	gateway 10.0.0.2

iface eth1 inet static
	address 10.1.0.5
	netmask 255.0.0.0
	gateway 10.1.0.1
`)

	if cfg.Netmask != "255.255.255.0" {
		t.Errorf("Netmask = %q, want first primary netmask", cfg.Netmask)
	}
	if cfg.Gateway != "10.0.0.1" {
		t.Errorf("Gateway = %q, want first primary gateway", cfg.Gateway)
	}
}
