// Package ifupdown parses and regenerates /etc/network/interfaces so that a
// bridge device takes over the primary physical interface's static address.
//
// The parser walks the file top to bottom with a single current-interface
// cursor. Only `iface <name> inet static` headers move the cursor; headers
// for other methods (dhcp, loopback, manual) leave it in place, so attribute
// lines following a non-static stanza still bind to the last static
// interface seen. That tolerance is intentional and covered by tests.
package ifupdown

import (
	"bufio"
	"io"
	"strings"

	"github.com/virtnode-tools/virtnode/pkg/util"
)

// AliasKey identifies one secondary address binding. Keying by interface and
// bare IP collapses duplicate alias lines for the same host.
type AliasKey struct {
	Iface string
	IP    string
}

// Config is the parsed model of the source file: one primary static
// interface plus any secondary address bindings and global DNS settings.
type Config struct {
	// Iface is the primary interface: the first one configured with
	// `inet static` and a non-empty address.
	Iface   string
	Address string
	Netmask string
	Gateway string

	// DNS settings are global to the whole file, last occurrence wins.
	// They end up on the bridge stanza, not on any source interface.
	DNSServers string
	DNSSearch  string

	// Aliases maps (interface, bare IP) to the address string as written,
	// for every address line that is not the primary's first address.
	Aliases map[AliasKey]string
}

// Parse reads a line-oriented interfaces file and extracts the primary
// static configuration. It returns util.ErrNoPrimaryInterface when no
// interface with method `inet static` and an address is present.
func Parse(r io.Reader) (*Config, error) {
	cfg := &Config{Aliases: make(map[AliasKey]string)}
	current := ""

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		// Commas never carry meaning here; drop them so comma-separated
		// values degrade to plain tokens.
		line = strings.ReplaceAll(line, ",", "")
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		if fields[0] == "iface" {
			if len(fields) >= 4 && fields[2] == "inet" && fields[3] == "static" {
				current = fields[1]
			}
			// Non-static headers leave the cursor on the last static
			// interface (see package comment).
			continue
		}
		if current == "" {
			continue
		}

		switch fields[0] {
		case "address":
			cfg.recordAddress(current, fields[1])
		case "netmask":
			if current == cfg.Iface && cfg.Netmask == "" {
				cfg.Netmask = fields[1]
			}
		case "gateway":
			if current == cfg.Iface && cfg.Gateway == "" {
				cfg.Gateway = fields[1]
			}
		case "dns-nameservers":
			cfg.DNSServers = strings.Join(fields[1:], " ")
		case "dns-search":
			cfg.DNSSearch = strings.Join(fields[1:], " ")
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if cfg.Iface == "" || cfg.Address == "" {
		return nil, util.ErrNoPrimaryInterface
	}
	return cfg, nil
}

// recordAddress routes an address line: the first address in the file claims
// the primary slot for its interface; everything after that is an alias.
func (c *Config) recordAddress(iface, addr string) {
	if c.Iface == "" {
		c.Iface = iface
		c.Address = addr
		return
	}
	ip, _ := util.SplitIPPrefix(addr)
	c.Aliases[AliasKey{Iface: iface, IP: ip}] = addr
}
