package ifupdown

import (
	"fmt"
	"sort"
	"strings"

	"github.com/virtnode-tools/virtnode/pkg/util"
)

// Render produces the replacement interfaces file. The primary interface is
// demoted to an addressless bridge member and the named bridge carries the
// primary address, gateway, and DNS settings. Aliases keep their own
// stanzas, emitted in sorted key order so output is deterministic.
func Render(cfg *Config, bridge string) string {
	var b strings.Builder

	b.WriteString("auto lo\n")
	b.WriteString("iface lo inet loopback\n\n")

	fmt.Fprintf(&b, "auto %s\n", cfg.Iface)
	fmt.Fprintf(&b, "iface %s inet manual\n\n", cfg.Iface)

	fmt.Fprintf(&b, "auto %s\n", bridge)
	fmt.Fprintf(&b, "iface %s inet static\n", bridge)
	fmt.Fprintf(&b, "\taddress %s\n", cfg.Address)
	if cfg.Gateway != "" {
		fmt.Fprintf(&b, "\tgateway %s\n", cfg.Gateway)
	}
	fmt.Fprintf(&b, "\tbridge-ports %s\n", cfg.Iface)
	b.WriteString("\tbridge-stp off\n")
	b.WriteString("\tbridge-fd 0\n")
	if cfg.DNSServers != "" {
		fmt.Fprintf(&b, "\tdns-nameservers %s\n", cfg.DNSServers)
	}
	if cfg.DNSSearch != "" {
		fmt.Fprintf(&b, "\tdns-search %s\n", cfg.DNSSearch)
	}

	for _, key := range sortedAliasKeys(cfg.Aliases) {
		b.WriteString("\n")
		writeAlias(&b, key, cfg.Aliases[key], cfg.Netmask)
	}

	return b.String()
}

func sortedAliasKeys(aliases map[AliasKey]string) []AliasKey {
	keys := make([]AliasKey, 0, len(aliases))
	for k := range aliases {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Iface != keys[j].Iface {
			return keys[i].Iface < keys[j].Iface
		}
		return keys[i].IP < keys[j].IP
	})
	return keys
}

// writeAlias emits one secondary address stanza. An alias that carries its
// own prefix is written verbatim. A bare alias borrows the primary netmask;
// the alias's own source netmask, if any, was never captured. With neither
// available only a comment is written so the file stays loadable.
func writeAlias(b *strings.Builder, key AliasKey, addr, primaryNetmask string) {
	if !util.HasCIDRSuffix(addr) && primaryNetmask == "" {
		fmt.Fprintf(b, "# skipped alias %s on %s: no prefix or netmask known\n", addr, key.Iface)
		return
	}

	fmt.Fprintf(b, "auto %s\n", key.Iface)
	fmt.Fprintf(b, "iface %s inet static\n", key.Iface)
	fmt.Fprintf(b, "\taddress %s\n", addr)
	if !util.HasCIDRSuffix(addr) {
		fmt.Fprintf(b, "\tnetmask %s\n", primaryNetmask)
	}
}
