package ifupdown

import (
	"fmt"

	"github.com/virtnode-tools/virtnode/pkg/util"
)

// NormalizePrefix ensures the primary address carries a /N suffix.
//
// An inline prefix always wins; if the file also carried a netmask that
// disagrees with it, the mismatch is logged and the inline prefix kept.
// Without an inline prefix the length is derived from the netmask's set
// bits. With neither, the address stays bare and the emitter must cope.
func (c *Config) NormalizePrefix() {
	if util.HasCIDRSuffix(c.Address) {
		if c.Netmask == "" {
			return
		}
		_, inline := util.SplitIPPrefix(c.Address)
		derived, err := util.NetmaskToPrefix(c.Netmask)
		if err == nil && derived != inline {
			util.Warnf("address %s and netmask %s disagree, keeping /%d",
				c.Address, c.Netmask, inline)
		}
		return
	}
	if c.Netmask == "" {
		return
	}
	prefix, err := util.NetmaskToPrefix(c.Netmask)
	if err != nil {
		util.Warnf("ignoring unparseable netmask %s: %v", c.Netmask, err)
		return
	}
	c.Address = fmt.Sprintf("%s/%d", c.Address, prefix)
}
