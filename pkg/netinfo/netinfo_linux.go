//go:build linux

// Package netinfo inspects the host's current links and addresses so the
// operator can verify the bridge layout after a provisioning run.
package netinfo

import (
	"fmt"
	"strings"

	"github.com/vishvananda/netlink"
)

// Link describes one network interface as currently configured in the
// kernel, independent of what the interfaces file says.
type Link struct {
	Name      string
	Kind      string // "device", "bridge", "loopback", ...
	State     string
	Addresses []string
	Master    string // bridge this link is enslaved to, if any
}

// Links lists the kernel's view of all network interfaces with their IPv4
// addresses.
func Links() ([]Link, error) {
	nlLinks, err := netlink.LinkList()
	if err != nil {
		return nil, fmt.Errorf("listing links: %w", err)
	}

	byIndex := make(map[int]string, len(nlLinks))
	for _, l := range nlLinks {
		byIndex[l.Attrs().Index] = l.Attrs().Name
	}

	links := make([]Link, 0, len(nlLinks))
	for _, l := range nlLinks {
		attrs := l.Attrs()
		info := Link{
			Name:  attrs.Name,
			Kind:  l.Type(),
			State: strings.ToLower(attrs.OperState.String()),
		}
		if attrs.MasterIndex != 0 {
			info.Master = byIndex[attrs.MasterIndex]
		}

		addrs, err := netlink.AddrList(l, netlink.FAMILY_V4)
		if err != nil {
			return nil, fmt.Errorf("listing addresses for %s: %w", attrs.Name, err)
		}
		for _, a := range addrs {
			info.Addresses = append(info.Addresses, a.IPNet.String())
		}
		links = append(links, info)
	}
	return links, nil
}
