//go:build !linux

package netinfo

import "errors"

// Link describes one network interface as currently configured in the
// kernel.
type Link struct {
	Name      string
	Kind      string
	State     string
	Addresses []string
	Master    string
}

// Links is only implemented on Linux.
func Links() ([]Link, error) {
	return nil, errors.New("link inspection requires Linux")
}
