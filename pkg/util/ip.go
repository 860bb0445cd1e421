package util

import (
	"fmt"
	"math/bits"
	"net"
	"strconv"
	"strings"
)

// IsValidIPv4 checks if a string is a valid IPv4 address
func IsValidIPv4(ipStr string) bool {
	ip := net.ParseIP(ipStr)
	return ip != nil && ip.To4() != nil
}

// HasCIDRSuffix reports whether addr already carries a /N prefix length.
func HasCIDRSuffix(addr string) bool {
	return strings.Contains(addr, "/")
}

// SplitIPPrefix splits "a.b.c.d/N" into the bare IP and prefix length.
// An address without a suffix is returned as-is with prefix 0.
func SplitIPPrefix(addr string) (string, int) {
	parts := strings.SplitN(addr, "/", 2)
	if len(parts) != 2 {
		return addr, 0
	}
	prefix, err := strconv.Atoi(parts[1])
	if err != nil {
		return parts[0], 0
	}
	return parts[0], prefix
}

// NetmaskToPrefix converts a dotted-quad netmask to a prefix length by
// counting set bits across the four octets.
func NetmaskToPrefix(netmask string) (int, error) {
	octets := strings.Split(netmask, ".")
	if len(octets) != 4 {
		return 0, fmt.Errorf("invalid netmask %q: expected four octets", netmask)
	}
	prefix := 0
	for _, o := range octets {
		n, err := strconv.Atoi(o)
		if err != nil || n < 0 || n > 255 {
			return 0, fmt.Errorf("invalid netmask %q: bad octet %q", netmask, o)
		}
		prefix += bits.OnesCount8(uint8(n))
	}
	return prefix, nil
}

// PrefixToNetmask converts a prefix length to a dotted-quad netmask.
func PrefixToNetmask(prefix int) (string, error) {
	if prefix < 0 || prefix > 32 {
		return "", fmt.Errorf("invalid prefix length %d", prefix)
	}
	mask := net.CIDRMask(prefix, 32)
	return net.IP(mask).String(), nil
}
