package util

import (
	"testing"
)

func TestNetmaskToPrefix(t *testing.T) {
	tests := []struct {
		name    string
		netmask string
		want    int
		wantErr bool
	}{
		{
			name:    "class C",
			netmask: "255.255.255.0",
			want:    24,
		},
		{
			name:    "class B",
			netmask: "255.255.0.0",
			want:    16,
		},
		{
			name:    "class A",
			netmask: "255.0.0.0",
			want:    8,
		},
		{
			name:    "host mask",
			netmask: "255.255.255.255",
			want:    32,
		},
		{
			name:    "/28",
			netmask: "255.255.255.240",
			want:    28,
		},
		{
			name:    "zero mask",
			netmask: "0.0.0.0",
			want:    0,
		},
		{
			name:    "too few octets",
			netmask: "255.255.255",
			wantErr: true,
		},
		{
			name:    "octet out of range",
			netmask: "255.255.255.256",
			wantErr: true,
		},
		{
			name:    "not numeric",
			netmask: "255.255.x.0",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NetmaskToPrefix(tt.netmask)
			if (err != nil) != tt.wantErr {
				t.Errorf("NetmaskToPrefix(%q) error = %v, wantErr %v", tt.netmask, err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("NetmaskToPrefix(%q) = %d, want %d", tt.netmask, got, tt.want)
			}
		})
	}
}

func TestSplitIPPrefix(t *testing.T) {
	tests := []struct {
		addr       string
		wantIP     string
		wantPrefix int
	}{
		{"10.0.0.5/24", "10.0.0.5", 24},
		{"10.0.0.5", "10.0.0.5", 0},
		{"192.168.1.1/32", "192.168.1.1", 32},
	}

	for _, tt := range tests {
		ip, prefix := SplitIPPrefix(tt.addr)
		if ip != tt.wantIP || prefix != tt.wantPrefix {
			t.Errorf("SplitIPPrefix(%q) = (%q, %d), want (%q, %d)",
				tt.addr, ip, prefix, tt.wantIP, tt.wantPrefix)
		}
	}
}

func TestPrefixToNetmask(t *testing.T) {
	tests := []struct {
		prefix  int
		want    string
		wantErr bool
	}{
		{24, "255.255.255.0", false},
		{16, "255.255.0.0", false},
		{32, "255.255.255.255", false},
		{0, "0.0.0.0", false},
		{33, "", true},
		{-1, "", true},
	}

	for _, tt := range tests {
		got, err := PrefixToNetmask(tt.prefix)
		if (err != nil) != tt.wantErr {
			t.Errorf("PrefixToNetmask(%d) error = %v, wantErr %v", tt.prefix, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("PrefixToNetmask(%d) = %q, want %q", tt.prefix, got, tt.want)
		}
	}
}
