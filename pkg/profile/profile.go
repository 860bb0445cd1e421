// Package profile defines the provisioning profile: which hypervisor stack
// gets installed, where its repository lives, and how the bridge is named.
// Profiles are YAML files; every field has a built-in default so a profile
// is optional.
package profile

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Profile holds the tunable inputs of a provisioning run.
type Profile struct {
	// Distribution must match the ID field of /etc/os-release.
	Distribution string `yaml:"distribution"`

	// SupportedCodenames lists the release codenames the hypervisor
	// repository publishes for.
	SupportedCodenames []string `yaml:"supported_codenames"`

	// BasePackages are installed before the hypervisor repository is
	// added (the package set whose install may transiently fail on
	// hostname resolution and is retried once).
	BasePackages []string `yaml:"base_packages"`

	// HypervisorPackage is installed after the repository is in place.
	HypervisorPackage string `yaml:"hypervisor_package"`

	RepoURL            string `yaml:"repo_url"`
	RepoComponent      string `yaml:"repo_component"`
	RepoListPath       string `yaml:"repo_list_path"`
	EnterpriseListPath string `yaml:"enterprise_list_path"`

	// KeyURLTemplate and KeyringPathTemplate are parameterized on the
	// detected codename with one %s verb each.
	KeyURLTemplate      string `yaml:"key_url_template"`
	KeyringPathTemplate string `yaml:"keyring_path_template"`

	PostfixConfigPath string `yaml:"postfix_config_path"`

	Bridge         string `yaml:"bridge"`
	InterfacesPath string `yaml:"interfaces_path"`

	RebootDelaySeconds int `yaml:"reboot_delay_seconds"`
}

// Default returns the stock Proxmox VE profile.
func Default() *Profile {
	return &Profile{
		Distribution:        "debian",
		SupportedCodenames:  []string{"bullseye", "bookworm", "trixie"},
		BasePackages:        []string{"ifupdown2", "postfix", "open-iscsi", "chrony"},
		HypervisorPackage:   "proxmox-ve",
		RepoURL:             "http://download.proxmox.com/debian/pve",
		RepoComponent:       "pve-no-subscription",
		RepoListPath:        "/etc/apt/sources.list.d/pve-install-repo.list",
		EnterpriseListPath:  "/etc/apt/sources.list.d/pve-enterprise.list",
		KeyURLTemplate:      "https://enterprise.proxmox.com/debian/proxmox-release-%s.gpg",
		KeyringPathTemplate: "/etc/apt/trusted.gpg.d/proxmox-release-%s.gpg",
		PostfixConfigPath:   "/etc/postfix/main.cf",
		Bridge:              "vmbr0",
		InterfacesPath:      "/etc/network/interfaces",
		RebootDelaySeconds:  5,
	}
}

// Load reads a profile YAML file over the defaults and validates it.
// An empty path returns the default profile.
func Load(path string) (*Profile, error) {
	p := Default()
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parsing profile YAML: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("validating profile: %w", err)
	}
	return p, nil
}

// Validate checks the fields a run cannot proceed without.
func (p *Profile) Validate() error {
	if p.Distribution == "" {
		return fmt.Errorf("distribution is required")
	}
	if len(p.SupportedCodenames) == 0 {
		return fmt.Errorf("at least one supported codename is required")
	}
	if p.HypervisorPackage == "" {
		return fmt.Errorf("hypervisor_package is required")
	}
	if p.Bridge == "" {
		return fmt.Errorf("bridge is required")
	}
	if p.InterfacesPath == "" {
		return fmt.Errorf("interfaces_path is required")
	}
	if strings.Count(p.KeyURLTemplate, "%s") != 1 {
		return fmt.Errorf("key_url_template must contain exactly one %%s for the codename")
	}
	if strings.Count(p.KeyringPathTemplate, "%s") != 1 {
		return fmt.Errorf("keyring_path_template must contain exactly one %%s for the codename")
	}
	if p.RebootDelaySeconds < 0 {
		return fmt.Errorf("reboot_delay_seconds must not be negative")
	}
	return nil
}

// SupportsCodename reports whether the detected release codename is in the
// supported set.
func (p *Profile) SupportsCodename(codename string) bool {
	for _, c := range p.SupportedCodenames {
		if c == codename {
			return true
		}
	}
	return false
}

// KeyURL returns the signing-key URL for a codename.
func (p *Profile) KeyURL(codename string) string {
	return fmt.Sprintf(p.KeyURLTemplate, codename)
}

// KeyringPath returns the keyring destination for a codename.
func (p *Profile) KeyringPath(codename string) string {
	return fmt.Sprintf(p.KeyringPathTemplate, codename)
}

// RepoLine returns the single deb line for the hypervisor repository list.
func (p *Profile) RepoLine(codename string) string {
	return fmt.Sprintf("deb %s %s %s\n", p.RepoURL, codename, p.RepoComponent)
}
