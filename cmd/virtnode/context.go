package main

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/term"

	"github.com/virtnode-tools/virtnode/pkg/profile"
	"github.com/virtnode-tools/virtnode/pkg/provision"
	"github.com/virtnode-tools/virtnode/pkg/runner"
	"github.com/virtnode-tools/virtnode/pkg/settings"
)

// loadProfile resolves the profile from: -P flag > settings > defaults, then
// applies bridge/interfaces overrides persisted in settings.
func loadProfile() (*profile.Profile, error) {
	path := profilePath
	s, err := settings.Load()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	if path == "" {
		path = s.ProfilePath
	}

	prof, err := profile.Load(path)
	if err != nil {
		return nil, err
	}
	if s.Bridge != "" {
		prof.Bridge = s.Bridge
	}
	if s.InterfacesPath != "" {
		prof.InterfacesPath = s.InterfacesPath
	}
	return prof, nil
}

// newRunner returns a runner for the local host, or an SSH runner when
// --target is set. The SSH password comes from VIRTNODE_SSH_PASSWORD or an
// interactive prompt.
func newRunner() (runner.Runner, error) {
	if target == "" {
		return runner.NewLocal(), nil
	}

	password := os.Getenv("VIRTNODE_SSH_PASSWORD")
	if password == "" {
		fmt.Fprintf(os.Stderr, "password for %s: ", target)
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return nil, fmt.Errorf("reading password: %w", err)
		}
		password = string(raw)
	}
	return runner.DialSSH(target, password)
}

// newProvisioner wires a runner and profile into a Provisioner.
func newProvisioner() (*provision.Provisioner, error) {
	prof, err := loadProfile()
	if err != nil {
		return nil, err
	}
	run, err := newRunner()
	if err != nil {
		return nil, err
	}
	return provision.New(run, prof), nil
}
