package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/virtnode-tools/virtnode/pkg/cli"
	"github.com/virtnode-tools/virtnode/pkg/ifupdown"
)

func newNetworkCmd() *cobra.Command {
	var bridge string
	var interfacesPath string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "network",
		Short: "Rewrite the interfaces file around a new bridge",
		Long: `Network reads the interfaces file, finds the primary static interface,
and rewrites the file so a bridge carries its address while the interface
itself becomes an addressless bridge member. The original file is backed up
with a timestamp suffix.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newProvisioner()
			if err != nil {
				return err
			}
			defer p.Run.Close()

			if bridge != "" {
				p.Profile.Bridge = bridge
			}
			if interfacesPath != "" {
				p.Profile.InterfacesPath = interfacesPath
			}

			if dryRun {
				data, err := p.Run.ReadFile(p.Profile.InterfacesPath)
				if err != nil {
					return err
				}
				cfg, err := ifupdown.Parse(bytes.NewReader(data))
				if err != nil {
					return fmt.Errorf("parsing %s: %w", p.Profile.InterfacesPath, err)
				}
				cfg.NormalizePrefix()
				fmt.Print(ifupdown.Render(cfg, p.Profile.Bridge))
				return nil
			}

			if err := p.Network(cmd.Context()); err != nil {
				return err
			}
			fmt.Printf("%s Network reconfigured; reboot to activate %s\n",
				cli.Green("✓"), p.Profile.Bridge)
			return nil
		},
	}

	cmd.Flags().StringVar(&bridge, "bridge", "", "bridge device name (default from profile)")
	cmd.Flags().StringVar(&interfacesPath, "interfaces", "", "interfaces file path (default from profile)")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "print the generated file without writing")
	return cmd
}
