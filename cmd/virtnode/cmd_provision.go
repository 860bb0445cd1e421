package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/virtnode-tools/virtnode/pkg/cli"
	"github.com/virtnode-tools/virtnode/pkg/hostprep"
)

func newProvisionCmd() *cobra.Command {
	var noReboot bool

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Run both stages, then reboot",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newProvisioner()
			if err != nil {
				return err
			}
			defer p.Run.Close()

			if err := p.Prepare(cmd.Context()); err != nil {
				return err
			}
			if err := p.Network(cmd.Context()); err != nil {
				return err
			}

			if n := p.Warnings(); n > 0 {
				fmt.Printf("%s Provisioning finished with %d warning(s)\n", cli.Yellow("!"), n)
			} else {
				fmt.Printf("%s Provisioning complete\n", cli.Green("✓"))
			}

			if noReboot {
				fmt.Println("Reboot skipped; run 'shutdown -r now' to activate the bridge")
				return nil
			}
			delay := time.Duration(p.Profile.RebootDelaySeconds) * time.Second
			return hostprep.Reboot(cmd.Context(), p.Run, delay)
		},
	}

	cmd.Flags().BoolVar(&noReboot, "no-reboot", false, "skip the final reboot")
	return cmd
}
