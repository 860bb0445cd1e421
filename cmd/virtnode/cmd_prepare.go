package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/virtnode-tools/virtnode/pkg/cli"
)

func newPrepareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prepare",
		Short: "Run host preparation (packages, repositories, mail patch)",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newProvisioner()
			if err != nil {
				return err
			}
			defer p.Run.Close()

			if err := p.Prepare(cmd.Context()); err != nil {
				return err
			}
			if n := p.Warnings(); n > 0 {
				fmt.Printf("%s Host preparation finished with %d warning(s)\n", cli.Yellow("!"), n)
			} else {
				fmt.Printf("%s Host preparation complete\n", cli.Green("✓"))
			}
			return nil
		},
	}
}
