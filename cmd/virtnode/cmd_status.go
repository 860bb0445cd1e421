package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/virtnode-tools/virtnode/pkg/cli"
	"github.com/virtnode-tools/virtnode/pkg/netinfo"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the kernel's current links and addresses",
		RunE: func(cmd *cobra.Command, args []string) error {
			links, err := netinfo.Links()
			if err != nil {
				return err
			}

			t := cli.NewTable("LINK", "KIND", "STATE", "MASTER", "ADDRESSES")
			for _, l := range links {
				addrs := strings.Join(l.Addresses, " ")
				if addrs == "" {
					addrs = "-"
				}
				master := l.Master
				if master == "" {
					master = "-"
				}
				state := l.State
				if state == "up" {
					state = cli.Green(state)
				}
				t.Row(l.Name, l.Kind, state, master, addrs)
			}
			t.Flush()
			if len(links) == 0 {
				fmt.Println("no links found")
			}
			return nil
		},
	}
}
