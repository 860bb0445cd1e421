// virtnode — turn a bare Debian host into a virtualization node
//
// virtnode prepares the host (mail-agent patch, repository switch,
// hypervisor packages) and rewrites its network configuration so a bridge
// device carries the primary interface's address.
//
// Usage:
//
//	virtnode prepare                 Run host preparation only
//	virtnode network                 Rewrite the interfaces file only
//	virtnode provision               Both stages, then reboot
//	virtnode status                  Show current links and addresses
//	virtnode settings                Manage persistent defaults
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/virtnode-tools/virtnode/pkg/util"
	"github.com/virtnode-tools/virtnode/pkg/version"
)

var (
	target      string
	profilePath string
	verbose     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "virtnode",
	Short:             "Provision a Debian host into a virtualization node",
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	Long: `virtnode provisions a bare Debian install into a hypervisor node.

Host preparation switches package repositories and installs the hypervisor
stack; network reconfiguration replaces the primary interface with a bridge
that keeps the original address.

  virtnode provision`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			util.SetLogLevel("debug")
		} else {
			util.SetLogLevel("warn")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&target, "target", "t", "", "provision a remote host (user@host) over SSH")
	rootCmd.PersistentFlags().StringVarP(&profilePath, "profile", "P", "", "provisioning profile YAML")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(
		newPrepareCmd(),
		newNetworkCmd(),
		newProvisionCmd(),
		newStatusCmd(),
		newSettingsCmd(),
		newVersionCmd(),
	)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			if version.Version == "dev" {
				fmt.Println("virtnode dev build")
			} else {
				fmt.Printf("virtnode %s (%s)\n", version.Version, version.GitCommit)
			}
		},
	}
}
