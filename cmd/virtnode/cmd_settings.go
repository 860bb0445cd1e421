package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/virtnode-tools/virtnode/pkg/cli"
	"github.com/virtnode-tools/virtnode/pkg/settings"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage persistent settings",
		Long: `Manage persistent settings stored in ~/.virtnode/settings.json.

Settings provide defaults for provisioning flags:
  - bridge:          Bridge device name
  - interfaces_path: Interfaces file location
  - profile_path:    Profile used when -P is not specified

Examples:
  virtnode settings show
  virtnode settings set bridge vmbr0
  virtnode settings set profile /etc/virtnode/profile.yaml
  virtnode settings clear`,
	}
	cmd.AddCommand(newSettingsShowCmd(), newSettingsSetCmd(), newSettingsClearCmd())
	return cmd
}

func newSettingsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := settings.Load()
			if err != nil {
				return fmt.Errorf("loading settings: %w", err)
			}

			fmt.Printf("Settings file: %s\n\n", settings.Path())

			t := cli.NewTable("SETTING", "VALUE")
			printSetting := func(name, value string) {
				if value == "" {
					value = "(not set)"
				}
				t.Row(name, value)
			}
			printSetting("bridge", s.Bridge)
			printSetting("interfaces_path", s.InterfacesPath)
			printSetting("profile_path", s.ProfilePath)
			t.Flush()
			return nil
		},
	}
}

func newSettingsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <setting> <value>",
		Short: "Set a setting value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			setting, value := args[0], args[1]

			s, err := settings.Load()
			if err != nil {
				s = &settings.Settings{}
			}

			switch setting {
			case "bridge":
				s.Bridge = value
				fmt.Printf("Bridge set to: %s\n", value)
			case "interfaces", "interfaces_path":
				s.InterfacesPath = value
				fmt.Printf("Interfaces path set to: %s\n", value)
			case "profile", "profile_path":
				s.ProfilePath = value
				fmt.Printf("Profile path set to: %s\n", value)
			default:
				return fmt.Errorf("unknown setting: %s (valid: bridge, interfaces, profile)", setting)
			}

			return s.Save()
		},
	}
}

func newSettingsClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Reset all settings to defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := &settings.Settings{}
			if err := s.Save(); err != nil {
				return err
			}
			fmt.Println("Settings cleared")
			return nil
		},
	}
}
