package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/mentions/internal/config"
	"github.com/aidanlsb/mentions/internal/ui"
	"github.com/aidanlsb/mentions/internal/workspace"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the vault's mention settings",
	Long: `Settings are stored in mentions.yaml at the vault root:

  people_folder     Folder for person notes (default _people/)
  locations_folder  Folder for location notes (default _locations/)

Folder values are stored with a trailing slash. Setting a folder creates it
if it does not exist.`,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := config.LoadSettings(getVaultPath())
		if err != nil {
			return err
		}
		tbl := ui.NewTable(2)
		for _, key := range config.Keys() {
			v, _ := s.Get(key)
			tbl.AddRow(key, v)
		}
		fmt.Fprint(cmd.OutOrStdout(), tbl.String())
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:       "get KEY",
	Short:     "Print one setting",
	Args:      cobra.ExactArgs(1),
	ValidArgs: config.Keys(),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := config.LoadSettings(getVaultPath())
		if err != nil {
			return err
		}
		v, err := s.Get(args[0])
		if err != nil {
			return unknownSettingError(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), v)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:       "set KEY VALUE",
	Short:     "Change one setting",
	Args:      cobra.ExactArgs(2),
	ValidArgs: config.Keys(),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := workspace.Open(getVaultPath(), workspace.Options{Logger: newLogger(false)})
		if err != nil {
			return fmt.Errorf("failed to open vault: %w", err)
		}
		s, err := ws.UpdateSettings(func(s *config.Settings) error {
			return s.Set(args[0], args[1])
		})
		if err != nil {
			return unknownSettingError(err)
		}
		v, _ := s.Get(args[0])
		fmt.Fprintln(cmd.OutOrStdout(), ui.Successf("%s = %s", args[0], v))
		return nil
	},
}

func unknownSettingError(err error) error {
	if errors.Is(err, config.ErrUnknownSetting) {
		return fmt.Errorf("%w (known: %s)", err, strings.Join(config.Keys(), ", "))
	}
	return err
}

func init() {
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
