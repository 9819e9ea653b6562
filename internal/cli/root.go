// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/aidanlsb/mentions/internal/config"
	"github.com/aidanlsb/mentions/internal/logging"
	"github.com/aidanlsb/mentions/internal/ui"
)

var (
	// Global flags
	vaultName     string // Named vault from config
	vaultPathFlag string // Explicit path
	configPath    string
	debugFlag     bool

	// Resolved values
	resolvedVaultPath string
	vaultExplicit     bool // false when falling back to the working directory
	cfg               *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "mentions",
	Short: "Link people and places in a markdown vault",
	Long: `mentions keeps an index of person notes ("@Name.md") and location notes
("!Place.md") in a markdown vault, and turns "@Jo" or "!Os" typed in a note
into a wikilink to the matching note.

Use it from an editor through 'mentions lsp', from an agent through
'mentions mcp', or directly from the shell.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip vault resolution for commands that don't need it
		switch cmd.Name() {
		case "completion", "help", "version":
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = loadGlobalConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		ui.ConfigureTheme(cfg.UI.Accent)

		resolvedVaultPath, vaultExplicit, err = resolveVaultPath(cfg, vaultPathFlag, vaultName)
		if err != nil {
			return err
		}

		info, err := os.Stat(resolvedVaultPath)
		if err != nil {
			return fmt.Errorf("vault not found: %s", resolvedVaultPath)
		}
		if !info.IsDir() {
			return fmt.Errorf("vault is not a directory: %s", resolvedVaultPath)
		}
		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&vaultName, "vault", "v", "", "Named vault from config")
	rootCmd.PersistentFlags().StringVar(&vaultPathFlag, "vault-path", "", "Explicit path to vault directory")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging to stderr")
}

// getVaultPath returns the resolved vault path.
func getVaultPath() string {
	return resolvedVaultPath
}

func loadGlobalConfig() (*config.Config, error) {
	var loaded *config.Config
	var err error
	if strings.TrimSpace(configPath) != "" {
		loaded, err = config.LoadFrom(configPath)
	} else {
		loaded, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if loaded == nil {
		loaded = &config.Config{}
	}
	return loaded, nil
}

// newLogger returns the logger for a command. Long-running commands log at
// the configured level; one-shot commands only report warnings unless
// --debug is set.
func newLogger(longRunning bool) *log.Logger {
	configured := ""
	if cfg != nil {
		configured = cfg.LogLevel
	}
	level := logging.Level(debugFlag, configured)
	if !longRunning && !debugFlag && level < log.WarnLevel {
		level = log.WarnLevel
	}
	return logging.New("mentions", level)
}
