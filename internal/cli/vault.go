package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/aidanlsb/mentions/internal/config"
	"github.com/aidanlsb/mentions/internal/index"
	"github.com/aidanlsb/mentions/internal/workspace"
)

// resolveVaultPath picks the vault: explicit path > named vault > default
// vault > working directory. explicit is false only for the last fallback.
func resolveVaultPath(c *config.Config, pathFlag, name string) (path string, explicit bool, err error) {
	if pathFlag != "" {
		return pathFlag, true, nil
	}
	if name != "" {
		path, err := c.GetVaultPath(name)
		if err != nil {
			return "", false, fmt.Errorf("vault '%s' not found in config", name)
		}
		return path, true, nil
	}
	if c.DefaultVault != "" {
		path, err := c.GetDefaultVaultPath()
		if err != nil {
			return "", false, fmt.Errorf("default vault '%s' not found in config", c.DefaultVault)
		}
		return path, true, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", false, fmt.Errorf("failed to determine working directory: %w", err)
	}
	return wd, false, nil
}

// openWorkspace opens the resolved vault and builds its index.
func openWorkspace(ctx context.Context, longRunning bool, opts workspace.Options) (*workspace.Workspace, error) {
	if opts.Logger == nil {
		opts.Logger = newLogger(longRunning)
	}
	ws, err := workspace.Open(getVaultPath(), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open vault: %w", err)
	}
	if err := ws.Start(ctx); err != nil {
		return nil, err
	}
	return ws, nil
}

// parseKindArg accepts "person", "people", "location", "locations", ...
func parseKindArg(arg string) (index.Kind, error) {
	kind, err := index.ParseKind(arg)
	if err != nil {
		return 0, fmt.Errorf("unknown kind '%s': use person or location", arg)
	}
	return kind, nil
}
