package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/mentions/internal/buildinfo"
)

const defaultModulePath = "github.com/aidanlsb/mentions"

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

type versionInfo struct {
	Version  string
	Module   string
	Commit   string
	Time     string
	Dirty    bool
	Go       string
	Platform string
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := currentVersionInfo()
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "mentions %s (%s)\n", info.Version, info.Platform)
		if info.Commit != "" {
			dirty := ""
			if info.Dirty {
				dirty = ", modified"
			}
			fmt.Fprintf(out, "commit %s %s%s\n", info.Commit, info.Time, dirty)
		}
		fmt.Fprintf(out, "built with %s from %s\n", info.Go, info.Module)
		return nil
	},
}

func currentVersionInfo() versionInfo {
	info := versionInfo{
		Version: buildinfo.Version,
		Module:  defaultModulePath,
		Commit:  buildinfo.Commit,
		Time:    buildinfo.Date,
		Go:      runtime.Version(),
	}
	goos, goarch := runtime.GOOS, runtime.GOARCH

	if bi, ok := readBuildInfo(); ok && bi != nil {
		if bi.Main.Path != "" {
			info.Module = bi.Main.Path
		}
		if v := bi.Main.Version; v != "" && v != "(devel)" {
			info.Version = v
		}
		if bi.GoVersion != "" {
			info.Go = bi.GoVersion
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "GOOS":
				goos = s.Value
			case "GOARCH":
				goarch = s.Value
			case "vcs.revision":
				info.Commit = s.Value
			case "vcs.time":
				info.Time = s.Value
			case "vcs.modified":
				info.Dirty = s.Value == "true"
			}
		}
	}

	if info.Version == "" {
		info.Version = "devel"
	}
	info.Platform = goos + "/" + goarch
	return info
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
