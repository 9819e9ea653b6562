// Package buildinfo holds version details set with -ldflags -X at release
// time. They are empty in development builds.
package buildinfo

var (
	Version string
	Commit  string
	Date    string
)
