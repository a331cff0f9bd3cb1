// Package file loads issuesync settings from a TOML file and the
// environment.
//
// Sources, lowest precedence first:
//   - ConfigStore: optional TOML file (issuesync.toml by default)
//   - Environment: GitHub Actions inputs (INPUT_*) and plain variables
//
// Command line flags are applied on top by the CLI.
package file
