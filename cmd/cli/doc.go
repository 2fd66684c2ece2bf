// Package cli constructs the git-status command-line interface. It wires the
// Cobra root command to the layered configuration loader, the zap logger, and
// the repository scan service, then prints reports in the selected format.
package cli
