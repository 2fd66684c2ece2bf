package flags

import "github.com/spf13/cobra"

const (
	// DefaultPathFlagName exposes the shared scan root flag name.
	DefaultPathFlagName = "path"
	// DefaultPathFlagShorthand provides the shorthand for the scan root flag.
	DefaultPathFlagShorthand = "p"
	// DefaultPathFlagUsage describes the scan root flag purpose.
	DefaultPathFlagUsage = "Directory to search for repositories (repeatable, defaults to the working directory)"
)

// PathFlagDefinition captures configuration for scan root flags.
type PathFlagDefinition struct {
	Name       string
	Shorthand  string
	Usage      string
	Persistent bool
}

// PathFlagValues stores scan root flag values.
type PathFlagValues struct {
	Paths []string
}

// BindPathFlags attaches the repeatable scan root flag to the provided command.
// Values are kept verbatim so paths containing commas survive.
func BindPathFlags(command *cobra.Command, defaults PathFlagValues, definition PathFlagDefinition) *PathFlagValues {
	values := PathFlagValues{Paths: append([]string{}, defaults.Paths...)}
	if command == nil {
		return &values
	}

	flagName := definition.Name
	flagShorthand := definition.Shorthand
	if len(flagName) == 0 {
		flagName = DefaultPathFlagName
		flagShorthand = DefaultPathFlagShorthand
	}
	flagUsage := definition.Usage
	if len(flagUsage) == 0 {
		flagUsage = DefaultPathFlagUsage
	}

	targetSet := command.Flags()
	if definition.Persistent {
		targetSet = command.PersistentFlags()
	}
	if targetSet.Lookup(flagName) == nil {
		targetSet.StringArrayVarP(&values.Paths, flagName, flagShorthand, values.Paths, flagUsage)
	}
	return &values
}
