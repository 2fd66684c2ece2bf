package flags

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestBindPathFlagsUsesDefaultsAndParsesValues(testInstance *testing.T) {
	command := &cobra.Command{}

	values := BindPathFlags(command, PathFlagValues{Paths: []string{"/tmp/default"}}, PathFlagDefinition{})

	require.NotNil(testInstance, values)
	require.Equal(testInstance, []string{"/tmp/default"}, values.Paths)

	parseError := command.ParseFlags([]string{"--" + DefaultPathFlagName, "/workspace", "-" + DefaultPathFlagShorthand, "/projects,archive"})
	require.NoError(testInstance, parseError)
	require.Equal(testInstance, []string{"/workspace", "/projects,archive"}, values.Paths)
}

func TestBindPathFlagsPersistentDefinition(testInstance *testing.T) {
	command := &cobra.Command{}

	values := BindPathFlags(command, PathFlagValues{}, PathFlagDefinition{Name: "root", Usage: "Roots", Persistent: true})

	require.NotNil(testInstance, command.PersistentFlags().Lookup("root"))
	require.Nil(testInstance, command.Flags().Lookup(DefaultPathFlagName))
	require.Empty(testInstance, values.Paths)
}

func TestBindPathFlagsToleratesNilCommand(testInstance *testing.T) {
	values := BindPathFlags(nil, PathFlagValues{Paths: []string{"."}}, PathFlagDefinition{})
	require.Equal(testInstance, []string{"."}, values.Paths)
}
