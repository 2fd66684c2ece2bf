package flags

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestFormatChoiceUsage(testInstance *testing.T) {
	testCases := []struct {
		name           string
		defaultChoice  string
		choices        []string
		description    string
		expectedOutput string
	}{
		{
			name:           "DefaultFirstChoice",
			defaultChoice:  "text",
			choices:        []string{"text", "yaml", "json"},
			description:    "Report format.",
			expectedOutput: "`<TEXT|yaml|json>` Report format.",
		},
		{
			name:           "DefaultSecondChoice",
			defaultChoice:  "auto",
			choices:        []string{"always", "auto", "never"},
			description:    "Colorize output.",
			expectedOutput: "`<always|AUTO|never>` Colorize output.",
		},
		{
			name:           "EmptyDescription",
			defaultChoice:  "alpha",
			choices:        []string{"alpha", "beta"},
			description:    "",
			expectedOutput: "`<ALPHA|beta>`",
		},
		{
			name:           "DuplicateChoicesIgnored",
			defaultChoice:  "beta",
			choices:        []string{"beta", "beta", "alpha", "alpha"},
			description:    "Select between options.",
			expectedOutput: "`<BETA|alpha>` Select between options.",
		},
		{
			name:           "WhitespaceTrimmed",
			defaultChoice:  "primary",
			choices:        []string{" primary ", " secondary "},
			description:    "Pick a palette.",
			expectedOutput: "`<PRIMARY|secondary>` Pick a palette.",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			actual := FormatChoiceUsage(testCase.defaultChoice, testCase.choices, testCase.description)
			require.Equal(testInstance, testCase.expectedOutput, actual)
		})
	}
}

func TestChoiceValueAcceptsOnlyConfiguredChoices(testInstance *testing.T) {
	testCases := []struct {
		name             string
		candidate        string
		expectError      bool
		expectedSelected string
	}{
		{name: "exact", candidate: "json", expectedSelected: "json"},
		{name: "case_insensitive", candidate: " YAML ", expectedSelected: "yaml"},
		{name: "unsupported", candidate: "xml", expectError: true, expectedSelected: "text"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			value := NewChoiceValue("text", []string{"text", "yaml", "json", "json"})
			setError := value.Set(testCase.candidate)
			if testCase.expectError {
				require.ErrorContains(testInstance, setError, "text|yaml|json")
			} else {
				require.NoError(testInstance, setError)
			}
			require.Equal(testInstance, testCase.expectedSelected, value.String())
		})
	}
}

func TestBindChoiceFlagParsesCommandLine(testInstance *testing.T) {
	flagSet := pflag.NewFlagSet("status", pflag.ContinueOnError)
	value := BindChoiceFlag(flagSet, "format", "f", "text", []string{"text", "yaml", "json"}, "Report format.")

	require.Equal(testInstance, "text", value.String())
	require.Equal(testInstance, "`<TEXT|yaml|json>` Report format.", flagSet.Lookup("format").Usage)

	require.NoError(testInstance, flagSet.Parse([]string{"-f", "json"}))
	require.Equal(testInstance, "json", value.String())
	require.True(testInstance, flagSet.Changed("format"))

	require.Error(testInstance, flagSet.Parse([]string{"--format", "csv"}))
}
