package reporting_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitstatus/internal/reporting"
)

func TestStylerHonorsColorMode(testInstance *testing.T) {
	testCases := []struct {
		name          string
		mode          reporting.ColorMode
		expectEscapes bool
	}{
		{name: "never", mode: reporting.ColorNever, expectEscapes: false},
		{name: "auto_on_buffer", mode: reporting.ColorAuto, expectEscapes: false},
		{name: "always", mode: reporting.ColorAlways, expectEscapes: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			rendered := reporting.NewStyler(&bytes.Buffer{}, testCase.mode).Render("has issues", reporting.CategoryIssues)
			require.Contains(subTest, rendered, "has issues")
			if testCase.expectEscapes {
				require.Contains(subTest, rendered, "\x1b[")
				return
			}
			require.Equal(subTest, "has issues", rendered)
		})
	}
}

func TestOptionValuesUnmarshalText(testInstance *testing.T) {
	var format reporting.Format
	require.NoError(testInstance, format.UnmarshalText([]byte("JSON")))
	require.Equal(testInstance, reporting.FormatJSON, format)
	require.NoError(testInstance, format.UnmarshalText(nil))
	require.Equal(testInstance, reporting.FormatText, format)
	require.Error(testInstance, format.UnmarshalText([]byte("xml")))

	var colorMode reporting.ColorMode
	require.NoError(testInstance, colorMode.UnmarshalText([]byte(" never ")))
	require.Equal(testInstance, reporting.ColorNever, colorMode)
	require.Error(testInstance, colorMode.UnmarshalText([]byte("rainbow")))
}
