package reporting_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/temirov/gitstatus/internal/reporting"
	"github.com/temirov/gitstatus/internal/status"
)

func scenarioReports() []status.RepositoryReport {
	return []status.RepositoryReport{
		status.BuildReport(status.NewRepositoryRef("/scan/A"), status.ChangeSummary{}, []status.BranchStatus{
			{Name: "main", State: status.NewTrackingState("origin/main", 0, 0)},
		}),
		status.BuildReport(status.NewRepositoryRef("/scan/B"), status.ChangeSummary{Unstaged: status.UnstagedChanges{Untracked: 2}}, []status.BranchStatus{
			{Name: "feature", State: status.NewNotTrackingState()},
			{Name: "main", State: status.NewTrackingState("origin/main", 0, 0)},
		}),
	}
}

func printAll(testInstance *testing.T, printer reporting.Printer, reports []status.RepositoryReport) {
	testInstance.Helper()
	require.NoError(testInstance, printer.Begin())
	for _, report := range reports {
		require.NoError(testInstance, printer.Emit(report))
	}
	require.NoError(testInstance, printer.Finish())
}

func TestTextPrinterWritesScenarioOutput(testInstance *testing.T) {
	var output bytes.Buffer
	printer, printerError := reporting.NewPrinter(reporting.FormatText, &output, reporting.ColorNever)
	require.NoError(testInstance, printerError)

	printAll(testInstance, printer, scenarioReports())

	expected := strings.Join([]string{
		"Searching for Git repositories...",
		"/scan/A ...OK",
		"/scan/B ...has issues",
		"  ± unstaged: 2 untracked",
		"  ! feature is non-tracking",
		"",
	}, "\n")
	require.Equal(testInstance, expected, output.String())
}

func TestTextPrinterWritesOnlyBannerWithoutRepositories(testInstance *testing.T) {
	var output bytes.Buffer
	printAll(testInstance, reporting.NewTextPrinter(&output, nil), nil)
	require.Equal(testInstance, "Searching for Git repositories...\n", output.String())
}

func TestStructuredPrinterWritesJSON(testInstance *testing.T) {
	var output bytes.Buffer
	printer, printerError := reporting.NewPrinter(reporting.FormatJSON, &output, reporting.ColorAlways)
	require.NoError(testInstance, printerError)

	printAll(testInstance, printer, scenarioReports())

	var decoded struct {
		Repositories []struct {
			Path      string `json:"path"`
			HasIssues bool   `json:"has_issues"`
			Changes   struct {
				Unstaged struct {
					Untracked int `json:"untracked"`
				} `json:"unstaged"`
			} `json:"changes"`
			Branches []struct {
				Name     string `json:"name"`
				Tracking struct {
					Kind string `json:"kind"`
				} `json:"tracking"`
			} `json:"branches"`
		} `json:"repositories"`
	}
	require.NoError(testInstance, json.Unmarshal(output.Bytes(), &decoded))
	require.Len(testInstance, decoded.Repositories, 2)
	require.False(testInstance, decoded.Repositories[0].HasIssues)
	require.True(testInstance, decoded.Repositories[1].HasIssues)
	require.Equal(testInstance, 2, decoded.Repositories[1].Changes.Unstaged.Untracked)
	require.Equal(testInstance, "not-tracking", decoded.Repositories[1].Branches[0].Tracking.Kind)
	require.NotContains(testInstance, output.String(), "\x1b[")
}

func TestStructuredPrinterWritesYAML(testInstance *testing.T) {
	var output bytes.Buffer
	printer, printerError := reporting.NewPrinter(reporting.FormatYAML, &output, reporting.ColorAuto)
	require.NoError(testInstance, printerError)

	printAll(testInstance, printer, scenarioReports())

	var decoded map[string][]map[string]any
	require.NoError(testInstance, yaml.Unmarshal(output.Bytes(), &decoded))
	require.Len(testInstance, decoded["repositories"], 2)
	require.Equal(testInstance, "/scan/B", decoded["repositories"][1]["path"])
	require.Equal(testInstance, true, decoded["repositories"][1]["has_issues"])
}

func TestStructuredPrinterWritesEmptyDocument(testInstance *testing.T) {
	var output bytes.Buffer
	printAll(testInstance, reporting.NewStructuredPrinter(&output, reporting.FormatJSON), nil)
	require.JSONEq(testInstance, `{"repositories": []}`, output.String())
}

func TestNewPrinterRejectsUnknownFormat(testInstance *testing.T) {
	_, printerError := reporting.NewPrinter(reporting.Format("xml"), &bytes.Buffer{}, reporting.ColorNever)
	require.Error(testInstance, printerError)
}
