package status_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitstatus/internal/status"
)

func TestRepositoryReportHasIssues(testInstance *testing.T) {
	repository := status.NewRepositoryRef("/work/a")
	inSyncBranch := status.BranchStatus{Name: "main", State: status.NewTrackingState("origin/main", 0, 0)}

	testCases := []struct {
		name      string
		changes   status.ChangeSummary
		branches  []status.BranchStatus
		hasIssues bool
	}{
		{name: "clean_and_in_sync", branches: []status.BranchStatus{inSyncBranch}, hasIssues: false},
		{name: "no_branches", hasIssues: false},
		{name: "dirty", changes: status.ChangeSummary{Staged: status.StagedChanges{Added: 1}}, branches: []status.BranchStatus{inSyncBranch}, hasIssues: true},
		{name: "non_tracking", branches: []status.BranchStatus{inSyncBranch, {Name: "feature", State: status.NewNotTrackingState()}}, hasIssues: true},
		{name: "upstream_gone", branches: []status.BranchStatus{{Name: "old", State: status.NewUpstreamGoneState("origin/old")}}, hasIssues: true},
		{name: "behind", branches: []status.BranchStatus{{Name: "main", State: status.NewTrackingState("origin/main", 0, 2)}}, hasIssues: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			report := status.BuildReport(repository, testCase.changes, testCase.branches)
			require.Equal(subTest, testCase.hasIssues, report.HasIssues())
			require.NotNil(subTest, report.Branches)
		})
	}
}

func TestNewRepositoryRefTrimsTrailingSeparators(testInstance *testing.T) {
	require.Equal(testInstance, "/work/a", status.NewRepositoryRef("/work/a///").WorkingDirectory)
	require.Equal(testInstance, "/work/a", status.NewRepositoryRef("/work/a").WorkingDirectory)
	require.Equal(testInstance, "/", status.NewRepositoryRef("/").WorkingDirectory)
}
