package gitrepo_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitstatus/internal/gitrepo"
	"github.com/temirov/gitstatus/internal/status"
)

const (
	ordinaryModifiedRecord = "1 .M N... 100644 100644 100644 3f2a 3f2a src/main.go"
	ordinaryStagedRecord   = "1 A. N... 000000 100644 100644 0000 9c1e docs/read me.md"
	renamedRecord          = "2 R. N... 100644 100644 100644 77ab 77ab R100 cmd/new.go"
	renamedOriginalPath    = "cmd/old.go"
	unmergedRecord         = "u UU N... 100644 100644 100644 100644 aa11 bb22 cc33 conflict.txt"
	untrackedRecord        = "? notes.txt"
	ignoredRecord          = "! build/output.bin"
	headerRecord           = "# branch.oid 3f2a"
)

func TestParsePorcelainStatusRecognizesEntryTypes(testInstance *testing.T) {
	output := strings.Join([]string{
		headerRecord,
		ordinaryModifiedRecord,
		ordinaryStagedRecord,
		renamedRecord,
		renamedOriginalPath,
		unmergedRecord,
		untrackedRecord,
		ignoredRecord,
	}, "\x00") + "\x00"

	entries, parseError := gitrepo.ParsePorcelainStatus(output)
	require.NoError(testInstance, parseError)
	require.Equal(testInstance, []status.FileStatus{
		{Path: "src/main.go", Index: status.ChangeUnmodified, Worktree: status.ChangeModified},
		{Path: "docs/read me.md", Index: status.ChangeAdded, Worktree: status.ChangeUnmodified},
		{Path: "cmd/new.go", OriginalPath: renamedOriginalPath, Index: status.ChangeRenamed, Worktree: status.ChangeUnmodified},
		{Path: "conflict.txt", Index: status.ChangeUnmerged, Worktree: status.ChangeUnmerged},
		{Path: "notes.txt", Index: status.ChangeUntracked, Worktree: status.ChangeUntracked},
	}, entries)
}

func TestParsePorcelainStatusHandlesCleanOutput(testInstance *testing.T) {
	entries, parseError := gitrepo.ParsePorcelainStatus("")
	require.NoError(testInstance, parseError)
	require.Empty(testInstance, entries)
}

func TestParsePorcelainStatusRejectsMalformedRecords(testInstance *testing.T) {
	testCases := []struct {
		name   string
		output string
	}{
		{name: "truncated_ordinary", output: "1 .M N... 100644\x00"},
		{name: "rename_without_original", output: renamedRecord + "\x00"},
		{name: "unknown_entry_type", output: "x something\x00"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			_, parseError := gitrepo.ParsePorcelainStatus(testCase.output)
			var statusParseError gitrepo.StatusParseError
			require.ErrorAs(subTest, parseError, &statusParseError)
		})
	}
}

func TestParsedStatusFeedsChangeSummary(testInstance *testing.T) {
	output := strings.Join([]string{untrackedRecord, "? other.txt", ordinaryModifiedRecord}, "\x00") + "\x00"

	entries, parseError := gitrepo.ParsePorcelainStatus(output)
	require.NoError(testInstance, parseError)

	summary := status.SummarizeChanges(entries)
	require.Equal(testInstance, 2, summary.Unstaged.Untracked)
	require.Equal(testInstance, 1, summary.Unstaged.Modified)
	require.Zero(testInstance, summary.Staged.Total())
}
