package status

import (
	"context"
	"fmt"
)

// Classifier summarizes a repository's uncommitted changes from one status snapshot.
type Classifier struct {
	reader StatusReader
}

// NewClassifier constructs a Classifier reading snapshots through reader.
func NewClassifier(reader StatusReader) *Classifier {
	return &Classifier{reader: reader}
}

// Classify reads the repository status once and buckets every entry.
func (classifier *Classifier) Classify(executionContext context.Context, repository RepositoryRef) (ChangeSummary, error) {
	entries, readError := classifier.reader.ReadStatus(executionContext, repository.WorkingDirectory)
	if readError != nil {
		return ChangeSummary{}, fmt.Errorf(statusReadFailureTemplateConstant, repository.WorkingDirectory, readError)
	}
	return SummarizeChanges(entries), nil
}

// SummarizeChanges buckets status entries into staged and unstaged counts.
//
// Conflicted entries count once as an unstaged modification. Index and worktree are
// bucketed independently, and a renamed side counts only as renamed on that side.
func SummarizeChanges(entries []FileStatus) ChangeSummary {
	var summary ChangeSummary
	for _, entry := range entries {
		switch {
		case entry.Index == ChangeUnmerged || entry.Worktree == ChangeUnmerged:
			summary.Unstaged.Modified++
			continue
		case entry.Index == ChangeUntracked || entry.Worktree == ChangeUntracked:
			summary.Unstaged.Untracked++
			continue
		}

		switch entry.Index {
		case ChangeRenamed:
			summary.Staged.Renamed++
		case ChangeAdded, ChangeCopied:
			summary.Staged.Added++
		case ChangeModified, ChangeTypeChanged:
			summary.Staged.Modified++
		case ChangeDeleted:
			summary.Staged.Removed++
		}

		switch entry.Worktree {
		case ChangeRenamed:
			summary.Unstaged.Renamed++
		case ChangeAdded:
			summary.Unstaged.Untracked++
		case ChangeModified, ChangeTypeChanged:
			summary.Unstaged.Modified++
		case ChangeDeleted:
			summary.Unstaged.Missing++
		}
	}
	return summary
}
