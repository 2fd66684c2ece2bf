package status

import (
	"context"
	"io/fs"

	"github.com/temirov/gitstatus/internal/repos/discovery"
)

// FileSystem exposes the filesystem queries required to validate roots.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	Abs(path string) (string, error)
	EvalSymlinks(path string) (string, error)
}

// MarkerFinder enumerates repository markers beneath a root.
type MarkerFinder interface {
	FindMarkers(root string) (discovery.MarkerSearchResult, error)
}

// RepositoryOpener answers repository-level questions without reading status.
type RepositoryOpener interface {
	// DiscoverWorkingDirectory searches path and its ancestors for an enclosing repository.
	DiscoverWorkingDirectory(path string) (string, bool, error)
	// OpenMarker validates a marker found on disk and returns its working directory.
	OpenMarker(markerPath string) (string, error)
}

// StatusReader captures a single status snapshot of a working directory.
type StatusReader interface {
	ReadStatus(executionContext context.Context, workingDirectory string) ([]FileStatus, error)
}

// BranchReader exposes branch enumeration and commit graph queries.
type BranchReader interface {
	ListLocalBranches(executionContext context.Context, workingDirectory string) ([]LocalBranch, error)
	ResolvesCommit(executionContext context.Context, workingDirectory string, reference string) (bool, error)
	CountDivergence(executionContext context.Context, workingDirectory string, localReference string, upstreamReference string) (int, int, error)
}

// RepositoryLocator expands a root into repositories.
type RepositoryLocator interface {
	Locate(executionContext context.Context, root string) ([]RepositoryRef, error)
}

// ChangeClassifier summarizes a repository's uncommitted changes.
type ChangeClassifier interface {
	Classify(executionContext context.Context, repository RepositoryRef) (ChangeSummary, error)
}

// DivergenceAnalyzer computes tracking state for a repository's local branches.
type DivergenceAnalyzer interface {
	Analyze(executionContext context.Context, repository RepositoryRef) ([]BranchStatus, error)
}

// ReportSink consumes reports as they become available.
type ReportSink interface {
	Emit(report RepositoryReport) error
}

// ReportSinkFunc adapts a function to ReportSink.
type ReportSinkFunc func(report RepositoryReport) error

// Emit calls the underlying function.
func (sinkFunction ReportSinkFunc) Emit(report RepositoryReport) error {
	return sinkFunction(report)
}
