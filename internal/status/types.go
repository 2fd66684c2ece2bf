package status

import (
	"path/filepath"
	"strings"
)

const pathSeparatorsConstant = `/\`

// RepositoryRef identifies one discovered repository by its working directory.
type RepositoryRef struct {
	WorkingDirectory string `json:"path" yaml:"path"`
}

// NewRepositoryRef builds a RepositoryRef with trailing path separators trimmed.
func NewRepositoryRef(workingDirectory string) RepositoryRef {
	trimmed := strings.TrimRight(workingDirectory, pathSeparatorsConstant)
	if len(trimmed) == 0 && len(workingDirectory) > 0 {
		trimmed = string(filepath.Separator)
	}
	return RepositoryRef{WorkingDirectory: trimmed}
}

// ChangeKind enumerates how a single path differs on one side of a status entry.
type ChangeKind int

// Change kinds reported by a StatusReader.
const (
	ChangeUnmodified ChangeKind = iota
	ChangeAdded
	ChangeModified
	ChangeDeleted
	ChangeRenamed
	ChangeCopied
	ChangeTypeChanged
	ChangeUntracked
	ChangeUnmerged
)

// FileStatus is one entry of a status snapshot. Index compares HEAD with the index,
// Worktree compares the index with the working tree.
type FileStatus struct {
	Path         string
	OriginalPath string
	Index        ChangeKind
	Worktree     ChangeKind
}

// StagedChanges counts differences between HEAD and the index.
type StagedChanges struct {
	Added    int `json:"added" yaml:"added"`
	Modified int `json:"modified" yaml:"modified"`
	Removed  int `json:"removed" yaml:"removed"`
	Renamed  int `json:"renamed" yaml:"renamed"`
}

// Total sums the staged buckets.
func (changes StagedChanges) Total() int {
	return changes.Added + changes.Modified + changes.Removed + changes.Renamed
}

// UnstagedChanges counts differences between the index and the working tree.
type UnstagedChanges struct {
	Untracked int `json:"untracked" yaml:"untracked"`
	Modified  int `json:"modified" yaml:"modified"`
	Missing   int `json:"missing" yaml:"missing"`
	Renamed   int `json:"renamed" yaml:"renamed"`
}

// Total sums the unstaged buckets.
func (changes UnstagedChanges) Total() int {
	return changes.Untracked + changes.Modified + changes.Missing + changes.Renamed
}

// ChangeSummary aggregates a status snapshot into staged and unstaged counts.
type ChangeSummary struct {
	Staged   StagedChanges   `json:"staged" yaml:"staged"`
	Unstaged UnstagedChanges `json:"unstaged" yaml:"unstaged"`
}

// IsDirty reports whether any of the eight buckets is nonzero.
func (summary ChangeSummary) IsDirty() bool {
	return summary.Staged.Total() > 0 || summary.Unstaged.Total() > 0
}

// TrackingKind distinguishes branches with a usable upstream from those without.
type TrackingKind string

// Tracking kinds.
const (
	NotTracking TrackingKind = "not-tracking"
	Tracking    TrackingKind = "tracking"
)

// BranchTrackingState describes a local branch's relationship with its upstream.
//
// UpstreamGone marks a NotTracking branch whose configured upstream no longer
// resolves; Upstream then carries the configured name.
type BranchTrackingState struct {
	Kind         TrackingKind `json:"kind" yaml:"kind"`
	Upstream     string       `json:"upstream,omitempty" yaml:"upstream,omitempty"`
	AheadBy      int          `json:"ahead" yaml:"ahead"`
	BehindBy     int          `json:"behind" yaml:"behind"`
	UpstreamGone bool         `json:"upstream_gone,omitempty" yaml:"upstream_gone,omitempty"`
}

// NewNotTrackingState returns the state of a branch without an upstream.
func NewNotTrackingState() BranchTrackingState {
	return BranchTrackingState{Kind: NotTracking}
}

// NewUpstreamGoneState returns the state of a branch whose upstream cannot be resolved.
func NewUpstreamGoneState(upstream string) BranchTrackingState {
	return BranchTrackingState{Kind: NotTracking, Upstream: upstream, UpstreamGone: true}
}

// NewTrackingState returns the state of a branch tracking upstream. Negative counts are clamped to zero.
func NewTrackingState(upstream string, aheadBy int, behindBy int) BranchTrackingState {
	return BranchTrackingState{
		Kind:     Tracking,
		Upstream: upstream,
		AheadBy:  max(aheadBy, 0),
		BehindBy: max(behindBy, 0),
	}
}

// IsTracking reports whether the branch has a resolvable upstream.
func (state BranchTrackingState) IsTracking() bool {
	return state.Kind == Tracking
}

// IsDivergent reports whether the branch and its upstream differ in either direction.
func (state BranchTrackingState) IsDivergent() bool {
	return state.AheadBy > 0 || state.BehindBy > 0
}

// BranchStatus pairs a local branch name with its tracking state.
type BranchStatus struct {
	Name  string              `json:"name" yaml:"name"`
	State BranchTrackingState `json:"tracking" yaml:"tracking"`
}

// LocalBranch is a local branch as enumerated by a BranchReader.
// UpstreamReference is empty when no upstream is configured.
type LocalBranch struct {
	Name              string
	Reference         string
	UpstreamReference string
	UpstreamName      string
}

// HasUpstream reports whether an upstream is configured for the branch.
func (branch LocalBranch) HasUpstream() bool {
	return len(strings.TrimSpace(branch.UpstreamReference)) > 0
}

// RepositoryReport aggregates everything reported for one repository.
type RepositoryReport struct {
	Repository RepositoryRef  `json:"repository" yaml:"repository"`
	Changes    ChangeSummary  `json:"changes" yaml:"changes"`
	Branches   []BranchStatus `json:"branches" yaml:"branches"`
}
