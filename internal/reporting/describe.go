package reporting

import (
	"fmt"
	"strings"

	"github.com/temirov/gitstatus/internal/status"
)

const (
	cleanSuffixConstant          = "OK"
	issuesSuffixConstant         = "has issues"
	headerTemplateConstant       = "%s ...%s"
	detailIndentConstant         = "  "
	stagedPrefixConstant         = "± staged: "
	unstagedPrefixConstant       = "± unstaged: "
	bucketTemplateConstant       = "%d %s"
	bucketSeparatorConstant      = ", "
	nonTrackingTemplateConstant  = "! %s is non-tracking"
	upstreamGoneTemplateConstant = "! %s tracks %s which no longer exists"
	divergenceTemplateConstant   = "%s %s is %s %s"
	aheadSymbolConstant          = "↑"
	behindSymbolConstant         = "↓"
	divergedSymbolConstant       = "↕"
	aheadWordConstant            = "ahead"
	behindWordConstant           = "behind"
	aheadOfWordConstant          = "of"
)

// StyledLine is one line of text output with its styling category.
type StyledLine struct {
	Text     string
	Category Category
}

// DescribeReport lists the detail lines printed below a repository header:
// change buckets first, then one line per branch that needs attention.
func DescribeReport(report status.RepositoryReport) []StyledLine {
	var lines []StyledLine

	if stagedBuckets := describeStaged(report.Changes.Staged); len(stagedBuckets) > 0 {
		lines = append(lines, StyledLine{Text: stagedPrefixConstant + stagedBuckets, Category: CategoryChanges})
	}
	if unstagedBuckets := describeUnstaged(report.Changes.Unstaged); len(unstagedBuckets) > 0 {
		lines = append(lines, StyledLine{Text: unstagedPrefixConstant + unstagedBuckets, Category: CategoryChanges})
	}

	for _, branch := range report.Branches {
		if branchLine, needsAttention := describeBranch(branch); needsAttention {
			lines = append(lines, branchLine)
		}
	}

	return lines
}

// DivergenceClause phrases ahead and behind counts, e.g. "3 ahead", "2 behind" or
// "1 ahead, 1 behind". It returns an empty string when both counts are zero.
func DivergenceClause(aheadBy int, behindBy int) string {
	var parts []string
	if aheadBy > 0 {
		parts = append(parts, fmt.Sprintf(bucketTemplateConstant, aheadBy, aheadWordConstant))
	}
	if behindBy > 0 {
		parts = append(parts, fmt.Sprintf(bucketTemplateConstant, behindBy, behindWordConstant))
	}
	return strings.Join(parts, bucketSeparatorConstant)
}

func describeBranch(branch status.BranchStatus) (StyledLine, bool) {
	state := branch.State
	switch {
	case state.UpstreamGone:
		return StyledLine{Text: fmt.Sprintf(upstreamGoneTemplateConstant, branch.Name, state.Upstream), Category: CategoryWarning}, true
	case !state.IsTracking():
		return StyledLine{Text: fmt.Sprintf(nonTrackingTemplateConstant, branch.Name), Category: CategoryWarning}, true
	case !state.IsDivergent():
		return StyledLine{}, false
	}

	symbol := divergedSymbolConstant
	switch {
	case state.BehindBy == 0:
		symbol = aheadSymbolConstant
	case state.AheadBy == 0:
		symbol = behindSymbolConstant
	}

	clause := DivergenceClause(state.AheadBy, state.BehindBy)
	if state.BehindBy == 0 {
		clause += " " + aheadOfWordConstant
	}
	text := fmt.Sprintf(divergenceTemplateConstant, symbol, branch.Name, clause, state.Upstream)
	return StyledLine{Text: text, Category: CategoryDivergence}, true
}

func describeStaged(changes status.StagedChanges) string {
	return joinBuckets([]bucket{
		{count: changes.Added, label: "added"},
		{count: changes.Modified, label: "modified"},
		{count: changes.Removed, label: "removed"},
		{count: changes.Renamed, label: "renamed"},
	})
}

func describeUnstaged(changes status.UnstagedChanges) string {
	return joinBuckets([]bucket{
		{count: changes.Untracked, label: "untracked"},
		{count: changes.Modified, label: "modified"},
		{count: changes.Missing, label: "missing"},
		{count: changes.Renamed, label: "renamed"},
	})
}

type bucket struct {
	count int
	label string
}

func joinBuckets(buckets []bucket) string {
	parts := make([]string, 0, len(buckets))
	for _, candidate := range buckets {
		if candidate.count == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf(bucketTemplateConstant, candidate.count, candidate.label))
	}
	return strings.Join(parts, bucketSeparatorConstant)
}
