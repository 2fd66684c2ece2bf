package status

// BuildReport aggregates a repository's change summary and branch states.
func BuildReport(repository RepositoryRef, changes ChangeSummary, branches []BranchStatus) RepositoryReport {
	if branches == nil {
		branches = []BranchStatus{}
	}
	return RepositoryReport{Repository: repository, Changes: changes, Branches: branches}
}

// HasIssues reports uncommitted changes, branches without a usable upstream, and divergent branches.
func (report RepositoryReport) HasIssues() bool {
	if report.Changes.IsDirty() {
		return true
	}
	for _, branch := range report.Branches {
		if !branch.State.IsTracking() || branch.State.IsDivergent() {
			return true
		}
	}
	return false
}
