// Package status implements repository discovery and status classification.
//
// Locator expands filesystem roots into repositories, Classifier turns a status
// snapshot into a ChangeSummary, Analyzer computes per-branch tracking state, and
// BuildReport aggregates the three into a RepositoryReport. Service drives the
// whole scan, isolating failures per repository and emitting reports in
// discovery order through a ReportSink.
//
// The package holds data and decisions only. Version control queries arrive
// through the StatusReader, BranchReader and RepositoryOpener interfaces, and
// rendering is left to the consumer of the reports.
package status
