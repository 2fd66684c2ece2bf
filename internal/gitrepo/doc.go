// Package gitrepo answers repository questions for the status scanner.
//
// RepositoryOpener uses go-git to discover enclosing repositories and to validate
// markers found on disk. RepositoryInspector shells out to git through execshell
// for the status snapshot, the local branch list and ahead/behind counts, which
// keeps those answers identical to what the git command line reports.
package gitrepo
