package gitrepo

import (
	"errors"
	"fmt"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

const (
	openFailureTemplateConstant = "open %s: %w"
	headFailureTemplateConstant = "read HEAD of %s: %w"
)

// ErrBareRepository indicates a marker that opens as a repository without a working tree.
var ErrBareRepository = errors.New("repository has no working tree")

// RepositoryOpener resolves repositories with go-git.
type RepositoryOpener struct{}

// NewRepositoryOpener constructs a RepositoryOpener.
func NewRepositoryOpener() *RepositoryOpener {
	return &RepositoryOpener{}
}

// DiscoverWorkingDirectory reports the working tree enclosing path, searching path and
// then its ancestors. The boolean is false when no repository encloses path.
func (opener *RepositoryOpener) DiscoverWorkingDirectory(path string) (string, bool, error) {
	repository, openError := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true, EnableDotGitCommonDir: true})
	if errors.Is(openError, git.ErrRepositoryNotExists) {
		return "", false, nil
	}
	if openError != nil {
		return "", false, fmt.Errorf(openFailureTemplateConstant, path, openError)
	}

	workingDirectory, worktreeError := worktreeRoot(repository)
	if errors.Is(worktreeError, ErrBareRepository) {
		return "", false, nil
	}
	if worktreeError != nil {
		return "", false, fmt.Errorf(openFailureTemplateConstant, path, worktreeError)
	}
	return workingDirectory, true, nil
}

// OpenMarker validates a .git directory or file and returns the working directory it
// belongs to. A marker is valid when the repository opens and its HEAD reference is
// readable; an unborn HEAD still counts.
func (opener *RepositoryOpener) OpenMarker(markerPath string) (string, error) {
	workingDirectory := filepath.Dir(filepath.Clean(markerPath))

	repository, openError := git.PlainOpenWithOptions(workingDirectory, &git.PlainOpenOptions{EnableDotGitCommonDir: true})
	if openError != nil {
		return "", fmt.Errorf(openFailureTemplateConstant, markerPath, openError)
	}

	if _, headError := repository.Reference(plumbing.HEAD, false); headError != nil {
		return "", fmt.Errorf(headFailureTemplateConstant, markerPath, headError)
	}

	return workingDirectory, nil
}

func worktreeRoot(repository *git.Repository) (string, error) {
	worktree, worktreeError := repository.Worktree()
	if errors.Is(worktreeError, git.ErrIsBareRepository) {
		return "", ErrBareRepository
	}
	if worktreeError != nil {
		return "", worktreeError
	}
	return worktree.Filesystem.Root(), nil
}
