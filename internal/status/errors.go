package status

import (
	"errors"
	"fmt"
)

const (
	rootNotFoundMessageConstant           = "path does not exist"
	rootNotDirectoryMessageConstant       = "path is not a directory"
	inputErrorTemplateConstant            = "invalid root %s: %v"
	repositoryOpenFailureTemplateConstant = "unable to open repository %s: %v"
	statusReadFailureTemplateConstant     = "unable to read status of %s: %w"
	branchReadFailureTemplateConstant     = "unable to list branches of %s: %w"
	rootResolutionFailureTemplateConstant = "unable to resolve %s: %w"
	markerSearchFailureTemplateConstant   = "unable to search %s for repositories: %w"
)

// ErrRootNotFound indicates a root path that does not exist.
var ErrRootNotFound = errors.New(rootNotFoundMessageConstant)

// ErrRootNotDirectory indicates a root path that exists but is not a directory.
var ErrRootNotDirectory = errors.New(rootNotDirectoryMessageConstant)

// InputError reports a root that could not be scanned at all.
type InputError struct {
	Root  string
	Cause error
}

// Error describes the invalid root.
func (inputError InputError) Error() string {
	return fmt.Sprintf(inputErrorTemplateConstant, inputError.Root, inputError.Cause)
}

// Unwrap exposes the underlying cause so errors.Is matches the sentinels.
func (inputError InputError) Unwrap() error {
	return inputError.Cause
}

// RepositoryOpenFailure reports a candidate repository that could not be analyzed.
type RepositoryOpenFailure struct {
	Repository RepositoryRef
	Cause      error
}

// Error describes the failure.
func (failure RepositoryOpenFailure) Error() string {
	return fmt.Sprintf(repositoryOpenFailureTemplateConstant, failure.Repository.WorkingDirectory, failure.Cause)
}

// Unwrap exposes the underlying cause.
func (failure RepositoryOpenFailure) Unwrap() error {
	return failure.Cause
}
