package status

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"go.uber.org/zap"

	pathutils "github.com/temirov/gitstatus/internal/utils/path"
)

const (
	currentDirectoryRootConstant           = "."
	locatorEnclosingRepositoryMessage      = "Root is inside a repository"
	locatorSkippedDirectoryMessage         = "Skipped unreadable directory"
	locatorInvalidMarkerMessage            = "Ignored invalid repository marker"
	locatorDiscoveryFailureMessage         = "Upward repository discovery failed, searching subtree"
	locatorSearchCompletedMessage          = "Repository search completed"
	locatorLogFieldRootConstant            = "root"
	locatorLogFieldPathConstant            = "path"
	locatorLogFieldMarkerConstant          = "marker"
	locatorLogFieldRepositoryCountConstant = "repositories"
)

// Locator expands a root path into the repositories it designates.
type Locator struct {
	fileSystem   FileSystem
	opener       RepositoryOpener
	finder       MarkerFinder
	homeExpander *pathutils.HomeExpander
	logger       *zap.Logger
}

// NewLocator constructs a Locator. A nil logger disables logging.
func NewLocator(fileSystem FileSystem, opener RepositoryOpener, finder MarkerFinder, logger *zap.Logger) *Locator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Locator{
		fileSystem:   fileSystem,
		opener:       opener,
		finder:       finder,
		homeExpander: pathutils.NewHomeExpander(),
		logger:       logger,
	}
}

// Locate resolves root into repositories.
//
// A root inside a repository yields exactly the enclosing repository. Any other
// directory is searched recursively and every valid marker contributes its working
// directory, nested repositories included, in lexical order without duplicates.
// Roots that are missing or not directories are reported as InputError.
func (locator *Locator) Locate(executionContext context.Context, root string) ([]RepositoryRef, error) {
	requestedRoot := strings.TrimSpace(root)
	if len(requestedRoot) == 0 {
		requestedRoot = currentDirectoryRootConstant
	}

	absoluteRoot, resolutionError := locator.resolveRoot(requestedRoot)
	if resolutionError != nil {
		return nil, InputError{Root: requestedRoot, Cause: resolutionError}
	}

	if contextError := executionContext.Err(); contextError != nil {
		return nil, contextError
	}

	workingDirectory, insideRepository, discoveryError := locator.opener.DiscoverWorkingDirectory(absoluteRoot)
	switch {
	case discoveryError != nil:
		locator.logger.Debug(locatorDiscoveryFailureMessage, zap.String(locatorLogFieldRootConstant, absoluteRoot), zap.Error(discoveryError))
	case insideRepository:
		locator.logger.Debug(locatorEnclosingRepositoryMessage,
			zap.String(locatorLogFieldRootConstant, absoluteRoot),
			zap.String(locatorLogFieldPathConstant, workingDirectory),
		)
		return []RepositoryRef{NewRepositoryRef(workingDirectory)}, nil
	}

	searchResult, searchError := locator.finder.FindMarkers(absoluteRoot)
	if searchError != nil {
		return nil, InputError{Root: requestedRoot, Cause: fmt.Errorf(markerSearchFailureTemplateConstant, absoluteRoot, searchError)}
	}

	for _, skippedDirectory := range searchResult.SkippedDirectories {
		locator.logger.Debug(locatorSkippedDirectoryMessage,
			zap.String(locatorLogFieldPathConstant, skippedDirectory.Path),
			zap.Error(skippedDirectory.Cause),
		)
	}

	repositories := make([]RepositoryRef, 0, len(searchResult.Markers))
	seenWorkingDirectories := make(map[string]struct{}, len(searchResult.Markers))
	for _, markerPath := range searchResult.Markers {
		markerWorkingDirectory, openError := locator.opener.OpenMarker(markerPath)
		if openError != nil {
			locator.logger.Debug(locatorInvalidMarkerMessage, zap.String(locatorLogFieldMarkerConstant, markerPath), zap.Error(openError))
			continue
		}

		repository := NewRepositoryRef(markerWorkingDirectory)
		if _, seen := seenWorkingDirectories[repository.WorkingDirectory]; seen {
			continue
		}
		seenWorkingDirectories[repository.WorkingDirectory] = struct{}{}
		repositories = append(repositories, repository)
	}

	locator.logger.Debug(locatorSearchCompletedMessage,
		zap.String(locatorLogFieldRootConstant, absoluteRoot),
		zap.Int(locatorLogFieldRepositoryCountConstant, len(repositories)),
	)

	return repositories, nil
}

func (locator *Locator) resolveRoot(requestedRoot string) (string, error) {
	expandedRoot := locator.homeExpander.Expand(requestedRoot)

	absoluteRoot, absoluteError := locator.fileSystem.Abs(expandedRoot)
	if absoluteError != nil {
		return "", fmt.Errorf(rootResolutionFailureTemplateConstant, expandedRoot, absoluteError)
	}

	rootInfo, statError := locator.fileSystem.Stat(absoluteRoot)
	if statError != nil {
		if errors.Is(statError, fs.ErrNotExist) {
			return "", ErrRootNotFound
		}
		return "", fmt.Errorf(rootResolutionFailureTemplateConstant, absoluteRoot, statError)
	}

	if !rootInfo.IsDir() {
		return "", ErrRootNotDirectory
	}

	// The walk does not follow a symlinked root, so search from its target.
	resolvedRoot, symlinkError := locator.fileSystem.EvalSymlinks(absoluteRoot)
	if symlinkError != nil {
		return "", fmt.Errorf(rootResolutionFailureTemplateConstant, absoluteRoot, symlinkError)
	}

	return resolvedRoot, nil
}
