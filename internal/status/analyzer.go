package status

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	trackingResolutionFailureMessage = "Unable to resolve tracking state, reporting branch as in sync"
	analyzerLogFieldRepository       = "repository"
	analyzerLogFieldBranch           = "branch"
	analyzerLogFieldUpstream         = "upstream"
)

// Analyzer computes the tracking state of every local branch of a repository.
type Analyzer struct {
	reader BranchReader
	logger *zap.Logger
}

// NewAnalyzer constructs an Analyzer. A nil logger disables logging.
func NewAnalyzer(reader BranchReader, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{reader: reader, logger: logger}
}

// Analyze returns one BranchStatus per local branch in enumeration order.
//
// Branches without an upstream are NotTracking. A configured upstream that no longer
// resolves yields NotTracking with UpstreamGone set. A failure to count divergence
// degrades to Tracking with zero counts and is logged as a warning.
func (analyzer *Analyzer) Analyze(executionContext context.Context, repository RepositoryRef) ([]BranchStatus, error) {
	localBranches, listError := analyzer.reader.ListLocalBranches(executionContext, repository.WorkingDirectory)
	if listError != nil {
		return nil, fmt.Errorf(branchReadFailureTemplateConstant, repository.WorkingDirectory, listError)
	}

	statuses := make([]BranchStatus, 0, len(localBranches))
	for _, localBranch := range localBranches {
		if contextError := executionContext.Err(); contextError != nil {
			return nil, contextError
		}
		statuses = append(statuses, BranchStatus{
			Name:  localBranch.Name,
			State: analyzer.resolveState(executionContext, repository, localBranch),
		})
	}

	return statuses, nil
}

func (analyzer *Analyzer) resolveState(executionContext context.Context, repository RepositoryRef, localBranch LocalBranch) BranchTrackingState {
	if !localBranch.HasUpstream() {
		return NewNotTrackingState()
	}

	upstreamName := strings.TrimSpace(localBranch.UpstreamName)
	if len(upstreamName) == 0 {
		upstreamName = localBranch.UpstreamReference
	}

	upstreamResolves, resolveError := analyzer.reader.ResolvesCommit(executionContext, repository.WorkingDirectory, localBranch.UpstreamReference)
	if resolveError != nil {
		analyzer.logResolutionFailure(repository, localBranch, upstreamName, resolveError)
		return NewTrackingState(upstreamName, 0, 0)
	}
	if !upstreamResolves {
		return NewUpstreamGoneState(upstreamName)
	}

	aheadBy, behindBy, countError := analyzer.reader.CountDivergence(executionContext, repository.WorkingDirectory, localBranch.Reference, localBranch.UpstreamReference)
	if countError != nil {
		analyzer.logResolutionFailure(repository, localBranch, upstreamName, countError)
		return NewTrackingState(upstreamName, 0, 0)
	}

	return NewTrackingState(upstreamName, aheadBy, behindBy)
}

func (analyzer *Analyzer) logResolutionFailure(repository RepositoryRef, localBranch LocalBranch, upstreamName string, failure error) {
	analyzer.logger.Warn(trackingResolutionFailureMessage,
		zap.String(analyzerLogFieldRepository, repository.WorkingDirectory),
		zap.String(analyzerLogFieldBranch, localBranch.Name),
		zap.String(analyzerLogFieldUpstream, upstreamName),
		zap.Error(failure),
	)
}
