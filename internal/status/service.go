package status

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	pathutils "github.com/temirov/gitstatus/internal/utils/path"
)

const (
	minimumJobsConstant                  = 1
	reportEmissionFailureTemplate        = "unable to emit report for %s: %w"
	scanRootStartedMessage               = "Scanning root"
	scanRootLocatedMessage               = "Located repositories"
	scanRootRejectedMessage              = "Skipping invalid root"
	scanRepositorySkippedMessage         = "Skipping repository that could not be analyzed"
	scanRepositoryCompletedMessage       = "Analyzed repository"
	scanCancelledMessage                 = "Scan cancelled"
	scanLogFieldRootConstant             = "root"
	scanLogFieldRepositoryConstant       = "repository"
	scanLogFieldRepositoryCountConstant  = "repositories"
	scanLogFieldHasIssuesConstant        = "has_issues"
	scanLogFieldCompletedReportsConstant = "completed_reports"
)

// ErrLocatorNotConfigured indicates a Service constructed without a RepositoryLocator.
var ErrLocatorNotConfigured = errors.New("repository locator not configured")

// ErrClassifierNotConfigured indicates a Service constructed without a ChangeClassifier.
var ErrClassifierNotConfigured = errors.New("change classifier not configured")

// ErrAnalyzerNotConfigured indicates a Service constructed without a DivergenceAnalyzer.
var ErrAnalyzerNotConfigured = errors.New("divergence analyzer not configured")

// Dependencies wires the collaborators used by Service.
type Dependencies struct {
	Locator       RepositoryLocator
	Classifier    ChangeClassifier
	Analyzer      DivergenceAnalyzer
	PathSanitizer *pathutils.RootPathSanitizer
	Logger        *zap.Logger
}

// Options configures one scan.
type Options struct {
	Roots []string
	Jobs  int
}

// ScanResult collects everything a scan produced.
type ScanResult struct {
	Reports             []RepositoryReport
	InputErrors         []InputError
	SkippedRepositories []RepositoryOpenFailure
}

// Service drives discovery and analysis across roots.
type Service struct {
	locator       RepositoryLocator
	classifier    ChangeClassifier
	analyzer      DivergenceAnalyzer
	pathSanitizer *pathutils.RootPathSanitizer
	logger        *zap.Logger
}

type repositoryOutcome struct {
	report    RepositoryReport
	failure   *RepositoryOpenFailure
	completed bool
}

// NewService validates dependencies and constructs a Service.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.Locator == nil {
		return nil, ErrLocatorNotConfigured
	}
	if dependencies.Classifier == nil {
		return nil, ErrClassifierNotConfigured
	}
	if dependencies.Analyzer == nil {
		return nil, ErrAnalyzerNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	pathSanitizer := dependencies.PathSanitizer
	if pathSanitizer == nil {
		pathSanitizer = pathutils.NewRootPathSanitizer()
	}

	return &Service{
		locator:       dependencies.Locator,
		classifier:    dependencies.Classifier,
		analyzer:      dependencies.Analyzer,
		pathSanitizer: pathSanitizer,
		logger:        logger,
	}, nil
}

// Scan locates repositories under every root and emits one report per repository
// to sink in discovery order. A nil sink only collects reports into the result.
//
// Invalid roots and repositories that cannot be analyzed never stop the scan: they
// are logged and recorded in the result. The returned error combines every
// InputError, the context error when the scan was cancelled, or the first sink failure.
func (service *Service) Scan(executionContext context.Context, options Options, sink ReportSink) (ScanResult, error) {
	roots := service.pathSanitizer.Sanitize(options.Roots)
	if len(roots) == 0 {
		roots = []string{currentDirectoryRootConstant}
	}

	jobs := max(options.Jobs, minimumJobsConstant)

	var result ScanResult
	var combinedError error
	seenRepositories := make(map[string]struct{})

	for _, root := range roots {
		if contextError := executionContext.Err(); contextError != nil {
			service.logger.Debug(scanCancelledMessage, zap.Int(scanLogFieldCompletedReportsConstant, len(result.Reports)))
			return result, multierr.Append(combinedError, contextError)
		}

		service.logger.Debug(scanRootStartedMessage, zap.String(scanLogFieldRootConstant, root))

		repositories, locateError := service.locator.Locate(executionContext, root)
		if locateError != nil {
			if errors.Is(locateError, context.Canceled) || errors.Is(locateError, context.DeadlineExceeded) {
				return result, multierr.Append(combinedError, locateError)
			}

			var inputError InputError
			if !errors.As(locateError, &inputError) {
				inputError = InputError{Root: root, Cause: locateError}
			}
			service.logger.Error(scanRootRejectedMessage, zap.String(scanLogFieldRootConstant, inputError.Root), zap.Error(inputError.Cause))
			result.InputErrors = append(result.InputErrors, inputError)
			combinedError = multierr.Append(combinedError, inputError)
			continue
		}

		pendingRepositories := make([]RepositoryRef, 0, len(repositories))
		for _, repository := range repositories {
			if _, seen := seenRepositories[repository.WorkingDirectory]; seen {
				continue
			}
			seenRepositories[repository.WorkingDirectory] = struct{}{}
			pendingRepositories = append(pendingRepositories, repository)
		}

		service.logger.Debug(scanRootLocatedMessage,
			zap.String(scanLogFieldRootConstant, root),
			zap.Int(scanLogFieldRepositoryCountConstant, len(pendingRepositories)),
		)

		emissionError := service.processRepositories(executionContext, pendingRepositories, jobs, func(outcome repositoryOutcome) error {
			return service.record(&result, outcome, sink)
		})
		if emissionError != nil {
			return result, multierr.Append(combinedError, emissionError)
		}
	}

	if contextError := executionContext.Err(); contextError != nil {
		service.logger.Debug(scanCancelledMessage, zap.Int(scanLogFieldCompletedReportsConstant, len(result.Reports)))
		combinedError = multierr.Append(combinedError, contextError)
	}

	return result, combinedError
}

// processRepositories analyzes repositories and hands completed outcomes to handle in
// discovery order. Processing stops at the first repository that did not complete.
func (service *Service) processRepositories(executionContext context.Context, repositories []RepositoryRef, jobs int, handle func(repositoryOutcome) error) error {
	if jobs <= minimumJobsConstant || len(repositories) <= 1 {
		for _, repository := range repositories {
			outcome := service.inspectRepository(executionContext, repository)
			if !outcome.completed {
				return nil
			}
			if handleError := handle(outcome); handleError != nil {
				return handleError
			}
		}
		return nil
	}

	outcomes := make([]repositoryOutcome, len(repositories))
	var analysisGroup errgroup.Group
	analysisGroup.SetLimit(jobs)
	for repositoryIndex := range repositories {
		analysisGroup.Go(func() error {
			outcomes[repositoryIndex] = service.inspectRepository(executionContext, repositories[repositoryIndex])
			return nil
		})
	}
	_ = analysisGroup.Wait()

	for _, outcome := range outcomes {
		if !outcome.completed {
			return nil
		}
		if handleError := handle(outcome); handleError != nil {
			return handleError
		}
	}
	return nil
}

func (service *Service) inspectRepository(executionContext context.Context, repository RepositoryRef) repositoryOutcome {
	if executionContext.Err() != nil {
		return repositoryOutcome{}
	}

	changes, classifyError := service.classifier.Classify(executionContext, repository)
	if classifyError != nil {
		return service.failedOutcome(executionContext, repository, classifyError)
	}

	branches, analyzeError := service.analyzer.Analyze(executionContext, repository)
	if analyzeError != nil {
		return service.failedOutcome(executionContext, repository, analyzeError)
	}

	if executionContext.Err() != nil {
		return repositoryOutcome{}
	}

	return repositoryOutcome{report: BuildReport(repository, changes, branches), completed: true}
}

func (service *Service) failedOutcome(executionContext context.Context, repository RepositoryRef, cause error) repositoryOutcome {
	if executionContext.Err() != nil {
		return repositoryOutcome{}
	}
	return repositoryOutcome{
		failure:   &RepositoryOpenFailure{Repository: repository, Cause: cause},
		completed: true,
	}
}

func (service *Service) record(result *ScanResult, outcome repositoryOutcome, sink ReportSink) error {
	if outcome.failure != nil {
		service.logger.Warn(scanRepositorySkippedMessage,
			zap.String(scanLogFieldRepositoryConstant, outcome.failure.Repository.WorkingDirectory),
			zap.Error(outcome.failure.Cause),
		)
		result.SkippedRepositories = append(result.SkippedRepositories, *outcome.failure)
		return nil
	}

	service.logger.Debug(scanRepositoryCompletedMessage,
		zap.String(scanLogFieldRepositoryConstant, outcome.report.Repository.WorkingDirectory),
		zap.Bool(scanLogFieldHasIssuesConstant, outcome.report.HasIssues()),
	)
	result.Reports = append(result.Reports, outcome.report)

	if sink == nil {
		return nil
	}
	if emitError := sink.Emit(outcome.report); emitError != nil {
		return fmt.Errorf(reportEmissionFailureTemplate, outcome.report.Repository.WorkingDirectory, emitError)
	}
	return nil
}
