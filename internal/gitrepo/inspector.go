package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/temirov/gitstatus/internal/execshell"
	"github.com/temirov/gitstatus/internal/status"
)

const (
	gitNoOptionalLocksFlagConstant      = "--no-optional-locks"
	gitStatusSubcommandConstant         = "status"
	gitPorcelainV2FlagConstant          = "--porcelain=v2"
	gitNullTerminatedFlagConstant       = "-z"
	gitUntrackedFilesFlagPrefixConstant = "--untracked-files="
	gitForEachRefSubcommandConstant     = "for-each-ref"
	gitLocalBranchNamespaceConstant     = "refs/heads"
	gitBranchFormatFlagConstant         = "--format=%(refname)%00%(refname:short)%00%(upstream)%00%(upstream:short)"
	gitRevParseSubcommandConstant       = "rev-parse"
	gitVerifyFlagConstant               = "--verify"
	gitQuietFlagConstant                = "--quiet"
	gitCommitPeelSuffixConstant         = "^{commit}"
	gitRevListSubcommandConstant        = "rev-list"
	gitLeftRightFlagConstant            = "--left-right"
	gitCountFlagConstant                = "--count"
	gitSymmetricRangeTemplateConstant   = "%s...%s"
	gitOptionalLocksEnvironmentConstant = "GIT_OPTIONAL_LOCKS"
	gitLocaleEnvironmentConstant        = "LC_ALL"
	branchFieldSeparatorConstant        = "\x00"
	branchFieldCountConstant            = 4
	divergenceFieldCountConstant        = 2
	malformedBranchTemplateConstant     = "malformed branch record %q"
	malformedDivergenceTemplateConstant = "malformed divergence output %q"
	unknownUntrackedModeTemplate        = "unknown untracked files mode %q (expected normal, all or no)"
)

// ErrGitExecutorNotConfigured indicates a RepositoryInspector without an executor.
var ErrGitExecutorNotConfigured = errors.New("git executor not configured")

// GitExecutor runs git commands.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// UntrackedFilesMode controls how untracked files are enumerated by git status.
type UntrackedFilesMode string

// Supported untracked file modes.
const (
	UntrackedFilesNormal UntrackedFilesMode = "normal"
	UntrackedFilesAll    UntrackedFilesMode = "all"
	UntrackedFilesNo     UntrackedFilesMode = "no"
)

// UnmarshalText parses a configuration value into an UntrackedFilesMode.
func (mode *UntrackedFilesMode) UnmarshalText(text []byte) error {
	candidate := UntrackedFilesMode(strings.ToLower(strings.TrimSpace(string(text))))
	switch candidate {
	case "":
		*mode = UntrackedFilesNormal
	case UntrackedFilesNormal, UntrackedFilesAll, UntrackedFilesNo:
		*mode = candidate
	default:
		return fmt.Errorf(unknownUntrackedModeTemplate, string(text))
	}
	return nil
}

// RepositoryInspector reads status and branch information through the git executable.
type RepositoryInspector struct {
	executor           GitExecutor
	untrackedFilesMode UntrackedFilesMode
}

// NewRepositoryInspector constructs a RepositoryInspector. An empty mode means normal.
func NewRepositoryInspector(executor GitExecutor, untrackedFilesMode UntrackedFilesMode) (*RepositoryInspector, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	if unmarshalError := untrackedFilesMode.UnmarshalText([]byte(untrackedFilesMode)); unmarshalError != nil {
		return nil, unmarshalError
	}
	return &RepositoryInspector{executor: executor, untrackedFilesMode: untrackedFilesMode}, nil
}

// ReadStatus captures one porcelain v2 status snapshot.
func (inspector *RepositoryInspector) ReadStatus(executionContext context.Context, workingDirectory string) ([]status.FileStatus, error) {
	result, executionError := inspector.executor.ExecuteGit(executionContext, inspector.commandDetails(workingDirectory,
		gitNoOptionalLocksFlagConstant,
		gitStatusSubcommandConstant,
		gitPorcelainV2FlagConstant,
		gitNullTerminatedFlagConstant,
		gitUntrackedFilesFlagPrefixConstant+string(inspector.untrackedFilesMode),
	))
	if executionError != nil {
		return nil, executionError
	}
	return ParsePorcelainStatus(result.StandardOutput)
}

// ListLocalBranches enumerates refs/heads with their configured upstream, sorted by ref name.
func (inspector *RepositoryInspector) ListLocalBranches(executionContext context.Context, workingDirectory string) ([]status.LocalBranch, error) {
	result, executionError := inspector.executor.ExecuteGit(executionContext, inspector.commandDetails(workingDirectory,
		gitForEachRefSubcommandConstant,
		gitBranchFormatFlagConstant,
		gitLocalBranchNamespaceConstant,
	))
	if executionError != nil {
		return nil, executionError
	}

	var branches []status.LocalBranch
	for _, line := range strings.Split(result.StandardOutput, "\n") {
		line = strings.TrimRight(line, "\r")
		if len(line) == 0 {
			continue
		}
		fields := strings.Split(line, branchFieldSeparatorConstant)
		if len(fields) != branchFieldCountConstant {
			return nil, fmt.Errorf(malformedBranchTemplateConstant, line)
		}
		branches = append(branches, status.LocalBranch{
			Reference:         fields[0],
			Name:              fields[1],
			UpstreamReference: fields[2],
			UpstreamName:      fields[3],
		})
	}
	return branches, nil
}

// ResolvesCommit reports whether reference names an existing commit. A git failure to
// resolve is a false answer; failing to run git is an error.
func (inspector *RepositoryInspector) ResolvesCommit(executionContext context.Context, workingDirectory string, reference string) (bool, error) {
	_, executionError := inspector.executor.ExecuteGit(executionContext, inspector.commandDetails(workingDirectory,
		gitRevParseSubcommandConstant,
		gitVerifyFlagConstant,
		gitQuietFlagConstant,
		reference+gitCommitPeelSuffixConstant,
	))
	if executionError == nil {
		return true, nil
	}

	var commandFailure execshell.CommandFailedError
	if errors.As(executionError, &commandFailure) {
		return false, nil
	}
	return false, executionError
}

// CountDivergence returns how many commits localReference has that upstreamReference
// lacks, and the reverse.
func (inspector *RepositoryInspector) CountDivergence(executionContext context.Context, workingDirectory string, localReference string, upstreamReference string) (int, int, error) {
	result, executionError := inspector.executor.ExecuteGit(executionContext, inspector.commandDetails(workingDirectory,
		gitRevListSubcommandConstant,
		gitLeftRightFlagConstant,
		gitCountFlagConstant,
		fmt.Sprintf(gitSymmetricRangeTemplateConstant, localReference, upstreamReference),
	))
	if executionError != nil {
		return 0, 0, executionError
	}

	fields := strings.Fields(result.StandardOutput)
	if len(fields) != divergenceFieldCountConstant {
		return 0, 0, fmt.Errorf(malformedDivergenceTemplateConstant, result.StandardOutput)
	}
	aheadBy, aheadError := strconv.Atoi(fields[0])
	if aheadError != nil {
		return 0, 0, fmt.Errorf(malformedDivergenceTemplateConstant, result.StandardOutput)
	}
	behindBy, behindError := strconv.Atoi(fields[1])
	if behindError != nil {
		return 0, 0, fmt.Errorf(malformedDivergenceTemplateConstant, result.StandardOutput)
	}
	return aheadBy, behindBy, nil
}

func (inspector *RepositoryInspector) commandDetails(workingDirectory string, arguments ...string) execshell.CommandDetails {
	return execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: workingDirectory,
		EnvironmentVariables: map[string]string{
			gitOptionalLocksEnvironmentConstant: "0",
			gitLocaleEnvironmentConstant:        "C",
		},
	}
}
