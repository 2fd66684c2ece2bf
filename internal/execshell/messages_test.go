package execshell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildStartedMessageForStatusIncludesWorkingDirectory(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"--no-optional-locks", "status", "--porcelain=v2", "-z"},
			WorkingDirectory: "/workspace/repo",
		},
	}

	require.Equal(t, "Reviewing working tree status in /workspace/repo", formatter.BuildStartedMessage(command))
}

func TestBuildFailureMessageForRevisionVerification(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"rev-parse", "--verify", "--quiet", "refs/remotes/origin/gone^{commit}"},
			WorkingDirectory: "/workspace/repo",
		},
	}

	message := formatter.BuildFailureMessage(command, ExecutionResult{ExitCode: 1})

	require.Equal(t, "refs/remotes/origin/gone^{commit} does not resolve in /workspace/repo (exit code 1)", message)
}

func TestBuildSuccessMessageForDivergenceCount(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"rev-list", "--left-right", "--count", "refs/heads/main...refs/remotes/origin/main"},
			WorkingDirectory: "/workspace/repo",
		},
	}

	require.Equal(t, "Counted divergence for refs/heads/main...refs/remotes/origin/main in /workspace/repo", formatter.BuildSuccessMessage(command))
}

func TestBuildExecutionFailureMessageFallsBackToGenericLabel(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name:    CommandGit,
		Details: CommandDetails{Arguments: []string{"--version"}},
	}

	message := formatter.BuildExecutionFailureMessage(command, errors.New("boom"))

	require.Equal(t, "git --version failed: boom", message)
}

func TestBuildFailureMessageForBranchListingUsesCurrentDirectoryLabel(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name:    CommandGit,
		Details: CommandDetails{Arguments: []string{"for-each-ref", "refs/heads"}},
	}

	message := formatter.BuildFailureMessage(command, ExecutionResult{ExitCode: 128, StandardError: "fatal: bad\n"})

	require.Equal(t, "Failed to list local branches in current directory (exit code 128: fatal: bad)", message)
}
