package gitrepo_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/gitstatus/internal/execshell"
	"github.com/temirov/gitstatus/internal/gitrepo"
	"github.com/temirov/gitstatus/internal/status"
)

func runGitCommand(testInstance *testing.T, workingDirectory string, arguments ...string) {
	testInstance.Helper()
	commandArguments := append([]string{
		"-c", "user.name=Status Tester",
		"-c", "user.email=status@example.com",
		"-c", "commit.gpgsign=false",
		"-c", "init.defaultBranch=main",
	}, arguments...)
	command := exec.Command("git", commandArguments...)
	command.Dir = workingDirectory
	command.Env = append(os.Environ(), "GIT_CONFIG_NOSYSTEM=1", "GIT_CONFIG_GLOBAL="+os.DevNull)
	output, runError := command.CombinedOutput()
	require.NoError(testInstance, runError, string(output))
}

func TestRepositoryInspectorAgainstGitExecutable(testInstance *testing.T) {
	if _, lookupError := exec.LookPath("git"); lookupError != nil {
		testInstance.Skip("git executable not available")
	}

	scratchDirectory := testInstance.TempDir()
	remoteDirectory := filepath.Join(scratchDirectory, "remote.git")
	workingDirectory := filepath.Join(scratchDirectory, "work")
	require.NoError(testInstance, os.MkdirAll(workingDirectory, 0o755))

	runGitCommand(testInstance, scratchDirectory, "init", "--bare", remoteDirectory)
	runGitCommand(testInstance, workingDirectory, "init")
	runGitCommand(testInstance, workingDirectory, "symbolic-ref", "HEAD", "refs/heads/main")
	require.NoError(testInstance, os.WriteFile(filepath.Join(workingDirectory, "tracked.txt"), []byte("one\n"), 0o644))
	runGitCommand(testInstance, workingDirectory, "add", "tracked.txt")
	runGitCommand(testInstance, workingDirectory, "commit", "-m", "initial")
	runGitCommand(testInstance, workingDirectory, "remote", "add", "origin", remoteDirectory)
	runGitCommand(testInstance, workingDirectory, "push", "-u", "origin", "main")
	runGitCommand(testInstance, workingDirectory, "branch", "stale")
	runGitCommand(testInstance, workingDirectory, "push", "-u", "origin", "stale")
	runGitCommand(testInstance, workingDirectory, "push", "origin", "--delete", "stale")
	runGitCommand(testInstance, workingDirectory, "branch", "feature")
	runGitCommand(testInstance, workingDirectory, "commit", "--allow-empty", "-m", "local only")

	require.NoError(testInstance, os.WriteFile(filepath.Join(workingDirectory, "tracked.txt"), []byte("two\n"), 0o644))
	require.NoError(testInstance, os.WriteFile(filepath.Join(workingDirectory, "scratch.txt"), []byte("scratch\n"), 0o644))

	executor, executorError := execshell.NewShellExecutor(zap.NewNop(), execshell.NewOSCommandRunner())
	require.NoError(testInstance, executorError)
	inspector, inspectorError := gitrepo.NewRepositoryInspector(executor, gitrepo.UntrackedFilesNormal)
	require.NoError(testInstance, inspectorError)

	summary, classifyError := status.NewClassifier(inspector).Classify(context.Background(), status.NewRepositoryRef(workingDirectory))
	require.NoError(testInstance, classifyError)
	require.Equal(testInstance, status.ChangeSummary{Unstaged: status.UnstagedChanges{Untracked: 1, Modified: 1}}, summary)

	branches, analyzeError := status.NewAnalyzer(inspector, zap.NewNop()).Analyze(context.Background(), status.NewRepositoryRef(workingDirectory))
	require.NoError(testInstance, analyzeError)
	require.Equal(testInstance, []status.BranchStatus{
		{Name: "feature", State: status.NewNotTrackingState()},
		{Name: "main", State: status.NewTrackingState("origin/main", 1, 0)},
		{Name: "stale", State: status.NewUpstreamGoneState("origin/stale")},
	}, branches)
}
