package execshell

// CommandEventObserver is notified around every command run by ShellExecutor.
// Observers receive events synchronously on the calling goroutine.
type CommandEventObserver interface {
	CommandStarted(command ShellCommand)
	// CommandCompleted is called for every process that exited, whatever its exit code.
	CommandCompleted(command ShellCommand, result ExecutionResult)
	// CommandExecutionFailed is called when no exit code could be obtained.
	CommandExecutionFailed(command ShellCommand, failure error)
}

type noopCommandEventObserver struct{}

func (noopCommandEventObserver) CommandStarted(ShellCommand) {}

func (noopCommandEventObserver) CommandCompleted(ShellCommand, ExecutionResult) {}

func (noopCommandEventObserver) CommandExecutionFailed(ShellCommand, error) {}
