// SPDX-License-Identifier: MPL-2.0

package container

// Exit codes docker and podman reserve for their own failures. Anything else
// comes from the command that ran inside the container.
const (
	exitCodeEngineError     = 125
	exitCodeNotExecutable   = 126
	exitCodeCommandNotFound = 127
)

// ExitCodeHint translates the runtime's reserved exit codes into a short
// diagnostic, or "" when the code carries no engine-level meaning.
func ExitCodeHint(code int) string {
	switch code {
	case exitCodeEngineError:
		return "the engine itself failed (daemon not running, invalid flag, or storage error)"
	case exitCodeNotExecutable:
		return "the command inside the container is not executable"
	case exitCodeCommandNotFound:
		return "the command was not found inside the container image"
	default:
		return ""
	}
}

// IsEngineFailure reports whether an exit code signals a failure of the
// engine itself rather than of the command that ran inside the container.
func IsEngineFailure(code int) bool {
	return code == exitCodeEngineError || code == exitCodeNotExecutable || code == exitCodeCommandNotFound
}
