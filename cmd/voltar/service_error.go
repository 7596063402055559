// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"voltar-cli/internal/archive"
	"voltar-cli/internal/config"
	"voltar-cli/internal/container"
	"voltar-cli/internal/issue"
	"voltar-cli/pkg/fspath"
)

// ServiceError is an error that carries optional rendering information for
// the CLI layer. When the CLI layer receives a ServiceError, it renders the
// styled error message (if present) before formatting the underlying error.
// Always create via newServiceError to enforce the Err-must-be-non-nil invariant.
type ServiceError struct {
	// Err is the underlying error (must not be nil).
	Err error
	// IssueID is the optional issue catalog ID for rendering help text.
	IssueID issue.Id
	// StyledMessage is the optional pre-rendered styled error text.
	StyledMessage string
}

// newServiceError creates a ServiceError with a nil-Err panic guard.
// All construction sites must use this instead of struct literals.
func newServiceError(err error, issueID issue.Id, styledMessage string) *ServiceError {
	if err == nil {
		panic("ServiceError: Err must not be nil")
	}
	return &ServiceError{
		Err:           err,
		IssueID:       issueID,
		StyledMessage: styledMessage,
	}
}

// Error implements the error interface.
func (e *ServiceError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ServiceError) Unwrap() error { return e.Err }

// classifyServiceError maps backup workflow failures to issue catalog IDs
// and builds the styled error banner for CLI rendering.
func classifyServiceError(err error, verbose bool) *ServiceError {
	var issueID issue.Id

	var runtimeExit *container.RuntimeExitError
	switch {
	case errors.As(err, &runtimeExit):
		issueID = issue.RuntimeExitId
	case errors.Is(err, container.ErrLaunchFailed):
		issueID = issue.LaunchFailedId
	case errors.Is(err, container.ErrEngineNotAvailable):
		issueID = issue.EngineNotFoundId
	case errors.Is(err, archive.ErrUnreadableArchive):
		issueID = issue.ArchiveUnreadableId
	case errors.Is(err, fspath.ErrUnresolvablePath):
		issueID = issue.PathResolutionFailedId
	case errors.Is(err, config.ErrInvalidConfig),
		errors.Is(err, config.ErrInvalidContainerEngine),
		errors.Is(err, config.ErrInvalidImageRef):
		issueID = issue.ConfigLoadFailedId
	}

	styled := fmt.Sprintf("\n%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, verbose))
	return newServiceError(err, issueID, styled)
}

// exitCodeFor returns the process exit code for a failure. A container
// runtime exit propagates the runtime's own status; everything else exits 1.
func exitCodeFor(err error) int {
	var runtimeExit *container.RuntimeExitError
	if errors.As(err, &runtimeExit) && runtimeExit.ExitCode > 0 {
		return runtimeExit.ExitCode
	}
	return 1
}

// failCommand classifies err, renders it to the App's stderr, and converts
// it into an ExitError so Execute can exit with the right status code.
func (a *App) failCommand(err error) error {
	svcErr := classifyServiceError(err, verbose)
	renderServiceError(a.stderr, svcErr)
	return &ExitError{Code: exitCodeFor(err), Err: err}
}

// renderServiceError renders a ServiceError in the CLI layer.
// It prints any styled message first, then the optional issue help section.
func renderServiceError(stderr io.Writer, svcErr *ServiceError) {
	if svcErr == nil {
		return
	}

	if svcErr.StyledMessage != "" {
		fmt.Fprint(stderr, svcErr.StyledMessage)
	}

	if svcErr.IssueID == 0 {
		return
	}

	if catalogEntry := issue.Get(svcErr.IssueID); catalogEntry != nil {
		rendered, renderErr := catalogEntry.Render(issueRenderStyle())
		if renderErr != nil {
			slog.Warn("failed to render issue catalog entry", "issueID", svcErr.IssueID, "error", renderErr)
		} else {
			fmt.Fprint(stderr, rendered)
		}
	}
}
