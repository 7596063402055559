// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"voltar-cli/internal/archive"
	"voltar-cli/internal/config"
	"voltar-cli/internal/container"
	"voltar-cli/internal/issue"
	"voltar-cli/pkg/fspath"
)

func TestNewServiceError_PanicsOnNilErr(t *testing.T) {
	t.Parallel()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on nil Err, got none")
		}
		msg, ok := r.(string)
		if !ok {
			t.Fatalf("expected string panic, got %T", r)
		}
		if msg != "ServiceError: Err must not be nil" {
			t.Fatalf("unexpected panic message: %s", msg)
		}
	}()

	newServiceError(nil, 0, "")
}

func TestNewServiceError_ValidConstruction(t *testing.T) {
	t.Parallel()

	err := errors.New("test error")
	svcErr := newServiceError(err, issue.ArchiveUnreadableId, "styled message")

	if !errors.Is(svcErr.Err, err) {
		t.Errorf("Err = %v, want %v", svcErr.Err, err)
	}
	if svcErr.IssueID != issue.ArchiveUnreadableId {
		t.Errorf("IssueID = %d, want %d", svcErr.IssueID, issue.ArchiveUnreadableId)
	}
	if svcErr.StyledMessage != "styled message" {
		t.Errorf("StyledMessage = %q, want %q", svcErr.StyledMessage, "styled message")
	}
}

func TestServiceError_ErrorAndUnwrap(t *testing.T) {
	t.Parallel()

	underlying := errors.New("underlying error")
	svcErr := newServiceError(underlying, 0, "")

	if svcErr.Error() != "underlying error" {
		t.Errorf("Error() = %q, want %q", svcErr.Error(), "underlying error")
	}
	if !errors.Is(svcErr, underlying) {
		t.Error("errors.Is should find underlying error via Unwrap")
	}
}

func TestClassifyServiceError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		wantID issue.Id
	}{
		{
			name:   "runtime exit",
			err:    &container.RuntimeExitError{Engine: "docker", ExitCode: 2},
			wantID: issue.RuntimeExitId,
		},
		{
			name:   "launch failure",
			err:    &container.LaunchError{Binary: "docker", Cause: errors.New("no such file")},
			wantID: issue.LaunchFailedId,
		},
		{
			name:   "engine not available",
			err:    &container.EngineNotAvailableError{Engine: "podman", Reason: "not installed"},
			wantID: issue.EngineNotFoundId,
		},
		{
			name:   "unreadable archive",
			err:    &archive.ReadError{Path: "/tmp/x.tar.gz", Cause: errors.New("gzip: invalid header")},
			wantID: issue.ArchiveUnreadableId,
		},
		{
			name:   "unresolvable path",
			err:    &fspath.ResolveError{Path: "/nope/x.tar.gz", Reason: "canonicalizing"},
			wantID: issue.PathResolutionFailedId,
		},
		{
			name:   "invalid engine value",
			err:    &config.InvalidContainerEngineError{Value: "rkt"},
			wantID: issue.ConfigLoadFailedId,
		},
		{
			name:   "invalid image value",
			err:    &config.InvalidImageRefError{Value: "  "},
			wantID: issue.ConfigLoadFailedId,
		},
		{
			name:   "wrapped runtime exit",
			err:    fmt.Errorf("running backup: %w", &container.RuntimeExitError{Engine: "podman", ExitCode: 125}),
			wantID: issue.RuntimeExitId,
		},
		{
			name:   "unclassified error",
			err:    errors.New("something else"),
			wantID: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svcErr := classifyServiceError(tt.err, false)
			if svcErr.IssueID != tt.wantID {
				t.Errorf("IssueID = %d, want %d", svcErr.IssueID, tt.wantID)
			}
			if svcErr.StyledMessage == "" {
				t.Error("StyledMessage is empty, want styled banner")
			}
			if !errors.Is(svcErr, tt.err) {
				t.Error("classified error lost the original error chain")
			}
		})
	}
}

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "runtime exit propagates status",
			err:  &container.RuntimeExitError{Engine: "docker", ExitCode: 4},
			want: 4,
		},
		{
			name: "wrapped runtime exit propagates status",
			err:  fmt.Errorf("restore: %w", &container.RuntimeExitError{Engine: "podman", ExitCode: 127}),
			want: 127,
		},
		{
			name: "launch failure exits 1",
			err:  &container.LaunchError{Binary: "docker", Cause: errors.New("boom")},
			want: 1,
		},
		{
			name: "plain error exits 1",
			err:  errors.New("boom"),
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRenderServiceError_NilServiceError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	renderServiceError(&buf, nil)

	if buf.Len() != 0 {
		t.Errorf("expected no output for nil ServiceError, got %q", buf.String())
	}
}

func TestRenderServiceError_StyledMessageOnly(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	svcErr := newServiceError(errors.New("test"), 0, "styled output\n")
	renderServiceError(&buf, svcErr)

	if buf.String() != "styled output\n" {
		t.Errorf("output = %q, want %q", buf.String(), "styled output\n")
	}
}

func TestRenderServiceError_WithIssueID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	svcErr := newServiceError(errors.New("test"), issue.RuntimeExitId, "")
	renderServiceError(&buf, svcErr)

	// Issue catalog entry should be rendered (contains the issue template content)
	output := buf.String()
	if output == "" {
		t.Error("expected non-empty output when IssueID is set")
	}
}

func TestRenderServiceError_StyledMessageAndIssueID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	svcErr := newServiceError(errors.New("test"), issue.EngineNotFoundId, "styled: ")
	renderServiceError(&buf, svcErr)

	output := buf.String()
	// Should contain both the styled message prefix and the issue catalog content
	if len(output) <= len("styled: ") {
		t.Errorf("expected styled message + issue content, got only %q", output)
	}
}

func TestRenderServiceError_ZeroIssueIDSkipsCatalog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	svcErr := newServiceError(errors.New("test"), 0, "only this")
	renderServiceError(&buf, svcErr)

	if buf.String() != "only this" {
		t.Errorf("output = %q, want %q", buf.String(), "only this")
	}
}
