// SPDX-License-Identifier: MPL-2.0

// Package fspath resolves user-supplied archive paths into the absolute
// directory/file split that volume mount arguments are built from. Resolution
// follows symlinks, so the directory handed to the container runtime is the
// real location on disk rather than an alias to it.
package fspath

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrUnresolvablePath is the sentinel error wrapped by ResolveError.
var ErrUnresolvablePath = errors.New("unresolvable path")

type (
	// ResolvedPath is the canonical split of an archive path: the absolute,
	// symlink-free parent directory and the final path component. Dir is what
	// gets bind-mounted; File is the name used inside the container.
	ResolvedPath struct {
		Dir  string
		File string
	}

	// ResolveError is returned when a path cannot be resolved into a
	// ResolvedPath. It wraps ErrUnresolvablePath for errors.Is() compatibility.
	ResolveError struct {
		Path   string
		Reason string
		Cause  error
	}
)

// String returns the canonical path as a single string.
func (p ResolvedPath) String() string {
	return filepath.Join(p.Dir, p.File)
}

// Error implements the error interface for ResolveError.
func (e *ResolveError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("resolving path %q: %s: %v", e.Path, e.Reason, e.Cause)
	}
	return fmt.Sprintf("resolving path %q: %s", e.Path, e.Reason)
}

// Unwrap returns ErrUnresolvablePath for errors.Is() compatibility.
func (e *ResolveError) Unwrap() error { return ErrUnresolvablePath }

// Resolve canonicalizes path and splits it into parent directory and file
// name. When createIfMissing is true and nothing exists at path, an empty
// file is created first so that canonicalization has a target; an existing
// file is never touched, let alone truncated. The created placeholder is not
// removed if a later step fails.
//
// Resolution fails when the path (or any parent) does not exist, or when the
// canonical form has no parent directory to mount (the filesystem root).
func Resolve(path string, createIfMissing bool) (ResolvedPath, error) {
	if createIfMissing {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			if werr := os.WriteFile(path, nil, 0o644); werr != nil {
				return ResolvedPath{}, &ResolveError{Path: path, Reason: "creating placeholder file", Cause: werr}
			}
		}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return ResolvedPath{}, &ResolveError{Path: path, Reason: "resolving absolute path", Cause: err}
	}

	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return ResolvedPath{}, &ResolveError{Path: path, Reason: "canonicalizing", Cause: err}
	}

	dir := filepath.Dir(canonical)
	file := filepath.Base(canonical)
	if dir == canonical || file == string(filepath.Separator) || file == "." {
		return ResolvedPath{}, &ResolveError{Path: path, Reason: "path has no parent directory"}
	}

	return ResolvedPath{Dir: dir, File: file}, nil
}
