// SPDX-License-Identifier: MPL-2.0

// Package archive inspects the gzip-compressed tar archives that volume
// backups produce: full entry listings plus the top-level volume names
// encoded in the entry paths.
package archive

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrUnreadableArchive is the sentinel error wrapped by ReadError.
var ErrUnreadableArchive = errors.New("unreadable archive")

type (
	// ReadError is returned when an archive cannot be opened or decoded.
	// It wraps ErrUnreadableArchive for errors.Is() compatibility.
	ReadError struct {
		Path  string
		Cause error
	}

	// Summary describes an archive's contents: every entry name in archive
	// order, the volume names derived from them, and how many entries each
	// derived name accounts for.
	Summary struct {
		Entries []string
		Volumes []string
		Counts  map[string]int
	}
)

// Error implements the error interface for ReadError.
func (e *ReadError) Error() string {
	return fmt.Sprintf("reading archive %q: %v", e.Path, e.Cause)
}

// Unwrap returns ErrUnreadableArchive for errors.Is() compatibility.
func (e *ReadError) Unwrap() error { return ErrUnreadableArchive }

// ListEntries returns the name of every entry in the tar.gz archive at path,
// in archive order. Any failure to open or decode aborts the listing; there
// are no partial results.
func ListEntries(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ReadError{Path: path, Cause: fmt.Errorf("opening archive: %w", err)}
	}
	// Best-effort close; the file is read-only.
	defer func() { _ = f.Close() }()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, &ReadError{Path: path, Cause: fmt.Errorf("creating gzip reader: %w", err)}
	}
	defer func() { _ = gz.Close() }()

	var entries []string
	tr := tar.NewReader(gz)
	for {
		hdr, nextErr := tr.Next()
		if errors.Is(nextErr, io.EOF) {
			break
		}
		if nextErr != nil {
			return nil, &ReadError{Path: path, Cause: fmt.Errorf("reading tar entry: %w", nextErr)}
		}
		entries = append(entries, hdr.Name)
	}
	return entries, nil
}

// Inspect lists the archive at path and derives its volume names in one call.
func Inspect(path string) (Summary, error) {
	entries, err := ListEntries(path)
	if err != nil {
		return Summary{}, err
	}

	counts := make(map[string]int)
	for _, entry := range entries {
		if name, ok := topLevelName(entry); ok {
			counts[name]++
		}
	}

	return Summary{
		Entries: entries,
		Volumes: VolumeNames(entries),
		Counts:  counts,
	}, nil
}
