// SPDX-License-Identifier: MPL-2.0

package archive

import "strings"

// VolumeNames derives top-level volume names from archive entry names.
//
// Backup archives are created from an /input directory holding one
// subdirectory per volume, so entries look like "./", "./<volume>/" and
// "./<volume>/<path>". For each entry the third element from the end of its
// ancestor chain is taken and its final component becomes the name; entries
// too shallow to have one (such as "./") are skipped silently. Consecutive
// runs of the same name collapse to one occurrence. Nothing beyond adjacent
// runs is deduplicated, and input order is preserved.
func VolumeNames(entries []string) []string {
	var names []string
	for _, entry := range entries {
		name, ok := topLevelName(entry)
		if !ok {
			continue
		}
		if len(names) > 0 && names[len(names)-1] == name {
			continue
		}
		names = append(names, name)
	}
	return names
}

// topLevelName resolves a single entry name to its volume name, reporting
// false for entries too shallow to carry one.
func topLevelName(entry string) (string, bool) {
	chain := ancestors(entry)
	if len(chain) < 3 {
		return "", false
	}
	return fileName(chain[len(chain)-3])
}

// ancestors returns the entry itself followed by each successive parent,
// ending with the empty string for relative paths. For "./a/b" the chain is
// ["./a/b", "./a", ".", ""].
func ancestors(p string) []string {
	chain := []string{p}
	cur := p
	for {
		par, ok := parentPath(cur)
		if !ok {
			break
		}
		chain = append(chain, par)
		cur = par
	}
	return chain
}

// parentPath returns the parent of a slash-separated path, ignoring any
// trailing slash. A single component's parent is the empty string; the empty
// string and the root have no parent.
func parentPath(p string) (string, bool) {
	if p == "" {
		return "", false
	}
	trimmed := strings.TrimRight(p, "/")
	if trimmed == "" {
		// p was the root or all slashes.
		return "", false
	}
	idx := strings.LastIndexByte(trimmed, '/')
	switch {
	case idx < 0:
		return "", true
	case idx == 0:
		return "/", true
	default:
		return trimmed[:idx], true
	}
}

// fileName returns the final component of a slash-separated path, ignoring
// any trailing slash. The empty string, the root and the "." and ".."
// components have no file name.
func fileName(p string) (string, bool) {
	trimmed := strings.TrimRight(p, "/")
	if trimmed == "" {
		return "", false
	}
	base := trimmed
	if idx := strings.LastIndexByte(trimmed, '/'); idx >= 0 {
		base = trimmed[idx+1:]
	}
	if base == "" || base == "." || base == ".." {
		return "", false
	}
	return base, true
}
