// Package security guards the filesystem paths the CLI reads scenarios from
// and writes reports to.
package security

import (
	"fmt"
	"path/filepath"
	"strings"
)

// maxFilenameLen bounds names produced by SanitizeFilename.
const maxFilenameLen = 128

// ValidatePathWithinDirectory checks that filePath resolves to a location
// inside safeDir. Symlinks are resolved on both sides; for a path that does
// not exist yet, the nearest existing parent is resolved instead.
func ValidatePathWithinDirectory(filePath, safeDir string) error {
	absPath, err := filepath.Abs(filepath.Clean(filePath))
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}
	absSafeDir, err := filepath.Abs(safeDir)
	if err != nil {
		return fmt.Errorf("failed to resolve safe directory path: %w", err)
	}

	canonicalPath := resolveExistingPrefix(absPath)
	canonicalSafeDir, err := filepath.EvalSymlinks(absSafeDir)
	if err != nil {
		return fmt.Errorf("failed to resolve safe directory symlinks: %w", err)
	}

	return checkContained(filePath, safeDir, canonicalPath, canonicalSafeDir)
}

// ValidatePathWithinDirectoryLexical is ValidatePathWithinDirectory without
// symlink resolution. It only cleans and compares path components, so it
// suits filesystems that are not backed by the OS.
func ValidatePathWithinDirectoryLexical(filePath, safeDir string) error {
	absPath, err := filepath.Abs(filepath.Clean(filePath))
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}
	absSafeDir, err := filepath.Abs(safeDir)
	if err != nil {
		return fmt.Errorf("failed to resolve safe directory path: %w", err)
	}
	return checkContained(filePath, safeDir, absPath, absSafeDir)
}

func checkContained(filePath, safeDir, resolvedPath, resolvedSafeDir string) error {
	relPath, err := filepath.Rel(resolvedSafeDir, resolvedPath)
	if err != nil {
		return fmt.Errorf("path is outside safe directory: %w", err)
	}
	if relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) || filepath.IsAbs(relPath) {
		return fmt.Errorf("path traversal detected: %s attempts to escape %s", filePath, safeDir)
	}
	return nil
}

// resolveExistingPrefix resolves symlinks in the longest existing prefix of
// absPath and re-attaches the remaining components.
func resolveExistingPrefix(absPath string) string {
	if resolved, err := filepath.EvalSymlinks(absPath); err == nil {
		return resolved
	}
	for check := absPath; ; {
		parent := filepath.Dir(check)
		if parent == check {
			return absPath
		}
		if resolved, err := filepath.EvalSymlinks(parent); err == nil {
			rel, _ := filepath.Rel(parent, absPath)
			return filepath.Join(resolved, rel)
		}
		check = parent
	}
}

// ValidateScenarioPath checks that path names a .json file and, when dataDir
// is non-empty, that it lies inside dataDir. With resolveSymlinks set the
// containment check follows symlinks on the OS filesystem; otherwise it is
// lexical.
func ValidateScenarioPath(path, dataDir string, resolveSymlinks bool) error {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".json" {
		return fmt.Errorf("scenario file must have .json extension, got %q", ext)
	}
	switch {
	case dataDir == "":
		return nil
	case resolveSymlinks:
		return ValidatePathWithinDirectory(path, dataDir)
	default:
		return ValidatePathWithinDirectoryLexical(path, dataDir)
	}
}

// SanitizeFilename makes a safe filename from an arbitrary string. Characters
// other than ASCII letters, digits, dot, underscore or dash become a single
// underscore, and leading or trailing dots and underscores are trimmed.
func SanitizeFilename(s string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range s {
		if b.Len() >= maxFilenameLen {
			break
		}
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'),
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
			lastUnderscore = r == '_'
		default:
			if !lastUnderscore {
				b.WriteRune('_')
				lastUnderscore = true
			}
		}
	}
	out := strings.Trim(b.String(), "._")
	if out == "" {
		return "unknown"
	}
	return out
}
