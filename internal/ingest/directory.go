// Package ingest collects text inputs from the filesystem for batch analysis.
package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultExtensions are the file types collected when none are given.
var DefaultExtensions = []string{"txt", "md", "text"}

// File is one collected input.
type File struct {
	Path         string
	HashHex      string
	Deduplicated bool // same content as an earlier file
}

type DirStats struct {
	Scanned      uint32
	Matched      uint32
	Deduplicated uint32
	Failed       uint32
}

type Options struct {
	Extensions []string
	SkipHidden bool
}

// CollectDirectory walks root and returns the files whose extension matches,
// sorted by path. Unreadable entries are counted and skipped.
func CollectDirectory(ctx context.Context, root string, opts Options) ([]File, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("root path is required")
	}
	exts := extSet(opts.Extensions)

	var paths []string
	var stats DirStats
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		stats.Scanned++
		if walkErr != nil {
			stats.Failed++
			return nil
		}
		if opts.SkipHidden && path != root && IsHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := exts[NormalizeExt(filepath.Ext(path))]; !ok {
			return nil
		}
		stats.Matched++
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, stats, fmt.Errorf("walk: %w", err)
	}
	sort.Strings(paths)

	seen := make(map[string]struct{}, len(paths))
	files := make([]File, 0, len(paths))
	for _, p := range paths {
		sum, err := HashFile(p)
		if err != nil {
			stats.Failed++
			continue
		}
		_, dup := seen[sum]
		seen[sum] = struct{}{}
		if dup {
			stats.Deduplicated++
		}
		files = append(files, File{Path: p, HashHex: sum, Deduplicated: dup})
	}
	return files, stats, nil
}

// HashFile returns the hex sha256 of the file's content.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// IsHidden checks if a file or directory is hidden (starts with '.').
func IsHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}

// NormalizeExt lower-cases ext and drops a leading dot.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

func extSet(in []string) map[string]struct{} {
	if len(in) == 0 {
		in = DefaultExtensions
	}
	out := make(map[string]struct{}, len(in))
	for _, e := range in {
		if e = NormalizeExt(e); e != "" {
			out[e] = struct{}{}
		}
	}
	return out
}
