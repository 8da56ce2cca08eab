package pnlyzer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
)

// Chunk is one input CSV file that is part of a larger logical dataset
// split across files. It is immutable once loaded and exists for
// provenance attribution in the final report.
type Chunk struct {
	Path     string
	Seq      int // position in processing order, starts at 1
	Rows     int // rows read, header excluded
	Accepted int
	Rejected int
	Sum      decimal.Decimal // summed PNL of accepted rows
}

// ErrNoChunksFound is returned when a directory scan matches no chunk files.
var ErrNoChunksFound = errors.New("no chunk files found")

// FileNotFoundError reports an explicitly named file that does not exist.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("file %q not found", e.Path)
}

// chunkPatterns are the naming convention families, in priority order.
// The first family that yields at least one match wins.
var chunkPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^chunk_([0-9]+)\.csv$`),
	regexp.MustCompile(`^chunk([0-9]+)\.csv$`),
	regexp.MustCompile(`^part_([0-9]+)\.csv$`),
}

// DiscoverChunks scans dir for chunk files by naming convention and returns
// them ordered by their numeric index, so chunk_2.csv precedes chunk_10.csv.
// It returns ErrNoChunksFound when no pattern family matches anything.
func DiscoverChunks(dir string) ([]*Chunk, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot scan directory %q: %w", dir, err)
	}

	type match struct {
		name string
		n    int
	}
	for _, pattern := range chunkPatterns {
		var matches []match
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			groups := pattern.FindStringSubmatch(entry.Name())
			if groups == nil {
				continue
			}
			n, err := strconv.Atoi(groups[1])
			if err != nil || n < 1 {
				// the index must be a positive integer
				continue
			}
			matches = append(matches, match{entry.Name(), n})
		}
		if len(matches) == 0 {
			continue
		}
		sort.Slice(matches, func(i, j int) bool {
			if matches[i].n != matches[j].n {
				return matches[i].n < matches[j].n
			}
			return matches[i].name < matches[j].name
		})
		chunks := make([]*Chunk, 0, len(matches))
		for i, m := range matches {
			chunks = append(chunks, &Chunk{Path: filepath.Join(dir, m.name), Seq: i + 1})
		}
		return chunks, nil
	}
	return nil, ErrNoChunksFound
}

// ResolveChunks turns an explicit file list into chunks, preserving the
// list order verbatim. Every path must exist: a missing one fails with a
// FileNotFoundError naming it, before any aggregation begins. A single
// file is the degenerate one-chunk case.
func ResolveChunks(paths []string) ([]*Chunk, error) {
	if len(paths) == 0 {
		return nil, ErrNoChunksFound
	}
	chunks := make([]*Chunk, 0, len(paths))
	for i, path := range paths {
		info, err := os.Stat(path)
		if errors.Is(err, os.ErrNotExist) {
			return nil, &FileNotFoundError{Path: path}
		}
		if err != nil {
			return nil, fmt.Errorf("cannot stat %q: %w", path, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%q is a directory, not a chunk file", path)
		}
		chunks = append(chunks, &Chunk{Path: path, Seq: i + 1})
	}
	return chunks, nil
}
