// Package negra reads corpora in the Negra/TIGER export format and in
// similar column formats.
package negra

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"experimentallabor.de/gertag/types"
	"github.com/bmatcuk/doublestar/v4"
)

// Reader gives access to the sentences of a set of corpus files. It keeps no
// state between calls: every Open starts over at the first file.
type Reader struct {
	root    string
	fileIDs []string
	cfg     config
}

// NewReader creates a reader for the files under root matching fileIDs.
// File ids are doublestar patterns relative to root.
func NewReader(root string, fileIDs []string, opts ...Option) (*Reader, error) {
	if len(fileIDs) == 0 {
		return nil, fmt.Errorf("no corpus files given for %s", root)
	}
	for _, id := range fileIDs {
		if !doublestar.ValidatePattern(id) {
			return nil, fmt.Errorf("invalid file pattern %q", id)
		}
	}
	return &Reader{
		root:    root,
		fileIDs: fileIDs,
		cfg:     newConfig(opts),
	}, nil
}

// NewReaderFromConfig builds a reader as described by a corpus config.
func NewReaderFromConfig(cfg types.CorpusConfig, opts ...Option) (*Reader, error) {
	var fromConfig []Option
	if len(cfg.Columns) > 0 {
		columns, err := ParseColumns(cfg.Columns)
		if err != nil {
			return nil, err
		}
		fromConfig = append(fromConfig, WithColumns(columns))
	}

	var bos, eos *regexp.Regexp
	var err error
	if cfg.BeginMarker != "" {
		if bos, err = regexp.Compile(cfg.BeginMarker); err != nil {
			return nil, fmt.Errorf("begin marker: %w", err)
		}
	}
	if cfg.EndMarker != "" {
		if eos, err = regexp.Compile(cfg.EndMarker); err != nil {
			return nil, fmt.Errorf("end marker: %w", err)
		}
	}
	fromConfig = append(fromConfig, WithSentenceMarkers(bos, eos))

	if cfg.SkipMalformed {
		fromConfig = append(fromConfig, SkipMalformed())
	}
	return NewReader(cfg.Root, cfg.Files, append(fromConfig, opts...)...)
}

func (r *Reader) Columns() ColumnMap {
	return r.cfg.columns
}

// FileIDs expands the file patterns, sorted and without duplicates. Patterns
// without wildcards are kept even if the file does not exist.
func (r *Reader) FileIDs() ([]string, error) {
	seen := map[string]bool{}
	var ids []string
	fsys := os.DirFS(r.root)
	for _, pattern := range r.fileIDs {
		var matches []string
		if strings.ContainsAny(pattern, "*?[{") {
			var err error
			matches, err = doublestar.Glob(fsys, pattern)
			if err != nil {
				return nil, fmt.Errorf("expanding %q: %w", pattern, err)
			}
		} else {
			matches = []string{filepath.ToSlash(pattern)}
		}
		for _, id := range matches {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *Reader) abs(fileID string) string {
	return filepath.Join(r.root, filepath.FromSlash(fileID))
}

// Open starts a lazy iteration over the given files, or over all files of
// the reader when none are given.
func (r *Reader) Open(fileIDs ...string) (*Iterator, error) {
	if len(fileIDs) == 0 {
		var err error
		if fileIDs, err = r.FileIDs(); err != nil {
			return nil, err
		}
	}
	return &Iterator{reader: r, files: fileIDs}, nil
}

// Each calls fn for every sentence until fn fails or the corpus ends.
func (r *Reader) Each(fn func(*types.Sentence) error, fileIDs ...string) error {
	it, err := r.Open(fileIDs...)
	if err != nil {
		return err
	}
	defer it.Close()

	for it.Next() {
		if err := fn(it.Sentence()); err != nil {
			return err
		}
	}
	return it.Err()
}

type Stats struct {
	Files     int
	Sentences int
	Tokens    int
	Skipped   int
}

// Iterator walks the sentences of several files, keeping one file open.
type Iterator struct {
	reader  *Reader
	files   []string
	next    int
	file    *os.File
	scanner *Scanner
	sent    *types.Sentence
	err     error
	stats   Stats
}

func (it *Iterator) Next() bool {
	it.sent = nil
	for it.err == nil {
		if it.scanner == nil {
			if it.next >= len(it.files) {
				return false
			}
			fileID := it.files[it.next]
			it.next++

			f, err := os.Open(it.reader.abs(fileID))
			if err != nil {
				it.err = err
				return false
			}
			it.file = f
			it.scanner = newScanner(f, it.reader.cfg, fileID)
			it.stats.Files++
		}

		if it.scanner.Scan() {
			it.sent = it.scanner.Sentence()
			it.stats.Sentences++
			it.stats.Tokens += it.sent.Len()
			return true
		}

		it.stats.Skipped += it.scanner.Skipped()
		it.err = it.scanner.Err()
		it.closeFile()
	}
	return false
}

func (it *Iterator) Sentence() *types.Sentence {
	return it.sent
}

func (it *Iterator) Err() error {
	return it.err
}

func (it *Iterator) Stats() Stats {
	stats := it.stats
	if it.scanner != nil {
		stats.Skipped += it.scanner.Skipped()
	}
	return stats
}

// Close releases the open file. Iteration cannot continue afterwards.
func (it *Iterator) Close() error {
	it.next = len(it.files)
	return it.closeFile()
}

func (it *Iterator) closeFile() error {
	it.scanner = nil
	if it.file == nil {
		return nil
	}
	err := it.file.Close()
	it.file = nil
	return err
}
