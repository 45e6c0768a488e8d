package cst

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"

	"github.com/arjunmahishi/cst/treesitter"
	"github.com/arjunmahishi/cst/types"
)

// defaultIgnoreDirs returns the default list of directories to ignore.
func defaultIgnoreDirs() map[string]struct{} {
	return map[string]struct{}{
		".git":         {},
		".hg":          {},
		".svn":         {},
		".jj":          {},
		"node_modules": {},
		"vendor":       {},
		"dist":         {},
		"build":        {},
		"target":       {},
		".venv":        {},
		".cache":       {},
		".spago":       {},
		"output":       {},
		"testdata":     {},
	}
}

// scannerConfig holds scanner configuration.
type scannerConfig struct {
	fs         afero.Fs
	root       string
	grammar    treesitter.Grammar
	ignoreDirs map[string]struct{}
	maxBytes   int64
}

// scanner discovers files for processing.
type scanner struct {
	cfg scannerConfig
}

// newScanner creates a new scanner with the given configuration.
func newScanner(cfg scannerConfig) *scanner {
	if cfg.ignoreDirs == nil {
		cfg.ignoreDirs = defaultIgnoreDirs()
	}
	return &scanner{cfg: cfg}
}

// collect finds all matching files and returns them as FileJobs sorted by
// path.
func (s *scanner) collect() ([]types.FileJob, error) {
	absRoot, err := filepath.Abs(s.cfg.root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}

	var jobs []types.FileJob
	err = afero.Walk(s.cfg.fs, absRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if path == absRoot {
				return nil
			}
			if s.shouldIgnoreDir(info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !s.isSupportedFile(info.Name()) {
			return nil
		}

		if s.cfg.maxBytes > 0 && info.Size() > s.cfg.maxBytes {
			return nil
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			rel = path
		}

		jobs = append(jobs, types.FileJob{
			AbsPath:     path,
			DisplayPath: filepath.ToSlash(rel),
		})
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", s.cfg.root, err)
	}

	slices.SortFunc(jobs, func(a, b types.FileJob) int {
		return strings.Compare(a.DisplayPath, b.DisplayPath)
	})
	return jobs, nil
}

// collectSingle returns a single file as a FileJob. Unlike collect, it
// reports a file the grammar does not handle or that exceeds maxBytes as an
// error instead of skipping it.
func (s *scanner) collectSingle(filePath string) (types.FileJob, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return types.FileJob{}, fmt.Errorf("resolve path: %w", err)
	}

	if !s.isSupportedFile(absPath) {
		return types.FileJob{}, fmt.Errorf("%s is not a %s file (want %s)",
			filePath, s.cfg.grammar.Name(), strings.Join(s.cfg.grammar.Extensions(), ", "))
	}
	info, err := s.cfg.fs.Stat(absPath)
	if err != nil {
		return types.FileJob{}, fmt.Errorf("stat file: %w", err)
	}
	if s.cfg.maxBytes > 0 && info.Size() > s.cfg.maxBytes {
		return types.FileJob{}, fmt.Errorf("%s is larger than %d bytes", filePath, s.cfg.maxBytes)
	}

	return types.FileJob{
		AbsPath:     absPath,
		DisplayPath: filepath.Base(absPath),
	}, nil
}

func (s *scanner) shouldIgnoreDir(name string) bool {
	_, ok := s.cfg.ignoreDirs[name]
	return ok
}

func (s *scanner) isSupportedFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return false
	}
	return slices.Contains(s.cfg.grammar.Extensions(), ext)
}
