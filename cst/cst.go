// Package cst is the library behind the cst command: it loads files into
// lossless syntax trees and runs whole-tree operations over them.
package cst

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/afero"

	"github.com/arjunmahishi/cst/events"
	"github.com/arjunmahishi/cst/green"
	"github.com/arjunmahishi/cst/purescript"
	"github.com/arjunmahishi/cst/syntax"
	"github.com/arjunmahishi/cst/treesitter"
	"github.com/arjunmahishi/cst/types"
)

// Dump builds one tree and returns its serializable rendering.
func Dump(opts DumpOptions) (types.Element, error) {
	opts.setDefaults()
	t, err := load(opts.Env, opts.Source)
	if err != nil {
		return types.Element{}, err
	}
	return t.Element(), nil
}

// Script builds one tree and renders it back as an event script.
func Script(opts DumpOptions) (string, error) {
	opts.setDefaults()
	t, err := load(opts.Env, opts.Source)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.WriteScript(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Replace builds one tree and persistently replaces the text of the token
// at opts.Offset.
func Replace(opts ReplaceOptions) (types.ReplaceResult, error) {
	opts.setDefaults()
	t, err := load(opts.Env, opts.Source)
	if err != nil {
		return types.ReplaceResult{}, err
	}
	res, err := t.Replace(opts.Offset, opts.Text)
	if err != nil {
		return types.ReplaceResult{}, err
	}
	opts.Logger.WithFields(map[string]any{
		"file":   res.File,
		"copied": res.Copied,
		"shared": res.Shared,
	}).Debug("replaced token")
	return res, nil
}

// RoundTrip parses every file and checks that the tree reproduces the
// source exactly.
func RoundTrip(opts RoundTripOptions) ([]types.RoundTripResult, error) {
	opts.setDefaults()
	if opts.Language == "" {
		opts.Language = "go"
	}
	if opts.Path == "" {
		opts.Path = "."
	}
	if opts.Jobs == 0 {
		opts.Jobs = runtime.NumCPU()
	}
	if opts.MaxBytes == 0 {
		opts.MaxBytes = defaultMaxBytes
	}

	grammar := treesitter.Get(opts.Language)
	if grammar == nil {
		return nil, errors.New(opts.Language + " grammar not registered")
	}

	files, err := collectFiles(opts.Env, grammar, opts.Path, opts.File, opts.MaxBytes)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return []types.RoundTripResult{}, nil
	}

	var cache *green.NodeCache
	if opts.Intern {
		cache = green.NewNodeCache()
	}

	results := runWorkers(opts.Env, treesitter.NewLanguage(grammar), cache, files, opts.Jobs,
		func(job types.FileJob, source []byte, doc tree) []types.RoundTripResult {
			text := doc.Text()
			res := types.RoundTripResult{
				File:  job.DisplayPath,
				OK:    text == string(source),
				Stats: doc.Stats(),
			}
			if !res.OK {
				res.Diff = diffText(string(source), text)
				opts.Logger.WithField("file", job.DisplayPath).Warn("round trip mismatch")
			}
			return []types.RoundTripResult{res}
		})

	sort.Slice(results, func(i, j int) bool {
		return results[i].File < results[j].File
	})
	return results, nil
}

// Kinds counts how often each kind occurs across the scanned files.
func Kinds(opts KindsOptions) ([]types.KindCount, error) {
	opts.setDefaults()
	if opts.Language == "" {
		opts.Language = "go"
	}
	if opts.Path == "" {
		opts.Path = "."
	}
	if opts.Jobs == 0 {
		opts.Jobs = runtime.NumCPU()
	}
	if opts.MaxBytes == 0 {
		opts.MaxBytes = defaultMaxBytes
	}

	grammar := treesitter.Get(opts.Language)
	if grammar == nil {
		return nil, errors.New(opts.Language + " grammar not registered")
	}

	files, err := collectFiles(opts.Env, grammar, opts.Path, opts.File, opts.MaxBytes)
	if err != nil {
		return nil, err
	}

	perFile := runWorkers(opts.Env, treesitter.NewLanguage(grammar), nil, files, opts.Jobs,
		func(_ types.FileJob, _ []byte, doc tree) []map[string]int {
			return []map[string]int{doc.Kinds(opts.Trivia)}
		})

	totals := make(map[string]int)
	for _, counts := range perFile {
		for kind, n := range counts {
			totals[kind] += n
		}
	}

	out := make([]types.KindCount, 0, len(totals))
	for kind, n := range totals {
		out = append(out, types.KindCount{Kind: kind, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Kind < out[j].Kind
	})
	return out, nil
}

// load builds the tree selected by src.
func load(env Env, src Source) (tree, error) {
	var cache *green.NodeCache
	if src.Intern {
		cache = green.NewNodeCache()
	}

	switch {
	case src.File != "" && src.Script != "":
		return nil, errors.New("use a file or a script, not both")
	case src.Script != "":
		return loadScript(env, src.Script, cache)
	case src.File != "":
		return loadFile(env, src.File, src.Language, cache)
	}
	return nil, errors.New("a file or a script is required")
}

func loadScript(env Env, path string, cache *green.NodeCache) (tree, error) {
	data, err := afero.ReadFile(env.Fs, path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	evs, err := events.Parse(bytes.NewReader(data), purescript.RawKindByName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	b := green.NewBuilder()
	if cache != nil {
		b = green.NewBuilderWithCache(cache)
	}
	root, err := events.Replay(b, evs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	env.Logger.WithField("script", path).WithField("events", len(evs)).Debug("replayed script")
	return newDocument(filepath.Base(path), purescript.NewRoot(root), func(k purescript.SyntaxKind) bool {
		return k == purescript.Error
	}), nil
}

func loadFile(env Env, path, language string, cache *green.NodeCache) (tree, error) {
	grammar, err := resolveGrammar(language, path)
	if err != nil {
		return nil, err
	}
	source, err := afero.ReadFile(env.Fs, path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	lang := treesitter.NewLanguage(grammar)
	root := treesitter.NewParser(lang, cache).ParseRoot(source)
	return newTreeSitterDocument(filepath.Base(path), lang, root), nil
}

func newTreeSitterDocument(file string, lang *treesitter.Language, root *syntax.Node[treesitter.Kind]) tree {
	return newDocument(file, root, func(k treesitter.Kind) bool {
		return k == lang.Error()
	})
}

func resolveGrammar(language, path string) (treesitter.Grammar, error) {
	if language != "" {
		if g := treesitter.Get(language); g != nil {
			return g, nil
		}
		return nil, errors.New(language + " grammar not registered")
	}
	ext := strings.ToLower(filepath.Ext(path))
	if g := treesitter.ByExtension(ext); g != nil {
		return g, nil
	}
	return nil, fmt.Errorf("no grammar registered for %q files", ext)
}

func collectFiles(env Env, grammar treesitter.Grammar, path, file string, maxBytes int64) ([]types.FileJob, error) {
	if file != "" {
		sc := newScanner(scannerConfig{fs: env.Fs, grammar: grammar, maxBytes: maxBytes})
		job, err := sc.collectSingle(file)
		if err != nil {
			return nil, err
		}
		return []types.FileJob{job}, nil
	}
	sc := newScanner(scannerConfig{
		fs:       env.Fs,
		root:     path,
		grammar:  grammar,
		maxBytes: maxBytes,
	})
	return sc.collect()
}

// runWorkers parses files in parallel and collects what process returns for
// each of them. Every worker owns its parser; the kind space and the
// optional cache are shared.
func runWorkers[T any](
	env Env,
	lang *treesitter.Language,
	cache *green.NodeCache,
	files []types.FileJob,
	jobs int,
	process func(job types.FileJob, source []byte, doc tree) []T,
) []T {
	if len(files) == 0 {
		return nil
	}

	results := make(chan T, 128)
	jobQueue := make(chan types.FileJob, 128)
	var wg sync.WaitGroup

	workerCount := jobs
	if workerCount < 1 {
		workerCount = 1
	}
	if workerCount > len(files) {
		workerCount = len(files)
	}

	worker := func() {
		defer wg.Done()
		p := treesitter.NewParser(lang, cache)
		for job := range jobQueue {
			source, err := afero.ReadFile(env.Fs, job.AbsPath)
			if err != nil {
				env.Logger.WithError(err).WithField("file", job.DisplayPath).Warn("skipping file")
				continue
			}
			doc := newTreeSitterDocument(job.DisplayPath, lang, p.ParseRoot(source))
			for _, r := range process(job, source, doc) {
				results <- r
			}
		}
	}

	wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go worker()
	}

	go func() {
		for _, f := range files {
			jobQueue <- f
		}
		close(jobQueue)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var all []T
	for r := range results {
		all = append(all, r)
	}
	return all
}

// diffText renders the difference between want and got as a unified patch.
func diffText(want, got string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(want, got, false)
	return dmp.PatchToText(dmp.PatchMake(want, diffs))
}
