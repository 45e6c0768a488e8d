package cst

import (
	"fmt"
	"path/filepath"
	"sort"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/arjunmahishi/cst/green"
	"github.com/arjunmahishi/cst/treesitter"
	"github.com/arjunmahishi/cst/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// TestRunWorkers tests the generic worker pool for concurrency correctness.
// Run with -race flag to detect race conditions: go test -race
func TestRunWorkers(t *testing.T) {
	tests := []struct {
		name      string
		fileCount int
		jobs      int
		intern    bool
	}{
		{"single_file_single_worker", 1, 1, false},
		{"multiple_files_single_worker", 5, 1, false},
		{"multiple_files_multiple_workers", 10, 4, false},
		{"more_workers_than_files", 3, 10, false},
		{"many_files_high_concurrency", 50, 16, false},
		{"shared_cache_across_workers", 50, 16, true},
		{"zero_jobs_defaults_to_one", 5, 0, false},
		{"empty_files", 0, 4, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			logger, _ := test.NewNullLogger()
			env := Env{Fs: fs, Logger: logger}

			grammar := treesitter.Get("go")
			require.NotNil(t, grammar)
			lang := treesitter.NewLanguage(grammar)

			var cache *green.NodeCache
			if tc.intern {
				cache = green.NewNodeCache()
			}

			if tc.fileCount == 0 {
				results := runWorkers(env, lang, cache, []types.FileJob{}, tc.jobs, extractFunctionNames)
				require.Empty(t, results)
				return
			}

			expectedFuncs := generateTestFiles(t, fs, "/src", tc.fileCount)

			sc := newScanner(scannerConfig{
				fs:       fs,
				root:     "/src",
				grammar:  grammar,
				maxBytes: 2 * 1024 * 1024,
			})
			files, err := sc.collect()
			require.NoError(t, err)
			require.Len(t, files, tc.fileCount)

			results := runWorkers(env, lang, cache, files, tc.jobs, extractFunctionNames)

			require.Len(t, results, tc.fileCount, "should have one result per file")

			// Sort both slices for comparison (order may vary due to concurrency)
			sort.Strings(results)
			sort.Strings(expectedFuncs)
			require.Equal(t, expectedFuncs, results, "all functions should be found exactly once")

			if tc.intern {
				tokens, nodes := cache.Len()
				require.Positive(t, tokens)
				require.Positive(t, nodes)
			}
		})
	}
}

func TestRunWorkersSkipsUnreadableFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	logger, hook := test.NewNullLogger()
	env := Env{Fs: fs, Logger: logger}

	expected := generateTestFiles(t, fs, "/src", 2)
	files := []types.FileJob{
		{AbsPath: "/src/file_0.go", DisplayPath: "file_0.go"},
		{AbsPath: "/src/gone.go", DisplayPath: "gone.go"},
		{AbsPath: "/src/file_1.go", DisplayPath: "file_1.go"},
	}

	lang := treesitter.NewLanguage(treesitter.Get("go"))
	results := runWorkers(env, lang, nil, files, 2, extractFunctionNames)
	sort.Strings(results)
	require.Equal(t, expected, results)

	require.Len(t, hook.AllEntries(), 1)
	entry := hook.LastEntry()
	require.Equal(t, logrus.WarnLevel, entry.Level)
	require.Equal(t, "skipping file", entry.Message)
	require.Equal(t, "gone.go", entry.Data["file"])
	require.Error(t, entry.Data[logrus.ErrorKey].(error))
}

func TestScannerSkipsLargeFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	generateTestFiles(t, fs, "/src", 3)
	big := fmt.Sprintf("package testpkg\n\nvar x = %q\n", make([]byte, 256))
	require.NoError(t, afero.WriteFile(fs, "/src/big.go", []byte(big), 0644))

	sc := newScanner(scannerConfig{
		fs:       fs,
		root:     "/src",
		grammar:  treesitter.Get("go"),
		maxBytes: 64,
	})
	files, err := sc.collect()
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, f.DisplayPath)
	}
	require.Equal(t, []string{"file_0.go", "file_1.go", "file_2.go"}, names)
}

func TestScannerSingleFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	generateTestFiles(t, fs, "/src", 1)
	require.NoError(t, afero.WriteFile(fs, "/src/notes.txt", []byte("package testpkg\n"), 0644))
	big := fmt.Sprintf("package testpkg\n\nvar x = %q\n", make([]byte, 256))
	require.NoError(t, afero.WriteFile(fs, "/src/big.go", []byte(big), 0644))

	sc := newScanner(scannerConfig{fs: fs, grammar: treesitter.Get("go"), maxBytes: 64})

	job, err := sc.collectSingle("/src/file_0.go")
	require.NoError(t, err)
	require.Equal(t, types.FileJob{AbsPath: "/src/file_0.go", DisplayPath: "file_0.go"}, job)

	_, err = sc.collectSingle("/src/notes.txt")
	require.EqualError(t, err, "/src/notes.txt is not a go file (want .go)")

	_, err = sc.collectSingle("/src/big.go")
	require.EqualError(t, err, "/src/big.go is larger than 64 bytes")

	_, err = sc.collectSingle("/src/missing.go")
	require.ErrorContains(t, err, "stat file")
}

// generateTestFiles creates N Go files, each with a unique function.
// Returns the expected function names.
func generateTestFiles(t *testing.T, fs afero.Fs, dir string, count int) []string {
	t.Helper()

	var expected []string
	for i := range count {
		funcName := fmt.Sprintf("Func%d", i)
		fileName := fmt.Sprintf("file_%d.go", i)

		content := fmt.Sprintf(`package testpkg

func %s() {}
`, funcName)

		err := afero.WriteFile(fs, filepath.Join(dir, fileName), []byte(content), 0644)
		require.NoError(t, err)

		expected = append(expected, funcName)
	}

	return expected
}

// extractFunctionNames is a process function that collects the names of
// top-level function declarations.
func extractFunctionNames(_ types.FileJob, _ []byte, doc tree) []string {
	var names []string
	for _, decl := range doc.Element().Children {
		if decl.Kind != "function_declaration" {
			continue
		}
		for _, c := range decl.Children {
			if c.Kind == "identifier" {
				names = append(names, c.Text)
				break
			}
		}
	}
	return names
}
