package cst

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Source selects the tree a single-file operation works on. Exactly one of
// File and Script must be set.
type Source struct {
	// File is a source file parsed with a tree-sitter grammar.
	File string

	// Script is a PureScript event script replayed through the builder.
	Script string

	// Language names the tree-sitter grammar for File.
	// If empty, the grammar is chosen by file extension.
	Language string

	// Intern shares identical subtrees through a node cache.
	Intern bool
}

// Env holds the dependencies shared by every operation.
type Env struct {
	// Fs is the filesystem files are read from.
	// If nil, the OS filesystem is used.
	Fs afero.Fs

	// Logger receives warnings about skipped files.
	// If nil, the standard logrus logger is used.
	Logger logrus.FieldLogger
}

// DumpOptions configures the Dump and Script functions.
type DumpOptions struct {
	Env
	Source
}

// ReplaceOptions configures the Replace function.
type ReplaceOptions struct {
	Env
	Source

	// Offset is the byte offset of the token to replace.
	Offset int

	// Text is the replacement text. The token keeps its kind.
	Text string
}

// RoundTripOptions configures the RoundTrip function.
type RoundTripOptions struct {
	Env

	// Language specifies which grammar to use (e.g., "go").
	Language string

	// Path is the root directory to scan for files.
	// If empty, current directory is used.
	Path string

	// File is a single file to check.
	// If set, Path is ignored.
	File string

	// Intern shares identical subtrees across all parsed files.
	Intern bool

	// Jobs is the number of parallel workers.
	// If 0, defaults to number of CPUs.
	Jobs int

	// MaxBytes skips files larger than this size.
	// If 0, defaults to 2 MiB.
	MaxBytes int64
}

// KindsOptions configures the Kinds function.
type KindsOptions struct {
	Env

	// Language specifies which grammar to use (e.g., "go").
	Language string

	// Path is the root directory to scan for files.
	// If empty, current directory is used.
	Path string

	// File is a single file to analyze.
	// If set, Path is ignored.
	File string

	// Trivia restricts the count to trivia kinds.
	Trivia bool

	// Jobs is the number of parallel workers.
	// If 0, defaults to number of CPUs.
	Jobs int

	// MaxBytes skips files larger than this size.
	// If 0, defaults to 2 MiB.
	MaxBytes int64
}

const defaultMaxBytes = 2 * 1024 * 1024

func (e *Env) setDefaults() {
	if e.Fs == nil {
		e.Fs = afero.NewOsFs()
	}
	if e.Logger == nil {
		e.Logger = logrus.StandardLogger()
	}
}
