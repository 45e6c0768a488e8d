// Package types defines shared data types for cst output.
package types

// Position represents a location in a source file.
type Position struct {
	Offset int `json:"offset" yaml:"offset"`
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// Range represents a span in a source file.
type Range struct {
	Start Position `json:"start" yaml:"start"`
	End   Position `json:"end" yaml:"end"`
}

// Element is a serializable rendering of a syntax node or token.
type Element struct {
	Kind     string    `json:"kind" yaml:"kind"`
	Range    Range     `json:"range" yaml:"range"`
	Text     string    `json:"text,omitempty" yaml:"text,omitempty"`     // tokens only
	Token    bool      `json:"token,omitempty" yaml:"token,omitempty"`   // true for leaves
	Trivia   bool      `json:"trivia,omitempty" yaml:"trivia,omitempty"` // whitespace or comment
	Children []Element `json:"children,omitempty" yaml:"children,omitempty"`
}

// Stats counts the elements of one tree.
type Stats struct {
	Bytes  int `json:"bytes" yaml:"bytes"`
	Nodes  int `json:"nodes" yaml:"nodes"`
	Tokens int `json:"tokens" yaml:"tokens"`
	Trivia int `json:"trivia" yaml:"trivia"`
	Errors int `json:"errors" yaml:"errors"`
}

// RoundTripResult reports whether a file survived parse and re-print.
type RoundTripResult struct {
	File  string `json:"file" yaml:"file"`
	OK    bool   `json:"ok" yaml:"ok"`
	Stats Stats  `json:"stats" yaml:"stats"`
	Diff  string `json:"diff,omitempty" yaml:"diff,omitempty"`
}

// KindCount is the number of occurrences of a kind.
type KindCount struct {
	Kind  string `json:"kind" yaml:"kind"`
	Count int    `json:"count" yaml:"count"`
}

// ReplaceResult describes a persistent token replacement.
type ReplaceResult struct {
	File    string `json:"file" yaml:"file"`
	Kind    string `json:"kind" yaml:"kind"`
	Range   Range  `json:"range" yaml:"range"`
	OldText string `json:"old_text" yaml:"old_text"`
	NewText string `json:"new_text" yaml:"new_text"`
	Before  string `json:"before" yaml:"before"`
	After   string `json:"after" yaml:"after"`
	// Copied is the number of green nodes allocated for the edit, one per
	// ancestor of the replaced token.
	Copied int `json:"copied" yaml:"copied"`
	// Shared is the number of green nodes of the new tree reused from the
	// old one.
	Shared int `json:"shared" yaml:"shared"`
}

// FileJob represents a file to be processed.
type FileJob struct {
	AbsPath     string
	DisplayPath string
}
