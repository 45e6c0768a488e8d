package main

import (
	"context"
	"errors"
	"os"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/arjunmahishi/cst/cst"
	"github.com/arjunmahishi/cst/output"
	"github.com/arjunmahishi/cst/types"
)

func main() {
	app := &cli.Command{
		Name:  "cst",
		Usage: "lossless syntax trees: build, inspect and edit them",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log debug messages to stderr",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logrus.SetOutput(os.Stderr)
			logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
			if cmd.Bool("verbose") {
				logrus.SetLevel(logrus.DebugLevel)
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			dumpCommand(),
			replaceCommand(),
			roundTripCommand(),
			kindsCommand(),
			examplesCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		output.WriteError(err)
		os.Exit(1)
	}
}

func sourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   "source file to parse with a tree-sitter grammar",
		},
		&cli.StringFlag{
			Name:    "script",
			Aliases: []string{"s"},
			Usage:   "PureScript event script to replay",
		},
		&cli.StringFlag{
			Name:    "language",
			Aliases: []string{"l"},
			Usage:   "grammar for --file (default: by extension)",
		},
		&cli.BoolFlag{
			Name:  "intern",
			Usage: "share identical subtrees through a node cache",
		},
	}
}

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "format",
			Value: "json",
			Usage: "output format: json, yaml, tree",
		},
		&cli.BoolFlag{
			Name:  "compact",
			Usage: "minimize output",
		},
		&cli.BoolFlag{
			Name:  "color",
			Usage: "force colored tree output (default: when stdout is a terminal)",
		},
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: "disable colored tree output",
		},
	}
}

func scanFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "language",
			Aliases: []string{"l"},
			Value:   "go",
			Usage:   "grammar to parse with",
		},
		&cli.StringFlag{
			Name:  "path",
			Value: ".",
			Usage: "root path to scan",
		},
		&cli.StringFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   "single file to check",
		},
		&cli.IntFlag{
			Name:    "jobs",
			Aliases: []string{"j"},
			Value:   runtime.NumCPU(),
			Usage:   "number of parallel workers",
		},
		&cli.Int64Flag{
			Name:  "max-bytes",
			Value: 2 * 1024 * 1024,
			Usage: "skip files larger than this",
		},
	}
}

func newWriter(cmd *cli.Command) (*output.Writer, error) {
	format, err := output.ParseFormat(cmd.String("format"))
	if err != nil {
		return nil, err
	}
	cfg := output.Config{
		Format:  format,
		Compact: cmd.Bool("compact"),
	}
	if cmd.Bool("color") && cmd.Bool("no-color") {
		return nil, errors.New("use --color or --no-color, not both")
	}
	if cmd.IsSet("color") || cmd.IsSet("no-color") {
		on := cmd.Bool("color")
		cfg.Color = &on
	}
	return output.New(cfg), nil
}

func source(cmd *cli.Command) cst.Source {
	return cst.Source{
		File:     cmd.String("file"),
		Script:   cmd.String("script"),
		Language: cmd.String("language"),
		Intern:   cmd.Bool("intern"),
	}
}

func dumpCommand() *cli.Command {
	flags := append(sourceFlags(), outputFlags()...)
	flags = append(flags, &cli.BoolFlag{
		Name:  "events",
		Usage: "print the tree as an event script instead",
	})
	return &cli.Command{
		Name:  "dump",
		Usage: "print the syntax tree of a file or script",
		Description: "Examples:\n" +
			"  cst dump -f main.go --format tree\n" +
			"  cst dump -s module.events --format yaml\n" +
			"  cst dump -f main.go --events",
		Flags:  flags,
		Action: runDump,
	}
}

func runDump(_ context.Context, cmd *cli.Command) error {
	opts := cst.DumpOptions{Source: source(cmd)}

	w, err := newWriter(cmd)
	if err != nil {
		return err
	}

	if cmd.Bool("events") {
		script, err := cst.Script(opts)
		if err != nil {
			return err
		}
		return w.WriteText(script)
	}

	root, err := cst.Dump(opts)
	if err != nil {
		return err
	}
	return w.Write(root)
}

func replaceCommand() *cli.Command {
	flags := append(sourceFlags(), outputFlags()...)
	flags = append(flags,
		&cli.IntFlag{
			Name:     "offset",
			Aliases:  []string{"o"},
			Usage:    "byte offset of the token to replace (required)",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "text",
			Aliases:  []string{"t"},
			Usage:    "replacement text (required)",
			Required: true,
		},
	)
	return &cli.Command{
		Name:  "replace",
		Usage: "replace one token and report structural sharing",
		Description: "Examples:\n" +
			"  cst replace -s module.events -o 7 -t Rust\n" +
			"  cst replace -f main.go -o 8 -t app",
		Flags:  flags,
		Action: runReplace,
	}
}

func runReplace(_ context.Context, cmd *cli.Command) error {
	opts := cst.ReplaceOptions{
		Source: source(cmd),
		Offset: cmd.Int("offset"),
		Text:   cmd.String("text"),
	}

	w, err := newWriter(cmd)
	if err != nil {
		return err
	}
	result, err := cst.Replace(opts)
	if err != nil {
		return err
	}
	return w.Write(result)
}

func roundTripCommand() *cli.Command {
	flags := append(scanFlags(), outputFlags()...)
	flags = append(flags,
		&cli.BoolFlag{
			Name:  "intern",
			Usage: "share identical subtrees across files",
		},
		&cli.BoolFlag{
			Name:  "failures",
			Usage: "only report files that did not round-trip",
		},
	)
	return &cli.Command{
		Name:   "roundtrip",
		Usage:  "check that parsing then printing reproduces every file",
		Flags:  flags,
		Action: runRoundTrip,
	}
}

func runRoundTrip(_ context.Context, cmd *cli.Command) error {
	opts := cst.RoundTripOptions{
		Language: cmd.String("language"),
		Path:     cmd.String("path"),
		File:     cmd.String("file"),
		Intern:   cmd.Bool("intern"),
		Jobs:     cmd.Int("jobs"),
		MaxBytes: cmd.Int64("max-bytes"),
	}

	w, err := newWriter(cmd)
	if err != nil {
		return err
	}
	results, err := cst.RoundTrip(opts)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if !r.OK {
			failed++
		}
	}
	if cmd.Bool("failures") {
		kept := make([]types.RoundTripResult, 0, failed)
		for _, r := range results {
			if !r.OK {
				kept = append(kept, r)
			}
		}
		results = kept
	}

	if err := w.Write(results); err != nil {
		return err
	}
	if failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func kindsCommand() *cli.Command {
	flags := append(scanFlags(), outputFlags()...)
	flags = append(flags, &cli.BoolFlag{
		Name:  "trivia",
		Usage: "only count trivia kinds",
	})
	return &cli.Command{
		Name:   "kinds",
		Usage:  "count node and token kinds across files",
		Flags:  flags,
		Action: runKinds,
	}
}

func runKinds(_ context.Context, cmd *cli.Command) error {
	opts := cst.KindsOptions{
		Language: cmd.String("language"),
		Path:     cmd.String("path"),
		File:     cmd.String("file"),
		Trivia:   cmd.Bool("trivia"),
		Jobs:     cmd.Int("jobs"),
		MaxBytes: cmd.Int64("max-bytes"),
	}

	w, err := newWriter(cmd)
	if err != nil {
		return err
	}
	counts, err := cst.Kinds(opts)
	if err != nil {
		return err
	}
	return w.Write(counts)
}
