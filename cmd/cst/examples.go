package main

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/urfave/cli/v3"
)

//go:embed example.events
var exampleScript string

func examplesCommand() *cli.Command {
	return &cli.Command{
		Name:  "example-script",
		Usage: "print an example PureScript event script",
		Description: "Print a small PureScript module written as builder events.\n" +
			"Save it and feed it back to dump or replace.\n\n" +
			"Examples:\n" +
			"  cst example-script > module.events\n" +
			"  cst dump -s module.events --format tree\n" +
			"  cst replace -s module.events -o 7 -t Rust",
		Action: func(_ context.Context, _ *cli.Command) error {
			fmt.Print(exampleScript)
			return nil
		},
	}
}
