package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/word-frequency-counter/internal/count"
	"github.com/dtnitsch/word-frequency-counter/internal/db"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:   "wfc",
		Usage:  "count word frequencies of a large text file with parallel workers",
		Flags:  count.Flags(),
		Action: count.CountAction,
		Commands: []*cli.Command{
			{
				Name:   "count",
				Usage:  "count words in the input file and write the ranking",
				Flags:  count.Flags(),
				Action: count.CountAction,
			},
			{
				Name:  "runs",
				Usage: "list recorded runs",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Value: 20, Usage: "maximum number of runs"},
					count.DBFlag(),
				},
				Action: db.RunsAction,
			},
			{
				Name:      "run",
				Usage:     "show a recorded run (latest when no ID is given)",
				ArgsUsage: "[run-id]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Value: "text", Usage: "text, json or yaml"},
					count.DBFlag(),
				},
				Action: db.RunAction,
			},
		},
	}
}
