package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/anrid/eventlayout/pkg/config"
	"github.com/anrid/eventlayout/pkg/eventlayout"
	"github.com/anrid/eventlayout/pkg/render"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

func main() {
	inputFileOrURL := pflag.StringP("input-file", "i", "", "Path or URL to a CSV (id,start,end[,label]) or YAML file with the events to lay out.")
	configFile := pflag.StringP("config", "c", "", "Path to a YAML configuration file. Flags given on the command line override it.")
	totalWidth := pflag.Float64P("width", "w", 0, "Total width shared by the columns of each cluster of overlapping events.")
	inset := pflag.Float64("inset", 0, "Border plus padding of each box, applied after layout.")
	borderBox := pflag.Bool("border-box", true, "Box sizes include the inset. Set to false to take the inset off the content size.")
	format := pflag.StringP("format", "f", "", "Output format: auto, table, json, yaml or svg. auto prints a table on a terminal and JSON otherwise.")
	outputFile := pflag.StringP("output", "o", "", "Write output to this file instead of stdout.")
	verbose := pflag.Bool("verbose", false, "Verbose output, helps when troubleshooting.")

	pflag.Parse()

	if *inputFileOrURL == "" {
		pflag.Usage()
		os.Exit(-1)
	}

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.LoadConfig(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	if pflag.CommandLine.Changed("width") {
		cfg.Layout.TotalWidth = *totalWidth
	}
	if pflag.CommandLine.Changed("inset") {
		cfg.Render.Inset = *inset
	}
	if pflag.CommandLine.Changed("border-box") {
		cfg.Render.BorderBox = *borderBox
	}
	if pflag.CommandLine.Changed("format") {
		cfg.Output.Format = *format
	}
	if pflag.CommandLine.Changed("output") {
		cfg.Output.File = *outputFile
	}
	if pflag.CommandLine.Changed("verbose") {
		cfg.Output.Verbose = *verbose
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Output.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var out io.Writer = os.Stdout
	toTerminal := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	if cfg.Output.File != "" {
		f, err := os.Create(cfg.Output.File)
		if err != nil {
			logger.Error("could not create output file", "file", cfg.Output.File, "error", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
		toTerminal = false
	}

	outFormat := render.FormatJSON
	if cfg.Output.Format == config.FormatAuto {
		if toTerminal {
			outFormat = render.FormatTable
		}
	} else {
		// Validate already accepted the name.
		outFormat, _ = render.ParseFormat(cfg.Output.Format)
	}

	_, err := eventlayout.Run(eventlayout.LayOutParams{
		InputFileOrURL: *inputFileOrURL,
		TotalWidth:     cfg.Layout.TotalWidth,
		Inset:          cfg.Render.Inset,
		BorderBox:      cfg.Render.BorderBox,
		Format:         outFormat,
		Output:         out,
		Logger:         logger,
	})
	if err != nil {
		logger.Error("layout failed", "error", err)
		os.Exit(1)
	}
}
