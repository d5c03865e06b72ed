package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/docrank"
	"github.com/fwojciec/docrank/analyze"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Analyzer *analyze.Analyzer
	Reports  docrank.ReportWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Analyze  AnalyzeCmd  `cmd:"" help:"Rank document sections for a persona and task"`
	Headings HeadingsCmd `cmd:"" help:"List detected headings without ranking"`
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	Input       string  `arg:"" help:"Job file (JSON or YAML) with persona, job_to_be_done and documents"`
	DocsDir     string  `short:"d" name:"docs-dir" default:"." help:"Folder the document filenames are resolved against"`
	Output      string  `short:"o" default:"output.json" help:"Path of the JSON report"`
	TopK        int     `short:"k" name:"top-k" default:"5" help:"Number of sections to report"`
	Concurrency int     `short:"c" default:"4" help:"Documents processed concurrently"`
	Embedder    string  `enum:"gemini,hash" default:"gemini" help:"Embedding backend (gemini, hash)"`
	Model       string  `env:"DOCRANK_EMBED_MODEL" help:"Gemini embedding model"`
	Dimensions  int32   `help:"Embedding dimensions (0 uses the backend default)"`
	EmbedRPS    float64 `name:"embed-rps" default:"5" help:"Maximum embedding requests per second"`
}

// HeadingsCmd is the "headings" subcommand.
type HeadingsCmd struct {
	Paths       []string `arg:"" help:"Documents to inspect"`
	Concurrency int      `short:"c" default:"4" help:"Documents processed concurrently"`
}
