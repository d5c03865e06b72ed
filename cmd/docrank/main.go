package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docrank"
	"github.com/fwojciec/docrank/analyze"
	"github.com/fwojciec/docrank/fs"
	"github.com/fwojciec/docrank/gemini"
	"github.com/fwojciec/docrank/goquery"
	"github.com/fwojciec/docrank/pdf"
	docslog "github.com/fwojciec/docrank/slog"
	"github.com/fwojciec/docrank/xxhash"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Services for end-to-end testing. When nil, Run builds the
	// production implementations.
	Renderer docrank.Renderer
	Embedder docrank.Embedder
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docrank"),
		kong.Description("Rank document sections by relevance to a persona and task."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docrank --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	renderer := m.Renderer
	if renderer == nil {
		renderer = analyze.Renderers{
			".pdf":  pdf.NewRenderer(),
			".html": goquery.NewRenderer(),
			".htm":  goquery.NewRenderer(),
		}
	}
	deps.Analyzer = &analyze.Analyzer{
		Renderer: docslog.NewLoggingRenderer(renderer, deps.Logger),
		Logger:   deps.Logger,
	}

	// Wire command-specific dependencies based on command
	if strings.HasPrefix(kongCtx.Command(), "analyze") {
		embedder, err := m.embedder(ctx, &cli.Analyze, deps.Logger, stderr)
		if err != nil {
			return err
		}
		deps.Analyzer.Embedder = docslog.NewLoggingEmbedder(embedder, deps.Logger)
		deps.Reports = fs.NewReportWriter(cli.Analyze.Output)
	}

	return kongCtx.Run(deps)
}

// embedder builds the embedding backend selected by the analyze flags.
func (m *Main) embedder(ctx context.Context, c *AnalyzeCmd, logger *slog.Logger, stderr io.Writer) (docrank.Embedder, error) {
	if m.Embedder != nil {
		return m.Embedder, nil
	}

	if c.Embedder == "hash" {
		return xxhash.NewEmbedder(int(c.Dimensions)), nil
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey or use --embedder=hash")
		return nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	emb := gemini.NewEmbedder(client, c.Model)
	emb.Dimensions = c.Dimensions
	emb.Logger = logger
	if c.EmbedRPS > 0 {
		emb.Limiter = rate.NewLimiter(rate.Limit(c.EmbedRPS), 1)
	}
	return emb, nil
}
