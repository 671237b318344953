// ABOUTME: CLI entrypoint for the erdsmith schema tool with validate, fix, export, and server modes.
// ABOUTME: Wires together the parser, validator, generator, exporters, and the wizard HTTP server.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/erdsmith/erdsmith/erd"
	"github.com/erdsmith/erdsmith/erd/validator"
	"github.com/erdsmith/erdsmith/export"
	"github.com/erdsmith/erdsmith/report"
	"github.com/erdsmith/erdsmith/store"
	"github.com/erdsmith/erdsmith/wizard"
)

var version = "dev"

// config holds all CLI configuration parsed from flags and positional arguments.
type config struct {
	serveMode   bool
	jsonOut     bool
	yamlOut     bool
	fix         bool
	outFile     string
	showVersion bool
	diagramFile string
}

func main() {
	loadDotEnv(".env")

	cfg := parseFlags(os.Args[1:])

	if cfg.showVersion {
		fmt.Printf("erdsmith %s\n", version)
		os.Exit(0)
	}

	os.Exit(run(cfg))
}

// parseFlags parses command-line flags and returns a populated config.
func parseFlags(args []string) config {
	var cfg config

	fs := flag.NewFlagSet("erdsmith", flag.ContinueOnError)
	fs.BoolVar(&cfg.serveMode, "serve", false, "Start the schema wizard HTTP server")
	fs.BoolVar(&cfg.jsonOut, "json", false, "Print the full parse result as JSON")
	fs.BoolVar(&cfg.yamlOut, "yaml", false, "Export the schema as YAML")
	fs.BoolVar(&cfg.fix, "fix", false, "Print a corrected diagram with fixable issues applied")
	fs.StringVar(&cfg.outFile, "o", "", "Write output to a file instead of stdout")
	fs.BoolVar(&cfg.showVersion, "version", false, "Print version and exit")

	fs.Usage = func() {
		printHelp(os.Stderr, version)
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	if fs.NArg() > 0 {
		cfg.diagramFile = fs.Arg(0)
	}

	return cfg
}

// run dispatches to the appropriate mode based on the config.
// Returns an exit code: 0 for success, 1 for failure.
func run(cfg config) int {
	if cfg.serveMode {
		return runServer()
	}

	if cfg.diagramFile == "" {
		printHelp(os.Stderr, version)
		return 0
	}

	source, err := os.ReadFile(cfg.diagramFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	model := erd.Parse(string(source))
	res := validator.Run(model)

	switch {
	case cfg.fix:
		corrected := erd.GenerateCorrected(model, res.Warnings)
		return emit(cfg.outFile, corrected)
	case cfg.yamlOut:
		out, err := export.ExportYAML(res)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		return emit(cfg.outFile, out)
	case cfg.jsonOut:
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		return emit(cfg.outFile, string(data)+"\n")
	default:
		return validateAndReport(cfg, res)
	}
}

// validateAndReport prints the Markdown validation report. The exit code
// reflects the verdict: 0 when the schema is usable, 1 on errors.
func validateAndReport(cfg config, res *erd.Result) int {
	if code := emit(cfg.outFile, report.Markdown(res)); code != 0 {
		return code
	}
	if !res.Validation.IsValid {
		return 1
	}
	return 0
}

// emit writes output to a file when -o is set, otherwise to stdout.
func emit(outFile, content string) int {
	if outFile == "" {
		fmt.Print(content)
		return 0
	}
	if err := os.WriteFile(outFile, []byte(content), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// runServer starts the wizard HTTP server using ERDSMITH_* configuration.
func runServer() int {
	cfg, err := ConfigFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	sessions := wizard.NewSessionStore(cfg.MaxSessions, cfg.SessionTTL)
	stopCleanup := sessions.StartCleanup(time.Minute)
	defer stopCleanup()

	var opts []wizard.ServerOption
	if cfg.DBPath != "" {
		diagrams, err := store.Open(cfg.DBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		defer diagrams.Close()
		opts = append(opts, wizard.WithDiagramStore(diagrams))
	}

	srv := wizard.NewServer(sessions, opts...)

	// Set up context with signal handling for graceful shutdown.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nInterrupted, shutting down...")
		cancel()
	}()

	httpServer := &http.Server{
		Addr:    cfg.Bind,
		Handler: srv,
	}

	go func() {
		<-ctx.Done()
		httpServer.Close()
	}()

	fmt.Fprintf(os.Stderr, "listening on %s\n", cfg.Bind)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	return 0
}
