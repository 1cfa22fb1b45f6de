// Command html2docset packages an already built Sphinx HTML directory as a
// compressed docset bundle.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docset"
	"github.com/fwojciec/docset/koanf"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewMain().Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", errorMessage(err))
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// EnvPrefix selects environment overrides of the site profile.
	EnvPrefix string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{EnvPrefix: koanf.DefaultEnvPrefix}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	HTMLDir    string `name:"html-dir" default:"_html" help:"Directory containing the built HTML documentation" type:"path"`
	DocsetName string `name:"docset-name" default:"Docs.docset" help:"Name of the docset bundle"`
	Version    string `help:"Version string for the docset"`
	Config     string `help:"Site profile YAML file" type:"path"`
	OutputDir  string `name:"output-dir" default:"." help:"Directory the archive is written to" type:"path"`
	Verbose    bool   `short:"v" help:"Log every index write"`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("html2docset"),
		kong.Description("Package a Sphinx HTML build as a docset archive"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return docset.Errorf(docset.EINVALID, "%v", err)
	}

	b := &Builder{
		HTMLDir:    cli.HTMLDir,
		DocsetName: cli.DocsetName,
		Version:    cli.Version,
		Config:     cli.Config,
		OutputDir:  cli.OutputDir,
		EnvPrefix:  m.EnvPrefix,
		Stdout:     stdout,
	}
	if cli.Verbose {
		b.Logger = NewLogger(stderr)
	}
	_, err = b.Build(ctx)
	return err
}

func errorMessage(err error) string {
	if docset.ErrorCode(err) == docset.EINTERNAL {
		return err.Error()
	}
	return docset.ErrorMessage(err)
}
